package logfacade

// Logger is the contract shared by concrete loggers and by the Facade itself.
// The message is passed through unchanged; args are supplementary values the
// backend attaches to the entry.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)

	IsTraceEnabled() bool
	IsDebugEnabled() bool
	IsInfoEnabled() bool
	IsWarnEnabled() bool
	IsErrorEnabled() bool
	IsFatalEnabled() bool
}

// Provider turns a category name into a concrete Logger. It must be safe to
// call repeatedly and concurrently with the same category.
type Provider interface {
	GetLogger(category string) Logger
}

// ProviderFunc adapts an ordinary function to Provider.
type ProviderFunc func(category string) Logger

func (f ProviderFunc) GetLogger(category string) Logger {
	return f(category)
}
