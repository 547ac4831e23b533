package logfacade

// Discard is a Provider whose loggers drop every message and report every
// level as disabled. Install it to silence all facades.
var Discard Provider = discardProvider{}

type discardProvider struct{}

func (discardProvider) GetLogger(string) Logger { return discardLogger{} }

// discardLogger is a no-op implementation of Logger
type discardLogger struct{}

func (discardLogger) Trace(string, ...any) {}
func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Info(string, ...any)  {}
func (discardLogger) Warn(string, ...any)  {}
func (discardLogger) Error(string, ...any) {}
func (discardLogger) Fatal(string, ...any) {}

func (discardLogger) IsTraceEnabled() bool { return false }
func (discardLogger) IsDebugEnabled() bool { return false }
func (discardLogger) IsInfoEnabled() bool  { return false }
func (discardLogger) IsWarnEnabled() bool  { return false }
func (discardLogger) IsErrorEnabled() bool { return false }
func (discardLogger) IsFatalEnabled() bool { return false }
