package logfacade

const (
	// EnvLogLevel overrides the level used by the fallback provider.
	EnvLogLevel = "LOG_LEVEL"
	// EnvLogConfig names a configuration file for the fallback provider.
	EnvLogConfig = "LOG_CONFIG"
	// EnvAllowConflictModules demotes a module version conflict to a warning when set to "1".
	EnvAllowConflictModules = "LOGFACADE_ALLOW_CONFLICT_MODULES"

	// CategorySeparator joins a parent category and a child name.
	CategorySeparator = "."
	// DefaultCategory is the configuration category every other category falls back to.
	DefaultCategory = "default"
	// DefaultLevel is the fallback level when LOG_LEVEL is absent.
	DefaultLevel = "info"
	// ConsoleAppender is the appender name used by the synthesized configuration.
	ConsoleAppender = "console"

	emptyString = ""
)

const (
	errMsgNilProvider      = "Logger provider is a typed nil."
	errMsgNotProvider      = "Logger provider should implement GetLogger(category)."
	errMsgNilConfig        = "Logging config is nil."
	errMsgConfigInvalid    = "Logging configuration is invalid."
	errMsgNoDefaultCat     = "Logging configuration must declare the default category."
	errMsgUnknownAppender  = "Category refers to an undeclared appender."
	errMsgConfigRead       = "Logging configuration file could not be read."
	errMsgConfigParse      = "Logging configuration file could not be parsed."
	errMsgFallbackNil      = "Fallback builder returned no provider."
	errMsgUnknownLevel     = "Unknown log level."
	errMsgVersionConflict  = "Two different versions of the logging facade are loaded inside the process."
	errMsgAllowConflictTip = "Set " + EnvAllowConflictModules + "=1 to treat this error as a warning."
)
