package logfacade

import (
	"io"
	"path/filepath"

	"github.com/Station-Manager/utils"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

func newRollingFileWriter(appender AppenderConfig) *lumberjack.Logger {
	path := appender.Filename
	if path == emptyString {
		exeName, err := utils.ExecName(true)
		if err != nil || exeName == emptyString {
			exeName = "app"
		}
		path = filepath.Join("logs", exeName+".log")
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxBackups: appender.MaxBackups,
		MaxAge:     appender.MaxAgeDays,
		MaxSize:    appender.MaxSizeMB,
		Compress:   appender.Compress,
	}
}

// newAppenderWriter builds the writer for one appender. The returned
// lumberjack logger is non-nil only for file appenders and must be closed by
// the engine.
func newAppenderWriter(appender AppenderConfig, opts engineOptions) (io.Writer, *lumberjack.Logger) {
	var (
		out  io.Writer
		file *lumberjack.Logger
	)
	switch appender.Type {
	case AppenderStdout:
		out = opts.stdout
	case AppenderFile:
		file = newRollingFileWriter(appender)
		out = file
	default:
		out = opts.stderr
	}

	format := appender.Format
	if format == emptyString {
		format = FormatText
		if appender.Type == AppenderFile {
			format = FormatJSON
		}
	}
	if format == FormatJSON {
		return out, file
	}

	cw := zerolog.ConsoleWriter{Out: out, NoColor: appender.NoColor}
	if appender.TimeFormat != emptyString {
		cw.TimeFormat = appender.TimeFormat
	}
	return cw, file
}
