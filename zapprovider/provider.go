// Package zapprovider installs a go.uber.org/zap logger as a logfacade backend.
//
//	z, _ := zap.NewProduction()
//	_ = logfacade.SetProvider(zapprovider.New(z))
//
// Categories become zap logger names, so "billing.invoices" appears as the
// "logger" field. zap has no trace level: Trace writes and reports at debug.
// Fatal writes at fatal level but never exits the process.
package zapprovider

import (
	"strconv"

	"github.com/Station-Manager/logfacade"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Provider hands out named children of a base zap logger.
type Provider struct {
	base *zap.Logger
}

var _ logfacade.Provider = (*Provider)(nil)

// New wraps base; a nil base yields a no-op logger.
func New(base *zap.Logger) *Provider {
	if base == nil {
		base = zap.NewNop()
	}
	return &Provider{base: base.WithOptions(zap.WithFatalHook(continueOnFatal{}))}
}

func (p *Provider) GetLogger(category string) logfacade.Logger {
	return &logger{z: p.base.Named(category)}
}

// continueOnFatal replaces zap's default os.Exit after fatal entries.
type continueOnFatal struct{}

func (continueOnFatal) OnWrite(*zapcore.CheckedEntry, []zapcore.Field) {}

type logger struct {
	z *zap.Logger
}

func (l *logger) Trace(msg string, args ...any) { l.write(zapcore.DebugLevel, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.write(zapcore.DebugLevel, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.write(zapcore.InfoLevel, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.write(zapcore.WarnLevel, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.write(zapcore.ErrorLevel, msg, args) }
func (l *logger) Fatal(msg string, args ...any) { l.write(zapcore.FatalLevel, msg, args) }

func (l *logger) IsTraceEnabled() bool { return l.z.Core().Enabled(zapcore.DebugLevel) }
func (l *logger) IsDebugEnabled() bool { return l.z.Core().Enabled(zapcore.DebugLevel) }
func (l *logger) IsInfoEnabled() bool  { return l.z.Core().Enabled(zapcore.InfoLevel) }
func (l *logger) IsWarnEnabled() bool  { return l.z.Core().Enabled(zapcore.WarnLevel) }
func (l *logger) IsErrorEnabled() bool { return l.z.Core().Enabled(zapcore.ErrorLevel) }
func (l *logger) IsFatalEnabled() bool { return l.z.Core().Enabled(zapcore.FatalLevel) }

func (l *logger) write(level zapcore.Level, msg string, args []any) {
	if ce := l.z.Check(level, msg); ce != nil {
		ce.Write(fields(args)...)
	}
}

// fields turns supplementary values into zap fields: errors become error
// fields, everything else is grouped under "args".
func fields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}
	var (
		out  []zap.Field
		rest []any
	)
	errCount := 0
	for _, arg := range args {
		err, ok := arg.(error)
		if !ok || err == nil {
			rest = append(rest, arg)
			continue
		}
		if errCount == 0 {
			out = append(out, zap.Error(err))
		} else {
			out = append(out, zap.NamedError("error_"+strconv.Itoa(errCount), err))
		}
		errCount++
	}
	if len(rest) > 0 {
		out = append(out, zap.Any("args", rest))
	}
	return out
}
