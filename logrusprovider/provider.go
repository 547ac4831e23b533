// Package logrusprovider installs a github.com/sirupsen/logrus logger as a
// logfacade backend. Every entry carries a "category" field; Fatal is
// written at fatal level without calling the logger's exit function.
package logrusprovider

import (
	"strconv"

	"github.com/Station-Manager/logfacade"
	"github.com/sirupsen/logrus"
)

// Provider hands out entries of a base logrus logger.
type Provider struct {
	base *logrus.Logger
}

var _ logfacade.Provider = (*Provider)(nil)

// New wraps base; a nil base uses logrus.StandardLogger().
func New(base *logrus.Logger) *Provider {
	if base == nil {
		base = logrus.StandardLogger()
	}
	return &Provider{base: base}
}

func (p *Provider) GetLogger(category string) logfacade.Logger {
	entry := logrus.NewEntry(p.base)
	if category != "" {
		entry = entry.WithField(logfacade.CategoryField, category)
	}
	return &logger{entry: entry}
}

type logger struct {
	entry *logrus.Entry
}

func (l *logger) Trace(msg string, args ...any) { l.write(logrus.TraceLevel, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.write(logrus.DebugLevel, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.write(logrus.InfoLevel, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.write(logrus.WarnLevel, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.write(logrus.ErrorLevel, msg, args) }
func (l *logger) Fatal(msg string, args ...any) { l.write(logrus.FatalLevel, msg, args) }

func (l *logger) IsTraceEnabled() bool { return l.entry.Logger.IsLevelEnabled(logrus.TraceLevel) }
func (l *logger) IsDebugEnabled() bool { return l.entry.Logger.IsLevelEnabled(logrus.DebugLevel) }
func (l *logger) IsInfoEnabled() bool  { return l.entry.Logger.IsLevelEnabled(logrus.InfoLevel) }
func (l *logger) IsWarnEnabled() bool  { return l.entry.Logger.IsLevelEnabled(logrus.WarnLevel) }
func (l *logger) IsErrorEnabled() bool { return l.entry.Logger.IsLevelEnabled(logrus.ErrorLevel) }
func (l *logger) IsFatalEnabled() bool { return l.entry.Logger.IsLevelEnabled(logrus.FatalLevel) }

// write uses Entry.Log, which only panics at panic level and never exits.
func (l *logger) write(level logrus.Level, msg string, args []any) {
	if !l.entry.Logger.IsLevelEnabled(level) {
		return
	}
	entry := l.entry
	var rest []any
	errCount := 0
	for _, arg := range args {
		err, ok := arg.(error)
		if !ok || err == nil {
			rest = append(rest, arg)
			continue
		}
		if errCount == 0 {
			entry = entry.WithError(err)
		} else {
			entry = entry.WithField(logrus.ErrorKey+"_"+strconv.Itoa(errCount), err.Error())
		}
		errCount++
	}
	if len(rest) > 0 {
		entry = entry.WithField("args", rest)
	}
	entry.Log(level, msg)
}
