package logfacade

import (
	"strings"

	smerrors "github.com/Station-Manager/errors"
)

// Severity enumerates the six levels a Logger exposes.
type Severity int8

const (
	SeverityTrace Severity = iota
	SeverityDebug
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityFatal
)

var severityNames = [...]string{
	SeverityTrace: "trace",
	SeverityDebug: "debug",
	SeverityInfo:  "info",
	SeverityWarn:  "warn",
	SeverityError: "error",
	SeverityFatal: "fatal",
}

// Severities returns every severity from trace to fatal.
func Severities() []Severity {
	return []Severity{SeverityTrace, SeverityDebug, SeverityInfo, SeverityWarn, SeverityError, SeverityFatal}
}

func (s Severity) String() string {
	if !s.IsValid() {
		return "unknown"
	}
	return severityNames[s]
}

// IsValid reports whether s is one of the six declared severities.
func (s Severity) IsValid() bool {
	return s >= SeverityTrace && s <= SeverityFatal
}

// ParseSeverity converts a case-insensitive name ("warning" is accepted for warn).
func ParseSeverity(name string) (Severity, error) {
	const op smerrors.Op = "logfacade.ParseSeverity"
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return SeverityTrace, nil
	case "debug":
		return SeverityDebug, nil
	case "info":
		return SeverityInfo, nil
	case "warn", "warning":
		return SeverityWarn, nil
	case "error":
		return SeverityError, nil
	case "fatal":
		return SeverityFatal, nil
	}
	return SeverityInfo, smerrors.New(op).Msg(errMsgUnknownLevel + " " + name)
}

// logAt dispatches msg to the method of l that matches s.
func logAt(l Logger, s Severity, msg string, args []any) {
	switch s {
	case SeverityTrace:
		l.Trace(msg, args...)
	case SeverityDebug:
		l.Debug(msg, args...)
	case SeverityInfo:
		l.Info(msg, args...)
	case SeverityWarn:
		l.Warn(msg, args...)
	case SeverityError:
		l.Error(msg, args...)
	case SeverityFatal:
		l.Fatal(msg, args...)
	}
}

// enabledAt queries the enablement flag of l that matches s.
func enabledAt(l Logger, s Severity) bool {
	switch s {
	case SeverityTrace:
		return l.IsTraceEnabled()
	case SeverityDebug:
		return l.IsDebugEnabled()
	case SeverityInfo:
		return l.IsInfoEnabled()
	case SeverityWarn:
		return l.IsWarnEnabled()
	case SeverityError:
		return l.IsErrorEnabled()
	case SeverityFatal:
		return l.IsFatalEnabled()
	}
	return false
}
