package logfacade

import (
	stderrs "errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// CategoryField is the entry field carrying the logger's category.
const CategoryField = "category"

// EngineOption customizes NewEngine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	stdout io.Writer
	stderr io.Writer
}

// WithConsoleOutput routes console, stdout and stderr appenders to w.
func WithConsoleOutput(w io.Writer) EngineOption {
	return func(o *engineOptions) {
		if w != nil {
			o.stdout = w
			o.stderr = w
		}
	}
}

// Engine is the zerolog-backed Provider used as the fallback backend.
// Categories resolve hierarchically: "a.b.c" uses the first declared of
// "a.b.c", "a.b", "a", then "default".
type Engine struct {
	categories map[string]zerolog.Logger
	files      []*lumberjack.Logger
}

var _ Provider = (*Engine)(nil)

// NewEngine validates cfg and builds one zerolog logger per declared category.
func NewEngine(cfg Config, opts ...EngineOption) (*Engine, error) {
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	o := engineOptions{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{categories: make(map[string]zerolog.Logger, len(cfg.Categories))}

	writers := make(map[string]io.Writer, len(cfg.Appenders))
	for name, appender := range cfg.Appenders {
		w, file := newAppenderWriter(appender, o)
		writers[name] = w
		if file != nil {
			e.files = append(e.files, file)
		}
	}

	for name, cat := range cfg.Categories {
		level, err := parseLevel(cat.Level)
		if err != nil {
			return nil, err
		}
		outs := make([]io.Writer, 0, len(cat.Appenders))
		for _, appender := range cat.Appenders {
			outs = append(outs, writers[appender])
		}
		var out io.Writer = outs[0]
		if len(outs) > 1 {
			out = zerolog.MultiLevelWriter(outs...)
		}
		e.categories[name] = zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	return e, nil
}

// GetLogger returns a logger for category carrying the category field.
func (e *Engine) GetLogger(category string) Logger {
	base := e.lookup(category)
	if category == emptyString {
		category = DefaultCategory
	}
	return &engineLogger{logger: base.With().Str(CategoryField, category).Logger()}
}

func (e *Engine) lookup(category string) zerolog.Logger {
	name := category
	for name != emptyString {
		if l, ok := e.categories[name]; ok {
			return l
		}
		i := strings.LastIndex(name, CategorySeparator)
		if i < 0 {
			break
		}
		name = name[:i]
	}
	return e.categories[DefaultCategory]
}

// Close releases the file appenders. It's safe to call Close multiple times.
func (e *Engine) Close() error {
	var errs []error
	for _, f := range e.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrs.Join(errs...)
}

// engineLogger adapts a zerolog.Logger to Logger.
type engineLogger struct {
	logger zerolog.Logger
}

func (l *engineLogger) Trace(msg string, args ...any) { l.write(zerolog.TraceLevel, msg, args) }
func (l *engineLogger) Debug(msg string, args ...any) { l.write(zerolog.DebugLevel, msg, args) }
func (l *engineLogger) Info(msg string, args ...any)  { l.write(zerolog.InfoLevel, msg, args) }
func (l *engineLogger) Warn(msg string, args ...any)  { l.write(zerolog.WarnLevel, msg, args) }
func (l *engineLogger) Error(msg string, args ...any) { l.write(zerolog.ErrorLevel, msg, args) }

// Fatal writes at fatal level; unlike zerolog's Fatal it does not exit.
func (l *engineLogger) Fatal(msg string, args ...any) { l.write(zerolog.FatalLevel, msg, args) }

func (l *engineLogger) IsTraceEnabled() bool { return l.enabled(zerolog.TraceLevel) }
func (l *engineLogger) IsDebugEnabled() bool { return l.enabled(zerolog.DebugLevel) }
func (l *engineLogger) IsInfoEnabled() bool  { return l.enabled(zerolog.InfoLevel) }
func (l *engineLogger) IsWarnEnabled() bool  { return l.enabled(zerolog.WarnLevel) }
func (l *engineLogger) IsErrorEnabled() bool { return l.enabled(zerolog.ErrorLevel) }
func (l *engineLogger) IsFatalEnabled() bool { return l.enabled(zerolog.FatalLevel) }

func (l *engineLogger) enabled(level zerolog.Level) bool {
	return level >= l.logger.GetLevel() && level >= zerolog.GlobalLevel()
}

func (l *engineLogger) write(level zerolog.Level, msg string, args []any) {
	if !l.enabled(level) {
		return
	}
	event := l.logger.WithLevel(level)
	if event == nil {
		return
	}
	appendArgs(event, args)
	event.Msg(msg)
}

// appendArgs attaches supplementary values to event. The first error gets the
// standard error field enriched with its cause chain; later errors are keyed
// error_1, error_2, ...; everything else is collected under "args".
func appendArgs(event *zerolog.Event, args []any) {
	if len(args) == 0 {
		return
	}
	var rest []any
	errCount := 0
	for _, arg := range args {
		err, ok := arg.(error)
		if !ok || err == nil {
			rest = append(rest, arg)
			continue
		}
		key := zerolog.ErrorFieldName
		if errCount > 0 {
			key = zerolog.ErrorFieldName + "_" + strconv.Itoa(errCount)
		}
		errCount++
		appendError(event, key, err)
	}
	if len(rest) > 0 {
		event.Interface("args", rest)
	}
}

func appendError(event *zerolog.Event, key string, err error) {
	event.AnErr(key, err)
	chain, ops, root, rootOp := buildErrorChain(err)
	if len(chain) == 0 {
		return
	}
	event.Strs(key+"_chain", chain)
	event.Str(key+"_root", root)
	event.Str(key+"_history", joinChain(chain))
	event.Strs(key+"_ops", ops)
	if rootOp != emptyString {
		event.Str(key+"_root_op", rootOp)
	}
}
