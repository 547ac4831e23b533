package logfacade

import (
	stderrs "errors"
	"reflect"
	"strings"

	smerrors "github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
)

// parseLevel parses a configuration level name into a zerolog.Level.
// "all" and "off" are accepted alongside the severity names.
func parseLevel(level string) (zerolog.Level, error) {
	const op smerrors.Op = "logfacade.parseLevel"
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "all", "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "fatal":
		return zerolog.FatalLevel, nil
	case "off", "disabled":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, smerrors.New(op).Msg(errMsgUnknownLevel + " " + level)
}

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - ops: operation identifiers for DetailedError links ("" if not available)
//   - root: the innermost error message
//   - rootOp: the innermost operation identifier if available
//
// The traversal prefers Station-Manager DetailedError.Cause() and then
// falls back to stdlib errors.Unwrap. It guards against excessive depth
// and repeated messages to avoid cycles.
func buildErrorChain(err error) (chain []string, ops []string, root string, rootOp string) {
	walkErrorChain(err, func(e error, op string) bool {
		chain = append(chain, e.Error())
		ops = append(ops, op)
		return true
	})
	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	if len(ops) > 0 {
		rootOp = ops[len(ops)-1]
	}
	return
}

// walkErrorChain calls visit for every link of err until visit returns false.
func walkErrorChain(err error, visit func(e error, op string) bool) {
	const maxDepth = 50
	visited := 0
	seen := map[string]bool{}

	for err != nil && visited < maxDepth {
		visited++

		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			if !visit(err, string(dErr.Op())) {
				return
			}
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			return
		}
		seen[msg] = true
		if !visit(err, emptyString) {
			return
		}
		err = stderrs.Unwrap(err)
	}
}

// hasCause reports whether target appears anywhere in err's cause chain.
func hasCause(err, target error) bool {
	if err == nil || target == nil {
		return false
	}
	if stderrs.Is(err, target) {
		return true
	}
	found := false
	walkErrorChain(err, func(e error, _ string) bool {
		if e == target || stderrs.Is(e, target) {
			found = true
			return false
		}
		return true
	})
	return found
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return emptyString
	}
	return strings.Join(chain, " -> ")
}

// isNilValue reports whether v is nil or an interface holding a nil pointer,
// map, slice, func, or channel.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
