package logfacade

import "go.uber.org/atomic"

// resolved is a facade's cached logger, valid only while the registry's
// version equals version.
type resolved struct {
	version uint64
	logger  Logger
}

// Facade is the handle applications hold. It re-resolves its concrete
// logger from the registry on every call and reuses the previous result
// only while no SetProvider happened in between.
type Facade struct {
	registry *Registry
	category string
	cache    atomic.Pointer[resolved]
}

var _ Logger = (*Facade)(nil)

func newFacade(r *Registry, category string) *Facade {
	return &Facade{registry: r, category: category}
}

// Category returns the facade's dot-separated category ("" for the root).
func (f *Facade) Category() string {
	return f.category
}

// GetLogger returns a child facade whose category is this category joined
// with name. An empty name returns f itself.
func (f *Facade) GetLogger(name string) *Facade {
	if name == emptyString {
		return f
	}
	if f.category == emptyString {
		return newFacade(f.registry, name)
	}
	return newFacade(f.registry, f.category+CategorySeparator+name)
}

// Resolve returns the logger the next call would delegate to. The error is
// non-nil only when the fallback provider is needed and cannot be built;
// Resolve always attempts the build again after an earlier failure.
func (f *Facade) Resolve() (Logger, error) {
	return f.resolve(true)
}

func (f *Facade) resolve(retry bool) (Logger, error) {
	state := f.registry.current()
	if c := f.cache.Load(); c != nil && c.version == state.version {
		return c.logger, nil
	}

	if state.provider != nil {
		l := state.provider.GetLogger(f.category)
		if !isNilValue(l) {
			f.cache.Store(&resolved{version: state.version, logger: l})
			f.registry.metrics.resolved(sourceProvider)
			return l, nil
		}
		// Not cached: the next call asks the provider again.
		f.cache.Store(nil)
		f.registry.metrics.resolved(sourceUnusable)
		return f.registry.fallbackLogger(f.category, retry)
	}

	l, err := f.registry.fallbackLogger(f.category, retry)
	if err != nil {
		f.cache.Store(nil)
		return nil, err
	}
	f.cache.Store(&resolved{version: state.version, logger: l})
	f.registry.metrics.resolved(sourceFallback)
	return l, nil
}

// logger never fails: while the fallback cannot be built the call is dropped.
// The failure is reported once per build attempt.
func (f *Facade) logger() Logger {
	l, err := f.resolve(false)
	if err != nil {
		return discardLogger{}
	}
	return l
}

// Log writes msg at severity s. Invalid severities are ignored.
func (f *Facade) Log(s Severity, msg string, args ...any) {
	if !s.IsValid() {
		return
	}
	logAt(f.logger(), s, msg, args)
}

// Enabled reports whether severity s is enabled on the current logger.
func (f *Facade) Enabled(s Severity) bool {
	if !s.IsValid() {
		return false
	}
	return enabledAt(f.logger(), s)
}

func (f *Facade) Trace(msg string, args ...any) { f.logger().Trace(msg, args...) }
func (f *Facade) Debug(msg string, args ...any) { f.logger().Debug(msg, args...) }
func (f *Facade) Info(msg string, args ...any)  { f.logger().Info(msg, args...) }
func (f *Facade) Warn(msg string, args ...any)  { f.logger().Warn(msg, args...) }
func (f *Facade) Error(msg string, args ...any) { f.logger().Error(msg, args...) }
func (f *Facade) Fatal(msg string, args ...any) { f.logger().Fatal(msg, args...) }

func (f *Facade) IsTraceEnabled() bool { return f.logger().IsTraceEnabled() }
func (f *Facade) IsDebugEnabled() bool { return f.logger().IsDebugEnabled() }
func (f *Facade) IsInfoEnabled() bool  { return f.logger().IsInfoEnabled() }
func (f *Facade) IsWarnEnabled() bool  { return f.logger().IsWarnEnabled() }
func (f *Facade) IsErrorEnabled() bool { return f.logger().IsErrorEnabled() }
func (f *Facade) IsFatalEnabled() bool { return f.logger().IsFatalEnabled() }
