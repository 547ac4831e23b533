package logfacade

import (
	"io"
	"os"
	"sync"
	"time"

	smerrors "github.com/Station-Manager/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// slotState is one value of the registration slot. version increases on
// every SetProvider, so facades compare versions instead of provider identity.
type slotState struct {
	provider Provider
	version  uint64
}

// Registry is the registration slot: the single place holding the active
// Provider, shared by every Facade created from it. A Registry is never torn
// down; the package-level functions use a process default (see Default).
type Registry struct {
	mu    sync.Mutex
	state atomic.Pointer[slotState]

	fallback *fallback
	root     *Facade
	diag     zerolog.Logger
	metrics  *metrics

	lookup        func(string) (string, bool)
	fallbackOut   io.Writer
	fallbackBuild func() (Provider, error)
	fallbackRetry time.Duration
}

// Option customizes NewRegistry.
type Option func(*Registry)

// WithEnvLookup replaces os.LookupEnv for the fallback settings.
func WithEnvLookup(lookup func(string) (string, bool)) Option {
	return func(r *Registry) {
		if lookup != nil {
			r.lookup = lookup
		}
	}
}

// WithDiagnostics sends the registry's own notes and warnings to w instead of stderr.
func WithDiagnostics(w io.Writer) Option {
	return func(r *Registry) {
		if w != nil {
			r.diag = newDiagnostics(w)
		}
	}
}

// WithFallbackOutput routes the console appenders of the fallback engine to w.
func WithFallbackOutput(w io.Writer) Option {
	return func(r *Registry) {
		r.fallbackOut = w
	}
}

// WithFallback replaces the environment-driven fallback construction.
// build still runs at most once successfully.
func WithFallback(build func() (Provider, error)) Option {
	return func(r *Registry) {
		r.fallbackBuild = build
	}
}

// WithFallbackRetryInterval sets how long logging calls drop messages after a
// failed fallback build before trying again. Resolve and Fallback always retry.
func WithFallbackRetryInterval(d time.Duration) Option {
	return func(r *Registry) {
		if d >= 0 {
			r.fallbackRetry = d
		}
	}
}

// WithMetrics registers the registry's counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Registry) {
		if reg != nil {
			r.metrics = newMetrics(reg)
		}
	}
}

// NewRegistry returns an unset registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		lookup:        os.LookupEnv,
		diag:          newDiagnostics(os.Stderr),
		fallbackRetry: DefaultFallbackRetryInterval,
	}
	r.state.Store(&slotState{})
	for _, opt := range opts {
		opt(r)
	}

	build := r.fallbackBuild
	if build == nil {
		build = r.buildFallback
	}
	r.fallback = &fallback{
		build:      build,
		retryAfter: r.fallbackRetry,
		onFailure:  r.reportFallbackError,
		metrics:    r.metrics,
		now:        time.Now,
	}
	r.root = newFacade(r, emptyString)
	return r
}

func newDiagnostics(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		With().Timestamp().Str("component", "logfacade").Logger()
}

// Provider returns the installed provider, or nil when the slot is unset.
func (r *Registry) Provider() Provider {
	return r.state.Load().provider
}

// Version returns the number of SetProvider calls applied so far.
func (r *Registry) Version() uint64 {
	return r.state.Load().version
}

// SetProvider installs p, or clears the slot when p is nil. A typed nil
// (such as a nil pointer or nil ProviderFunc) is rejected and the slot is
// left unchanged. Outstanding facades pick up the change on their next call.
func (r *Registry) SetProvider(p Provider) error {
	const op smerrors.Op = "logfacade.Registry.SetProvider"
	if p != nil && isNilValue(p) {
		return smerrors.New(op).Err(ErrInvalidProvider).Msg(errMsgNilProvider)
	}
	r.store(p)
	return nil
}

// SetProviderValue is SetProvider for values whose type is only known at
// runtime: nil clears the slot, anything that is not a Provider is rejected.
func (r *Registry) SetProviderValue(v any) error {
	const op smerrors.Op = "logfacade.Registry.SetProviderValue"
	if v == nil {
		r.store(nil)
		return nil
	}
	p, ok := v.(Provider)
	if !ok {
		return smerrors.New(op).Err(ErrInvalidProvider).Msg(errMsgNotProvider)
	}
	return r.SetProvider(p)
}

func (r *Registry) store(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur := r.state.Load()
	r.state.Store(&slotState{provider: p, version: cur.version + 1})
	r.metrics.installed()
}

func (r *Registry) current() *slotState {
	return r.state.Load()
}

// Root returns the registry's root facade (empty category).
func (r *Registry) Root() *Facade {
	return r.root
}

// GetLogger returns a facade for category; "" yields the root facade.
func (r *Registry) GetLogger(category string) *Facade {
	return r.root.GetLogger(category)
}

// Fallback returns the fallback provider, constructing it on first use.
func (r *Registry) Fallback() (Provider, error) {
	return r.fallback.get()
}

func (r *Registry) buildFallback() (Provider, error) {
	cfg, err := BuildFallbackConfig(SettingsFromEnv(r.lookup), r.diag)
	if err != nil {
		return nil, err
	}
	var opts []EngineOption
	if r.fallbackOut != nil {
		opts = append(opts, WithConsoleOutput(r.fallbackOut))
	}
	return NewEngine(cfg, opts...)
}

// fallbackLogger returns the fallback logger for category. Without retry a
// recent build failure is returned as is, so logging calls stay off the build.
func (r *Registry) fallbackLogger(category string, retry bool) (Logger, error) {
	p, err := r.fallback.load(retry)
	if err != nil {
		return nil, err
	}
	l := p.GetLogger(category)
	if isNilValue(l) {
		return discardLogger{}, nil
	}
	return l, nil
}

func (r *Registry) reportFallbackError(err error) {
	r.diag.Error().
		Err(err).
		Dur("retry_after", r.fallbackRetry).
		Msg("fallback logger provider is unavailable, messages are dropped until it can be built")
}
