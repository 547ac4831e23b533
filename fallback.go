package logfacade

import (
	"os"
	"strings"
	"time"

	smerrors "github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

// FallbackSettings are the environment inputs of the fallback provider.
// Empty fields are treated as absent.
type FallbackSettings struct {
	Level      string
	ConfigPath string
}

// SettingsFromEnv reads LOG_LEVEL and LOG_CONFIG through lookup
// (os.LookupEnv when nil).
func SettingsFromEnv(lookup func(string) (string, bool)) FallbackSettings {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var s FallbackSettings
	if v, ok := lookup(EnvLogLevel); ok {
		s.Level = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogConfig); ok {
		s.ConfigPath = strings.TrimSpace(v)
	}
	return s
}

// BuildFallbackConfig produces the fallback configuration:
//   - ConfigPath only: the file, verbatim
//   - ConfigPath and Level: the file with every category forced to Level
//   - neither path: one console appender and the default category at Level
//     (or DefaultLevel)
//
// Level overrides are announced on diag.
func BuildFallbackConfig(s FallbackSettings, diag zerolog.Logger) (Config, error) {
	if s.ConfigPath != emptyString {
		cfg, err := LoadConfigFile(s.ConfigPath)
		if err != nil {
			return Config{}, err
		}
		if s.Level != emptyString {
			cfg.OverrideLevels(s.Level)
			diag.Info().
				Str("level", s.Level).
				Str("config", s.ConfigPath).
				Msg("Note: log level was overridden by value from " + EnvLogLevel + " environment variable")
		}
		return cfg, nil
	}

	if s.Level != emptyString {
		diag.Info().
			Str("level", s.Level).
			Msg("Note: log level was set by value from " + EnvLogLevel + " environment variable")
	}
	return DefaultConfig(s.Level), nil
}

// DefaultFallbackRetryInterval is how long logging calls keep dropping
// messages after a failed fallback build before they attempt another one.
const DefaultFallbackRetryInterval = 5 * time.Second

type builtProvider struct {
	provider Provider
}

type buildFailure struct {
	err error
	at  time.Time
}

// fallback constructs its provider at most once. Concurrent first callers
// share one build. A failed build is not retained as the provider: get
// retries immediately, while load without retry reuses the failure until
// retryAfter has elapsed.
type fallback struct {
	build      func() (Provider, error)
	group      singleflight.Group
	built      atomic.Pointer[builtProvider]
	failed     atomic.Pointer[buildFailure]
	retryAfter time.Duration
	onFailure  func(error)
	metrics    *metrics
	now        func() time.Time
}

func (f *fallback) get() (Provider, error) {
	return f.load(true)
}

func (f *fallback) load(retry bool) (Provider, error) {
	if b := f.built.Load(); b != nil {
		return b.provider, nil
	}
	if !retry {
		if last := f.failed.Load(); last != nil && f.now().Sub(last.at) < f.retryAfter {
			return nil, last.err
		}
	}

	v, err, _ := f.group.Do("fallback", func() (any, error) {
		if b := f.built.Load(); b != nil {
			return b.provider, nil
		}
		p, err := f.build()
		if err == nil && isNilValue(p) {
			err = smerrors.New("logfacade.fallback.load").Err(ErrInvalidProvider).Msg(errMsgFallbackNil)
		}
		f.metrics.fallbackBuilt(err)
		if err != nil {
			f.failed.Store(&buildFailure{err: err, at: f.now()})
			if f.onFailure != nil {
				f.onFailure(err)
			}
			return nil, err
		}
		f.built.Store(&builtProvider{provider: p})
		f.failed.Store(nil)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Provider), nil
}
