package logfacade

import (
	stderrs "errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Resolution sources recorded by the resolutions counter.
const (
	sourceProvider = "provider"
	sourceFallback = "fallback"
	sourceUnusable = "unusable"
)

// metrics are only collected when a Registry is built WithMetrics. A nil
// *metrics is valid and records nothing.
type metrics struct {
	installs       prometheus.Counter
	resolutions    *prometheus.CounterVec
	fallbackBuilds prometheus.Counter
	fallbackErrors prometheus.Counter
}

// newMetrics registers the counters with reg. Registries sharing one
// registerer share the counters already registered there.
func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		installs: register(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "logfacade_provider_installs_total",
				Help: "Total number of SetProvider calls that changed the registration slot",
			},
		)),
		resolutions: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logfacade_resolutions_total",
				Help: "Total number of facade cache misses by the source that served them",
			},
			[]string{"source"},
		)),
		fallbackBuilds: register(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "logfacade_fallback_builds_total",
				Help: "Total number of successful fallback provider constructions",
			},
		)),
		fallbackErrors: register(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "logfacade_fallback_errors_total",
				Help: "Total number of failed fallback provider constructions",
			},
		)),
	}
}

// register adds c to reg, returning the collector registered earlier under
// the same descriptor if there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if stderrs.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		// An incompatible collector owns the name; count privately.
	}
	return c
}

func (m *metrics) installed() {
	if m != nil {
		m.installs.Inc()
	}
}

func (m *metrics) resolved(source string) {
	if m != nil {
		m.resolutions.WithLabelValues(source).Inc()
	}
}

func (m *metrics) fallbackBuilt(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.fallbackErrors.Inc()
		return
	}
	m.fallbackBuilds.Inc()
}
