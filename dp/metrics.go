// SPDX-License-Identifier: MIT

package dp

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Solver modes used as the "mode" label.
const (
	ModeDeterministic = "deterministic"
	ModeStochastic    = "stochastic"
)

// Metrics groups the Prometheus collectors the solvers report to. All
// methods are no-ops on a nil receiver.
type Metrics struct {
	solves        *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	states        *prometheus.CounterVec
	resolutions   *prometheus.CounterVec
	cacheHits     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered. Collectors already registered under the same
// names are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dypro",
			Name:      "solves_total",
			Help:      "Backward-induction runs by mode and outcome.",
		}, []string{"mode", "status"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dypro",
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent evaluating one stage.",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 60},
		}, []string{"mode"}),
		states: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dypro",
			Name:      "states_evaluated_total",
			Help:      "States evaluated across all stages.",
		}, []string{"mode"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dypro",
			Name:      "infeasibility_resolutions_total",
			Help:      "Resolver calls for next states missing from the cost table.",
		}, []string{"mode"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dypro",
			Name:      "infeasibility_cache_hits_total",
			Help:      "Next-state lookups answered by the infeasibility cache.",
		}, []string{"mode"}),
	}
	if reg == nil {
		return m, nil
	}
	var err error
	m.solves, err = register(reg, m.solves)
	if err != nil {
		return nil, err
	}
	m.stageDuration, err = register(reg, m.stageDuration)
	if err != nil {
		return nil, err
	}
	m.states, err = register(reg, m.states)
	if err != nil {
		return nil, err
	}
	m.resolutions, err = register(reg, m.resolutions)
	if err != nil {
		return nil, err
	}
	m.cacheHits, err = register(reg, m.cacheHits)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, err
	}

	return c, nil
}

func (m *Metrics) observeStage(mode string, d time.Duration, states int) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(mode).Observe(d.Seconds())
	m.states.WithLabelValues(mode).Add(float64(states))
}

func (m *Metrics) observeSolve(mode string, err error, resolutions, hits int64) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.solves.WithLabelValues(mode, status).Inc()
	m.resolutions.WithLabelValues(mode).Add(float64(resolutions))
	m.cacheHits.WithLabelValues(mode).Add(float64(hits))
}
