// SPDX-License-Identifier: MIT

package dp

import (
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TracerName is the instrumentation scope used when no tracer is supplied.
const TracerName = "github.com/katalvlaran/dypro/dp"

// Defaults.
const (
	// DefaultWorkers evaluates each stage on the calling goroutine.
	DefaultWorkers = 1

	// DefaultCache keeps the infeasibility cache enabled.
	DefaultCache = true
)

// Panic messages of the WithX constructors (programmer errors).
const (
	panicInfinityNaN = "dp: WithInfinity requires a non-NaN value"
	panicWorkers     = "dp: WithWorkers requires n >= 1"
	panicNilTracer   = "dp: WithTracer requires a non-nil tracer"
	panicNilResolver = "dp: WithResolver requires a non-nil resolver"
)

// Options configures one solver invocation.
type Options struct {
	// Infinity is the sentinel standing for "infeasible". It may be finite
	// (e.g. 10000) so that infeasible candidates still order against each other.
	Infinity float64

	// Workers is the number of goroutines evaluating the states of one stage.
	Workers int

	// Cache enables the per-solve infeasibility cache keyed by (k+1, raw state).
	Cache bool

	Logger  *zap.Logger
	Tracer  trace.Tracer
	Metrics *Metrics

	// resolver holds a Resolver[S]; its S is checked against the problem at
	// solve time.
	resolver any
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults: +Inf sentinel, one worker,
// cache on, no-op logger, global OpenTelemetry tracer, no metrics.
func DefaultOptions() Options {
	return Options{
		Infinity: math.Inf(1),
		Workers:  DefaultWorkers,
		Cache:    DefaultCache,
		Logger:   zap.NewNop(),
		Tracer:   otel.Tracer(TracerName),
	}
}

func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// WithInfinity sets the infinity sentinel. Panics on NaN.
func WithInfinity(v float64) Option {
	if math.IsNaN(v) {
		panic(panicInfinityNaN)
	}

	return func(o *Options) { o.Infinity = v }
}

// WithWorkers sets the per-stage parallelism. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}

	return func(o *Options) { o.Workers = n }
}

// WithoutInfeasibilityCache disables the infeasibility cache; every miss goes
// to the resolver.
func WithoutInfeasibilityCache() Option {
	return func(o *Options) { o.Cache = false }
}

// WithLogger sets the logger. nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		l = zap.NewNop()
	}

	return func(o *Options) { o.Logger = l }
}

// WithTracer sets the OpenTelemetry tracer. Panics on nil.
func WithTracer(t trace.Tracer) Option {
	if t == nil {
		panic(panicNilTracer)
	}

	return func(o *Options) { o.Tracer = t }
}

// WithMetrics records solver metrics into m. nil disables metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithResolver overrides the infeasibility resolver. The state type must
// match the problem's, otherwise the solve fails with ErrResolverType.
// Panics on nil.
func WithResolver[S comparable](r Resolver[S]) Option {
	if r == nil {
		panic(panicNilResolver)
	}

	return func(o *Options) { o.resolver = r }
}
