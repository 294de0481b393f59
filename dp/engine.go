// SPDX-License-Identifier: MIT

package dp

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// resolved is one infeasibility cache entry.
type resolved[S comparable] struct {
	state S
	cost  float64
}

// session owns the mutable state of one solve: the cost table, the
// infeasibility cache and the resolver. It is shared by both engines.
type session[S comparable] struct {
	costs    *Table[S]
	inf      float64
	resolver Resolver[S]

	cacheOn bool
	cacheMu sync.Mutex
	cache   map[Key[S]]resolved[S]

	resolutions atomic.Int64
	hits        atomic.Int64
}

func newSession[S comparable](costs *Table[S], problem any, o Options) (*session[S], error) {
	s := &session[S]{
		costs:   costs,
		inf:     o.Infinity,
		cacheOn: o.Cache,
		cache:   make(map[Key[S]]resolved[S]),
	}
	switch {
	case o.resolver != nil:
		r, ok := o.resolver.(Resolver[S])
		if !ok {
			return nil, fmt.Errorf("%w: got %T", ErrResolverType, o.resolver)
		}
		s.resolver = r
	default:
		if r, ok := problem.(Resolver[S]); ok {
			s.resolver = r
		} else {
			s.resolver = ResolverFunc[S](s.lazyInfinity)
		}
	}

	return s, nil
}

// lazyInfinity is the default resolver: a missing state costs the sentinel,
// and the miss is written into the table.
func (s *session[S]) lazyInfinity(stage int, raw S, costs *Table[S]) (S, float64, error) {
	v, _ := costs.GetOrInsert(stage, raw, s.inf)

	return raw, v, nil
}

// costToGo returns the cost-to-go of reaching raw at stage: table first,
// then the infeasibility cache, then the resolver.
func (s *session[S]) costToGo(stage int, raw S) (float64, error) {
	if v, ok := s.costs.Get(stage, raw); ok {
		return v, nil
	}
	key := Key[S]{Stage: stage, State: raw}
	if s.cacheOn {
		s.cacheMu.Lock()
		r, ok := s.cache[key]
		s.cacheMu.Unlock()
		if ok {
			s.hits.Add(1)

			return r.cost, nil
		}
	}
	state, cost, err := s.resolver.Resolve(stage, raw, s.costs)
	if err != nil {
		return 0, err
	}
	s.resolutions.Add(1)
	if s.cacheOn {
		s.cacheMu.Lock()
		s.cache[key] = resolved[S]{state: state, cost: cost}
		s.cacheMu.Unlock()
	}

	return cost, nil
}

// choice is the outcome of minimizing over the decisions of one state.
type choice[D comparable] struct {
	cost     float64
	decision D
	found    bool
}

// evaluator minimizes over decisions for one state of a stage.
type evaluator[S, D comparable] func(stage int, state S, decisions []D) (choice[D], error)

// backward runs the recursion shared by Solve and SolveStochastic; only the
// per-state evaluation differs.
func backward[S, D comparable](
	ctx context.Context,
	mode string,
	spaces Spaces[S, D],
	n int,
	sess *session[S],
	policy *Policy[S, D],
	o Options,
	eval evaluator[S, D],
) (err error) {
	ctx, span := o.Tracer.Start(ctx, spanName(mode),
		trace.WithAttributes(
			attribute.String("mode", mode),
			attribute.Int("stages", n),
			attribute.Int("workers", o.Workers),
			// JSON exporters cannot encode a +Inf float.
			attribute.String("infinity", strconv.FormatFloat(o.Infinity, 'g', -1, 64)),
		),
	)
	defer span.End()

	log := o.Logger.With(zap.String("mode", mode))
	start := time.Now()
	defer func() {
		o.Metrics.observeSolve(mode, err, sess.resolutions.Load(), sess.hits.Load())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Warn("solve failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))

			return
		}
		span.SetAttributes(
			attribute.Int("table_entries", sess.costs.Len()),
			attribute.Int64("resolutions", sess.resolutions.Load()),
			attribute.Int64("cache_hits", sess.hits.Load()),
		)
		span.SetStatus(codes.Ok, "")
		log.Debug("solve finished",
			zap.Int("stages", n),
			zap.Int("entries", sess.costs.Len()),
			zap.Int64("resolutions", sess.resolutions.Load()),
			zap.Int64("cache_hits", sess.hits.Load()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}()

	if err = ctx.Err(); err != nil {
		return err
	}
	for x := range spaces.States(n) {
		sess.costs.Set(n, x, spaces.TerminalCost(x))
	}

	for k := n - 1; k >= 0; k-- {
		if err = ctx.Err(); err != nil {
			return err
		}
		if err = stage(ctx, mode, spaces, k, sess, policy, o, eval, log); err != nil {
			return err
		}
	}

	return nil
}

func stage[S, D comparable](
	ctx context.Context,
	mode string,
	spaces Spaces[S, D],
	k int,
	sess *session[S],
	policy *Policy[S, D],
	o Options,
	eval evaluator[S, D],
	log *zap.Logger,
) error {
	ctx, span := o.Tracer.Start(ctx, "dp.Stage", trace.WithAttributes(attribute.Int("stage", k)))
	defer span.End()
	began := time.Now()

	states := slices.Collect(spaces.States(k))
	decisions := slices.Collect(spaces.Decisions(k))
	results := make([]choice[D], len(states))

	run := func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			c, err := eval(k, states[i], decisions)
			if err != nil {
				return err
			}
			results[i] = c
		}

		return nil
	}

	if o.Workers <= 1 || len(states) < 2 {
		if err := run(0, len(states)); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			return err
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.Workers)
		for _, c := range chunks(len(states), o.Workers) {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				return run(c[0], c[1])
			})
		}
		if err := g.Wait(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			return err
		}
	}

	for i, x := range states {
		c := results[i]
		sess.costs.Set(k, x, c.cost)
		if c.found {
			policy.Set(k, x, c.decision)
		} else {
			policy.MarkUnreachable(k, x)
		}
	}

	elapsed := time.Since(began)
	span.SetAttributes(attribute.Int("states", len(states)), attribute.Int("decisions", len(decisions)))
	o.Metrics.observeStage(mode, elapsed, len(states))
	log.Debug("stage solved",
		zap.Int("stage", k),
		zap.Int("states", len(states)),
		zap.Int("decisions", len(decisions)),
		zap.Duration("elapsed", elapsed),
	)

	return nil
}

// chunks splits [0, n) into at most parts contiguous ranges of near-equal size.
func chunks(n, parts int) [][2]int {
	if parts > n {
		parts = n
	}
	out := make([][2]int, 0, parts)
	size, rem := n/parts, n%parts
	lo := 0
	for i := 0; i < parts; i++ {
		hi := lo + size
		if i < rem {
			hi++
		}
		out = append(out, [2]int{lo, hi})
		lo = hi
	}

	return out
}

func spanName(mode string) string {
	if mode == ModeStochastic {
		return "dp.SolveStochastic"
	}

	return "dp.Solve"
}
