// SPDX-License-Identifier: MIT

package dp

import (
	"context"
	"fmt"
)

// Solution is the result of one backward pass. It is read-only once returned.
type Solution[S, D comparable] struct {
	// Costs holds F for every evaluated (stage, state), plus raw states the
	// default resolver inserted with the infinity sentinel.
	Costs *Table[S]

	// Policy holds the minimizing decision of every state of stages 0..N-1.
	Policy *Policy[S, D]

	// Stages is the horizon N.
	Stages int

	// Infinity is the sentinel the solve ran with.
	Infinity float64
}

// CostToGo returns F[stage, state] without modifying the table.
func (s *Solution[S, D]) CostToGo(stage int, state S) (float64, bool) {
	return s.Costs.Get(stage, state)
}

// Decision returns the optimal decision at (stage, state).
func (s *Solution[S, D]) Decision(stage int, state S) (D, error) {
	return s.Policy.Decision(stage, state)
}

// Feasible reports whether F[stage, state] is present and below the sentinel.
func (s *Solution[S, D]) Feasible(stage int, state S) bool {
	v, ok := s.Costs.Get(stage, state)

	return ok && v < s.Infinity
}

// Trajectory reconstructs the optimal path from initial over the whole
// horizon. transition must map each state onto the states the solver
// enumerated (see Snapped).
func (s *Solution[S, D]) Trajectory(initial S, transition func(stage int, state S, decision D) S) ([]S, []D, error) {
	return Reconstruct(initial, s.Stages, s.Policy, transition)
}

// Solve fills the cost-to-go table of p over n stages by backward induction
// and returns it with the optimal policy.
//
// Errors:
//   - ErrNilProblem, ErrNegativeStages: invalid arguments.
//   - ErrResolverType: WithResolver for another state type.
//   - resolver errors (e.g. ErrMissingCostToGo), unmodified in the chain.
//   - ctx.Err() when the context ends between stages.
//
// On error the returned Solution is nil.
func Solve[S, D comparable](ctx context.Context, p Problem[S, D], n int, opts ...Option) (*Solution[S, D], error) {
	return SolveFrom(ctx, p, n, nil, opts...)
}

// SolveFrom is Solve with the tables seeded from a previous solution. The
// seed is copied, never modified. A nil seed behaves like Solve.
func SolveFrom[S, D comparable](ctx context.Context, p Problem[S, D], n int, seed *Solution[S, D], opts ...Option) (*Solution[S, D], error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeStages, n)
	}
	o := gatherOptions(opts)
	costs, policy := seeded(seed)
	sess, err := newSession[S](costs, p, o)
	if err != nil {
		return nil, err
	}

	eval := func(k int, x S, decisions []D) (choice[D], error) {
		best := choice[D]{cost: sess.inf}
		for _, u := range decisions {
			ctg, err := sess.costToGo(k+1, p.Transition(k, x, u))
			if err != nil {
				return best, err
			}
			if c := p.ElementaryCost(k, x, u) + ctg; c < best.cost {
				best = choice[D]{cost: c, decision: u, found: true}
			}
		}

		return best, nil
	}

	if err = backward[S, D](ctx, ModeDeterministic, p, n, sess, policy, o, eval); err != nil {
		return nil, err
	}

	return &Solution[S, D]{Costs: costs, Policy: policy, Stages: n, Infinity: o.Infinity}, nil
}

// SolveStochastic is Solve for problems with a random outcome per stage. The
// value of a decision is the expectation over Outcomes(k) of elementary cost
// plus cost-to-go of the outcome-specific next state. No discounting.
func SolveStochastic[S, D comparable, W any](ctx context.Context, p StochasticProblem[S, D, W], n int, opts ...Option) (*Solution[S, D], error) {
	return SolveStochasticFrom(ctx, p, n, nil, opts...)
}

// SolveStochasticFrom is SolveStochastic with seeded tables.
func SolveStochasticFrom[S, D comparable, W any](ctx context.Context, p StochasticProblem[S, D, W], n int, seed *Solution[S, D], opts ...Option) (*Solution[S, D], error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeStages, n)
	}
	o := gatherOptions(opts)
	costs, policy := seeded(seed)
	sess, err := newSession[S](costs, p, o)
	if err != nil {
		return nil, err
	}

	eval := func(k int, x S, decisions []D) (choice[D], error) {
		best := choice[D]{cost: sess.inf}
		w := p.Outcomes(k)
		if w == nil {
			return best, fmt.Errorf("stage %d: %w", k, ErrNilOutcomes)
		}
		for _, u := range decisions {
			expected := 0.0
			for outcome, prob := range w.All() {
				// 0·Inf is NaN; an impossible outcome contributes nothing.
				if prob == 0 {
					continue
				}
				ctg, err := sess.costToGo(k+1, p.Transition(k, x, u, outcome))
				if err != nil {
					return best, err
				}
				expected += prob * (p.ElementaryCost(k, x, u, outcome) + ctg)
			}
			if expected < best.cost {
				best = choice[D]{cost: expected, decision: u, found: true}
			}
		}

		return best, nil
	}

	if err = backward[S, D](ctx, ModeStochastic, p, n, sess, policy, o, eval); err != nil {
		return nil, err
	}

	return &Solution[S, D]{Costs: costs, Policy: policy, Stages: n, Infinity: o.Infinity}, nil
}

func seeded[S, D comparable](seed *Solution[S, D]) (*Table[S], *Policy[S, D]) {
	if seed == nil {
		return NewTable[S](), NewPolicy[S, D]()
	}
	costs, policy := NewTable[S](), NewPolicy[S, D]()
	if seed.Costs != nil {
		costs = seed.Costs.Clone()
	}
	if seed.Policy != nil {
		policy = seed.Policy.Clone()
	}

	return costs, policy
}
