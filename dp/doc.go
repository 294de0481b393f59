// SPDX-License-Identifier: MIT

// Package dp solves finite-horizon sequential decision problems by backward
// induction (the Bellman recursion) over discretized state and decision
// spaces.
//
// What does it compute?
//
//	Given N stages, a terminal cost and a per-stage elementary cost, the
//	optimal cost-to-go F is filled from the end of the horizon backwards:
//
//	  F[N, x] = TerminalCost(x)
//	  F[k, x] = min over u of ElementaryCost(k, x, u) + F[k+1, Transition(k, x, u)]
//
//	The stochastic engine replaces the second term by the expectation over a
//	finite random outcome w:
//
//	  F[k, x] = min over u of Σ_w p(w)·(ElementaryCost(k, x, u, w) + F[k+1, Transition(k, x, u, w)])
//
//	The minimizing decisions form the Policy. Reconstruct (or
//	Solution.Trajectory) walks the policy forward from an initial state.
//
// Infeasible transitions:
//
//	A transition may land on a state that is not one of the enumerated
//	states of stage k+1 (off-grid, out of bounds). The lookup goes
//	table → infeasibility cache → Resolver. The default resolver inserts the
//	infinity sentinel into the table for that raw state. IntervalResolver and
//	PairResolver clamp out-of-range values with a penalty and snap in-range
//	values to the sample grid.
//
// Determinism:
//   - Decisions are tried in enumeration order; only a strictly lower cost
//     replaces the incumbent, so the first minimizer wins ties.
//   - Stages are processed one after another. WithWorkers spreads the states
//     of one stage over goroutines; results are written back in enumeration
//     order, so the tables do not depend on the worker count.
//
// Options:
//
//	WithInfinity, WithWorkers, WithResolver, WithLogger (zap), WithTracer
//	(OpenTelemetry), WithMetrics (Prometheus), WithoutInfeasibilityCache.
//
// Usage:
//
//	sol, err := dp.Solve(ctx, problem, 4, dp.WithInfinity(10000))
//	if err != nil {
//	  // ErrNegativeStages, ErrMissingCostToGo, ctx.Err(), ...
//	}
//	states, decisions, err := sol.Trajectory(problem.InitialState(), problem.Transition)
package dp
