// SPDX-License-Identifier: MIT

// Package dypro solves finite-horizon sequential decision problems by
// backward induction (Bellman's principle of optimality).
//
// A problem supplies per-stage state and decision sets, an elementary cost,
// a transition and a terminal cost. The engine fills the cost-to-go table
// F[k, x] stage by stage from the horizon back to zero, records the
// minimizing decision of every state and reconstructs the optimal path from
// the initial state.
//
// Layout:
//
//	dp/                the engine: Problem contracts, Solve, SolveStochastic,
//	                   cost table, policy, resolvers, telemetry options
//	random/            finite random variables for stochastic outcomes
//	sampling/          grids that discretize continuous states and decisions
//	production/        deterministic, delayed and stochastic production planning
//	hydro/             hydroelectric reservoir scheduling, single and joint
//	internal/scenario/ YAML scenario files, runs and sampling sweeps
//	cmd/dypro/         the command line driver
//
// Quick start:
//
//	sol, err := dp.Solve(ctx, problem, n, dp.WithWorkers(4))
//	if err != nil {
//		return err
//	}
//	states, decisions, err := sol.Trajectory(problem.InitialState(), problem.Transition)
package dypro
