// SPDX-License-Identifier: MIT

package dp

import "errors"

// Every message is prefixed with "dp: ". Context (stage, state) is added with
// fmt.Errorf("...: %w", ErrX); match with errors.Is.
var (
	// ErrNilProblem is returned when a nil problem is passed to a solver.
	ErrNilProblem = errors.New("dp: problem is nil")

	// ErrNegativeStages is returned for a horizon N < 0.
	ErrNegativeStages = errors.New("dp: number of stages must be >= 0")

	// ErrNilOutcomes is returned when a stochastic problem yields no random
	// variable for a stage.
	ErrNilOutcomes = errors.New("dp: stage has no outcome distribution")

	// ErrMissingCostToGo signals an ordering violation: a snapped state of
	// stage k+1 has no cost-to-go while stage k is being evaluated. The
	// solve is aborted.
	ErrMissingCostToGo = errors.New("dp: cost-to-go missing for resolved state")

	// ErrResolverType is returned when WithResolver was given a resolver for a
	// different state type than the problem uses.
	ErrResolverType = errors.New("dp: resolver does not match the problem state type")

	// ErrNilPolicy is returned by Reconstruct for a nil policy.
	ErrNilPolicy = errors.New("dp: policy is nil")

	// ErrStateNotVisited is returned when the policy has no entry for a
	// (stage, state) because the state was never enumerated at that stage.
	ErrStateNotVisited = errors.New("dp: state not visited by the solver")

	// ErrUnreachableState is returned when the state was evaluated but no
	// decision improved on the infinity sentinel.
	ErrUnreachableState = errors.New("dp: no feasible decision for state")
)
