// SPDX-License-Identifier: MIT

package dp

import "fmt"

// Reconstruct walks policy forward from initial for n stages:
//
//	u_k = policy[k, x_k],  x_{k+1} = transition(k, x_k, u_k)
//
// It returns n+1 states and n decisions. A state without a policy entry
// stops the walk with an error wrapping ErrUnreachableState or
// ErrStateNotVisited; no fallback decision is invented.
func Reconstruct[S, D comparable](initial S, n int, policy *Policy[S, D], transition func(stage int, state S, decision D) S) ([]S, []D, error) {
	if policy == nil {
		return nil, nil, ErrNilPolicy
	}
	if n < 0 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrNegativeStages, n)
	}
	states := make([]S, 0, n+1)
	decisions := make([]D, 0, n)
	x := initial
	states = append(states, x)
	for k := 0; k < n; k++ {
		u, err := policy.Decision(k, x)
		if err != nil {
			return nil, nil, fmt.Errorf("dp: reconstruct: %w", err)
		}
		decisions = append(decisions, u)
		x = transition(k, x, u)
		states = append(states, x)
	}

	return states, decisions, nil
}
