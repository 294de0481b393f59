// SPDX-License-Identifier: MIT

package dp

import (
	"fmt"
	"sync"
)

// Policy maps (stage, state) to the minimizing decision. States the solver
// evaluated without finding anything better than the infinity sentinel are
// kept in a separate unreachable set so that lookups can tell them apart
// from states that were never enumerated.
type Policy[S, D comparable] struct {
	mu          sync.RWMutex
	decisions   map[Key[S]]D
	unreachable map[Key[S]]struct{}
}

// NewPolicy returns an empty policy.
func NewPolicy[S, D comparable]() *Policy[S, D] {
	return &Policy[S, D]{
		decisions:   make(map[Key[S]]D),
		unreachable: make(map[Key[S]]struct{}),
	}
}

// Set records the decision for (stage, state) and clears any unreachable mark.
func (p *Policy[S, D]) Set(stage int, state S, d D) {
	k := Key[S]{Stage: stage, State: state}
	p.mu.Lock()
	p.decisions[k] = d
	delete(p.unreachable, k)
	p.mu.Unlock()
}

// MarkUnreachable records that (stage, state) has no finite decision.
func (p *Policy[S, D]) MarkUnreachable(stage int, state S) {
	k := Key[S]{Stage: stage, State: state}
	p.mu.Lock()
	delete(p.decisions, k)
	p.unreachable[k] = struct{}{}
	p.mu.Unlock()
}

// Lookup returns the decision and whether one is recorded.
func (p *Policy[S, D]) Lookup(stage int, state S) (D, bool) {
	p.mu.RLock()
	d, ok := p.decisions[Key[S]{Stage: stage, State: state}]
	p.mu.RUnlock()

	return d, ok
}

// Decision returns the decision for (stage, state) or an error wrapping
// ErrUnreachableState or ErrStateNotVisited.
func (p *Policy[S, D]) Decision(stage int, state S) (D, error) {
	k := Key[S]{Stage: stage, State: state}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if d, ok := p.decisions[k]; ok {
		return d, nil
	}
	var zero D
	if _, ok := p.unreachable[k]; ok {
		return zero, fmt.Errorf("stage %d state %v: %w", stage, state, ErrUnreachableState)
	}

	return zero, fmt.Errorf("stage %d state %v: %w", stage, state, ErrStateNotVisited)
}

// Unreachable reports whether (stage, state) was marked unreachable.
func (p *Policy[S, D]) Unreachable(stage int, state S) bool {
	p.mu.RLock()
	_, ok := p.unreachable[Key[S]{Stage: stage, State: state}]
	p.mu.RUnlock()

	return ok
}

// Len reports the number of recorded decisions.
func (p *Policy[S, D]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.decisions)
}

// Clone returns an independent copy.
func (p *Policy[S, D]) Clone() *Policy[S, D] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c := &Policy[S, D]{
		decisions:   make(map[Key[S]]D, len(p.decisions)),
		unreachable: make(map[Key[S]]struct{}, len(p.unreachable)),
	}
	for k, d := range p.decisions {
		c.decisions[k] = d
	}
	for k := range p.unreachable {
		c.unreachable[k] = struct{}{}
	}

	return c
}
