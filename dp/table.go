// SPDX-License-Identifier: MIT

package dp

import (
	"iter"
	"slices"
	"sync"
)

// Table is the cost-to-go map F[(stage, state)]. It is safe for concurrent
// use; the solver reads stage k+1 from several goroutines while stage k is
// evaluated.
//
// Keys of a stage are remembered in insertion order, which for solver-built
// tables is the enumeration order of States(stage) followed by any raw
// states the default resolver inserted.
type Table[S comparable] struct {
	mu     sync.RWMutex
	values map[Key[S]]float64
	order  map[int][]S
}

// NewTable returns an empty table.
func NewTable[S comparable]() *Table[S] {
	return &Table[S]{
		values: make(map[Key[S]]float64),
		order:  make(map[int][]S),
	}
}

// Get returns F[stage, state] and whether it is present. A miss does not
// modify the table.
func (t *Table[S]) Get(stage int, state S) (float64, bool) {
	t.mu.RLock()
	v, ok := t.values[Key[S]{Stage: stage, State: state}]
	t.mu.RUnlock()

	return v, ok
}

// Set stores F[stage, state] = v, overwriting any previous value.
func (t *Table[S]) Set(stage int, state S, v float64) {
	k := Key[S]{Stage: stage, State: state}
	t.mu.Lock()
	if _, ok := t.values[k]; !ok {
		t.order[stage] = append(t.order[stage], state)
	}
	t.values[k] = v
	t.mu.Unlock()
}

// GetOrInsert returns F[stage, state]. On a miss it stores def and returns it;
// the second result reports whether the entry already existed.
func (t *Table[S]) GetOrInsert(stage int, state S, def float64) (float64, bool) {
	if v, ok := t.Get(stage, state); ok {
		return v, true
	}
	k := Key[S]{Stage: stage, State: state}
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.values[k]; ok {
		return v, true
	}
	t.values[k] = def
	t.order[stage] = append(t.order[stage], state)

	return def, false
}

// Len reports the number of stored entries across all stages.
func (t *Table[S]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.values)
}

// Keys returns the states stored for stage, in insertion order.
func (t *Table[S]) Keys(stage int) []S {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Clone(t.order[stage])
}

// Stage yields (state, value) pairs of one stage in insertion order. The
// snapshot is taken when iteration starts.
func (t *Table[S]) Stage(stage int) iter.Seq2[S, float64] {
	return func(yield func(S, float64) bool) {
		t.mu.RLock()
		keys := slices.Clone(t.order[stage])
		vals := make([]float64, len(keys))
		for i, s := range keys {
			vals[i] = t.values[Key[S]{Stage: stage, State: s}]
		}
		t.mu.RUnlock()
		for i, s := range keys {
			if !yield(s, vals[i]) {
				return
			}
		}
	}
}

// Clone returns an independent deep copy.
func (t *Table[S]) Clone() *Table[S] {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c := &Table[S]{
		values: make(map[Key[S]]float64, len(t.values)),
		order:  make(map[int][]S, len(t.order)),
	}
	for k, v := range t.values {
		c.values[k] = v
	}
	for s, keys := range t.order {
		c.order[s] = slices.Clone(keys)
	}

	return c
}
