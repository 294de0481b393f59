// SPDX-License-Identifier: MIT

package dp

import (
	"fmt"

	"github.com/katalvlaran/dypro/sampling"
)

// IntervalResolver resolves scalar states sampled on Grid.
//
// A raw state outside [Grid.Min, Grid.Max] is clamped to the violated bound
// and charged Penalty, without snapping and without reading the table. A
// raw state inside is snapped to the nearest sample, whose cost-to-go must
// already be in the table; otherwise Resolve fails with ErrMissingCostToGo.
type IntervalResolver struct {
	Grid    sampling.Grid
	Penalty float64
}

// Resolve implements Resolver[float64].
func (r IntervalResolver) Resolve(stage int, raw float64, costs *Table[float64]) (float64, float64, error) {
	if !r.Grid.Contains(raw) {
		return sampling.Limit(raw, r.Grid.Min, r.Grid.Max), r.Penalty, nil
	}
	x := r.Grid.Nearest(raw)
	v, ok := costs.Get(stage, x)
	if !ok {
		return x, 0, fmt.Errorf("%w: stage %d state %v (raw %v)", ErrMissingCostToGo, stage, x, raw)
	}

	return x, v, nil
}

// Snap returns the grid-projected state Resolve would pick, without a
// table lookup.
func (r IntervalResolver) Snap(raw float64) float64 {
	if !r.Grid.Contains(raw) {
		return sampling.Limit(raw, r.Grid.Min, r.Grid.Max)
	}

	return r.Grid.Nearest(raw)
}

// PairResolver resolves two-dimensional states sampled on First × Second.
// If either coordinate is out of range both are clamped and Penalty is
// charged; otherwise both are snapped and the entry must exist.
type PairResolver struct {
	First   sampling.Grid
	Second  sampling.Grid
	Penalty float64
}

// Resolve implements Resolver[Pair[float64, float64]].
func (r PairResolver) Resolve(stage int, raw Pair[float64, float64], costs *Table[Pair[float64, float64]]) (Pair[float64, float64], float64, error) {
	if !r.First.Contains(raw.First) || !r.Second.Contains(raw.Second) {
		return r.clamp(raw), r.Penalty, nil
	}
	x := Pair[float64, float64]{First: r.First.Nearest(raw.First), Second: r.Second.Nearest(raw.Second)}
	v, ok := costs.Get(stage, x)
	if !ok {
		return x, 0, fmt.Errorf("%w: stage %d state %v (raw %v)", ErrMissingCostToGo, stage, x, raw)
	}

	return x, v, nil
}

// Snap returns the projected pair without a table lookup.
func (r PairResolver) Snap(raw Pair[float64, float64]) Pair[float64, float64] {
	if !r.First.Contains(raw.First) || !r.Second.Contains(raw.Second) {
		return r.clamp(raw)
	}

	return Pair[float64, float64]{First: r.First.Nearest(raw.First), Second: r.Second.Nearest(raw.Second)}
}

func (r PairResolver) clamp(raw Pair[float64, float64]) Pair[float64, float64] {
	return Pair[float64, float64]{
		First:  sampling.Limit(raw.First, r.First.Min, r.First.Max),
		Second: sampling.Limit(raw.Second, r.Second.Min, r.Second.Max),
	}
}

// Snapped composes transition with a projection, so that forward
// reconstruction stays on the states the solver enumerated.
func Snapped[S, D comparable](transition func(stage int, state S, decision D) S, snap func(S) S) func(int, S, D) S {
	return func(k int, x S, u D) S { return snap(transition(k, x, u)) }
}
