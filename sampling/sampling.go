// SPDX-License-Identifier: MIT

package sampling

import (
	"cmp"
	"errors"
	"iter"
	"math"
)

var (
	// ErrBadPeriod is returned when the sampling period is not a positive finite number.
	ErrBadPeriod = errors.New("sampling: period must be > 0")

	// ErrBadInterval is returned when max < min or a bound is NaN/Inf.
	ErrBadInterval = errors.New("sampling: invalid interval")
)

// Sampling returns the evenly spaced samples min, min+period, ... covering
// [min, max]. The last sample is capped at max, so it may be closer to its
// predecessor than period.
//
// Errors:
//   - ErrBadPeriod: period <= 0, NaN or Inf.
//   - ErrBadInterval: max < min, or any bound non-finite.
func Sampling(min, max, period float64) ([]float64, error) {
	if err := validate(min, max, period); err != nil {
		return nil, err
	}
	n := count(min, max, period)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Min(min+period*float64(i), max)
	}

	return out, nil
}

// NearestSample projects v onto the sample grid of [min, max] with the given
// period. Values outside the interval are clamped to the violated boundary
// without snapping; values inside go to min+period*k where k is the
// half-to-even rounding of (v-min)/period, capped at max.
//
// NearestSample does not validate its arguments; use a Grid when the
// parameters come from user input.
func NearestSample(v, min, max, period float64) float64 {
	if v <= min {
		return min
	}
	if v >= max {
		return max
	}
	k := math.RoundToEven((v - min) / period)

	return math.Min(min+period*k, max)
}

// Limit clamps v into [lo, hi].
func Limit[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// Grid is a validated sampling of the closed interval [Min, Max].
// The zero value is not usable; build one with NewGrid.
type Grid struct {
	Min    float64
	Max    float64
	Period float64
}

// NewGrid validates the triple and returns the Grid.
func NewGrid(min, max, period float64) (Grid, error) {
	if err := validate(min, max, period); err != nil {
		return Grid{}, err
	}

	return Grid{Min: min, Max: max, Period: period}, nil
}

// Len reports the number of samples.
func (g Grid) Len() int { return count(g.Min, g.Max, g.Period) }

// At returns the i-th sample. i must be in [0, Len()).
func (g Grid) At(i int) float64 {
	return math.Min(g.Min+g.Period*float64(i), g.Max)
}

// Points returns a fresh slice with every sample in ascending order.
func (g Grid) Points() []float64 {
	out := make([]float64, g.Len())
	for i := range out {
		out[i] = g.At(i)
	}

	return out
}

// All yields the samples in ascending order without allocating.
func (g Grid) All() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		n := g.Len()
		for i := 0; i < n; i++ {
			if !yield(g.At(i)) {
				return
			}
		}
	}
}

// Contains reports whether v lies inside [Min, Max].
func (g Grid) Contains(v float64) bool { return v >= g.Min && v <= g.Max }

// Nearest is NearestSample bound to g.
func (g Grid) Nearest(v float64) float64 {
	return NearestSample(v, g.Min, g.Max, g.Period)
}

// Index returns the sample index Nearest(v) corresponds to.
func (g Grid) Index(v float64) int {
	if v <= g.Min {
		return 0
	}
	last := g.Len() - 1
	if v >= g.Max {
		return last
	}

	return min(int(math.RoundToEven((v-g.Min)/g.Period)), last)
}

func validate(min, max, period float64) error {
	if math.IsNaN(period) || math.IsInf(period, 0) || period <= 0 {
		return ErrBadPeriod
	}
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || max < min {
		return ErrBadInterval
	}

	return nil
}

// count is the number of samples: ceil((max-min)/period) + 1.
func count(min, max, period float64) int {
	return int(math.Ceil((max-min)/period)) + 1
}
