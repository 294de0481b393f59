// SPDX-License-Identifier: MIT

package random

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// Tolerance policy for the probability sum.
const (
	// SumTolerance is the default absolute slack allowed on |Σp − 1|.
	// It absorbs decimal inputs such as 0.2+0.7+0.1 that do not add up to
	// exactly 1.0 in binary floating point.
	SumTolerance = 0.01

	// ExactTolerance requires Σp == 1 bit-for-bit.
	ExactTolerance = 0.0
)

var (
	// ErrEmpty is returned when a variable has no outcomes.
	ErrEmpty = errors.New("random: no outcomes")

	// ErrLengthMismatch is returned when the number of values differs from
	// the number of probabilities.
	ErrLengthMismatch = errors.New("random: number of values is not equal to number of probabilities")

	// ErrProbabilityRange is returned when a probability is NaN or outside [0, 1].
	ErrProbabilityRange = errors.New("random: probability out of [0, 1]")

	// ErrProbabilitySum is returned when the probabilities do not sum to 1
	// within the requested tolerance.
	ErrProbabilitySum = errors.New("random: sum of probabilities is not 1")

	// ErrBadTolerance is returned for a negative or NaN tolerance.
	ErrBadTolerance = errors.New("random: tolerance must be >= 0")
)

// Outcome is one (value, probability) pair of a Variable.
type Outcome[V any] struct {
	Value       V
	Probability float64
}

// NewOutcome validates p and builds the pair.
func NewOutcome[V any](v V, p float64) (Outcome[V], error) {
	if err := checkProbability(p); err != nil {
		return Outcome[V]{}, err
	}

	return Outcome[V]{Value: v, Probability: p}, nil
}

// Variable is an immutable finite distribution over values of type V.
type Variable[V any] struct {
	outcomes []Outcome[V]
}

// New builds a Variable from parallel value and probability slices using
// SumTolerance.
func New[V any](values []V, probs []float64) (*Variable[V], error) {
	return NewWithTolerance(values, probs, SumTolerance)
}

// NewWithTolerance is New with an explicit tolerance on |Σp − 1|.
func NewWithTolerance[V any](values []V, probs []float64, tol float64) (*Variable[V], error) {
	if len(values) != len(probs) {
		return nil, fmt.Errorf("%w: %d values, %d probabilities", ErrLengthMismatch, len(values), len(probs))
	}
	out := make([]Outcome[V], len(values))
	for i := range values {
		out[i] = Outcome[V]{Value: values[i], Probability: probs[i]}
	}

	return build(out, tol)
}

// FromOutcomes builds a Variable from already paired outcomes using SumTolerance.
func FromOutcomes[V any](outcomes ...Outcome[V]) (*Variable[V], error) {
	cp := make([]Outcome[V], len(outcomes))
	copy(cp, outcomes)

	return build(cp, SumTolerance)
}

// Degenerate returns the variable that takes v with probability 1.
func Degenerate[V any](v V) *Variable[V] {
	return &Variable[V]{outcomes: []Outcome[V]{{Value: v, Probability: 1}}}
}

func build[V any](out []Outcome[V], tol float64) (*Variable[V], error) {
	if math.IsNaN(tol) || tol < 0 {
		return nil, ErrBadTolerance
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	sum := 0.0
	for i, o := range out {
		if err := checkProbability(o.Probability); err != nil {
			return nil, fmt.Errorf("outcome %d: %w", i, err)
		}
		sum += o.Probability
	}
	if math.Abs(sum-1) > tol {
		return nil, fmt.Errorf("%w: got %v", ErrProbabilitySum, sum)
	}

	return &Variable[V]{outcomes: out}, nil
}

func checkProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: %v", ErrProbabilityRange, p)
	}

	return nil
}

// Len reports the number of outcomes.
func (v *Variable[V]) Len() int { return len(v.outcomes) }

// Outcomes returns a copy of the outcomes in enumeration order.
func (v *Variable[V]) Outcomes() []Outcome[V] {
	cp := make([]Outcome[V], len(v.outcomes))
	copy(cp, v.outcomes)

	return cp
}

// All yields (value, probability) in enumeration order.
func (v *Variable[V]) All() iter.Seq2[V, float64] {
	return func(yield func(V, float64) bool) {
		for _, o := range v.outcomes {
			if !yield(o.Value, o.Probability) {
				return
			}
		}
	}
}

// Sum returns Σp as stored.
func (v *Variable[V]) Sum() float64 {
	s := 0.0
	for _, o := range v.outcomes {
		s += o.Probability
	}

	return s
}

// Expect returns Σ p·f(value), summed in enumeration order.
func (v *Variable[V]) Expect(f func(V) float64) float64 {
	e := 0.0
	for _, o := range v.outcomes {
		e += o.Probability * f(o.Value)
	}

	return e
}
