// SPDX-License-Identifier: MIT

// Package random models finite discrete random variables: a list of
// (value, probability) outcomes enumerated in construction order.
//
// Validation happens once, at construction:
//   - values and probabilities must have equal length (ErrLengthMismatch),
//   - every probability must lie in [0, 1] (ErrProbabilityRange),
//   - the probabilities must sum to 1 within SumTolerance
//     (ErrProbabilitySum); NewWithTolerance(…, ExactTolerance) demands an
//     exact floating-point sum.
//
// Duplicate values are kept as separate outcomes; nothing is merged.
//
// Usage:
//
//	demand, err := random.New([]int{1, 2, 3}, []float64{0.2, 0.7, 0.1})
//	if err != nil {
//	  // configuration error, fix the input
//	}
//	mean := demand.Expect(func(d int) float64 { return float64(d) })
package random
