// SPDX-License-Identifier: MIT

// Package sampling discretizes closed real intervals into evenly spaced
// sample points and projects arbitrary values back onto them.
//
// What is it for?
//
//	Backward induction works on finite state and decision sets. Continuous
//	quantities (reservoir volume, turbined flow) are sampled with a fixed
//	period and every transition result is snapped to the closest sample.
//
// Key pieces:
//   - Sampling(min, max, period): the sample list min, min+p, ..., max.
//   - Grid: a validated (Min, Max, Period) triple with
//     Points, Nearest, Index and Contains.
//   - NearestSample: clamp out-of-range values to the boundary,
//     snap in-range values to the nearest sample index.
//   - Limit: generic clamp.
//
// Rounding:
//
//	The sample index is rounded half-to-even (math.RoundToEven). A value
//	exactly between two samples goes to the one with the even index, so
//	2.5 → 2 and 3.5 → 4 on a unit grid, while 2.6 → 3 as expected.
//
// Usage:
//
//	g, err := sampling.NewGrid(12800, 21200, 200)
//	if err != nil {
//	  // ErrBadPeriod or ErrBadInterval
//	}
//	v := g.Nearest(15123.4) // 15200
package sampling
