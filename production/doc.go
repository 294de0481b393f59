// SPDX-License-Identifier: MIT

// Package production holds multi-stage production planning problems solved
// with package dp.
//
// Three variants are provided:
//   - Planning: stock level as state, production quantity as
//     decision, known demand per stage.
//   - DelayedPlanning: the state also remembers the previous production
//     quantity, and changing it costs ChangeCost per unit of change.
//   - StochasticPlanning: demand is a random variable per stage, shortages
//     and overflows are penalized and the stock is clamped to [0, Capacity].
//
// Every variant is validated before solving (ErrBadPlan), so the solver never
// indexes past a cost table. Stock levels that a table does not price cost
// Infinity.
//
// Usage:
//
//	plan := production.Planning{
//	  Demand:         []int{2, 1, 1, 0},
//	  Levels:         []int{0, 1, 2},
//	  Quantities:     []int{0, 1, 2},
//	  StockCost:      []float64{0, 3, 7},
//	  ProductionCost: []float64{10, 17, 20},
//	  FinalCost:      map[int]float64{1: 0},
//	  Initial:        1,
//	}
//	res, err := plan.Plan(ctx)
package production
