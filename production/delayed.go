// SPDX-License-Identifier: MIT

package production

import (
	"context"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/katalvlaran/dypro/dp"
)

// Stock is the (stock level, previous production) state of DelayedPlanning.
type Stock = dp.Pair[int, int]

// DelayedPlanning is Planning with a memory of the last production quantity.
// Changing the quantity between stages costs ChangeCost per unit of change.
//
// Stage cost: UnitCost[k]·u + HoldingCost·stock + ChangeCost·|u − previous|.
// Stocks above MaxStock or below zero cost Infinity.
type DelayedPlanning struct {
	Demand      []int
	Levels      []int
	Quantities  []int
	UnitCost    []float64
	HoldingCost float64
	ChangeCost  float64
	MaxStock    int
	FinalCost   float64
	Initial     Stock
	Infinity    float64
}

var _ dp.Problem[Stock, int] = (*DelayedPlanning)(nil)

// Validate checks the plan tables.
func (p *DelayedPlanning) Validate() error {
	switch {
	case len(p.Demand) == 0:
		return fmt.Errorf("%w: empty demand", ErrBadPlan)
	case len(p.UnitCost) != len(p.Demand):
		return fmt.Errorf("%w: %d unit costs for %d stages", ErrBadPlan, len(p.UnitCost), len(p.Demand))
	case len(p.Levels) == 0 || len(p.Quantities) == 0:
		return fmt.Errorf("%w: levels and quantities must be non-empty", ErrBadPlan)
	case p.MaxStock < 0:
		return fmt.Errorf("%w: negative max stock", ErrBadPlan)
	}

	return nil
}

func (p *DelayedPlanning) Stages() int { return len(p.Demand) }

// States enumerates Levels × Quantities, stock-major.
func (p *DelayedPlanning) States(int) iter.Seq[Stock] {
	return dp.Product(slices.Values(p.Levels), p.Quantities)
}

func (p *DelayedPlanning) Decisions(int) iter.Seq[int] { return slices.Values(p.Quantities) }
func (p *DelayedPlanning) InitialState() Stock         { return p.Initial }
func (p *DelayedPlanning) TerminalCost(Stock) float64  { return p.FinalCost }

func (p *DelayedPlanning) ElementaryCost(k int, x Stock, u int) float64 {
	change := math.Abs(float64(u - x.Second))

	return p.UnitCost[k]*float64(u) + p.stockCost(x.First) + p.ChangeCost*change
}

func (p *DelayedPlanning) Transition(k int, x Stock, u int) Stock {
	return Stock{First: x.First + u - p.Demand[k], Second: u}
}

func (p *DelayedPlanning) stockCost(s int) float64 {
	if s < 0 || s > p.MaxStock {
		if p.Infinity == 0 {
			return math.Inf(1)
		}

		return p.Infinity
	}

	return p.HoldingCost * float64(s)
}

// Solve validates the plan and runs backward induction over its horizon.
func (p *DelayedPlanning) Solve(ctx context.Context, opts ...dp.Option) (*dp.Solution[Stock, int], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Infinity != 0 {
		opts = withInfinity(p.Infinity, opts)
	}

	return dp.Solve(ctx, p, p.Stages(), opts...)
}

// Plan solves and reconstructs the optimal plan from Initial.
func (p *DelayedPlanning) Plan(ctx context.Context, opts ...dp.Option) (*Result[Stock], error) {
	sol, err := p.Solve(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return trajectory(sol, p.Initial, p.Transition)
}
