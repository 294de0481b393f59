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

// Result is an optimal plan reconstructed from the initial state.
type Result[S comparable] struct {
	Cost       float64
	States     []S
	Quantities []int
}

// Planning is the single-product production planning problem.
//
// At stage k the stock x and the produced quantity u give the next stock
// x + u − Demand[k]. The stage cost is ProductionCost[u] + StockCost[x].
type Planning struct {
	// Demand per stage; its length is the horizon.
	Demand []int

	// Levels are the stock levels enumerated at every stage.
	Levels []int

	// Quantities are the production decisions, tried in this order.
	Quantities []int

	// StockCost is indexed by stock level. Levels outside the slice cost Infinity.
	StockCost []float64

	// ProductionCost is indexed by quantity and must price every Quantity.
	ProductionCost []float64

	// FinalCost is the terminal cost by stock level. Missing levels cost Infinity.
	FinalCost map[int]float64

	Initial int

	// Infinity is the sentinel for infeasible stocks; zero means +Inf.
	Infinity float64
}

var _ dp.Problem[int, int] = (*Planning)(nil)

// Validate checks the plan tables.
func (p *Planning) Validate() error {
	if len(p.Demand) == 0 {
		return fmt.Errorf("%w: empty demand", ErrBadPlan)
	}
	if len(p.Levels) == 0 || len(p.Quantities) == 0 {
		return fmt.Errorf("%w: levels and quantities must be non-empty", ErrBadPlan)
	}
	for _, u := range p.Quantities {
		if u < 0 || u >= len(p.ProductionCost) {
			return fmt.Errorf("%w: quantity %d has no production cost", ErrBadPlan, u)
		}
	}

	return nil
}

// Stages reports the horizon.
func (p *Planning) Stages() int { return len(p.Demand) }

func (p *Planning) States(int) iter.Seq[int]    { return slices.Values(p.Levels) }
func (p *Planning) Decisions(int) iter.Seq[int] { return slices.Values(p.Quantities) }
func (p *Planning) InitialState() int           { return p.Initial }

func (p *Planning) TerminalCost(x int) float64 {
	if c, ok := p.FinalCost[x]; ok {
		return c
	}

	return p.infinity()
}

func (p *Planning) ElementaryCost(_ int, x, u int) float64 {
	return p.ProductionCost[u] + p.stockCost(x)
}

func (p *Planning) Transition(k int, x, u int) int { return x + u - p.Demand[k] }

func (p *Planning) stockCost(x int) float64 {
	if x < 0 || x >= len(p.StockCost) {
		return p.infinity()
	}

	return p.StockCost[x]
}

func (p *Planning) infinity() float64 {
	if p.Infinity == 0 {
		return math.Inf(1)
	}

	return p.Infinity
}

// Solve validates the plan and runs backward induction over its horizon.
// Caller options come after the plan's own infinity, so they may override it.
func (p *Planning) Solve(ctx context.Context, opts ...dp.Option) (*dp.Solution[int, int], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return dp.Solve(ctx, p, p.Stages(), withInfinity(p.infinity(), opts)...)
}

// Plan solves and reconstructs the optimal plan from Initial.
func (p *Planning) Plan(ctx context.Context, opts ...dp.Option) (*Result[int], error) {
	sol, err := p.Solve(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return trajectory(sol, p.Initial, p.Transition)
}

func trajectory[S comparable](sol *dp.Solution[S, int], initial S, transition func(int, S, int) S) (*Result[S], error) {
	states, quantities, err := sol.Trajectory(initial, transition)
	if err != nil {
		return nil, err
	}
	cost, _ := sol.CostToGo(0, initial)

	return &Result[S]{Cost: cost, States: states, Quantities: quantities}, nil
}

func withInfinity(inf float64, opts []dp.Option) []dp.Option {
	return append([]dp.Option{dp.WithInfinity(inf)}, opts...)
}
