// SPDX-License-Identifier: MIT

package production

import (
	"context"
	"fmt"
	"iter"

	"github.com/katalvlaran/dypro/dp"
	"github.com/katalvlaran/dypro/random"
	"github.com/katalvlaran/dypro/sampling"
)

// DefaultStochasticInfinity is the sentinel of the stochastic plan when
// none is configured.
const DefaultStochasticInfinity = 100

// StochasticPlanning plans production against random demand.
//
// With stock x, quantity u and realized demand w, the raw stock is
// s = x + u − w; the stage cost is UnitCost[k]·u + StockCost(s) and the next
// stock is s clamped to [0, Capacity]. Unmet demand is lost, not back-ordered.
type StochasticPlanning struct {
	Demand     []*random.Variable[int]
	Quantities []int
	UnitCost   []float64
	Capacity   int

	// Holding prices each unit in stock, Shortage each unit of unmet demand
	// and Overflow each unit above Capacity.
	Holding  float64
	Shortage float64
	Overflow float64

	Initial  int
	Infinity float64
}

var _ dp.StochasticProblem[int, int, int] = (*StochasticPlanning)(nil)

// Validate checks the plan tables.
func (p *StochasticPlanning) Validate() error {
	switch {
	case len(p.Demand) == 0:
		return fmt.Errorf("%w: empty demand", ErrBadPlan)
	case len(p.UnitCost) != len(p.Demand):
		return fmt.Errorf("%w: %d unit costs for %d stages", ErrBadPlan, len(p.UnitCost), len(p.Demand))
	case len(p.Quantities) == 0:
		return fmt.Errorf("%w: no quantities", ErrBadPlan)
	case p.Capacity < 0:
		return fmt.Errorf("%w: negative capacity", ErrBadPlan)
	}
	for k, d := range p.Demand {
		if d == nil {
			return fmt.Errorf("%w: stage %d has no demand distribution", ErrBadPlan, k)
		}
	}

	return nil
}

func (p *StochasticPlanning) Stages() int { return len(p.Demand) }

// States enumerates 0..Capacity.
func (p *StochasticPlanning) States(int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for s := 0; s <= p.Capacity; s++ {
			if !yield(s) {
				return
			}
		}
	}
}

func (p *StochasticPlanning) Decisions(int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, u := range p.Quantities {
			if !yield(u) {
				return
			}
		}
	}
}

func (p *StochasticPlanning) InitialState() int                    { return p.Initial }
func (p *StochasticPlanning) TerminalCost(int) float64             { return 0 }
func (p *StochasticPlanning) Outcomes(k int) *random.Variable[int] { return p.Demand[k] }

func (p *StochasticPlanning) ElementaryCost(k int, x, u, w int) float64 {
	return p.UnitCost[k]*float64(u) + p.StockCost(x+u-w)
}

func (p *StochasticPlanning) Transition(_ int, x, u, w int) int {
	return sampling.Limit(x+u-w, 0, p.Capacity)
}

// StockCost prices a raw stock level s.
func (p *StochasticPlanning) StockCost(s int) float64 {
	switch {
	case s < 0:
		return p.Shortage * float64(-s)
	case s > p.Capacity:
		return p.Overflow*float64(s-p.Capacity) + p.Holding*float64(p.Capacity)
	default:
		return p.Holding * float64(s)
	}
}

// Solve validates the plan and runs the stochastic backward induction.
func (p *StochasticPlanning) Solve(ctx context.Context, opts ...dp.Option) (*dp.Solution[int, int], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	inf := p.Infinity
	if inf == 0 {
		inf = DefaultStochasticInfinity
	}

	return dp.SolveStochastic(ctx, p, p.Stages(), withInfinity(inf, opts)...)
}

// Realize follows the policy of sol along one realized demand sequence and
// returns the visited stocks and the chosen quantities.
func (p *StochasticPlanning) Realize(sol *dp.Solution[int, int], demand []int) ([]int, []int, error) {
	if len(demand) != p.Stages() {
		return nil, nil, fmt.Errorf("%w: %d values for %d stages", ErrHorizonMismatch, len(demand), p.Stages())
	}

	return sol.Trajectory(p.Initial, func(k, x, u int) int { return p.Transition(k, x, u, demand[k]) })
}
