// SPDX-License-Identifier: MIT

package hydro

import (
	"context"
	"fmt"
	"iter"

	"github.com/katalvlaran/dypro/dp"
	"github.com/katalvlaran/dypro/random"
)

// StochasticSchedule is Schedule with the monthly inflow drawn from a
// random.Variable. The thermal cost does not depend on the inflow; the next
// volume does.
type StochasticSchedule struct {
	base      *Schedule
	scenarios []*random.Variable[float64]
}

var (
	_ dp.StochasticProblem[float64, float64, float64] = (*StochasticSchedule)(nil)
	_ dp.Resolver[float64]                            = (*StochasticSchedule)(nil)
)

// NewStochasticSchedule validates cfg and resolves one inflow distribution
// per stage. cfg.Inflow is ignored.
func NewStochasticSchedule(cfg Config, inflow Scenarios) (*StochasticSchedule, error) {
	base, err := newBase(cfg)
	if err != nil {
		return nil, err
	}
	per := make([]*random.Variable[float64], cfg.Stages)
	for k := range per {
		if per[k], err = inflow.At(cfg.StartMonth + k); err != nil {
			return nil, fmt.Errorf("stage %d inflow: %w", k, err)
		}
	}

	return &StochasticSchedule{base: base, scenarios: per}, nil
}

func (s *StochasticSchedule) Config() Config { return s.base.cfg }
func (s *StochasticSchedule) Stages() int    { return s.base.cfg.Stages }

func (s *StochasticSchedule) States(k int) iter.Seq[float64]    { return s.base.States(k) }
func (s *StochasticSchedule) Decisions(k int) iter.Seq[float64] { return s.base.Decisions(k) }

func (s *StochasticSchedule) InitialState() float64          { return s.base.InitialState() }
func (s *StochasticSchedule) TerminalCost(v float64) float64 { return s.base.TerminalCost(v) }

func (s *StochasticSchedule) Outcomes(k int) *random.Variable[float64] { return s.scenarios[k] }

func (s *StochasticSchedule) ElementaryCost(k int, volume, release, _ float64) float64 {
	return s.base.ElementaryCost(k, volume, release)
}

func (s *StochasticSchedule) Transition(k int, volume, release, inflow float64) float64 {
	return balance(volume, inflow, release, s.base.horizon.seconds[k])
}

func (s *StochasticSchedule) Resolve(stage int, raw float64, costs *dp.Table[float64]) (float64, float64, error) {
	return s.base.Resolve(stage, raw, costs)
}

// Solve runs the stochastic backward induction with the configured infinity.
func (s *StochasticSchedule) Solve(ctx context.Context, opts ...dp.Option) (*dp.Solution[float64, float64], error) {
	return dp.SolveStochastic(ctx, s, s.base.cfg.Stages, withInfinity(s.base.cfg.infinity(), opts)...)
}

// Realize follows the policy of sol along one inflow sequence, snapping
// every volume to the grid.
func (s *StochasticSchedule) Realize(sol *dp.Solution[float64, float64], inflow []float64) (*Result[float64, float64], error) {
	if len(inflow) != s.base.cfg.Stages {
		return nil, fmt.Errorf("%w: %d inflows for %d stages", ErrBadConfig, len(inflow), s.base.cfg.Stages)
	}
	next := func(k int, v, u float64) float64 { return s.base.Snap(s.Transition(k, v, u, inflow[k])) }

	return reconstruct(sol, s.InitialState(), next)
}

// ExpectedInflow returns the mean inflow of every stage.
func (s *StochasticSchedule) ExpectedInflow() []float64 {
	out := make([]float64, len(s.scenarios))
	for k, v := range s.scenarios {
		out[k] = v.Expect(func(w float64) float64 { return w })
	}

	return out
}
