// SPDX-License-Identifier: MIT

package scenario

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/dypro/dp"
	"github.com/katalvlaran/dypro/hydro"
	"github.com/katalvlaran/dypro/production"
	"github.com/katalvlaran/dypro/random"
)

// Report is the outcome of one scenario run. States and Decisions are the
// optimal path formatted with %v; for stochastic kinds they follow the
// realized sequence and Cost is the expected cost from the initial state.
type Report struct {
	Name      string        `yaml:"name,omitempty" json:"name,omitempty"`
	Kind      Kind          `yaml:"kind" json:"kind"`
	Cost      float64       `yaml:"cost" json:"cost"`
	Feasible  bool          `yaml:"feasible" json:"feasible"`
	States    []string      `yaml:"states" json:"states"`
	Decisions []string      `yaml:"decisions" json:"decisions"`
	Elapsed   time.Duration `yaml:"elapsed" json:"elapsed"`
}

// Run builds the problem of sc and solves it. The scenario's worker count
// is applied first, so opts may override it.
func Run(ctx context.Context, sc *Scenario, opts ...dp.Option) (*Report, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if sc.Workers > 0 {
		opts = append([]dp.Option{dp.WithWorkers(sc.Workers)}, opts...)
	}

	start := time.Now()
	var (
		rep *Report
		err error
	)
	switch sc.Kind {
	case KindProduction:
		rep, err = runProduction(ctx, sc, opts)
	case KindDelayed:
		rep, err = runDelayed(ctx, sc, opts)
	case KindStochasticProduction:
		rep, err = runStochasticProduction(ctx, sc, opts)
	case KindHydro:
		rep, err = runHydro(ctx, sc, opts)
	case KindHydroStochastic:
		rep, err = runHydroStochastic(ctx, sc, opts)
	case KindJoint:
		rep, err = runJoint(ctx, sc, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", describe(sc), err)
	}
	rep.Name, rep.Kind = sc.Name, sc.Kind
	rep.Elapsed = time.Since(start)

	return rep, nil
}

func describe(sc *Scenario) string {
	if sc.Name != "" {
		return fmt.Sprintf("%q (%s)", sc.Name, sc.Kind)
	}

	return string(sc.Kind)
}

func runProduction(ctx context.Context, sc *Scenario, opts []dp.Option) (*Report, error) {
	s := sc.Production
	p := &production.Planning{
		Demand:         s.Demand,
		Levels:         s.Levels,
		Quantities:     s.Quantities,
		StockCost:      s.StockCost,
		ProductionCost: s.ProductionCost,
		FinalCost:      s.FinalCost,
		Initial:        s.Initial,
		Infinity:       sc.Infinity,
	}
	res, err := p.Plan(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return report(res.Cost, p.Infinity, res.States, res.Quantities), nil
}

func runDelayed(ctx context.Context, sc *Scenario, opts []dp.Option) (*Report, error) {
	s := sc.Delayed
	p := &production.DelayedPlanning{
		Demand:      s.Demand,
		Levels:      s.Levels,
		Quantities:  s.Quantities,
		UnitCost:    s.UnitCost,
		HoldingCost: s.HoldingCost,
		ChangeCost:  s.ChangeCost,
		MaxStock:    s.MaxStock,
		FinalCost:   s.FinalCost,
		Initial:     production.Stock{First: s.Initial[0], Second: s.Initial[1]},
		Infinity:    sc.Infinity,
	}
	res, err := p.Plan(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return report(res.Cost, p.Infinity, res.States, res.Quantities), nil
}

func runStochasticProduction(ctx context.Context, sc *Scenario, opts []dp.Option) (*Report, error) {
	s := sc.Stochastic
	demand, err := variables(s.Demand)
	if err != nil {
		return nil, err
	}
	p := &production.StochasticPlanning{
		Demand:     demand,
		Quantities: s.Quantities,
		UnitCost:   s.UnitCost,
		Capacity:   s.Capacity,
		Holding:    s.Holding,
		Shortage:   s.Shortage,
		Overflow:   s.Overflow,
		Initial:    s.Initial,
		Infinity:   sc.Infinity,
	}
	sol, err := p.Solve(ctx, opts...)
	if err != nil {
		return nil, err
	}
	cost, _ := sol.CostToGo(0, p.Initial)
	rep := report[int, int](cost, sol.Infinity, nil, nil)
	if len(s.Realized) > 0 {
		stocks, quantities, err := p.Realize(sol, s.Realized)
		if err != nil {
			return nil, err
		}
		rep.States, rep.Decisions = format(stocks), format(quantities)
	}

	return rep, nil
}

func runHydro(ctx context.Context, sc *Scenario, opts []dp.Option) (*Report, error) {
	cfg, err := hydroConfig(sc)
	if err != nil {
		return nil, err
	}
	s, err := hydro.NewSchedule(cfg)
	if err != nil {
		return nil, err
	}
	res, err := s.Plan(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return report(res.Cost, cfg.Infinity, res.States, res.Decisions), nil
}

func runHydroStochastic(ctx context.Context, sc *Scenario, opts []dp.Option) (*Report, error) {
	cfg, err := hydroConfig(sc)
	if err != nil {
		return nil, err
	}
	inflow := hydro.IlhaSolteiraScenarios()
	var realized []float64
	if h := sc.Hydro; h != nil {
		if len(h.Scenarios) > 0 {
			vars, err := variables(h.Scenarios)
			if err != nil {
				return nil, err
			}
			inflow = hydro.Scenarios(vars)
		}
		realized = h.Realized
	}
	s, err := hydro.NewStochasticSchedule(cfg, inflow)
	if err != nil {
		return nil, err
	}
	sol, err := s.Solve(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if len(realized) == 0 {
		realized = s.ExpectedInflow()
	}
	res, err := s.Realize(sol, realized)
	if err != nil {
		return nil, err
	}

	return report(res.Cost, cfg.Infinity, res.States, res.Decisions), nil
}

func runJoint(ctx context.Context, sc *Scenario, opts []dp.Option) (*Report, error) {
	cfg := jointConfig(sc)
	s, err := hydro.NewJointSchedule(cfg)
	if err != nil {
		return nil, err
	}
	res, err := s.Plan(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return report(res.Cost, cfg.Infinity, res.States, res.Decisions), nil
}

// hydroConfig applies the non-zero fields of the hydro section to the
// reference configuration.
func hydroConfig(sc *Scenario) (hydro.Config, error) {
	cfg := hydro.DefaultConfig()
	if sc.Infinity != 0 {
		cfg.Infinity = sc.Infinity
	}
	h := sc.Hydro
	if h == nil {
		return cfg, nil
	}
	if h.Plant != "" {
		p, ok := hydro.PlantByName(h.Plant)
		if !ok {
			return cfg, fmt.Errorf("%w: unknown plant %q", ErrBadScenario, h.Plant)
		}
		cfg.Plant = p
	}
	setInt(&cfg.Year, h.Year)
	setInt(&cfg.StartMonth, h.StartMonth)
	setInt(&cfg.Stages, h.Stages)
	setFloat(&cfg.StatePeriod, h.StatePeriod)
	setFloat(&cfg.DecisionPeriod, h.DecisionPeriod)
	setFloat(&cfg.InitialVolume, h.InitialVolume)
	setFloat(&cfg.MinFinalVolume, h.MinFinalVolume)
	setFloat(&cfg.Thermal, h.Thermal)
	if len(h.Inflow) > 0 {
		cfg.Inflow = hydro.Monthly(h.Inflow)
	}
	if len(h.Demand) > 0 {
		cfg.Demand = hydro.Monthly(h.Demand)
	}

	return cfg, nil
}

func jointConfig(sc *Scenario) hydro.JointConfig {
	cfg := hydro.DefaultJointConfig()
	if sc.Infinity != 0 {
		cfg.Infinity = sc.Infinity
	}
	j := sc.Joint
	if j == nil {
		return cfg
	}
	setInt(&cfg.Year, j.Year)
	setInt(&cfg.StartMonth, j.StartMonth)
	setInt(&cfg.Stages, j.Stages)
	setFloat(&cfg.StatePeriod, j.StatePeriod)
	setFloat(&cfg.DecisionPeriod, j.DecisionPeriod)
	setFloat(&cfg.InitialVolume.First, j.InitialVolume[0])
	setFloat(&cfg.InitialVolume.Second, j.InitialVolume[1])
	setFloat(&cfg.MinFinalVolume.First, j.MinFinalVolume[0])
	setFloat(&cfg.MinFinalVolume.Second, j.MinFinalVolume[1])
	setFloat(&cfg.Thermal, j.Thermal)

	return cfg
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func variables[V any](ds []Distribution[V]) ([]*random.Variable[V], error) {
	out := make([]*random.Variable[V], len(ds))
	for i, d := range ds {
		v, err := random.New(d.Values, d.Probabilities)
		if err != nil {
			return nil, fmt.Errorf("%w: distribution %d: %w", ErrBadScenario, i, err)
		}
		out[i] = v
	}

	return out, nil
}

// report formats a path; inf is the configured sentinel, zero for +Inf.
func report[S, D any](cost, inf float64, states []S, decisions []D) *Report {
	return &Report{
		Cost:      cost,
		Feasible:  !math.IsInf(cost, 1) && (inf == 0 || cost < inf),
		States:    format(states),
		Decisions: format(decisions),
	}
}

func format[T any](xs []T) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = fmt.Sprint(x)
	}

	return out
}
