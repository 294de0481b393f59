// SPDX-License-Identifier: MIT

package hydro

import (
	"context"
	"fmt"
	"iter"
	"math"

	"github.com/katalvlaran/dypro/dp"
	"github.com/katalvlaran/dypro/sampling"
)

// Defaults of the reference study.
const (
	// DefaultThermalCoefficient prices thermal energy: cost = c·E².
	DefaultThermalCoefficient = 64.8e-6

	DefaultYear     = 2021
	DefaultStages   = 11
	DefaultPeriod   = 100
	DefaultInfinity = 10000
)

// Config parameterizes a single-reservoir schedule.
type Config struct {
	Plant Plant

	Year       int
	StartMonth int // month of stage 0, 0 = January
	Stages     int

	// StatePeriod samples volumes, DecisionPeriod samples releases.
	StatePeriod    float64
	DecisionPeriod float64

	Inflow Monthly // m³/s; ignored by StochasticSchedule
	Demand Monthly // MW

	InitialVolume  float64
	MinFinalVolume float64

	// Thermal is the thermal cost coefficient; zero means DefaultThermalCoefficient.
	Thermal float64

	// Infinity is the sentinel for infeasible volumes; zero means +Inf.
	Infinity float64
}

// DefaultConfig is the reference study: Ilha Solteira over eleven months of
// 2021, starting and ending at 15000·10^6 m³.
func DefaultConfig() Config {
	return Config{
		Plant:          IlhaSolteira(),
		Year:           DefaultYear,
		Stages:         DefaultStages,
		StatePeriod:    DefaultPeriod,
		DecisionPeriod: DefaultPeriod,
		Inflow:         IlhaSolteiraInflow(),
		Demand:         IlhaSolteiraDemand(),
		InitialVolume:  15000,
		MinFinalVolume: 15000,
		Infinity:       DefaultInfinity,
	}
}

func (c Config) thermal() float64 {
	if c.Thermal == 0 {
		return DefaultThermalCoefficient
	}

	return c.Thermal
}

func (c Config) infinity() float64 {
	if c.Infinity == 0 {
		return math.Inf(1)
	}

	return c.Infinity
}

// horizon holds per-stage month data resolved at construction.
type horizon struct {
	seconds []float64
	demand  []float64
}

func newHorizon(year, startMonth, stages int, demand Monthly) (horizon, error) {
	if stages < 0 {
		return horizon{}, fmt.Errorf("%w: %d stages", ErrBadConfig, stages)
	}
	h := horizon{seconds: make([]float64, stages), demand: make([]float64, stages)}
	for k := 0; k < stages; k++ {
		m := startMonth + k
		var err error
		if h.seconds[k], err = SecondsOfMonth(year, m); err != nil {
			return horizon{}, fmt.Errorf("stage %d: %w", k, err)
		}
		if h.demand[k], err = demand.At(m); err != nil {
			return horizon{}, fmt.Errorf("stage %d demand: %w", k, err)
		}
	}

	return h, nil
}

// monthlyFor resolves a per-stage slice from a monthly table.
func monthlyFor(table Monthly, startMonth, stages int, what string) ([]float64, error) {
	out := make([]float64, stages)
	for k := range out {
		v, err := table.At(startMonth + k)
		if err != nil {
			return nil, fmt.Errorf("stage %d %s: %w", k, what, err)
		}
		out[k] = v
	}

	return out, nil
}

// thermalCost prices the demand left after the hydro output.
func thermalCost(coef, demand, output float64) float64 {
	deficit := demand - output
	if deficit <= 0 {
		return 0
	}

	return coef * deficit * deficit
}

// balance is the volume after one month of inflow and release.
func balance(volume, inflow, release, seconds float64) float64 {
	return volume + (inflow-release)*seconds*1e-6
}

// Schedule is the deterministic single-reservoir problem.
// It implements dp.Problem[float64, float64] and dp.Resolver[float64].
type Schedule struct {
	cfg      Config
	volumes  sampling.Grid
	releases sampling.Grid
	resolver dp.IntervalResolver
	horizon  horizon
	inflow   []float64
}

var (
	_ dp.Problem[float64, float64] = (*Schedule)(nil)
	_ dp.Resolver[float64]         = (*Schedule)(nil)
)

// NewSchedule validates cfg against the plant and the month tables.
func NewSchedule(cfg Config) (*Schedule, error) {
	base, err := newBase(cfg)
	if err != nil {
		return nil, err
	}
	inflow, err := monthlyFor(cfg.Inflow, cfg.StartMonth, cfg.Stages, "inflow")
	if err != nil {
		return nil, err
	}
	base.inflow = inflow

	return base, nil
}

func newBase(cfg Config) (*Schedule, error) {
	if err := cfg.Plant.Validate(); err != nil {
		return nil, err
	}
	volumes, err := cfg.Plant.VolumeGrid(cfg.StatePeriod)
	if err != nil {
		return nil, fmt.Errorf("%w: state period: %w", ErrBadConfig, err)
	}
	releases, err := cfg.Plant.ReleaseGrid(cfg.DecisionPeriod)
	if err != nil {
		return nil, fmt.Errorf("%w: decision period: %w", ErrBadConfig, err)
	}
	h, err := newHorizon(cfg.Year, cfg.StartMonth, cfg.Stages, cfg.Demand)
	if err != nil {
		return nil, err
	}

	return &Schedule{
		cfg:      cfg,
		volumes:  volumes,
		releases: releases,
		resolver: dp.IntervalResolver{Grid: volumes, Penalty: cfg.infinity()},
		horizon:  h,
	}, nil
}

// Config returns the configuration the schedule was built from.
func (s *Schedule) Config() Config { return s.cfg }

// Stages reports the horizon.
func (s *Schedule) Stages() int { return s.cfg.Stages }

// Volumes and Releases expose the sampling grids.
func (s *Schedule) Volumes() sampling.Grid  { return s.volumes }
func (s *Schedule) Releases() sampling.Grid { return s.releases }

func (s *Schedule) States(int) iter.Seq[float64]    { return s.volumes.All() }
func (s *Schedule) Decisions(int) iter.Seq[float64] { return s.releases.All() }

// InitialState is the configured initial volume snapped to the grid.
func (s *Schedule) InitialState() float64 { return s.resolver.Snap(s.cfg.InitialVolume) }

func (s *Schedule) TerminalCost(volume float64) float64 {
	if volume < s.cfg.MinFinalVolume {
		return s.cfg.infinity()
	}

	return 0
}

// ElementaryCost is the thermal cost of the demand the plant leaves unmet.
func (s *Schedule) ElementaryCost(k int, volume, release float64) float64 {
	return thermalCost(s.cfg.thermal(), s.horizon.demand[k], s.cfg.Plant.Output(volume, release))
}

func (s *Schedule) Transition(k int, volume, release float64) float64 {
	return balance(volume, s.inflow[k], release, s.horizon.seconds[k])
}

// Resolve clamps out-of-bounds volumes with the infinity penalty and snaps
// the rest onto the volume grid.
func (s *Schedule) Resolve(stage int, raw float64, costs *dp.Table[float64]) (float64, float64, error) {
	return s.resolver.Resolve(stage, raw, costs)
}

// Snap projects a volume onto the grid.
func (s *Schedule) Snap(volume float64) float64 { return s.resolver.Snap(volume) }

// Solve runs backward induction with the configured infinity.
func (s *Schedule) Solve(ctx context.Context, opts ...dp.Option) (*dp.Solution[float64, float64], error) {
	return dp.Solve(ctx, s, s.cfg.Stages, withInfinity(s.cfg.infinity(), opts)...)
}

// Plan solves and reconstructs the snapped optimal trajectory.
func (s *Schedule) Plan(ctx context.Context, opts ...dp.Option) (*Result[float64, float64], error) {
	sol, err := s.Solve(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return reconstruct(sol, s.InitialState(), dp.Snapped(s.Transition, s.Snap))
}

// Result is an optimal schedule.
type Result[S, D comparable] struct {
	Cost      float64
	States    []S
	Decisions []D
}

func reconstruct[S, D comparable](sol *dp.Solution[S, D], initial S, transition func(int, S, D) S) (*Result[S, D], error) {
	states, decisions, err := sol.Trajectory(initial, transition)
	if err != nil {
		return nil, err
	}
	cost, _ := sol.CostToGo(0, initial)

	return &Result[S, D]{Cost: cost, States: states, Decisions: decisions}, nil
}

func withInfinity(inf float64, opts []dp.Option) []dp.Option {
	return append([]dp.Option{dp.WithInfinity(inf)}, opts...)
}
