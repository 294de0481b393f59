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

// Volumes is the (first, second) reservoir volume pair.
type Volumes = dp.Pair[float64, float64]

// Releases is the (first, second) release pair.
type Releases = dp.Pair[float64, float64]

// JointConfig parameterizes two plants serving one demand. Each reservoir
// has its own inflow; they are not hydraulically coupled.
type JointConfig struct {
	First, Second             Plant
	FirstInflow, SecondInflow Monthly
	Demand                    Monthly

	Year       int
	StartMonth int
	Stages     int

	StatePeriod    float64
	DecisionPeriod float64

	InitialVolume  Volumes
	MinFinalVolume Volumes

	Thermal  float64
	Infinity float64
}

// DefaultJointConfig pairs Água Vermelha with Ilha Solteira over eleven
// months of 2021 on a coarse grid.
func DefaultJointConfig() JointConfig {
	return JointConfig{
		First:          AguaVermelha(),
		Second:         IlhaSolteiraJoint(),
		FirstInflow:    AguaVermelhaInflow(),
		SecondInflow:   IlhaSolteiraJointInflow(),
		Demand:         JointDemand(),
		Year:           DefaultYear,
		Stages:         DefaultStages,
		StatePeriod:    1000,
		DecisionPeriod: 1000,
		InitialVolume:  Volumes{First: 8000, Second: 15000},
		MinFinalVolume: Volumes{First: 8000, Second: 15000},
		Infinity:       DefaultInfinity,
	}
}

// JointSchedule is the two-reservoir problem over Pair states and decisions.
type JointSchedule struct {
	cfg      JointConfig
	resolver dp.PairResolver
	releases [2]sampling.Grid
	horizon  horizon
	inflow   [2][]float64
	inf      float64
	thermal  float64
}

var (
	_ dp.Problem[Volumes, Releases] = (*JointSchedule)(nil)
	_ dp.Resolver[Volumes]          = (*JointSchedule)(nil)
)

// NewJointSchedule validates both plants and the month tables.
func NewJointSchedule(cfg JointConfig) (*JointSchedule, error) {
	s := &JointSchedule{cfg: cfg, inf: math.Inf(1), thermal: DefaultThermalCoefficient}
	if cfg.Infinity != 0 {
		s.inf = cfg.Infinity
	}
	if cfg.Thermal != 0 {
		s.thermal = cfg.Thermal
	}
	var grids [2]sampling.Grid
	for i, p := range []Plant{cfg.First, cfg.Second} {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		var err error
		if grids[i], err = p.VolumeGrid(cfg.StatePeriod); err != nil {
			return nil, fmt.Errorf("%w: %s state period: %w", ErrBadConfig, p.Name, err)
		}
		if s.releases[i], err = p.ReleaseGrid(cfg.DecisionPeriod); err != nil {
			return nil, fmt.Errorf("%w: %s decision period: %w", ErrBadConfig, p.Name, err)
		}
	}
	s.resolver = dp.PairResolver{First: grids[0], Second: grids[1], Penalty: s.inf}

	var err error
	if s.horizon, err = newHorizon(cfg.Year, cfg.StartMonth, cfg.Stages, cfg.Demand); err != nil {
		return nil, err
	}
	if s.inflow[0], err = monthlyFor(cfg.FirstInflow, cfg.StartMonth, cfg.Stages, cfg.First.Name+" inflow"); err != nil {
		return nil, err
	}
	if s.inflow[1], err = monthlyFor(cfg.SecondInflow, cfg.StartMonth, cfg.Stages, cfg.Second.Name+" inflow"); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *JointSchedule) Stages() int { return s.cfg.Stages }

// States enumerates first-volume-major pairs.
func (s *JointSchedule) States(int) iter.Seq[Volumes] {
	return dp.Product(s.resolver.First.All(), s.resolver.Second.Points())
}

// Decisions enumerates first-release-major pairs.
func (s *JointSchedule) Decisions(int) iter.Seq[Releases] {
	return dp.Product(s.releases[0].All(), s.releases[1].Points())
}

func (s *JointSchedule) InitialState() Volumes { return s.resolver.Snap(s.cfg.InitialVolume) }

func (s *JointSchedule) TerminalCost(v Volumes) float64 {
	if v.First < s.cfg.MinFinalVolume.First || v.Second < s.cfg.MinFinalVolume.Second {
		return s.inf
	}

	return 0
}

// ElementaryCost is the thermal cost of the joint deficit.
func (s *JointSchedule) ElementaryCost(k int, v Volumes, u Releases) float64 {
	output := s.cfg.First.Output(v.First, u.First) + s.cfg.Second.Output(v.Second, u.Second)

	return thermalCost(s.thermal, s.horizon.demand[k], output)
}

func (s *JointSchedule) Transition(k int, v Volumes, u Releases) Volumes {
	sec := s.horizon.seconds[k]

	return Volumes{
		First:  balance(v.First, s.inflow[0][k], u.First, sec),
		Second: balance(v.Second, s.inflow[1][k], u.Second, sec),
	}
}

func (s *JointSchedule) Resolve(stage int, raw Volumes, costs *dp.Table[Volumes]) (Volumes, float64, error) {
	return s.resolver.Resolve(stage, raw, costs)
}

// Snap projects a volume pair onto the grid.
func (s *JointSchedule) Snap(v Volumes) Volumes { return s.resolver.Snap(v) }

// Solve runs backward induction with the configured infinity.
func (s *JointSchedule) Solve(ctx context.Context, opts ...dp.Option) (*dp.Solution[Volumes, Releases], error) {
	return dp.Solve(ctx, s, s.cfg.Stages, withInfinity(s.inf, opts)...)
}

// Plan solves and reconstructs the snapped optimal trajectory.
func (s *JointSchedule) Plan(ctx context.Context, opts ...dp.Option) (*Result[Volumes, Releases], error) {
	sol, err := s.Solve(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return reconstruct(sol, s.InitialState(), dp.Snapped(s.Transition, s.Snap))
}
