// SPDX-License-Identifier: MIT

package hydro

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dypro/sampling"
)

// Gravity is the gravitational acceleration used by the catalog, m/s².
const Gravity = 10

// Polynomial holds coefficients in ascending order: c0 + c1·x + c2·x² + ...
type Polynomial []float64

// At evaluates the polynomial by Horner's rule.
func (p Polynomial) At(x float64) float64 {
	v := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		v = v*x + p[i]
	}

	return v
}

// Plant describes one hydroelectric plant and its reservoir.
type Plant struct {
	Name       string
	Efficiency float64
	Gravity    float64

	// Reservoir bounds, 10^6 m³.
	MinVolume float64
	MaxVolume float64

	// Turbine range, m³/s. Flow beyond MaxTurbineFlow is spilled.
	MinTurbineFlow float64
	MaxTurbineFlow float64

	// MaxFlow is the largest release (turbined plus spilled), m³/s.
	MaxFlow float64

	// MaxCapacity is the installed capacity, MW.
	MaxCapacity float64

	// Upstream maps volume to forebay level; Downstream maps release to
	// tailrace level.
	Upstream   Polynomial
	Downstream Polynomial
}

// Validate checks bounds and coefficients.
func (p Plant) Validate() error {
	switch {
	case p.Efficiency <= 0 || p.Efficiency > 1:
		return fmt.Errorf("%w: %s efficiency %v", ErrBadPlant, p.Name, p.Efficiency)
	case p.Gravity <= 0:
		return fmt.Errorf("%w: %s gravity %v", ErrBadPlant, p.Name, p.Gravity)
	case p.MinVolume < 0 || p.MaxVolume < p.MinVolume:
		return fmt.Errorf("%w: %s volume range [%v, %v]", ErrBadPlant, p.Name, p.MinVolume, p.MaxVolume)
	case p.MinTurbineFlow < 0 || p.MaxTurbineFlow < p.MinTurbineFlow:
		return fmt.Errorf("%w: %s turbine range [%v, %v]", ErrBadPlant, p.Name, p.MinTurbineFlow, p.MaxTurbineFlow)
	case p.MaxFlow < p.MinTurbineFlow:
		return fmt.Errorf("%w: %s max flow %v below min turbine flow", ErrBadPlant, p.Name, p.MaxFlow)
	case p.MaxCapacity <= 0:
		return fmt.Errorf("%w: %s capacity %v", ErrBadPlant, p.Name, p.MaxCapacity)
	case len(p.Upstream) == 0 || len(p.Downstream) == 0:
		return fmt.Errorf("%w: %s missing level polynomials", ErrBadPlant, p.Name)
	}

	return nil
}

// Rho is efficiency·g·1e-3, converting head·flow into MW.
func (p Plant) Rho() float64 { return p.Efficiency * p.Gravity * 1e-3 }

// UpstreamHeight evaluates the forebay level at volume clamped to the
// reservoir bounds.
func (p Plant) UpstreamHeight(volume float64) float64 {
	return p.Upstream.At(sampling.Limit(volume, p.MinVolume, p.MaxVolume))
}

// DownstreamHeight evaluates the tailrace level for the released flow.
func (p Plant) DownstreamHeight(release float64) float64 {
	return p.Downstream.At(release)
}

// GeneratedEnergy is the uncapped output for volume and release.
func (p Plant) GeneratedEnergy(volume, release float64) float64 {
	turbined := sampling.Limit(release, p.MinTurbineFlow, p.MaxTurbineFlow)

	return p.Rho() * (p.UpstreamHeight(volume) - p.DownstreamHeight(release)) * turbined
}

// Output is GeneratedEnergy capped at MaxCapacity and floored at zero.
func (p Plant) Output(volume, release float64) float64 {
	return math.Max(0, math.Min(p.GeneratedEnergy(volume, release), p.MaxCapacity))
}

// VolumeGrid samples [MinVolume, MaxVolume] with the given period.
func (p Plant) VolumeGrid(period float64) (sampling.Grid, error) {
	return sampling.NewGrid(p.MinVolume, p.MaxVolume, period)
}

// ReleaseGrid samples [MinTurbineFlow, MaxFlow] with the given period.
func (p Plant) ReleaseGrid(period float64) (sampling.Grid, error) {
	return sampling.NewGrid(p.MinTurbineFlow, p.MaxFlow, period)
}

// IlhaSolteira is the single-reservoir reference plant.
func IlhaSolteira() Plant {
	return Plant{
		Name:           "ilha-solteira",
		Efficiency:     0.88,
		Gravity:        Gravity,
		MinVolume:      12800,
		MaxVolume:      21200,
		MinTurbineFlow: 1400,
		MaxTurbineFlow: 7955,
		MaxFlow:        10000,
		MaxCapacity:    3230,
		Upstream:       Polynomial{303.04, 0.0015519, -0.17377e-7},
		Downstream:     Polynomial{279.84, 0.22130e-3},
	}
}

// IlhaSolteiraJoint is Ilha Solteira as rated when operated together with
// Água Vermelha.
func IlhaSolteiraJoint() Plant {
	p := IlhaSolteira()
	p.Name = "ilha-solteira-joint"
	p.Efficiency = 0.89
	p.MaxCapacity = 1380

	return p
}

// AguaVermelha is the Água Vermelha plant.
func AguaVermelha() Plant {
	return Plant{
		Name:           "agua-vermelha",
		Efficiency:     0.88,
		Gravity:        Gravity,
		MinVolume:      4400,
		MaxVolume:      11000,
		MinTurbineFlow: 475,
		MaxTurbineFlow: 2710,
		MaxFlow:        5000,
		MaxCapacity:    3230,
		Upstream:       Polynomial{355.53, 0.0036268, -0.10090e-7},
		Downstream:     Polynomial{319.91, 0.15882e-2},
	}
}

// PlantByName looks a catalog plant up by its Name.
func PlantByName(name string) (Plant, bool) {
	for _, p := range []Plant{IlhaSolteira(), IlhaSolteiraJoint(), AguaVermelha()} {
		if p.Name == name {
			return p, true
		}
	}

	return Plant{}, false
}
