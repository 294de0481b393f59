// SPDX-License-Identifier: MIT

package scenario

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/dypro/dp"
	"golang.org/x/sync/errgroup"
)

// Sampling is one (state, decision) period pair of a sweep.
type Sampling struct {
	State    float64 `yaml:"state" json:"state"`
	Decision float64 `yaml:"decision" json:"decision"`
}

func (s Sampling) String() string {
	return strconv.FormatFloat(s.State, 'g', -1, 64) + ":" + strconv.FormatFloat(s.Decision, 'g', -1, 64)
}

// ParseSamplings reads a comma separated list of periods. An entry "p" uses
// p for both states and decisions; "s:d" sets them apart.
func ParseSamplings(list string) ([]Sampling, error) {
	var out []Sampling
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		state, decision, split := strings.Cut(field, ":")
		if !split {
			decision = state
		}
		s, err := strconv.ParseFloat(state, 64)
		if err != nil || s <= 0 {
			return nil, fmt.Errorf("%w: sampling %q", ErrBadScenario, field)
		}
		d, err := strconv.ParseFloat(decision, 64)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: sampling %q", ErrBadScenario, field)
		}
		out = append(out, Sampling{State: s, Decision: d})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no samplings", ErrBadScenario)
	}

	return out, nil
}

// SweepResult pairs a sampling with its report.
type SweepResult struct {
	Sampling Sampling `yaml:"sampling" json:"sampling"`
	Report   *Report  `yaml:"report" json:"report"`
}

// Sweep runs a hydro, hydro-stochastic or joint scenario once per sampling,
// at most parallel at a time. Results keep the order of samplings; the first
// failure cancels the remaining runs.
func Sweep(ctx context.Context, base *Scenario, samplings []Sampling, parallel int, opts ...dp.Option) ([]SweepResult, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	switch base.Kind {
	case KindHydro, KindHydroStochastic, KindJoint:
	default:
		return nil, fmt.Errorf("%w: %s cannot be swept", ErrUnknownKind, base.Kind)
	}
	if parallel < 1 {
		parallel = 1
	}

	results := make([]SweepResult, len(samplings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, s := range samplings {
		sc := withSampling(base, s)
		g.Go(func() error {
			rep, err := Run(gctx, sc, opts...)
			if err != nil {
				return fmt.Errorf("sampling %v: %w", s, err)
			}
			results[i] = SweepResult{Sampling: s, Report: rep}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// withSampling copies base with both periods replaced.
func withSampling(base *Scenario, s Sampling) *Scenario {
	sc := *base
	if base.Kind == KindJoint {
		j := Joint{}
		if base.Joint != nil {
			j = *base.Joint
		}
		j.StatePeriod, j.DecisionPeriod = s.State, s.Decision
		sc.Joint = &j

		return &sc
	}
	h := Hydro{}
	if base.Hydro != nil {
		h = *base.Hydro
	}
	h.StatePeriod, h.DecisionPeriod = s.State, s.Decision
	sc.Hydro = &h

	return &sc
}
