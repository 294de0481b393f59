// SPDX-License-Identifier: MIT

package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind selects the problem a scenario builds.
type Kind string

const (
	KindProduction           Kind = "production"
	KindDelayed              Kind = "delayed"
	KindStochasticProduction Kind = "stochastic-production"
	KindHydro                Kind = "hydro"
	KindHydroStochastic      Kind = "hydro-stochastic"
	KindJoint                Kind = "joint"
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{KindProduction, KindDelayed, KindStochasticProduction, KindHydro, KindHydroStochastic, KindJoint}
}

// Scenario is one decoded scenario file.
type Scenario struct {
	Name     string  `yaml:"name"`
	Kind     Kind    `yaml:"kind"`
	Infinity float64 `yaml:"infinity"`
	Workers  int     `yaml:"workers"`

	Production *Production `yaml:"production,omitempty"`
	Delayed    *Delayed    `yaml:"delayed,omitempty"`
	Stochastic *Stochastic `yaml:"stochastic,omitempty"`
	Hydro      *Hydro      `yaml:"hydro,omitempty"`
	Joint      *Joint      `yaml:"joint,omitempty"`
}

// Distribution is a finite random variable in YAML form.
type Distribution[V any] struct {
	Values        []V       `yaml:"values"`
	Probabilities []float64 `yaml:"probabilities"`
}

// Production parameterizes production.Planning.
type Production struct {
	Demand         []int           `yaml:"demand"`
	Levels         []int           `yaml:"levels"`
	Quantities     []int           `yaml:"quantities"`
	StockCost      []float64       `yaml:"stock_cost"`
	ProductionCost []float64       `yaml:"production_cost"`
	FinalCost      map[int]float64 `yaml:"final_cost"`
	Initial        int             `yaml:"initial"`
}

// Delayed parameterizes production.DelayedPlanning. Initial is
// [stock, previous quantity].
type Delayed struct {
	Demand      []int     `yaml:"demand"`
	Levels      []int     `yaml:"levels"`
	Quantities  []int     `yaml:"quantities"`
	UnitCost    []float64 `yaml:"unit_cost"`
	HoldingCost float64   `yaml:"holding_cost"`
	ChangeCost  float64   `yaml:"change_cost"`
	MaxStock    int       `yaml:"max_stock"`
	FinalCost   float64   `yaml:"final_cost"`
	Initial     [2]int    `yaml:"initial"`
}

// Stochastic parameterizes production.StochasticPlanning. When Realized is
// set the report follows the policy along that demand sequence.
type Stochastic struct {
	Demand     []Distribution[int] `yaml:"demand"`
	Quantities []int               `yaml:"quantities"`
	UnitCost   []float64           `yaml:"unit_cost"`
	Capacity   int                 `yaml:"capacity"`
	Holding    float64             `yaml:"holding"`
	Shortage   float64             `yaml:"shortage"`
	Overflow   float64             `yaml:"overflow"`
	Initial    int                 `yaml:"initial"`
	Realized   []int               `yaml:"realized"`
}

// Hydro overrides hydro.DefaultConfig. Inflow, Demand and Scenarios replace
// the catalog tables when set; Realized is the inflow sequence a
// hydro-stochastic report follows, the expected inflow by default.
type Hydro struct {
	Plant          string                  `yaml:"plant"`
	Year           int                     `yaml:"year"`
	StartMonth     int                     `yaml:"start_month"`
	Stages         int                     `yaml:"stages"`
	StatePeriod    float64                 `yaml:"state_period"`
	DecisionPeriod float64                 `yaml:"decision_period"`
	InitialVolume  float64                 `yaml:"initial_volume"`
	MinFinalVolume float64                 `yaml:"min_final_volume"`
	Thermal        float64                 `yaml:"thermal"`
	Inflow         []float64               `yaml:"inflow"`
	Demand         []float64               `yaml:"demand"`
	Scenarios      []Distribution[float64] `yaml:"scenarios"`
	Realized       []float64               `yaml:"realized"`
}

// Joint overrides hydro.DefaultJointConfig. Volume pairs are [first, second].
type Joint struct {
	Year           int        `yaml:"year"`
	StartMonth     int        `yaml:"start_month"`
	Stages         int        `yaml:"stages"`
	StatePeriod    float64    `yaml:"state_period"`
	DecisionPeriod float64    `yaml:"decision_period"`
	InitialVolume  [2]float64 `yaml:"initial_volume"`
	MinFinalVolume [2]float64 `yaml:"min_final_volume"`
	Thermal        float64    `yaml:"thermal"`
}

// Load reads and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return sc, nil
}

// Parse decodes one YAML document strictly and validates it.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrBadScenario)
		}

		return nil, fmt.Errorf("%w: %w", ErrBadScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	return &sc, nil
}

// Validate checks the kind, its section and the shared settings. Problem
// tables are checked when the problem is built.
func (sc *Scenario) Validate() error {
	if sc.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrBadScenario, sc.Workers)
	}
	if sc.Infinity < 0 {
		return fmt.Errorf("%w: infinity %v", ErrBadScenario, sc.Infinity)
	}

	var present bool
	switch sc.Kind {
	case KindProduction:
		present = sc.Production != nil
	case KindDelayed:
		present = sc.Delayed != nil
	case KindStochasticProduction:
		present = sc.Stochastic != nil
	case KindHydro, KindHydroStochastic, KindJoint:
		// every field has a catalog default.
		present = true
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, sc.Kind)
	}
	if !present {
		return fmt.Errorf("%w: %s", ErrMissingSection, sc.Kind)
	}

	return nil
}
