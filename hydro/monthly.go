// SPDX-License-Identifier: MIT

package hydro

import (
	"fmt"

	"github.com/katalvlaran/dypro/random"
)

// Monthly is a table indexed by month, 0 = January. It may be shorter than
// twelve entries; lookups past its end fail with ErrUnknownMonth.
type Monthly []float64

// At returns the entry for month.
func (m Monthly) At(month int) (float64, error) {
	if month < 0 || month >= len(m) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownMonth, month)
	}

	return m[month], nil
}

// Scenarios is a per-month inflow distribution, m³/s.
type Scenarios []*random.Variable[float64]

// At returns the distribution for month.
func (s Scenarios) At(month int) (*random.Variable[float64], error) {
	if month < 0 || month >= len(s) || s[month] == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMonth, month)
	}

	return s[month], nil
}

// IlhaSolteiraInflow is the mean monthly inflow of the single-reservoir
// reference plant, m³/s.
func IlhaSolteiraInflow() Monthly {
	return Monthly{9107, 7688, 9358, 6794, 4303, 3533, 2867, 2557, 2171, 2247, 3517, 4180}
}

// IlhaSolteiraDemand is the monthly demand served by the reference plant, MW.
func IlhaSolteiraDemand() Monthly {
	return Monthly{2800, 2500, 2300, 2500, 2600, 2800, 2800, 2600, 2600, 2800, 3000, 3100}
}

// AguaVermelhaInflow is the mean monthly inflow of Água Vermelha, m³/s.
func AguaVermelhaInflow() Monthly {
	return Monthly{3899, 3202, 2953, 2600, 1671, 1271, 1045, 972, 792, 790, 1139, 1589}
}

// IlhaSolteiraJointInflow is the incremental inflow of Ilha Solteira when
// operated with Água Vermelha, m³/s.
func IlhaSolteiraJointInflow() Monthly {
	return Monthly{5208, 4486, 6405, 4194, 2632, 2262, 1822, 1585, 1379, 1457, 2378, 2591}
}

// JointDemand is the demand shared by the two-plant system, MW.
func JointDemand() Monthly {
	return Monthly{3600, 3300, 3000, 3200, 3400, 3600, 3700, 3300, 3400, 3600, 3900, 4000}
}

// scenarioProbabilities weighs the five inflow levels of every month.
var scenarioProbabilities = []float64{0.1, 0.2, 0.4, 0.2, 0.1}

// IlhaSolteiraScenarios returns five-level inflow distributions per month
// centered on IlhaSolteiraInflow.
func IlhaSolteiraScenarios() Scenarios {
	levels := [12][5]float64{
		{6375, 7741, 9107, 10473, 11839},
		{5382, 6535, 7688, 8841, 9995},
		{6550, 7954, 9358, 10762, 12165},
		{4756, 5775, 6794, 7814, 8832},
		{3012, 3658, 4303, 4948, 5594},
		{2473, 3003, 3533, 4063, 4593},
		{2007, 2437, 2867, 3297, 3727},
		{1790, 2173, 2557, 2941, 3324},
		{1520, 1845, 2171, 2497, 2822},
		{1573, 1910, 2247, 2584, 2921},
		{2462, 2989, 3517, 4045, 4572},
		{2926, 3553, 4180, 4807, 5434},
	}
	out := make(Scenarios, len(levels))
	for m, l := range levels {
		v, err := random.New(l[:], scenarioProbabilities)
		if err != nil {
			// static data; a failure here is a programming error.
			panic(err)
		}
		out[m] = v
	}

	return out
}
