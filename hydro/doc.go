// SPDX-License-Identifier: MIT

// Package hydro schedules hydroelectric reservoirs over monthly stages with
// package dp.
//
// Model:
//
//	The state is the stored volume (10^6 m³), the decision the released flow
//	(m³/s). A month moves the volume by (inflow − release)·seconds·1e-6. The
//	plant output is
//
//	  E = ρ·(h_up(volume) − h_down(release))·clamp(release, minTurbine, maxTurbine)
//
//	capped at the installed capacity, with ρ = efficiency·g·1e-3. Demand the
//	plant cannot meet is bought from thermal generation at cost c·deficit².
//	Ending below the minimum final volume costs Infinity.
//
// Problems:
//   - Schedule: one reservoir, known monthly inflow.
//   - StochasticSchedule: one reservoir, inflow drawn from a monthly
//     random.Variable.
//   - JointSchedule: two reservoirs sharing one demand; states and
//     decisions are dp.Pair values.
//
// Volumes outside the reservoir bounds are clamped and charged Infinity;
// volumes inside are snapped to the sampling grid (dp.IntervalResolver,
// dp.PairResolver). Month tables are checked at construction, so a horizon
// running past the data fails with ErrUnknownMonth before any solving.
package hydro
