// SPDX-License-Identifier: MIT

// Package scenario reads YAML scenario files and runs them through the
// production and hydro problems.
//
// A scenario names its kind and carries one section for it:
//
//	name: reference
//	kind: hydro
//	workers: 4
//	hydro:
//	  plant: ilha-solteira
//	  start_month: 7
//	  stages: 3
//	  state_period: 2100
//	  decision_period: 1000
//
// Zero-valued hydro and joint fields keep the catalog defaults. Costs accept
// YAML's .inf. Unknown keys are rejected.
package scenario
