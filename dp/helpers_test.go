package dp_test

import (
	"iter"
	"slices"

	"github.com/katalvlaran/dypro/dp"
	"github.com/katalvlaran/dypro/random"
)

// funcProblem is a deterministic problem assembled from closures.
type funcProblem[S, D comparable] struct {
	states    func(stage int) []S
	decisions func(stage int) []D
	cost      func(stage int, x S, u D) float64
	next      func(stage int, x S, u D) S
	terminal  func(x S) float64
	initial   S
}

func (p *funcProblem[S, D]) States(k int) iter.Seq[S]    { return slices.Values(p.states(k)) }
func (p *funcProblem[S, D]) Decisions(k int) iter.Seq[D] { return slices.Values(p.decisions(k)) }
func (p *funcProblem[S, D]) TerminalCost(x S) float64    { return p.terminal(x) }
func (p *funcProblem[S, D]) InitialState() S             { return p.initial }
func (p *funcProblem[S, D]) ElementaryCost(k int, x S, u D) float64 {
	return p.cost(k, x, u)
}
func (p *funcProblem[S, D]) Transition(k int, x S, u D) S { return p.next(k, x, u) }

// stochasticProblem is the stochastic counterpart of funcProblem.
type stochasticProblem[S, D comparable, W any] struct {
	states    func(stage int) []S
	decisions func(stage int) []D
	outcomes  func(stage int) *random.Variable[W]
	cost      func(stage int, x S, u D, w W) float64
	next      func(stage int, x S, u D, w W) S
	terminal  func(x S) float64
	initial   S
}

func (p *stochasticProblem[S, D, W]) States(k int) iter.Seq[S]    { return slices.Values(p.states(k)) }
func (p *stochasticProblem[S, D, W]) Decisions(k int) iter.Seq[D] { return slices.Values(p.decisions(k)) }
func (p *stochasticProblem[S, D, W]) TerminalCost(x S) float64    { return p.terminal(x) }
func (p *stochasticProblem[S, D, W]) InitialState() S             { return p.initial }
func (p *stochasticProblem[S, D, W]) Outcomes(k int) *random.Variable[W] {
	return p.outcomes(k)
}
func (p *stochasticProblem[S, D, W]) ElementaryCost(k int, x S, u D, w W) float64 {
	return p.cost(k, x, u, w)
}
func (p *stochasticProblem[S, D, W]) Transition(k int, x S, u D, w W) S {
	return p.next(k, x, u, w)
}

func ints(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}

	return out
}

// ringProblem stays on its grid: states 0..4, decisions 0..2, x' = (x+u) mod 5.
// Costs are uneven enough that the minimizer is not trivially u = 0.
func ringProblem() *funcProblem[int, int] {
	return &funcProblem[int, int]{
		states:    func(int) []int { return ints(0, 4) },
		decisions: func(int) []int { return ints(0, 2) },
		cost: func(k, x, u int) float64 {
			return float64((x*3+u*7+k)%5) + 0.5*float64(u)
		},
		next:     func(_ int, x, u int) int { return (x + u) % 5 },
		terminal: func(x int) float64 { return float64(x * x) },
		initial:  0,
	}
}

// snapshot flattens a cost table over stages 0..n into a comparable map.
func snapshot[S comparable](t *dp.Table[S], n int) map[dp.Key[S]]float64 {
	out := make(map[dp.Key[S]]float64)
	for k := 0; k <= n; k++ {
		for s, v := range t.Stage(k) {
			out[dp.Key[S]{Stage: k, State: s}] = v
		}
	}

	return out
}
