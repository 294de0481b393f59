package dp_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/dypro/dp"
	"github.com/katalvlaran/dypro/sampling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstruct_FollowsPolicy(t *testing.T) {
	const n = 5
	p := ringProblem()
	sol, err := dp.Solve(context.Background(), p, n)
	require.NoError(t, err)

	states, decisions, err := sol.Trajectory(p.InitialState(), p.Transition)
	require.NoError(t, err)
	require.Len(t, states, n+1)
	require.Len(t, decisions, n)
	assert.Equal(t, p.InitialState(), states[0])

	total := 0.0
	for k := 0; k < n; k++ {
		want, _ := sol.Decision(k, states[k])
		assert.Equal(t, want, decisions[k])
		assert.Equal(t, p.next(k, states[k], decisions[k]), states[k+1])
		total += p.cost(k, states[k], decisions[k])
	}
	total += p.terminal(states[n])
	f, _ := sol.CostToGo(0, states[0])
	assert.InDelta(t, f, total, 1e-9, "path cost equals F[0, x0]")
}

func TestReconstruct_ZeroStages(t *testing.T) {
	states, decisions, err := dp.Reconstruct(3, 0, dp.NewPolicy[int, int](), func(int, int, int) int { return 0 })
	require.NoError(t, err)
	assert.Equal(t, []int{3}, states)
	assert.Empty(t, decisions)
}

func TestReconstruct_Errors(t *testing.T) {
	id := func(_ int, x, _ int) int { return x }

	_, _, err := dp.Reconstruct[int, int](0, 1, nil, id)
	assert.ErrorIs(t, err, dp.ErrNilPolicy)

	_, _, err = dp.Reconstruct(0, -1, dp.NewPolicy[int, int](), id)
	assert.ErrorIs(t, err, dp.ErrNegativeStages)

	pol := dp.NewPolicy[int, int]()
	pol.Set(0, 0, 1)
	_, _, err = dp.Reconstruct(0, 2, pol, id)
	assert.ErrorIs(t, err, dp.ErrStateNotVisited)

	pol.MarkUnreachable(1, 0)
	_, _, err = dp.Reconstruct(0, 2, pol, id)
	assert.ErrorIs(t, err, dp.ErrUnreachableState)
}

// TestReconstruct_Snapped keeps a continuous transition on the grid.
func TestReconstruct_Snapped(t *testing.T) {
	grid, err := sampling.NewGrid(0, 4, 1)
	require.NoError(t, err)
	r := dp.IntervalResolver{Grid: grid, Penalty: 100}
	p := &funcProblem[float64, float64]{
		states:    func(int) []float64 { return grid.Points() },
		decisions: func(int) []float64 { return []float64{0.4, 1.6} },
		cost:      func(_ int, _ float64, u float64) float64 { return u },
		next:      func(_ int, x, u float64) float64 { return x + u },
		terminal: func(x float64) float64 {
			if x >= 3 {
				return 0
			}

			return 100
		},
	}
	sol, err := dp.Solve(context.Background(), p, 2, dp.WithResolver[float64](r))
	require.NoError(t, err)

	states, decisions, err := sol.Trajectory(0, dp.Snapped(p.Transition, r.Snap))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 4}, states)
	assert.Equal(t, []float64{1.6, 1.6}, decisions)
}
