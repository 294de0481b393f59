package hydro_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/dypro/dp"
	"github.com/katalvlaran/dypro/hydro"
	"github.com/katalvlaran/dypro/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDryStochastic(t testing.TB) *hydro.StochasticSchedule {
	t.Helper()
	s, err := hydro.NewStochasticSchedule(dryConfig(), hydro.IlhaSolteiraScenarios())
	require.NoError(t, err)

	return s
}

func TestNewStochasticSchedule_Errors(t *testing.T) {
	cfg := dryConfig()
	cfg.Stages = 6
	_, err := hydro.NewStochasticSchedule(cfg, hydro.IlhaSolteiraScenarios())
	assert.ErrorIs(t, err, hydro.ErrUnknownMonth)

	short := hydro.IlhaSolteiraScenarios()[:8]
	_, err = hydro.NewStochasticSchedule(dryConfig(), short)
	assert.ErrorIs(t, err, hydro.ErrUnknownMonth)

	holes := hydro.IlhaSolteiraScenarios()
	holes[8] = nil
	_, err = hydro.NewStochasticSchedule(dryConfig(), holes)
	assert.ErrorIs(t, err, hydro.ErrUnknownMonth)
}

func TestStochasticSchedule_Solve(t *testing.T) {
	s := newDryStochastic(t)
	sol, err := s.Solve(context.Background())
	require.NoError(t, err)

	rows := [][]float64{
		{1067.9302197847107, 769.8013403495124, 670.0202868526787, 644.757757231939, 524.0240942191238},
		{2125.153737918345, 699.4768263839087, 492.28792449834, 413.1896522992949, 385.53169333063533},
		{7345.282550470893, 1337.0462669908852, 329.4609646551881, 216.79420638340827, 122.98782781677559},
	}
	policy := [][]float64{
		{1400, 1400, 2400, 3400, 3400},
		{1400, 1400, 1400, 2400, 3400},
		{1400, 1400, 1400, 2400, 3400},
	}
	volumes := []float64{12800, 14900, 17000, 19100, 21200}
	for k := range rows {
		for i, v := range volumes {
			got, ok := sol.CostToGo(k, v)
			require.True(t, ok)
			assert.InDelta(t, rows[k][i], got, 1e-6, "stage %d volume %v", k, v)
			u, err := sol.Decision(k, v)
			require.NoError(t, err)
			assert.Equal(t, policy[k][i], u, "stage %d volume %v", k, v)
		}
	}
}

func TestStochasticSchedule_Realize(t *testing.T) {
	s := newDryStochastic(t)
	sol, err := s.Solve(context.Background())
	require.NoError(t, err)

	mean := s.ExpectedInflow()
	require.Len(t, mean, 3)
	assert.InDelta(t, 2557, mean[0], 1e-9)

	res, err := s.Realize(sol, []float64{2557, 2171, 2247})
	require.NoError(t, err)
	assert.Equal(t, []float64{14900, 17000, 19100, 19100}, res.States)
	assert.Equal(t, []float64{1400, 1400, 2400}, res.Decisions)
	assert.InDelta(t, 769.8013403495124, res.Cost, 1e-9)

	_, err = s.Realize(sol, []float64{1, 2})
	assert.ErrorIs(t, err, hydro.ErrBadConfig)
}

// TestStochasticSchedule_DegenerateMatchesDeterministic collapses every month
// onto its mean inflow.
func TestStochasticSchedule_DegenerateMatchesDeterministic(t *testing.T) {
	inflow := hydro.IlhaSolteiraInflow()
	sc := make(hydro.Scenarios, len(inflow))
	for m, w := range inflow {
		sc[m] = random.Degenerate(w)
	}
	st, err := hydro.NewStochasticSchedule(dryConfig(), sc)
	require.NoError(t, err)
	stoch, err := st.Solve(context.Background())
	require.NoError(t, err)

	det, err := newDrySchedule(t).Solve(context.Background())
	require.NoError(t, err)

	for k := 0; k <= 3; k++ {
		for v := range st.States(k) {
			a, _ := det.CostToGo(k, v)
			b, _ := stoch.CostToGo(k, v)
			assert.InDelta(t, a, b, 1e-9, "stage %d volume %v", k, v)
		}
	}
}

func TestStochasticSchedule_Workers(t *testing.T) {
	s := newDryStochastic(t)
	seq, err := s.Solve(context.Background())
	require.NoError(t, err)
	par, err := s.Solve(context.Background(), dp.WithWorkers(3))
	require.NoError(t, err)

	for v := range s.States(0) {
		a, _ := seq.CostToGo(0, v)
		b, _ := par.CostToGo(0, v)
		assert.Equal(t, a, b)
	}
}
