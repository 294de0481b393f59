package hydro_test

import (
	"testing"

	"github.com/katalvlaran/dypro/hydro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

// -----------------------------------------------------------------------------
// Physics
// -----------------------------------------------------------------------------

func TestPolynomial_At(t *testing.T) {
	p := hydro.Polynomial{1, 2, 3}
	assert.Equal(t, 1.0, p.At(0))
	assert.Equal(t, 6.0, p.At(1))
	assert.Equal(t, 17.0, p.At(2))
	assert.Equal(t, 0.0, hydro.Polynomial{}.At(5))
}

func TestPlant_IlhaSolteira(t *testing.T) {
	p := hydro.IlhaSolteira()
	require.NoError(t, p.Validate())

	assert.InDelta(t, 0.0088, p.Rho(), eps)
	assert.InDelta(t, 322.408675, p.UpstreamHeight(15000), eps)
	assert.InDelta(t, 280.9465, p.DownstreamHeight(5000), eps)
	assert.InDelta(t, 1824.3357, p.GeneratedEnergy(15000, 5000), 1e-6)
	assert.InDelta(t, 1824.3357, p.Output(15000, 5000), 1e-6)

	// flow above the turbine limit is spilled but still raises the tailrace.
	assert.InDelta(t, 2840.5505579, p.GeneratedEnergy(15000, 9000), 1e-6)
}

func TestPlant_UpstreamClampsVolume(t *testing.T) {
	p := hydro.IlhaSolteira()
	assert.Equal(t, p.UpstreamHeight(p.MaxVolume), p.UpstreamHeight(30000))
	assert.Equal(t, p.UpstreamHeight(p.MinVolume), p.UpstreamHeight(0))
	assert.InDelta(t, 2076.08988928, p.Output(30000, 5000), 1e-6)
}

func TestPlant_OutputBounds(t *testing.T) {
	p := hydro.IlhaSolteira()
	assert.Greater(t, p.GeneratedEnergy(21200, 9000), p.MaxCapacity)
	assert.Equal(t, p.MaxCapacity, p.Output(21200, 9000))

	p.Upstream = hydro.Polynomial{1}
	p.Downstream = hydro.Polynomial{2}
	assert.Less(t, p.GeneratedEnergy(15000, 5000), 0.0)
	assert.Equal(t, 0.0, p.Output(15000, 5000))
}

func TestPlant_Validate(t *testing.T) {
	cases := map[string]func(*hydro.Plant){
		"efficiency": func(p *hydro.Plant) { p.Efficiency = 0 },
		"gravity":    func(p *hydro.Plant) { p.Gravity = -1 },
		"volume":     func(p *hydro.Plant) { p.MaxVolume = p.MinVolume - 1 },
		"turbine":    func(p *hydro.Plant) { p.MinTurbineFlow = p.MaxTurbineFlow + 1 },
		"max flow":   func(p *hydro.Plant) { p.MaxFlow = p.MinTurbineFlow - 1 },
		"capacity":   func(p *hydro.Plant) { p.MaxCapacity = 0 },
		"polynomial": func(p *hydro.Plant) { p.Upstream = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := hydro.IlhaSolteira()
			mutate(&p)
			assert.ErrorIs(t, p.Validate(), hydro.ErrBadPlant)
		})
	}
}

func TestPlant_Grids(t *testing.T) {
	p := hydro.IlhaSolteira()
	v, err := p.VolumeGrid(2100)
	require.NoError(t, err)
	assert.Equal(t, []float64{12800, 14900, 17000, 19100, 21200}, v.Points())

	u, err := p.ReleaseGrid(1000)
	require.NoError(t, err)
	assert.Equal(t, 10, u.Len())
	assert.Equal(t, 10000.0, u.At(9))

	_, err = p.VolumeGrid(0)
	assert.Error(t, err)
}

func TestPlantByName(t *testing.T) {
	for _, want := range []hydro.Plant{hydro.IlhaSolteira(), hydro.IlhaSolteiraJoint(), hydro.AguaVermelha()} {
		require.NoError(t, want.Validate())
		got, ok := hydro.PlantByName(want.Name)
		require.True(t, ok, want.Name)
		assert.Equal(t, want, got)
	}
	_, ok := hydro.PlantByName("itaipu")
	assert.False(t, ok)
}

// -----------------------------------------------------------------------------
// Calendar and month tables
// -----------------------------------------------------------------------------

func TestDaysOfMonth(t *testing.T) {
	cases := []struct{ year, month, days int }{
		{2021, 0, 31},
		{2021, 1, 28},
		{2024, 1, 29},
		{2021, 3, 30},
		{2021, 11, 31},
	}
	for _, c := range cases {
		got, err := hydro.DaysOfMonth(c.year, c.month)
		require.NoError(t, err)
		assert.Equal(t, c.days, got, "%d-%d", c.year, c.month)
	}

	for _, m := range []int{-1, 12} {
		_, err := hydro.DaysOfMonth(2021, m)
		assert.ErrorIs(t, err, hydro.ErrUnknownMonth)
	}
}

func TestSecondsOfMonth(t *testing.T) {
	s, err := hydro.SecondsOfMonth(2021, 1)
	require.NoError(t, err)
	assert.Equal(t, 2419200.0, s)

	_, err = hydro.SecondsOfMonth(2021, 12)
	assert.ErrorIs(t, err, hydro.ErrUnknownMonth)
}

func TestMonthly_At(t *testing.T) {
	m := hydro.IlhaSolteiraDemand()
	v, err := m.At(11)
	require.NoError(t, err)
	assert.Equal(t, 3100.0, v)

	_, err = m.At(12)
	assert.ErrorIs(t, err, hydro.ErrUnknownMonth)
	_, err = hydro.Monthly{1, 2}.At(2)
	assert.ErrorIs(t, err, hydro.ErrUnknownMonth)
}

func TestIlhaSolteiraScenarios(t *testing.T) {
	sc := hydro.IlhaSolteiraScenarios()
	mean := hydro.IlhaSolteiraInflow()
	require.Len(t, sc, 12)
	for m, v := range sc {
		assert.Equal(t, 5, v.Len())
		assert.InDelta(t, 1, v.Sum(), 1e-12)
		assert.InDelta(t, mean[m], v.Expect(func(w float64) float64 { return w }), 0.25, "month %d", m)
	}

	_, err := sc.At(12)
	assert.ErrorIs(t, err, hydro.ErrUnknownMonth)
}
