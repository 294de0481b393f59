package random_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dypro/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Construction
// -----------------------------------------------------------------------------

func TestNew_Valid(t *testing.T) {
	v, err := random.New([]int{1, 2, 3}, []float64{0.2, 0.7, 0.1})
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())
	assert.InDelta(t, 1.0, v.Sum(), 1e-12)
}

func TestNew_LengthMismatch(t *testing.T) {
	_, err := random.New([]int{1, 2}, []float64{1})
	assert.ErrorIs(t, err, random.ErrLengthMismatch)
}

func TestNew_Empty(t *testing.T) {
	_, err := random.New([]int{}, []float64{})
	assert.ErrorIs(t, err, random.ErrEmpty)
}

func TestNew_ProbabilityRange(t *testing.T) {
	_, err := random.New([]int{1, 2}, []float64{1.2, -0.2})
	assert.ErrorIs(t, err, random.ErrProbabilityRange)
	_, err = random.New([]int{1}, []float64{math.NaN()})
	assert.ErrorIs(t, err, random.ErrProbabilityRange)
}

// TestNew_ScaledProbabilitiesRejected takes a valid distribution, scales it
// by 1.5 while keeping every entry in range, and expects the sum check to fail.
func TestNew_ScaledProbabilitiesRejected(t *testing.T) {
	base := []float64{0.2, 0.3, 0.5}
	scaled := make([]float64, len(base))
	for i, p := range base {
		scaled[i] = p * 1.5
	}
	_, err := random.New([]int{1, 2, 3}, scaled)
	assert.ErrorIs(t, err, random.ErrProbabilitySum)
}

func TestNew_WithinTolerance(t *testing.T) {
	_, err := random.New([]int{1, 2}, []float64{0.5, 0.505})
	assert.NoError(t, err)
	_, err = random.New([]int{1, 2}, []float64{0.5, 0.52})
	assert.ErrorIs(t, err, random.ErrProbabilitySum)
}

// TestNewWithTolerance_Exact shows that decimal inputs which miss 1.0 by a
// rounding ulp are rejected in exact mode but accepted by default.
func TestNewWithTolerance_Exact(t *testing.T) {
	probs := []float64{0.2, 0.7, 0.1}
	require.NotEqual(t, 1.0, probs[0]+probs[1]+probs[2])

	_, err := random.NewWithTolerance([]int{1, 2, 3}, probs, random.ExactTolerance)
	assert.ErrorIs(t, err, random.ErrProbabilitySum)

	_, err = random.New([]int{1, 2, 3}, probs)
	assert.NoError(t, err)

	_, err = random.NewWithTolerance([]int{1, 2}, []float64{0.5, 0.5}, random.ExactTolerance)
	assert.NoError(t, err)
}

func TestNewWithTolerance_Bad(t *testing.T) {
	_, err := random.NewWithTolerance([]int{1}, []float64{1}, -1)
	assert.ErrorIs(t, err, random.ErrBadTolerance)
}

func TestNewOutcome(t *testing.T) {
	o, err := random.NewOutcome("a", 0.4)
	require.NoError(t, err)
	assert.Equal(t, random.Outcome[string]{Value: "a", Probability: 0.4}, o)

	_, err = random.NewOutcome("a", 1.01)
	assert.ErrorIs(t, err, random.ErrProbabilityRange)
}

func TestFromOutcomes_KeepsDuplicates(t *testing.T) {
	v, err := random.FromOutcomes(
		random.Outcome[int]{Value: 1, Probability: 0.25},
		random.Outcome[int]{Value: 1, Probability: 0.25},
		random.Outcome[int]{Value: 2, Probability: 0.5},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

func TestVariable_OrderAndCopy(t *testing.T) {
	v, err := random.New([]int{3, 1, 2}, []float64{0.5, 0.25, 0.25})
	require.NoError(t, err)

	outs := v.Outcomes()
	assert.Equal(t, []int{3, 1, 2}, []int{outs[0].Value, outs[1].Value, outs[2].Value})

	outs[0].Probability = 0
	assert.Equal(t, 0.5, v.Outcomes()[0].Probability, "Outcomes must return a copy")

	var order []int
	for val, p := range v.All() {
		order = append(order, val)
		assert.Greater(t, p, 0.0)
	}
	assert.Equal(t, []int{3, 1, 2}, order)
}

func TestVariable_Expect(t *testing.T) {
	v, err := random.New([]int{1, 2, 3}, []float64{0.5, 0.25, 0.25})
	require.NoError(t, err)
	assert.InDelta(t, 1.75, v.Expect(func(x int) float64 { return float64(x) }), 1e-12)
}

func TestDegenerate(t *testing.T) {
	v := random.Degenerate(7)
	assert.Equal(t, 1, v.Len())
	assert.Equal(t, 7.0, v.Expect(func(x int) float64 { return float64(x) }))
}
