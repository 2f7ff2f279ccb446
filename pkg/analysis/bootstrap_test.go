package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapCIDeterministic(t *testing.T) {
	data := []float64{3, 1, 4, 1, 5, 9, 2, 6}

	first, err := BootstrapCI(data, 0.95, 2000, 42)
	require.NoError(t, err)
	second, err := BootstrapCI(data, 0.95, 2000, 42)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.LessOrEqual(t, first.Lower, first.Center)
	assert.GreaterOrEqual(t, first.Upper, first.Center)
}

func TestBootstrapCIBracketsMean(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	ci, err := BootstrapCI(data, 0.95, 4000, 7)
	require.NoError(t, err)

	assert.Equal(t, 0.95, ci.Level)
	assert.InDelta(t, 3.0, ci.Center, 1e-12)
	assert.True(t, ci.Contains(3.0))
	assert.Less(t, ci.Width(), 3.2)

	// Zero resamples falls back to the default iteration count.
	def, err := BootstrapCI(data, 0.95, 0, 7)
	require.NoError(t, err)
	assert.True(t, def.Contains(3.0))
}

// Repeated trials against a known normal population check the
// advertised confidence level: a 95% interval should contain the true
// mean in roughly 95 of 100 trials.
func TestBootstrapCICoverage(t *testing.T) {
	const trials = 100

	covered := 0
	totalWidth := 0.0
	for trial := 0; trial < trials; trial++ {
		rng := rand.New(rand.NewSource(int64(trial)))
		data := make([]float64, 1000)
		for i := range data {
			data[i] = 100 + 10*rng.NormFloat64()
		}

		ci, err := BootstrapCI(data, 0.95, 400, int64(1000+trial))
		require.NoError(t, err)

		if ci.Contains(100) {
			covered++
		}
		totalWidth += ci.Width()
	}

	assert.GreaterOrEqual(t, covered, 88)
	assert.Less(t, totalWidth/trials, 2.0)
}

func TestBootstrapCIFuncMedian(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	medianOf := func(xs []float64) float64 {
		m, _ := Median(xs)
		return m
	}

	ci, err := BootstrapCIFunc(data, medianOf, 0.90, 1000, 3)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, ci.Center, 1e-12)
	assert.True(t, ci.Contains(5.0))
}

func TestBootstrapCIErrors(t *testing.T) {
	_, err := BootstrapCI([]float64{5}, 0.95, 100, 1)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = BootstrapCI([]float64{1, 2, 3}, 1.5, 100, 1)
	assert.Error(t, err)

	_, err = BootstrapCI([]float64{1, 2, 3}, 0, 100, 1)
	assert.Error(t, err)
}
