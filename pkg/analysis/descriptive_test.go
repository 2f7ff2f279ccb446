package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	_, err := Mean(nil)
	require.ErrorIs(t, err, ErrInsufficientData)

	m, err := Mean([]float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, 3.0, m)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		testName string
		xs       []float64
		want     float64
	}{
		{"single value", []float64{7}, 7},
		{"odd count unsorted", []float64{5, 1, 3}, 3},
		{"even count", []float64{1, 2, 3, 4}, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			got, err := Median(tt.xs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Median(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestMedianLeavesInputUntouched(t *testing.T) {
	xs := []float64{9, 1, 5}
	_, err := Median(xs)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 1, 5}, xs)
}

func TestSampleVariance(t *testing.T) {
	_, err := SampleVariance([]float64{5})
	require.ErrorIs(t, err, ErrInsufficientData)

	v, err := SampleVariance([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-12)

	v, err = SampleVariance([]float64{5, 5, 5})
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestSampleStdDev(t *testing.T) {
	sd, err := SampleStdDev([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sd, 1e-12)
}

func TestStdError(t *testing.T) {
	se, err := StdError([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt(3), se, 1e-12)

	_, err = StdError([]float64{1})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCV(t *testing.T) {
	cv, err := CV([]float64{10, 11, 12})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/11.0, cv, 1e-12)

	_, err = CV([]float64{-1, 0, 1})
	assert.ErrorIs(t, err, ErrZeroMean)

	_, err = CV([]float64{4})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}

	r, err := Correlation(x, []float64{2, 4, 6, 8, 10})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)

	r, err = Correlation(x, []float64{10, 8, 6, 4, 2})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, r, 1e-12)

	_, err = Correlation(x, []float64{1, 1, 1, 1, 1})
	assert.ErrorIs(t, err, ErrZeroVariance)

	_, err = Correlation(x, []float64{1, 2})
	assert.Error(t, err)

	_, err = Correlation([]float64{1}, []float64{2})
	assert.ErrorIs(t, err, ErrInsufficientData)
}
