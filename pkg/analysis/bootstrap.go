package analysis

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultResamples is the bootstrap iteration count used when a caller
// passes zero.
const DefaultResamples = 10000

// Statistic reduces a sample to one number. It is called on resampled
// data, which is never empty.
type Statistic func(xs []float64) float64

// ConfidenceInterval bounds a statistic at the given confidence level.
type ConfidenceInterval struct {
	Lower  float64
	Upper  float64
	Level  float64
	Center float64
}

// Contains reports whether v lies inside the interval.
func (ci ConfidenceInterval) Contains(v float64) bool {
	return v >= ci.Lower && v <= ci.Upper
}

// Width returns the interval width.
func (ci ConfidenceInterval) Width() float64 {
	return ci.Upper - ci.Lower
}

// BootstrapCI builds a percentile confidence interval for the mean by
// resampling with replacement. The seed fully determines the result,
// so equal inputs always produce equal intervals.
func BootstrapCI(data []float64, level float64, resamples int, seed int64) (ConfidenceInterval, error) {
	return BootstrapCIFunc(data, func(xs []float64) float64 { return stat.Mean(xs, nil) }, level, resamples, seed)
}

// BootstrapCIFunc is BootstrapCI for an arbitrary statistic.
func BootstrapCIFunc(data []float64, statistic Statistic, level float64, resamples int, seed int64) (ConfidenceInterval, error) {
	if len(data) < 2 {
		return ConfidenceInterval{}, ErrInsufficientData
	}
	if level <= 0 || level >= 1 {
		return ConfidenceInterval{}, fmt.Errorf("confidence level %g outside (0, 1)", level)
	}
	if resamples <= 0 {
		resamples = DefaultResamples
	}

	rng := rand.New(rand.NewSource(seed))
	sample := make([]float64, len(data))
	stats := make([]float64, resamples)
	for i := range stats {
		for j := range sample {
			sample[j] = data[rng.Intn(len(data))]
		}
		stats[i] = statistic(sample)
	}
	sort.Float64s(stats)

	alpha := 1 - level
	lower := int(float64(resamples) * alpha / 2)
	upper := int(float64(resamples) * (1 - alpha/2))
	if upper >= resamples {
		upper = resamples - 1
	}

	return ConfidenceInterval{
		Lower:  stats[lower],
		Upper:  stats[upper],
		Level:  level,
		Center: statistic(data),
	}, nil
}
