package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func samplesFor(jobID string, computeUs ...int64) []Measurement {
	samples := make([]Measurement, len(computeUs))
	for i, us := range computeUs {
		samples[i] = Measurement{
			JobID:         jobID,
			Iteration:     i,
			StartupTimeUs: 50,
			ComputeTimeUs: us,
			Result:        "78498",
		}
	}

	return samples
}

func TestAggregateEmptySet(t *testing.T) {
	stats := Aggregate("prime-sieve-baseline", "prime-sieve", "baseline", nil)

	assert.False(t, stats.HasData)
	assert.Equal(t, 0, stats.Samples)
	assert.Zero(t, stats.MeanUs)
	assert.Zero(t, stats.StdDevUs)
	assert.Zero(t, stats.CV)
}

func TestAggregateSingleSample(t *testing.T) {
	stats := Aggregate("j", "w", "p", samplesFor("j", 1200))

	assert.True(t, stats.HasData)
	assert.Equal(t, 1, stats.Samples)
	assert.Equal(t, 1200.0, stats.MeanUs)
	assert.Equal(t, 1200.0, stats.MedianUs)
	assert.Equal(t, 1200.0, stats.MinUs)
	assert.Equal(t, 1200.0, stats.MaxUs)
	assert.Zero(t, stats.StdDevUs)
	assert.Zero(t, stats.CV)
}

func TestAggregateIdenticalSamplesHaveZeroCV(t *testing.T) {
	stats := Aggregate("j", "w", "p", samplesFor("j", 500, 500, 500, 500))

	assert.Equal(t, 0.0, stats.StdDevUs)
	assert.Equal(t, 0.0, stats.CV)
}

func TestAggregateBasicStats(t *testing.T) {
	stats := Aggregate("j", "w", "p", samplesFor("j", 100, 200, 300))

	assert.Equal(t, 3, stats.Samples)
	assert.InDelta(t, 200.0, stats.MeanUs, 1e-9)
	assert.Equal(t, 200.0, stats.MedianUs)
	assert.Equal(t, 100.0, stats.MinUs)
	assert.Equal(t, 300.0, stats.MaxUs)
	assert.InDelta(t, 100.0, stats.StdDevUs, 1e-9)
	assert.InDelta(t, 0.5, stats.CV, 1e-9)
	assert.Equal(t, 50.0, stats.MeanStartupUs)
}

func TestAggregateMedianOfEvenCount(t *testing.T) {
	stats := Aggregate("j", "w", "p", samplesFor("j", 400, 100, 300, 200))

	assert.Equal(t, 250.0, stats.MedianUs)
}

func TestWithBaselineDerivesComparatives(t *testing.T) {
	baseline := Aggregate("prime-sieve-baseline", "prime-sieve", "baseline", samplesFor("b", 1000, 1000, 1000))
	baseline.ArtifactBytes = 1000

	optimized := Aggregate("prime-sieve-max-opt", "prime-sieve", "max-opt", samplesFor("o", 300, 300, 300))
	optimized.ArtifactBytes = 800

	derived := optimized.WithBaseline(baseline)

	assert.InDelta(t, 3.3333, derived.Speedup, 0.001)
	assert.InDelta(t, 20.0, derived.SizeReductionPct, 1e-9)
}

func TestWithBaselineWithoutData(t *testing.T) {
	baseline := JobStats{}
	stats := Aggregate("j", "w", "p", samplesFor("j", 100))

	derived := stats.WithBaseline(baseline)

	assert.Zero(t, derived.Speedup)
	assert.Zero(t, derived.SizeReductionPct)
}
