package metric

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Aggregate reduces a job's measurement set to summary statistics.
// An empty sample set yields a zero-valued summary with HasData unset.
func Aggregate(jobID, workload, profile string, samples []Measurement) JobStats {
	stats := JobStats{JobID: jobID, Workload: workload, Profile: profile}

	if len(samples) == 0 {
		return stats
	}

	compute := make([]float64, len(samples))
	startup := make([]float64, len(samples))
	for i, s := range samples {
		compute[i] = float64(s.ComputeTimeUs)
		startup[i] = float64(s.StartupTimeUs)
	}

	sorted := make([]float64, len(compute))
	copy(sorted, compute)
	sort.Float64s(sorted)

	stats.HasData = true
	stats.Samples = len(samples)
	stats.MeanUs = stat.Mean(compute, nil)
	stats.MedianUs = medianOfSorted(sorted)
	stats.MinUs = sorted[0]
	stats.MaxUs = sorted[len(sorted)-1]
	stats.MeanStartupUs = stat.Mean(startup, nil)

	// A single sample has no spread; leave StdDev and CV at zero
	// rather than letting the n-1 denominator produce NaN.
	if len(compute) > 1 {
		stats.StdDevUs = stat.StdDev(compute, nil)
	}
	if stats.MeanUs > 0 {
		stats.CV = stats.StdDevUs / stats.MeanUs
	}

	return stats
}

// WithBaseline fills the comparative fields from the same workload's
// baseline summary. Missing or empty baselines leave them at zero.
func (s JobStats) WithBaseline(baseline JobStats) JobStats {
	if baseline.HasData && s.HasData && s.MeanUs > 0 {
		s.Speedup = baseline.MeanUs / s.MeanUs
	}
	if baseline.ArtifactBytes > 0 && s.ArtifactBytes > 0 {
		s.SizeReductionPct = float64(baseline.ArtifactBytes-s.ArtifactBytes) /
			float64(baseline.ArtifactBytes) * 100.0
	}

	return s
}

func medianOfSorted(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}
