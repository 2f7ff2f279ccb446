package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParetoFrontierTradeoff(t *testing.T) {
	points := []ParetoPoint{
		{Profile: "baseline", Speedup: 1.0, SizeBytes: 300000},
		{Profile: "size-opt", Speedup: 0.8, SizeBytes: 200000},
		{Profile: "fast", Speedup: 3.0, SizeBytes: 800000},
		{Profile: "mid", Speedup: 2.0, SizeBytes: 500000},
		{Profile: "bloated", Speedup: 1.8, SizeBytes: 900000},
	}

	frontier := ParetoFrontier(points)

	var names []string
	for _, p := range frontier {
		names = append(names, p.Profile)
	}
	assert.Equal(t, []string{"size-opt", "baseline", "mid", "fast"}, names)
}

func TestParetoFrontierNeverContainsDominated(t *testing.T) {
	points := []ParetoPoint{
		{Profile: "p0", Speedup: 1.0, SizeBytes: 500000},
		{Profile: "p1", Speedup: 1.2, SizeBytes: 480000},
		{Profile: "p2", Speedup: 1.1, SizeBytes: 520000},
		{Profile: "p3", Speedup: 2.4, SizeBytes: 700000},
		{Profile: "p4", Speedup: 2.4, SizeBytes: 650000},
		{Profile: "p5", Speedup: 3.1, SizeBytes: 900000},
		{Profile: "p6", Speedup: 0.9, SizeBytes: 350000},
		{Profile: "p7", Speedup: 2.9, SizeBytes: 1000000},
	}

	frontier := ParetoFrontier(points)
	require.NotEmpty(t, frontier)

	for _, p := range frontier {
		for _, q := range points {
			dominates := q.Speedup >= p.Speedup && q.SizeBytes <= p.SizeBytes &&
				(q.Speedup > p.Speedup || q.SizeBytes < p.SizeBytes)
			assert.Falsef(t, dominates, "%s dominates frontier member %s", q.Profile, p.Profile)
		}
	}

	var names []string
	for _, p := range frontier {
		names = append(names, p.Profile)
	}
	assert.Equal(t, []string{"p6", "p1", "p4", "p5"}, names)
}

func TestParetoFrontierKeepsMaxSpeedup(t *testing.T) {
	points := []ParetoPoint{
		{Profile: "small", Speedup: 1.1, SizeBytes: 100000},
		{Profile: "perf-ultra", Speedup: 4.0, SizeBytes: 5000000},
		{Profile: "mid", Speedup: 2.0, SizeBytes: 400000},
	}

	frontier := ParetoFrontier(points)

	found := false
	for _, p := range frontier {
		if p.Profile == "perf-ultra" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParetoFrontierTieKeepsLowestName(t *testing.T) {
	points := []ParetoPoint{
		{Profile: "b-profile", Speedup: 2.0, SizeBytes: 400000},
		{Profile: "a-profile", Speedup: 2.0, SizeBytes: 400000},
	}

	frontier := ParetoFrontier(points)

	require.Len(t, frontier, 1)
	assert.Equal(t, "a-profile", frontier[0].Profile)
}

func TestParetoFrontierEmpty(t *testing.T) {
	assert.Empty(t, ParetoFrontier(nil))
}
