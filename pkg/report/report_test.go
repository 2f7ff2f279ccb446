package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perflab/optbench/pkg/analysis"
	"github.com/perflab/optbench/pkg/common"
	"github.com/perflab/optbench/pkg/metric"
)

func measuredJob(workload, profileName string, meanUs float64, size int64, unstable bool) metric.JobRecord {
	id := workload + "-" + profileName
	var samples []metric.Measurement
	for i := 1; i <= 3; i++ {
		samples = append(samples, metric.Measurement{
			JobID:         id,
			Iteration:     i,
			ComputeTimeUs: int64(meanUs),
			TotalTimeUs:   int64(meanUs),
		})
	}

	return metric.JobRecord{
		JobID:         id,
		Workload:      workload,
		Profile:       profileName,
		Status:        "success",
		Unstable:      unstable,
		ArtifactBytes: size,
		Measurements:  samples,
		Stats: metric.JobStats{
			JobID:    id,
			Workload: workload,
			Profile:  profileName,
			HasData:  true,
			Samples:  len(samples),
			MeanUs:   meanUs,
			Unstable: unstable,
		},
	}
}

func reportFixture(t *testing.T) (metric.StudyRecord, *analysis.StudyAnalysis) {
	t.Helper()

	record := metric.StudyRecord{
		RunID:     "run-report",
		StartedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Environment: common.Environment{
			OS:       "linux",
			Arch:     "amd64",
			CPUModel: "Imaginary Core 9",
			NumCPU:   8,
			Hostname: "bench-01",
		},
		Jobs: []metric.JobRecord{
			measuredJob("fibonacci", "baseline", 1000, 500000, false),
			measuredJob("fibonacci", "lto-fat", 300, 600000, false),
			measuredJob("fibonacci", "opt-z", 900, 200000, false),
			measuredJob("fibonacci", "cpu-native", 250, 610000, true),
			measuredJob("prime-sieve", "baseline", 2000, 400000, false),
			measuredJob("prime-sieve", "lto-fat", 800, 450000, false),
			measuredJob("prime-sieve", "opt-z", 1900, 180000, false),
			{
				JobID:       "prime-sieve-pgo-opt3",
				Workload:    "prime-sieve",
				Profile:     "pgo-opt3",
				Status:      "failed",
				FailureKind: "build-failure",
			},
		},
	}

	result, err := analysis.AnalyzeStudy(record, analysis.Options{Seed: 42, Resamples: 500})
	require.NoError(t, err)

	return record, result
}

func TestWriteStudySections(t *testing.T) {
	record, result := reportFixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteStudy(&buf, record, result))
	out := buf.String()

	assert.Contains(t, out, "OPTIMIZATION STUDY REPORT")
	assert.Contains(t, out, "Run:         run-report")
	assert.Contains(t, out, "Started:     2026-03-14 09:30:00")
	assert.Contains(t, out, "bench-01 (linux/amd64, 8 CPUs)")
	assert.Contains(t, out, "Jobs:        8 total, 7 measured, 6 stable")

	assert.Contains(t, out, "PROFILE EFFECTIVENESS RANKING")
	assert.Contains(t, out, "  1. lto-fat")
	assert.Contains(t, out, "BEST SPEEDUP BY WORKLOAD")
	assert.Contains(t, out, "PER-WORKLOAD RESULTS")
	assert.Contains(t, out, "(unstable)")

	assert.Contains(t, out, "ANOVA: not computable for this record")
	assert.Contains(t, out, "lto-fat vs opt-z")
	assert.Contains(t, out, "PARETO FRONTIER")

	assert.Contains(t, out, "Best overall profile:  lto-fat (2.92x mean speedup")
	assert.Contains(t, out, "Maximum speedup:       3.33x (fibonacci with lto-fat)")
	assert.Contains(t, out, "Smallest artifact:     opt-z")
	assert.Contains(t, out, "57.8% smaller than baseline")
	assert.Contains(t, out, "Speed/size correlation: r=")

	assert.Contains(t, out, "Stable jobs:        6")
	assert.Contains(t, out, "fibonacci-cpu-native")
	assert.Contains(t, out, "1 build-failure")
	assert.Contains(t, out, "Total measurements: 21")
}

func TestWriteStudyOrdersRankingBySpeedup(t *testing.T) {
	record, result := reportFixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteStudy(&buf, record, result))
	out := buf.String()

	first := strings.Index(out, "  1. lto-fat")
	second := strings.Index(out, "  2. opt-z")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

type brokenWriter struct{ err error }

func (b brokenWriter) Write([]byte) (int, error) { return 0, b.err }

func TestWriteStudyPropagatesWriteError(t *testing.T) {
	record, result := reportFixture(t)

	sentinel := errors.New("disk full")
	err := WriteStudy(brokenWriter{err: sentinel}, record, result)
	assert.ErrorIs(t, err, sentinel)
}

func TestExportAnalysis(t *testing.T) {
	_, result := reportFixture(t)

	dir := filepath.Join(t.TempDir(), "csv")
	require.NoError(t, ExportAnalysis(dir, result))

	rankings := readFile(t, filepath.Join(dir, "profile_rankings.csv"))
	assert.True(t, strings.HasPrefix(rankings, "profile,mean_speedup,stddev,workloads,ci_lower,ci_upper"))
	assert.Contains(t, rankings, "lto-fat")
	assert.Contains(t, rankings, "opt-z")

	comparison := readFile(t, filepath.Join(dir, "workload_comparison.csv"))
	assert.True(t, strings.HasPrefix(comparison, "workload,max_speedup,best_profile"))
	assert.Contains(t, comparison, "fibonacci")
	assert.Contains(t, comparison, "prime-sieve")

	pareto := readFile(t, filepath.Join(dir, "pareto_frontier.csv"))
	assert.True(t, strings.HasPrefix(pareto, "profile,speedup,size_kb,on_frontier"))
	assert.Contains(t, pareto, "baseline")

	// The baseline is dominated in this fixture, opt-z is not.
	for _, row := range strings.Split(strings.TrimSpace(pareto), "\n")[1:] {
		switch {
		case strings.HasPrefix(row, "baseline,"):
			assert.True(t, strings.HasSuffix(row, "false"))
		case strings.HasPrefix(row, "opt-z,"):
			assert.True(t, strings.HasSuffix(row, "true"))
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
