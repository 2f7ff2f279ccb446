package metric

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reportedJob(jobID, workload, profileName string) JobRecord {
	samples := samplesFor(jobID, 950, 1000, 1050)
	stats := Aggregate(jobID, workload, profileName, samples)

	return JobRecord{
		JobID:        jobID,
		Workload:     workload,
		Profile:      profileName,
		Status:       "success",
		Measurements: samples,
		Stats:        stats,
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	controller := ControllerConfig{
		MinIterations: 3,
		MaxIterations: 10,
		CVThreshold:   0.1,
	}

	repo := NewRepository(42, controller)
	repo.ReportJob(reportedJob("prime-sieve-baseline", "prime-sieve", "baseline"))
	repo.ReportJob(reportedJob("prime-sieve-max-opt", "prime-sieve", "max-opt"))

	path := filepath.Join(t.TempDir(), "out", "study.json")
	assert.NoError(t, repo.FinishAndSave(path))

	loaded, err := LoadStudyRecord(path)
	assert.NoError(t, err)

	assert.Equal(t, repo.RunID(), loaded.RunID)
	assert.Len(t, loaded.RunID, 36)
	assert.Equal(t, int64(42), loaded.Seed)
	assert.Equal(t, controller, loaded.Controller)
	assert.Len(t, loaded.Jobs, 2)
	assert.Len(t, loaded.Jobs[0].Measurements, 3)
	assert.Equal(t, int64(1000), loaded.Jobs[0].Measurements[1].ComputeTimeUs)
	assert.False(t, loaded.FinishedAt.IsZero())
	assert.NotEmpty(t, loaded.Environment.OS)
}

func TestFinishAndSaveAppendsHistory(t *testing.T) {
	dir := t.TempDir()

	first := NewRepository(1, ControllerConfig{})
	first.ReportJob(reportedJob("prime-sieve-baseline", "prime-sieve", "baseline"))
	assert.NoError(t, first.FinishAndSave(filepath.Join(dir, "first.json")))

	second := NewRepository(2, ControllerConfig{})
	second.ReportJob(reportedJob("prime-sieve-baseline", "prime-sieve", "baseline"))
	second.ReportJob(reportedJob("prime-sieve-max-opt", "prime-sieve", "max-opt"))
	assert.NoError(t, second.FinishAndSave(filepath.Join(dir, "second.json")))

	raw, err := os.ReadFile(filepath.Join(dir, "history.jsonl"))
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], first.RunID())
	assert.Contains(t, lines[0], `"Jobs":1`)
	assert.Contains(t, lines[1], second.RunID())
	assert.Contains(t, lines[1], `"Jobs":2`)
	assert.Contains(t, lines[1], `"Succeeded":2`)
	assert.Contains(t, lines[1], "second.json")
}

func TestLoadStudyRecordErrors(t *testing.T) {
	_, err := LoadStudyRecord(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	assert.NoError(t, os.WriteFile(bad, []byte("not json"), 0644))

	_, err = LoadStudyRecord(bad)
	assert.Error(t, err)
}

func TestRepositoryLookups(t *testing.T) {
	repo := NewRepository(1, ControllerConfig{})
	repo.ReportJob(reportedJob("prime-sieve-baseline", "prime-sieve", "baseline"))
	repo.ReportJob(reportedJob("prime-sieve-max-opt", "prime-sieve", "max-opt"))
	repo.ReportJob(reportedJob("fibonacci-baseline", "fibonacci", "baseline"))

	job, ok := repo.JobByID("prime-sieve-max-opt")
	assert.True(t, ok)
	assert.Equal(t, "max-opt", job.Profile)

	_, ok = repo.JobByID("nope")
	assert.False(t, ok)

	assert.Len(t, repo.JobsForWorkload("prime-sieve"), 2)
	assert.Len(t, repo.JobsForWorkload("fibonacci"), 1)
}

func TestExportStudyWritesCSVs(t *testing.T) {
	repo := NewRepository(7, ControllerConfig{})
	repo.ReportJob(reportedJob("prime-sieve-baseline", "prime-sieve", "baseline"))

	prefix := filepath.Join(t.TempDir(), "out", "study")
	assert.NoError(t, ExportStudy(prefix, repo.Record()))

	stats, err := os.ReadFile(prefix + "_job_stats.csv")
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(stats), "job_id"))
	assert.True(t, strings.Contains(string(stats), "prime-sieve-baseline"))

	measurements, err := os.ReadFile(prefix + "_measurements.csv")
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(measurements), "compute_time_us"))
}
