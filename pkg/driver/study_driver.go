/*
 * MIT License
 *
 * Copyright (c) 2025 The optbench authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package driver runs a study end to end: it generates the job matrix,
// builds every artifact, measures it, and persists the study record.
package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/perflab/optbench/pkg/builder"
	"github.com/perflab/optbench/pkg/config"
	"github.com/perflab/optbench/pkg/matrix"
	"github.com/perflab/optbench/pkg/measure"
	"github.com/perflab/optbench/pkg/metric"
	"github.com/perflab/optbench/pkg/profile"
	"github.com/perflab/optbench/pkg/workload"
)

// StudyDriver owns one study run. The pipeline is strictly sequential:
// one job at a time, build fully awaited before measurement starts, no
// job shared between stages.
type StudyDriver struct {
	Config    config.StudyConfiguration
	Workloads []workload.Spec
	Profiles  []profile.Profile
	Toolchain builder.Toolchain

	repository *metric.Repository
}

// NewStudyDriver validates the configuration and resolves the workload
// set, the profile selection and the toolchain.
func NewStudyDriver(cfg config.StudyConfiguration) (*StudyDriver, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid study configuration: %w", err)
	}

	workloads, err := SelectWorkloads(cfg)
	if err != nil {
		return nil, err
	}

	profiles, err := SelectProfiles(cfg)
	if err != nil {
		return nil, err
	}

	toolchain, err := ToolchainFor(cfg)
	if err != nil {
		return nil, err
	}

	return &StudyDriver{
		Config:     cfg,
		Workloads:  workloads,
		Profiles:   profiles,
		Toolchain:  toolchain,
		repository: metric.NewRepository(cfg.Seed, ControllerEcho(cfg)),
	}, nil
}

func (d *StudyDriver) RunID() string {
	return d.repository.RunID()
}

// GenerateMatrix builds the job matrix for this study's workload and
// profile selection.
func (d *StudyDriver) GenerateMatrix() *matrix.Matrix {
	return matrix.Generate(d.Workloads, d.Profiles)
}

// RunStudy executes the whole pipeline and writes the study record to
// resultsPath, with the CSV views next to it. Cancellation stops the
// run between pipeline steps; the in-flight job's partial results are
// discarded while every completed job is kept and persisted.
func (d *StudyDriver) RunStudy(ctx context.Context, resultsPath string) (metric.StudyRecord, error) {
	cfg := d.Config
	m := d.GenerateMatrix()
	total := m.Count()

	estimated := total * (cfg.WarmupRuns + cfg.TargetIterations)
	log.Infof("Starting study %s: %d workloads x %d profiles = %d jobs", d.RunID(), len(d.Workloads), len(d.Profiles), total)
	log.Infof("Estimating %d subprocess executions (%d warmup + %d target samples per job)",
		estimated, cfg.WarmupRuns, cfg.TargetIterations)

	progress := builder.NewProgress(total)
	executor := builder.NewExecutor(d.Toolchain, cfg.BuildTimeout(), progress)
	controller := measure.NewController(ConfigFromStudy(cfg))

	var records []metric.JobRecord
	interrupted := false

	start := time.Now()
	for i, job := range m.Jobs {
		if ctx.Err() != nil {
			interrupted = true
			break
		}

		log.Infof("Job %d/%d: %s", i+1, total, job.ID)

		if err := executor.BuildJob(ctx, job); err != nil {
			return d.finish(records, resultsPath, err)
		}

		if !job.BuildSucceeded() {
			records = append(records, recordOf(job, nil, emptyStats(job)))
			continue
		}

		if ctx.Err() != nil {
			interrupted = true
			break
		}

		outcome := controller.Measure(ctx, job)
		if ctx.Err() != nil {
			interrupted = true
			break
		}

		if outcome.Failure != nil {
			if err := job.MarkFailed(outcome.Failure.Kind, outcome.Failure.Diagnostic); err != nil {
				return d.finish(records, resultsPath, err)
			}
			records = append(records, recordOf(job, nil, emptyStats(job)))
			continue
		}

		job.Unstable = !outcome.Stable
		if err := job.MarkSuccess(); err != nil {
			return d.finish(records, resultsPath, err)
		}

		stats := metric.Aggregate(job.ID, job.Workload.Name, job.Profile.Name, outcome.Measurements)
		stats.ArtifactBytes = job.ArtifactBytes
		stats.BuildMs = job.BuildDuration.Milliseconds()
		stats.Unstable = job.Unstable

		records = append(records, recordOf(job, outcome.Measurements, stats))

		log.Infof("Job %d/%d: %s %s, %d samples, mean %.1f ms",
			i+1, total, job.ID, job.Status, stats.Samples, stats.MeanUs/1000)
	}

	fillSpeedups(records)

	record, err := d.finish(records, resultsPath, nil)
	if err != nil {
		return record, err
	}

	if interrupted {
		log.Warnf("Study %s interrupted after %d of %d jobs, partial results in %s", d.RunID(), len(records), total, resultsPath)
		return record, fmt.Errorf("study interrupted after %d of %d jobs: %w", len(records), total, ctx.Err())
	}

	succeeded, failed, unstable := tally(records)
	log.Infof("Study %s finished in %v: %d jobs recorded, %d succeeded, %d failed, %d unstable",
		d.RunID(), time.Since(start).Round(time.Second), len(records), succeeded, failed, unstable)
	log.Infof("Results written to %s", resultsPath)

	return record, nil
}

// finish reports every completed job, stamps the run and persists the
// record and its CSV views.
func (d *StudyDriver) finish(records []metric.JobRecord, resultsPath string, cause error) (metric.StudyRecord, error) {
	for _, rec := range records {
		d.repository.ReportJob(rec)
	}

	if err := d.repository.FinishAndSave(resultsPath); err != nil {
		if cause != nil {
			return d.repository.Record(), cause
		}
		return d.repository.Record(), err
	}

	record := d.repository.Record()
	if err := metric.ExportStudy(csvPrefix(resultsPath), record); err != nil {
		if cause != nil {
			return record, cause
		}
		return record, err
	}

	return record, cause
}

func csvPrefix(resultsPath string) string {
	return strings.TrimSuffix(resultsPath, filepath.Ext(resultsPath))
}

func emptyStats(job *matrix.Job) metric.JobStats {
	return metric.Aggregate(job.ID, job.Workload.Name, job.Profile.Name, nil)
}

func recordOf(job *matrix.Job, measurements []metric.Measurement, stats metric.JobStats) metric.JobRecord {
	rec := metric.JobRecord{
		JobID:         job.ID,
		Workload:      job.Workload.Name,
		Profile:       job.Profile.Name,
		Status:        job.Status.String(),
		Unstable:      job.Unstable,
		ArtifactBytes: job.ArtifactBytes,
		BuildMs:       job.BuildDuration.Milliseconds(),
		Measurements:  measurements,
		Stats:         stats,
	}

	if job.Failure != nil {
		rec.FailureKind = job.Failure.Kind.String()
		rec.Diagnostic = job.Failure.Diagnostic
	}

	return rec
}

// fillSpeedups back-fills the comparative fields once all jobs of the
// run are known, each workload against its own baseline job.
func fillSpeedups(records []metric.JobRecord) {
	baselineName := profile.Baseline().Name

	baselines := make(map[string]metric.JobStats)
	for _, rec := range records {
		if rec.Profile == baselineName && rec.Stats.HasData {
			baselines[rec.Workload] = rec.Stats
		}
	}

	for i := range records {
		if records[i].Profile == baselineName {
			continue
		}
		if base, ok := baselines[records[i].Workload]; ok {
			records[i].Stats = records[i].Stats.WithBaseline(base)
		}
	}
}

func tally(records []metric.JobRecord) (succeeded, failed, unstable int) {
	for _, rec := range records {
		switch rec.Status {
		case matrix.StatusSuccess.String():
			succeeded++
			if rec.Unstable {
				unstable++
			}
		case matrix.StatusFailed.String():
			failed++
		}
	}

	return succeeded, failed, unstable
}
