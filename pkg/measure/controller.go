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

package measure

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/perflab/optbench/pkg/matrix"
	"github.com/perflab/optbench/pkg/metric"
)

// Config bounds the adaptive loop. TargetIterations is the nominal
// per-job cost used for run estimates; the loop itself is governed by
// the minimum, the maximum and the CV threshold.
type Config struct {
	WarmupRuns       int
	TargetIterations int
	MinIterations    int
	MaxIterations    int
	CVThreshold      float64
	SampleRetries    int
	SampleTimeout    time.Duration
	PinCPU           bool
	PinCPUCore       int
}

// Outcome is the result of measuring one job: either the full ordered
// sample set with its stability verdict, or a failure with no samples
// at all. Partial sample sets are never handed downstream.
type Outcome struct {
	Measurements []metric.Measurement
	Stable       bool
	FinalCV      float64
	Failure      *matrix.Failure
}

// Controller owns the adaptive measurement loop for every job of a
// study run.
type Controller struct {
	cfg    Config
	runner *Runner
}

func NewController(cfg Config) *Controller {
	if cfg.PinCPU {
		if err := PinToCPU(cfg.PinCPUCore); err != nil {
			log.Warnf("cpu pinning unavailable, measuring unpinned: %v", err)
		} else {
			log.Infof("measurement runs pinned to cpu %d", cfg.PinCPUCore)
		}
	}

	return &Controller{
		cfg:    cfg,
		runner: &Runner{Timeout: cfg.SampleTimeout},
	}
}

// Measure runs the adaptive loop for one built job. Sampling starts
// after the configured warmup runs, stops as soon as the sample count
// has reached the minimum with CV below the threshold, and never
// exceeds the maximum. A job that exhausts the budget is still a valid
// measurement, only flagged unstable.
func (c *Controller) Measure(ctx context.Context, job *matrix.Job) Outcome {
	state := newMachine()

	if err := CheckExecutable(job.ArtifactPath); err != nil {
		return abortWith(state, matrix.FailureMeasurement, err.Error())
	}

	for i := 0; i < c.cfg.WarmupRuns; i++ {
		if _, failure := c.takeSample(ctx, job); failure != nil {
			return abortFrom(state, failure)
		}
	}

	_ = state.to(PhaseMeasuring)

	var samples []metric.Measurement
	finalCV := 0.0

	for iteration := 1; iteration <= c.cfg.MaxIterations; iteration++ {
		m, failure := c.takeSample(ctx, job)
		if failure != nil {
			return abortFrom(state, failure)
		}

		m.JobID = job.ID
		m.Iteration = iteration
		samples = append(samples, m)

		log.Tracef("sample %d for %s: %dus compute", iteration, job.ID, m.ComputeTimeUs)

		if iteration >= c.cfg.MinIterations {
			stats := metric.Aggregate(job.ID, job.Workload.Name, job.Profile.Name, samples)
			finalCV = stats.CV

			if stats.CV < c.cfg.CVThreshold {
				_ = state.to(PhaseStable)
				break
			}
		}
	}

	stable := state.phase == PhaseStable
	if !stable {
		_ = state.to(PhaseExhausted)
	}
	_ = state.to(PhaseDone)

	verdict := "stable"
	if !stable {
		verdict = "unstable"
	}
	log.Debugf("%s %s after %d samples (cv %.2f%%)", job.ID, verdict, len(samples), finalCV*100)

	return Outcome{Measurements: samples, Stable: stable, FinalCV: finalCV}
}

// takeSample executes the artifact once, retrying transient failures
// up to the configured budget. A wrong result is final on the first
// occurrence; it is a miscompilation signal, not noise.
func (c *Controller) takeSample(ctx context.Context, job *matrix.Job) (metric.Measurement, *matrix.Failure) {
	attempts := c.cfg.SampleRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return metric.Measurement{}, &matrix.Failure{
				Kind:       matrix.FailureMeasurement,
				Diagnostic: fmt.Sprintf("measurement cancelled: %v", err),
			}
		}

		m, err := c.runner.RunOnce(ctx, job.ArtifactPath)
		if err != nil {
			if ctx.Err() != nil {
				return metric.Measurement{}, &matrix.Failure{
					Kind:       matrix.FailureMeasurement,
					Diagnostic: fmt.Sprintf("measurement cancelled: %v", ctx.Err()),
				}
			}

			lastErr = err
			log.Tracef("sample attempt %d/%d for %s failed: %v", attempt, attempts, job.ID, err)
			continue
		}

		if m.Result != job.Workload.ExpectedResult {
			return metric.Measurement{}, &matrix.Failure{
				Kind: matrix.FailureCorrectness,
				Diagnostic: fmt.Sprintf("expected result %q, got %q",
					job.Workload.ExpectedResult, m.Result),
			}
		}

		return m, nil
	}

	return metric.Measurement{}, &matrix.Failure{
		Kind:       matrix.FailureMeasurement,
		Diagnostic: fmt.Sprintf("sample failed after %d attempts: %v", attempts, lastErr),
	}
}

func abortWith(state *machine, kind matrix.FailureKind, diagnostic string) Outcome {
	return abortFrom(state, &matrix.Failure{Kind: kind, Diagnostic: diagnostic})
}

func abortFrom(state *machine, failure *matrix.Failure) Outcome {
	_ = state.to(PhaseAborted)
	return Outcome{Failure: failure}
}
