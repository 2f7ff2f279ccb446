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

package metric

import (
	"time"

	"github.com/perflab/optbench/pkg/common"
)

// Measurement is one timed execution of one job's artifact, taken from
// the artifact's self-reported protocol output.
type Measurement struct {
	JobID         string `json:"JobID" csv:"job_id"`
	Iteration     int    `json:"Iteration" csv:"iteration"`
	StartupTimeUs int64  `json:"StartupTimeUs" csv:"startup_time_us"`
	ComputeTimeUs int64  `json:"ComputeTimeUs" csv:"compute_time_us"`
	TotalTimeUs   int64  `json:"TotalTimeUs" csv:"total_time_us"`
	Result        string `json:"Result" csv:"result"`
}

// JobStats summarizes one job's measurement set. HasData distinguishes
// an empty sample set from a measured one; every numeric field of a
// no-data summary is zero, never NaN.
type JobStats struct {
	JobID    string `json:"JobID" csv:"job_id"`
	Workload string `json:"Workload" csv:"workload"`
	Profile  string `json:"Profile" csv:"profile"`

	HasData bool `json:"HasData" csv:"has_data"`
	Samples int  `json:"Samples" csv:"samples"`

	MeanUs   float64 `json:"MeanUs" csv:"mean_us"`
	MedianUs float64 `json:"MedianUs" csv:"median_us"`
	StdDevUs float64 `json:"StdDevUs" csv:"stddev_us"`
	MinUs    float64 `json:"MinUs" csv:"min_us"`
	MaxUs    float64 `json:"MaxUs" csv:"max_us"`
	CV       float64 `json:"CV" csv:"cv"`

	MeanStartupUs float64 `json:"MeanStartupUs" csv:"mean_startup_us"`

	ArtifactBytes int64 `json:"ArtifactBytes" csv:"artifact_bytes"`
	BuildMs       int64 `json:"BuildMs" csv:"build_ms"`

	Unstable bool `json:"Unstable" csv:"unstable"`

	// Relative to the same workload's baseline job. Zero when the
	// baseline is unavailable.
	Speedup          float64 `json:"Speedup" csv:"speedup"`
	SizeReductionPct float64 `json:"SizeReductionPct" csv:"size_reduction_pct"`
}

// JobRecord is the persisted outcome of one job, raw measurements
// included so that later analysis can resample them.
type JobRecord struct {
	JobID    string `json:"JobID"`
	Workload string `json:"Workload"`
	Profile  string `json:"Profile"`
	Status   string `json:"Status"`

	FailureKind string `json:"FailureKind,omitempty"`
	Diagnostic  string `json:"Diagnostic,omitempty"`

	Unstable      bool  `json:"Unstable"`
	ArtifactBytes int64 `json:"ArtifactBytes"`
	BuildMs       int64 `json:"BuildMs"`

	Measurements []Measurement `json:"Measurements,omitempty"`
	Stats        JobStats      `json:"Stats"`
}

// ControllerConfig echoes the measurement bounds a study ran under, so
// a record stays interpretable without the configuration file that
// produced it.
type ControllerConfig struct {
	WarmupRuns       int     `json:"WarmupRuns"`
	TargetIterations int     `json:"TargetIterations"`
	MinIterations    int     `json:"MinIterations"`
	MaxIterations    int     `json:"MaxIterations"`
	CVThreshold      float64 `json:"CVThreshold"`
	SampleRetries    int     `json:"SampleRetries"`
	SampleTimeoutS   int     `json:"SampleTimeoutS"`
	PinCPU           bool    `json:"PinCPU"`
}

// StudyRecord is the complete persisted output of one run-study
// invocation. The analyze phase works from this file alone.
type StudyRecord struct {
	RunID       string             `json:"RunID"`
	Seed        int64              `json:"Seed"`
	StartedAt   time.Time          `json:"StartedAt"`
	FinishedAt  time.Time          `json:"FinishedAt"`
	Environment common.Environment `json:"Environment"`
	Controller  ControllerConfig   `json:"Controller"`

	Jobs []JobRecord `json:"Jobs"`
}
