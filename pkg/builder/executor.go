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

package builder

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/perflab/optbench/pkg/matrix"
)

// diagnosticLimit caps how much compiler output is kept on a failed
// job.
const diagnosticLimit = 2000

// Executor runs builds one job at a time. A failed build is recorded
// on the job and never aborts the rest of the matrix.
type Executor struct {
	Toolchain Toolchain
	Timeout   time.Duration
	Progress  *Progress
}

func NewExecutor(toolchain Toolchain, timeout time.Duration, progress *Progress) *Executor {
	return &Executor{
		Toolchain: toolchain,
		Timeout:   timeout,
		Progress:  progress,
	}
}

// BuildJob builds one pending job. On success the artifact path, size
// and build duration are recorded and the job stays running for the
// measurement stage. On failure the job is terminally failed with the
// compiler diagnostic. The returned error reports lifecycle misuse
// only, never a build outcome.
func (e *Executor) BuildJob(ctx context.Context, job *matrix.Job) error {
	if err := job.MarkRunning(); err != nil {
		return err
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd, err := e.Toolchain.BuildCommand(ctx, job)
	if err != nil {
		return e.failBuild(job, fmt.Sprintf("prepare build: %v", err))
	}

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	log.Debugf("building %s", job.ID)

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	if runErr != nil {
		diagnostic := fmt.Sprintf("%v: %s", runErr, tailOf(output.String(), diagnosticLimit))
		return e.failBuild(job, diagnostic)
	}

	artifact := e.Toolchain.ArtifactPath(job)
	info, err := os.Stat(artifact)
	if err != nil {
		return e.failBuild(job, fmt.Sprintf("build succeeded but artifact missing at %s", artifact))
	}

	job.ArtifactPath = artifact
	job.ArtifactBytes = info.Size()
	job.BuildDuration = duration

	if e.Progress != nil {
		e.Progress.RecordSuccess(duration)
	}

	log.Debugf("built %s in %v (%d bytes)", job.ID, duration.Round(time.Millisecond), info.Size())

	return nil
}

func (e *Executor) failBuild(job *matrix.Job, diagnostic string) error {
	log.Warnf("build failed for %s: %s", job.ID, firstLine(diagnostic))

	if e.Progress != nil {
		e.Progress.RecordFailure()
	}

	return job.MarkFailed(matrix.FailureBuild, diagnostic)
}

func tailOf(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	return "..." + s[len(s)-limit:]
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}

	return s
}
