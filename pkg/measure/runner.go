package measure

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/perflab/optbench/pkg/metric"
)

// Runner executes a built artifact once per call and parses its
// protocol output. Runs are strictly one at a time; overlapping timed
// subprocesses would contend for the CPU and pollute the samples.
type Runner struct {
	Timeout time.Duration
}

// CheckExecutable verifies the artifact exists and may be executed
// before the measurement loop starts burning iterations on it.
func CheckExecutable(path string) error {
	if err := unix.Access(path, unix.X_OK); err != nil {
		return fmt.Errorf("artifact %s is not executable: %w", path, err)
	}

	return nil
}

// PinToCPU restricts this process, and every subprocess it spawns, to
// a single CPU. Inheriting the affinity keeps timed runs from
// migrating between cores mid-sample.
func PinToCPU(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("pin to cpu %d: %w", cpu, err)
	}

	return nil
}

// RunOnce executes the artifact with no arguments and parses the
// three-line protocol from its stdout.
func (r *Runner) RunOnce(ctx context.Context, artifactPath string) (metric.Measurement, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, artifactPath)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return metric.Measurement{}, fmt.Errorf("run %s: %w (stderr: %s)",
			artifactPath, err, strings.TrimSpace(stderr.String()))
	}

	return ParseOutput(stdout.String())
}
