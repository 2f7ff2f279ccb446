package matrix

import (
	"fmt"
	"time"

	"github.com/perflab/optbench/pkg/profile"
	"github.com/perflab/optbench/pkg/workload"
)

// JobStatus tracks one job through the pipeline. Transitions are
// monotonic: Pending -> Running -> {Success, Failed}, and the terminal
// states are immutable.
type JobStatus int

const (
	StatusPending JobStatus = iota
	StatusRunning
	StatusSuccess
	StatusFailed
)

func (s JobStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "invalid"
	}
}

func (s JobStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// FailureKind separates the three failure classes the pipeline must
// never conflate: a build that did not produce an artifact, an artifact
// that computed the wrong answer, and an artifact that could not be
// measured. Statistical instability is not a failure; it is a flag on a
// successful job.
type FailureKind int

const (
	FailureBuild FailureKind = iota
	FailureCorrectness
	FailureMeasurement
)

func (k FailureKind) String() string {
	switch k {
	case FailureBuild:
		return "build-failure"
	case FailureCorrectness:
		return "correctness-failure"
	case FailureMeasurement:
		return "measurement-failure"
	default:
		return "invalid"
	}
}

type Failure struct {
	Kind       FailureKind `json:"Kind"`
	Diagnostic string      `json:"Diagnostic"`
}

// Job pairs one workload with one optimization profile. Its key is the
// ID, unique across a matrix. A job is written by exactly one stage at
// a time: the build executor first, then the measurement controller.
type Job struct {
	ID       string
	Workload workload.Spec
	Profile  profile.Profile

	Status JobStatus

	// Build outcome, recorded while the job is still running.
	ArtifactPath  string
	ArtifactBytes int64
	BuildDuration time.Duration

	// Unstable marks a successful job whose timing never settled
	// below the CV threshold within the iteration budget.
	Unstable bool

	Failure *Failure
}

func NewJob(w workload.Spec, p profile.Profile) *Job {
	return &Job{
		ID:       w.Name + "-" + p.Name,
		Workload: w,
		Profile:  p,
		Status:   StatusPending,
	}
}

func isAllowedTransition(from, to JobStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusRunning
	case StatusRunning:
		return to == StatusSuccess || to == StatusFailed
	default:
		return false
	}
}

func (j *Job) transition(to JobStatus) error {
	if !isAllowedTransition(j.Status, to) {
		return fmt.Errorf("job %s: illegal transition %s -> %s", j.ID, j.Status, to)
	}

	j.Status = to
	return nil
}

func (j *Job) MarkRunning() error {
	return j.transition(StatusRunning)
}

func (j *Job) MarkSuccess() error {
	return j.transition(StatusSuccess)
}

func (j *Job) MarkFailed(kind FailureKind, diagnostic string) error {
	if err := j.transition(StatusFailed); err != nil {
		return err
	}

	j.Failure = &Failure{Kind: kind, Diagnostic: diagnostic}
	return nil
}

// BuildSucceeded reports whether the build executor produced an
// artifact for this job.
func (j *Job) BuildSucceeded() bool {
	return j.ArtifactPath != "" && (j.Failure == nil || j.Failure.Kind != FailureBuild)
}
