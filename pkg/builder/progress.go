package builder

import (
	"fmt"
	"time"
)

// Progress tracks how far through the build matrix a study is. The
// pipeline is strictly sequential, so a single owner updates it and no
// locking is needed.
type Progress struct {
	total     int
	succeeded int
	failed    int

	totalBuildTime time.Duration
}

func NewProgress(total int) *Progress {
	return &Progress{total: total}
}

func (p *Progress) RecordSuccess(buildTime time.Duration) {
	p.succeeded++
	p.totalBuildTime += buildTime
}

func (p *Progress) RecordFailure() {
	p.failed++
}

func (p *Progress) Total() int     { return p.total }
func (p *Progress) Succeeded() int { return p.succeeded }
func (p *Progress) Failed() int    { return p.failed }

func (p *Progress) Completed() int {
	return p.succeeded + p.failed
}

func (p *Progress) CompletionPercentage() float64 {
	if p.total == 0 {
		return 100.0
	}

	return float64(p.Completed()) / float64(p.total) * 100.0
}

// AverageBuildTime reports the mean duration of successful builds. The
// second return is false until at least one build has succeeded.
func (p *Progress) AverageBuildTime() (time.Duration, bool) {
	if p.succeeded == 0 {
		return 0, false
	}

	return p.totalBuildTime / time.Duration(p.succeeded), true
}

func (p *Progress) String() string {
	return fmt.Sprintf("%d/%d (%.1f%%), %d ok, %d failed",
		p.Completed(), p.total, p.CompletionPercentage(), p.succeeded, p.failed)
}
