package driver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/perflab/optbench/pkg/matrix"
	"github.com/perflab/optbench/pkg/profile"
)

// MatrixSummary is the generate phase's output: every job the study
// would run, with the build parameters each profile resolves to.
type MatrixSummary struct {
	Workloads int          `json:"Workloads"`
	Profiles  int          `json:"Profiles"`
	Jobs      []JobSummary `json:"Jobs"`
}

type JobSummary struct {
	JobID      string              `json:"JobID"`
	Workload   string              `json:"Workload"`
	Category   string              `json:"Category"`
	Profile    string              `json:"Profile"`
	Parameters []profile.Parameter `json:"Parameters"`
}

func SummarizeMatrix(m *matrix.Matrix) MatrixSummary {
	summary := MatrixSummary{
		Workloads: len(m.WorkloadNames()),
		Profiles:  len(m.ProfileNames()),
		Jobs:      make([]JobSummary, 0, m.Count()),
	}

	for _, job := range m.Jobs {
		summary.Jobs = append(summary.Jobs, JobSummary{
			JobID:      job.ID,
			Workload:   job.Workload.Name,
			Category:   job.Workload.Category.String(),
			Profile:    job.Profile.Name,
			Parameters: job.Profile.Parameters(),
		})
	}

	return summary
}

// WriteMatrixFile persists the matrix summary as JSON, creating parent
// directories as needed.
func WriteMatrixFile(path string, m *matrix.Matrix) error {
	summary := SummarizeMatrix(m)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create matrix output dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal matrix summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write matrix summary: %w", err)
	}

	log.Infof("Wrote %d jobs (%d workloads x %d profiles) to %s",
		len(summary.Jobs), summary.Workloads, summary.Profiles, path)

	return nil
}
