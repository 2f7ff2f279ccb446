// Package matrix generates the benchmark matrix (the cross product of
// workloads and optimization profiles) and owns the job lifecycle.
package matrix

import (
	"github.com/perflab/optbench/pkg/profile"
	"github.com/perflab/optbench/pkg/workload"
)

// Matrix holds the full set of jobs for one study, in deterministic
// workload-major order.
type Matrix struct {
	Jobs []*Job
}

// Generate builds the cross product of the given workloads and
// profiles. Inputs are treated as sets: a duplicate workload or
// profile name repeats a job ID, so later duplicates are dropped and
// the matrix always contains exactly |workloads| x |profiles| jobs
// with unique IDs.
func Generate(workloads []workload.Spec, profiles []profile.Profile) *Matrix {
	workloads = dedupeWorkloads(workloads)
	profiles = dedupeProfiles(profiles)

	jobs := make([]*Job, 0, len(workloads)*len(profiles))
	for _, w := range workloads {
		for _, p := range profiles {
			jobs = append(jobs, NewJob(w, p))
		}
	}

	return &Matrix{Jobs: jobs}
}

func dedupeWorkloads(workloads []workload.Spec) []workload.Spec {
	seen := make(map[string]bool, len(workloads))
	out := make([]workload.Spec, 0, len(workloads))

	for _, w := range workloads {
		if seen[w.Name] {
			continue
		}

		seen[w.Name] = true
		out = append(out, w)
	}

	return out
}

func dedupeProfiles(profiles []profile.Profile) []profile.Profile {
	seen := make(map[string]bool, len(profiles))
	out := make([]profile.Profile, 0, len(profiles))

	for _, p := range profiles {
		if seen[p.Name] {
			continue
		}

		seen[p.Name] = true
		out = append(out, p)
	}

	return out
}

func (m *Matrix) Count() int {
	return len(m.Jobs)
}

func (m *Matrix) JobsForWorkload(name string) []*Job {
	var jobs []*Job
	for _, j := range m.Jobs {
		if j.Workload.Name == name {
			jobs = append(jobs, j)
		}
	}

	return jobs
}

func (m *Matrix) JobsForProfile(name string) []*Job {
	var jobs []*Job
	for _, j := range m.Jobs {
		if j.Profile.Name == name {
			jobs = append(jobs, j)
		}
	}

	return jobs
}

// WorkloadNames returns the distinct workload names in matrix order.
func (m *Matrix) WorkloadNames() []string {
	seen := make(map[string]bool)
	var names []string

	for _, j := range m.Jobs {
		if !seen[j.Workload.Name] {
			seen[j.Workload.Name] = true
			names = append(names, j.Workload.Name)
		}
	}

	return names
}

// ProfileNames returns the distinct profile names in matrix order.
func (m *Matrix) ProfileNames() []string {
	seen := make(map[string]bool)
	var names []string

	for _, j := range m.Jobs {
		if !seen[j.Profile.Name] {
			seen[j.Profile.Name] = true
			names = append(names, j.Profile.Name)
		}
	}

	return names
}
