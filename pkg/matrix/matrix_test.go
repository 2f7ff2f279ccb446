package matrix

import (
	"testing"

	"github.com/perflab/optbench/pkg/profile"
	"github.com/perflab/optbench/pkg/workload"
)

func TestGenerateFullCrossProduct(t *testing.T) {
	workloads := workload.Catalog()
	profiles := profile.Catalog()

	m := Generate(workloads, profiles)

	want := len(workloads) * len(profiles)
	if m.Count() != want {
		t.Fatalf("matrix has %d jobs, want %d", m.Count(), want)
	}

	ids := make(map[string]bool, m.Count())
	for _, j := range m.Jobs {
		if ids[j.ID] {
			t.Errorf("duplicate job ID %q", j.ID)
		}
		ids[j.ID] = true

		if j.Status != StatusPending {
			t.Errorf("job %s should start pending, got %v", j.ID, j.Status)
		}
	}
}

func TestGenerateIsWorkloadMajor(t *testing.T) {
	workloads := workload.Catalog()[:2]
	profiles := profile.Catalog()[:3]

	m := Generate(workloads, profiles)

	for i, j := range m.Jobs {
		wantWorkload := workloads[i/len(profiles)].Name
		wantProfile := profiles[i%len(profiles)].Name

		if j.Workload.Name != wantWorkload || j.Profile.Name != wantProfile {
			t.Errorf("job %d is %s, want %s-%s", i, j.ID, wantWorkload, wantProfile)
		}
	}
}

func TestGenerateDropsDuplicates(t *testing.T) {
	w := workload.Spec{Name: "prime-sieve", ExpectedResult: "78498"}
	p := profile.StandardRelease()

	m := Generate([]workload.Spec{w, w}, []profile.Profile{p, p})

	if m.Count() != 1 {
		t.Errorf("duplicate inputs should collapse to 1 job, got %d", m.Count())
	}
}

func TestMatrixAccessors(t *testing.T) {
	workloads := workload.Catalog()
	profiles := profile.Catalog()
	m := Generate(workloads, profiles)

	byWorkload := m.JobsForWorkload("prime-sieve")
	if len(byWorkload) != len(profiles) {
		t.Errorf("prime-sieve has %d jobs, want %d", len(byWorkload), len(profiles))
	}

	byProfile := m.JobsForProfile("baseline")
	if len(byProfile) != len(workloads) {
		t.Errorf("baseline has %d jobs, want %d", len(byProfile), len(workloads))
	}

	if got := len(m.WorkloadNames()); got != len(workloads) {
		t.Errorf("matrix lists %d workloads, want %d", got, len(workloads))
	}
	if got := len(m.ProfileNames()); got != len(profiles) {
		t.Errorf("matrix lists %d profiles, want %d", got, len(profiles))
	}
}
