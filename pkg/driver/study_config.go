package driver

import (
	"fmt"

	"github.com/perflab/optbench/pkg/builder"
	"github.com/perflab/optbench/pkg/config"
	"github.com/perflab/optbench/pkg/matrix"
	"github.com/perflab/optbench/pkg/measure"
	"github.com/perflab/optbench/pkg/metric"
	"github.com/perflab/optbench/pkg/profile"
	"github.com/perflab/optbench/pkg/workload"
)

// ConfigFromStudy maps the study configuration onto the measurement
// controller's knobs.
func ConfigFromStudy(c config.StudyConfiguration) measure.Config {
	return measure.Config{
		WarmupRuns:       c.WarmupRuns,
		TargetIterations: c.TargetIterations,
		MinIterations:    c.MinIterations,
		MaxIterations:    c.MaxIterations,
		CVThreshold:      c.CVThreshold,
		SampleRetries:    c.SampleRetries,
		SampleTimeout:    c.SampleTimeout(),
		PinCPU:           c.PinCPU,
		PinCPUCore:       c.PinCPUCore,
	}
}

// ControllerEcho is the subset of the configuration persisted with the
// study record.
func ControllerEcho(c config.StudyConfiguration) metric.ControllerConfig {
	return metric.ControllerConfig{
		WarmupRuns:       c.WarmupRuns,
		TargetIterations: c.TargetIterations,
		MinIterations:    c.MinIterations,
		MaxIterations:    c.MaxIterations,
		CVThreshold:      c.CVThreshold,
		SampleRetries:    c.SampleRetries,
		SampleTimeoutS:   c.SampleTimeoutSeconds,
		PinCPU:           c.PinCPU,
	}
}

// ToolchainFor resolves the configured build toolchain.
func ToolchainFor(c config.StudyConfiguration) (builder.Toolchain, error) {
	switch c.Toolchain {
	case "cargo":
		return builder.NewCargoToolchain(c.ProjectRoot), nil
	case "command":
		return &builder.CommandToolchain{
			Template: c.BuildCommandTemplate,
			Artifact: c.ArtifactTemplate,
			Workdir:  c.ProjectRoot,
		}, nil
	default:
		return nil, fmt.Errorf("unknown toolchain %q", c.Toolchain)
	}
}

// SelectWorkloads resolves the workload filter against the catalog. An
// empty filter keeps the whole catalog; an unknown name is a
// configuration error, not a silent skip.
func SelectWorkloads(c config.StudyConfiguration) ([]workload.Spec, error) {
	catalog := workload.Catalog()
	if len(c.WorkloadFilter) == 0 {
		return catalog, nil
	}

	out := make([]workload.Spec, 0, len(c.WorkloadFilter))
	for _, name := range c.WorkloadFilter {
		w, ok := workload.ByName(catalog, name)
		if !ok {
			return nil, fmt.Errorf("unknown workload %q in WorkloadFilter", name)
		}
		out = append(out, w)
	}

	return out, nil
}

// SelectProfiles resolves the profile set for the study. An explicit
// ProfileFilter names the exact set and bypasses the selection policy;
// otherwise the configured policy narrows the catalog.
func SelectProfiles(c config.StudyConfiguration) ([]profile.Profile, error) {
	catalog := profile.Catalog()

	if len(c.ProfileFilter) > 0 {
		byName := make(map[string]profile.Profile, len(catalog))
		for _, p := range catalog {
			byName[p.Name] = p
		}

		out := make([]profile.Profile, 0, len(c.ProfileFilter))
		for _, name := range c.ProfileFilter {
			p, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("unknown profile %q in ProfileFilter", name)
			}
			out = append(out, p)
		}

		return out, nil
	}

	policy, err := matrix.PolicyByName(c.SelectionPolicy, c.MaxProfiles)
	if err != nil {
		return nil, err
	}

	return policy(catalog), nil
}
