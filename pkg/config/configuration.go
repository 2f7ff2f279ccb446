package config

import (
	"fmt"
	"time"
)

const (
	DefaultWarmupRuns           = 1
	DefaultTargetIterations     = 5
	DefaultMinIterations        = 3
	DefaultMaxIterations        = 10
	DefaultCVThreshold          = 0.10
	DefaultSampleRetries        = 2
	DefaultSampleTimeoutSeconds = 30
	DefaultBuildTimeoutSeconds  = 120
	DefaultBootstrapResamples   = 10000

	DefaultSelectionPolicy  = "balanced"
	DefaultMaxProfiles      = 15
	DefaultToolchain        = "cargo"
	DefaultProjectRoot      = "."
	DefaultOutputPathPrefix = "data/out/study"
)

// WithDefaults fills every unset field so that a minimal configuration
// file still yields a runnable study.
func (c StudyConfiguration) WithDefaults() StudyConfiguration {
	if c.WarmupRuns == 0 {
		c.WarmupRuns = DefaultWarmupRuns
	}
	if c.TargetIterations == 0 {
		c.TargetIterations = DefaultTargetIterations
	}
	if c.MinIterations == 0 {
		c.MinIterations = DefaultMinIterations
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.CVThreshold == 0 {
		c.CVThreshold = DefaultCVThreshold
	}
	if c.SampleRetries == 0 {
		c.SampleRetries = DefaultSampleRetries
	}
	if c.SampleTimeoutSeconds == 0 {
		c.SampleTimeoutSeconds = DefaultSampleTimeoutSeconds
	}
	if c.BuildTimeoutSeconds == 0 {
		c.BuildTimeoutSeconds = DefaultBuildTimeoutSeconds
	}
	if c.BootstrapResamples == 0 {
		c.BootstrapResamples = DefaultBootstrapResamples
	}
	if c.SelectionPolicy == "" {
		c.SelectionPolicy = DefaultSelectionPolicy
	}
	if c.MaxProfiles == 0 {
		c.MaxProfiles = DefaultMaxProfiles
	}
	if c.Toolchain == "" {
		c.Toolchain = DefaultToolchain
	}
	if c.ProjectRoot == "" {
		c.ProjectRoot = DefaultProjectRoot
	}
	if c.OutputPathPrefix == "" {
		c.OutputPathPrefix = DefaultOutputPathPrefix
	}

	return c
}

func (c StudyConfiguration) Validate() error {
	if c.MinIterations < 1 {
		return fmt.Errorf("MinIterations must be at least 1, got %d", c.MinIterations)
	}
	if c.MaxIterations < c.MinIterations {
		return fmt.Errorf("MaxIterations %d is below MinIterations %d", c.MaxIterations, c.MinIterations)
	}
	if c.TargetIterations < c.MinIterations || c.TargetIterations > c.MaxIterations {
		return fmt.Errorf("TargetIterations %d is outside [%d, %d]", c.TargetIterations, c.MinIterations, c.MaxIterations)
	}
	if c.CVThreshold <= 0 {
		return fmt.Errorf("CVThreshold must be positive, got %f", c.CVThreshold)
	}
	if c.SampleRetries < 0 {
		return fmt.Errorf("SampleRetries must not be negative, got %d", c.SampleRetries)
	}
	if c.BootstrapResamples < 1 {
		return fmt.Errorf("BootstrapResamples must be at least 1, got %d", c.BootstrapResamples)
	}

	switch c.SelectionPolicy {
	case "all", "baseline-extremes", "single-factor", "balanced":
	default:
		return fmt.Errorf("unknown SelectionPolicy %q", c.SelectionPolicy)
	}

	switch c.Toolchain {
	case "cargo":
	case "command":
		if len(c.BuildCommandTemplate) == 0 {
			return fmt.Errorf("command toolchain requires BuildCommandTemplate")
		}
		if c.ArtifactTemplate == "" {
			return fmt.Errorf("command toolchain requires ArtifactTemplate")
		}
	default:
		return fmt.Errorf("unknown Toolchain %q", c.Toolchain)
	}

	return nil
}

func (c StudyConfiguration) SampleTimeout() time.Duration {
	return time.Duration(c.SampleTimeoutSeconds) * time.Second
}

func (c StudyConfiguration) BuildTimeout() time.Duration {
	return time.Duration(c.BuildTimeoutSeconds) * time.Second
}
