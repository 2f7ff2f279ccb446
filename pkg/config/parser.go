package config

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"
)

type StudyConfiguration struct {
	Seed int64 `json:"Seed"`

	WorkloadFilter []string `json:"WorkloadFilter"`
	ProfileFilter  []string `json:"ProfileFilter"`

	SelectionPolicy string `json:"SelectionPolicy"`
	MaxProfiles     int    `json:"MaxProfiles"`

	ProjectRoot      string `json:"ProjectRoot"`
	OutputPathPrefix string `json:"OutputPathPrefix"`

	Toolchain            string   `json:"Toolchain"`
	BuildCommandTemplate []string `json:"BuildCommandTemplate"`
	ArtifactTemplate     string   `json:"ArtifactTemplate"`

	WarmupRuns           int     `json:"WarmupRuns"`
	TargetIterations     int     `json:"TargetIterations"`
	MinIterations        int     `json:"MinIterations"`
	MaxIterations        int     `json:"MaxIterations"`
	CVThreshold          float64 `json:"CVThreshold"`
	SampleRetries        int     `json:"SampleRetries"`
	SampleTimeoutSeconds int     `json:"SampleTimeoutSeconds"`
	BuildTimeoutSeconds  int     `json:"BuildTimeoutSeconds"`

	PinCPU     bool `json:"PinCPU"`
	PinCPUCore int  `json:"PinCPUCore"`

	BootstrapResamples int `json:"BootstrapResamples"`
}

func ReadConfigurationFile(path string) StudyConfiguration {
	byteValue, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	var config StudyConfiguration
	err = json.Unmarshal(byteValue, &config)
	if err != nil {
		log.Fatal(err)
	}

	return config
}
