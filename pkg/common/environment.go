package common

import (
	"os"
	"runtime"
	"strings"

	"golang.org/x/sys/unix"
)

// Environment captures the host the study ran on. It is persisted with
// every results document so that numbers from different machines are
// never compared blindly.
type Environment struct {
	OS        string `json:"os" csv:"os"`
	Arch      string `json:"arch" csv:"arch"`
	CPUModel  string `json:"cpu_model" csv:"cpu_model"`
	NumCPU    int    `json:"num_cpu" csv:"num_cpu"`
	PageSizeB int    `json:"page_size_b" csv:"page_size_b"`
	Hostname  string `json:"hostname" csv:"hostname"`
	GoVersion string `json:"go_version" csv:"go_version"`
}

func CaptureEnvironment() Environment {
	env := Environment{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		CPUModel:  detectCPUModel(),
		NumCPU:    runtime.NumCPU(),
		PageSizeB: unix.Getpagesize(),
		GoVersion: runtime.Version(),
	}

	if hostname, err := os.Hostname(); err == nil {
		env.Hostname = hostname
	}

	return env
}

func detectCPUModel() string {
	if runtime.GOOS != "linux" {
		return runtime.GOARCH
	}

	content, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return runtime.GOARCH
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, "model name") {
			if _, model, found := strings.Cut(line, ":"); found {
				return strings.TrimSpace(model)
			}
		}
	}

	return runtime.GOARCH
}
