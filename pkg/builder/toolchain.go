// Package builder executes the build half of a study: it turns each
// pending job into a binary artifact, records size and build time, and
// classifies anything that goes wrong as a build failure.
package builder

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/perflab/optbench/pkg/matrix"
)

// Toolchain turns a job into a build invocation and knows where the
// produced artifact lands.
type Toolchain interface {
	BuildCommand(ctx context.Context, job *matrix.Job) (*exec.Cmd, error)
	ArtifactPath(job *matrix.Job) string
}

// CargoToolchain builds workloads with cargo. Each optimization
// profile is materialized as a custom cargo profile in a generated
// config file, so the workspace manifest never has to be edited.
type CargoToolchain struct {
	// ProjectRoot is the cargo workspace containing the workload
	// packages.
	ProjectRoot string

	// ConfigDir receives the generated per-profile config files.
	ConfigDir string
}

func NewCargoToolchain(projectRoot string) *CargoToolchain {
	return &CargoToolchain{
		ProjectRoot: projectRoot,
		ConfigDir:   filepath.Join(projectRoot, "target", "optbench-profiles"),
	}
}

func (t *CargoToolchain) BuildCommand(ctx context.Context, job *matrix.Job) (*exec.Cmd, error) {
	configPath, err := t.writeProfileConfig(job)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "cargo", "build",
		"--package", job.Workload.Package,
		"--profile", job.Profile.Name,
		"--config", configPath,
	)
	cmd.Dir = t.ProjectRoot

	if flags := job.Profile.RustcFlags(); len(flags) > 0 {
		cmd.Env = append(os.Environ(), "RUSTFLAGS="+strings.Join(flags, " "))
	}

	return cmd, nil
}

func (t *CargoToolchain) ArtifactPath(job *matrix.Job) string {
	return filepath.Join(t.ProjectRoot, "target", job.Profile.Name, job.Workload.Package)
}

// writeProfileConfig renders the job's profile as a cargo config file.
// Custom cargo profiles must name a base profile to inherit from.
func (t *CargoToolchain) writeProfileConfig(job *matrix.Job) (string, error) {
	if err := os.MkdirAll(t.ConfigDir, 0755); err != nil {
		return "", fmt.Errorf("create profile config dir: %w", err)
	}

	section := job.Profile.ManifestSection()
	header, body, found := strings.Cut(section, "\n")
	if !found {
		return "", fmt.Errorf("malformed profile section for %s", job.Profile.Name)
	}
	content := header + "\ninherits = \"release\"\n" + body

	path := filepath.Join(t.ConfigDir, job.Profile.Name+".toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write profile config: %w", err)
	}

	return path, nil
}

// CommandToolchain builds workloads with a user-supplied command
// template. The placeholders {{workload}}, {{package}} and {{profile}}
// are expanded per job, which keeps the harness usable for projects
// that are not cargo workspaces.
type CommandToolchain struct {
	Template []string
	Artifact string
	Workdir  string
}

func (t *CommandToolchain) BuildCommand(ctx context.Context, job *matrix.Job) (*exec.Cmd, error) {
	if len(t.Template) == 0 {
		return nil, fmt.Errorf("command toolchain has an empty template")
	}

	args := make([]string, len(t.Template))
	for i, arg := range t.Template {
		args[i] = expandPlaceholders(arg, job)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = t.Workdir

	return cmd, nil
}

func (t *CommandToolchain) ArtifactPath(job *matrix.Job) string {
	path := expandPlaceholders(t.Artifact, job)
	if t.Workdir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(t.Workdir, path)
	}

	return path
}

func expandPlaceholders(s string, job *matrix.Job) string {
	r := strings.NewReplacer(
		"{{workload}}", job.Workload.Name,
		"{{package}}", job.Workload.Package,
		"{{profile}}", job.Profile.Name,
	)

	return r.Replace(s)
}
