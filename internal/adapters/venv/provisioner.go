// Package venv provisions isolated Python environments for workflow runs.
package venv

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"github.com/morsellabs/dashci/internal/core/domain"
	"github.com/morsellabs/dashci/internal/core/ports"
)

// Provisioner implements ports.EnvironmentProvisioner using `python -m venv`.
type Provisioner struct {
	logger ports.Logger

	requestGroup singleflight.Group
}

var _ ports.EnvironmentProvisioner = (*Provisioner)(nil)

// NewProvisioner creates a new venv Provisioner.
func NewProvisioner(logger ports.Logger) *Provisioner {
	return &Provisioner{
		logger: logger,
	}
}

// EnsureEnvironment makes sure the workspace's environment directory exists
// and is usable, creating it when absent. Creation is idempotent: an existing
// directory is reused as-is.
func (p *Provisioner) EnsureEnvironment(ctx context.Context, ws domain.Workspace) (domain.Environment, error) {
	envPath := ws.EnvPath()

	// Concurrent callers for the same environment share one provisioning run.
	result, err, _ := p.requestGroup.Do(envPath, func() (any, error) {
		return p.ensure(ctx, ws)
	})
	if err != nil {
		return domain.Environment{}, err
	}

	return result.(domain.Environment), nil
}

func (p *Provisioner) ensure(ctx context.Context, ws domain.Workspace) (domain.Environment, error) {
	interpreter, err := resolveInterpreter(ws.Interpreters)
	if err != nil {
		return domain.Environment{}, err
	}

	envPath := ws.EnvPath()

	created := false
	if _, statErr := os.Stat(envPath); os.IsNotExist(statErr) {
		p.logger.Info("creating environment " + ws.EnvDir)
		if createErr := createEnv(ctx, interpreter, envPath); createErr != nil {
			return domain.Environment{}, createErr
		}
		created = true
	}

	lay, err := probeLayout(envPath)
	if err != nil {
		return domain.Environment{}, err
	}

	python, err := lay.pythonBinary()
	if err != nil {
		return domain.Environment{}, err
	}

	fresh := false
	if !created {
		fresh = stampMatches(ws, interpreter)
	}

	return domain.Environment{
		Dir:             envPath,
		Python:          python,
		BaseInterpreter: interpreter,
		Env:             activationEnv(envPath, lay.binDir),
		Created:         created,
		Fresh:           fresh,
	}, nil
}

// RecordStamp persists the environment identity after a successful install.
func (p *Provisioner) RecordStamp(ws domain.Workspace, env domain.Environment) error {
	manifest, err := os.ReadFile(ws.ManifestPath())
	if err != nil {
		return zerr.Wrap(err, "failed to read manifest for stamping")
	}

	stamp := domain.NewEnvStamp(env.BaseInterpreter, manifest)

	return SaveStamp(stampPath(ws), stamp)
}

// resolveInterpreter probes the interpreter candidates in order and returns
// the first one found on the search path.
func resolveInterpreter(candidates []string) (string, error) {
	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", zerr.With(domain.ErrInterpreterUnavailable, "candidates", strings.Join(candidates, ", "))
}

// createEnv creates a fresh environment directory via the interpreter's venv
// module. A partially created directory is removed on failure so the next run
// can retry from scratch.
func createEnv(ctx context.Context, interpreter, envPath string) error {
	//nolint:gosec // interpreter is resolved from configured candidates
	cmd := exec.CommandContext(ctx, interpreter, "-m", "venv", envPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		_ = os.RemoveAll(envPath)

		wrapped := zerr.Wrap(domain.ErrEnvCreateFailed, strings.TrimSpace(string(output)))
		return zerr.With(wrapped, "interpreter", interpreter)
	}
	return nil
}

// envLayout describes where a provisioned environment keeps its entry points.
// POSIX venvs use bin/, Windows venvs use Scripts/.
type envLayout struct {
	binDir   string
	activate string
}

var knownLayouts = []struct {
	bin      string
	activate string
}{
	{"bin", "activate"},
	{"Scripts", "activate"},
}

// probeLayout determines the environment's layout by locating its activation
// script. Activation itself is realized through environment variables; the
// script's presence is only the capability signal that the directory is a
// usable environment.
func probeLayout(envPath string) (envLayout, error) {
	for _, l := range knownLayouts {
		activate := filepath.Join(envPath, l.bin, l.activate)
		if info, err := os.Stat(activate); err == nil && !info.IsDir() {
			return envLayout{
				binDir:   filepath.Join(envPath, l.bin),
				activate: activate,
			}, nil
		}
	}
	return envLayout{}, zerr.With(domain.ErrActivationScriptMissing, "env_dir", envPath)
}

var pythonBinaryNames = []string{"python3", "python", "python.exe"}

// pythonBinary locates the environment's interpreter next to the activation
// script.
func (l envLayout) pythonBinary() (string, error) {
	for _, name := range pythonBinaryNames {
		candidate := filepath.Join(l.binDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", zerr.With(domain.ErrEnvCorrupted, "bin_dir", l.binDir)
}

// activationEnv computes the variables that realize activation: VIRTUAL_ENV
// plus a PATH entry the executor prepends to the system PATH. PYTHONHOME is
// handled by omission, since the executor only passes allow-listed system
// variables through to steps.
func activationEnv(envPath, binDir string) []string {
	return []string{
		"VIRTUAL_ENV=" + envPath,
		"PATH=" + binDir,
	}
}

// stampMatches reports whether the recorded environment stamp still matches
// the current interpreter and manifest content.
func stampMatches(ws domain.Workspace, interpreter string) bool {
	manifest, err := os.ReadFile(ws.ManifestPath())
	if err != nil {
		return false
	}

	stamp, err := LoadStamp(stampPath(ws))
	if err != nil {
		return false
	}

	return stamp.EnvID == domain.GenerateEnvID(interpreter, manifest)
}
