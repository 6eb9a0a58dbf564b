// Package pip installs dependency manifests into isolated environments.
package pip

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"go.trai.ch/zerr"

	"github.com/morsellabs/dashci/internal/core/domain"
	"github.com/morsellabs/dashci/internal/core/ports"
)

// Installer implements ports.DependencyInstaller using the environment's own
// pip module.
type Installer struct {
	executor ports.Executor
}

var _ ports.DependencyInstaller = (*Installer)(nil)

// NewInstaller creates a new pip Installer.
func NewInstaller(executor ports.Executor) *Installer {
	return &Installer{
		executor: executor,
	}
}

// Install runs `python -m pip install --upgrade -r <manifest>` inside the
// environment. The -q flag keeps per-package noise out of the stream while
// errors still surface on stderr.
func (i *Installer) Install(ctx context.Context, ws domain.Workspace, env domain.Environment, stdout, stderr io.Writer) error {
	manifestPath := ws.ManifestPath()

	if _, err := os.Stat(manifestPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(domain.ErrManifestNotFound, "manifest", ws.Manifest)
		}
		return zerr.Wrap(domain.ErrManifestReadFailed, err.Error())
	}

	step := &domain.Step{
		Name:       "install dependencies",
		Command:    []string{env.Python, "-m", "pip", "install", "--upgrade", "-q", "-r", manifestPath},
		WorkingDir: ws.Root,
	}

	if err := i.executor.Execute(ctx, step, env.Env, stdout, stderr); err != nil {
		wrapped := zerr.Wrap(domain.ErrDependencyInstallFailed, err.Error())
		return domain.WithExitCode(zerr.With(wrapped, "manifest", ws.Manifest), domain.ExitCode(err))
	}

	return nil
}
