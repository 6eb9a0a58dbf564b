package ports

import (
	"context"
	"io"

	"github.com/morsellabs/dashci/internal/core/domain"
)

// DependencyInstaller defines the interface for installing the workspace's
// dependency manifest into the isolated environment.
//
//go:generate mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type DependencyInstaller interface {
	// Install installs or upgrades every package listed in the manifest.
	// Verbose package-manager output is suppressed; failures surface the
	// underlying tool's stderr and map to domain.ErrDependencyInstallFailed.
	Install(ctx context.Context, ws domain.Workspace, env domain.Environment, stdout, stderr io.Writer) error
}
