package ports

import "github.com/morsellabs/dashci/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the workspace root starting at cwd and returns the
	// resolved workspace configuration with defaults applied.
	Load(cwd string) (domain.Workspace, error)

	// DiscoverRoot walks up from cwd to find the workspace root.
	// Returns the first directory containing dashci.yaml or a dependency
	// manifest.
	DiscoverRoot(cwd string) (string, error)
}
