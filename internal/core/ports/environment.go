package ports

import (
	"context"

	"github.com/morsellabs/dashci/internal/core/domain"
)

// EnvironmentProvisioner defines the interface for preparing the isolated
// execution environment.
//
//go:generate mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentProvisioner interface {
	// EnsureEnvironment makes sure the workspace's isolated environment
	// exists and is usable, creating it when absent. The returned Environment
	// carries the variables that realize activation.
	//
	// Fails with domain.ErrInterpreterUnavailable when no interpreter
	// candidate is on the search path, and domain.ErrActivationScriptMissing
	// when the directory exists but no activation entry point can be found.
	EnsureEnvironment(ctx context.Context, ws domain.Workspace) (domain.Environment, error)

	// RecordStamp persists the environment stamp after a successful
	// dependency installation so later runs can detect manifest drift.
	RecordStamp(ws domain.Workspace, env domain.Environment) error
}
