// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"github.com/morsellabs/dashci/internal/core/domain"
)

// Executor defines the interface for executing workflow steps.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the given step with the specified environment.
	//
	// The env parameter contains environment variables in "KEY=VALUE" format,
	// typically produced by an EnvironmentProvisioner so the step runs inside
	// the isolated environment.
	//
	// It returns an error if the step execution fails. When the step's process
	// exited non-zero, the error carries the literal exit status.
	Execute(ctx context.Context, step *domain.Step, env []string, stdout, stderr io.Writer) error
}
