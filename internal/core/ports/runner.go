package ports

import (
	"context"
	"io"

	"github.com/morsellabs/dashci/internal/core/domain"
)

// TestRunner defines the interface for invoking the test suite inside the
// isolated environment.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type TestRunner interface {
	// Run invokes the suite in verbose, headless mode and returns its report.
	// When at least one test fails, the returned error wraps
	// domain.ErrTestsFailed and carries the runner's literal exit code.
	Run(ctx context.Context, ws domain.Workspace, env domain.Environment, stdout, stderr io.Writer) (domain.TestReport, error)
}
