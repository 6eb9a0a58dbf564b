// Package pytest runs the workspace's test suite inside the isolated
// environment.
package pytest

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.trai.ch/zerr"

	"github.com/morsellabs/dashci/internal/core/domain"
	"github.com/morsellabs/dashci/internal/core/ports"
)

// Runner implements ports.TestRunner by invoking pytest through the
// environment's interpreter.
type Runner struct {
	executor ports.Executor
}

var _ ports.TestRunner = (*Runner)(nil)

// NewRunner creates a new pytest Runner.
func NewRunner(executor ports.Executor) *Runner {
	return &Runner{
		executor: executor,
	}
}

// Run invokes `python -m pytest <entry> -v --headless` and parses the trailing
// summary line into a report. A failing suite maps to domain.ErrTestsFailed
// carrying pytest's literal exit status.
func (r *Runner) Run(ctx context.Context, ws domain.Workspace, env domain.Environment, stdout, stderr io.Writer) (domain.TestReport, error) {
	entryPath := ws.TestEntryPath()

	if _, err := os.Stat(entryPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.TestReport{}, zerr.With(domain.ErrTestEntryNotFound, "entry", ws.TestEntry)
		}
		return domain.TestReport{}, zerr.Wrap(err, "failed to stat test entry point")
	}

	command := []string{env.Python, "-m", "pytest", entryPath, "-v", "--headless"}
	command = append(command, ws.PytestArgs...)

	step := &domain.Step{
		Name:       "run tests",
		Command:    command,
		WorkingDir: ws.Root,
	}

	tracker := &summaryTracker{}
	runErr := r.executor.Execute(ctx, step, runEnv(ws, env), io.MultiWriter(tracker, stdout), stderr)

	report := tracker.Report()
	report.ExitCode = domain.ExitCode(runErr)

	if runErr != nil {
		wrapped := zerr.With(
			zerr.Wrap(domain.ErrTestsFailed, runErr.Error()),
			"exit_code", report.ExitCode,
		)
		return report, domain.WithExitCode(wrapped, report.ExitCode)
	}

	return report, nil
}

// runEnv extends the activation environment with the workspace's extra PATH
// directories, keeping the environment's own bin directory first.
func runEnv(ws domain.Workspace, env domain.Environment) []string {
	extra := ws.ExtraPathDirs()
	if len(extra) == 0 {
		return env.Env
	}

	result := make([]string, 0, len(env.Env))
	pathSeen := false
	for _, entry := range env.Env {
		if value, ok := strings.CutPrefix(entry, "PATH="); ok {
			pathSeen = true
			result = append(result, "PATH="+joinPath(append([]string{value}, extra...)))
			continue
		}
		result = append(result, entry)
	}
	if !pathSeen {
		result = append(result, "PATH="+joinPath(extra))
	}
	return result
}

func joinPath(dirs []string) string {
	return strings.Join(dirs, string(os.PathListSeparator))
}
