package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/morsellabs/dashci/internal/adapters/shell"
	"github.com/morsellabs/dashci/internal/core/domain"
	"github.com/morsellabs/dashci/internal/core/ports/mocks"
)

func newTestExecutor(t *testing.T) *shell.Executor {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	return shell.NewExecutor(mockLogger)
}

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	executor := newTestExecutor(t)
	tmpDir := t.TempDir()

	step := &domain.Step{
		Name:       "multi-line",
		Command:    []string{"sh", "-c", "echo line1; echo line2"},
		WorkingDir: tmpDir,
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), step, nil, &stdout, io.Discard)
	require.NoError(t, err)

	output := stdout.String()
	require.Contains(t, output, "line1")
	require.Contains(t, output, "line2")
}

func TestExecutor_Execute_FragmentedOutput(t *testing.T) {
	executor := newTestExecutor(t)
	tmpDir := t.TempDir()

	// Simulate fragmented write: "part1" then short sleep then "part2", then newline
	step := &domain.Step{
		Name:       "fragmented",
		Command:    []string{"sh", "-c", "printf part1; sleep 0.1; echo part2"},
		WorkingDir: tmpDir,
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), step, nil, &stdout, io.Discard)
	require.NoError(t, err)

	output := stdout.String()
	require.Contains(t, output, "part1")
	require.Contains(t, output, "part2")
}

func TestExecutor_Execute_StepEnvironment(t *testing.T) {
	executor := newTestExecutor(t)
	tmpDir := t.TempDir()

	step := &domain.Step{
		Name:    "step-env",
		Command: []string{"sh", "-c", "echo $MY_TEST_VAR"},
		Environment: map[string]string{
			"MY_TEST_VAR": "test-value-123",
		},
		WorkingDir: tmpDir,
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), step, nil, &stdout, io.Discard)
	require.NoError(t, err)

	require.Contains(t, stdout.String(), "test-value-123")
}

func TestExecutor_Execute_ActivationEnvironment(t *testing.T) {
	executor := newTestExecutor(t)
	tmpDir := t.TempDir()

	step := &domain.Step{
		Name:       "activation-env",
		Command:    []string{"sh", "-c", "echo $VIRTUAL_ENV"},
		WorkingDir: tmpDir,
	}

	activationEnv := []string{"VIRTUAL_ENV=" + filepath.Join(tmpDir, ".venv")}
	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), step, activationEnv, &stdout, io.Discard)
	require.NoError(t, err)

	require.Contains(t, stdout.String(), ".venv")
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	executor := newTestExecutor(t)
	tmpDir := t.TempDir()

	step := &domain.Step{
		Name:       "invalid",
		Command:    []string{"nonexistent-command-xyz123"},
		WorkingDir: tmpDir,
	}

	err := executor.Execute(context.Background(), step, nil, io.Discard, io.Discard)
	if err == nil {
		t.Error("Execute() expected error for invalid command")
	}
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	executor := newTestExecutor(t)
	tmpDir := t.TempDir()

	step := &domain.Step{
		Name:       "fail",
		Command:    []string{"sh", "-c", "exit 42"},
		WorkingDir: tmpDir,
	}

	err := executor.Execute(context.Background(), step, nil, io.Discard, io.Discard)
	require.Error(t, err)

	if !strings.Contains(err.Error(), "command failed") {
		t.Errorf("Execute() error should mention command failure: %v", err)
	}

	// The literal exit status has to survive the wrapping.
	require.Equal(t, 42, domain.ExitCode(err))
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	executor := newTestExecutor(t)
	tmpDir := t.TempDir()

	step := &domain.Step{
		Name:       "empty",
		Command:    []string{},
		WorkingDir: tmpDir,
	}

	// Empty command should return nil without error
	err := executor.Execute(context.Background(), step, nil, io.Discard, io.Discard)
	if err != nil {
		t.Errorf("Execute() unexpected error for empty command: %v", err)
	}
}

func TestExecutor_Execute_AbsolutePath(t *testing.T) {
	executor := newTestExecutor(t)
	tmpDir := t.TempDir()

	step := &domain.Step{
		Name:       "absolute",
		Command:    []string{"/bin/sh", "-c", "echo test"},
		WorkingDir: tmpDir,
	}

	err := executor.Execute(context.Background(), step, nil, io.Discard, io.Discard)
	require.NoError(t, err)
}

func TestExecutor_Execute_ActivationPathResolution(t *testing.T) {
	executor := newTestExecutor(t)

	// Create a fake venv bin directory holding the only copy of the tool.
	binDir := t.TempDir()
	cmdName := "venv-only-tool"
	cmdPath := filepath.Join(binDir, cmdName)
	content := "#!/bin/sh\necho success\n"
	//nolint:gosec // Test requires executable file
	err := os.WriteFile(cmdPath, []byte(content), 0o700)
	require.NoError(t, err)

	step := &domain.Step{
		Name:       "path-resolution",
		Command:    []string{cmdName},
		WorkingDir: binDir,
	}

	activationEnv := []string{"PATH=" + binDir}

	var stdout bytes.Buffer
	err = executor.Execute(context.Background(), step, activationEnv, &stdout, &stdout)
	require.NoError(t, err)

	require.Contains(t, stdout.String(), "success")
}
