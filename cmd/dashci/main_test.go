package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/morsellabs/dashci/internal/app"
	"github.com/morsellabs/dashci/internal/core/domain"
	"github.com/morsellabs/dashci/internal/core/ports/mocks"
)

func newTestApp(ctrl *gomock.Controller, loader *mocks.MockConfigLoader, logger *mocks.MockLogger) *app.App {
	return app.New(
		loader,
		mocks.NewMockEnvironmentProvisioner(ctrl),
		mocks.NewMockDependencyInstaller(ctrl),
		mocks.NewMockTestRunner(ctrl),
		logger,
		nil,
	)
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    newTestApp(ctrl, mockLoader, mockLogger),
			Logger: mockLogger,
		}, func() {}, nil
	}

	stderr := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	mockLoader.EXPECT().
		Load(gomock.Any()).
		Return(domain.Workspace{}, errors.New("load failed"))

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    newTestApp(ctrl, mockLoader, mockLogger),
			Logger: mockLogger,
		}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"run"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
}

// TestRun_ForwardsTestExitCode verifies that a failed test run's literal exit
// status becomes the process exit code.
func TestRun_ForwardsTestExitCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	failure := domain.WithExitCode(domain.ErrTestsFailed, 2)
	mockLoader.EXPECT().Load(gomock.Any()).Return(domain.Workspace{}, failure)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    newTestApp(ctrl, mockLoader, mockLogger),
			Logger: mockLogger,
		}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"run"}, stderr, provider)

	assert.Equal(t, 2, exitCode)
}
