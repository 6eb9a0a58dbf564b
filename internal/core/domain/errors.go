package domain

import "go.trai.ch/zerr"

var (
	// ErrInterpreterUnavailable is returned when none of the configured interpreter
	// candidates can be found on the search path.
	ErrInterpreterUnavailable = zerr.New("no usable Python interpreter found")

	// ErrActivationScriptMissing is returned when the environment directory exists
	// but no activation entry point can be located under any known platform layout.
	ErrActivationScriptMissing = zerr.New("environment activation script missing")

	// ErrEnvCreateFailed is returned when creating the isolated environment fails.
	ErrEnvCreateFailed = zerr.New("failed to create isolated environment")

	// ErrEnvCorrupted is returned when the environment directory exists but is
	// missing its interpreter binary.
	ErrEnvCorrupted = zerr.New("environment directory is corrupted")

	// ErrManifestNotFound is returned when the dependency manifest does not exist.
	ErrManifestNotFound = zerr.New("dependency manifest not found")

	// ErrManifestReadFailed is returned when the dependency manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read dependency manifest")

	// ErrDependencyInstallFailed is returned when the package installation step
	// exits non-zero.
	ErrDependencyInstallFailed = zerr.New("dependency installation failed")

	// ErrTestsFailed is returned when the test runner reports at least one failure.
	// The runner's literal exit code is attached as the "exit_code" field.
	ErrTestsFailed = zerr.New("test suite failed")

	// ErrPipelineFailed is returned when a pipeline stage fails.
	ErrPipelineFailed = zerr.New("pipeline failed")

	// ErrTestEntryNotFound is returned when the configured test entry point does
	// not exist in the workspace.
	ErrTestEntryNotFound = zerr.New("test entry point not found")

	// ErrConfigNotFound is returned when no workspace marker can be discovered by
	// walking up from the invocation directory.
	ErrConfigNotFound = zerr.New("could not find dashci.yaml or a dependency manifest")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidEnvDir is returned when the environment directory escapes the
	// workspace root.
	ErrInvalidEnvDir = zerr.New("environment directory is outside workspace root")

	// ErrStampReadFailed is returned when an environment stamp cannot be read.
	ErrStampReadFailed = zerr.New("failed to read environment stamp")

	// ErrStampWriteFailed is returned when an environment stamp cannot be written.
	ErrStampWriteFailed = zerr.New("failed to write environment stamp")

	// ErrCacheMiss is returned when a requested item is not found in the cache.
	ErrCacheMiss = zerr.New("cache miss")
)
