package domain

import "path/filepath"

const (
	// InternalDirName is the name of the internal workspace directory.
	InternalDirName = ".dashci"

	// CacheDirName is the name of the cache directory.
	CacheDirName = "cache"

	// EnvStampDirName is the name of the environment stamp directory.
	EnvStampDirName = "environments"

	// ConfigFileName is the name of the workspace configuration file.
	ConfigFileName = "dashci.yaml"

	// DefaultEnvDirName is the default isolated environment directory.
	DefaultEnvDirName = ".venv"

	// DefaultManifestName is the default dependency manifest file.
	DefaultManifestName = "requirements.txt"

	// DefaultTestEntry is the default test suite entry point.
	DefaultTestEntry = "test_app.py"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultInterpreters are the interpreter binaries probed, in order, when the
// workspace does not configure its own candidates.
var DefaultInterpreters = []string{"python3", "python"}

// DefaultInternalPath returns the default root directory for dashci metadata.
func DefaultInternalPath() string {
	return InternalDirName
}

// DefaultStampCachePath returns the default path for the environment stamp cache.
// It joins .dashci, cache, and environments.
func DefaultStampCachePath() string {
	return filepath.Join(InternalDirName, CacheDirName, EnvStampDirName)
}

// DefaultDebugLogPath returns the default path for the debug log.
// It joins .dashci and debug.log.
func DefaultDebugLogPath() string {
	return filepath.Join(InternalDirName, DebugLogFile)
}
