// Package domain contains the core types for the dashci workflow.
package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// Workspace is the explicit, injectable configuration for one bootstrap run.
// Every path is stored relative to Root and resolved through the accessor
// methods, so the workflow behaves identically no matter which directory it
// was invoked from.
type Workspace struct {
	// Root is the absolute path of the repository root.
	Root string

	// EnvDir is the isolated environment directory, relative to Root.
	EnvDir string

	// Manifest is the dependency manifest file, relative to Root.
	Manifest string

	// TestEntry is the test suite entry point, relative to Root.
	TestEntry string

	// Interpreters are the interpreter binaries probed in order when the
	// environment has to be created.
	Interpreters []string

	// PytestArgs are extra arguments appended to the test invocation.
	PytestArgs []string

	// ExtraPath lists directories, relative to Root, prepended to PATH for
	// test execution. Used for repo-bundled tools such as a chromedriver.
	ExtraPath []string
}

// NewWorkspace returns a Workspace rooted at root with all defaults applied.
func NewWorkspace(root string) Workspace {
	return Workspace{
		Root:         root,
		EnvDir:       DefaultEnvDirName,
		Manifest:     DefaultManifestName,
		TestEntry:    DefaultTestEntry,
		Interpreters: append([]string(nil), DefaultInterpreters...),
	}
}

// Validate checks the workspace for structural problems.
func (w Workspace) Validate() error {
	if w.Root == "" || !filepath.IsAbs(w.Root) {
		return zerr.With(ErrConfigParseFailed, "root", w.Root)
	}
	if len(w.Interpreters) == 0 {
		return zerr.Wrap(ErrInterpreterUnavailable, "no interpreter candidates configured")
	}
	envPath := w.EnvPath()
	rel, err := filepath.Rel(w.Root, envPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return zerr.With(ErrInvalidEnvDir, "env_dir", w.EnvDir)
	}
	return nil
}

// EnvPath returns the absolute path of the isolated environment directory.
func (w Workspace) EnvPath() string {
	return w.resolve(w.EnvDir)
}

// ManifestPath returns the absolute path of the dependency manifest.
func (w Workspace) ManifestPath() string {
	return w.resolve(w.Manifest)
}

// TestEntryPath returns the absolute path of the test entry point.
func (w Workspace) TestEntryPath() string {
	return w.resolve(w.TestEntry)
}

// StampCachePath returns the absolute path of the environment stamp cache.
func (w Workspace) StampCachePath() string {
	return filepath.Join(w.Root, DefaultStampCachePath())
}

// ExtraPathDirs returns the absolute paths of the configured PATH prepends.
func (w Workspace) ExtraPathDirs() []string {
	if len(w.ExtraPath) == 0 {
		return nil
	}
	dirs := make([]string, len(w.ExtraPath))
	for i, d := range w.ExtraPath {
		dirs[i] = w.resolve(d)
	}
	return dirs
}

func (w Workspace) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(w.Root, p)
}
