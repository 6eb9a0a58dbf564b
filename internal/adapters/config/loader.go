// Package config provides the workspace configuration loader for dashci.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/morsellabs/dashci/internal/core/domain"
	"github.com/morsellabs/dashci/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers the workspace root starting at cwd and returns the resolved
// workspace configuration. A missing dashci.yaml is not an error: the first
// directory containing a dependency manifest marks the root and defaults
// apply.
func (l *Loader) Load(cwd string) (domain.Workspace, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return domain.Workspace{}, err
	}

	ws := domain.NewWorkspace(root)

	configPath := filepath.Join(root, domain.ConfigFileName)
	if _, statErr := os.Stat(configPath); statErr == nil {
		if err := l.applyFile(&ws, configPath); err != nil {
			return domain.Workspace{}, err
		}
	}

	if err := ws.Validate(); err != nil {
		return domain.Workspace{}, err
	}

	return ws, nil
}

// DiscoverRoot walks up from cwd to find the workspace root. A directory
// containing dashci.yaml always wins; otherwise the nearest directory
// containing the default dependency manifest is used.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve invocation directory")
	}

	currentDir := absCwd
	var manifestCandidate string

	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return currentDir, nil
		}

		if manifestCandidate == "" {
			manifestPath := filepath.Join(currentDir, domain.DefaultManifestName)
			if _, err := os.Stat(manifestPath); err == nil {
				manifestCandidate = currentDir
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	if manifestCandidate != "" {
		return manifestCandidate, nil
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

// applyFile overlays the values from configPath onto ws.
func (l *Loader) applyFile(ws *domain.Workspace, configPath string) error {
	// #nosec G304 -- configPath is constructed from the discovered root
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	if file.Version != "" && file.Version != "1" {
		l.Logger.Warn(fmt.Sprintf("unknown config version %q in %s, continuing with version 1 semantics",
			file.Version, domain.ConfigFileName))
	}

	if file.Root != "" {
		// Relative root is resolved against the config file's directory.
		root := file.Root
		if !filepath.IsAbs(root) {
			root = filepath.Join(filepath.Dir(configPath), root)
		}
		ws.Root = filepath.Clean(root)
	}
	if file.EnvDir != "" {
		ws.EnvDir = file.EnvDir
	}
	if file.Manifest != "" {
		ws.Manifest = file.Manifest
	}
	if file.TestEntry != "" {
		ws.TestEntry = file.TestEntry
	}
	if len(file.Interpreters) > 0 {
		ws.Interpreters = file.Interpreters
	}
	ws.PytestArgs = file.PytestArgs
	ws.ExtraPath = file.ExtraPath

	return nil
}
