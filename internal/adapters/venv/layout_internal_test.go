package venv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morsellabs/dashci/internal/core/domain"
)

func TestProbeLayout_Posix(t *testing.T) {
	envPath := t.TempDir()
	binDir := filepath.Join(envPath, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "activate"), nil, 0o644))

	lay, err := probeLayout(envPath)
	require.NoError(t, err)
	assert.Equal(t, binDir, lay.binDir)
}

func TestProbeLayout_Windows(t *testing.T) {
	envPath := t.TempDir()
	scriptsDir := filepath.Join(envPath, "Scripts")
	require.NoError(t, os.MkdirAll(scriptsDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(scriptsDir, "activate"), nil, 0o644))

	lay, err := probeLayout(envPath)
	require.NoError(t, err)
	assert.Equal(t, scriptsDir, lay.binDir)
}

func TestProbeLayout_Missing(t *testing.T) {
	_, err := probeLayout(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrActivationScriptMissing)
}

func TestProbeLayout_ActivateIsDirectory(t *testing.T) {
	envPath := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(envPath, "bin", "activate"), 0o750))

	_, err := probeLayout(envPath)
	assert.ErrorIs(t, err, domain.ErrActivationScriptMissing)
}

func TestPythonBinary_PrefersPython3(t *testing.T) {
	binDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "python3"), nil, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "python"), nil, 0o755))

	lay := envLayout{binDir: binDir}
	python, err := lay.pythonBinary()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(binDir, "python3"), python)
}

func TestActivationEnv(t *testing.T) {
	env := activationEnv("/work/.venv", "/work/.venv/bin")
	assert.Equal(t, []string{"VIRTUAL_ENV=/work/.venv", "PATH=/work/.venv/bin"}, env)
}
