package venv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/morsellabs/dashci/internal/adapters/venv"
	"github.com/morsellabs/dashci/internal/core/domain"
	"github.com/morsellabs/dashci/internal/core/ports/mocks"
)

// fakeInterpreter writes a shell script that mimics `python -m venv <dir>` by
// laying down the minimal environment structure.
func fakeInterpreter(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "python3")
	script := `#!/bin/sh
mkdir -p "$3/bin"
: > "$3/bin/activate"
printf '#!/bin/sh\n' > "$3/bin/python"
chmod +x "$3/bin/python"
`
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(path, []byte(script), 0o700))
	return path
}

func newTestProvisioner(t *testing.T) *venv.Provisioner {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	return venv.NewProvisioner(mockLogger)
}

func testWorkspace(t *testing.T, interpreter string) domain.Workspace {
	t.Helper()

	root := t.TempDir()
	ws := domain.NewWorkspace(root)
	ws.Interpreters = []string{interpreter}
	require.NoError(t, os.WriteFile(ws.ManifestPath(), []byte("dash==2.9.3\n"), 0o644))
	return ws
}

func TestProvisioner_EnsureEnvironment_CreatesWhenAbsent(t *testing.T) {
	p := newTestProvisioner(t)
	ws := testWorkspace(t, fakeInterpreter(t))

	env, err := p.EnsureEnvironment(context.Background(), ws)
	require.NoError(t, err)

	assert.True(t, env.Created)
	assert.False(t, env.Fresh)
	assert.Equal(t, ws.EnvPath(), env.Dir)
	assert.Equal(t, filepath.Join(ws.EnvPath(), "bin", "python"), env.Python)
	assert.Contains(t, env.Env, "VIRTUAL_ENV="+ws.EnvPath())
	assert.Contains(t, env.Env, "PATH="+filepath.Join(ws.EnvPath(), "bin"))
}

func TestProvisioner_EnsureEnvironment_ReusesExisting(t *testing.T) {
	p := newTestProvisioner(t)
	ws := testWorkspace(t, fakeInterpreter(t))

	first, err := p.EnsureEnvironment(context.Background(), ws)
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := p.EnsureEnvironment(context.Background(), ws)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Dir, second.Dir)
	assert.Equal(t, first.Python, second.Python)
}

func TestProvisioner_EnsureEnvironment_NoInterpreter(t *testing.T) {
	p := newTestProvisioner(t)
	ws := testWorkspace(t, filepath.Join(t.TempDir(), "missing-python"))

	_, err := p.EnsureEnvironment(context.Background(), ws)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInterpreterUnavailable)
}

func TestProvisioner_EnsureEnvironment_ActivationScriptMissing(t *testing.T) {
	p := newTestProvisioner(t)
	ws := testWorkspace(t, fakeInterpreter(t))

	// A pre-existing env dir with no recognizable layout.
	require.NoError(t, os.MkdirAll(ws.EnvPath(), 0o750))

	_, err := p.EnsureEnvironment(context.Background(), ws)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrActivationScriptMissing)
}

func TestProvisioner_EnsureEnvironment_MissingPythonBinary(t *testing.T) {
	p := newTestProvisioner(t)
	ws := testWorkspace(t, fakeInterpreter(t))

	// Activation script present but no interpreter binary.
	binDir := filepath.Join(ws.EnvPath(), "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "activate"), nil, 0o644))

	_, err := p.EnsureEnvironment(context.Background(), ws)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEnvCorrupted)
}

func TestProvisioner_EnsureEnvironment_FailedCreateCleansUp(t *testing.T) {
	p := newTestProvisioner(t)

	dir := t.TempDir()
	failing := filepath.Join(dir, "python3")
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(failing, []byte("#!/bin/sh\nmkdir -p \"$3\"\necho boom >&2\nexit 1\n"), 0o700))

	ws := testWorkspace(t, failing)

	_, err := p.EnsureEnvironment(context.Background(), ws)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEnvCreateFailed)

	// The partial directory must be gone so a later run can retry.
	_, statErr := os.Stat(ws.EnvPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestProvisioner_RecordStamp_MakesEnvironmentFresh(t *testing.T) {
	p := newTestProvisioner(t)
	ws := testWorkspace(t, fakeInterpreter(t))

	env, err := p.EnsureEnvironment(context.Background(), ws)
	require.NoError(t, err)
	require.NoError(t, p.RecordStamp(ws, env))

	again, err := p.EnsureEnvironment(context.Background(), ws)
	require.NoError(t, err)
	assert.True(t, again.Fresh)
}

func TestProvisioner_ManifestChangeInvalidatesStamp(t *testing.T) {
	p := newTestProvisioner(t)
	ws := testWorkspace(t, fakeInterpreter(t))

	env, err := p.EnsureEnvironment(context.Background(), ws)
	require.NoError(t, err)
	require.NoError(t, p.RecordStamp(ws, env))

	require.NoError(t, os.WriteFile(ws.ManifestPath(), []byte("dash==2.9.3\npandas==2.0.0\n"), 0o644))

	again, err := p.EnsureEnvironment(context.Background(), ws)
	require.NoError(t, err)
	assert.False(t, again.Fresh)
}

func TestProvisioner_FreshlyCreatedIsNeverFresh(t *testing.T) {
	p := newTestProvisioner(t)
	ws := testWorkspace(t, fakeInterpreter(t))

	env, err := p.EnsureEnvironment(context.Background(), ws)
	require.NoError(t, err)
	require.NoError(t, p.RecordStamp(ws, env))

	// Simulate the user deleting the environment while the stamp survives.
	require.NoError(t, os.RemoveAll(ws.EnvPath()))

	again, err := p.EnsureEnvironment(context.Background(), ws)
	require.NoError(t, err)
	assert.True(t, again.Created)
	assert.False(t, again.Fresh)
}
