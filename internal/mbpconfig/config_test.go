package mbpconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mbp/internal/projector"
)

func TestDefaultMatchesProjectorPackageVars(t *testing.T) {
	cfg := Default()
	require.Equal(t, projector.MaxVars, cfg.MaxVars)
	require.Equal(t, projector.DebugAssertions, cfg.DebugAssertions)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mbp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_vars: 10\ndebug_assertions: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.MaxVars)
	require.True(t, cfg.DebugAssertions)
}

func TestApplySetsProjectorPackageVars(t *testing.T) {
	oldMax, oldDebug := projector.MaxVars, projector.DebugAssertions
	defer func() { projector.MaxVars, projector.DebugAssertions = oldMax, oldDebug }()

	Config{MaxVars: 7, DebugAssertions: true}.Apply()
	require.Equal(t, 7, projector.MaxVars)
	require.True(t, projector.DebugAssertions)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
