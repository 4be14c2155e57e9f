// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Environment variables only
// PURPOSE: Test XDG path resolution and overrides

package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnvOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(root, "cfg"))
	t.Setenv(EnvDataDir, filepath.Join(root, "data"))
	t.Setenv(EnvStateDir, filepath.Join(root, "state"))
	t.Setenv(EnvConfigFile, "")

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "cfg"), p.ConfigDir())
	assert.Equal(t, filepath.Join(root, "cfg", "config.toml"), p.ConfigFile())
	assert.Equal(t, filepath.Join(root, "data", "deployers", "openmw"), p.DeployerStateDir("openmw"))
	assert.Equal(t, filepath.Join(root, "state", "limo.log"), p.LogFilePath())
}

func TestNew_ConfigFileOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvConfigFile, "~/limo.toml")

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "limo.toml"), p.ConfigFile())
}

func TestNew_DefaultsUseAppDir(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvStateDir, "")

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, "limo", filepath.Base(p.ConfigDir()))
	assert.Equal(t, "limo", filepath.Base(p.DataDir()))
	assert.Equal(t, "limo", filepath.Base(p.StateDir()))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"~", home},
		{"~/games", filepath.Join(home, "games")},
		{"~other/x", "~other/x"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandHome(tt.in), tt.in)
	}
}
