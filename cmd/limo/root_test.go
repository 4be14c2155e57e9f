// cmd/limo/root_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem in temp directories
// PURPOSE: Drive the CLI end to end against an openmw.cfg

package limo

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/paths"
	"github.com/alekulyn/limo/pkg/testutil"
)

type cliEnv struct {
	root       string
	configFile string
	targetDir  string
}

func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	root := t.TempDir()
	env := &cliEnv{
		root:       root,
		configFile: filepath.Join(root, "config", "config.toml"),
		targetDir:  filepath.Join(root, "openmw"),
	}
	t.Setenv(paths.EnvConfigDir, filepath.Join(root, "config"))
	t.Setenv(paths.EnvDataDir, filepath.Join(root, "data"))
	t.Setenv(paths.EnvStateDir, filepath.Join(root, "state"))
	t.Setenv(paths.EnvConfigFile, env.configFile)
	t.Setenv("NO_COLOR", "1")

	require.NoError(t, os.MkdirAll(filepath.Dir(env.configFile), 0755))
	require.NoError(t, os.MkdirAll(env.targetDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(env.targetDir, "openmw.cfg"), []byte(testutil.OpenMWConfig), 0644))

	cfg := "[[deployers]]\n" +
		"name = \"openmw\"\n" +
		"dialect = \"openmw-plugins\"\n" +
		"target_dir = \"" + filepath.ToSlash(env.targetDir) + "\"\n"
	require.NoError(t, os.WriteFile(env.configFile, []byte(cfg), 0644))
	return env
}

func (e *cliEnv) openMWConfig(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.targetDir, "openmw.cfg"))
	require.NoError(t, err)
	return string(data)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--format", "text"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "openmw (openmw-plugins)")
	assert.Contains(t, out, "[x] Morrowind.esm #0")
	assert.Contains(t, out, "[x] grass.esp #3 (ES Plugin, Groundcover)")
	assert.Contains(t, out, "[x] g.omwscripts #4 (OpenMW, Scripts)")
}

func TestList_JSON(t *testing.T) {
	setupCLI(t)

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--format", "json", "list", "openmw"})
	require.NoError(t, cmd.Execute())

	var got struct {
		Deployer string `json:"deployer"`
		Mods     int    `json:"mods"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "openmw", got.Deployer)
	assert.Equal(t, 6, got.Mods)
}

func TestList_NoDeployers(t *testing.T) {
	env := setupCLI(t)
	require.NoError(t, os.WriteFile(env.configFile, nil, 0644))

	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Equal(t, MsgNoDeployers+"\n", out)
}

func TestEnableDisable(t *testing.T) {
	env := setupCLI(t)

	out, err := run(t, "disable", "openmw", "c.esp")
	require.NoError(t, err)
	assert.Equal(t, "Disabled c.esp\n", out)
	assert.NotContains(t, env.openMWConfig(t), "content=c.esp")

	out, err = run(t, "list", "openmw")
	require.NoError(t, err)
	assert.Contains(t, out, "[ ] c.esp #1")

	_, err = run(t, "enable", "openmw", "1")
	require.NoError(t, err)
	assert.Contains(t, env.openMWConfig(t), "content=c.esp")
}

func TestEnable_Errors(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "enable", "missing", "c.esp")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, err = run(t, "enable", "openmw", "nope.esp")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, err = run(t, "swap", "openmw", "a", "1")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = run(t, "move", "openmw", "/", "before", "c.esp")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSeparatorAndMove(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "separator", "add", "openmw", "Late")
	require.NoError(t, err)

	out, err := run(t, "move", "openmw", "e.omwaddon", "into", "Late")
	require.NoError(t, err)
	assert.Equal(t, "Moved e.omwaddon into Late\n", out)

	out, err = run(t, "list", "openmw")
	require.NoError(t, err)
	assert.Contains(t, out, "-- Late --")
	assert.Contains(t, out, "  [x] e.omwaddon #5")

	_, err = run(t, "separator", "rename", "openmw", "Late", "Last")
	require.NoError(t, err)
	_, err = run(t, "separator", "remove", "openmw", "Last")
	require.NoError(t, err)

	out, err = run(t, "list", "openmw")
	require.NoError(t, err)
	assert.NotContains(t, out, "Last")
	assert.Contains(t, out, "e.omwaddon #5")

	_, err = run(t, "separator", "remove", "openmw", "c.esp")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTagsAndActions(t *testing.T) {
	env := setupCLI(t)

	out, err := run(t, "tag", "add", "openmw", "c.esp", "Groundcover")
	require.NoError(t, err)
	assert.Equal(t, "Tagged c.esp with Groundcover\n", out)
	assert.Contains(t, env.openMWConfig(t), "groundcover=c.esp")

	out, err = run(t, "tags", "openmw")
	require.NoError(t, err)
	assert.Contains(t, out, "Scripts: 1")

	out, err = run(t, "actions", "openmw")
	require.NoError(t, err)
	assert.Contains(t, out, "Add Groundcover Tag")
}

func TestProfiles(t *testing.T) {
	env := setupCLI(t)

	out, err := run(t, "profile", "add", "openmw", "Alt")
	require.NoError(t, err)
	assert.Equal(t, "Added profile Alt (1)\n", out)

	out, err = run(t, "profile", "list", "openmw")
	require.NoError(t, err)
	assert.Equal(t, "* 0 Default\n  1 Alt\n", out)

	_, err = run(t, "profile", "switch", "openmw", "Alt")
	require.NoError(t, err)
	_, err = run(t, "disable", "openmw", "c.esp")
	require.NoError(t, err)

	_, err = run(t, "profile", "switch", "openmw", "0")
	require.NoError(t, err)
	assert.Contains(t, env.openMWConfig(t), "content=c.esp")

	_, err = run(t, "profile", "remove", "openmw", "Default")
	assert.Error(t, err)

	_, err = run(t, "profile", "switch", "openmw", "Nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
}

func TestConfigCommands(t *testing.T) {
	env := setupCLI(t)

	out, err := run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, env.configFile+"\n", out)

	_, err = run(t, "config", "init")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	lines := filepath.Join(env.root, "lines")
	_, err = run(t, "config", "add-deployer", "lines", "--dialect", "nope", "--target-dir", lines)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDialectNotFound))

	_, err = run(t, "config", "add-deployer", "lines", "--dialect", "lines", "--target-dir", lines)
	require.NoError(t, err)

	out, err = run(t, "deployers")
	require.NoError(t, err)
	assert.Contains(t, out, "openmw\topenmw-plugins")
	assert.Contains(t, out, "lines\tlines")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "limo version")
}

func TestHelpTopics(t *testing.T) {
	out, err := run(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "  dialects\n")
	assert.Contains(t, out, "  load-order\n")
	assert.Contains(t, out, "  --format\n")

	out, err = run(t, "help", "format")
	require.NoError(t, err)
	assert.Contains(t, out, "NO_COLOR")

	_, err = run(t, "help", "nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
