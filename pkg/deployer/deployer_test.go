// pkg/deployer/deployer_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: afero memory filesystem via testutil
// PURPOSE: Test deployer loading, persistence and the external file format

package deployer_test

import (
	"testing"

	"github.com/alekulyn/limo/pkg/deployer"
	"github.com/alekulyn/limo/pkg/dialect"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cfg = "openmw.cfg"

func mustDialect(t *testing.T, name string) *dialect.Dialect {
	t.Helper()
	d, err := dialect.Builtins().Get(name)
	require.NoError(t, err)
	return d
}

func open(t *testing.T, env *testutil.Environment, dialectName string, withData bool) *deployer.Deployer {
	t.Helper()
	opts := deployer.Options{
		Name:      "plugins",
		Dialect:   mustDialect(t, dialectName),
		FS:        env.FS,
		TargetDir: env.TargetDir,
		StateDir:  env.StateDir,
	}
	if withData {
		opts.DataDir = env.DataDir
	}
	d, err := deployer.New(opts)
	require.NoError(t, err)
	return d
}

func openmwEnv(t *testing.T) (*testutil.Environment, *deployer.Deployer) {
	t.Helper()
	env := testutil.NewEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTarget(cfg, testutil.OpenMWConfig)
	return env, open(t, env, dialect.OpenMWPlugins, false)
}

var bootOrder = []string{"Morrowind.esm", "c.esp", "f.omwgame", "grass.esp", "g.omwscripts", "e.omwaddon"}

func TestBootstrapFromExternalFile(t *testing.T) {
	env, d := openmwEnv(t)

	assert.Equal(t, bootOrder, d.ModNames())
	assert.Equal(t, 6, d.NumMods())

	grass, ok := d.EntryByID(3)
	require.True(t, ok)
	assert.Equal(t, "grass.esp", grass.Name)
	assert.True(t, grass.HasTag(dialect.TagGroundcover))
	assert.True(t, grass.HasTag(dialect.TagESPlugin))

	assert.Contains(t, env.StateFile(deployer.StateFileName), `"version": 1`)
	assert.Contains(t, env.StateFile("tags.json"), `"grass.esp"`)
	assert.Equal(t, testutil.OpenMWConfig, env.ReadTarget(cfg), "loading must not touch the external file")
}

func TestBootstrapRequiresExternalFile(t *testing.T) {
	env := testutil.NewEnvironment(t, testutil.EnvMemoryOnly)

	_, err := deployer.New(deployer.Options{
		Name:      "plugins",
		Dialect:   mustDialect(t, dialect.OpenMWPlugins),
		FS:        env.FS,
		TargetDir: env.TargetDir,
		StateDir:  env.StateDir,
	})

	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigMissing))
}

func TestNewValidatesOptions(t *testing.T) {
	_, err := deployer.New(deployer.Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = deployer.New(deployer.Options{Name: "x", Dialect: mustDialect(t, dialect.Lines)})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRoundTripThroughStateFile(t *testing.T) {
	env, d := openmwEnv(t)
	sep, err := d.AddSeparator("Landscape", d.Tree().Root(), 1)
	require.NoError(t, err)
	grass, _ := d.HandleOf(3)
	require.NoError(t, d.Move(grass, sep, deployer.Into))
	require.NoError(t, d.SetModStatus(1, false))

	again := open(t, env, dialect.OpenMWPlugins, false)

	assert.Equal(t, d.Entries(), again.Entries())
	h, ok := again.HandleByName("grass.esp")
	require.True(t, ok)
	parent, _ := again.Tree().Payload(again.Tree().Parent(h))
	assert.Equal(t, "Landscape", parent.Name)
}

func TestSwapStatusWriteScenario(t *testing.T) {
	env, d := openmwEnv(t)

	require.NoError(t, d.SwapChild(1, 2))
	require.NoError(t, d.SetModStatus(1, false))

	assert.Equal(t, []string{"Morrowind.esm", "f.omwgame", "c.esp", "grass.esp", "g.omwscripts", "e.omwaddon"}, d.ModNames())
	env.AssertTargetLines(cfg, []string{
		`data="/games/Morrowind/Data Files"`,
		"fallback-archive=Morrowind.bsa",
		"fallback-archive=b.bsa",
		"content=Morrowind.esm",
		"content=f.omwgame",
		"content=g.omwscripts",
		"content=e.omwaddon",
		"fallback-archive=a.bsa",
		"groundcover=grass.esp",
		"encoding=win1252",
	})

	c, _ := d.EntryByID(1)
	assert.False(t, c.Enabled())
}

func TestWriteIsIdempotent(t *testing.T) {
	env, d := openmwEnv(t)

	require.NoError(t, d.Write())
	first := env.ReadTarget(cfg)
	firstState := env.StateFile(deployer.StateFileName)
	require.NoError(t, d.Write())

	assert.Equal(t, first, env.ReadTarget(cfg))
	assert.Equal(t, firstState, env.StateFile(deployer.StateFileName))
}

func TestSetModStatusErrors(t *testing.T) {
	_, d := openmwEnv(t)

	assert.True(t, errors.IsErrorCode(d.SetModStatus(99, true), errors.ErrNotFound))
	assert.True(t, errors.IsErrorCode(d.SwapChild(0, 40), errors.ErrInvalidInput))
}

func TestCorruptStateFile(t *testing.T) {
	env, _ := openmwEnv(t)
	require.NoError(t, env.FS.WriteFile(env.StateDir+"/"+deployer.StateFileName, []byte("{"), 0644))

	_, err := deployer.New(deployer.Options{
		Name: "plugins", Dialect: mustDialect(t, dialect.OpenMWPlugins),
		FS: env.FS, TargetDir: env.TargetDir, StateDir: env.StateDir,
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrStateCorrupt))
}

func TestTagsPersistAndAreDeterministic(t *testing.T) {
	env, d := openmwEnv(t)
	before := d.TagMap()

	require.NoError(t, d.AddManualTag(0, "Favourite"))
	assert.True(t, errors.IsErrorCode(d.AddManualTag(0, dialect.TagScripts), errors.ErrInvalidInput))
	require.NoError(t, d.SortByConflicts())

	assert.Equal(t, before, d.TagMap())
	assert.Equal(t, []string{dialect.TagOpenMW, dialect.TagScripts}, d.TagMap()["g.omwscripts"])
	assert.Equal(t, 1, d.AutoTagCounts()[dialect.TagGroundcover])
	assert.Equal(t, 3, d.AutoTagCounts()[dialect.TagOpenMW])

	again := open(t, env, dialect.OpenMWPlugins, false)
	m, _ := again.EntryByID(0)
	assert.Equal(t, []string{"Favourite"}, m.Mod.ManualTags)
	assert.Equal(t, []string{dialect.TagESPlugin}, m.Mod.AutoTags)

	require.NoError(t, again.RemoveManualTag(0, "Favourite"))
	m, _ = again.EntryByID(0)
	assert.Empty(t, m.Mod.ManualTags)
}

func TestPluginsTxtWithDataDir(t *testing.T) {
	env := testutil.NewEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTarget("plugins.txt", testutil.PluginsTxt)
	env.AddDataFiles("Skyrim.esm", "Update.esm", "SkyUI.esp", "New.esp", "readme.txt")

	d := open(t, env, dialect.PluginsTxt, true)

	assert.Equal(t, []string{"Skyrim.esm", "Update.esm", "SkyUI.esp", "New.esp"}, d.ModNames())
	h, ok := d.HandleByName("New.esp")
	require.True(t, ok)
	e, _ := d.Tree().Payload(h)
	assert.False(t, e.Enabled())

	require.NoError(t, d.SetModStatus(e.ID, true))
	env.AssertTargetLines("plugins.txt", []string{
		"# This file is used by the game to keep track of your downloaded content.",
		"*Skyrim.esm",
		"*Update.esm",
		"*SkyUI.esp",
		"*New.esp",
	})

	env.RemoveDataFile("SkyUI.esp")
	again := open(t, env, dialect.PluginsTxt, true)
	assert.Equal(t, []string{"Skyrim.esm", "Update.esm", "New.esp"}, again.ModNames())
}

func TestLinesDialect(t *testing.T) {
	env := testutil.NewEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTarget("loadorder.txt", testutil.LoadOrderTxt)
	d := open(t, env, dialect.Lines, false)

	require.Equal(t, []string{"alpha", "beta", "gamma"}, d.ModNames())
	require.NoError(t, d.SwapChild(0, 2))

	assert.Equal(t, "gamma\n#beta\nalpha\n\n", env.ReadTarget("loadorder.txt"))
}

func TestUndeploy(t *testing.T) {
	env, d := openmwEnv(t)

	require.NoError(t, d.Undeploy())

	env.AssertTargetLines(cfg, []string{
		`data="/games/Morrowind/Data Files"`,
		"fallback-archive=Morrowind.bsa",
		"fallback-archive=b.bsa",
		"fallback-archive=a.bsa",
		"encoding=win1252",
	})
	assert.Equal(t, testutil.OpenMWConfig, env.ReadTarget(cfg+deployer.UndeployBackupSuffix))

	require.NoError(t, d.Undeploy())
	assert.Equal(t, testutil.OpenMWConfig, env.ReadTarget(cfg+deployer.UndeployBackupSuffix), "backup is taken once")

	require.NoError(t, d.Write())
	env.AssertPrefixedLines(cfg, "content=", []string{
		"content=Morrowind.esm", "content=c.esp", "content=f.omwgame", "content=g.omwscripts", "content=e.omwaddon",
	})
}
