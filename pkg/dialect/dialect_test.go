// pkg/dialect/dialect_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test built-in dialect parsing, formatting, tagging and actions

package dialect_test

import (
	"testing"

	"github.com/alekulyn/limo/pkg/dialect"
	"github.com/alekulyn/limo/pkg/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtin(t *testing.T, name string) *dialect.Dialect {
	t.Helper()
	d, err := dialect.Builtins().Get(name)
	require.NoError(t, err)
	return d
}

func TestBuiltinsAreValid(t *testing.T) {
	reg := dialect.Builtins()
	assert.Equal(t, []string{"lines", "openmw-archives", "openmw-plugins", "plugins-txt"}, reg.List())
	for _, d := range reg.Items() {
		assert.NoError(t, d.Validate(), d.Name)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		line    string
		want    dialect.Line
		ok      bool
	}{
		{"openmw content", dialect.OpenMWPlugins, "content=Morrowind.esm", dialect.Line{Name: "Morrowind.esm", Enabled: true}, true},
		{"openmw groundcover", dialect.OpenMWPlugins, "groundcover=grass.esp",
			dialect.Line{Name: "grass.esp", Enabled: true, Tags: []string{dialect.TagGroundcover}}, true},
		{"openmw mixed case ext", dialect.OpenMWPlugins, "content=d.EsP", dialect.Line{Name: "d.EsP", Enabled: true}, true},
		{"openmw other key", dialect.OpenMWPlugins, "data=/games/mw", dialect.Line{}, false},
		{"openmw not a plugin", dialect.OpenMWPlugins, "content=readme.txt", dialect.Line{}, false},
		{"archive", dialect.OpenMWArchives, "fallback-archive=Morrowind.bsa", dialect.Line{Name: "Morrowind.bsa", Enabled: true}, true},
		{"plugins enabled", dialect.PluginsTxt, "*Skyrim.esm", dialect.Line{Name: "Skyrim.esm", Enabled: true}, true},
		{"plugins disabled", dialect.PluginsTxt, "Mod.esp", dialect.Line{Name: "Mod.esp", Enabled: false}, true},
		{"plugins crlf", dialect.PluginsTxt, "*Mod.esp\r", dialect.Line{Name: "Mod.esp", Enabled: true}, true},
		{"plugins comment", dialect.PluginsTxt, "# Mod.esp", dialect.Line{}, false},
		{"lines enabled", dialect.Lines, "some mod", dialect.Line{Name: "some mod", Enabled: true}, true},
		{"lines disabled", dialect.Lines, "# other", dialect.Line{Name: "other", Enabled: false}, true},
		{"lines blank", dialect.Lines, "   ", dialect.Line{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := builtin(t, tt.dialect).ParseLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatLine(t *testing.T) {
	on := entry.NewMod("a.esp", "", 0, true)
	off := entry.NewMod("b.esp", "", 1, false)

	p := builtin(t, dialect.PluginsTxt)
	assert.Equal(t, "*a.esp", p.FormatLine(p.Blocks[0], on))
	assert.Equal(t, "b.esp", p.FormatLine(p.Blocks[0], off))

	o := builtin(t, dialect.OpenMWPlugins)
	assert.Equal(t, "content=a.esp", o.FormatLine(o.Blocks[0], on))
	assert.Equal(t, "groundcover=a.esp", o.FormatLine(o.Blocks[1], on))

	l := builtin(t, dialect.Lines)
	assert.Equal(t, "#b.esp", l.FormatLine(l.Blocks[0], off))
}

func TestBlockSelection(t *testing.T) {
	o := builtin(t, dialect.OpenMWPlugins)
	content, ground := o.Blocks[0], o.Blocks[1]

	plain := entry.NewMod("a.esp", "", 0, true)
	grass := entry.NewMod("grass.esp", "", 1, true)
	grass.AddManualTag(dialect.TagGroundcover)
	off := entry.NewMod("off.esp", "", 2, false)

	assert.True(t, content.Selects(plain))
	assert.False(t, ground.Selects(plain))
	assert.False(t, content.Selects(grass))
	assert.True(t, ground.Selects(grass))
	assert.False(t, content.Selects(off))
	assert.False(t, content.Selects(entry.NewSeparator("sep")))
}

func TestAutoTagsAreOrderIndependent(t *testing.T) {
	o := builtin(t, dialect.OpenMWPlugins)

	assert.Equal(t, []string{dialect.TagESPlugin}, o.AutoTags("Morrowind.esm"))
	assert.Equal(t, []string{dialect.TagOpenMW}, o.AutoTags("e.omwaddon"))
	assert.Equal(t, []string{dialect.TagOpenMW, dialect.TagScripts}, o.AutoTags("g.omwscripts"))
	assert.Empty(t, o.AutoTags("notes.txt"))
	assert.True(t, o.IsAutoTag(dialect.TagScripts))
	assert.False(t, o.IsAutoTag(dialect.TagGroundcover))
	assert.True(t, o.IsToggleTag(dialect.TagGroundcover))
}

func TestConflictClassAndActions(t *testing.T) {
	o := builtin(t, dialect.OpenMWPlugins)

	script := entry.NewMod("s.omwscripts", "", 0, true)
	script.SetAutoTags(o.AutoTags(script.Name))
	grass := entry.NewMod("grass.esp", "", 1, true)
	grass.AddManualTag(dialect.TagGroundcover)
	plain := entry.NewMod("a.esp", "", 2, true)

	assert.Equal(t, 0, o.ConflictClass(script))
	assert.Equal(t, 1, o.ConflictClass(grass))
	assert.Equal(t, 2, o.ConflictClass(plain))
	assert.Equal(t, 2, o.ConflictClass(entry.NewSeparator("s")))

	assert.Equal(t, []int{}, o.ValidActions(script))
	assert.Equal(t, []int{dialect.ActionRemoveGroundcover}, o.ValidActions(grass))
	assert.Equal(t, []int{dialect.ActionAddGroundcover}, o.ValidActions(plain))

	_, ok := o.Action(7)
	assert.False(t, ok)
}

func TestCloneIsIndependent(t *testing.T) {
	o := builtin(t, dialect.OpenMWPlugins)
	c := o.Clone()
	c.ToggleTags[0] = "changed"
	c.Actions[0].ExcludeTags[0] = "changed"
	c.BootstrapTags["groundcover"] = "changed"

	assert.Equal(t, dialect.TagGroundcover, o.ToggleTags[0])
	assert.Equal(t, dialect.TagScripts, o.Actions[0].ExcludeTags[0])
	assert.Equal(t, dialect.TagGroundcover, o.BootstrapTags["groundcover"])
}
