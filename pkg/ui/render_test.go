// pkg/ui/render_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: afero memory filesystem via testutil
// PURPOSE: Test rendering a real deployer in every output format

package ui_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekulyn/limo/pkg/deployer"
	"github.com/alekulyn/limo/pkg/dialect"
	"github.com/alekulyn/limo/pkg/entry"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/testutil"
	"github.com/alekulyn/limo/pkg/ui"
	"github.com/alekulyn/limo/pkg/ui/text"
	"github.com/alekulyn/limo/pkg/ui/view"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func openmw(t *testing.T) *deployer.Deployer {
	t.Helper()
	env := testutil.NewEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteTarget("openmw.cfg", testutil.OpenMWConfig)
	dl, err := dialect.Builtins().Get(dialect.OpenMWPlugins)
	require.NoError(t, err)
	d, err := deployer.New(deployer.Options{
		Name:      "openmw",
		Dialect:   dl,
		FS:        env.FS,
		TargetDir: env.TargetDir,
		StateDir:  env.StateDir,
	})
	require.NoError(t, err)
	return d
}

func withSeparator(t *testing.T, d *deployer.Deployer) {
	t.Helper()
	sep, err := d.AddSeparator("Late", d.Tree().Root(), 3)
	require.NoError(t, err)
	for _, name := range []string{"grass.esp", "e.omwaddon"} {
		h, ok := d.HandleByName(name)
		require.True(t, ok)
		require.NoError(t, d.Move(h, sep, deployer.Into))
	}
}

func TestNewLoadOrder(t *testing.T) {
	d := openmw(t)
	withSeparator(t, d)

	lo := view.NewLoadOrder(d)
	assert.Equal(t, "openmw", lo.Deployer)
	assert.Equal(t, dialect.OpenMWPlugins, lo.Dialect)
	assert.Equal(t, "Default", lo.Profile)
	assert.Equal(t, 6, lo.Mods)
	require.Len(t, lo.Entries, 5)

	sep := lo.Entries[3]
	assert.True(t, sep.IsSeparator())
	require.Len(t, sep.Children, 2)
	assert.Equal(t, "grass.esp", sep.Children[0].Name)
	assert.Equal(t, 1, sep.Children[0].Depth)
	assert.Equal(t, []string{dialect.TagGroundcover}, sep.Children[0].ManualTags)
	assert.Equal(t, []string{dialect.TagESPlugin}, sep.Children[0].AutoTags)

	flat := lo.Flatten()
	require.Len(t, flat, 7)
	for i, row := range flat {
		assert.Equal(t, i, row.Position)
	}
	names := make([]string, len(flat))
	for i, row := range flat {
		names[i] = row.Name
	}
	assert.Equal(t, []string{"Morrowind.esm", "c.esp", "f.omwgame", "Late", "grass.esp", "e.omwaddon", "g.omwscripts"}, names)
}

func TestNewActions(t *testing.T) {
	acts := view.NewActions(openmw(t))
	require.Len(t, acts.Actions, 2)
	assert.Equal(t, dialect.ActionAddGroundcover, acts.Actions[0].ID)
	assert.Equal(t, []int{0, 1, 2, 5}, acts.Actions[0].Positions)
	assert.Equal(t, []int{3}, acts.Actions[1].Positions)
}

func TestTextRenderer(t *testing.T) {
	d := openmw(t)
	withSeparator(t, d)
	require.NoError(t, d.SetModStatus(1, false))

	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(view.NewLoadOrder(d)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "openmw (openmw-plugins) profile Default, 6 mods", lines[0])
	assert.Equal(t, "  0 [x] Morrowind.esm #0 (ES Plugin)", lines[1])
	assert.Equal(t, "  1 [ ] c.esp #1 (ES Plugin)", lines[2])
	assert.Equal(t, "  3 -- Late --", lines[4])
	assert.Equal(t, "  4   [x] grass.esp #3 (ES Plugin, Groundcover)", lines[5])
	assert.Equal(t, "  6 [x] g.omwscripts #4 (OpenMW, Scripts)", lines[7])
}

func TestTextRendererLists(t *testing.T) {
	d := openmw(t)
	_, err := d.AddProfile("Alt", -1)
	require.NoError(t, err)

	var buf bytes.Buffer
	r, err := text.New(&buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(view.NewProfiles(d)))
	assert.Equal(t, "* 0 Default\n  1 Alt\n", buf.String())

	buf.Reset()
	require.NoError(t, r.RenderResult(view.NewActions(d)))
	assert.Equal(t, "0 Add Groundcover Tag: 0 1 2 5\n1 Remove Groundcover Tag: 3\n", buf.String())

	buf.Reset()
	require.NoError(t, r.RenderError(fmt.Errorf("boom")))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestFormatRowSeparatorDepth(t *testing.T) {
	row := &view.Row{Position: 12, Name: "Nested", Kind: entry.KindSeparator.String(), Depth: 2}
	assert.Equal(t, " 12     -- Nested --", text.FormatRow(row))
}

func TestJSONRenderer(t *testing.T) {
	d := openmw(t)
	withSeparator(t, d)

	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(view.NewLoadOrder(d)))

	var got struct {
		Deployer string `json:"deployer"`
		Entries  []struct {
			Name     string `json:"name"`
			Kind     string `json:"kind"`
			Children []struct {
				Name       string   `json:"name"`
				ManualTags []string `json:"manual_tags"`
			} `json:"children"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "openmw", got.Deployer)
	require.Len(t, got.Entries, 5)
	assert.Equal(t, "separator", got.Entries[3].Kind)
	require.Len(t, got.Entries[3].Children, 2)
	assert.Equal(t, []string{"Groundcover"}, got.Entries[3].Children[0].ManualTags)

	buf.Reset()
	require.NoError(t, r.RenderError(errors.New(errors.ErrNotFound, "gone").WithDetail("deployer", "x")))
	var errObj map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &errObj))
	assert.Equal(t, "NOT_FOUND", errObj["code"])
	assert.Equal(t, map[string]interface{}{"deployer": "x"}, errObj["details"])
}

func TestTerminalRenderer(t *testing.T) {
	d := openmw(t)
	withSeparator(t, d)

	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(view.NewLoadOrder(d)))

	out := buf.String()
	assert.Contains(t, out, "openmw")
	for _, name := range []string{"Morrowind.esm", "Late", "grass.esp", "Groundcover", "g.omwscripts"} {
		assert.Contains(t, out, name)
	}
	assert.Less(t, strings.Index(out, "Late"), strings.Index(out, "grass.esp"))

	buf.Reset()
	require.NoError(t, r.RenderResult(view.NewProfiles(d)))
	assert.Contains(t, buf.String(), "Default")

	buf.Reset()
	require.NoError(t, r.RenderMessage("done"))
	assert.Contains(t, buf.String(), "done")
}
