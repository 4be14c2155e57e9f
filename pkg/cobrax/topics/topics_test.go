// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: fstest.MapFS
// PURPOSE: Test topic loading, lookup and the help command

package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alekulyn/limo/pkg/errors"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/profiles.md":      {Data: []byte("# Profiles\n\nSaved load orders")},
		"help/option-format.md": {Data: []byte("Format help")},
		"help/notes.txt":        {Data: []byte("plain notes")},
		"help/ignore.json":      {Data: []byte("{}")},
		"other/outside.md":      {Data: []byte("not a topic")},
	}
}

func TestLoad(t *testing.T) {
	m, err := Load(testFS(), "help", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes", "option-format", "profiles"}, m.Names())

	m, err = Load(testFS(), "help", Options{Extensions: []string{".txt"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, m.Names())

	_, err = Load(testFS(), "missing", Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileRead))
}

func TestGet(t *testing.T) {
	m, err := Load(testFS(), "help", Options{})
	require.NoError(t, err)

	tests := []struct {
		input  string
		want   string
		exists bool
	}{
		{"profiles", "profiles", true},
		{"option-format", "option-format", true},
		{"format", "option-format", true},
		{"--format", "option-format", true},
		{"-format", "option-format", true},
		{"-f", "", false},
		{"nonexistent", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, ok := m.Get(tt.input)
			assert.Equal(t, tt.exists, ok)
			if ok {
				assert.Equal(t, tt.want, topic.Name)
			}
		})
	}
}

func TestWriteList(t *testing.T) {
	m, err := Load(testFS(), "help", Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, m.WriteList(&out, "limo"))
	assert.Equal(t, "Available help topics:\n\nGeneral topics:\n  notes\n  profiles\n"+
		"\nOption topics:\n  --format\n\nUse 'limo help <topic>' to read about a specific topic.\n", out.String())

	empty, err := Load(fstest.MapFS{"help/x.json": {Data: nil}}, "help", Options{})
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, empty.WriteList(&out, "limo"))
	assert.Equal(t, "No help topics available.\n", out.String())
}

type upperRenderer struct{}

func (upperRenderer) Render(content, ext string) string { return ext + ":" + content }

func TestInstall(t *testing.T) {
	m, err := Load(testFS(), "help", Options{Renderer: upperRenderer{}})
	require.NoError(t, err)

	root := &cobra.Command{Use: "limo", SilenceErrors: true, SilenceUsage: true}
	root.AddCommand(&cobra.Command{Use: "list", Short: "Show the load order", Run: func(*cobra.Command, []string) {}})
	m.Install(root)

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(append([]string{"help"}, args...))
		err := root.Execute()
		return out.String(), err
	}

	out, err := run("profiles")
	require.NoError(t, err)
	assert.Equal(t, ".md:# Profiles\n\nSaved load orders", out)

	out, err = run("topics")
	require.NoError(t, err)
	assert.Contains(t, out, "--format")

	out, err = run("list")
	require.NoError(t, err)
	assert.Contains(t, out, "Show the load order")

	helpCmd, _, err := root.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestPlainAndGlamourPassThrough(t *testing.T) {
	assert.Equal(t, "x", PlainRenderer{}.Render("x", ".md"))
	assert.Equal(t, "plain", NewGlamourRenderer().Render("plain", ".txt"))
}
