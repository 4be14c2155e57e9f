// pkg/tags/tags_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero memory filesystem
// PURPOSE: Test the tag index, conflict partitioning and the tag sidecar

package tags_test

import (
	"testing"

	"github.com/alekulyn/limo/pkg/entry"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mod(name string, id int, auto []string, manual ...string) *entry.Entry {
	e := entry.NewMod(name, "", id, true)
	e.SetAutoTags(auto)
	e.SetManualTags(manual)
	return e
}

func sample() []*entry.Entry {
	return []*entry.Entry{
		mod("Morrowind.esm", 0, []string{"ES Plugin"}),
		entry.NewSeparator("Scripts"),
		mod("a.omwscripts", 4, []string{"OpenMW", "Scripts"}),
		mod("grass.esp", 2, []string{"ES Plugin"}, "Groundcover"),
		mod("b.omwscripts", 3, []string{"OpenMW", "Scripts"}, "Groundcover"),
	}
}

func TestIndexQueries(t *testing.T) {
	ix := tags.Build(sample())

	assert.Equal(t, 5, ix.Len())
	assert.Equal(t, []int{2, 4}, ix.Positions("Scripts"))
	assert.Equal(t, []int{4, 3}, ix.Members("Scripts"))
	assert.Equal(t, []int{}, ix.Positions("missing"))
	assert.True(t, ix.Has("Groundcover", 3))
	assert.False(t, ix.Has("Groundcover", 0))
	assert.Equal(t, 2, ix.Count("ES Plugin"))
	assert.Equal(t, map[string]int{"ES Plugin": 2, "OpenMW": 2, "Scripts": 2, "Groundcover": 2}, ix.Counts())
	assert.Equal(t, []string{"ES Plugin", "Groundcover", "OpenMW", "Scripts"}, ix.Tags())
	assert.Equal(t, []string{"OpenMW", "Scripts"}, ix.TagMap()["a.omwscripts"])
	assert.NotContains(t, ix.TagMap(), "Scripts")
}

func TestPartitionFirstClassWins(t *testing.T) {
	ix := tags.Build(sample())

	got := ix.Partition([]string{"Scripts", "Groundcover"})

	assert.Equal(t, [][]int{{2, 4}, {3}, {0, 1}}, got)
}

func TestPartitionWithoutClasses(t *testing.T) {
	ix := tags.Build(sample())

	assert.Equal(t, [][]int{{0, 1, 2, 3, 4}}, ix.Partition(nil))
}

func TestSidecarRoundTrip(t *testing.T) {
	fsys := filesystem.NewMemory()
	path := "/state/tags.json"

	_, found, err := tags.ReadSidecar(fsys, path)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, tags.WriteSidecar(fsys, path, sample()))

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"name\": \"Morrowind.esm\"")
	assert.Equal(t, byte('\n'), data[len(data)-1])

	got, found, err := tags.ReadSidecar(fsys, path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, got, 4)
	assert.Equal(t, []string{"ES Plugin", "Groundcover"}, got["grass.esp"])
}

func TestRecordsSortedByName(t *testing.T) {
	records := tags.Records(sample())

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Morrowind.esm", "a.omwscripts", "b.omwscripts", "grass.esp"}, names)
}

func TestSidecarCorrupt(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.WriteFile("/tags.json", []byte("{not json"), 0644))

	_, _, err := tags.ReadSidecar(fsys, "/tags.json")
	assert.True(t, errors.IsErrorCode(err, errors.ErrStateCorrupt))
}
