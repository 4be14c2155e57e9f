package tags

import (
	"encoding/json"
	"sort"

	"github.com/alekulyn/limo/pkg/entry"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/types"
)

// FileName is the sidecar's name inside a deployer state dir.
const FileName = "tags.json"

// Record is one sidecar element.
type Record struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// ReadSidecar loads name -> tags from path. found is false when the file
// does not exist.
func ReadSidecar(fsys types.FS, path string) (tags map[string][]string, found bool, err error) {
	exists, err := filesystem.Exists(fsys, path)
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", path)
	}
	if !exists {
		return nil, false, nil
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, errors.Wrapf(err, errors.ErrStateCorrupt, "tag file %s is not valid JSON", path).
			WithDetail("path", path)
	}
	tags = make(map[string][]string, len(records))
	for _, r := range records {
		tags[r.Name] = append(tags[r.Name], r.Tags...)
	}
	return tags, true, nil
}

// Records snapshots the tags of every mod in entries, sorted by name.
func Records(entries []*entry.Entry) []Record {
	out := make([]Record, 0, len(entries))
	for _, e := range entries {
		if e.IsSeparator() {
			continue
		}
		out = append(out, Record{Name: e.Name, Tags: e.Tags()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// WriteSidecar rewrites path with the tags of entries.
func WriteSidecar(fsys types.FS, path string, entries []*entry.Entry) error {
	data, err := json.MarshalIndent(Records(entries), "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode tags")
	}
	data = append(data, '\n')
	if err := filesystem.WriteFileAtomic(fsys, path, data); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}
