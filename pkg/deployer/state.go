package deployer

import (
	"encoding/json"

	"github.com/alekulyn/limo/pkg/entry"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/tree"
)

const stateVersion = 1

type stateFile struct {
	Version int            `json:"version"`
	NextID  int            `json:"next_id"`
	Entries []entry.Record `json:"entries"`
}

func (d *Deployer) readState() error {
	path := d.statePath()
	data, err := d.fs.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
	}
	var st stateFile
	if err := json.Unmarshal(data, &st); err != nil {
		return errors.Wrapf(err, errors.ErrStateCorrupt, "state file %s is not valid JSON", path).
			WithDetail("path", path)
	}
	if st.Version != stateVersion {
		return errors.Newf(errors.ErrStateCorrupt, "state file %s has unsupported version %d", path, st.Version).
			WithDetail("path", path)
	}

	d.nextID = st.NextID
	var unassigned []*entry.Entry
	if err := d.buildFromRecords(d.tree.Root(), st.Entries, &unassigned); err != nil {
		return err
	}
	for _, e := range unassigned {
		e.ID = d.allocID()
	}
	return nil
}

// buildFromRecords appends records under parent. Mods without a usable ID
// are collected so they can be numbered after the highest stored ID is
// known.
func (d *Deployer) buildFromRecords(parent tree.Handle, records []entry.Record, unassigned *[]*entry.Entry) error {
	for _, r := range records {
		e := entry.FromRecord(r)
		if !e.IsSeparator() {
			if e.ID < 0 {
				*unassigned = append(*unassigned, e)
			} else if e.ID >= d.nextID {
				d.nextID = e.ID + 1
			}
		}
		h, err := d.tree.Emplace(parent, e)
		if err != nil {
			return err
		}
		if len(r.Children) > 0 {
			if !e.IsSeparator() {
				return errors.Newf(errors.ErrStateCorrupt, "mod %q has children in %s", e.Name, d.statePath())
			}
			if err := d.buildFromRecords(h, r.Children, unassigned); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Deployer) records(parent tree.Handle) []entry.Record {
	children := d.tree.Children(parent)
	out := make([]entry.Record, 0, len(children))
	for _, h := range children {
		e, _ := d.tree.Payload(h)
		r := e.ToRecord()
		if d.tree.ChildCount(h) > 0 {
			r.Children = d.records(h)
		}
		out = append(out, r)
	}
	return out
}

func (d *Deployer) writeState() error {
	st := stateFile{
		Version: stateVersion,
		NextID:  d.nextID,
		Entries: d.records(d.tree.Root()),
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode load order")
	}
	data = append(data, '\n')
	if err := filesystem.WriteFileAtomic(d.fs, d.statePath(), data); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", d.statePath())
	}
	return nil
}
