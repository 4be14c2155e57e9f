package deployer

import (
	"regexp"

	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/orderfile"
	"github.com/alekulyn/limo/pkg/tags"
)

// UndeployBackupSuffix is appended to the external file name for the copy
// Undeploy takes before it first strips the managed lines.
const UndeployBackupSuffix = ".undeploy_backup"

// commit derives tags, rebuilds the index and writes every file.
func (d *Deployer) commit() error {
	d.refreshTags()
	return d.write()
}

func (d *Deployer) refreshTags() {
	items := d.items()
	for _, e := range items {
		if !e.IsSeparator() {
			e.SetAutoTags(d.dialect.AutoTags(e.Name))
		}
	}
	d.index = tags.Build(items)
}

// write persists the state file, the tag sidecar and the external file, in
// that order. The first failure is returned and later files are left as
// they were.
func (d *Deployer) write() error {
	if err := d.writeState(); err != nil {
		return err
	}
	if err := tags.WriteSidecar(d.fs, d.tagsPath(), d.items()); err != nil {
		return err
	}
	return d.writeExternal()
}

func (d *Deployer) writeExternal() error {
	lines, err := orderfile.Read(d.fs, d.ConfigPath())
	if err != nil {
		return err
	}
	lines = orderfile.Render(lines, d.dialect, d.items())
	if err := orderfile.Write(d.fs, d.ConfigPath(), lines); err != nil {
		return err
	}
	d.logger.Debug().Str("file", d.ConfigPath()).Msg("Wrote external config")
	return nil
}

// Write persists everything without changing the load order. Deployers
// call it themselves after each mutation; it is exported for callers that
// want to push the current state to a freshly reset external file.
func (d *Deployer) Write() error {
	return d.commit()
}

// Undeploy removes every managed line from the external file. The first
// call keeps a backup of the file next to it.
func (d *Deployer) Undeploy() error {
	path := d.ConfigPath()
	backup := path + UndeployBackupSuffix

	exists, err := filesystem.Exists(d.fs, backup)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", backup)
	}
	lines, err := orderfile.Read(d.fs, path)
	if err != nil {
		return err
	}
	if !exists {
		if err := filesystem.CopyFile(d.fs, path, backup); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to back up %s", path)
		}
		d.logger.Info().Str("backup", backup).Msg("Backed up external config")
	}

	patterns := make([]*regexp.Regexp, 0, len(d.dialect.Blocks))
	for _, b := range d.dialect.Blocks {
		patterns = append(patterns, b.Match)
	}
	if err := orderfile.Write(d.fs, path, orderfile.RemoveMatching(lines, patterns...)); err != nil {
		return err
	}
	d.logger.Info().Str("file", path).Msg("Undeployed load order")
	return nil
}
