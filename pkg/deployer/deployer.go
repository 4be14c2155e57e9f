package deployer

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/alekulyn/limo/pkg/dialect"
	"github.com/alekulyn/limo/pkg/entry"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/logging"
	"github.com/alekulyn/limo/pkg/orderfile"
	"github.com/alekulyn/limo/pkg/profile"
	"github.com/alekulyn/limo/pkg/tags"
	"github.com/alekulyn/limo/pkg/tree"
	"github.com/alekulyn/limo/pkg/types"
)

// StateFileName is the tree snapshot inside the state dir.
const StateFileName = "loadorder.json"

// Options configures New.
type Options struct {
	Name    string
	Dialect *dialect.Dialect
	// FS defaults to the OS filesystem.
	FS types.FS
	// TargetDir holds the dialect's external config file.
	TargetDir string
	// StateDir holds the deployer's own files.
	StateDir string
	// DataDir, when set, is scanned for entry files on load.
	DataDir string
	// Logger defaults to the "deployer" component logger.
	Logger *zerolog.Logger
}

// Deployer keeps a load order and its files in sync.
type Deployer struct {
	name      string
	dialect   *dialect.Dialect
	fs        types.FS
	targetDir string
	stateDir  string
	dataDir   string

	tree     *tree.Tree[*entry.Entry]
	nextID   int
	index    *tags.Index
	profiles *profile.Store
	logger   zerolog.Logger
}

// New creates a deployer and loads its state. When the state dir has no
// state file the load order is bootstrapped from the external file, which
// must exist.
func New(opts Options) (*Deployer, error) {
	if opts.Name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "deployer name cannot be empty")
	}
	if opts.Dialect == nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "deployer %q has no dialect", opts.Name)
	}
	if opts.TargetDir == "" || opts.StateDir == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "deployer %q needs a target dir and a state dir", opts.Name)
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	d := &Deployer{
		name:      opts.Name,
		dialect:   opts.Dialect,
		fs:        fsys,
		targetDir: opts.TargetDir,
		stateDir:  opts.StateDir,
		dataDir:   opts.DataDir,
		tree:      tree.New[*entry.Entry](),
	}
	if opts.Logger != nil {
		d.logger = *opts.Logger
	} else {
		d.logger = logging.GetLogger("deployer")
	}
	d.logger = d.logger.With().Str("deployer", opts.Name).Str("dialect", opts.Dialect.Name).Logger()

	if err := fsys.MkdirAll(opts.StateDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to create state dir %s", opts.StateDir)
	}
	store, err := profile.Open(fsys, opts.StateDir, []string{StateFileName, tags.FileName})
	if err != nil {
		return nil, err
	}
	d.profiles = store

	if err := d.Load(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Deployer) Name() string {
	return d.name
}

func (d *Deployer) Dialect() *dialect.Dialect {
	return d.dialect
}

func (d *Deployer) TargetDir() string {
	return d.targetDir
}

func (d *Deployer) StateDir() string {
	return d.stateDir
}

// Tree exposes the load order for read-only traversal. Mutate it through
// the Deployer so the files stay in sync.
func (d *Deployer) Tree() *tree.Tree[*entry.Entry] {
	return d.tree
}

// ConfigPath is the external file the deployer writes.
func (d *Deployer) ConfigPath() string {
	return filepath.Join(d.targetDir, d.dialect.ConfigFile)
}

func (d *Deployer) statePath() string {
	return filepath.Join(d.stateDir, StateFileName)
}

func (d *Deployer) tagsPath() string {
	return filepath.Join(d.stateDir, tags.FileName)
}

// Load discards the in-memory tree and reads it again from disk.
func (d *Deployer) Load() error {
	defer logging.LogOperationStart(d.logger, "load")()

	d.tree.Clear()
	d.nextID = 0

	exists, err := filesystem.Exists(d.fs, d.statePath())
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", d.statePath())
	}
	dirty := false
	if exists {
		if err := d.readState(); err != nil {
			return err
		}
	} else {
		if err := d.bootstrap(); err != nil {
			return err
		}
		dirty = true
	}

	if d.dataDir != "" {
		changed, err := d.reconcile()
		if err != nil {
			return err
		}
		dirty = dirty || changed
	}

	if err := d.loadTags(); err != nil {
		return err
	}
	d.index = tags.Build(d.items())

	if dirty {
		if err := d.writeState(); err != nil {
			return err
		}
		if err := tags.WriteSidecar(d.fs, d.tagsPath(), d.items()); err != nil {
			return err
		}
	}
	d.logger.Debug().Int("entries", d.tree.Len()).Bool("bootstrapped", !exists).Msg("Loaded load order")
	return nil
}

func (d *Deployer) bootstrap() error {
	lines, err := orderfile.Read(d.fs, d.ConfigPath())
	if err != nil {
		return err
	}
	parsed := orderfile.Parse(lines, d.dialect)
	for _, l := range parsed {
		e := entry.NewMod(l.Name, "", d.allocID(), l.Enabled)
		e.SetManualTags(l.Tags)
		if _, err := d.tree.Emplace(d.tree.Root(), e); err != nil {
			return err
		}
	}
	d.logger.Info().Int("entries", len(parsed)).Str("file", d.ConfigPath()).Msg("Bootstrapped load order from external file")
	return nil
}

// reconcile adds entry files found in the data dir and drops mods whose
// file is gone. It reports whether the tree changed.
func (d *Deployer) reconcile() (bool, error) {
	dirEntries, err := d.fs.ReadDir(d.dataDir)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileRead, "failed to scan data dir %s", d.dataDir)
	}
	present := map[string]bool{}
	var found []string
	for _, de := range dirEntries {
		if de.IsDir() || !d.dialect.Accepts(de.Name()) {
			continue
		}
		present[de.Name()] = true
		found = append(found, de.Name())
	}

	changed := false
	for _, h := range d.tree.Traversal(d.tree.Root()) {
		e, _ := d.tree.Payload(h)
		if e.IsSeparator() || present[e.Name] {
			continue
		}
		if _, err := d.tree.Remove(d.tree.Parent(h), h); err != nil {
			return false, err
		}
		d.logger.Info().Str("entry", e.Name).Msg("Dropped entry missing from data dir")
		changed = true
	}
	for _, name := range found {
		if _, ok := d.HandleByName(name); ok {
			continue
		}
		e := entry.NewMod(name, "", d.allocID(), d.dialect.NewEntriesEnabled)
		if _, err := d.tree.Emplace(d.tree.Root(), e); err != nil {
			return false, err
		}
		d.logger.Info().Str("entry", name).Msg("Added entry found in data dir")
		changed = true
	}
	return changed, nil
}

// loadTags applies the sidecar, when there is one, and derives automatic
// tags for entries it does not cover.
func (d *Deployer) loadTags() error {
	side, found, err := tags.ReadSidecar(d.fs, d.tagsPath())
	if err != nil {
		return err
	}
	for _, e := range d.items() {
		if e.IsSeparator() {
			continue
		}
		stored, known := side[e.Name]
		if !found || !known {
			e.SetAutoTags(d.dialect.AutoTags(e.Name))
			continue
		}
		var manual, auto []string
		for _, t := range stored {
			if d.dialect.IsAutoTag(t) {
				auto = append(auto, t)
			} else {
				manual = append(manual, t)
			}
		}
		e.SetManualTags(manual)
		e.SetAutoTags(auto)
	}
	return nil
}

func (d *Deployer) allocID() int {
	id := d.nextID
	d.nextID++
	return id
}

// items returns the live payloads in load order.
func (d *Deployer) items() []*entry.Entry {
	return d.tree.TraversalItems(d.tree.Root())
}
