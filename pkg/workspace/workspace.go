// Package workspace turns the configuration into live deployers.
//
// A Workspace compiles the configured dialects once and opens deployers on
// demand, so commands that touch a single load order do not pay for
// loading every other one.
package workspace

import (
	"strings"

	"github.com/alekulyn/limo/pkg/config"
	"github.com/alekulyn/limo/pkg/deployer"
	"github.com/alekulyn/limo/pkg/dialect"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/logging"
	"github.com/alekulyn/limo/pkg/paths"
	"github.com/alekulyn/limo/pkg/registry"
	"github.com/alekulyn/limo/pkg/types"
)

// Workspace owns the deployers declared in one configuration.
type Workspace struct {
	cfg      *config.Config
	paths    paths.Paths
	fs       types.FS
	dialects registry.Registry[*dialect.Dialect]
	open     map[string]*deployer.Deployer
}

// Summary describes a configured deployer without loading it.
type Summary struct {
	Name       string `json:"name"`
	Dialect    string `json:"dialect"`
	TargetDir  string `json:"target_dir"`
	ConfigFile string `json:"config_file"`
	StateDir   string `json:"state_dir"`
	DataDir    string `json:"data_dir,omitempty"`
}

// New compiles the configured dialects. fsys defaults to the OS filesystem.
func New(cfg *config.Config, p paths.Paths, fsys types.FS) (*Workspace, error) {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	dialects, err := dialect.NewRegistry(cfg.Dialects)
	if err != nil {
		return nil, err
	}
	for _, d := range cfg.Deployers {
		if !dialects.Has(d.Dialect) {
			return nil, errors.Newf(errors.ErrDialectNotFound, "deployer %q uses unknown dialect %q", d.Name, d.Dialect).
				WithDetail("known", dialects.List())
		}
	}
	return &Workspace{
		cfg:      cfg,
		paths:    p,
		fs:       fsys,
		dialects: dialects,
		open:     make(map[string]*deployer.Deployer),
	}, nil
}

// Dialects exposes the built-in and configured dialects.
func (w *Workspace) Dialects() registry.Registry[*dialect.Dialect] {
	return w.dialects
}

// Names lists the configured deployers in declaration order.
func (w *Workspace) Names() []string {
	return w.cfg.DeployerNames()
}

// Summaries describes every configured deployer.
func (w *Workspace) Summaries() []Summary {
	out := make([]Summary, 0, len(w.cfg.Deployers))
	for _, dc := range w.cfg.Deployers {
		d, _ := w.dialects.Get(dc.Dialect)
		s := Summary{
			Name:      dc.Name,
			Dialect:   dc.Dialect,
			TargetDir: dc.TargetDir,
			StateDir:  w.stateDir(dc),
			DataDir:   dc.DataDir,
		}
		if d != nil {
			s.ConfigFile = d.ConfigFile
		}
		out = append(out, s)
	}
	return out
}

// Open loads the named deployer, or returns the one already loaded.
// Trailing slashes from shell completion are ignored.
func (w *Workspace) Open(name string) (*deployer.Deployer, error) {
	name = normalizeName(name)
	if d, ok := w.open[name]; ok {
		return d, nil
	}
	dc, ok := w.cfg.Deployer(name)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "no deployer named %q", name).
			WithDetail("known", w.Names())
	}
	d, err := w.dialects.Get(dc.Dialect)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("workspace")
	logger.Debug().Str("deployer", dc.Name).Str("dialect", dc.Dialect).Msg("Opening deployer")

	dep, err := deployer.New(deployer.Options{
		Name:      dc.Name,
		Dialect:   d,
		FS:        w.fs,
		TargetDir: dc.TargetDir,
		StateDir:  w.stateDir(dc),
		DataDir:   dc.DataDir,
	})
	if err != nil {
		return nil, err
	}
	w.open[name] = dep
	return dep, nil
}

// Select opens the named deployers, or all of them when names is empty.
func (w *Workspace) Select(names []string) ([]*deployer.Deployer, error) {
	if len(names) == 0 {
		names = w.Names()
	}
	out := make([]*deployer.Deployer, 0, len(names))
	for _, n := range names {
		d, err := w.Open(n)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (w *Workspace) stateDir(dc config.DeployerConfig) string {
	if dc.StateDir != "" {
		return dc.StateDir
	}
	return w.paths.DeployerStateDir(dc.Name)
}

func normalizeName(name string) string {
	return strings.TrimRight(strings.TrimSpace(name), "/")
}
