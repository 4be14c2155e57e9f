package config

import (
	"slices"
	"strings"

	"github.com/alekulyn/limo/pkg/dialect"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/paths"
)

// Config is the decoded configuration.
type Config struct {
	Logging   LoggingConfig    `koanf:"logging"`
	Output    OutputConfig     `koanf:"output"`
	Deployers []DeployerConfig `koanf:"deployers"`
	Dialects  []dialect.Spec   `koanf:"dialects"`
}

type LoggingConfig struct {
	Level string `koanf:"level"`
}

type OutputConfig struct {
	Format string `koanf:"format"`
}

// DeployerConfig describes one managed load order. StateDir defaults to
// the deployer's directory under the XDG data dir; DataDir is optional and
// enables reconciliation against the files actually installed.
type DeployerConfig struct {
	Name      string `koanf:"name"`
	Dialect   string `koanf:"dialect"`
	TargetDir string `koanf:"target_dir"`
	StateDir  string `koanf:"state_dir"`
	DataDir   string `koanf:"data_dir"`
}

var logLevels = []string{"warn", "info", "debug", "trace"}

// Validate checks the fields that can be checked without touching the
// filesystem or compiling dialects.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.Logging.Level) {
		return errors.Newf(errors.ErrConfigInvalid, "unknown log level %q", c.Logging.Level).
			WithDetail("valid", logLevels)
	}

	seen := make(map[string]bool, len(c.Deployers))
	for i, d := range c.Deployers {
		if err := d.Validate(); err != nil {
			if le, ok := err.(*errors.LimoError); ok {
				return le.WithDetail("index", i)
			}
			return err
		}
		if seen[d.Name] {
			return errors.Newf(errors.ErrConfigInvalid, "deployer %q is declared twice", d.Name)
		}
		seen[d.Name] = true
	}

	for i, s := range c.Dialects {
		if strings.TrimSpace(s.Name) == "" {
			return errors.New(errors.ErrConfigInvalid, "dialect has no name").WithDetail("index", i)
		}
	}
	return nil
}

func (d DeployerConfig) Validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return errors.New(errors.ErrConfigInvalid, "deployer has no name")
	case strings.ContainsAny(d.Name, `/\`):
		return errors.Newf(errors.ErrConfigInvalid, "deployer name %q must not contain path separators", d.Name)
	case d.Dialect == "":
		return errors.Newf(errors.ErrConfigInvalid, "deployer %q has no dialect", d.Name)
	case d.TargetDir == "":
		return errors.Newf(errors.ErrConfigInvalid, "deployer %q has no target_dir", d.Name)
	}
	return nil
}

// Deployer returns the named deployer section.
func (c *Config) Deployer(name string) (DeployerConfig, bool) {
	for _, d := range c.Deployers {
		if d.Name == name {
			return d, true
		}
	}
	return DeployerConfig{}, false
}

// DeployerNames lists the configured deployers in declaration order.
func (c *Config) DeployerNames() []string {
	names := make([]string, len(c.Deployers))
	for i, d := range c.Deployers {
		names[i] = d.Name
	}
	return names
}

func expandDirs(d *DeployerConfig) {
	d.TargetDir = paths.ExpandHome(d.TargetDir)
	d.StateDir = paths.ExpandHome(d.StateDir)
	d.DataDir = paths.ExpandHome(d.DataDir)
}
