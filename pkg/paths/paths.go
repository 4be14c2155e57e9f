package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/types"
)

// Environment variable names
const (
	EnvConfigDir  = "LIMO_CONFIG_DIR"
	EnvDataDir    = "LIMO_DATA_DIR"
	EnvStateDir   = "LIMO_STATE_DIR"
	EnvConfigFile = "LIMO_CONFIG"
	EnvHome       = "HOME"
)

// Fixed names inside the XDG directories.
const (
	AppDirName     = "limo"
	ConfigFileName = "config.toml"
	DeployersDir   = "deployers"
	LogFileName    = "limo.log"
)

// Paths resolves every location limo reads or writes.
type Paths interface {
	types.Pather
	ConfigFile() string
	DeployerStateDir(name string) string
	LogFilePath() string
}

type paths struct {
	config     string
	configFile string
	data       string
	state      string
}

// New resolves the directories from the environment.
func New() (Paths, error) {
	p := &paths{
		config: dirFromEnv(EnvConfigDir, xdg.ConfigHome),
		data:   dirFromEnv(EnvDataDir, xdg.DataHome),
		state:  dirFromEnv(EnvStateDir, xdg.StateHome),
	}
	p.configFile = filepath.Join(p.config, ConfigFileName)
	if f := os.Getenv(EnvConfigFile); f != "" {
		p.configFile = ExpandHome(f)
	}

	for _, dir := range []*string{&p.config, &p.data, &p.state, &p.configFile} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve %s", *dir)
		}
		*dir = abs
	}
	return p, nil
}

func dirFromEnv(env, xdgBase string) string {
	if v := os.Getenv(env); v != "" {
		return ExpandHome(v)
	}
	return filepath.Join(xdgBase, AppDirName)
}

func (p *paths) ConfigDir() string {
	return p.config
}

func (p *paths) DataDir() string {
	return p.data
}

func (p *paths) StateDir() string {
	return p.state
}

// ConfigFile is the user config file, which may not exist.
func (p *paths) ConfigFile() string {
	return p.configFile
}

// DeployerStateDir is the default state dir of the named deployer.
func (p *paths) DeployerStateDir(name string) string {
	return filepath.Join(p.data, DeployersDir, name)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.state, LogFileName)
}

// ExpandHome expands a leading ~ or ~/ to the home directory. ~user forms
// are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}
	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
