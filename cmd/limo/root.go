package limo

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alekulyn/limo/internal/version"
	"github.com/alekulyn/limo/pkg/config"
	"github.com/alekulyn/limo/pkg/deployer"
	"github.com/alekulyn/limo/pkg/entry"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/filesystem"
	"github.com/alekulyn/limo/pkg/logging"
	"github.com/alekulyn/limo/pkg/paths"
	"github.com/alekulyn/limo/pkg/profile"
	"github.com/alekulyn/limo/pkg/tree"
	"github.com/alekulyn/limo/pkg/types"
	"github.com/alekulyn/limo/pkg/ui"
	"github.com/alekulyn/limo/pkg/workspace"
)

// app carries the global flags and the lazily loaded state shared by all
// commands of one invocation.
type app struct {
	verbosity  int
	configFile string
	format     string

	fs    types.FS
	paths paths.Paths
	cfg   *config.Config
	ws    *workspace.Workspace
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	a := &app{fs: filesystem.NewOS()}

	rootCmd := &cobra.Command{
		Use:     "limo",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.CommandPath()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "order", Title: "LOAD ORDER:"})
	rootCmd.AddGroup(&cobra.Group{ID: "manage", Title: "PROFILES AND CONFIG:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newEnableCmd(a, true))
	rootCmd.AddCommand(newEnableCmd(a, false))
	rootCmd.AddCommand(newSwapCmd(a))
	rootCmd.AddCommand(newMoveCmd(a))
	rootCmd.AddCommand(newSortCmd(a))
	rootCmd.AddCommand(newSeparatorCmd(a))
	rootCmd.AddCommand(newTagCmd(a))
	rootCmd.AddCommand(newTagsCmd(a))
	rootCmd.AddCommand(newActionCmd(a))
	rootCmd.AddCommand(newActionsCmd(a))
	rootCmd.AddCommand(newDeployCmd(a))
	rootCmd.AddCommand(newUndeployCmd(a))

	rootCmd.AddCommand(newDeployersCmd(a))
	rootCmd.AddCommand(newDialectsCmd(a))
	rootCmd.AddCommand(newProfileCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := installTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func (a *app) getPaths() (paths.Paths, error) {
	if a.paths == nil {
		p, err := paths.New()
		if err != nil {
			return nil, err
		}
		a.paths = p
	}
	return a.paths, nil
}

// configPath is the --config flag, or the default user config file.
func (a *app) configPath() (string, error) {
	if a.configFile != "" {
		return paths.ExpandHome(a.configFile), nil
	}
	p, err := a.getPaths()
	if err != nil {
		return "", err
	}
	return p.ConfigFile(), nil
}

func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	path, err := a.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	// The configured level applies only when no -v flag was given.
	if a.verbosity == 0 {
		zerolog.SetGlobalLevel(logging.VerbosityLevel(logging.LevelVerbosity(cfg.Logging.Level)))
	}
	a.cfg = cfg
	return cfg, nil
}

func (a *app) workspace() (*workspace.Workspace, error) {
	if a.ws != nil {
		return a.ws, nil
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	p, err := a.getPaths()
	if err != nil {
		return nil, err
	}
	ws, err := workspace.New(cfg, p, a.fs)
	if err != nil {
		return nil, err
	}
	a.ws = ws
	return ws, nil
}

func (a *app) open(name string) (*deployer.Deployer, error) {
	ws, err := a.workspace()
	if err != nil {
		return nil, err
	}
	return ws.Open(name)
}

// renderer picks the --format flag, then the configured format.
func (a *app) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	name := a.format
	if name == "" {
		if cfg, err := a.config(); err == nil {
			name = cfg.Output.Format
		}
	}
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

func (a *app) render(cmd *cobra.Command, result interface{}) error {
	r, err := a.renderer(cmd)
	if err != nil {
		return err
	}
	return r.RenderResult(result)
}

func (a *app) message(cmd *cobra.Command, format string, args ...interface{}) error {
	r, err := a.renderer(cmd)
	if err != nil {
		return err
	}
	return r.RenderMessage(fmt.Sprintf(format, args...))
}

// resolveEntry finds an entry by mod ID or, failing that, by name. "/"
// names the top level.
func resolveEntry(d *deployer.Deployer, arg string) (tree.Handle, *entry.Entry, error) {
	if arg == "/" {
		return d.Tree().Root(), nil, nil
	}
	if id, err := strconv.Atoi(arg); err == nil {
		if h, ok := d.HandleOf(id); ok {
			e, _ := d.Tree().Payload(h)
			return h, e, nil
		}
	}
	if h, ok := d.HandleByName(arg); ok {
		e, _ := d.Tree().Payload(h)
		return h, e, nil
	}
	return tree.Handle{}, nil, errors.Newf(errors.ErrNotFound, "no entry %q in %s", arg, d.Name()).
		WithDetail("deployer", d.Name())
}

// resolveMod is resolveEntry restricted to mods.
func resolveMod(d *deployer.Deployer, arg string) (*entry.Entry, error) {
	_, e, err := resolveEntry(d, arg)
	if err != nil {
		return nil, err
	}
	if e == nil || e.IsSeparator() {
		return nil, errors.Newf(errors.ErrInvalidInput, "%q is not a mod", arg)
	}
	return e, nil
}

// resolveSeparator is resolveEntry restricted to separators.
func resolveSeparator(d *deployer.Deployer, arg string) (tree.Handle, *entry.Entry, error) {
	h, e, err := resolveEntry(d, arg)
	if err != nil {
		return tree.Handle{}, nil, err
	}
	if e == nil || !e.IsSeparator() {
		return tree.Handle{}, nil, errors.Newf(errors.ErrInvalidInput, "%q is not a separator", arg)
	}
	return h, e, nil
}

// resolveProfile finds a profile by ID or name.
func resolveProfile(d *deployer.Deployer, arg string) (profile.Profile, error) {
	id, numeric := strconv.Atoi(arg)
	for _, p := range d.Profiles() {
		if (numeric == nil && p.ID == id) || p.Name == arg {
			return p, nil
		}
	}
	return profile.Profile{}, errors.Newf(errors.ErrProfileNotFound, "no profile %q in %s", arg, d.Name()).
		WithDetail("known", d.ProfileNames())
}

func parseInt(arg, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.Newf(errors.ErrInvalidInput, "%s must be a number, got %q", what, arg)
	}
	return n, nil
}

// deployerNamesCompletion completes the first argument with configured
// deployer names.
func deployerNamesCompletion(a *app) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		cfg, err := a.config()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return cfg.DeployerNames(), cobra.ShellCompDirectiveNoFileComp
	}
}
