package limo

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alekulyn/limo/internal/version"
	"github.com/alekulyn/limo/pkg/config"
	"github.com/alekulyn/limo/pkg/dialect"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/ui/view"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Short:   MsgProfileShort,
		GroupID: "manage",
	}

	list := &cobra.Command{
		Use:               "list <deployer>",
		Short:             MsgProfileList,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, view.NewProfiles(d))
		},
	}

	var from string
	add := &cobra.Command{
		Use:               "add <deployer> <name>",
		Short:             MsgProfileAdd,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			copyFrom := -1
			if from != "" {
				src, err := resolveProfile(d, from)
				if err != nil {
					return err
				}
				copyFrom = src.ID
			}
			p, err := d.AddProfile(args[1], copyFrom)
			if err != nil {
				return err
			}
			return a.message(cmd, MsgProfileAdded, p.Name, p.ID)
		},
	}
	add.Flags().StringVar(&from, "from", "", MsgFlagFrom)

	switchCmd := &cobra.Command{
		Use:               "switch <deployer> <profile>",
		Short:             MsgProfileSwitch,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			p, err := resolveProfile(d, args[1])
			if err != nil {
				return err
			}
			if err := d.SetProfile(p.ID); err != nil {
				return err
			}
			return a.message(cmd, MsgProfileSwitched, p.Name)
		},
	}

	remove := &cobra.Command{
		Use:               "remove <deployer> <profile>",
		Short:             MsgProfileRemove,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			p, err := resolveProfile(d, args[1])
			if err != nil {
				return err
			}
			if err := d.RemoveProfile(p.ID); err != nil {
				return err
			}
			return a.message(cmd, MsgProfileRemoved, p.Name)
		},
	}

	rename := &cobra.Command{
		Use:               "rename <deployer> <profile> <new-name>",
		Short:             MsgProfileRename,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			p, err := resolveProfile(d, args[1])
			if err != nil {
				return err
			}
			if err := d.RenameProfile(p.ID, args[2]); err != nil {
				return err
			}
			return a.message(cmd, MsgProfileRenamed, p.Name, args[2])
		},
	}

	cmd.AddCommand(list, add, switchCmd, remove, rename)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "manage",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInit,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configPath()
			if err != nil {
				return err
			}
			if err := config.InitConfig(a.fs, path, force); err != nil {
				return err
			}
			return a.message(cmd, MsgConfigWritten, path)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)

	var dc config.DeployerConfig
	addDeployer := &cobra.Command{
		Use:   "add-deployer <name>",
		Short: MsgConfigAddDeployer,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configPath()
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return err
			}
			dialects, err := dialect.NewRegistry(cfg.Dialects)
			if err != nil {
				return err
			}
			if !dialects.Has(dc.Dialect) {
				return errors.Newf(errors.ErrDialectNotFound, "unknown dialect %q", dc.Dialect).
					WithDetail("known", dialects.List())
			}
			dc.Name = args[0]
			if err := config.AddDeployer(a.fs, path, dc); err != nil {
				return err
			}
			return a.message(cmd, MsgDeployerAdded, dc.Name, path)
		},
	}
	addDeployer.Flags().StringVar(&dc.Dialect, "dialect", "", MsgFlagDialect)
	addDeployer.Flags().StringVar(&dc.TargetDir, "target-dir", "", MsgFlagTarget)
	addDeployer.Flags().StringVar(&dc.StateDir, "state-dir", "", MsgFlagState)
	addDeployer.Flags().StringVar(&dc.DataDir, "data-dir", "", MsgFlagData)
	_ = addDeployer.MarkFlagRequired("dialect")
	_ = addDeployer.MarkFlagRequired("target-dir")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: MsgConfigPath,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configPath()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.AddCommand(initCmd, addDeployer, pathCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(limo completion bash)

Zsh:
  $ limo completion zsh > "${fpath[1]}/_limo"

Fish:
  $ limo completion fish | source

PowerShell:
  PS> limo completion powershell | Out-String | Invoke-Expression
`,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Run: func(cmd *cobra.Command, args []string) {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				err = cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				err = cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			if err != nil {
				log.Error().Err(err).Str("shell", args[0]).Msg("Failed to generate completion")
			}
		},
	}
}
