package limo

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alekulyn/limo/pkg/deployer"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/logging"
	"github.com/alekulyn/limo/pkg/ui/view"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "list [deployer]",
		Short:             MsgListShort,
		GroupID:           "order",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			if len(ws.Names()) == 0 {
				return a.message(cmd, MsgNoDeployers)
			}
			deployers, err := ws.Select(args)
			if err != nil {
				return err
			}
			for _, d := range deployers {
				if err := a.render(cmd, view.NewLoadOrder(d)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newEnableCmd(a *app, enable bool) *cobra.Command {
	use, short, msg := "enable", MsgEnableShort, MsgEnabled
	if !enable {
		use, short, msg = "disable", MsgDisableShort, MsgDisabled
	}
	return &cobra.Command{
		Use:               use + " <deployer> <entry>",
		Short:             short,
		GroupID:           "order",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			e, err := resolveMod(d, args[1])
			if err != nil {
				return err
			}
			if err := d.SetModStatus(e.ID, enable); err != nil {
				return err
			}
			return a.message(cmd, msg, e.Name)
		},
	}
}

func newSwapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "swap <deployer> <i> <j>",
		Short:             MsgSwapShort,
		GroupID:           "order",
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseInt(args[1], "i")
			if err != nil {
				return err
			}
			j, err := parseInt(args[2], "j")
			if err != nil {
				return err
			}
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			if err := d.SwapChild(i, j); err != nil {
				return err
			}
			return a.message(cmd, MsgSwapped, i, j)
		},
	}
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "move <deployer> <entry> <before|after|into> <target>",
		Short:             MsgMoveShort,
		Long:              MsgMoveLong,
		Example:           MsgMoveExample,
		GroupID:           "order",
		Args:              cobra.ExactArgs(4),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			placement, err := deployer.ParsePlacement(args[2])
			if err != nil {
				return err
			}
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			h, e, err := resolveEntry(d, args[1])
			if err != nil {
				return err
			}
			if e == nil {
				return errors.New(errors.ErrInvalidInput, "the top level cannot be moved")
			}
			target, _, err := resolveEntry(d, args[3])
			if err != nil {
				return err
			}
			if err := d.Move(h, target, placement); err != nil {
				return err
			}
			return a.message(cmd, MsgMoved, e.Name, placement, args[3])
		},
	}
}

func newSortCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "sort <deployer>",
		Short:             MsgSortShort,
		GroupID:           "order",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			if err := d.SortByConflicts(); err != nil {
				return err
			}
			return a.message(cmd, MsgSorted, d.Name())
		},
	}
}

func newDeployCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "deploy <deployer>",
		Short:             MsgDeployShort,
		GroupID:           "order",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			if err := d.Write(); err != nil {
				return err
			}
			return a.message(cmd, MsgDeployed, d.ConfigPath())
		},
	}
}

func newUndeployCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "undeploy <deployer>",
		Short:             MsgUndeployShort,
		GroupID:           "order",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			logger := logging.GetLogger("cmd.undeploy")
			done := logging.LogOperationStart(logger, "undeploy")
			defer done()
			if err := d.Undeploy(); err != nil {
				return err
			}
			return a.message(cmd, MsgUndeployed, filepath.Base(d.ConfigPath()))
		},
	}
}

func newSeparatorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "separator",
		Short:   MsgSeparatorShort,
		GroupID: "order",
	}

	var parent string
	position := -1
	add := &cobra.Command{
		Use:               "add <deployer> <name>",
		Short:             MsgSeparatorAdd,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			p := d.Tree().Root()
			if parent != "" {
				if p, _, err = resolveSeparator(d, parent); err != nil {
					return err
				}
			}
			pos := position
			if pos < 0 {
				pos = d.Tree().ChildCount(p)
			}
			if _, err := d.AddSeparator(args[1], p, pos); err != nil {
				return err
			}
			return a.message(cmd, MsgSeparatorAdded, args[1])
		},
	}
	add.Flags().StringVar(&parent, "parent", "", MsgFlagParent)
	add.Flags().IntVar(&position, "position", -1, MsgFlagPosition)

	remove := &cobra.Command{
		Use:               "remove <deployer> <separator>",
		Short:             MsgSeparatorRemove,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			h, e, err := resolveSeparator(d, args[1])
			if err != nil {
				return err
			}
			if err := d.RemoveEntry(h); err != nil {
				return err
			}
			return a.message(cmd, MsgSeparatorRemoved, e.Name)
		},
	}

	rename := &cobra.Command{
		Use:               "rename <deployer> <separator> <new-name>",
		Short:             MsgSeparatorRename,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			h, e, err := resolveSeparator(d, args[1])
			if err != nil {
				return err
			}
			old := e.Name
			if err := d.Rename(h, args[2]); err != nil {
				return err
			}
			return a.message(cmd, MsgSeparatorRenamed, old, args[2])
		},
	}

	cmd.AddCommand(add, remove, rename)
	return cmd
}

func newTagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tag",
		Short:   MsgTagShort,
		GroupID: "order",
	}
	for _, adding := range []bool{true, false} {
		use, short := "add", MsgTagAdd
		if !adding {
			use, short = "remove", MsgTagRemove
		}
		cmd.AddCommand(&cobra.Command{
			Use:               use + " <deployer> <entry> <tag>",
			Short:             short,
			Args:              cobra.ExactArgs(3),
			ValidArgsFunction: deployerNamesCompletion(a),
			RunE: func(cmd *cobra.Command, args []string) error {
				d, err := a.open(args[0])
				if err != nil {
					return err
				}
				e, err := resolveMod(d, args[1])
				if err != nil {
					return err
				}
				if adding {
					if err := d.AddManualTag(e.ID, args[2]); err != nil {
						return err
					}
					return a.message(cmd, MsgTagAdded, e.Name, args[2])
				}
				if err := d.RemoveManualTag(e.ID, args[2]); err != nil {
					return err
				}
				return a.message(cmd, MsgTagRemoved, args[2], e.Name)
			},
		})
	}
	return cmd
}

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "tags <deployer>",
		Short:             MsgTagsShort,
		GroupID:           "order",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, view.NewTags(d))
		},
	}
}

func newActionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "action <deployer> <action-id> <position>",
		Short:             MsgActionShort,
		GroupID:           "order",
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInt(args[1], "action-id")
			if err != nil {
				return err
			}
			pos, err := parseInt(args[2], "position")
			if err != nil {
				return err
			}
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			if err := d.ApplyModAction(id, pos); err != nil {
				return err
			}
			name := args[1]
			if act, ok := d.Dialect().Action(id); ok {
				name = act.Name
			}
			return a.message(cmd, MsgActionApplied, name, pos)
		},
	}
}

func newActionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "actions <deployer>",
		Short:             MsgActionsShort,
		GroupID:           "order",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: deployerNamesCompletion(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.open(args[0])
			if err != nil {
				return err
			}
			return a.render(cmd, view.NewActions(d))
		},
	}
}

func newDeployersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "deployers",
		Short:   MsgDeployersShort,
		GroupID: "manage",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			return a.render(cmd, &view.Deployers{Deployers: ws.Summaries()})
		},
	}
}

func newDialectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "dialects",
		Short:   MsgDialectsShort,
		GroupID: "manage",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			out := &view.Dialects{Dialects: []view.Dialect{}}
			for _, d := range ws.Dialects().Items() {
				out.Dialects = append(out.Dialects, view.Dialect{
					Name:        d.Name,
					Description: d.Description,
					ConfigFile:  d.ConfigFile,
				})
			}
			return a.render(cmd, out)
		},
	}
}
