package limo

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort         = "Manage hierarchical mod load orders"
	MsgListShort         = "Show the load order of one or all deployers"
	MsgDeployersShort    = "List the configured deployers"
	MsgDialectsShort     = "List the available dialects"
	MsgEnableShort       = "Enable a mod"
	MsgDisableShort      = "Disable a mod"
	MsgSwapShort         = "Swap two top-level entries by position"
	MsgMoveShort         = "Move an entry before, after or into another"
	MsgSortShort         = "Sort each group by conflict class"
	MsgDeployShort       = "Rewrite the external file from the stored load order"
	MsgUndeployShort     = "Remove managed lines from the external file"
	MsgSeparatorShort    = "Add, remove or rename separators"
	MsgSeparatorAdd      = "Add a separator"
	MsgSeparatorRemove   = "Remove a separator, keeping its entries"
	MsgSeparatorRename   = "Rename a separator"
	MsgTagShort          = "Add or remove manual tags"
	MsgTagAdd            = "Add a manual tag to a mod"
	MsgTagRemove         = "Remove a manual tag from a mod"
	MsgTagsShort         = "Count mods per tag"
	MsgActionShort       = "Apply a mod action to the entry at a position"
	MsgActionsShort      = "List mod actions and where they apply"
	MsgProfileShort      = "Manage load order profiles"
	MsgProfileList       = "List profiles"
	MsgProfileAdd        = "Add a profile"
	MsgProfileSwitch     = "Switch to a profile"
	MsgProfileRemove     = "Remove a profile"
	MsgProfileRename     = "Rename a profile"
	MsgConfigShort       = "Create or edit the configuration file"
	MsgConfigInit        = "Write a commented configuration template"
	MsgConfigAddDeployer = "Add a deployer to the configuration file"
	MsgConfigPath        = "Print the configuration file path"
	MsgVersionShort      = "Print version information"
	MsgCompletionShort   = "Generate shell completion script"

	// Status messages
	MsgEnabled          = "Enabled %s"
	MsgDisabled         = "Disabled %s"
	MsgSwapped          = "Swapped positions %d and %d"
	MsgMoved            = "Moved %s %s %s"
	MsgSorted           = "Sorted %s"
	MsgDeployed         = "Wrote %s"
	MsgUndeployed       = "Removed managed lines from %s (backup kept)"
	MsgSeparatorAdded   = "Added separator %s"
	MsgSeparatorRemoved = "Removed separator %s"
	MsgSeparatorRenamed = "Renamed separator %s to %s"
	MsgTagAdded         = "Tagged %s with %s"
	MsgTagRemoved       = "Removed tag %s from %s"
	MsgActionApplied    = "Applied %s to position %d"
	MsgProfileAdded     = "Added profile %s (%d)"
	MsgProfileSwitched  = "Switched to profile %s"
	MsgProfileRemoved   = "Removed profile %s"
	MsgProfileRenamed   = "Renamed profile %s to %s"
	MsgConfigWritten    = "Wrote %s"
	MsgDeployerAdded    = "Added deployer %s to %s"
	MsgNoDeployers      = "No deployers configured. Run `limo config add-deployer` to add one."

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default $XDG_CONFIG_HOME/limo/config.toml)"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagParent   = "Separator to add the new separator under"
	MsgFlagPosition = "Position among the parent's children (default: last)"
	MsgFlagFrom     = "Profile to copy the load order from (default: the current one)"
	MsgFlagForce    = "Overwrite an existing file"
	MsgFlagDialect  = "Dialect of the external file"
	MsgFlagTarget   = "Directory holding the external file"
	MsgFlagState    = "Directory for limo's own files (default under $XDG_DATA_HOME/limo)"
	MsgFlagData     = "Directory of installed entry files to reconcile against"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)

const MsgMoveLong = `Move an entry, with everything under it, relative to a target entry.

Entries are addressed by mod ID or by name. "before" and "after" place the
entry next to the target under the target's parent. "into" appends it to a
separator; use "/" as the target to append to the top level.`

const MsgMoveExample = `  limo move openmw grass.esp into "Groundcover"
  limo move openmw 12 before Morrowind.esm
  limo move openmw "Late" into /`
