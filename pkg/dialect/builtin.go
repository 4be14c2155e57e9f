package dialect

import (
	"regexp"

	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/registry"
)

// Names of the built-in dialects.
const (
	OpenMWPlugins  = "openmw-plugins"
	OpenMWArchives = "openmw-archives"
	PluginsTxt     = "plugins-txt"
	Lines          = "lines"
)

// Tags used by the OpenMW dialects.
const (
	TagOpenMW      = "OpenMW"
	TagESPlugin    = "ES Plugin"
	TagScripts     = "Scripts"
	TagGroundcover = "Groundcover"
)

// Action IDs of the OpenMW plugin dialect.
const (
	ActionAddGroundcover    = 0
	ActionRemoveGroundcover = 1
)

const openMWConfigFile = "openmw.cfg"

func openMWPlugins() *Dialect {
	return &Dialect{
		Name:         OpenMWPlugins,
		Description:  "OpenMW content and groundcover entries in openmw.cfg",
		ConfigFile:   openMWConfigFile,
		EntryPattern: regexp.MustCompile(`(?i)^.*\.(?:es[pml]|omwscripts?|omwaddon|omwgame)$`),
		Bootstrap: regexp.MustCompile(
			`^(?P<tag>content|groundcover)=(?P<name>.*?\.(?i:es[pml]|omwscripts?|omwaddon|omwgame))\s*$`),
		BootstrapTags: map[string]string{"groundcover": TagGroundcover},
		Blocks: []Block{
			{
				Prefix:      "content=",
				Match:       regexp.MustCompile(`^content=.*`),
				EnabledOnly: true,
				ExcludeTag:  TagGroundcover,
			},
			{
				Prefix:      "groundcover=",
				Match:       regexp.MustCompile(`^groundcover=.*`),
				EnabledOnly: true,
				RequireTag:  TagGroundcover,
			},
		},
		TagRules: []TagRule{
			{Tag: TagOpenMW, Pattern: regexp.MustCompile(`(?i)^.*\.(?:omwscripts?|omwaddon|omwgame)$`)},
			{Tag: TagESPlugin, Pattern: regexp.MustCompile(`(?i)^.*\.es[pml]$`)},
			{Tag: TagScripts, Pattern: regexp.MustCompile(`(?i)^.*\.omwscripts?$`)},
		},
		ToggleTags:      []string{TagGroundcover},
		ConflictClasses: []string{TagScripts, TagGroundcover},
		Actions: []Action{
			{
				ID: ActionAddGroundcover, Name: "Add Groundcover Tag", Icon: "tag-new",
				Tag: TagGroundcover, Add: true, ExcludeTags: []string{TagScripts},
			},
			{
				ID: ActionRemoveGroundcover, Name: "Remove Groundcover Tag", Icon: "tag-delete",
				Tag: TagGroundcover, Add: false, ExcludeTags: []string{TagScripts},
			},
		},
		NewEntriesEnabled: true,
	}
}

func openMWArchives() *Dialect {
	return &Dialect{
		Name:         OpenMWArchives,
		Description:  "OpenMW fallback archives in openmw.cfg",
		ConfigFile:   openMWConfigFile,
		EntryPattern: regexp.MustCompile(`(?i)^.*\.(?:bsa|ba2)$`),
		Bootstrap:    regexp.MustCompile(`^fallback-archive=(?P<name>.*?\.(?i:bsa|ba2))\s*$`),
		Blocks: []Block{
			{
				Prefix:      "fallback-archive=",
				Match:       regexp.MustCompile(`^fallback-archive=.*`),
				EnabledOnly: true,
			},
		},
		NewEntriesEnabled: true,
	}
}

func pluginsTxt() *Dialect {
	return &Dialect{
		Name:         PluginsTxt,
		Description:  "Bethesda style plugins.txt, '*' marks enabled plugins",
		ConfigFile:   "plugins.txt",
		EntryPattern: regexp.MustCompile(`(?i)^.*\.es[pml]$`),
		Bootstrap:    regexp.MustCompile(`^\s*(?P<marker>\*?)(?P<name>[^#]*?\.(?i:es[pml]))\s*$`),
		Marker:        "*",
		MarkerMeaning: MarkerEnabled,
		Blocks: []Block{
			{
				Match: regexp.MustCompile(`(?i)^\s*\*?[^#]*\.es[pml]\s*$`),
			},
		},
		TagRules: []TagRule{
			{Tag: "Master", Pattern: regexp.MustCompile(`(?i)^.*\.esm$`)},
			{Tag: "Light", Pattern: regexp.MustCompile(`(?i)^.*\.esl$`)},
		},
		ConflictClasses:   []string{"Master", "Light"},
		NewEntriesEnabled: false,
	}
}

func lines() *Dialect {
	return &Dialect{
		Name:        Lines,
		Description: "One entry per non-comment line, '#' disables an entry",
		ConfigFile:  "loadorder.txt",
		Bootstrap:   regexp.MustCompile(`^(?P<marker>#?)\s*(?P<name>\S.*?)\s*$`),
		Marker:        "#",
		MarkerMeaning: MarkerDisabled,
		Blocks: []Block{
			{
				Match: regexp.MustCompile(`^.*\S.*$`),
			},
		},
		NewEntriesEnabled: true,
	}
}

// Builtins returns a new registry holding the built-in dialects.
func Builtins() registry.Registry[*Dialect] {
	reg := registry.New[*Dialect](registry.WithNotFoundCode(errors.ErrDialectNotFound))
	for _, d := range []*Dialect{openMWPlugins(), openMWArchives(), pluginsTxt(), lines()} {
		registry.MustRegister(reg, d.Name, d)
	}
	return reg
}
