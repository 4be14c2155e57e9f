package dialect

import (
	"regexp"
	"slices"

	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/registry"
)

// Spec is the config-file form of a dialect. Patterns are uncompiled
// strings. A Spec that Extends a registered dialect starts from a copy of
// it and overrides the fields it sets.
type Spec struct {
	Name              string            `koanf:"name"`
	Extends           string            `koanf:"extends"`
	Description       string            `koanf:"description"`
	ConfigFile        string            `koanf:"config_file"`
	EntryPattern      string            `koanf:"entry_pattern"`
	Bootstrap         string            `koanf:"bootstrap"`
	BootstrapTags     map[string]string `koanf:"bootstrap_tags"`
	Marker            string            `koanf:"marker"`
	MarkerMeaning     string            `koanf:"marker_meaning"`
	NewEntriesEnabled *bool             `koanf:"new_entries_enabled"`
	Blocks            []BlockSpec       `koanf:"blocks"`
	TagRules          []TagRuleSpec     `koanf:"tag_rules"`
	ToggleTags        []string          `koanf:"toggle_tags"`
	ConflictClasses   []string          `koanf:"conflict_classes"`
	Actions           []ActionSpec      `koanf:"actions"`
}

type BlockSpec struct {
	Prefix      string `koanf:"prefix"`
	Match       string `koanf:"match"`
	EnabledOnly bool   `koanf:"enabled_only"`
	RequireTag  string `koanf:"require_tag"`
	ExcludeTag  string `koanf:"exclude_tag"`
}

type TagRuleSpec struct {
	Tag     string `koanf:"tag"`
	Pattern string `koanf:"pattern"`
}

// ActionSpec declares a tag toggle. Action IDs are the positions in the
// list.
type ActionSpec struct {
	Name        string   `koanf:"name"`
	Icon        string   `koanf:"icon"`
	Tag         string   `koanf:"tag"`
	Add         bool     `koanf:"add"`
	ExcludeTags []string `koanf:"exclude_tags"`
}

func invalid(name, format string, args ...interface{}) *errors.LimoError {
	return errors.Newf(errors.ErrDialectInvalid, format, args...).WithDetail("dialect", name)
}

func compile(name, field, expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDialectInvalid, "dialect %q: bad %s pattern", name, field).
			WithDetail("dialect", name)
	}
	return re, nil
}

// Compile turns s into a validated Dialect. known resolves Extends and
// may be nil when s extends nothing.
func Compile(s Spec, known registry.Registry[*Dialect]) (*Dialect, error) {
	if s.Name == "" {
		return nil, errors.New(errors.ErrDialectInvalid, "dialect name cannot be empty")
	}

	d := &Dialect{Name: s.Name}
	if s.Extends != "" {
		if known == nil {
			return nil, invalid(s.Name, "dialect %q extends %q but no dialects are known", s.Name, s.Extends)
		}
		base, err := known.Get(s.Extends)
		if err != nil {
			return nil, err
		}
		d = base.Clone()
		d.Name = s.Name
	}

	if s.Description != "" {
		d.Description = s.Description
	}
	if s.ConfigFile != "" {
		d.ConfigFile = s.ConfigFile
	}
	if s.Marker != "" {
		d.Marker = s.Marker
	}
	if s.MarkerMeaning != "" {
		d.MarkerMeaning = MarkerMeaning(s.MarkerMeaning)
	}
	if s.NewEntriesEnabled != nil {
		d.NewEntriesEnabled = *s.NewEntriesEnabled
	}
	if s.BootstrapTags != nil {
		d.BootstrapTags = s.BootstrapTags
	}
	if s.ToggleTags != nil {
		d.ToggleTags = slices.Clone(s.ToggleTags)
	}
	if s.ConflictClasses != nil {
		d.ConflictClasses = slices.Clone(s.ConflictClasses)
	}

	var err error
	if s.EntryPattern != "" {
		if d.EntryPattern, err = compile(s.Name, "entry", s.EntryPattern); err != nil {
			return nil, err
		}
	}
	if s.Bootstrap != "" {
		if d.Bootstrap, err = compile(s.Name, "bootstrap", s.Bootstrap); err != nil {
			return nil, err
		}
	}
	if s.Blocks != nil {
		d.Blocks = make([]Block, 0, len(s.Blocks))
		for _, bs := range s.Blocks {
			match, err := compile(s.Name, "block match", bs.Match)
			if err != nil {
				return nil, err
			}
			d.Blocks = append(d.Blocks, Block{
				Prefix:      bs.Prefix,
				Match:       match,
				EnabledOnly: bs.EnabledOnly,
				RequireTag:  bs.RequireTag,
				ExcludeTag:  bs.ExcludeTag,
			})
		}
	}
	if s.TagRules != nil {
		d.TagRules = make([]TagRule, 0, len(s.TagRules))
		for _, rs := range s.TagRules {
			pattern, err := compile(s.Name, "tag rule", rs.Pattern)
			if err != nil {
				return nil, err
			}
			d.TagRules = append(d.TagRules, TagRule{Tag: rs.Tag, Pattern: pattern})
		}
	}
	if s.Actions != nil {
		d.Actions = make([]Action, 0, len(s.Actions))
		for i, as := range s.Actions {
			d.Actions = append(d.Actions, Action{
				ID:          i,
				Name:        as.Name,
				Icon:        as.Icon,
				Tag:         as.Tag,
				Add:         as.Add,
				ExcludeTags: slices.Clone(as.ExcludeTags),
			})
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the dialect's internal consistency.
func (d *Dialect) Validate() error {
	if d.Name == "" {
		return errors.New(errors.ErrDialectInvalid, "dialect name cannot be empty")
	}
	if d.ConfigFile == "" {
		return invalid(d.Name, "dialect %q has no config file", d.Name)
	}
	if d.Bootstrap == nil || d.Bootstrap.SubexpIndex("name") < 0 {
		return invalid(d.Name, "dialect %q needs a bootstrap pattern with a (?P<name>...) group", d.Name)
	}
	switch d.MarkerMeaning {
	case MarkerNone:
	case MarkerEnabled, MarkerDisabled:
		if d.Marker == "" {
			return invalid(d.Name, "dialect %q sets marker_meaning without a marker", d.Name)
		}
	default:
		return invalid(d.Name, "dialect %q: marker_meaning must be %q or %q, got %q",
			d.Name, MarkerEnabled, MarkerDisabled, d.MarkerMeaning)
	}
	if len(d.Blocks) == 0 {
		return invalid(d.Name, "dialect %q declares no output blocks", d.Name)
	}
	for i, b := range d.Blocks {
		if b.Match == nil {
			return invalid(d.Name, "dialect %q: block %d has no match pattern", d.Name, i)
		}
	}
	for _, r := range d.TagRules {
		if r.Tag == "" || r.Pattern == nil {
			return invalid(d.Name, "dialect %q: tag rules need a tag and a pattern", d.Name)
		}
	}
	seen := map[int]bool{}
	for _, a := range d.Actions {
		if seen[a.ID] {
			return invalid(d.Name, "dialect %q: duplicate action id %d", d.Name, a.ID)
		}
		seen[a.ID] = true
		if !d.IsToggleTag(a.Tag) {
			return invalid(d.Name, "dialect %q: action %q toggles %q, which is not a toggle tag", d.Name, a.Name, a.Tag)
		}
	}
	return nil
}

// NewRegistry returns the built-ins plus the compiled user specs. A spec
// named like a built-in replaces it. Specs may extend dialects declared
// earlier in the list.
func NewRegistry(specs []Spec) (registry.Registry[*Dialect], error) {
	reg := Builtins()
	for _, s := range specs {
		d, err := Compile(s, reg)
		if err != nil {
			return nil, err
		}
		if _, err := reg.Replace(d.Name, d); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
