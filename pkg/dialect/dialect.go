package dialect

import (
	"regexp"
	"slices"

	"github.com/alekulyn/limo/pkg/entry"
)

// MarkerMeaning says what the presence of a line marker means.
type MarkerMeaning string

const (
	// MarkerNone: the dialect has no marker and every parsed line is enabled.
	MarkerNone     MarkerMeaning = ""
	MarkerEnabled  MarkerMeaning = "enabled"
	MarkerDisabled MarkerMeaning = "disabled"
)

// Block is one managed run of lines in the external file.
type Block struct {
	// Prefix starts every written line, e.g. "content=".
	Prefix string
	// Match recognises the lines this block owns. All of them are replaced
	// on write.
	Match *regexp.Regexp
	// EnabledOnly writes enabled entries only. Otherwise every entry is
	// written and the marker carries the enabled state.
	EnabledOnly bool
	RequireTag  string
	ExcludeTag  string
}

// Selects reports whether e belongs to the block.
func (b Block) Selects(e *entry.Entry) bool {
	if e.IsSeparator() {
		return false
	}
	if b.EnabledOnly && !e.Enabled() {
		return false
	}
	if b.RequireTag != "" && !e.HasTag(b.RequireTag) {
		return false
	}
	if b.ExcludeTag != "" && e.HasTag(b.ExcludeTag) {
		return false
	}
	return true
}

// TagRule assigns Tag to every entry whose name matches Pattern.
type TagRule struct {
	Tag     string
	Pattern *regexp.Regexp
}

// Action toggles Tag on an entry. Entries carrying any of ExcludeTags get
// no actions at all.
type Action struct {
	ID          int
	Name        string
	Icon        string
	Tag         string
	Add         bool
	ExcludeTags []string
}

// ValidFor reports whether the action can be applied to e.
func (a Action) ValidFor(e *entry.Entry) bool {
	if e.IsSeparator() {
		return false
	}
	for _, t := range a.ExcludeTags {
		if e.HasTag(t) {
			return false
		}
	}
	return e.HasTag(a.Tag) != a.Add
}

// Dialect is the full description of one external file format.
type Dialect struct {
	Name        string
	Description string
	// ConfigFile is the external file, relative to the deployer target dir.
	ConfigFile string
	// EntryPattern recognises entry file names. nil accepts everything.
	EntryPattern *regexp.Regexp
	// Bootstrap parses one external line. It must have a "name" group and
	// may have "marker" and "tag" groups.
	Bootstrap *regexp.Regexp
	// BootstrapTags maps a captured "tag" group to the tag it assigns.
	BootstrapTags     map[string]string
	Marker            string
	MarkerMeaning     MarkerMeaning
	Blocks            []Block
	TagRules          []TagRule
	ToggleTags        []string
	ConflictClasses   []string
	Actions           []Action
	NewEntriesEnabled bool
}

// Accepts reports whether name looks like an entry of this dialect.
func (d *Dialect) Accepts(name string) bool {
	return d.EntryPattern == nil || d.EntryPattern.MatchString(name)
}

// Line is one entry recovered from the external file.
type Line struct {
	Name    string
	Enabled bool
	Tags    []string
}

// ParseLine applies the bootstrap pattern to one external line.
func (d *Dialect) ParseLine(raw string) (Line, bool) {
	m := d.Bootstrap.FindStringSubmatch(raw)
	if m == nil {
		return Line{}, false
	}
	var out Line
	var marker string
	for i, group := range d.Bootstrap.SubexpNames() {
		switch group {
		case "name":
			out.Name = m[i]
		case "marker":
			marker = m[i]
		case "tag":
			if tag, ok := d.BootstrapTags[m[i]]; ok {
				out.Tags = append(out.Tags, tag)
			}
		}
	}
	if out.Name == "" {
		return Line{}, false
	}

	present := marker != "" && (d.Marker == "" || marker == d.Marker)
	switch d.MarkerMeaning {
	case MarkerEnabled:
		out.Enabled = present
	case MarkerDisabled:
		out.Enabled = !present
	default:
		out.Enabled = true
	}
	return out, true
}

// FormatLine renders e as a line of block b.
func (d *Dialect) FormatLine(b Block, e *entry.Entry) string {
	marker := ""
	switch d.MarkerMeaning {
	case MarkerEnabled:
		if e.Enabled() {
			marker = d.Marker
		}
	case MarkerDisabled:
		if !e.Enabled() {
			marker = d.Marker
		}
	}
	return b.Prefix + marker + e.Name
}

// AutoTags returns the sorted tags the rules assign to name.
func (d *Dialect) AutoTags(name string) []string {
	var tags []string
	for _, r := range d.TagRules {
		if r.Pattern.MatchString(name) && !slices.Contains(tags, r.Tag) {
			tags = append(tags, r.Tag)
		}
	}
	slices.Sort(tags)
	return tags
}

// IsAutoTag reports whether some tag rule produces tag.
func (d *Dialect) IsAutoTag(tag string) bool {
	return slices.ContainsFunc(d.TagRules, func(r TagRule) bool { return r.Tag == tag })
}

// IsToggleTag reports whether tag is managed by mod actions.
func (d *Dialect) IsToggleTag(tag string) bool {
	return slices.Contains(d.ToggleTags, tag)
}

// ConflictClass returns the bucket of e: the index of the first conflict
// class tag it carries, or len(ConflictClasses) for everything else.
// Separators always land in the last bucket.
func (d *Dialect) ConflictClass(e *entry.Entry) int {
	if !e.IsSeparator() {
		for i, tag := range d.ConflictClasses {
			if e.HasTag(tag) {
				return i
			}
		}
	}
	return len(d.ConflictClasses)
}

// Action looks up an action by ID.
func (d *Dialect) Action(id int) (Action, bool) {
	for _, a := range d.Actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}

// ValidActions returns the IDs of the actions applicable to e.
func (d *Dialect) ValidActions(e *entry.Entry) []int {
	ids := []int{}
	for _, a := range d.Actions {
		if a.ValidFor(e) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Clone returns a copy whose slices and maps can be edited independently.
// Compiled patterns are immutable and shared.
func (d *Dialect) Clone() *Dialect {
	c := *d
	c.Blocks = slices.Clone(d.Blocks)
	c.TagRules = slices.Clone(d.TagRules)
	c.ToggleTags = slices.Clone(d.ToggleTags)
	c.ConflictClasses = slices.Clone(d.ConflictClasses)
	c.Actions = make([]Action, len(d.Actions))
	for i, a := range d.Actions {
		a.ExcludeTags = slices.Clone(a.ExcludeTags)
		c.Actions[i] = a
	}
	if d.BootstrapTags != nil {
		c.BootstrapTags = make(map[string]string, len(d.BootstrapTags))
		for k, v := range d.BootstrapTags {
			c.BootstrapTags[k] = v
		}
	}
	return &c
}
