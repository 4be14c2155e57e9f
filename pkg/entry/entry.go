// Package entry defines the payload stored in a load-order tree: either a
// mod entry (a plugin or archive the target application loads) or a
// separator that groups the entries below it.
package entry

import (
	"slices"
)

// Reserved identities.
const (
	// RootID identifies the synthetic root of a load order.
	RootID = -2
	// UnassignedID marks an entry that has not been given an identity yet.
	UnassignedID = -1
)

// Kind discriminates the two entry variants.
type Kind int

const (
	KindMod Kind = iota
	KindSeparator
)

func (k Kind) String() string {
	if k == KindSeparator {
		return "separator"
	}
	return "mod"
}

// ModInfo holds the fields only mod entries carry.
type ModInfo struct {
	// SourceName names the installed mod the file came from, if known.
	SourceName string
	Enabled    bool
	// ManualTags and AutoTags are sorted sets.
	ManualTags []string
	AutoTags   []string
}

// Entry is one load-order item. Mod is nil exactly when Kind is
// KindSeparator.
type Entry struct {
	Kind Kind
	Name string
	ID   int
	Mod  *ModInfo
}

// NewSeparator creates a separator entry without an identity.
func NewSeparator(name string) *Entry {
	return &Entry{Kind: KindSeparator, Name: name, ID: UnassignedID}
}

// NewMod creates a mod entry.
func NewMod(name, source string, id int, enabled bool) *Entry {
	return &Entry{
		Kind: KindMod,
		Name: name,
		ID:   id,
		Mod:  &ModInfo{SourceName: source, Enabled: enabled},
	}
}

func (e *Entry) IsSeparator() bool {
	return e.Kind == KindSeparator
}

// Enabled reports the mod's enabled flag. Separators are never enabled.
func (e *Entry) Enabled() bool {
	return e.Mod != nil && e.Mod.Enabled
}

// SetEnabled updates a mod's flag and reports whether the entry is a mod.
func (e *Entry) SetEnabled(enabled bool) bool {
	if e.Mod == nil {
		return false
	}
	e.Mod.Enabled = enabled
	return true
}

// Equal compares two entries. Separators match on name; mods match on
// id, enabled flag and name.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind {
		return false
	}
	if e.Kind == KindSeparator {
		return e.Name == other.Name
	}
	return e.ID == other.ID && e.Enabled() == other.Enabled() && e.Name == other.Name
}

// Tags returns the sorted union of manual and automatic tags.
func (e *Entry) Tags() []string {
	if e.Mod == nil {
		return nil
	}
	out := make([]string, 0, len(e.Mod.ManualTags)+len(e.Mod.AutoTags))
	out = append(out, e.Mod.ManualTags...)
	out = append(out, e.Mod.AutoTags...)
	slices.Sort(out)
	return slices.Compact(out)
}

// HasTag reports whether tag is among the entry's manual or auto tags.
func (e *Entry) HasTag(tag string) bool {
	if e.Mod == nil {
		return false
	}
	_, manual := slices.BinarySearch(e.Mod.ManualTags, tag)
	_, auto := slices.BinarySearch(e.Mod.AutoTags, tag)
	return manual || auto
}

// AddManualTag adds tag and reports whether the set changed.
func (e *Entry) AddManualTag(tag string) bool {
	if e.Mod == nil || tag == "" {
		return false
	}
	if _, found := slices.BinarySearch(e.Mod.ManualTags, tag); found {
		return false
	}
	e.Mod.ManualTags = addSorted(e.Mod.ManualTags, tag)
	return true
}

// RemoveManualTag removes tag and reports whether the set changed.
func (e *Entry) RemoveManualTag(tag string) bool {
	if e.Mod == nil {
		return false
	}
	i, found := slices.BinarySearch(e.Mod.ManualTags, tag)
	if !found {
		return false
	}
	e.Mod.ManualTags = slices.Delete(e.Mod.ManualTags, i, i+1)
	return true
}

// SetAutoTags replaces the automatic tag set.
func (e *Entry) SetAutoTags(tags []string) {
	if e.Mod == nil {
		return
	}
	e.Mod.AutoTags = normalize(tags)
}

// SetManualTags replaces the manual tag set.
func (e *Entry) SetManualTags(tags []string) {
	if e.Mod == nil {
		return
	}
	e.Mod.ManualTags = normalize(tags)
}

// Clone returns a deep copy.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.Mod != nil {
		m := *e.Mod
		m.ManualTags = slices.Clone(e.Mod.ManualTags)
		m.AutoTags = slices.Clone(e.Mod.AutoTags)
		c.Mod = &m
	}
	return &c
}

func addSorted(set []string, v string) []string {
	i, found := slices.BinarySearch(set, v)
	if found {
		return set
	}
	return slices.Insert(set, i, v)
}

func normalize(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := slices.Clone(tags)
	slices.Sort(out)
	return slices.Compact(out)
}
