package deployer

import (
	"slices"

	"github.com/alekulyn/limo/pkg/entry"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/tree"
)

// Placement says where Move puts a node relative to its target.
type Placement int

const (
	Before Placement = iota
	After
	// Into appends the node as the last child of a separator or the root.
	Into
)

func (p Placement) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	case Into:
		return "into"
	}
	return "unknown"
}

// ParsePlacement parses "before", "after" or "into".
func ParsePlacement(s string) (Placement, error) {
	for _, p := range []Placement{Before, After, Into} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, errors.Newf(errors.ErrInvalidInput, "unknown placement %q, expected before, after or into", s)
}

func (d *Deployer) payload(h tree.Handle) (*entry.Entry, error) {
	e, ok := d.tree.Payload(h)
	if !ok {
		return nil, errors.New(errors.ErrStaleHandle, "entry handle is no longer valid")
	}
	return e, nil
}

func (d *Deployer) mod(id int) (*entry.Entry, error) {
	h, ok := d.HandleOf(id)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "no entry with id %d", id).WithDetail("id", id)
	}
	e, _ := d.tree.Payload(h)
	if e.IsSeparator() {
		return nil, errors.Newf(errors.ErrInvalidInput, "entry %d is a separator", id)
	}
	return e, nil
}

// SetModStatus enables or disables the mod with the given ID. Order is
// untouched.
func (d *Deployer) SetModStatus(id int, enabled bool) error {
	e, err := d.mod(id)
	if err != nil {
		return err
	}
	e.SetEnabled(enabled)
	d.logger.Info().Str("entry", e.Name).Bool("enabled", enabled).Msg("Set mod status")
	return d.commit()
}

// SwapChild exchanges two top-level entries.
func (d *Deployer) SwapChild(i, j int) error {
	return d.SwapWithin(d.tree.Root(), i, j)
}

// SwapWithin exchanges two children of parent.
func (d *Deployer) SwapWithin(parent tree.Handle, i, j int) error {
	if err := d.tree.SwapChildren(parent, i, j); err != nil {
		return err
	}
	d.logger.Debug().Int("i", i).Int("j", j).Msg("Swapped entries")
	return d.commit()
}

// Move relocates h, with its subtree, next to or into target.
func (d *Deployer) Move(h, target tree.Handle, placement Placement) error {
	if _, err := d.payload(h); err != nil {
		return err
	}
	if !d.tree.Valid(target) {
		return errors.New(errors.ErrStaleHandle, "target handle is no longer valid")
	}
	if h == target {
		return errors.New(errors.ErrInvalidInput, "cannot move an entry relative to itself")
	}

	var parent tree.Handle
	var pos int
	switch placement {
	case Into:
		if target != d.tree.Root() {
			t, _ := d.tree.Payload(target)
			if !t.IsSeparator() {
				return errors.Newf(errors.ErrInvalidInput, "cannot move into %q: only separators hold entries", t.Name)
			}
		}
		parent = target
		pos = d.tree.ChildCount(target)
	case Before, After:
		if target == d.tree.Root() {
			return errors.New(errors.ErrInvalidInput, "cannot move before or after the root")
		}
		parent = d.tree.Parent(target)
		pos = d.tree.Row(target)
		if placement == After {
			pos++
		}
		if d.tree.Parent(h) == parent && d.tree.Row(h) < d.tree.Row(target) {
			pos--
		}
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown placement %d", placement)
	}

	if err := d.tree.Move(h, parent, pos); err != nil {
		return err
	}
	return d.commit()
}

// AddMod appends a new mod at the end of the load order.
func (d *Deployer) AddMod(name, source string, enabled bool) (tree.Handle, error) {
	if !d.dialect.Accepts(name) {
		return tree.Handle{}, errors.Newf(errors.ErrInvalidInput, "%q is not a %s entry", name, d.dialect.Name)
	}
	if _, exists := d.HandleByName(name); exists {
		return tree.Handle{}, errors.Newf(errors.ErrAlreadyExists, "entry %q already exists", name)
	}
	h, err := d.tree.Emplace(d.tree.Root(), entry.NewMod(name, source, d.allocID(), enabled))
	if err != nil {
		return tree.Handle{}, err
	}
	d.logger.Info().Str("entry", name).Msg("Added mod")
	return h, d.commit()
}

// AddSeparator inserts a separator under parent, which must be the root or
// another separator, at pos (clamped).
func (d *Deployer) AddSeparator(name string, parent tree.Handle, pos int) (tree.Handle, error) {
	if name == "" {
		return tree.Handle{}, errors.New(errors.ErrInvalidInput, "separator name cannot be empty")
	}
	if !d.tree.Valid(parent) {
		return tree.Handle{}, errors.New(errors.ErrStaleHandle, "parent handle is no longer valid")
	}
	if parent != d.tree.Root() {
		if p, _ := d.tree.Payload(parent); !p.IsSeparator() {
			return tree.Handle{}, errors.Newf(errors.ErrInvalidInput, "cannot nest a separator under mod %q", p.Name)
		}
	}
	h := d.tree.NewNode(entry.NewSeparator(name))
	if err := d.tree.Insert(parent, pos, h); err != nil {
		return tree.Handle{}, err
	}
	d.logger.Info().Str("separator", name).Msg("Added separator")
	return h, d.commit()
}

// RemoveEntry removes h. A removed separator's children take its place.
func (d *Deployer) RemoveEntry(h tree.Handle) error {
	e, err := d.payload(h)
	if err != nil {
		return err
	}
	if _, err := d.tree.Remove(d.tree.Parent(h), h); err != nil {
		return err
	}
	d.logger.Info().Str("entry", e.Name).Stringer("kind", e.Kind).Msg("Removed entry")
	return d.commit()
}

// Rename renames a separator. Mods are named after their files and cannot
// be renamed.
func (d *Deployer) Rename(h tree.Handle, name string) error {
	e, err := d.payload(h)
	if err != nil {
		return err
	}
	if !e.IsSeparator() {
		return errors.Newf(errors.ErrInvalidInput, "mod %q is named after its file and cannot be renamed", e.Name)
	}
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "separator name cannot be empty")
	}
	e.Name = name
	d.tree.MarkDirty(h)
	return d.commit()
}

// AddManualTag tags the mod with the given ID. Automatic tags are derived
// from names and cannot be added by hand.
func (d *Deployer) AddManualTag(id int, tag string) error {
	e, err := d.mod(id)
	if err != nil {
		return err
	}
	if tag == "" || d.dialect.IsAutoTag(tag) {
		return errors.Newf(errors.ErrInvalidInput, "%q cannot be set by hand", tag)
	}
	if !e.AddManualTag(tag) {
		return nil
	}
	return d.commit()
}

// RemoveManualTag removes a manual tag from the mod with the given ID.
func (d *Deployer) RemoveManualTag(id int, tag string) error {
	e, err := d.mod(id)
	if err != nil {
		return err
	}
	if !e.RemoveManualTag(tag) {
		return nil
	}
	return d.commit()
}

// Entries returns copies of the entries in load order.
func (d *Deployer) Entries() []*entry.Entry {
	items := d.items()
	out := make([]*entry.Entry, len(items))
	for i, e := range items {
		out[i] = e.Clone()
	}
	return out
}

// Traversal returns the node handles in load order.
func (d *Deployer) Traversal() []tree.Handle {
	return d.tree.Traversal(d.tree.Root())
}

// NumMods counts the mods, separators excluded.
func (d *Deployer) NumMods() int {
	n := 0
	for _, e := range d.items() {
		if !e.IsSeparator() {
			n++
		}
	}
	return n
}

// ModNames returns the mod names in load order.
func (d *Deployer) ModNames() []string {
	var names []string
	for _, e := range d.items() {
		if !e.IsSeparator() {
			names = append(names, e.Name)
		}
	}
	return names
}

// TagMap returns mod name -> automatic tags.
func (d *Deployer) TagMap() map[string][]string {
	return d.index.TagMap()
}

// AutoTagCounts returns the number of mods per tag, toggle tags included.
func (d *Deployer) AutoTagCounts() map[string]int {
	return d.index.Counts()
}

// EntryByID returns a copy of the mod with the given ID.
func (d *Deployer) EntryByID(id int) (*entry.Entry, bool) {
	h, ok := d.HandleOf(id)
	if !ok {
		return nil, false
	}
	e, _ := d.tree.Payload(h)
	return e.Clone(), true
}

// HandleOf finds the node of the mod with the given ID.
func (d *Deployer) HandleOf(id int) (tree.Handle, bool) {
	if id < 0 {
		return tree.Handle{}, false
	}
	h := d.tree.Find(func(e *entry.Entry) bool { return !e.IsSeparator() && e.ID == id })
	return h, !h.IsZero()
}

// HandleByName finds the first node, in load order, with the given name.
func (d *Deployer) HandleByName(name string) (tree.Handle, bool) {
	h := d.tree.Find(func(e *entry.Entry) bool { return e.Name == name })
	return h, !h.IsZero()
}

// Position returns h's index in the load order, or -1.
func (d *Deployer) Position(h tree.Handle) int {
	return slices.Index(d.Traversal(), h)
}
