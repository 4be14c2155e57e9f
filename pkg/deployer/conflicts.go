package deployer

import (
	"slices"

	"github.com/alekulyn/limo/pkg/dialect"
	"github.com/alekulyn/limo/pkg/errors"
	"github.com/alekulyn/limo/pkg/tree"
)

// ConflictGroups partitions load-order positions into the dialect's
// conflict buckets, plus a final bucket for everything else.
func (d *Deployer) ConflictGroups() [][]int {
	return d.index.Partition(d.dialect.ConflictClasses)
}

// SortByConflicts reorders every sibling list so entries of earlier
// buckets come first. The sort is stable and never moves an entry to
// another parent.
func (d *Deployer) SortByConflicts() error {
	d.sortChildren(d.tree.Root())
	d.logger.Info().Msg("Sorted load order by conflict groups")
	return d.commit()
}

func (d *Deployer) sortChildren(parent tree.Handle) {
	children := d.tree.Children(parent)
	class := make(map[tree.Handle]int, len(children))
	for _, c := range children {
		e, _ := d.tree.Payload(c)
		class[c] = d.dialect.ConflictClass(e)
	}
	sorted := slices.Clone(children)
	slices.SortStableFunc(sorted, func(a, b tree.Handle) int { return class[a] - class[b] })
	for i, c := range sorted {
		// Moving within the same parent cannot fail.
		_ = d.tree.Move(c, parent, i)
	}
	for _, c := range sorted {
		if d.tree.ChildCount(c) > 0 {
			d.sortChildren(c)
		}
	}
}

// ModActions lists the dialect's actions.
func (d *Deployer) ModActions() []dialect.Action {
	return slices.Clone(d.dialect.Actions)
}

// ValidModActions returns, for each load-order position, the IDs of the
// actions that apply to the entry there.
func (d *Deployer) ValidModActions() [][]int {
	items := d.items()
	out := make([][]int, len(items))
	for i, e := range items {
		out[i] = d.dialect.ValidActions(e)
	}
	return out
}

// ApplyModAction runs action on the entry at load-order position index.
// An unknown action, or one that does not apply to the entry, is logged
// and changes nothing.
func (d *Deployer) ApplyModAction(action, index int) error {
	items := d.items()
	if index < 0 || index >= len(items) {
		return errors.Newf(errors.ErrInvalidInput, "position %d out of range [0, %d)", index, len(items))
	}
	e := items[index]

	a, ok := d.dialect.Action(action)
	if !ok {
		d.logger.Debug().Int("action", action).Msg("Invalid mod action")
		return nil
	}
	if !a.ValidFor(e) {
		d.logger.Debug().Int("action", action).Str("entry", e.Name).Msg("Mod action does not apply to entry")
		return nil
	}

	if a.Add {
		e.AddManualTag(a.Tag)
	} else {
		e.RemoveManualTag(a.Tag)
	}
	d.logger.Info().Str("action", a.Name).Str("entry", e.Name).Msg("Applied mod action")
	return d.commit()
}
