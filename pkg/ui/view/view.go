// Package view holds the render-ready shapes commands hand to the ui
// renderers. Every type marshals to the JSON output format as is.
package view

import (
	"slices"

	"github.com/alekulyn/limo/pkg/deployer"
	"github.com/alekulyn/limo/pkg/entry"
	"github.com/alekulyn/limo/pkg/profile"
	"github.com/alekulyn/limo/pkg/tree"
	"github.com/alekulyn/limo/pkg/workspace"
)

// Row is one load order entry. Position is its index in the flattened
// load order, the index mod actions and swaps refer to.
type Row struct {
	ID         int      `json:"id"`
	Position   int      `json:"position"`
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Enabled    bool     `json:"enabled"`
	Source     string   `json:"source,omitempty"`
	ManualTags []string `json:"manual_tags,omitempty"`
	AutoTags   []string `json:"auto_tags,omitempty"`
	Depth      int      `json:"-"`
	Children   []*Row   `json:"children,omitempty"`
}

func (r *Row) IsSeparator() bool {
	return r.Kind == entry.KindSeparator.String()
}

// LoadOrder is a deployer's hierarchical load order.
type LoadOrder struct {
	Deployer   string `json:"deployer"`
	Dialect    string `json:"dialect"`
	ConfigPath string `json:"config_path"`
	Profile    string `json:"profile"`
	Mods       int    `json:"mods"`
	Entries    []*Row `json:"entries"`
}

// NewLoadOrder snapshots d's tree.
func NewLoadOrder(d *deployer.Deployer) *LoadOrder {
	lo := &LoadOrder{
		Deployer:   d.Name(),
		Dialect:    d.Dialect().Name,
		ConfigPath: d.ConfigPath(),
		Profile:    d.CurrentProfile().Name,
		Mods:       d.NumMods(),
		Entries:    []*Row{},
	}

	t := d.Tree()
	// stack[k] is the open row at depth k.
	var stack []*Row
	pos := 0
	t.Walk(t.Root(), func(h tree.Handle, depth int) bool {
		e, ok := t.Payload(h)
		if !ok {
			return false
		}
		row := newRow(e, pos, depth)
		pos++
		stack = stack[:depth]
		if depth == 0 {
			lo.Entries = append(lo.Entries, row)
		} else {
			parent := stack[depth-1]
			parent.Children = append(parent.Children, row)
		}
		stack = append(stack, row)
		return true
	})
	return lo
}

func newRow(e *entry.Entry, pos, depth int) *Row {
	r := &Row{
		ID:       e.ID,
		Position: pos,
		Name:     e.Name,
		Kind:     e.Kind.String(),
		Depth:    depth,
	}
	if e.Mod != nil {
		r.Enabled = e.Mod.Enabled
		r.Source = e.Mod.SourceName
		r.ManualTags = slices.Clone(e.Mod.ManualTags)
		r.AutoTags = slices.Clone(e.Mod.AutoTags)
	}
	return r
}

// Flatten returns the rows in load order.
func (lo *LoadOrder) Flatten() []*Row {
	var out []*Row
	var visit func(rows []*Row)
	visit = func(rows []*Row) {
		for _, r := range rows {
			out = append(out, r)
			visit(r.Children)
		}
	}
	visit(lo.Entries)
	return out
}

// Deployers lists the configured deployers.
type Deployers struct {
	Deployers []workspace.Summary `json:"deployers"`
}

// Profiles lists a deployer's profiles.
type Profiles struct {
	Deployer string            `json:"deployer"`
	Current  int               `json:"current"`
	Profiles []profile.Profile `json:"profiles"`
}

func NewProfiles(d *deployer.Deployer) *Profiles {
	return &Profiles{
		Deployer: d.Name(),
		Current:  d.CurrentProfile().ID,
		Profiles: d.Profiles(),
	}
}

// Action is a mod action with the load order positions it applies to.
type Action struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	Positions []int  `json:"positions"`
}

type Actions struct {
	Deployer string   `json:"deployer"`
	Actions  []Action `json:"actions"`
}

func NewActions(d *deployer.Deployer) *Actions {
	valid := d.ValidModActions()
	out := &Actions{Deployer: d.Name(), Actions: []Action{}}
	for _, a := range d.ModActions() {
		row := Action{ID: a.ID, Name: a.Name, Icon: a.Icon, Positions: []int{}}
		for pos, ids := range valid {
			if slices.Contains(ids, a.ID) {
				row.Positions = append(row.Positions, pos)
			}
		}
		out.Actions = append(out.Actions, row)
	}
	return out
}

// Tags counts the mods per tag.
type Tags struct {
	Deployer string         `json:"deployer"`
	Counts   map[string]int `json:"counts"`
}

func NewTags(d *deployer.Deployer) *Tags {
	return &Tags{Deployer: d.Name(), Counts: d.AutoTagCounts()}
}

// Dialects lists the dialects a deployer can use.
type Dialects struct {
	Dialects []Dialect `json:"dialects"`
}

type Dialect struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ConfigFile  string `json:"config_file"`
}
