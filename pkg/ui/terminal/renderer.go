// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/alekulyn/limo/pkg/style"
	"github.com/alekulyn/limo/pkg/ui/view"
)

// Renderer draws load orders as pterm trees and lists as pterm tables.
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *view.LoadOrder:
		return r.renderLoadOrder(v)
	case *view.Deployers:
		data := pterm.TableData{{"Name", "Dialect", "Target", "State"}}
		for _, d := range v.Deployers {
			data = append(data, []string{d.Name, d.Dialect, d.TargetDir, d.StateDir})
		}
		return r.table(data)
	case *view.Profiles:
		data := pterm.TableData{{"", "ID", "Name"}}
		for _, p := range v.Profiles {
			mark, name := "", p.Name
			if p.ID == v.Current {
				mark, name = "*", style.CurrentProfileStyle.Render(p.Name)
			}
			data = append(data, []string{mark, strconv.Itoa(p.ID), name})
		}
		return r.table(data)
	case *view.Actions:
		data := pterm.TableData{{"ID", "Action", "Positions"}}
		for _, a := range v.Actions {
			label := a.Name
			if a.Icon != "" {
				label = a.Icon + " " + a.Name
			}
			data = append(data, []string{strconv.Itoa(a.ID), label, fmt.Sprint(a.Positions)})
		}
		return r.table(data)
	case *view.Dialects:
		data := pterm.TableData{{"Name", "File", "Description"}}
		for _, d := range v.Dialects {
			data = append(data, []string{d.Name, d.ConfigFile, style.MutedStyle.Render(d.Description)})
		}
		return r.table(data)
	case *view.Tags:
		tags := make([]string, 0, len(v.Counts))
		for t := range v.Counts {
			tags = append(tags, t)
		}
		sort.Strings(tags)
		data := pterm.TableData{{"Tag", "Mods"}}
		for _, t := range tags {
			data = append(data, []string{style.AutoTagStyle.Render(t), strconv.Itoa(v.Counts[t])})
		}
		return r.table(data)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderLoadOrder(lo *view.LoadOrder) error {
	heading := style.RenderHeading(lo.Deployer, fmt.Sprintf("%s, profile %s, %d mods", lo.Dialect, lo.Profile, lo.Mods))
	if _, err := fmt.Fprintln(r.output, heading); err != nil {
		return err
	}
	if len(lo.Entries) == 0 {
		_, err := fmt.Fprintln(r.output, style.MutedStyle.Render("  (empty)"))
		return err
	}

	var list pterm.LeveledList
	for _, row := range lo.Flatten() {
		list = append(list, pterm.LeveledListItem{Level: row.Depth, Text: Label(row)})
	}
	out, err := pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(list)).Srender()
	if err != nil {
		return err
	}
	_, err = io.WriteString(r.output, out)
	return err
}

// Label is the styled text of one tree node.
func Label(row *view.Row) string {
	pos := style.IDStyle.Render(strconv.Itoa(row.Position))
	if row.IsSeparator() {
		return pos + " " + style.RenderName(row.Name, style.StatusSeparator)
	}
	status := style.StatusDisabled
	if row.Enabled {
		status = style.StatusEnabled
	}
	label := fmt.Sprintf("%s %s %s", pos, style.Indicator(status), style.RenderName(row.Name, status))
	if tags := style.RenderTags(row.ManualTags, row.AutoTags); tags != "" {
		label += " " + tags
	}
	return label
}

func (r *Renderer) table(data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, out)
	return err
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintln(r.output, style.RenderError(err))
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", style.InfoIndicator, msg)
	return err
}
