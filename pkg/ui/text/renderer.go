// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alekulyn/limo/pkg/ui/view"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *view.LoadOrder:
		fmt.Fprintf(&b, "%s (%s) profile %s, %d mods\n", v.Deployer, v.Dialect, v.Profile, v.Mods)
		for _, row := range v.Flatten() {
			b.WriteString(FormatRow(row))
			b.WriteByte('\n')
		}
	case *view.Deployers:
		for _, d := range v.Deployers {
			fmt.Fprintf(&b, "%s\t%s\t%s\n", d.Name, d.Dialect, joinPath(d.TargetDir, d.ConfigFile))
		}
	case *view.Profiles:
		for _, p := range v.Profiles {
			mark := " "
			if p.ID == v.Current {
				mark = "*"
			}
			fmt.Fprintf(&b, "%s %d %s\n", mark, p.ID, p.Name)
		}
	case *view.Actions:
		for _, a := range v.Actions {
			fmt.Fprintf(&b, "%d %s: %s\n", a.ID, a.Name, joinInts(a.Positions))
		}
	case *view.Dialects:
		for _, d := range v.Dialects {
			fmt.Fprintf(&b, "%s\t%s\t%s\n", d.Name, d.ConfigFile, d.Description)
		}
	case *view.Tags:
		tags := make([]string, 0, len(v.Counts))
		for t := range v.Counts {
			tags = append(tags, t)
		}
		sort.Strings(tags)
		for _, t := range tags {
			fmt.Fprintf(&b, "%s: %d\n", t, v.Counts[t])
		}
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

// FormatRow renders one load order row, indented by depth:
//
//	  3 [x] grass.esp #3 (ES Plugin, Groundcover)
//	  4 -- Late --
func FormatRow(row *view.Row) string {
	indent := strings.Repeat("  ", row.Depth)
	if row.IsSeparator() {
		return fmt.Sprintf("%3d %s-- %s --", row.Position, indent, row.Name)
	}
	box := "[ ]"
	if row.Enabled {
		box = "[x]"
	}
	line := fmt.Sprintf("%3d %s%s %s #%d", row.Position, indent, box, row.Name, row.ID)
	if tags := allTags(row); len(tags) > 0 {
		line += " (" + strings.Join(tags, ", ") + ")"
	}
	return line
}

func allTags(row *view.Row) []string {
	tags := append(append([]string{}, row.ManualTags...), row.AutoTags...)
	sort.Strings(tags)
	return tags
}

func joinPath(dir, file string) string {
	if file == "" {
		return dir
	}
	return strings.TrimRight(dir, "/") + "/" + file
}

func joinInts(ns []int) string {
	if len(ns) == 0 {
		return "-"
	}
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " ")
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
