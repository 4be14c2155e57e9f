package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer formats raw topic content for display. ext is the topic file
// extension, including the dot.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer returns content unchanged.
type PlainRenderer struct{}

func (PlainRenderer) Render(content string, ext string) string {
	return content
}

// GlamourRenderer renders markdown topics with glamour. Other topics pass
// through unchanged, as does anything glamour fails on.
type GlamourRenderer struct {
	Style string // "auto", "notty", "dark", "light" or a style file path
	Width int    // 0 keeps glamour's default wrap
}

func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func (r *GlamourRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
