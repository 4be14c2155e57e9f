package limo

import (
	"embed"

	"github.com/spf13/cobra"

	"github.com/alekulyn/limo/pkg/cobrax/topics"
)

//go:embed topics
var topicFiles embed.FS

// installTopics adds the embedded help topics to root. Markdown is rendered
// with glamour only when stdout is a terminal.
func installTopics(root *cobra.Command) error {
	var renderer topics.Renderer = topics.PlainRenderer{}
	if stdoutIsTerminal() {
		renderer = topics.NewGlamourRenderer()
	}
	m, err := topics.Load(topicFiles, "topics", topics.Options{Renderer: renderer})
	if err != nil {
		return err
	}
	m.Install(root)
	root.SetHelpCommandGroupID("misc")
	return nil
}
