// Package topics adds help topics to a cobra command tree. Topics are
// markdown or text documents read from an fs.FS, usually an embedded
// directory, and are shown by "help <topic>" next to the command help.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alekulyn/limo/pkg/errors"
)

// Manager holds the topics of one command tree.
type Manager struct {
	topics       map[string]*Topic
	extensions   []string
	renderer     Renderer
	originalHelp func(*cobra.Command, []string)
}

// Topic is one help document.
type Topic struct {
	Name    string
	Ext     string
	Content string
}

// Options configures a Manager.
type Options struct {
	// Extensions of the files loaded as topics. Defaults to .md and .txt.
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// Load reads every topic file under root in fsys.
func Load(fsys fs.FS, root string, opts Options) (*Manager, error) {
	m := &Manager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".md", ".txt"}
	}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := path.Ext(p)
		if d.IsDir() || !slices.Contains(m.extensions, ext) {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		m.topics[name] = &Topic{Name: name, Ext: ext, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileRead, "failed to load help topics")
	}
	return m, nil
}

// Get finds a topic by name. Flag-style names ("--format") also match
// topics stored as "option-format".
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics["option-"+name]
	return t, ok
}

// Names lists the topic names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Render writes a topic through the manager's renderer.
func (m *Manager) Render(w io.Writer, t *Topic) error {
	_, err := io.WriteString(w, m.renderer.Render(t.Content, t.Ext))
	return err
}

// WriteList writes the topic index, option topics listed as flags.
func (m *Manager) WriteList(w io.Writer, program string) error {
	names := m.Names()
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}

	var general, options []string
	for _, name := range names {
		if opt, ok := strings.CutPrefix(name, "option-"); ok {
			options = append(options, opt)
		} else {
			general = append(general, name)
		}
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	if len(general) > 0 {
		b.WriteString("\nGeneral topics:\n")
		for _, name := range general {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		b.WriteString("\nOption topics:\n")
		for _, name := range options {
			fmt.Fprintf(&b, "  --%s\n", name)
		}
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
	_, err := io.WriteString(w, b.String())
	return err
}

// Install replaces the help command of root with one that also knows the
// manager's topics. "help topics" lists them.
func (m *Manager) Install(root *cobra.Command) {
	m.originalHelp = root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				m.originalHelp(root, nil)
				return nil
			}
			if args[0] == "topics" {
				return m.WriteList(cmd.OutOrStdout(), root.Name())
			}
			if t, ok := m.Get(args[0]); ok {
				return m.Render(cmd.OutOrStdout(), t)
			}
			target, _, err := root.Find(args)
			if err != nil || target == nil {
				return errors.Newf(errors.ErrNotFound, "unknown help topic %q", strings.Join(args, " ")).
					WithDetail("topics", m.Names())
			}
			m.originalHelp(target, nil)
			return nil
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}
