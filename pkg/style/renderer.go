package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/alekulyn/limo/pkg/errors"
)

// RenderError formats err for a terminal, followed by the details of a
// coded error one per line.
func RenderError(err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", pterm.Error.Prefix.Text, pterm.Error.MessageStyle.Sprint(err.Error()))

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n  %s %v", MutedStyle.Render(k+":"), details[k])
	}
	return b.String()
}

// RenderHeading renders a title line with an optional muted subtitle.
func RenderHeading(title, subtitle string) string {
	if subtitle == "" {
		return TitleStyle.Render(title)
	}
	return TitleStyle.Render(title) + " " + SubtitleStyle.Render(subtitle)
}
