package style

import (
	"strings"

	"github.com/pterm/pterm"
)

// Status is the display state of a load order row.
type Status string

const (
	StatusEnabled   Status = "enabled"
	StatusDisabled  Status = "disabled"
	StatusSeparator Status = "separator"
	StatusError     Status = "error"
)

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusEnabled:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusSeparator:
		return pterm.NewStyle(pterm.FgMagenta, pterm.Bold)
	case StatusError:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Indicator is the one-rune marker shown in front of a row.
func Indicator(status Status) string {
	switch status {
	case StatusEnabled:
		return EnabledIndicator
	case StatusDisabled:
		return DisabledIndicator
	case StatusError:
		return ErrorIndicator
	default:
		return ""
	}
}

// RenderName styles an entry name for its status.
func RenderName(name string, status Status) string {
	switch status {
	case StatusSeparator:
		return SeparatorStyle.Render(name)
	case StatusDisabled:
		return DisabledStyle.Render(name)
	default:
		return EnabledStyle.Render(name)
	}
}

// RenderTags renders manual tags as bracketed badges followed by the
// automatic ones in a quieter style.
func RenderTags(manual, auto []string) string {
	parts := make([]string, 0, len(manual)+len(auto))
	for _, t := range manual {
		parts = append(parts, ManualTagStyle.Render(t))
	}
	for _, t := range auto {
		parts = append(parts, AutoTagStyle.Render(t))
	}
	return strings.Join(parts, " ")
}
