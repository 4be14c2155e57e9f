package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	NormalStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Background(SurfaceColor).
			Padding(0, 1)
)

// Load order styles
var (
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(SeparatorColor).
			Bold(true)

	EnabledStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Strikethrough(true)

	IDStyle = lipgloss.NewStyle().
		Foreground(MutedColor).
		Width(4).
		Align(lipgloss.Right)

	ManualTagStyle = lipgloss.NewStyle().
			Foreground(ManualTagColor).
			Border(lipgloss.NormalBorder(), false, true).
			BorderForeground(ManualTagColor).
			Padding(0, 1)

	AutoTagStyle = lipgloss.NewStyle().
			Foreground(AutoTagColor).
			Padding(0, 1)

	CurrentProfileStyle = lipgloss.NewStyle().
				Foreground(ProfileColor).
				Bold(true)
)

// Indicators
var (
	EnabledIndicator  = SuccessStyle.Render("✓")
	DisabledIndicator = MutedStyle.Render("○")
	ErrorIndicator    = ErrorStyle.Render("✗")
	WarningIndicator  = WarningStyle.Render("!")
	InfoIndicator     = InfoStyle.Render("•")
)

func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
