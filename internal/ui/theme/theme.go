package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: a dark terminal with phosphor accents.
var (
	Primary   = lipgloss.Color("#22D3EE") // Cyan
	Secondary = lipgloss.Color("#A3E635") // Lime
	Accent    = lipgloss.Color("#FACC15") // Amber
	Success   = lipgloss.Color("#4ADE80") // Green
	Error     = lipgloss.Color("#F87171") // Red
	Text      = lipgloss.Color("#E5E7EB") // Light gray
	TextDim   = lipgloss.Color("#6B7280") // Gray
	BgDark    = lipgloss.Color("#0B1120") // Near black
	BgCard    = lipgloss.Color("#111827") // Charcoal
	Border    = lipgloss.Color("#374151") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Code = lipgloss.NewStyle().
		Foreground(Secondary)

	Prompt = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Done = lipgloss.NewStyle().
		Foreground(Success).
		Strikethrough(true)

	Pending = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Difficulty returns the badge style for a difficulty name.
func Difficulty(name string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	switch name {
	case "easy":
		return base.Foreground(BgDark).Background(Success)
	case "medium":
		return base.Foreground(BgDark).Background(Accent)
	case "hard":
		return base.Foreground(BgDark).Background(Error)
	}
	return base.Foreground(Text).Background(Border)
}
