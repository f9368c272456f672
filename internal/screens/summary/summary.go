package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/NoamFav/bitvoyager/internal/router"
	"github.com/NoamFav/bitvoyager/internal/screen"
	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/ui/layout"
	"github.com/NoamFav/bitvoyager/internal/ui/theme"
)

// SummaryScreen displays the outcome of a finished round.
type SummaryScreen struct {
	round   *session.Round
	summary session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for round r.
func New(r *session.Round, sum session.Summary) *SummaryScreen {
	return &SummaryScreen{round: r, summary: sum}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Round Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Round complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Solved: %d      Missed: %d      Skipped: %d      Skill: %s",
		sum.Successes, sum.Failures, sum.Skips, formatDelta(sum.SkillDelta))
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	if s.round == nil || len(s.round.Results) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Exercises")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, res := range s.round.Results {
		ex := res.Exercise
		badge := theme.Difficulty(string(ex.Difficulty)).Render(ex.Difficulty.DisplayName())
		line := fmt.Sprintf("%s  %s    %s    %s",
			badge, ex.Title, outcome(res), formatDelta(res.SkillDelta))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}

func outcome(res session.Result) string {
	a := res.Attempt
	switch {
	case a.Skipped:
		return theme.Hint.Render("skipped")
	case a.Success && a.Attempts <= 1:
		return theme.Correct.Render("✓ first try")
	case a.Success:
		return theme.Correct.Render(fmt.Sprintf("✓ %d tries", a.Attempts))
	}
	return theme.Incorrect.Render(fmt.Sprintf("✗ %d tries", a.Attempts))
}

func formatDelta(d float64) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case d > 0:
		style = style.Foreground(theme.Success)
	case d < 0:
		style = style.Foreground(theme.Error)
	}
	return style.Render(fmt.Sprintf("%+.1f", d))
}
