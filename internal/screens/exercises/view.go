package exercises

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/hints"
	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/ui/theme"
)

// maxCases is how many test cases are listed under an exercise.
const maxCases = 3

func progressLabel(r *session.Round) string {
	return fmt.Sprintf("%d/%d", r.Position(), len(r.Items))
}

func (s *ExercisesScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.round == nil {
		return renderLoading(width)
	}
	ex, ok := s.round.Current()
	if !ok {
		return renderLoading(width)
	}

	cardWidth := max(min(width-4, 80), 30)
	var b strings.Builder

	if s.last != nil {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderLast(*s.last)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Card.Width(cardWidth).Render(renderExercise(ex, cardWidth-6))))
	b.WriteString("\n\n")

	tries := fmt.Sprintf("Tries: %d", s.attempts)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Body.Render(tries)))
	b.WriteString("\n")

	switch {
	case s.hint != nil:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderHint(*s.hint, cardWidth)))
		b.WriteString("\n")
	case s.hinting:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("Thinking of a hint...")))
		b.WriteString("\n")
	}

	if s.saving {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("Saving...")))
		b.WriteString("\n")
	}
	if s.warning != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render(s.warning)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderExercise(ex catalog.Exercise, width int) string {
	var b strings.Builder

	badge := theme.Difficulty(string(ex.Difficulty)).Render(ex.Difficulty.DisplayName())
	b.WriteString(badge + "  " + theme.Selected.Render(ex.Title) + "\n")
	if len(ex.Tags) > 0 {
		b.WriteString(theme.Hint.Render(strings.Join(ex.Tags, " · ")) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Body.Width(width).Render(ex.Prompt))
	b.WriteString("\n")

	if ex.Code != "" {
		b.WriteString("\n")
		b.WriteString(renderCode(ex.Code, ex.EditableLines))
		b.WriteString("\n")
	}

	if len(ex.TestCases) > 0 {
		b.WriteString("\n")
		for i, tc := range ex.TestCases {
			if i == maxCases {
				b.WriteString(theme.Hint.Render(fmt.Sprintf("  … %d more", len(ex.TestCases)-maxCases)))
				break
			}
			b.WriteString(theme.Code.Render("  " + ex.FormatCase(tc)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderCode numbers the lines of code and marks the ones the learner
// fills in. Editable line indexes are zero-based.
func renderCode(code string, editable []int) string {
	marked := make(map[int]bool, len(editable))
	for _, n := range editable {
		marked[n] = true
	}

	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	var b strings.Builder
	for i, line := range lines {
		gutter := theme.Hint.Render(fmt.Sprintf("%3d ", i+1))
		if marked[i] {
			b.WriteString(gutter + lipgloss.NewStyle().Foreground(theme.Accent).Render("▌"+line))
		} else {
			b.WriteString(gutter + theme.Code.Render(" "+line))
		}
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderHint(h hints.Hint, width int) string {
	text := "💡 " + h.Text
	if h.Command != "" {
		text += "  " + theme.Code.Render(h.Command)
	}
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(width).
		Align(lipgloss.Center).
		Render(text)
}

func renderLast(res session.Result) string {
	var text string
	switch {
	case res.Attempt.Skipped:
		text = theme.Hint.Render("Skipped " + res.Exercise.Title)
	case res.Attempt.Success:
		text = theme.Correct.Render("✓ " + res.Exercise.Title)
	default:
		text = theme.Incorrect.Render("✗ " + res.Exercise.Title)
	}
	return text + theme.Hint.Render(fmt.Sprintf("  skill %+.1f", res.SkillDelta))
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Picking your exercises...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press R to retry or Esc to go back.", errMsg))
}
