package shell

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/ui/theme"
)

// upNext is how many queued tasks are previewed after the current one.
const upNext = 3

func (s *ShellScreen) View(width, height int) string {
	if s.session == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Loading your tasks...")
	}

	cardWidth := max(min(width-4, 80), 30)
	var b strings.Builder

	task, ok := s.session.Current()
	if ok {
		b.WriteString(theme.Card.Width(cardWidth).Render(s.renderTask(task, cardWidth-6)))
	} else {
		b.WriteString(theme.Card.Width(cardWidth).Render(theme.Hint.Render(fmt.Sprintf(
			"No tasks left at level %d. Press + to unlock more.", s.session.Level()))))
	}
	b.WriteString("\n")

	if next := s.renderUpNext(); next != "" {
		b.WriteString(next + "\n")
	}

	switch {
	case s.hinting:
		b.WriteString(theme.Hint.Render("Thinking of a hint...") + "\n")
	case s.hint != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Width(cardWidth).
			Render("💡 "+s.hint) + "\n")
	}
	b.WriteString("\n")

	for _, l := range s.log {
		b.WriteString(renderLogLine(l) + "\n")
	}
	b.WriteString(s.prompt.View())

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

// renderTask shows the task and its command checklist. Commands not yet
// entered stay hidden.
func (s *ShellScreen) renderTask(task catalog.ShellTask, width int) string {
	var b strings.Builder
	b.WriteString(theme.Selected.Render(task.Title))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  level %d", task.Level)))
	b.WriteString("\n")
	if task.Description != "" {
		b.WriteString(theme.Body.Width(width).Render(task.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, cmd := range s.session.Satisfied() {
		b.WriteString(theme.Correct.Render("✓ ") + theme.Done.Render(cmd) + "\n")
	}
	for range s.session.Remaining() {
		b.WriteString(theme.Pending.Render("○ ") + theme.Hint.Render("______") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *ShellScreen) renderUpNext() string {
	queue := s.session.Queue()
	if len(queue) <= 1 {
		return ""
	}
	queue = queue[1:min(len(queue), upNext+1)]
	titles := make([]string, len(queue))
	for i, t := range queue {
		titles[i] = t.Title
	}
	return theme.Hint.Render("Up next: " + strings.Join(titles, " · "))
}

func renderLogLine(l logLine) string {
	switch l.kind {
	case logInput:
		return theme.Hint.Render("$ " + l.text)
	case logMatch:
		return theme.Correct.Render("  ✓ " + l.text)
	case logDone:
		return lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("★ " + l.text)
	case logSkip:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("↷ " + l.text)
	}
	return theme.Body.Render(l.text)
}
