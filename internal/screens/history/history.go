package history

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/NoamFav/bitvoyager/internal/router"
	"github.com/NoamFav/bitvoyager/internal/screen"
	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/store"
	"github.com/NoamFav/bitvoyager/internal/ui/layout"
	"github.com/NoamFav/bitvoyager/internal/ui/theme"
)

// attemptLimit caps how many exercise attempts are loaded.
const attemptLimit = 50

type tab int

const (
	tabExercises tab = iota
	tabTasks
)

type historyLoadedMsg struct {
	Attempts []store.AttemptEvent
	Tasks    []store.TaskCompletion
	Err      error
}

// HistoryScreen lists past exercise attempts and finished shell tasks.
type HistoryScreen struct {
	engine   *session.Engine
	attempts []store.AttemptEvent
	tasks    []store.TaskCompletion // newest first
	tab      tab
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen backed by engine.
func New(engine *session.Engine) *HistoryScreen {
	return &HistoryScreen{engine: engine}
}

func (s *HistoryScreen) Init() tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		ctx := context.Background()

		attempts, err := engine.RecentAttempts(ctx, attemptLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		tasks, err := engine.TaskHistory(ctx)
		if err != nil {
			return historyLoadedMsg{Attempts: attempts}
		}
		slices.Reverse(tasks)
		return historyLoadedMsg{Attempts: attempts, Tasks: tasks}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Exercises/Tasks"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.tasks = msg.Tasks
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.tab = 1 - s.tab
			s.selected = 0
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < s.rows()-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) rows() int {
	if s.tab == tabTasks {
		return len(s.tasks)
	}
	return len(s.attempts)
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, s.renderTabs()))
	b.WriteString("\n\n")

	var lines []string
	if s.tab == tabTasks {
		lines = s.taskLines()
	} else {
		lines = s.attemptLines()
	}
	if len(lines) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Nothing here yet. Start practicing!"))
		return b.String()
	}

	// Keep the selection visible.
	visible := max(height-4, 1)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(start+visible, len(lines))

	for i := start; i < end; i++ {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+lines[i])))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderTabs() string {
	labels := []string{
		fmt.Sprintf("Exercises (%d)", len(s.attempts)),
		fmt.Sprintf("Shell tasks (%d)", len(s.tasks)),
	}
	for i, l := range labels {
		if tab(i) == s.tab {
			labels[i] = theme.Selected.Underline(true).Render(l)
		} else {
			labels[i] = theme.Hint.Render(l)
		}
	}
	return strings.Join(labels, "    ")
}

func (s *HistoryScreen) attemptLines() []string {
	lines := make([]string, 0, len(s.attempts))
	for _, a := range s.attempts {
		title := a.ItemID
		if ex, ok := s.engine.Exercises().Get(a.ItemID); ok {
			title = ex.Title
		}
		var result string
		switch {
		case a.Skipped:
			result = "skipped"
		case a.Success:
			result = fmt.Sprintf("solved in %d", a.Attempts)
		default:
			result = fmt.Sprintf("missed after %d", a.Attempts)
		}
		lines = append(lines, fmt.Sprintf("%s  %-28s %-16s %+5.1f  %s",
			a.Timestamp.Format("Jan 02 15:04"), title, result, a.SkillDelta, a.Mode))
	}
	return lines
}

func (s *HistoryScreen) taskLines() []string {
	lines := make([]string, 0, len(s.tasks))
	for _, c := range s.tasks {
		status := "done"
		if c.Skipped {
			status = "skipped"
		}
		lines = append(lines, fmt.Sprintf("%s  %-32s %s",
			c.CompletedAt.Format("Jan 02 15:04"), c.Title, status))
	}
	return lines
}
