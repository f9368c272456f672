package stats

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/NoamFav/bitvoyager/internal/profile"
	"github.com/NoamFav/bitvoyager/internal/router"
	"github.com/NoamFav/bitvoyager/internal/screen"
	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/ui/components"
	"github.com/NoamFav/bitvoyager/internal/ui/layout"
	"github.com/NoamFav/bitvoyager/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats session.Stats
	Err   error
}

// StatsScreen shows per-tag skill levels and practice totals.
type StatsScreen struct {
	engine *session.Engine
	stats  session.Stats
	loaded bool
	errMsg string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen backed by engine.
func New(engine *session.Engine) *StatsScreen {
	return &StatsScreen{engine: engine}
}

func (s *StatsScreen) Init() tea.Cmd {
	engine := s.engine
	return func() tea.Msg {
		st, err := engine.Stats(context.Background())
		return statsLoadedMsg{Stats: st, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
		}
		s.loaded = true
	case tea.KeyMsg:
		if msg.String() == "q" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading stats...")
	}

	st := s.stats
	p := st.Profile
	var b strings.Builder
	b.WriteString("\n")

	summary := fmt.Sprintf("Streak: %d days    Completed: %d    Shell level: %d",
		p.ConsecutiveDays, len(p.CompletedQuestions), st.Level)
	b.WriteString(layout.Centered(width, theme.Body.Render(summary)))
	b.WriteString("\n")

	attempts := fmt.Sprintf("Attempts: %d    Solved: %d    Missed: %d    Skipped: %d",
		st.Attempts.Total, st.Attempts.Successes, st.Attempts.Failures, st.Attempts.Skips)
	b.WriteString(layout.Centered(width, theme.Hint.Render(attempts)))
	b.WriteString("\n")

	tasks := fmt.Sprintf("Shell tasks done: %d    skipped: %d",
		st.TasksCompleted, st.TasksSkipped)
	b.WriteString(layout.Centered(width, theme.Hint.Render(tasks)))
	b.WriteString("\n\n")

	barWidth := max(min(width-10, 60), 30)
	b.WriteString(layout.Centered(width, theme.Selected.Render(
		fmt.Sprintf("Overall skill %.1f", p.OverallSkill()))))
	b.WriteString("\n\n")

	tags := make([]string, 0, len(p.SkillLevels))
	for tag := range p.SkillLevels {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	if len(tags) == 0 {
		b.WriteString(layout.Centered(width, theme.Hint.Render("No skills tracked yet. Start practicing!")))
		return b.String()
	}

	var bars []string
	for _, tag := range tags {
		bar := components.NewProgressBar(tag, p.SkillLevels[tag], profile.MaxSkill, barWidth)
		bar.LabelWidth = 14
		bars = append(bars, bar.View())
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(bars, "\n")))
	return b.String()
}
