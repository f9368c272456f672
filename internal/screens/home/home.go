package home

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/NoamFav/bitvoyager/internal/recommend"
	"github.com/NoamFav/bitvoyager/internal/router"
	"github.com/NoamFav/bitvoyager/internal/screen"
	"github.com/NoamFav/bitvoyager/internal/screens/exercises"
	"github.com/NoamFav/bitvoyager/internal/screens/history"
	"github.com/NoamFav/bitvoyager/internal/screens/shell"
	"github.com/NoamFav/bitvoyager/internal/screens/stats"
	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/ui/components"
	"github.com/NoamFav/bitvoyager/internal/ui/layout"
)

type statsLoadedMsg struct {
	Stats session.Stats
	Err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	engine *session.Engine
	menu   components.Menu
	stats  session.Stats
	loaded bool
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
	_ screen.StatusProvider  = (*HomeScreen)(nil)
	_ screen.Resumer         = (*HomeScreen)(nil)
)

// New creates a HomeScreen backed by engine.
func New(engine *session.Engine) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: "Shell practice", Detail: "learn commands by typing them",
			Action: push(func() screen.Screen { return shell.New(engine) })},
		{Label: "Exercises", Detail: "adapted to your skills",
			Action: push(func() screen.Screen { return exercises.New(engine, recommend.Learning) })},
		{Label: "Quick round", Detail: "one easy, one medium, one hard",
			Action: push(func() screen.Screen { return exercises.New(engine, recommend.Standard) })},
		{Label: "Stats",
			Action: push(func() screen.Screen { return stats.New(engine) })},
		{Label: "History",
			Action: push(func() screen.Screen { return history.New(engine) })},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		engine: engine,
		menu:   components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the stats after a practice screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	engine := h.engine
	return func() tea.Msg {
		st, err := engine.Stats(context.Background())
		return statsLoadedMsg{Stats: st, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		// A failed load keeps the previous numbers.
		if msg.Err == nil {
			h.stats = msg.Stats
			h.loaded = true
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 60
	cw := contentWidth(width)

	var offline string
	if !h.engine.HintsOnline() {
		offline = renderOfflineNote(cw)
	}

	menu := lipgloss.NewStyle().Width(cw).Render(h.menu.View())
	content := joinSections(
		renderTitle(cw, compact),
		renderStatsBar(h.stats, h.loaded, cw),
		menu,
		offline,
	)
	return renderFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Status() []string {
	return []string{h.engine.LearnerID()}
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
