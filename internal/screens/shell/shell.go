package shell

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/NoamFav/bitvoyager/internal/screen"
	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/taskgen"
	"github.com/NoamFav/bitvoyager/internal/ui/components"
	"github.com/NoamFav/bitvoyager/internal/ui/layout"
)

// logSize is how many output lines stay on screen.
const logSize = 8

type logKind int

const (
	logInput logKind = iota
	logMatch
	logDone
	logSkip
	logInfo
)

type logLine struct {
	kind logKind
	text string
}

// ShellScreen is the shell practice terminal. Every entered line is
// recorded in the command history and checked against the current task.
type ShellScreen struct {
	engine  *session.Engine
	session *taskgen.Session
	prompt  components.Prompt
	log     []logLine
	hint    string
	hinting bool
}

var (
	_ screen.Screen          = (*ShellScreen)(nil)
	_ screen.KeyHintProvider = (*ShellScreen)(nil)
	_ screen.StatusProvider  = (*ShellScreen)(nil)
)

// New creates a ShellScreen backed by engine.
func New(engine *session.Engine) *ShellScreen {
	return &ShellScreen{
		engine: engine,
		prompt: components.NewPrompt("$ ", "type a command"),
	}
}

func (s *ShellScreen) Init() tea.Cmd {
	engine := s.engine
	return tea.Batch(
		func() tea.Msg {
			return sessionReadyMsg{Session: engine.ShellSession(context.Background())}
		},
		s.prompt.Init(),
		idleTick(),
	)
}

func idleTick() tea.Cmd {
	return tea.Tick(taskgen.TickInterval, func(t time.Time) tea.Msg {
		return idleTickMsg(t)
	})
}

func (s *ShellScreen) Title() string {
	return "Shell Practice"
}

func (s *ShellScreen) Status() []string {
	if s.session == nil {
		return nil
	}
	return []string{
		fmt.Sprintf("Lv %d", s.session.Level()),
		fmt.Sprintf("%d queued", len(s.session.Queue())),
	}
}

func (s *ShellScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Run"},
		{Key: "Ctrl+S", Description: "Skip task"},
		{Key: "Ctrl+H/?", Description: "Hint"},
		{Key: "+/-", Description: "Level"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ShellScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionReadyMsg:
		s.session = msg.Session
		return s, nil

	case idleTickMsg:
		if s.session != nil && s.session.Tick(context.Background(), time.Time(msg)) {
			s.hint = ""
			s.addLog(logInfo, "Still there? Here is a fresh task.")
		}
		return s, idleTick()

	case hintMsg:
		cur, ok := s.currentID()
		if !ok || cur != msg.TaskID {
			return s, nil
		}
		s.hinting = false
		if msg.Err == nil {
			s.hint = msg.Hint.Text
		}
		return s, nil

	case tea.KeyMsg:
		if cmd, handled := s.handleKey(msg); handled {
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.prompt, cmd = s.prompt.Update(msg)
	return s, cmd
}

func (s *ShellScreen) currentID() (string, bool) {
	if s.session == nil {
		return "", false
	}
	t, ok := s.session.Current()
	return t.ID, ok
}

// handleKey processes screen-level keys. It reports false for keys the
// prompt should receive.
func (s *ShellScreen) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if s.session == nil {
		return nil, false
	}
	ctx := context.Background()
	empty := s.prompt.Value() == ""

	switch key := msg.String(); {
	case key == "enter":
		s.submit(ctx)
		return nil, true
	case key == "ctrl+s":
		s.apply(s.session.Skip(ctx))
		return nil, true
	case key == "ctrl+h" || (key == "?" && empty):
		return s.requestHint(), true
	case (key == "+" || key == "=") && empty:
		s.changeLevel(ctx, 1)
		return nil, true
	case key == "-" && empty:
		s.changeLevel(ctx, -1)
		return nil, true
	}
	return nil, false
}

func (s *ShellScreen) submit(ctx context.Context) {
	line := s.prompt.Submit()
	if line == "" {
		return
	}
	s.addLog(logInput, line)
	s.apply(s.engine.Enter(ctx, s.session, line))
}

func (s *ShellScreen) apply(ev taskgen.Event) {
	for _, cmd := range ev.Matched {
		s.addLog(logMatch, cmd)
	}
	if c := ev.Completed; c != nil {
		s.hint = ""
		s.hinting = false
		if c.Skipped {
			s.addLog(logSkip, "Skipped: "+c.Title)
		} else {
			s.addLog(logDone, "Task complete: "+c.Title)
		}
	}
	if ev.Regenerated {
		s.addLog(logInfo, "Every unlocked task is done. Starting over with a new queue.")
	}
}

func (s *ShellScreen) changeLevel(ctx context.Context, delta int) {
	before := s.session.Level()
	after := s.engine.ChangeLevel(ctx, s.session, delta)
	if after == before {
		return
	}
	s.hint = ""
	s.addLog(logInfo, fmt.Sprintf("Level %d", after))
}

func (s *ShellScreen) requestHint() tea.Cmd {
	task, ok := s.session.Current()
	if !ok || s.hinting {
		return nil
	}
	s.hinting = true
	engine, satisfied := s.engine, s.session.Satisfied()
	return func() tea.Msg {
		h, err := engine.TaskHintFor(context.Background(), task, satisfied)
		return hintMsg{TaskID: task.ID, Hint: h, Err: err}
	}
}

func (s *ShellScreen) addLog(kind logKind, text string) {
	s.log = append(s.log, logLine{kind: kind, text: text})
	if len(s.log) > logSize {
		s.log = s.log[len(s.log)-logSize:]
	}
}
