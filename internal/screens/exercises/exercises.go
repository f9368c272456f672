package exercises

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/NoamFav/bitvoyager/internal/hints"
	"github.com/NoamFav/bitvoyager/internal/profile"
	"github.com/NoamFav/bitvoyager/internal/recommend"
	"github.com/NoamFav/bitvoyager/internal/router"
	"github.com/NoamFav/bitvoyager/internal/screen"
	"github.com/NoamFav/bitvoyager/internal/screens/summary"
	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/ui/layout"
)

// ExercisesScreen walks the learner through one practice round. The
// learner solves each exercise in their editor and reports the outcome.
type ExercisesScreen struct {
	engine   *session.Engine
	mode     recommend.Mode
	round    *session.Round
	attempts int // tries reported for the current exercise
	hint     *hints.Hint
	hinting  bool
	saving   bool
	last     *session.Result
	errMsg   string // round could not start
	warning  string // last outcome could not be saved
}

var (
	_ screen.Screen          = (*ExercisesScreen)(nil)
	_ screen.KeyHintProvider = (*ExercisesScreen)(nil)
	_ screen.StatusProvider  = (*ExercisesScreen)(nil)
)

// New creates an ExercisesScreen that selects its round in mode.
func New(engine *session.Engine, mode recommend.Mode) *ExercisesScreen {
	return &ExercisesScreen{engine: engine, mode: mode, attempts: 1}
}

func (s *ExercisesScreen) Init() tea.Cmd {
	engine, mode := s.engine, s.mode
	return func() tea.Msg {
		r, err := engine.StartRound(context.Background(), mode)
		return roundReadyMsg{Round: r, Err: err}
	}
}

func (s *ExercisesScreen) Title() string {
	if s.mode == recommend.Standard {
		return "Quick Round"
	}
	return "Exercises"
}

func (s *ExercisesScreen) Status() []string {
	if s.round == nil {
		return nil
	}
	return []string{string(s.mode), progressLabel(s.round)}
}

func (s *ExercisesScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case s.round == nil:
		return nil
	}
	return []layout.KeyHint{
		{Key: "Y", Description: "Solved"},
		{Key: "N", Description: "Not solved"},
		{Key: "S", Description: "Skip"},
		{Key: "+/-", Description: "Tries"},
		{Key: "H", Description: "Hint"},
		{Key: "Esc", Description: "Stop"},
	}
}

func (s *ExercisesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case roundReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.round = msg.Round
		return s, nil

	case recordedMsg:
		return s.handleRecorded(msg)

	case hintMsg:
		if cur, ok := s.current(); !ok || cur != msg.ExerciseID {
			return s, nil
		}
		s.hinting = false
		if msg.Err == nil {
			h := msg.Hint
			s.hint = &h
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ExercisesScreen) current() (string, bool) {
	if s.round == nil {
		return "", false
	}
	ex, ok := s.round.Current()
	return ex.ID, ok
}

func (s *ExercisesScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		if key == "r" {
			s.errMsg = ""
			return s, s.Init()
		}
		return s, nil
	}
	if s.round == nil || s.saving || s.round.Done() {
		return s, nil
	}

	switch key {
	case "y", "Y":
		return s, s.record(profile.Attempt{Success: true, Attempts: s.attempts})
	case "n", "N":
		return s, s.record(profile.Attempt{Attempts: s.attempts})
	case "s", "S":
		return s, s.record(profile.Attempt{Skipped: true, Attempts: s.attempts})
	case "+", "=":
		s.attempts++
	case "-":
		s.attempts = max(s.attempts-1, 1)
	case "h", "H":
		if s.hint != nil || s.hinting {
			return s, nil
		}
		s.hinting = true
		return s, s.fetchHint()
	}
	return s, nil
}

func (s *ExercisesScreen) record(a profile.Attempt) tea.Cmd {
	ex, ok := s.round.Current()
	if !ok {
		return nil
	}
	s.saving = true
	engine, r := s.engine, s.round
	return func() tea.Msg {
		res, err := engine.RecordExercise(context.Background(), r.ID, r.Mode, ex, a)
		return recordedMsg{Result: res, Err: err}
	}
}

func (s *ExercisesScreen) handleRecorded(msg recordedMsg) (screen.Screen, tea.Cmd) {
	s.saving = false
	if msg.Err != nil {
		s.warning = "Could not save progress: " + msg.Err.Error()
		return s, nil
	}

	s.warning = ""
	s.round.Add(msg.Result)
	res := msg.Result
	s.last = &res
	s.attempts = 1
	s.hint = nil
	s.hinting = false

	if s.round.Done() {
		sum := session.BuildSummary(s.round, s.engine.Now())
		r := s.round
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(r, sum)}
		}
	}
	return s, nil
}

func (s *ExercisesScreen) fetchHint() tea.Cmd {
	ex, ok := s.round.Current()
	if !ok {
		return nil
	}
	engine := s.engine
	return func() tea.Msg {
		h, err := engine.ExerciseHint(context.Background(), ex)
		return hintMsg{ExerciseID: ex.ID, Hint: h, Err: err}
	}
}
