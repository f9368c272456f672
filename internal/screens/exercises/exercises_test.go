package exercises

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/NoamFav/bitvoyager/internal/recommend"
	"github.com/NoamFav/bitvoyager/internal/router"
	"github.com/NoamFav/bitvoyager/internal/screens/summary"
	"github.com/NoamFav/bitvoyager/internal/session"
	"github.com/NoamFav/bitvoyager/internal/session/sessiontest"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// run executes cmd and feeds its message back into the screen.
func run(t *testing.T, s *ExercisesScreen, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	s.Update(msg)
	return msg
}

func startedScreen(t *testing.T, mode recommend.Mode) (*ExercisesScreen, *session.Engine) {
	t.Helper()
	e := sessiontest.NewEngine(t)
	s := New(e, mode)
	run(t, s, s.Init())
	if s.round == nil {
		t.Fatalf("round not started: %s", s.errMsg)
	}
	return s, e
}

func TestExercisesScreen_Loading(t *testing.T) {
	s := New(sessiontest.NewEngine(t), recommend.Learning)
	if view := s.View(80, 24); !strings.Contains(view, "Picking") {
		t.Errorf("expected loading view, got %q", view)
	}
	if hints := s.KeyHints(); hints != nil {
		t.Errorf("expected no key hints while loading, got %v", hints)
	}
}

func TestExercisesScreen_StartsRound(t *testing.T) {
	s, _ := startedScreen(t, recommend.Standard)

	if len(s.round.Items) != recommend.BatchSize {
		t.Fatalf("items = %d, want %d", len(s.round.Items), recommend.BatchSize)
	}
	if got := s.Status(); len(got) != 2 || got[1] != "1/3" {
		t.Errorf("Status = %v, want [standard 1/3]", got)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, s.round.Items[0].Title) {
		t.Errorf("view missing current exercise title %q", s.round.Items[0].Title)
	}
}

func TestExercisesScreen_AttemptCounter(t *testing.T) {
	s, _ := startedScreen(t, recommend.Learning)

	s.Update(press('+'))
	s.Update(press('+'))
	if s.attempts != 3 {
		t.Errorf("attempts = %d, want 3", s.attempts)
	}
	for range 5 {
		s.Update(press('-'))
	}
	if s.attempts != 1 {
		t.Errorf("attempts = %d, want floor of 1", s.attempts)
	}
}

func TestExercisesScreen_RecordAdvances(t *testing.T) {
	ctx := context.Background()
	s, e := startedScreen(t, recommend.Learning)
	first, _ := s.round.Current()

	s.Update(press('+'))
	_, cmd := s.Update(press('y'))
	if !s.saving {
		t.Error("expected saving while the outcome persists")
	}
	run(t, s, cmd)

	if len(s.round.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(s.round.Results))
	}
	res := s.round.Results[0]
	if res.Exercise.ID != first.ID || !res.Attempt.Success || res.Attempt.Attempts != 2 {
		t.Errorf("result = %+v", res)
	}
	if s.attempts != 1 {
		t.Errorf("attempts not reset: %d", s.attempts)
	}
	if !e.Profile(ctx).IsCompleted(first.ID) {
		t.Error("solved exercise not marked completed")
	}
	if !strings.Contains(s.View(100, 40), "✓ "+first.Title) {
		t.Error("view missing feedback for the previous exercise")
	}
}

func TestExercisesScreen_FinishReplacesWithSummary(t *testing.T) {
	s, _ := startedScreen(t, recommend.Standard)

	var last tea.Cmd
	for i, k := range []rune{'y', 'n', 's'} {
		_, cmd := s.Update(press(k))
		if i < 2 {
			run(t, s, cmd)
			continue
		}
		msg := cmd()
		_, last = s.Update(msg)
	}

	if !s.round.Done() {
		t.Fatal("round not done after three outcomes")
	}
	if last == nil {
		t.Fatal("expected a navigation command after the last outcome")
	}
	replace, ok := last().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := replace.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("replacement screen = %T, want *summary.SummaryScreen", replace.Screen)
	}
}

func TestExercisesScreen_Hint(t *testing.T) {
	s, _ := startedScreen(t, recommend.Learning)
	cur, _ := s.round.Current()

	_, cmd := s.Update(press('h'))
	if !s.hinting {
		t.Error("expected hinting state")
	}
	run(t, s, cmd)

	if s.hint == nil {
		t.Fatal("expected a hint")
	}
	if !strings.Contains(s.hint.Text, cur.Function) {
		t.Errorf("hint %q does not mention %s", s.hint.Text, cur.Function)
	}
	if _, cmd := s.Update(press('h')); cmd != nil {
		t.Error("expected no second hint request for the same exercise")
	}
}

func TestExercisesScreen_StaleHintIgnored(t *testing.T) {
	s, _ := startedScreen(t, recommend.Learning)
	s.hinting = true
	s.Update(hintMsg{ExerciseID: "not-current"})
	if !s.hinting || s.hint != nil {
		t.Error("hint for another exercise should be ignored")
	}
}

func TestExercisesScreen_ErrorAndRetry(t *testing.T) {
	s := New(sessiontest.NewEngine(t), recommend.Learning)
	s.Update(roundReadyMsg{Err: errors.New("boom")})

	if view := s.View(80, 24); !strings.Contains(view, "boom") {
		t.Errorf("expected error in view, got %q", view)
	}
	if _, cmd := s.Update(press('y')); cmd != nil {
		t.Error("outcome keys should be ignored in the error state")
	}

	_, cmd := s.Update(press('r'))
	run(t, s, cmd)
	if s.errMsg != "" || s.round == nil {
		t.Errorf("retry did not start a round: %q", s.errMsg)
	}
}

func TestExercisesScreen_SaveFailureKeepsExercise(t *testing.T) {
	s, _ := startedScreen(t, recommend.Learning)
	cur, _ := s.round.Current()

	s.saving = true
	s.Update(recordedMsg{Err: errors.New("disk full")})

	if s.saving {
		t.Error("saving flag not cleared")
	}
	if next, _ := s.round.Current(); next.ID != cur.ID {
		t.Error("round advanced after a failed save")
	}
	if !strings.Contains(s.View(100, 40), "disk full") {
		t.Error("expected save warning in view")
	}
}

func TestExercisesScreen_Titles(t *testing.T) {
	e := sessiontest.NewEngine(t)
	if got := New(e, recommend.Standard).Title(); got != "Quick Round" {
		t.Errorf("standard title = %q", got)
	}
	if got := New(e, recommend.Learning).Title(); got != "Exercises" {
		t.Errorf("learning title = %q", got)
	}
}
