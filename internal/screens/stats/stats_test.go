package stats

import (
	"context"
	"strings"
	"testing"

	"github.com/NoamFav/bitvoyager/internal/profile"
	"github.com/NoamFav/bitvoyager/internal/recommend"
	"github.com/NoamFav/bitvoyager/internal/session/sessiontest"
)

func TestStatsScreen_Title(t *testing.T) {
	s := New(sessiontest.NewEngine(t))
	if s.Title() != "Stats" {
		t.Errorf("Title = %q, want %q", s.Title(), "Stats")
	}
}

func TestStatsScreen_FreshLearner(t *testing.T) {
	s := New(sessiontest.NewEngine(t))
	if view := s.View(80, 24); !strings.Contains(view, "Loading") {
		t.Errorf("expected loading view, got %q", view)
	}

	s.Update(s.Init()())
	view := s.View(80, 24)
	for _, want := range []string{"Attempts: 0", "Shell level: 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStatsScreen_ShowsSkillBars(t *testing.T) {
	ctx := context.Background()
	e := sessiontest.NewEngine(t)
	ex := e.Exercises().All()[0]
	if _, err := e.RecordExercise(ctx, "round-1", recommend.Learning, ex, profile.Attempt{Success: true, Attempts: 1}); err != nil {
		t.Fatalf("RecordExercise: %v", err)
	}

	s := New(e)
	s.Update(s.Init()())
	view := s.View(100, 40)

	if !strings.Contains(view, "Solved: 1") {
		t.Errorf("view missing solved count: %q", view)
	}
	if !strings.Contains(view, "█") {
		t.Errorf("expected skill bars in view: %q", view)
	}
}
