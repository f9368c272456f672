package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/profile"
	"github.com/NoamFav/bitvoyager/internal/recommend"
	"github.com/NoamFav/bitvoyager/internal/store"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return newTestEngineAt(t, func() time.Time { return testNow })
}

func newTestEngineAt(t *testing.T, now func() time.Time) *Engine {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:session_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ex, err := catalog.DefaultExercises()
	if err != nil {
		t.Fatalf("exercises: %v", err)
	}
	tasks, err := catalog.DefaultTasks()
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}

	return NewEngine(Deps{
		LearnerID: "ada",
		Store:     st,
		Exercises: ex,
		Tasks:     tasks,
		Retention: 30 * 24 * time.Hour,
		Now:       now,
		Rand:      rand.New(rand.NewPCG(1, 2)),
	})
}

func TestStartRound_Standard(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.StartRound(context.Background(), recommend.Standard)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if len(r.Items) != recommend.BatchSize {
		t.Fatalf("len(Items) = %d, want %d", len(r.Items), recommend.BatchSize)
	}
	for i, d := range catalog.Difficulties() {
		if r.Items[i].Difficulty != d {
			t.Errorf("Items[%d].Difficulty = %s, want %s", i, r.Items[i].Difficulty, d)
		}
	}
	if r.ID == "" || r.Position() != 1 {
		t.Errorf("round = id %q position %d", r.ID, r.Position())
	}
}

func TestRecord_UpdatesProfileAndEvents(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	r, err := e.StartRound(ctx, recommend.Learning)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	first, _ := r.Current()

	res, err := e.Record(ctx, r, profile.Attempt{Success: true})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if res.Attempt.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1 (raised from zero)", res.Attempt.Attempts)
	}
	if want := profile.SkillDelta(first.Difficulty, res.Attempt); res.SkillDelta != want {
		t.Errorf("SkillDelta = %v, want %v", res.SkillDelta, want)
	}
	if r.Position() != 2 {
		t.Errorf("Position() = %d, want 2", r.Position())
	}

	p := e.Profile(ctx)
	if !p.IsCompleted(first.ID) {
		t.Errorf("%s not completed", first.ID)
	}
	if p.ConsecutiveDays != 1 || p.LastSessionDate != "2026-03-10" {
		t.Errorf("streak = %d on %q", p.ConsecutiveDays, p.LastSessionDate)
	}

	if _, err := e.Record(ctx, r, profile.Attempt{Skipped: true}); err != nil {
		t.Fatalf("Record skip: %v", err)
	}
	stats, err := e.Events().AttemptStats(ctx, "ada")
	if err != nil {
		t.Fatalf("AttemptStats: %v", err)
	}
	if stats.Total != 2 || stats.Successes != 1 || stats.Skips != 1 {
		t.Errorf("stats = %+v", stats)
	}

	events, err := e.Events().QueryAttempts(ctx, "ada", store.QueryOpts{})
	if err != nil {
		t.Fatalf("QueryAttempts: %v", err)
	}
	for _, ev := range events {
		if ev.SessionID != r.ID || ev.Mode != string(recommend.Learning) {
			t.Errorf("event = %+v, want session %s learning", ev, r.ID)
		}
	}
}

func TestRecord_FinishedRound(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	r := NewRound(recommend.Standard, nil, testNow)
	if _, err := e.Record(ctx, r, profile.Attempt{Success: true}); !errors.Is(err, ErrRoundFinished) {
		t.Fatalf("err = %v, want ErrRoundFinished", err)
	}
}

func TestBuildSummary(t *testing.T) {
	r := NewRound(recommend.Standard, make([]catalog.Exercise, 3), testNow)
	r.Results = []Result{
		{Attempt: profile.Attempt{Success: true, Attempts: 1}, SkillDelta: 1},
		{Attempt: profile.Attempt{Attempts: 2}, SkillDelta: -0.5},
		{Attempt: profile.Attempt{Skipped: true}, SkillDelta: -0.35},
	}

	s := BuildSummary(r, testNow.Add(90*time.Second))
	if s.Total != 3 || s.Successes != 1 || s.Failures != 1 || s.Skips != 1 {
		t.Errorf("summary = %+v", s)
	}
	if s.Duration != 90*time.Second {
		t.Errorf("Duration = %v, want 90s", s.Duration)
	}
	if diff := s.SkillDelta - 0.15; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("SkillDelta = %v, want 0.15", s.SkillDelta)
	}
	if !r.Done() {
		t.Error("Done() = false with every item recorded")
	}
}

func TestLevel(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	if got := e.Level(ctx); got != 1 {
		t.Errorf("Level() = %d, want 1", got)
	}
	tests := []struct {
		set, want int
	}{
		{0, 1},
		{2, 2},
		{999, e.Tasks().MaxLevel()},
	}
	for _, tt := range tests {
		got, err := e.SetLevel(ctx, tt.set)
		if err != nil {
			t.Fatalf("SetLevel(%d): %v", tt.set, err)
		}
		if got != tt.want || e.Level(ctx) != tt.want {
			t.Errorf("SetLevel(%d) = %d, Level() = %d, want %d", tt.set, got, e.Level(ctx), tt.want)
		}
	}
}

func TestShellSession_EnterCompletesTask(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	s := e.ShellSession(ctx)

	task, ok := s.Current()
	if !ok {
		t.Fatal("no task at level 1")
	}
	if ev := e.Enter(ctx, s, "   "); len(ev.Matched) != 0 {
		t.Errorf("blank line matched %v", ev.Matched)
	}

	completed := false
	for _, cmd := range task.Commands {
		if ev := e.Enter(ctx, s, cmd); ev.Completed != nil {
			completed = true
			if ev.Completed.TaskID != task.ID {
				t.Errorf("completed %s, want %s", ev.Completed.TaskID, task.ID)
			}
			break
		}
	}
	if !completed {
		t.Fatalf("task %s not completed by its own commands", task.ID)
	}
	if !s.Excluded(task.ID) {
		t.Errorf("task %s not excluded", task.ID)
	}

	history, err := e.TaskHistory(ctx)
	if err != nil {
		t.Fatalf("TaskHistory: %v", err)
	}
	if len(history) != 1 || history[0].TaskID != task.ID {
		t.Errorf("history = %+v", history)
	}

	// A new session sees the persisted exclusion.
	if !e.ShellSession(ctx).Excluded(task.ID) {
		t.Errorf("fresh session does not exclude %s", task.ID)
	}
}

func TestShellSession_RetentionFollowsEngineClock(t *testing.T) {
	ctx := context.Background()
	// Years away from the wall clock in either direction.
	now := time.Date(2001, 6, 1, 8, 0, 0, 0, time.UTC)
	e := newTestEngineAt(t, func() time.Time { return now })

	s := e.ShellSession(ctx)
	task, ok := s.Current()
	if !ok {
		t.Fatal("no task at level 1")
	}
	if ev := s.Skip(ctx); ev.Completed == nil {
		t.Fatal("skip did not finish the head task")
	}

	now = now.Add(29 * 24 * time.Hour)
	if !e.ShellSession(ctx).Excluded(task.ID) {
		t.Fatalf("task %s offered again within retention", task.ID)
	}

	now = now.Add(2 * 24 * time.Hour)
	if e.ShellSession(ctx).Excluded(task.ID) {
		t.Errorf("task %s still excluded after the log expired", task.ID)
	}
	history, err := e.TaskHistory(ctx)
	if err != nil {
		t.Fatalf("TaskHistory: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history = %+v, want expired log", history)
	}
}

func TestChangeLevel(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)
	s := e.ShellSession(ctx)

	if got := e.ChangeLevel(ctx, s, 1); got != 2 {
		t.Fatalf("ChangeLevel(+1) = %d, want 2", got)
	}
	if e.Level(ctx) != 2 {
		t.Errorf("persisted level = %d, want 2", e.Level(ctx))
	}
	if got := e.ChangeLevel(ctx, s, -5); got != 1 {
		t.Errorf("ChangeLevel(-5) = %d, want 1", got)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	r, err := e.StartRound(ctx, recommend.Standard)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if _, err := e.Record(ctx, r, profile.Attempt{Success: true}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	s := e.ShellSession(ctx)
	s.Skip(ctx)
	e.Enter(ctx, s, "ls")
	if _, err := e.SetLevel(ctx, 3); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}

	if err := e.Reset(ctx, ResetAll()); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if p := e.Profile(ctx); len(p.CompletedQuestions) != 0 {
		t.Errorf("profile not cleared: %v", p.CompletedQuestions)
	}
	if h, _ := e.TaskHistory(ctx); len(h) != 0 {
		t.Errorf("task history not cleared: %v", h)
	}
	if e.Level(ctx) != 1 {
		t.Errorf("level = %d, want 1", e.Level(ctx))
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	s := e.ShellSession(ctx)
	s.Skip(ctx)

	r, err := e.StartRound(ctx, recommend.Standard)
	if err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if _, err := e.Record(ctx, r, profile.Attempt{Attempts: 2}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	st, err := e.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Attempts.Failures != 1 || st.TasksSkipped != 1 || st.TasksCompleted != 0 || st.Level != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestExerciseHint_Offline(t *testing.T) {
	e := newTestEngine(t)
	ex := e.Exercises().All()[0]
	h, err := e.ExerciseHint(context.Background(), ex)
	if err != nil {
		t.Fatalf("ExerciseHint: %v", err)
	}
	if h.Text == "" {
		t.Error("empty hint")
	}
}
