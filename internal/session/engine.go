package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/hints"
	"github.com/NoamFav/bitvoyager/internal/profile"
	"github.com/NoamFav/bitvoyager/internal/recommend"
	"github.com/NoamFav/bitvoyager/internal/store"
	"github.com/NoamFav/bitvoyager/internal/taskgen"
)

// Deps are the collaborators an Engine is built from.
type Deps struct {
	LearnerID   string
	Store       *store.Store
	Exercises   *catalog.Exercises
	Tasks       *catalog.Tasks
	Hints       *hints.Service // nil gives offline hints
	Retention   time.Duration  // profile and task history lifetime
	IdleTimeout time.Duration
	Logger      *slog.Logger
	Now         func() time.Time
	Rand        *rand.Rand // nil seeds from the runtime
}

// Engine ties the practice components to one learner's persisted state.
// The TUI and the CLI both drive practice through it.
type Engine struct {
	learnerID string
	exercises *catalog.Exercises
	tasks     *catalog.Tasks
	profiles  *profile.Store
	selector  *recommend.Selector
	events    store.EventRepo
	history   *store.HistoryRepo
	taskLog   *store.TaskRepo
	settings  *store.SettingsRepo
	hints     *hints.Service
	idle      time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewEngine wires an Engine from d.
func NewEngine(d Deps) *Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Hints == nil {
		d.Hints = hints.NewService(nil, hints.DefaultConfig(), d.Logger)
	}
	logger := d.Logger.With("learner", d.LearnerID)
	st := d.Store.WithClock(d.Now)

	selOpts := []recommend.Option{recommend.WithClock(d.Now)}
	if d.Rand != nil {
		selOpts = append(selOpts, recommend.WithRand(d.Rand))
	}

	return &Engine{
		learnerID: d.LearnerID,
		exercises: d.Exercises,
		tasks:     d.Tasks,
		profiles: profile.NewStore(st.ProfileRepo(), d.LearnerID,
			profile.WithRetention(d.Retention),
			profile.WithClock(d.Now),
			profile.WithLogger(d.Logger)),
		selector: recommend.NewSelector(selOpts...),
		events:   st.EventRepo(),
		history:  st.HistoryRepo(d.LearnerID),
		taskLog:  st.TaskRepo(d.LearnerID, d.Retention),
		settings: st.SettingsRepo(d.LearnerID),
		hints:    d.Hints,
		idle:     d.IdleTimeout,
		logger:   logger,
		now:      d.Now,
	}
}

func (e *Engine) LearnerID() string             { return e.learnerID }
func (e *Engine) Exercises() *catalog.Exercises { return e.exercises }
func (e *Engine) Tasks() *catalog.Tasks         { return e.tasks }
func (e *Engine) Events() store.EventRepo       { return e.events }
func (e *Engine) Now() time.Time                { return e.now() }

// Profile loads the learner profile. It never fails.
func (e *Engine) Profile(ctx context.Context) *profile.Profile {
	return e.profiles.Load(ctx)
}

// StartRound selects a batch for mode and starts a round over it.
func (e *Engine) StartRound(ctx context.Context, mode recommend.Mode) (*Round, error) {
	batch, err := e.selector.SelectBatch(mode, e.profiles.Load(ctx), e.exercises)
	if err != nil {
		return nil, err
	}
	return NewRound(mode, batch, e.now()), nil
}

// Rank returns the learning-mode ranking of the uncompleted exercises.
func (e *Engine) Rank(ctx context.Context) []recommend.Scored {
	return e.selector.Rank(e.profiles.Load(ctx), e.exercises)
}

// Record applies a to the round's current exercise and advances the round.
func (e *Engine) Record(ctx context.Context, r *Round, a profile.Attempt) (Result, error) {
	ex, ok := r.Current()
	if !ok {
		return Result{}, ErrRoundFinished
	}
	res, err := e.RecordExercise(ctx, r.ID, r.Mode, ex, a)
	if err != nil {
		return Result{}, err
	}
	r.Add(res)
	return res, nil
}

// RecordExercise applies an outcome for ex to the profile, saves it and
// appends an attempt event. A failed event append is only logged.
func (e *Engine) RecordExercise(ctx context.Context, sessionID string, mode recommend.Mode, ex catalog.Exercise, a profile.Attempt) (Result, error) {
	a.Attempts = max(a.Attempts, 1)
	now := e.now()

	p := profile.ApplyAttempt(e.profiles.Load(ctx), ex, a, now)
	if a.Success {
		p = profile.MarkCompleted(p, ex.ID)
	}
	p = profile.TouchSession(p, now)
	if err := e.profiles.Save(ctx, p); err != nil {
		return Result{}, err
	}

	res := Result{Exercise: ex, Attempt: a, SkillDelta: profile.SkillDelta(ex.Difficulty, a)}
	if err := e.events.AppendAttempt(ctx, store.AttemptEventData{
		LearnerID:  e.learnerID,
		SessionID:  sessionID,
		ItemID:     ex.ID,
		Mode:       string(mode),
		Success:    a.Success,
		Skipped:    a.Skipped,
		Attempts:   a.Attempts,
		SkillDelta: res.SkillDelta,
	}); err != nil {
		e.logger.Warn("append attempt event", "item_id", ex.ID, "err", err)
	}
	return res, nil
}

// Level returns the persisted shell task level, at least 1.
func (e *Engine) Level(ctx context.Context) int {
	n, err := e.settings.GetInt(ctx, store.KeyShellLevel, 1)
	if err != nil {
		e.logger.Warn("read shell level", "err", err)
	}
	return max(n, 1)
}

// SetLevel clamps level to the catalog's range and persists it.
func (e *Engine) SetLevel(ctx context.Context, level int) (int, error) {
	level = min(max(level, 1), max(e.tasks.MaxLevel(), 1))
	if err := e.settings.SetInt(ctx, store.KeyShellLevel, level); err != nil {
		return 0, err
	}
	return level, nil
}

// ShellSession starts a task session at the persisted level.
func (e *Engine) ShellSession(ctx context.Context) *taskgen.Session {
	cfg := taskgen.DefaultConfig()
	cfg.Level = e.Level(ctx)
	if e.idle > 0 {
		cfg.IdleTimeout = e.idle
	}
	s := taskgen.NewSession(e.tasks, e.history, e.taskLog, cfg,
		taskgen.WithClock(e.now), taskgen.WithLogger(e.logger))
	s.Start(ctx)
	return s
}

// Enter appends line to the command history and passes it to s. Blank
// lines are ignored.
func (e *Engine) Enter(ctx context.Context, s *taskgen.Session, line string) taskgen.Event {
	line = strings.TrimSpace(line)
	if line == "" {
		return taskgen.Event{}
	}
	if err := e.history.Append(ctx, line); err != nil {
		e.logger.Warn("append command history", "err", err)
	}
	return s.Observe(ctx, line)
}

// ChangeLevel moves s by delta levels and persists the result.
func (e *Engine) ChangeLevel(ctx context.Context, s *taskgen.Session, delta int) int {
	level, err := e.SetLevel(ctx, s.Level()+delta)
	if err != nil {
		e.logger.Warn("persist shell level", "err", err)
		level = s.Level()
	}
	s.SetLevel(ctx, level)
	return s.Level()
}

// HintsOnline reports whether hints come from a model.
func (e *Engine) HintsOnline() bool {
	return e.hints.Online()
}

// TaskHint returns a hint for the session's current task.
func (e *Engine) TaskHint(ctx context.Context, s *taskgen.Session) (hints.Hint, error) {
	task, ok := s.Current()
	if !ok {
		return hints.Hint{Text: "No task is waiting.", Source: hints.SourceOffline}, nil
	}
	return e.TaskHintFor(ctx, task, s.Satisfied())
}

// TaskHintFor returns a hint for task given the commands already entered.
// It does not touch a session, so callers may run it off the input loop.
func (e *Engine) TaskHintFor(ctx context.Context, task catalog.ShellTask, satisfied []string) (hints.Hint, error) {
	return e.hints.ForTask(ctx, task, satisfied)
}

// ExerciseHint returns a hint for ex pitched at the learner's skill on its
// tags.
func (e *Engine) ExerciseHint(ctx context.Context, ex catalog.Exercise) (hints.Hint, error) {
	skill := e.profiles.Load(ctx).AverageSkill(ex.Tags)
	return e.hints.ForExercise(ctx, ex, skill)
}

// ResetOptions selects what Reset clears.
type ResetOptions struct {
	Profile bool
	Tasks   bool
	History bool
	Level   bool
}

// ResetAll selects everything.
func ResetAll() ResetOptions {
	return ResetOptions{Profile: true, Tasks: true, History: true, Level: true}
}

// Reset clears the selected state, attempting every part even when one
// fails.
func (e *Engine) Reset(ctx context.Context, o ResetOptions) error {
	var errs []error
	if o.Profile {
		errs = append(errs, e.profiles.Clear(ctx))
	}
	if o.Tasks {
		errs = append(errs, e.taskLog.ClearCompletions(ctx))
	}
	if o.History {
		errs = append(errs, e.history.Clear(ctx))
	}
	if o.Level {
		errs = append(errs, e.settings.Delete(ctx, store.KeyShellLevel))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	e.logger.Info("learner state reset", "profile", o.Profile, "tasks", o.Tasks, "history", o.History, "level", o.Level)
	return nil
}

// Stats is a snapshot of the learner's progress.
type Stats struct {
	Profile        *profile.Profile
	Attempts       store.AttemptStats
	TasksCompleted int
	TasksSkipped   int
	Level          int
}

// Stats gathers the learner's progress.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	st := Stats{Profile: e.profiles.Load(ctx), Level: e.Level(ctx)}

	attempts, err := e.events.AttemptStats(ctx, e.learnerID)
	if err != nil {
		return Stats{}, err
	}
	st.Attempts = attempts

	completions, err := e.taskLog.Completions(ctx)
	if err != nil {
		return Stats{}, err
	}
	for _, c := range completions {
		if c.Skipped {
			st.TasksSkipped++
		} else {
			st.TasksCompleted++
		}
	}
	return st, nil
}

// TaskHistory returns the learner's task completions, oldest first.
func (e *Engine) TaskHistory(ctx context.Context) ([]store.TaskCompletion, error) {
	return e.taskLog.Completions(ctx)
}

// RecentAttempts returns the learner's latest attempt events, newest first.
func (e *Engine) RecentAttempts(ctx context.Context, limit int) ([]store.AttemptEvent, error) {
	return e.events.QueryAttempts(ctx, e.learnerID, store.QueryOpts{Limit: limit})
}
