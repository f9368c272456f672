package taskgen

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/store"
)

const (
	// DefaultIdleTimeout is how long a task may sit without input before
	// the queue is re-ranked.
	DefaultIdleTimeout = 5 * time.Minute

	// TickInterval is how often callers should invoke Tick.
	TickInterval = time.Minute
)

// HistoryFeed is the learner's ordered command-line history. The session
// only reads it.
type HistoryFeed interface {
	Commands(ctx context.Context) ([]string, error)
}

// Recorder persists task completions. The IDs it reports as excluded are
// never offered again.
type Recorder interface {
	RecordCompletion(ctx context.Context, c store.TaskCompletion) error
	Completions(ctx context.Context) ([]store.TaskCompletion, error)
	Excluded(ctx context.Context) (map[string]bool, error)
}

// Config holds the session settings.
type Config struct {
	Level       int
	IdleTimeout time.Duration
}

// DefaultConfig starts at level 1 with the standard idle timeout.
func DefaultConfig() Config {
	return Config{Level: 1, IdleTimeout: DefaultIdleTimeout}
}

// Event describes what a single input or skip changed.
type Event struct {
	Matched     []string              // commands newly satisfied by the input
	Completed   *store.TaskCompletion // set when the head task finished
	Regenerated bool                  // the queue was rebuilt
}

// Session tracks the shell task queue for one learner. It is not safe for
// concurrent use; callers serialize input, skips and ticks.
type Session struct {
	tasks  *catalog.Tasks
	feed   HistoryFeed
	rec    Recorder
	logger *slog.Logger
	now    func() time.Time
	idle   time.Duration
	level  int

	queue        []catalog.ShellTask
	satisfied    map[string]bool
	excluded     map[string]bool
	history      []store.TaskCompletion
	lastActivity time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the session clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session over tasks. Call Start before use.
func NewSession(tasks *catalog.Tasks, feed HistoryFeed, rec Recorder, cfg Config, opts ...Option) *Session {
	s := &Session{
		tasks:     tasks,
		feed:      feed,
		rec:       rec,
		logger:    slog.Default(),
		now:       time.Now,
		idle:      cfg.IdleTimeout,
		level:     max(cfg.Level, 1),
		satisfied: make(map[string]bool),
		excluded:  make(map[string]bool),
	}
	if s.idle <= 0 {
		s.idle = DefaultIdleTimeout
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the persisted completions and builds the first queue.
// Persistence failures leave the session with an empty exclusion set.
func (s *Session) Start(ctx context.Context) {
	excluded, err := s.rec.Excluded(ctx)
	if err != nil {
		s.logger.Warn("load task exclusions", "err", err)
		excluded = nil
	}
	s.excluded = make(map[string]bool, len(excluded))
	for id := range excluded {
		s.excluded[id] = true
	}

	// Excluded drops an expired log, so this is read second.
	history, err := s.rec.Completions(ctx)
	if err != nil {
		s.logger.Warn("load task history", "err", err)
	}
	s.history = history

	s.lastActivity = s.now()
	s.regenerate(ctx)
}

// Current returns the task at the head of the queue.
func (s *Session) Current() (catalog.ShellTask, bool) {
	if len(s.queue) == 0 {
		return catalog.ShellTask{}, false
	}
	return s.queue[0], true
}

// Queue returns a copy of the pending tasks, head first.
func (s *Session) Queue() []catalog.ShellTask {
	return slices.Clone(s.queue)
}

// Satisfied returns the head task's commands already entered, in task
// order.
func (s *Session) Satisfied() []string {
	return s.commands(true)
}

// Remaining returns the head task's commands not yet entered.
func (s *Session) Remaining() []string {
	return s.commands(false)
}

func (s *Session) commands(done bool) []string {
	cur, ok := s.Current()
	if !ok {
		return nil
	}
	var out []string
	for _, cmd := range cur.Commands {
		if s.satisfied[cmd] == done {
			out = append(out, cmd)
		}
	}
	return out
}

// Level returns the current unlock level.
func (s *Session) Level() int {
	return s.level
}

// History returns the completion log, oldest first.
func (s *Session) History() []store.TaskCompletion {
	return slices.Clone(s.history)
}

// Excluded reports whether id has been completed or skipped.
func (s *Session) Excluded(id string) bool {
	return s.excluded[id]
}

// Observe processes one line of terminal input. The caller appends the
// line to the history feed before calling Observe.
func (s *Session) Observe(ctx context.Context, line string) Event {
	s.lastActivity = s.now()

	var ev Event
	cur, ok := s.Current()
	if !ok {
		return ev
	}

	for _, cmd := range cur.Commands {
		if !s.satisfied[cmd] && Matches(line, cmd) {
			s.satisfied[cmd] = true
			ev.Matched = append(ev.Matched, cmd)
		}
	}

	if len(ev.Matched) > 0 && len(s.Remaining()) == 0 {
		s.complete(ctx, cur, false, &ev)
	}
	return ev
}

// Skip completes the head task as skipped, whatever its progress.
func (s *Session) Skip(ctx context.Context) Event {
	var ev Event
	cur, ok := s.Current()
	if !ok {
		return ev
	}
	s.complete(ctx, cur, true, &ev)
	return ev
}

// Tick re-ranks the queue when a task has been active without input for
// longer than the idle timeout. It does not touch the stalled task's
// progress record and reports whether the queue was rebuilt.
func (s *Session) Tick(ctx context.Context, now time.Time) bool {
	if _, ok := s.Current(); !ok {
		return false
	}
	if now.Sub(s.lastActivity) <= s.idle {
		return false
	}
	s.regenerate(ctx)
	return true
}

// SetLevel changes the unlock level and rebuilds the queue. Levels below 1
// are raised to 1.
func (s *Session) SetLevel(ctx context.Context, level int) bool {
	level = max(level, 1)
	if level == s.level {
		return false
	}
	s.level = level
	s.regenerate(ctx)
	return true
}

func (s *Session) complete(ctx context.Context, task catalog.ShellTask, skipped bool, ev *Event) {
	c := store.TaskCompletion{
		TaskID:      task.ID,
		Title:       task.Title,
		Skipped:     skipped,
		CompletedAt: s.now(),
	}
	s.history = append(s.history, c)
	s.excluded[task.ID] = true
	ev.Completed = &c

	if err := s.rec.RecordCompletion(ctx, c); err != nil {
		s.logger.Warn("persist task completion", "task_id", task.ID, "err", err)
	}

	s.queue = s.queue[1:]
	clear(s.satisfied)
	if len(s.queue) == 0 {
		s.regenerate(ctx)
		ev.Regenerated = true
	}
}

func (s *Session) regenerate(ctx context.Context) {
	history, err := s.feed.Commands(ctx)
	if err != nil {
		s.logger.Warn("read command history", "err", err)
		history = nil
	}
	s.queue = RegenerateQueue(history, s.level, s.tasks, s.excluded)
	clear(s.satisfied)
}
