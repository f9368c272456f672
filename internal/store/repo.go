package store

import (
	"context"
	"time"
)

// TaskCompletion is one entry of a learner's persisted task history.
type TaskCompletion struct {
	TaskID      string
	Title       string
	Skipped     bool
	CompletedAt time.Time
}

// AttemptEventData captures one recorded exercise outcome.
type AttemptEventData struct {
	LearnerID  string
	SessionID  string
	ItemID     string
	Mode       string
	Success    bool
	Skipped    bool
	Attempts   int
	SkillDelta float64
}

// AttemptEvent is a persisted AttemptEventData with its ordering metadata.
type AttemptEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// AttemptStats summarizes a learner's recorded outcomes.
type AttemptStats struct {
	Total     int
	Successes int
	Failures  int
	Skips     int
	Items     int // distinct items attempted
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a persisted LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls sharing a purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls made to one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAttempt records an exercise outcome.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// QueryAttempts returns a learner's attempt events, newest first.
	QueryAttempts(ctx context.Context, learnerID string, opts QueryOpts) ([]AttemptEvent, error)

	// AttemptStats summarizes a learner's attempt events.
	AttemptStats(ctx context.Context, learnerID string) (AttemptStats, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the LLM event with id, or nil if there is none.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
