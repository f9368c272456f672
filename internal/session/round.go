package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/profile"
	"github.com/NoamFav/bitvoyager/internal/recommend"
)

// ErrRoundFinished is returned when recording into a round with no
// exercises left.
var ErrRoundFinished = errors.New("practice round already finished")

// Result is the recorded outcome of one exercise.
type Result struct {
	Exercise   catalog.Exercise
	Attempt    profile.Attempt
	SkillDelta float64
}

// Round is one practice batch worked through in order.
type Round struct {
	ID        string
	Mode      recommend.Mode
	Items     []catalog.Exercise
	Results   []Result
	StartedAt time.Time
}

// NewRound starts a round over items with a fresh session id.
func NewRound(mode recommend.Mode, items []catalog.Exercise, now time.Time) *Round {
	return &Round{
		ID:        uuid.NewString(),
		Mode:      mode,
		Items:     items,
		StartedAt: now,
	}
}

// Current returns the exercise awaiting an outcome.
func (r *Round) Current() (catalog.Exercise, bool) {
	if r.Done() {
		return catalog.Exercise{}, false
	}
	return r.Items[len(r.Results)], true
}

// Position returns the 1-based index of the current exercise.
func (r *Round) Position() int {
	return min(len(r.Results)+1, len(r.Items))
}

// Done reports whether every exercise has an outcome.
func (r *Round) Done() bool {
	return len(r.Results) >= len(r.Items)
}

// Add appends the outcome of the current exercise.
func (r *Round) Add(res Result) {
	r.Results = append(r.Results, res)
}
