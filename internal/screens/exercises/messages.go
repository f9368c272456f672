package exercises

import (
	"github.com/NoamFav/bitvoyager/internal/hints"
	"github.com/NoamFav/bitvoyager/internal/session"
)

// roundReadyMsg is sent when the round's batch has been selected.
type roundReadyMsg struct {
	Round *session.Round
	Err   error
}

// recordedMsg is sent when an outcome has been persisted.
type recordedMsg struct {
	Result session.Result
	Err    error
}

// hintMsg carries a hint for the exercise with ExerciseID.
type hintMsg struct {
	ExerciseID string
	Hint       hints.Hint
	Err        error
}
