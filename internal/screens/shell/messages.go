package shell

import (
	"time"

	"github.com/NoamFav/bitvoyager/internal/hints"
	"github.com/NoamFav/bitvoyager/internal/taskgen"
)

// sessionReadyMsg is sent when the task session has loaded its state.
type sessionReadyMsg struct {
	Session *taskgen.Session
}

// idleTickMsg drives the inactivity check.
type idleTickMsg time.Time

// hintMsg carries a hint for the task with TaskID.
type hintMsg struct {
	TaskID string
	Hint   hints.Hint
	Err    error
}
