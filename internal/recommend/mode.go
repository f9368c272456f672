package recommend

import (
	"errors"
	"fmt"
)

// Mode selects how a practice batch is assembled.
type Mode string

const (
	// Standard picks one random exercise per difficulty.
	Standard Mode = "standard"
	// Learning ranks exercises against the learner's profile.
	Learning Mode = "learning"
)

// Modes returns every supported mode.
func Modes() []Mode {
	return []Mode{Standard, Learning}
}

// ParseMode converts a flag or config value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Standard, Learning:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

var (
	// ErrInitialization means a batch could not be assembled from the
	// catalog and profile at hand. The caller may retry later.
	ErrInitialization = errors.New("practice initialization failed")

	// ErrMissingDifficulty is returned in standard mode when a difficulty
	// has no exercises.
	ErrMissingDifficulty = fmt.Errorf("%w: no exercises for difficulty", ErrInitialization)

	// ErrNotEnoughCandidates is returned in learning mode when fewer than
	// BatchSize exercises remain uncompleted.
	ErrNotEnoughCandidates = fmt.Errorf("%w: not enough uncompleted exercises", ErrInitialization)

	// ErrNoProfile is returned in learning mode without a profile.
	ErrNoProfile = fmt.Errorf("%w: learning mode needs a profile", ErrInitialization)

	// ErrUnknownMode is returned for a mode other than Standard or Learning.
	ErrUnknownMode = errors.New("unknown practice mode")
)
