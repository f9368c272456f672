package recommend

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/profile"
)

// BatchSize is the number of exercises offered per practice round.
const BatchSize = 3

// newPicks is how many new exercises learning mode always takes before
// considering a retry.
const newPicks = 2

// Selector assembles practice batches.
type Selector struct {
	rng *rand.Rand
	now func() time.Time
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand sets the random source used by standard mode.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) { s.rng = r }
}

// WithClock sets the clock used to age retry candidates.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// NewSelector creates a Selector seeded from the runtime's random source.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectBatch picks the next exercises to practice. Standard mode always
// returns BatchSize items ordered easy, medium, hard. Learning mode returns
// up to BatchSize items and may return fewer.
func (s *Selector) SelectBatch(mode Mode, p *profile.Profile, ex *catalog.Exercises) ([]catalog.Exercise, error) {
	switch mode {
	case Standard:
		return s.selectStandard(ex)
	case Learning:
		return s.selectLearning(p, ex)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// Rank scores the uncompleted exercises for p at the selector's clock.
func (s *Selector) Rank(p *profile.Profile, ex *catalog.Exercises) []Scored {
	return Rank(p, ex, s.now())
}

func (s *Selector) selectStandard(ex *catalog.Exercises) ([]catalog.Exercise, error) {
	batch := make([]catalog.Exercise, 0, len(catalog.Difficulties()))
	for _, d := range catalog.Difficulties() {
		pool := ex.ByDifficulty(d)
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w %q", ErrMissingDifficulty, d)
		}
		batch = append(batch, pool[s.rng.IntN(len(pool))])
	}
	return batch, nil
}

func (s *Selector) selectLearning(p *profile.Profile, ex *catalog.Exercises) ([]catalog.Exercise, error) {
	if p == nil {
		return nil, ErrNoProfile
	}

	ranked := s.Rank(p, ex)
	if len(ranked) < BatchSize {
		return nil, fmt.Errorf("%w: %d remaining", ErrNotEnoughCandidates, len(ranked))
	}

	var fresh, retry []Scored
	for _, c := range ranked {
		if c.Retry {
			retry = append(retry, c)
		} else {
			fresh = append(fresh, c)
		}
	}

	batch := make([]catalog.Exercise, 0, BatchSize)
	for i := 0; i < newPicks && i < len(fresh); i++ {
		batch = append(batch, fresh[i].Exercise)
	}

	switch {
	case len(retry) > 0 && retry[0].Total > RetryThreshold:
		batch = append(batch, retry[0].Exercise)
	case len(fresh) > newPicks:
		batch = append(batch, fresh[newPicks].Exercise)
	}
	return batch, nil
}
