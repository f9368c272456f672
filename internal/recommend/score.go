package recommend

import (
	"math"
	"slices"
	"time"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/profile"
)

// Scoring weights for learning mode.
const (
	SkillMatchWeight = 50.0
	SkillRange       = 10.0

	NoveltyPerTag = 5.0
	NoveltyCap    = 20.0
	RecentWindow  = 5

	GuardPenalty     = 50.0
	HardGuardSkill   = 7.0
	MediumGuardSkill = 3.0

	SkipBonusPerDay = 2.0
	SkipBonusCap    = 20.0

	FailPenaltyMax    = 30.0
	FailPenaltyPerDay = 3.0

	// RetryThreshold is the score a retry candidate must exceed to take
	// the last slot of a learning batch.
	RetryThreshold = 20.0
)

// Breakdown is the per-component score of one exercise.
type Breakdown struct {
	SkillMatch  float64
	Novelty     float64
	Guard       float64 // zero or -GuardPenalty
	SkipBonus   float64
	FailPenalty float64 // subtracted from the total
	Retry       bool
	Total       float64
}

// Scored pairs an exercise with its score.
type Scored struct {
	Exercise catalog.Exercise
	Breakdown
}

// Score computes the learning-mode score of item for p. recent is the tag
// set of the learner's most recent attempts.
func Score(p *profile.Profile, item catalog.Exercise, recent map[string]bool, now time.Time) Breakdown {
	var b Breakdown

	gap := math.Abs(p.AverageSkill(item.Tags) - item.Difficulty.TargetSkill())
	b.SkillMatch = SkillMatchWeight * (1 - gap/SkillRange)

	var fresh float64
	for _, tag := range distinct(item.Tags) {
		if !recent[tag] {
			fresh += NoveltyPerTag
		}
	}
	b.Novelty = math.Min(NoveltyCap, fresh)

	if len(p.SkillLevels) > 0 {
		overall := p.OverallSkill()
		if (item.Difficulty == catalog.Hard && overall < HardGuardSkill) ||
			(item.Difficulty == catalog.Medium && overall < MediumGuardSkill) {
			b.Guard = -GuardPenalty
		}
	}

	skipped := p.IsSkipped(item.ID)
	failed := p.FailedCount(item.ID) > 0
	b.Retry = skipped || failed
	if b.Retry {
		days := daysSince(p, item.ID, now)
		if skipped {
			b.SkipBonus = SkipBonus(days)
		}
		if failed {
			b.FailPenalty = FailPenalty(days)
		}
	}

	b.Total = b.SkillMatch + b.Novelty + b.Guard + b.SkipBonus - b.FailPenalty
	return b
}

// SkipBonus grows by SkipBonusPerDay for each day since a skip, up to
// SkipBonusCap.
func SkipBonus(days float64) float64 {
	return math.Min(SkipBonusCap, days*SkipBonusPerDay)
}

// FailPenalty starts at FailPenaltyMax right after a failure and decays to
// zero after ten days.
func FailPenalty(days float64) float64 {
	return math.Max(0, FailPenaltyMax-days*FailPenaltyPerDay)
}

// daysSince returns fractional days since the last attempt at id. An item
// with no history is infinitely old.
func daysSince(p *profile.Profile, id string, now time.Time) float64 {
	entry, ok := p.QuestionHistory[id]
	if !ok || entry.LastAttempt.IsZero() {
		return math.Inf(1)
	}
	d := now.Sub(entry.LastAttempt).Hours() / 24
	return math.Max(0, d)
}

// Rank scores every exercise p has not completed, highest first. Equal
// scores keep catalog order.
func Rank(p *profile.Profile, ex *catalog.Exercises, now time.Time) []Scored {
	recent := p.RecentTags(RecentWindow, ex)

	var out []Scored
	for _, item := range ex.All() {
		if p.IsCompleted(item.ID) {
			continue
		}
		out = append(out, Scored{Exercise: item, Breakdown: Score(p, item, recent, now)})
	}
	sortScored(out)
	return out
}

func sortScored(s []Scored) {
	slices.SortStableFunc(s, func(a, b Scored) int {
		if a.Total != b.Total {
			if a.Total > b.Total {
				return -1
			}
			return 1
		}
		return catalog.CompareIDs(a.Exercise.ID, b.Exercise.ID)
	})
}

func distinct(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
