package profile

import (
	"slices"
	"time"

	"github.com/NoamFav/bitvoyager/internal/catalog"
)

// Attempt is the outcome of one try at a catalog item.
type Attempt struct {
	Success  bool
	Attempts int // tries it took, 1 for a first-try result
	Skipped  bool
}

// Skill adjustment constants.
const (
	successDelta      = 1.0
	failureDelta      = -0.5
	retryDecayPerTry  = 0.15
	retryDecayFloor   = 0.2
	skipDampingFactor = 0.7
)

// SkillDelta returns the skill change an attempt at an item of difficulty d
// earns on each of the item's tags.
func SkillDelta(d catalog.Difficulty, a Attempt) float64 {
	delta := failureDelta
	if a.Success {
		delta = successDelta
	}
	delta *= d.Multiplier()

	if a.Success && a.Attempts > 1 {
		delta *= max(retryDecayFloor, 1-float64(a.Attempts-1)*retryDecayPerTry)
	}
	if a.Skipped {
		delta *= skipDampingFactor
	}
	return delta
}

// ApplyAttempt returns a copy of p updated with the outcome of an attempt at
// item. p is not modified. A nil p is treated as a cold-start profile.
//
// Completion is recorded separately with MarkCompleted.
func ApplyAttempt(p *Profile, item catalog.Graded, a Attempt, now time.Time) *Profile {
	if p == nil {
		p = New()
	}
	out := p.Clone()
	id := item.Key()

	// Only tags in the profile's vocabulary are tracked.
	delta := SkillDelta(item.Grade(), a)
	for _, tag := range item.Topics() {
		if v, ok := out.SkillLevels[tag]; ok {
			out.SkillLevels[tag] = clampSkill(v + delta)
		}
	}

	prev := out.QuestionHistory[id]
	out.QuestionHistory[id] = HistoryEntry{
		LastAttempt: now,
		Attempts:    prev.Attempts + 1,
		Success:     a.Success,
		Skipped:     a.Skipped,
	}

	switch {
	case a.Skipped:
		if !slices.Contains(out.SkippedQuestions, id) {
			out.SkippedQuestions = append(out.SkippedQuestions, id)
		}
	case a.Success:
		out.SkippedQuestions = slices.DeleteFunc(out.SkippedQuestions, func(s string) bool { return s == id })
	default:
		out.FailedAttempts[id]++
	}
	if a.Success {
		delete(out.FailedAttempts, id)
	}

	return out
}

// MarkCompleted returns a copy of p with id recorded as completed. Recording
// the same id twice keeps a single entry.
func MarkCompleted(p *Profile, id string) *Profile {
	out := p.Clone()
	if !slices.Contains(out.CompletedQuestions, id) {
		out.CompletedQuestions = append(out.CompletedQuestions, id)
	}
	return out
}

const dateLayout = "2006-01-02"

// TouchSession returns a copy of p with streak bookkeeping updated for a
// session on now's calendar day. A session on the day after the last one
// extends the streak; any longer gap restarts it at one.
func TouchSession(p *Profile, now time.Time) *Profile {
	out := p.Clone()
	today := now.Format(dateLayout)
	if out.LastSessionDate == today {
		return out
	}

	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	if out.LastSessionDate == yesterday {
		out.ConsecutiveDays++
	} else {
		out.ConsecutiveDays = 1
	}
	out.LastSessionDate = today
	return out
}
