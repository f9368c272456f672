package session

import "time"

// Summary aggregates the results of a round.
type Summary struct {
	Total      int
	Successes  int
	Failures   int
	Skips      int
	SkillDelta float64
	Duration   time.Duration
}

// BuildSummary summarizes r as of now.
func BuildSummary(r *Round, now time.Time) Summary {
	s := Summary{Total: len(r.Results), Duration: now.Sub(r.StartedAt)}
	for _, res := range r.Results {
		switch {
		case res.Attempt.Skipped:
			s.Skips++
		case res.Attempt.Success:
			s.Successes++
		default:
			s.Failures++
		}
		s.SkillDelta += res.SkillDelta
	}
	return s
}
