package profile

import (
	"maps"
	"math"
	"slices"
	"time"

	"github.com/NoamFav/bitvoyager/internal/catalog"
)

// MinSkill and MaxSkill bound every skill level.
const (
	MinSkill = 0.0
	MaxSkill = 10.0
)

// HistoryEntry records the most recent attempt at a single item.
type HistoryEntry struct {
	LastAttempt time.Time `json:"lastAttempt"`
	Attempts    int       `json:"attempts"`
	Success     bool      `json:"success"`
	Skipped     bool      `json:"skipped"`
}

// Profile is a learner's skill model and attempt history. It is persisted
// as a single JSON document.
type Profile struct {
	CompletedQuestions []string                `json:"completedQuestions"`
	SkippedQuestions   []string                `json:"skippedQuestions"`
	FailedAttempts     map[string]int          `json:"failedAttempts"`
	SkillLevels        map[string]float64      `json:"skillLevels"`
	QuestionHistory    map[string]HistoryEntry `json:"questionHistory"`
	LastSessionDate    string                  `json:"lastSessionDate,omitempty"`
	ConsecutiveDays    int                     `json:"consecutiveDays"`
}

// New returns a cold-start profile: every default skill tag at zero and no
// history.
func New() *Profile {
	p := &Profile{
		CompletedQuestions: []string{},
		SkippedQuestions:   []string{},
		FailedAttempts:     map[string]int{},
		SkillLevels:        map[string]float64{},
		QuestionHistory:    map[string]HistoryEntry{},
	}
	for _, tag := range catalog.DefaultSkillTags() {
		p.SkillLevels[tag] = 0
	}
	return p
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	return &Profile{
		CompletedQuestions: slices.Clone(p.CompletedQuestions),
		SkippedQuestions:   slices.Clone(p.SkippedQuestions),
		FailedAttempts:     cloneMap(p.FailedAttempts),
		SkillLevels:        cloneMap(p.SkillLevels),
		QuestionHistory:    cloneMap(p.QuestionHistory),
		LastSessionDate:    p.LastSessionDate,
		ConsecutiveDays:    p.ConsecutiveDays,
	}
}

// normalize replaces nil collections and clamps skill levels so that a
// decoded profile satisfies the same invariants as one built by New.
func (p *Profile) normalize() {
	if p.CompletedQuestions == nil {
		p.CompletedQuestions = []string{}
	}
	if p.SkippedQuestions == nil {
		p.SkippedQuestions = []string{}
	}
	if p.FailedAttempts == nil {
		p.FailedAttempts = map[string]int{}
	}
	if p.SkillLevels == nil {
		p.SkillLevels = map[string]float64{}
	}
	if p.QuestionHistory == nil {
		p.QuestionHistory = map[string]HistoryEntry{}
	}
	for tag, v := range p.SkillLevels {
		p.SkillLevels[tag] = clampSkill(v)
	}
	for id, n := range p.FailedAttempts {
		if n <= 0 {
			delete(p.FailedAttempts, id)
		}
	}
	if p.ConsecutiveDays < 0 {
		p.ConsecutiveDays = 0
	}
}

// IsCompleted reports whether id has been completed.
func (p *Profile) IsCompleted(id string) bool {
	return slices.Contains(p.CompletedQuestions, id)
}

// IsSkipped reports whether id is currently marked as skipped.
func (p *Profile) IsSkipped(id string) bool {
	return slices.Contains(p.SkippedQuestions, id)
}

// FailedCount returns the unresolved failure count for id.
func (p *Profile) FailedCount(id string) int {
	return p.FailedAttempts[id]
}

// OverallSkill is the mean of all skill levels, or 0 when there are none.
func (p *Profile) OverallSkill() float64 {
	if len(p.SkillLevels) == 0 {
		return 0
	}
	var sum float64
	for _, v := range p.SkillLevels {
		sum += v
	}
	return sum / float64(len(p.SkillLevels))
}

// AverageSkill is the mean skill over tags. Tags without a level count as
// zero.
func (p *Profile) AverageSkill(tags []string) float64 {
	if len(tags) == 0 {
		return 0
	}
	var sum float64
	for _, tag := range tags {
		sum += p.SkillLevels[tag]
	}
	return sum / float64(len(tags))
}

// TagLookup resolves the topic tags of a catalog item by ID.
type TagLookup interface {
	Tags(id string) []string
}

// RecentTags returns the union of tags of the n most recently attempted
// items. Items unknown to lookup contribute nothing.
func (p *Profile) RecentTags(n int, lookup TagLookup) map[string]bool {
	ids := slices.Collect(maps.Keys(p.QuestionHistory))
	slices.SortFunc(ids, func(a, b string) int {
		ta, tb := p.QuestionHistory[a].LastAttempt, p.QuestionHistory[b].LastAttempt
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return catalog.CompareIDs(a, b)
	})
	if len(ids) > n {
		ids = ids[:n]
	}

	recent := make(map[string]bool)
	if lookup == nil {
		return recent
	}
	for _, id := range ids {
		for _, tag := range lookup.Tags(id) {
			recent[tag] = true
		}
	}
	return recent
}

func clampSkill(v float64) float64 {
	if math.IsNaN(v) {
		return MinSkill
	}
	return min(MaxSkill, max(MinSkill, v))
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	maps.Copy(out, m)
	return out
}
