package profile

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/NoamFav/bitvoyager/internal/catalog"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func exercise(id string, d catalog.Difficulty, tags ...string) catalog.Exercise {
	return catalog.Exercise{ID: id, Difficulty: d, Tags: tags}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSkillDelta(t *testing.T) {
	tests := []struct {
		name string
		d    catalog.Difficulty
		a    Attempt
		want float64
	}{
		{"easy first try", catalog.Easy, Attempt{Success: true, Attempts: 1}, 0.8},
		{"medium first try", catalog.Medium, Attempt{Success: true, Attempts: 1}, 1.0},
		{"hard first try", catalog.Hard, Attempt{Success: true, Attempts: 1}, 1.2},
		{"medium third try", catalog.Medium, Attempt{Success: true, Attempts: 3}, 0.7},
		{"floor after many tries", catalog.Medium, Attempt{Success: true, Attempts: 10}, 0.2},
		{"medium failure", catalog.Medium, Attempt{Attempts: 1}, -0.5},
		{"hard failure ignores attempts", catalog.Hard, Attempt{Attempts: 4}, -0.6},
		{"skipped easy", catalog.Easy, Attempt{Skipped: true}, -0.28},
		{"skipped success", catalog.Medium, Attempt{Success: true, Attempts: 1, Skipped: true}, 0.7},
		{"unknown difficulty", "", Attempt{Success: true, Attempts: 1}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SkillDelta(tt.d, tt.a); !approxEqual(got, tt.want) {
				t.Errorf("SkillDelta = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyAttemptSuccess(t *testing.T) {
	p := New()
	p.SkillLevels["loops"] = 4
	item := exercise("7", catalog.Hard, "loops", "sorting")

	got := ApplyAttempt(p, item, Attempt{Success: true, Attempts: 1}, testNow)

	if !approxEqual(got.SkillLevels["loops"], 5.2) {
		t.Errorf("loops = %v, want 5.2", got.SkillLevels["loops"])
	}
	if !approxEqual(got.SkillLevels["sorting"], 1.2) {
		t.Errorf("sorting = %v, want 1.2", got.SkillLevels["sorting"])
	}
	h := got.QuestionHistory["7"]
	if h.Attempts != 1 || !h.Success || h.Skipped || !h.LastAttempt.Equal(testNow) {
		t.Errorf("history = %+v", h)
	}

	// The input profile is untouched.
	if p.SkillLevels["loops"] != 4 {
		t.Errorf("input profile mutated: loops = %v", p.SkillLevels["loops"])
	}
	if _, ok := p.QuestionHistory["7"]; ok {
		t.Error("input profile mutated: history entry added")
	}
}

func TestApplyAttemptIgnoresUntrackedTags(t *testing.T) {
	got := ApplyAttempt(New(), exercise("1", catalog.Easy, "loops", "basic arithmetic"), Attempt{Success: true, Attempts: 1}, testNow)
	if _, ok := got.SkillLevels["basic arithmetic"]; ok {
		t.Error("untracked tag was added to skill levels")
	}
	if !approxEqual(got.SkillLevels["loops"], 0.8) {
		t.Errorf("loops = %v, want 0.8", got.SkillLevels["loops"])
	}

	// An item with no tracked tag still records the attempt.
	got = ApplyAttempt(New(), exercise("2", catalog.Medium, "graphs"), Attempt{Success: true, Attempts: 1}, testNow)
	if _, ok := got.SkillLevels["graphs"]; ok {
		t.Error("graphs was added to skill levels")
	}
	if len(got.SkillLevels) != len(catalog.DefaultSkillTags()) {
		t.Errorf("skill levels = %v, want the default vocabulary only", got.SkillLevels)
	}
	if got.QuestionHistory["2"].Attempts != 1 {
		t.Errorf("history = %+v, want one attempt", got.QuestionHistory["2"])
	}
}

func TestApplyAttemptFailureCountsAndSuccessClears(t *testing.T) {
	item := exercise("3", catalog.Medium, "strings")
	p := New()
	for range 2 {
		p = ApplyAttempt(p, item, Attempt{Attempts: 1}, testNow)
	}
	if p.FailedAttempts["3"] != 2 {
		t.Fatalf("failedAttempts = %d, want 2", p.FailedAttempts["3"])
	}
	if p.QuestionHistory["3"].Attempts != 2 {
		t.Errorf("history attempts = %d, want 2", p.QuestionHistory["3"].Attempts)
	}

	p = ApplyAttempt(p, item, Attempt{Success: true, Attempts: 3}, testNow)
	if _, ok := p.FailedAttempts["3"]; ok {
		t.Error("failedAttempts entry still present after success")
	}
}

func TestApplyAttemptSkip(t *testing.T) {
	item := exercise("5", catalog.Medium, "arrays")
	p := New()
	p = ApplyAttempt(p, item, Attempt{Skipped: true}, testNow)
	p = ApplyAttempt(p, item, Attempt{Skipped: true}, testNow)

	if !slices.Equal(p.SkippedQuestions, []string{"5"}) {
		t.Errorf("skipped = %v, want [5]", p.SkippedQuestions)
	}
	if _, ok := p.FailedAttempts["5"]; ok {
		t.Error("skip counted as a failure")
	}
	if h := p.QuestionHistory["5"]; !h.Skipped || h.Success {
		t.Errorf("history = %+v, want skipped", h)
	}

	p = ApplyAttempt(p, item, Attempt{Success: true, Attempts: 1}, testNow)
	if p.IsSkipped("5") {
		t.Error("success did not remove the skip mark")
	}
}

func TestApplyAttemptFirstTrySuccessTwice(t *testing.T) {
	item := exercise("9", catalog.Easy, "loops")
	initial := New()

	for range 2 {
		got := ApplyAttempt(initial, item, Attempt{Success: true, Attempts: 1}, testNow)
		if _, ok := got.FailedAttempts["9"]; ok {
			t.Error("failedAttempts entry present after first-try success")
		}
	}

	p := MarkCompleted(initial, "9")
	p = MarkCompleted(p, "9")
	if !slices.Equal(p.CompletedQuestions, []string{"9"}) {
		t.Errorf("completed = %v, want [9]", p.CompletedQuestions)
	}
	if len(initial.CompletedQuestions) != 0 {
		t.Error("MarkCompleted mutated its input")
	}
}

func TestApplyAttemptKeepsSkillsInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	items := []catalog.Exercise{
		exercise("1", catalog.Easy, "loops", "strings"),
		exercise("2", catalog.Medium, "loops", "arrays"),
		exercise("3", catalog.Hard, "recursion", "matrix", "loops"),
	}

	p := New()
	for range 500 {
		item := items[rng.IntN(len(items))]
		a := Attempt{
			Success:  rng.IntN(2) == 0,
			Attempts: 1 + rng.IntN(8),
			Skipped:  rng.IntN(5) == 0,
		}
		p = ApplyAttempt(p, item, a, testNow)
		for tag, v := range p.SkillLevels {
			if v < MinSkill || v > MaxSkill {
				t.Fatalf("skill %q = %v, out of [0,10]", tag, v)
			}
		}
	}
}

func TestApplyAttemptNilProfile(t *testing.T) {
	got := ApplyAttempt(nil, exercise("1", catalog.Easy, "loops"), Attempt{Attempts: 1}, testNow)
	if got.FailedAttempts["1"] != 1 {
		t.Errorf("failedAttempts = %d, want 1", got.FailedAttempts["1"])
	}
	if got.SkillLevels["loops"] != 0 {
		t.Errorf("loops = %v, want clamped 0", got.SkillLevels["loops"])
	}
}

func TestTouchSession(t *testing.T) {
	p := TouchSession(New(), testNow)
	if p.ConsecutiveDays != 1 || p.LastSessionDate != "2026-03-10" {
		t.Fatalf("first session = %d/%s", p.ConsecutiveDays, p.LastSessionDate)
	}

	p = TouchSession(p, testNow.Add(3*time.Hour))
	if p.ConsecutiveDays != 1 {
		t.Errorf("same day: streak = %d, want 1", p.ConsecutiveDays)
	}

	p = TouchSession(p, testNow.AddDate(0, 0, 1))
	if p.ConsecutiveDays != 2 {
		t.Errorf("next day: streak = %d, want 2", p.ConsecutiveDays)
	}

	p = TouchSession(p, testNow.AddDate(0, 0, 5))
	if p.ConsecutiveDays != 1 {
		t.Errorf("after gap: streak = %d, want 1", p.ConsecutiveDays)
	}
}
