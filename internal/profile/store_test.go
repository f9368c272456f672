package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type memBackend struct {
	data    map[string][]byte
	savedAt map[string]time.Time
	getErr  error
	deletes int
}

func newMemBackend() *memBackend {
	return &memBackend{data: map[string][]byte{}, savedAt: map[string]time.Time{}}
}

func (m *memBackend) Get(_ context.Context, id string) ([]byte, time.Time, error) {
	if m.getErr != nil {
		return nil, time.Time{}, m.getErr
	}
	return m.data[id], m.savedAt[id], nil
}

func (m *memBackend) Put(_ context.Context, id string, data []byte, at time.Time) error {
	m.data[id] = data
	m.savedAt[id] = at
	return nil
}

func (m *memBackend) Delete(_ context.Context, id string) error {
	m.deletes++
	delete(m.data, id)
	delete(m.savedAt, id)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(b Backend, now *time.Time) *Store {
	return NewStore(b, "ada",
		WithClock(func() time.Time { return *now }),
		WithLogger(quietLogger()),
	)
}

func TestStoreLoadMissingReturnsDefaults(t *testing.T) {
	now := testNow
	s := newTestStore(newMemBackend(), &now)
	p := s.Load(context.Background())
	if len(p.SkillLevels) != 10 || len(p.CompletedQuestions) != 0 {
		t.Errorf("Load() = %+v, want defaults", p)
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := testNow
	s := newTestStore(newMemBackend(), &now)

	p := New()
	p.SkillLevels["loops"] = 6.5
	p.FailedAttempts["4"] = 2
	p.CompletedQuestions = append(p.CompletedQuestions, "1")
	p.QuestionHistory["4"] = HistoryEntry{LastAttempt: testNow, Attempts: 2}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := s.Load(ctx)
	if got.SkillLevels["loops"] != 6.5 {
		t.Errorf("loops = %v, want 6.5", got.SkillLevels["loops"])
	}
	if got.FailedAttempts["4"] != 2 {
		t.Errorf("failedAttempts[4] = %d, want 2", got.FailedAttempts["4"])
	}
	if !got.IsCompleted("1") {
		t.Error("completion lost")
	}
	if h := got.QuestionHistory["4"]; !h.LastAttempt.Equal(testNow) || h.Attempts != 2 {
		t.Errorf("history = %+v", h)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	now := testNow
	s := newTestStore(newMemBackend(), &now)

	first := New()
	first.CompletedQuestions = []string{"1", "2"}
	if err := s.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, New()); err != nil {
		t.Fatal(err)
	}
	if got := s.Load(ctx); len(got.CompletedQuestions) != 0 {
		t.Errorf("completed = %v, want overwritten", got.CompletedQuestions)
	}
}

func TestStoreLoadMalformedFallsBack(t *testing.T) {
	now := testNow
	b := newMemBackend()
	b.data["ada"] = []byte("{not json")
	b.savedAt["ada"] = testNow

	p := newTestStore(b, &now).Load(context.Background())
	if len(p.SkillLevels) != 10 {
		t.Errorf("Load() = %+v, want defaults", p)
	}
}

func TestStoreLoadBackendErrorFallsBack(t *testing.T) {
	now := testNow
	b := newMemBackend()
	b.getErr = errors.New("disk on fire")

	p := newTestStore(b, &now).Load(context.Background())
	if p == nil || len(p.SkillLevels) != 10 {
		t.Errorf("Load() = %+v, want defaults", p)
	}
}

func TestStoreExpiredProfileIsDiscarded(t *testing.T) {
	ctx := context.Background()
	now := testNow
	b := newMemBackend()
	s := newTestStore(b, &now)

	p := New()
	p.SkillLevels["loops"] = 7
	if err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}

	now = testNow.Add(DefaultRetention - time.Minute)
	if got := s.Load(ctx); got.SkillLevels["loops"] != 7 {
		t.Fatalf("profile expired early: loops = %v", got.SkillLevels["loops"])
	}

	now = testNow.Add(DefaultRetention + time.Minute)
	if got := s.Load(ctx); got.SkillLevels["loops"] != 0 {
		t.Errorf("expired profile still used: loops = %v", got.SkillLevels["loops"])
	}
	if b.deletes != 1 {
		t.Errorf("deletes = %d, want 1", b.deletes)
	}
	if _, ok := b.data["ada"]; ok {
		t.Error("expired document not deleted")
	}
}

func TestStoreRetentionDisabled(t *testing.T) {
	ctx := context.Background()
	now := testNow
	b := newMemBackend()
	s := NewStore(b, "ada",
		WithRetention(0),
		WithClock(func() time.Time { return now }),
		WithLogger(quietLogger()),
	)
	p := New()
	p.ConsecutiveDays = 3
	if err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	now = testNow.AddDate(1, 0, 0)
	if got := s.Load(ctx); got.ConsecutiveDays != 3 {
		t.Errorf("ConsecutiveDays = %d, want 3", got.ConsecutiveDays)
	}
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	now := testNow
	b := newMemBackend()
	s := newTestStore(b, &now)
	if err := s.Save(ctx, New()); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(b.data) != 0 {
		t.Error("document still stored after Clear")
	}
}
