package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// DefaultRetention is how long a saved profile stays valid without being
// saved again.
const DefaultRetention = 30 * 24 * time.Hour

// Backend persists raw profile documents keyed by learner.
type Backend interface {
	// Get returns the stored document and when it was written. A missing
	// document is reported as nil data and a nil error.
	Get(ctx context.Context, learnerID string) ([]byte, time.Time, error)

	// Put replaces the stored document.
	Put(ctx context.Context, learnerID string, data []byte, at time.Time) error

	// Delete removes the stored document, if any.
	Delete(ctx context.Context, learnerID string) error
}

// Store loads and saves one learner's profile.
type Store struct {
	backend   Backend
	learnerID string
	retention time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithRetention sets how long a saved profile remains valid. Zero disables
// expiry.
func WithRetention(d time.Duration) StoreOption {
	return func(s *Store) { s.retention = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for recovered load failures.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore returns a Store for learnerID backed by b.
func NewStore(b Backend, learnerID string, opts ...StoreOption) *Store {
	s := &Store{
		backend:   b,
		learnerID: learnerID,
		retention: DefaultRetention,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LearnerID returns the learner this store serves.
func (s *Store) LearnerID() string { return s.learnerID }

// Load returns the persisted profile. It never fails: missing, expired or
// unreadable data yields a cold-start profile.
func (s *Store) Load(ctx context.Context) *Profile {
	log := s.logger.With("learner", s.learnerID)

	data, savedAt, err := s.backend.Get(ctx, s.learnerID)
	if err != nil {
		log.Warn("profile load failed, using defaults", "err", err)
		return New()
	}
	if data == nil {
		return New()
	}

	if s.retention > 0 && s.now().Sub(savedAt) > s.retention {
		log.Info("profile expired, starting fresh", "saved_at", savedAt)
		if err := s.backend.Delete(ctx, s.learnerID); err != nil {
			log.Warn("delete expired profile", "err", err)
		}
		return New()
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn("profile is malformed, using defaults", "err", err)
		return New()
	}
	p.normalize()
	return &p
}

// Save overwrites the persisted profile with p.
func (s *Store) Save(ctx context.Context, p *Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.backend.Put(ctx, s.learnerID, data, s.now()); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Clear deletes the persisted profile.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.learnerID); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	return nil
}
