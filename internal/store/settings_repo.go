package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// KeyShellLevel holds the learner's unlocked shell task level.
const KeyShellLevel = "shell.level"

// SettingsRepo holds one learner's key/value settings.
type SettingsRepo struct {
	q         querier
	learnerID string
	now       func() time.Time
}

// Get returns the value stored under key, or ErrNotFound.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, error) {
	sel := r.q.build().
		Select("setting_value").
		From(entsql.Table(tableSettings)).
		Where(entsql.And(
			entsql.EQ(colLearnerID, r.learnerID),
			entsql.EQ("setting_key", key),
		))

	var v string
	err := r.q.queryRow(ctx, sel).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query setting %q: %w", key, err)
	}
	return v, nil
}

// Set stores value under key, replacing any previous value.
func (r *SettingsRepo) Set(ctx context.Context, key, value string) error {
	ins := r.q.build().Insert(tableSettings).
		Columns(colLearnerID, "setting_key", "setting_value", "updated_at").
		Values(r.learnerID, key, value, toMillis(r.now())).
		OnConflict(
			entsql.ConflictColumns(colLearnerID, "setting_key"),
			entsql.ResolveWithNewValues(),
		)
	if _, err := r.q.exec(ctx, ins); err != nil {
		return fmt.Errorf("save setting %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	del := r.q.build().Delete(tableSettings).Where(entsql.And(
		entsql.EQ(colLearnerID, r.learnerID),
		entsql.EQ("setting_key", key),
	))
	if _, err := r.q.exec(ctx, del); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

// GetInt returns the integer stored under key, or def when the key is
// missing or not an integer.
func (r *SettingsRepo) GetInt(ctx context.Context, key string, def int) (int, error) {
	v, err := r.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, nil
	}
	return n, nil
}

// SetInt stores an integer under key.
func (r *SettingsRepo) SetInt(ctx context.Context, key string, n int) error {
	return r.Set(ctx, key, strconv.Itoa(n))
}
