package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// ProfileRepo stores one opaque profile document per learner.
type ProfileRepo struct {
	q querier
}

// Get returns the learner's document and when it was last written. A
// missing document yields nil data and a nil error.
func (r *ProfileRepo) Get(ctx context.Context, learnerID string) ([]byte, time.Time, error) {
	sel := r.q.build().
		Select("data", "updated_at").
		From(entsql.Table(tableProfiles)).
		Where(entsql.EQ(colLearnerID, learnerID))

	var data string
	var updatedAt int64
	err := r.q.queryRow(ctx, sel).Scan(&data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query profile: %w", err)
	}
	return []byte(data), fromMillis(updatedAt), nil
}

// Put replaces the learner's document.
func (r *ProfileRepo) Put(ctx context.Context, learnerID string, data []byte, at time.Time) error {
	ins := r.q.build().Insert(tableProfiles).
		Columns(colLearnerID, "data", "updated_at").
		Values(learnerID, string(data), toMillis(at)).
		OnConflict(
			entsql.ConflictColumns(colLearnerID),
			entsql.ResolveWithNewValues(),
		)
	if _, err := r.q.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// Delete removes the learner's document, if any.
func (r *ProfileRepo) Delete(ctx context.Context, learnerID string) error {
	del := r.q.build().Delete(tableProfiles).Where(entsql.EQ(colLearnerID, learnerID))
	if _, err := r.q.exec(ctx, del); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
