package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// HistoryRepo is one learner's append-only feed of entered command lines.
type HistoryRepo struct {
	q         querier
	learnerID string
	now       func() time.Time
}

// Append adds a raw command line to the end of the feed.
func (r *HistoryRepo) Append(ctx context.Context, command string) error {
	ins := r.q.build().Insert(tableCommandHistory).
		Columns(colLearnerID, "command", "entered_at").
		Values(r.learnerID, command, toMillis(r.now()))
	if _, err := r.q.exec(ctx, ins); err != nil {
		return fmt.Errorf("append command: %w", err)
	}
	return nil
}

// Commands returns every recorded command line in entry order.
func (r *HistoryRepo) Commands(ctx context.Context) ([]string, error) {
	sel := r.q.build().
		Select("command").
		From(entsql.Table(tableCommandHistory)).
		Where(entsql.EQ(colLearnerID, r.learnerID)).
		OrderBy(colID)

	rows, err := r.q.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query commands: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var cmd string
		if err := rows.Scan(&cmd); err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		out = append(out, cmd)
	}
	return out, rows.Err()
}

// Clear deletes the learner's command history.
func (r *HistoryRepo) Clear(ctx context.Context) error {
	del := r.q.build().Delete(tableCommandHistory).Where(entsql.EQ(colLearnerID, r.learnerID))
	if _, err := r.q.exec(ctx, del); err != nil {
		return fmt.Errorf("clear command history: %w", err)
	}
	return nil
}
