package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// TaskRepo persists one learner's shell task completions. The completion
// log doubles as the exclusion set for task generation.
type TaskRepo struct {
	q         querier
	learnerID string
	retention time.Duration
	now       func() time.Time
}

// RecordCompletion appends c to the learner's task history.
func (r *TaskRepo) RecordCompletion(ctx context.Context, c TaskCompletion) error {
	at := c.CompletedAt
	if at.IsZero() {
		at = r.now()
	}
	ins := r.q.build().Insert(tableTaskCompletions).
		Columns(colLearnerID, "task_id", "title", "skipped", "completed_at").
		Values(r.learnerID, c.TaskID, c.Title, c.Skipped, toMillis(at))
	if _, err := r.q.exec(ctx, ins); err != nil {
		return fmt.Errorf("save task completion: %w", err)
	}
	return nil
}

// Completions returns the learner's task history, oldest first.
func (r *TaskRepo) Completions(ctx context.Context) ([]TaskCompletion, error) {
	sel := r.q.build().
		Select("task_id", "title", "skipped", "completed_at").
		From(entsql.Table(tableTaskCompletions)).
		Where(entsql.EQ(colLearnerID, r.learnerID)).
		OrderBy("completed_at", colID)

	rows, err := r.q.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query task completions: %w", err)
	}
	defer rows.Close()

	var out []TaskCompletion
	for rows.Next() {
		var c TaskCompletion
		var at int64
		if err := rows.Scan(&c.TaskID, &c.Title, &c.Skipped, &at); err != nil {
			return nil, fmt.Errorf("scan task completion: %w", err)
		}
		c.CompletedAt = fromMillis(at)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Excluded returns the IDs of every task the learner has completed or
// skipped. When the newest completion is older than the retention window
// the whole log has expired: it is deleted and an empty set is returned.
func (r *TaskRepo) Excluded(ctx context.Context) (map[string]bool, error) {
	completions, err := r.Completions(ctx)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(completions))
	if len(completions) == 0 {
		return excluded, nil
	}

	latest := completions[len(completions)-1].CompletedAt
	if r.retention > 0 && r.now().Sub(latest) > r.retention {
		if err := r.ClearCompletions(ctx); err != nil {
			return nil, err
		}
		return excluded, nil
	}

	for _, c := range completions {
		excluded[c.TaskID] = true
	}
	return excluded, nil
}

// ClearCompletions deletes the learner's task history.
func (r *TaskRepo) ClearCompletions(ctx context.Context) error {
	del := r.q.build().Delete(tableTaskCompletions).Where(entsql.EQ(colLearnerID, r.learnerID))
	if _, err := r.q.exec(ctx, del); err != nil {
		return fmt.Errorf("clear task completions: %w", err)
	}
	return nil
}
