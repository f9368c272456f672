package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := r.q.build().Insert(tableAttemptEvents).
		Columns(colSequence, colTimestamp, colLearnerID, "session_id", "item_id", "mode",
			"success", "skipped", "attempts", "skill_delta").
		Values(seqNum, toMillis(r.now()), data.LearnerID, data.SessionID, data.ItemID, data.Mode,
			data.Success, data.Skipped, data.Attempts, data.SkillDelta)
	if _, err := r.q.exec(ctx, ins); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, learnerID string, opts QueryOpts) ([]AttemptEvent, error) {
	preds := append(opts.predicates(), entsql.EQ(colLearnerID, learnerID))
	sel := r.q.build().
		Select(colID, colSequence, colTimestamp, colLearnerID, "session_id", "item_id", "mode",
			"success", "skipped", "attempts", "skill_delta").
		From(entsql.Table(tableAttemptEvents)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc(colSequence))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	rows, err := r.q.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var out []AttemptEvent
	for rows.Next() {
		var e AttemptEvent
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.LearnerID, &e.SessionID, &e.ItemID, &e.Mode,
			&e.Success, &e.Skipped, &e.Attempts, &e.SkillDelta); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) AttemptStats(ctx context.Context, learnerID string) (AttemptStats, error) {
	sel := r.q.build().
		Select("success", "skipped", "item_id").
		From(entsql.Table(tableAttemptEvents)).
		Where(entsql.EQ(colLearnerID, learnerID))

	rows, err := r.q.query(ctx, sel)
	if err != nil {
		return AttemptStats{}, fmt.Errorf("query attempt stats: %w", err)
	}
	defer rows.Close()

	var st AttemptStats
	items := make(map[string]bool)
	for rows.Next() {
		var success, skipped bool
		var itemID string
		if err := rows.Scan(&success, &skipped, &itemID); err != nil {
			return AttemptStats{}, fmt.Errorf("scan attempt stats: %w", err)
		}
		st.Total++
		items[itemID] = true
		switch {
		case skipped:
			st.Skips++
		case success:
			st.Successes++
		default:
			st.Failures++
		}
	}
	st.Items = len(items)
	return st, rows.Err()
}
