package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := r.q.build().Insert(tableLLMEvents).
		Columns(colSequence, colTimestamp, "provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body").
		Values(seqNum, toMillis(r.now()), data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody)
	if _, err := r.q.exec(ctx, ins); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

var llmEventColumns = []string{colID, colSequence, colTimestamp, "provider", "model", "purpose", "input_tokens",
	"output_tokens", "latency_ms", "success", "error_message", "request_body", "response_body"}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := r.q.build().
		Select(llmEventColumns...).
		From(entsql.Table(tableLLMEvents)).
		OrderBy(entsql.Desc(colSequence))
	if preds := opts.predicates(); len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return r.scanLLMEvents(ctx, sel)
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	sel := r.q.build().
		Select(llmEventColumns...).
		From(entsql.Table(tableLLMEvents)).
		Where(entsql.EQ(colID, id))
	events, err := r.scanLLMEvents(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) scanLLMEvents(ctx context.Context, sel *entsql.Selector) ([]LLMEvent, error) {
	rows, err := r.q.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		var e LLMEvent
		var ts int64
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.Provider, &e.Model, &e.Purpose, &e.InputTokens,
			&e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody); err != nil {
			return nil, fmt.Errorf("scan LLM event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	sel := r.q.build().
		Select("purpose",
			entsql.Count("*"),
			entsql.Sum("input_tokens"),
			entsql.Sum("output_tokens"),
			entsql.Avg("latency_ms")).
		From(entsql.Table(tableLLMEvents)).
		GroupBy("purpose").
		OrderBy("purpose")

	rows, err := r.q.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		var in, outTok sql.NullInt64
		var avg sql.NullFloat64
		if err := rows.Scan(&u.Purpose, &u.Calls, &in, &outTok, &avg); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		u.InputTokens = int(in.Int64)
		u.OutputTokens = int(outTok.Int64)
		u.AvgLatencyMs = int64(avg.Float64)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	sel := r.q.build().
		Select("model",
			entsql.Count("*"),
			entsql.Sum("input_tokens"),
			entsql.Sum("output_tokens")).
		From(entsql.Table(tableLLMEvents)).
		GroupBy("model").
		OrderBy("model")

	rows, err := r.q.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM model usage: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		var in, outTok sql.NullInt64
		if err := rows.Scan(&u.Model, &u.Calls, &in, &outTok); err != nil {
			return nil, fmt.Errorf("scan LLM model usage: %w", err)
		}
		u.InputTokens = int(in.Int64)
		u.OutputTokens = int(outTok.Int64)
		out = append(out, u)
	}
	return out, rows.Err()
}
