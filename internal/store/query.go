package store

import (
	"context"
	"database/sql"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// querier runs statements built with the ent SQL builder for the store's
// dialect.
type querier struct {
	db      *sql.DB
	dialect string
}

// querySpec is anything the ent builder can render to SQL and arguments.
type querySpec interface {
	Query() (string, []any)
}

func (q querier) build() *entsql.DialectBuilder {
	return entsql.Dialect(q.dialect)
}

func (q querier) exec(ctx context.Context, b querySpec) (sql.Result, error) {
	query, args := b.Query()
	return q.db.ExecContext(ctx, query, args...)
}

func (q querier) queryRow(ctx context.Context, b querySpec) *sql.Row {
	query, args := b.Query()
	return q.db.QueryRowContext(ctx, query, args...)
}

func (q querier) query(ctx context.Context, b querySpec) (*sql.Rows, error) {
	query, args := b.Query()
	return q.db.QueryContext(ctx, query, args...)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// predicates translates opts into WHERE clauses on the sequence and
// timestamp columns.
func (o QueryOpts) predicates() []*entsql.Predicate {
	var ps []*entsql.Predicate
	if o.After > 0 {
		ps = append(ps, entsql.GT(colSequence, o.After))
	}
	if o.Before > 0 {
		ps = append(ps, entsql.LT(colSequence, o.Before))
	}
	if !o.From.IsZero() {
		ps = append(ps, entsql.GTE(colTimestamp, toMillis(o.From)))
	}
	if !o.To.IsZero() {
		ps = append(ps, entsql.LTE(colTimestamp, toMillis(o.To)))
	}
	return ps
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
