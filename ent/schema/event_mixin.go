package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin provides the base fields shared by all event types.
// Every event entity should include this mixin to get consistent
// sequence numbering and timestamping.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Monotonically increasing global sequence number"),
		field.Int64("occurred_at").
			Immutable().
			Comment("UTC wall-clock time of the event in Unix nanoseconds"),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sequence"),
	}
}

// LearnerMixin scopes a row to one learner.
type LearnerMixin struct {
	mixin.Schema
}

func (LearnerMixin) Fields() []ent.Field {
	return []ent.Field{
		field.String("learner_id").
			NotEmpty().
			Immutable(),
	}
}
