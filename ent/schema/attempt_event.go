package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptEvent records one exercise outcome.
type AttemptEvent struct {
	ent.Schema
}

func (AttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}, LearnerMixin{}}
}

func (AttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Default("").
			Comment("Practice round the attempt belongs to"),
		field.String("item_id").
			NotEmpty().
			Comment("Exercise id"),
		field.String("mode").
			Default("").
			Comment("learning or standard"),
		field.Bool("success"),
		field.Bool("skipped"),
		field.Int("attempts").
			Positive().
			Comment("Tries it took"),
		field.Float("skill_delta").
			Comment("Change applied to each tag's skill"),
	}
}

func (AttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("learner_id", "item_id"),
	}
}
