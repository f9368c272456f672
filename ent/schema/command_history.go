package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// CommandHistory is one line of terminal input, in entry order.
type CommandHistory struct {
	ent.Schema
}

func (CommandHistory) Mixin() []ent.Mixin {
	return []ent.Mixin{LearnerMixin{}}
}

func (CommandHistory) Fields() []ent.Field {
	return []ent.Field{
		field.Text("command"),
		field.Int64("entered_at"),
	}
}

func (CommandHistory) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("learner_id"),
	}
}
