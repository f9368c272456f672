package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// TaskCompletion is one finished or skipped shell task.
type TaskCompletion struct {
	ent.Schema
}

func (TaskCompletion) Mixin() []ent.Mixin {
	return []ent.Mixin{LearnerMixin{}}
}

func (TaskCompletion) Fields() []ent.Field {
	return []ent.Field{
		field.String("task_id").NotEmpty(),
		field.String("title").Default(""),
		field.Bool("skipped").Default(false),
		field.Int64("completed_at"),
	}
}

func (TaskCompletion) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("learner_id", "completed_at"),
	}
}
