package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LearnerSetting is a learner-scoped key/value pair such as the shell level.
type LearnerSetting struct {
	ent.Schema
}

func (LearnerSetting) Mixin() []ent.Mixin {
	return []ent.Mixin{LearnerMixin{}}
}

func (LearnerSetting) Fields() []ent.Field {
	return []ent.Field{
		field.String("setting_key").NotEmpty(),
		field.Text("setting_value"),
		field.Int64("updated_at"),
	}
}

func (LearnerSetting) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("learner_id", "setting_key").Unique(),
	}
}
