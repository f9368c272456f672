package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Profile holds a learner's skill model as one JSON document.
type Profile struct {
	ent.Schema
}

func (Profile) Fields() []ent.Field {
	return []ent.Field{
		field.String("learner_id").
			NotEmpty().
			Unique(),
		field.Text("data").
			Comment("Profile JSON"),
		field.Int64("updated_at").
			Comment("Unix nanoseconds of the last save"),
	}
}
