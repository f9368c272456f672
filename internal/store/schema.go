package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and shared column names.
const (
	tableProfiles        = "profiles"
	tableTaskCompletions = "task_completions"
	tableCommandHistory  = "command_history"
	tableAttemptEvents   = "attempt_events"
	tableLLMEvents       = "llm_request_events"
	tableSettings        = "learner_settings"

	colID        = "id"
	colLearnerID = "learner_id"
	colSequence  = "sequence"
	colTimestamp = "occurred_at"
)

// textSize makes string columns unbounded TEXT on every dialect.
const textSize = 2147483647

var (
	// ProfilesColumns holds one JSON profile document per learner.
	ProfilesColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colLearnerID, Type: field.TypeString, Unique: true},
		{Name: "data", Type: field.TypeString, Size: textSize},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	ProfilesTable = &schema.Table{
		Name:       tableProfiles,
		Columns:    ProfilesColumns,
		PrimaryKey: []*schema.Column{ProfilesColumns[0]},
	}

	// TaskCompletionsColumns is the persisted task history log.
	TaskCompletionsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colLearnerID, Type: field.TypeString},
		{Name: "task_id", Type: field.TypeString},
		{Name: "title", Type: field.TypeString, Default: ""},
		{Name: "skipped", Type: field.TypeBool, Default: false},
		{Name: "completed_at", Type: field.TypeInt64},
	}
	TaskCompletionsTable = &schema.Table{
		Name:       tableTaskCompletions,
		Columns:    TaskCompletionsColumns,
		PrimaryKey: []*schema.Column{TaskCompletionsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "taskcompletion_learner_id_completed_at",
				Unique:  false,
				Columns: []*schema.Column{TaskCompletionsColumns[1], TaskCompletionsColumns[5]},
			},
		},
	}

	// CommandHistoryColumns is the append-only terminal input feed.
	CommandHistoryColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colLearnerID, Type: field.TypeString},
		{Name: "command", Type: field.TypeString, Size: textSize},
		{Name: "entered_at", Type: field.TypeInt64},
	}
	CommandHistoryTable = &schema.Table{
		Name:       tableCommandHistory,
		Columns:    CommandHistoryColumns,
		PrimaryKey: []*schema.Column{CommandHistoryColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "commandhistory_learner_id",
				Unique:  false,
				Columns: []*schema.Column{CommandHistoryColumns[1]},
			},
		},
	}

	// AttemptEventsColumns records every exercise outcome.
	AttemptEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeInt64},
		{Name: colLearnerID, Type: field.TypeString},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "item_id", Type: field.TypeString},
		{Name: "mode", Type: field.TypeString, Default: ""},
		{Name: "success", Type: field.TypeBool},
		{Name: "skipped", Type: field.TypeBool},
		{Name: "attempts", Type: field.TypeInt},
		{Name: "skill_delta", Type: field.TypeFloat64},
	}
	AttemptEventsTable = &schema.Table{
		Name:       tableAttemptEvents,
		Columns:    AttemptEventsColumns,
		PrimaryKey: []*schema.Column{AttemptEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attemptevent_learner_id_item_id",
				Unique:  false,
				Columns: []*schema.Column{AttemptEventsColumns[3], AttemptEventsColumns[5]},
			},
		},
	}

	// LLMEventsColumns records every LLM API call.
	LLMEventsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: textSize, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: textSize, Default: ""},
	}
	LLMEventsTable = &schema.Table{
		Name:       tableLLMEvents,
		Columns:    LLMEventsColumns,
		PrimaryKey: []*schema.Column{LLMEventsColumns[0]},
	}

	// SettingsColumns holds learner-scoped key/value pairs.
	SettingsColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colLearnerID, Type: field.TypeString},
		{Name: "setting_key", Type: field.TypeString},
		{Name: "setting_value", Type: field.TypeString, Size: textSize},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	SettingsTable = &schema.Table{
		Name:       tableSettings,
		Columns:    SettingsColumns,
		PrimaryKey: []*schema.Column{SettingsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "learnersetting_learner_id_key",
				Unique:  true,
				Columns: []*schema.Column{SettingsColumns[1], SettingsColumns[2]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ProfilesTable,
		TaskCompletionsTable,
		CommandHistoryTable,
		AttemptEventsTable,
		LLMEventsTable,
		SettingsTable,
	}
)
