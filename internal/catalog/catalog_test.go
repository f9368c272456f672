package catalog

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"7", "7", 0},
		{"9", "abc", -1},
		{"abc", "9", 1},
		{"abc", "abd", -1},
	}
	for _, tt := range tests {
		if got := CompareIDs(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareIDs(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNewExercisesOrdersByID(t *testing.T) {
	c, err := NewExercises([]Exercise{
		{ID: "10", Difficulty: Hard, Tags: []string{"loops"}},
		{ID: "2", Difficulty: Easy, Tags: []string{"loops"}},
		{ID: "1", Difficulty: Medium, Tags: []string{"strings"}},
	})
	if err != nil {
		t.Fatalf("NewExercises: %v", err)
	}

	var ids []string
	for _, e := range c.All() {
		ids = append(ids, e.ID)
	}
	if want := []string{"1", "2", "10"}; !slices.Equal(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}

	easy := c.ByDifficulty(Easy)
	if len(easy) != 1 || easy[0].ID != "2" {
		t.Errorf("ByDifficulty(easy) = %v, want [2]", easy)
	}
	if got := c.Tags("1"); !slices.Equal(got, []string{"strings"}) {
		t.Errorf("Tags(1) = %v", got)
	}
}

func TestExercisesUntracked(t *testing.T) {
	c, err := NewExercises([]Exercise{
		{ID: "1", Difficulty: Easy, Tags: []string{"loops", "basic arithmetic"}},
		{ID: "2", Difficulty: Medium, Tags: []string{"graphs"}},
		{ID: "3", Difficulty: Hard, Tags: []string{"linked list", "pointers"}},
	})
	if err != nil {
		t.Fatalf("NewExercises: %v", err)
	}
	if got, want := c.Untracked(), []string{"2", "3"}; !slices.Equal(got, want) {
		t.Errorf("Untracked() = %v, want %v", got, want)
	}
}

func TestNewExercisesValidation(t *testing.T) {
	tests := []struct {
		name    string
		items   []Exercise
		wantMsg string
	}{
		{"empty", nil, "no exercises"},
		{"duplicate", []Exercise{
			{ID: "1", Difficulty: Easy, Tags: []string{"a"}},
			{ID: "1", Difficulty: Easy, Tags: []string{"a"}},
		}, "duplicate exercise ID"},
		{"bad difficulty", []Exercise{
			{ID: "1", Difficulty: "extreme", Tags: []string{"a"}},
		}, "unknown difficulty"},
		{"no tags", []Exercise{
			{ID: "1", Difficulty: Easy},
		}, "has no tags"},
		{"empty id", []Exercise{
			{Difficulty: Easy, Tags: []string{"a"}},
		}, "empty ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExercises(tt.items)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("err = %v, want ErrInvalidCatalog", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestNewTasksCollapsesDuplicateCommands(t *testing.T) {
	c, err := NewTasks([]ShellTask{
		{ID: "1", Level: 1, Tags: []string{"listing"}, Commands: []string{"ls", "pwd", "ls"}},
	})
	if err != nil {
		t.Fatalf("NewTasks: %v", err)
	}
	task, ok := c.Get("1")
	if !ok {
		t.Fatal("task 1 missing")
	}
	if want := []string{"ls", "pwd"}; !slices.Equal(task.Commands, want) {
		t.Errorf("commands = %v, want %v", task.Commands, want)
	}
}

func TestNewTasksValidation(t *testing.T) {
	tests := []struct {
		name    string
		task    ShellTask
		wantMsg string
	}{
		{"level zero", ShellTask{ID: "1", Tags: []string{"a"}, Commands: []string{"ls"}}, "level 0"},
		{"no commands", ShellTask{ID: "1", Level: 1, Tags: []string{"a"}}, "no commands"},
		{"padded command", ShellTask{ID: "1", Level: 1, Tags: []string{"a"}, Commands: []string{" ls"}}, "padded command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTasks([]ShellTask{tt.task})
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("err = %v, want ErrInvalidCatalog", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestTasksCommandsAndMaxLevel(t *testing.T) {
	c, err := NewTasks([]ShellTask{
		{ID: "1", Level: 1, Tags: []string{"a"}, Commands: []string{"pwd", "ls"}},
		{ID: "2", Level: 4, Tags: []string{"a"}, Commands: []string{"ls", "cd x"}},
	})
	if err != nil {
		t.Fatalf("NewTasks: %v", err)
	}
	if want := []string{"pwd", "ls", "cd x"}; !slices.Equal(c.Commands(), want) {
		t.Errorf("Commands() = %v, want %v", c.Commands(), want)
	}
	if c.MaxLevel() != 4 {
		t.Errorf("MaxLevel() = %d, want 4", c.MaxLevel())
	}
}

func TestDifficultyTables(t *testing.T) {
	tests := []struct {
		d          Difficulty
		rank       int
		target     float64
		multiplier float64
	}{
		{Easy, 0, 3, 0.8},
		{Medium, 1, 6, 1.0},
		{Hard, 2, 9, 1.2},
		{"unknown", -1, 5, 1.0},
	}
	for _, tt := range tests {
		if got := tt.d.Rank(); got != tt.rank {
			t.Errorf("%s.Rank() = %d, want %d", tt.d, got, tt.rank)
		}
		if got := tt.d.TargetSkill(); got != tt.target {
			t.Errorf("%s.TargetSkill() = %v, want %v", tt.d, got, tt.target)
		}
		if got := tt.d.Multiplier(); got != tt.multiplier {
			t.Errorf("%s.Multiplier() = %v, want %v", tt.d, got, tt.multiplier)
		}
	}
}

func TestExerciseFormatCase(t *testing.T) {
	ex := Exercise{Function: "join_words"}
	tests := []struct {
		tc   TestCase
		want string
	}{
		{TestCase{Input: []any{1, 2}, Output: 3}, "join_words(1, 2) == 3"},
		{TestCase{Input: []any{[]any{"a", "b"}, "-"}, Output: "a-b"}, `join_words(["a","b"], "-") == "a-b"`},
		{TestCase{Output: true}, "join_words() == true"},
	}
	for _, tt := range tests {
		if got := ex.FormatCase(tt.tc); got != tt.want {
			t.Errorf("FormatCase = %q, want %q", got, tt.want)
		}
	}
}
