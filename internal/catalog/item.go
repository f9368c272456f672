package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Scorable is the capability shared by every catalog item kind: a stable
// key and the topic tags it exercises.
type Scorable interface {
	Key() string
	Topics() []string
}

// Graded is a Scorable with an ordinal difficulty.
type Graded interface {
	Scorable
	Grade() Difficulty
}

// TestCase is a single input/output example for an exercise.
type TestCase struct {
	Input  []any `yaml:"input" toml:"input" json:"input"`
	Output any   `yaml:"output" toml:"output" json:"output"`
}

// Exercise is a fill-in-the-blank Python exercise.
type Exercise struct {
	ID            string     `yaml:"id" toml:"id" json:"id"`
	Title         string     `yaml:"title" toml:"title" json:"title"`
	Difficulty    Difficulty `yaml:"difficulty" toml:"difficulty" json:"difficulty"`
	Tags          []string   `yaml:"tags" toml:"tags" json:"tags"`
	Type          string     `yaml:"type" toml:"type" json:"type"`
	Function      string     `yaml:"function" toml:"function" json:"function"`
	Prompt        string     `yaml:"prompt" toml:"prompt" json:"prompt"`
	Code          string     `yaml:"code" toml:"code" json:"code"`
	EditableLines []int      `yaml:"editable_lines" toml:"editable_lines" json:"editable_lines"`
	TestCases     []TestCase `yaml:"test_cases" toml:"test_cases" json:"test_cases"`
}

func (e Exercise) Key() string { return e.ID }
func (e Exercise) Topics() []string { return e.Tags }
func (e Exercise) Grade() Difficulty { return e.Difficulty }

// FormatCase renders tc as a call of the exercise's function, e.g.
// add(1, 2) == 3.
func (e Exercise) FormatCase(tc TestCase) string {
	args := make([]string, len(tc.Input))
	for i, in := range tc.Input {
		args[i] = literal(in)
	}
	return fmt.Sprintf("%s(%s) == %s", e.Function, strings.Join(args, ", "), literal(tc.Output))
}

func literal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// ShellTask is a practice task completed by entering each of its commands
// in the terminal.
type ShellTask struct {
	ID          string   `yaml:"id" toml:"id" json:"id"`
	Title       string   `yaml:"title" toml:"title" json:"title"`
	Description string   `yaml:"description" toml:"description" json:"description"`
	Level       int      `yaml:"level" toml:"level" json:"level"`
	Tags        []string `yaml:"tags" toml:"tags" json:"tags"`
	Commands    []string `yaml:"commands" toml:"commands" json:"commands"`
}

func (t ShellTask) Key() string { return t.ID }
func (t ShellTask) Topics() []string { return t.Tags }
