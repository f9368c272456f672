package catalog

import (
	_ "embed"
	"slices"
	"sync"
)

//go:embed data/exercises.yaml
var defaultExercisesYAML []byte

//go:embed data/tasks.yaml
var defaultTasksYAML []byte

var (
	defaultExercises = sync.OnceValues(func() (*Exercises, error) {
		return ParseExercises(defaultExercisesYAML, FormatYAML)
	})
	defaultTasks = sync.OnceValues(func() (*Tasks, error) {
		return ParseTasks(defaultTasksYAML, FormatYAML)
	})
)

// DefaultExercises returns the built-in Python exercise catalog.
func DefaultExercises() (*Exercises, error) {
	return defaultExercises()
}

// DefaultTasks returns the built-in shell task catalog.
func DefaultTasks() (*Tasks, error) {
	return defaultTasks()
}

var defaultSkillTags = []string{
	"loops",
	"list manipulation",
	"strings",
	"hash tables",
	"arrays",
	"recursion",
	"dynamic programming",
	"binary search",
	"matrix",
	"sorting",
}

// DefaultSkillTags returns the topic vocabulary a new learner profile
// starts with.
func DefaultSkillTags() []string {
	return slices.Clone(defaultSkillTags)
}
