package hints

import (
	"fmt"
	"strings"

	"github.com/NoamFav/bitvoyager/internal/catalog"
)

const taskSystemPrompt = `You coach a beginner learning the Unix shell.
Give a short hint for the current task. Name the program to use but never
write the complete command line with its arguments.`

const exerciseSystemPrompt = `You coach a beginner learning Python.
Give a short hint for the exercise. Point at the idea or the built-in to use
but never write the solution code.`

func buildTaskPrompt(task catalog.ShellTask, satisfied []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n", task.Title)
	if task.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", task.Description)
	}
	fmt.Fprintf(&b, "Commands needed: %d\n", len(task.Commands))
	if len(satisfied) > 0 {
		fmt.Fprintf(&b, "Already entered: %s\n", strings.Join(satisfied, ", "))
	}
	return b.String()
}

func buildExercisePrompt(ex catalog.Exercise, skill float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Exercise: %s (%s)\n", ex.Title, ex.Difficulty.DisplayName())
	fmt.Fprintf(&b, "Learner skill: %.1f/10\n", skill)
	fmt.Fprintf(&b, "Prompt: %s\n", ex.Prompt)
	if ex.Code != "" {
		fmt.Fprintf(&b, "Code:\n%s\n", ex.Code)
	}
	if len(ex.TestCases) > 0 {
		fmt.Fprintf(&b, "Example: %s\n", ex.FormatCase(ex.TestCases[0]))
	}
	return b.String()
}
