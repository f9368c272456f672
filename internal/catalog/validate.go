package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog is returned when a catalog cannot be loaded or fails
// validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// validateExercises performs all structural checks on the given exercises.
// Returns a combined error describing all problems found, or nil if valid.
func validateExercises(items []Exercise) error {
	var errs []string
	if len(items) == 0 {
		errs = append(errs, "catalog has no exercises")
	}

	seen := make(map[string]bool, len(items))
	for i, e := range items {
		if e.ID == "" {
			errs = append(errs, fmt.Sprintf("exercise #%d has an empty ID", i+1))
			continue
		}
		if seen[e.ID] {
			errs = append(errs, fmt.Sprintf("duplicate exercise ID: %q", e.ID))
		}
		seen[e.ID] = true

		if !e.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("exercise %q has unknown difficulty %q", e.ID, e.Difficulty))
		}
		errs = append(errs, checkTags("exercise", e.ID, e.Tags)...)
	}

	return joinProblems(errs)
}

// validateTasks performs all structural checks on the given shell tasks.
func validateTasks(items []ShellTask) error {
	var errs []string
	if len(items) == 0 {
		errs = append(errs, "catalog has no tasks")
	}

	seen := make(map[string]bool, len(items))
	for i, t := range items {
		if t.ID == "" {
			errs = append(errs, fmt.Sprintf("task #%d has an empty ID", i+1))
			continue
		}
		if seen[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate task ID: %q", t.ID))
		}
		seen[t.ID] = true

		if t.Level < 1 {
			errs = append(errs, fmt.Sprintf("task %q has level %d, want >= 1", t.ID, t.Level))
		}
		if len(t.Commands) == 0 {
			errs = append(errs, fmt.Sprintf("task %q has no commands", t.ID))
		}
		for _, c := range t.Commands {
			if strings.TrimSpace(c) != c || c == "" {
				errs = append(errs, fmt.Sprintf("task %q has a blank or padded command %q", t.ID, c))
			}
		}
		errs = append(errs, checkTags("task", t.ID, t.Tags)...)
	}

	return joinProblems(errs)
}

func checkTags(kind, id string, tags []string) []string {
	if len(tags) == 0 {
		return []string{fmt.Sprintf("%s %q has no tags", kind, id)}
	}
	var errs []string
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			errs = append(errs, fmt.Sprintf("%s %q has an empty tag", kind, id))
		}
	}
	return errs
}

func joinProblems(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(errs, "; "))
}
