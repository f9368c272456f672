package catalog

import (
	"cmp"
	"slices"
	"strconv"
)

// Exercises is an immutable set of exercises keyed by ID.
type Exercises struct {
	byID  map[string]Exercise
	order []string
}

// NewExercises validates items and builds a catalog from them.
func NewExercises(items []Exercise) (*Exercises, error) {
	if err := validateExercises(items); err != nil {
		return nil, err
	}
	c := &Exercises{byID: make(map[string]Exercise, len(items))}
	for _, e := range items {
		e.Tags = slices.Clone(e.Tags)
		c.byID[e.ID] = e
		c.order = append(c.order, e.ID)
	}
	slices.SortFunc(c.order, CompareIDs)
	return c, nil
}

// Get returns the exercise with the given ID.
func (c *Exercises) Get(id string) (Exercise, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Len returns the number of exercises.
func (c *Exercises) Len() int { return len(c.order) }

// All returns every exercise in ID order. The slice is a fresh copy.
func (c *Exercises) All() []Exercise {
	out := make([]Exercise, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// ByDifficulty returns the exercises of difficulty d in ID order.
func (c *Exercises) ByDifficulty(d Difficulty) []Exercise {
	var out []Exercise
	for _, id := range c.order {
		if e := c.byID[id]; e.Difficulty == d {
			out = append(out, e)
		}
	}
	return out
}

// Tags returns the topic tags of the item with the given ID. It satisfies
// the tag lookup used when computing recently practiced topics.
func (c *Exercises) Tags(id string) []string {
	return c.byID[id].Tags
}

// Untracked returns, in catalog order, the IDs of exercises with no tag in
// DefaultSkillTags. Profiles only track those tags, so attempts at these
// exercises move no skill level.
func (c *Exercises) Untracked() []string {
	var ids []string
	for _, id := range c.order {
		if !slices.ContainsFunc(c.byID[id].Tags, isSkillTag) {
			ids = append(ids, id)
		}
	}
	return ids
}

func isSkillTag(tag string) bool {
	return slices.Contains(defaultSkillTags, tag)
}

// Tasks is an immutable set of shell tasks keyed by ID.
type Tasks struct {
	byID  map[string]ShellTask
	order []string
}

// NewTasks validates items and builds a catalog from them. Duplicate
// commands within a task are collapsed.
func NewTasks(items []ShellTask) (*Tasks, error) {
	if err := validateTasks(items); err != nil {
		return nil, err
	}
	c := &Tasks{byID: make(map[string]ShellTask, len(items))}
	for _, t := range items {
		t.Commands = dedupe(t.Commands)
		t.Tags = slices.Clone(t.Tags)
		c.byID[t.ID] = t
		c.order = append(c.order, t.ID)
	}
	slices.SortFunc(c.order, CompareIDs)
	return c, nil
}

// Get returns the task with the given ID.
func (c *Tasks) Get(id string) (ShellTask, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// Len returns the number of tasks.
func (c *Tasks) Len() int { return len(c.order) }

// All returns every task in ID order. The slice is a fresh copy.
func (c *Tasks) All() []ShellTask {
	out := make([]ShellTask, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Commands returns the distinct expected commands across all tasks, in
// task order.
func (c *Tasks) Commands() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range c.order {
		for _, cmd := range c.byID[id].Commands {
			if !seen[cmd] {
				seen[cmd] = true
				out = append(out, cmd)
			}
		}
	}
	return out
}

// MaxLevel returns the highest unlock level in the catalog.
func (c *Tasks) MaxLevel() int {
	maxLevel := 0
	for _, t := range c.byID {
		maxLevel = max(maxLevel, t.Level)
	}
	return maxLevel
}

// CompareIDs orders catalog IDs. Two all-digit IDs compare numerically;
// anything else compares lexically.
func CompareIDs(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
