package taskgen

import (
	"slices"
	"strings"

	"github.com/NoamFav/bitvoyager/internal/catalog"
)

// UsageCounts returns, for every expected command in tasks, how many
// history lines are exactly that command.
func UsageCounts(history []string, tasks *catalog.Tasks) map[string]int {
	usage := make(map[string]int)
	for _, cmd := range tasks.Commands() {
		usage[cmd] = 0
	}
	for _, line := range history {
		if _, ok := usage[line]; ok {
			usage[line]++
		}
	}
	return usage
}

// RegenerateQueue ranks the unlocked, non-excluded tasks so the ones whose
// least-practiced command has been used the fewest times come first. Equal
// ranks keep catalog order. The result may be empty.
func RegenerateQueue(history []string, level int, tasks *catalog.Tasks, excluded map[string]bool) []catalog.ShellTask {
	usage := UsageCounts(history, tasks)

	var queue []catalog.ShellTask
	for _, t := range tasks.All() {
		if t.Level > level || excluded[t.ID] {
			continue
		}
		queue = append(queue, t)
	}

	slices.SortStableFunc(queue, func(a, b catalog.ShellTask) int {
		ua, ub := minUsage(a, usage), minUsage(b, usage)
		if ua != ub {
			return ua - ub
		}
		return catalog.CompareIDs(a.ID, b.ID)
	})
	return queue
}

func minUsage(t catalog.ShellTask, usage map[string]int) int {
	least := -1
	for _, cmd := range t.Commands {
		if n := usage[cmd]; least < 0 || n < least {
			least = n
		}
	}
	if least < 0 {
		return 0
	}
	return least
}

// Matches reports whether an input line runs command: the trimmed line is
// the command itself or the command followed by arguments.
func Matches(line, command string) bool {
	line = strings.TrimSpace(line)
	return line == command || strings.HasPrefix(line, command+" ")
}
