package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/session"
)

// cli runs the root command against one database file.
type cli struct {
	t  *testing.T
	db string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("BITVOYAGER_CONFIG", "")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("BITVOYAGER_LLM_PROVIDER", "none")
	t.Setenv("BITVOYAGER_LOG_LEVEL", "error")
	return &cli{t: t, db: filepath.Join(t.TempDir(), "bitvoyager.db")}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--db", c.db, "--learner", "ada"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	require.NoError(c.t, err, out)
	return out
}

// resetFlags restores every flag to its default; cobra keeps flag state on
// the package-level commands between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func firstExercise(t *testing.T) catalog.Exercise {
	t.Helper()
	exercises, err := catalog.DefaultExercises()
	require.NoError(t, err)
	return exercises.All()[0]
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun("version"), "bitvoyager")
}

func TestPracticeStandardPrintsOneOfEachDifficulty(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("practice", "--mode", "standard")

	assert.Contains(t, out, "Next standard batch for ada")
	for _, d := range catalog.Difficulties() {
		assert.Contains(t, out, string(d))
	}
}

func TestPracticeExplainPrintsRanking(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("practice", "--explain", "--top", "5")

	assert.Contains(t, out, "Next learning batch")
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "Novel")
}

func TestPracticeRejectsUnknownMode(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "practice", "--mode", "cram")
	assert.Error(t, err)
}

func TestAttemptRecordsOutcome(t *testing.T) {
	c := newCLI(t)
	ex := firstExercise(t)

	out := c.mustRun("attempt", ex.ID, "--success")
	assert.Contains(t, out, "solved in 1 try")

	out = c.mustRun("attempt", ex.ID, "--fail", "--attempts", "3")
	assert.Contains(t, out, "missed after 3 tries")

	stats := c.mustRun("stats")
	assert.Contains(t, stats, "Attempts:       2 (1 solved, 1 missed, 0 skipped)")
	assert.Contains(t, stats, "Completed:      1 exercises")
}

func TestAttemptFlagValidation(t *testing.T) {
	c := newCLI(t)
	ex := firstExercise(t)

	_, err := c.run("", "attempt", ex.ID)
	assert.Error(t, err, "one outcome flag is required")

	_, err = c.run("", "attempt", ex.ID, "--success", "--skip")
	assert.Error(t, err, "outcome flags are exclusive")

	_, err = c.run("", "attempt", ex.ID, "--success", "--attempts", "0")
	assert.Error(t, err)

	_, err = c.run("", "attempt", "nope", "--success")
	assert.ErrorContains(t, err, `exercise "nope" not found`)
}

func TestTasksSkipAndHistory(t *testing.T) {
	c := newCLI(t)

	next := c.mustRun("tasks", "next")
	assert.Contains(t, next, "Commands to run")

	skipped := c.mustRun("tasks", "skip")
	assert.Contains(t, skipped, "Skipped")

	history := c.mustRun("tasks", "history")
	assert.Contains(t, history, "skipped")
}

func TestTasksObserveFromStdin(t *testing.T) {
	c := newCLI(t)
	tasks, err := catalog.DefaultTasks()
	require.NoError(t, err)

	var level1 []catalog.ShellTask
	for _, task := range tasks.All() {
		if task.Level == 1 {
			level1 = append(level1, task)
		}
	}
	require.NotEmpty(t, level1)

	// Feed every level-1 command so whichever task heads the queue is done.
	var in strings.Builder
	for _, task := range level1 {
		for _, command := range task.Commands {
			in.WriteString(command + "\n")
		}
	}

	out, err := c.run(in.String(), "tasks", "observe")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Completed")

	history := c.mustRun("tasks", "history")
	assert.Contains(t, history, "done")
}

func TestLevelSetAndShow(t *testing.T) {
	c := newCLI(t)

	assert.Contains(t, c.mustRun("level"), "Shell task level: 1")
	assert.Contains(t, c.mustRun("level", "set", "2"), "set to 2")
	assert.Contains(t, c.mustRun("level"), "Shell task level: 2")

	_, err := c.run("", "level", "set", "two")
	assert.Error(t, err)
}

func TestResetConfirmation(t *testing.T) {
	c := newCLI(t)
	c.mustRun("level", "set", "2")

	out, err := c.run("n\n", "reset", "--level")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Contains(t, c.mustRun("level"), "Shell task level: 2")

	out, err = c.run("y\n", "reset", "--level")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset shell level for ada.")
	assert.Contains(t, c.mustRun("level"), "Shell task level: 1")
}

func TestResetOptions(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		want  session.ResetOptions
	}{
		{"none means all", nil, session.ResetAll()},
		{"all", []string{"--all", "--tasks"}, session.ResetAll()},
		{"profile only", []string{"--profile"}, session.ResetOptions{Profile: true}},
		{"history and level", []string{"--history", "--level"}, session.ResetOptions{History: true, Level: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(resetCmd)
			require.NoError(t, resetCmd.ParseFlags(tt.flags))
			assert.Equal(t, tt.want, resetOptions(resetCmd))
		})
	}
}

func TestCatalogExercisesFilter(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("catalog", "exercises", "--difficulty", "easy")
	assert.Contains(t, out, "easy")
	assert.NotContains(t, out, "  hard  ")

	_, err := c.run("", "catalog", "exercises", "--difficulty", "brutal")
	assert.ErrorContains(t, err, "unknown difficulty")
}

func TestCatalogExercisesMarksUntracked(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("catalog", "exercises")
	assert.Contains(t, out, "\n12*")
	assert.Contains(t, out, "* 1 with no tracked skill tag")
}

func TestCatalogTasksLevelFilter(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("catalog", "tasks", "--level", "1")
	assert.Contains(t, out, "L1")
	assert.NotContains(t, out, "L2 ")
}

func TestCatalogRejectsMissingFile(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "catalog", "tasks", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHintExerciseOffline(t *testing.T) {
	c := newCLI(t)
	ex := firstExercise(t)

	out := c.mustRun("hint", "exercise", ex.ID)
	assert.Contains(t, out, "(offline)")
}

func TestLLMListEmpty(t *testing.T) {
	c := newCLI(t)
	assert.Contains(t, c.mustRun("llm", "list"), "No LLM events found.")
	assert.Contains(t, c.mustRun("llm", "stats"), "No LLM usage recorded yet.")

	_, err := c.run("", "llm", "view", "42")
	assert.ErrorContains(t, err, "event 42 not found")
}

func TestSkillBar(t *testing.T) {
	assert.Equal(t, "░░░░", skillBar(0, 4))
	assert.Equal(t, "██░░", skillBar(5, 4))
	assert.Equal(t, "████", skillBar(12, 4))
}
