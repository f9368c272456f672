package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NoamFav/bitvoyager/internal/profile"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		st, err := d.engine.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		out := cmd.OutOrStdout()
		p := st.Profile
		fmt.Fprintf(out, "Learner:        %s\n", d.engine.LearnerID())
		fmt.Fprintf(out, "Streak:         %d days\n", p.ConsecutiveDays)
		fmt.Fprintf(out, "Completed:      %d exercises\n", len(p.CompletedQuestions))
		fmt.Fprintf(out, "Skipped:        %d exercises\n", len(p.SkippedQuestions))
		fmt.Fprintf(out, "Attempts:       %d (%d solved, %d missed, %d skipped)\n",
			st.Attempts.Total, st.Attempts.Successes, st.Attempts.Failures, st.Attempts.Skips)
		fmt.Fprintf(out, "Shell tasks:    %d done, %d skipped\n", st.TasksCompleted, st.TasksSkipped)
		fmt.Fprintf(out, "Shell level:    %d\n", st.Level)
		fmt.Fprintf(out, "Overall skill:  %.1f / %.0f\n", p.OverallSkill(), profile.MaxSkill)

		if len(p.SkillLevels) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Skills")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, tag := range slices.Sorted(maps.Keys(p.SkillLevels)) {
			v := p.SkillLevels[tag]
			fmt.Fprintf(out, "%-14s %4.1f  %s\n", tag, v, skillBar(v, 20))
		}
		return nil
	},
}

// skillBar draws v on a bar of width cells.
func skillBar(v float64, width int) string {
	filled := int(v / profile.MaxSkill * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
