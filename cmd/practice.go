package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NoamFav/bitvoyager/internal/recommend"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Print the next batch of exercises",
	Long: "Print the next batch of exercises without recording anything.\n" +
		"With --explain, also print the learning-mode ranking behind it.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		modeName, _ := cmd.Flags().GetString("mode")
		if modeName == "" {
			modeName = d.cfg.Practice.Mode
		}
		mode, err := recommend.ParseMode(modeName)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		round, err := d.engine.StartRound(ctx, mode)
		if err != nil {
			return fmt.Errorf("select batch: %w", err)
		}

		fmt.Fprintf(out, "Next %s batch for %s:\n", mode, d.engine.LearnerID())
		for i, ex := range round.Items {
			fmt.Fprintf(out, "  %d. %-4s %-8s %s  (%s)\n",
				i+1, ex.ID, ex.Difficulty, ex.Title, strings.Join(ex.Tags, ", "))
		}

		if explain, _ := cmd.Flags().GetBool("explain"); explain {
			top, _ := cmd.Flags().GetInt("top")
			fmt.Fprintln(out)
			printRanking(cmd, d.engine.Rank(ctx), top)
		}
		return nil
	},
}

func printRanking(cmd *cobra.Command, ranked []recommend.Scored, top int) {
	out := cmd.OutOrStdout()
	if len(ranked) == 0 {
		fmt.Fprintln(out, "Every exercise is completed.")
		return
	}
	if top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}

	fmt.Fprintf(out, "%-4s  %-28s  %-6s  %6s  %6s  %6s  %6s  %6s  %5s  %7s\n",
		"ID", "Title", "Diff", "Skill", "Novel", "Guard", "Skip", "Fail", "Retry", "Total")
	fmt.Fprintln(out, strings.Repeat("\u2500", 100))
	for _, sc := range ranked {
		retry := ""
		if sc.Retry {
			retry = "yes"
		}
		fmt.Fprintf(out, "%-4s  %-28s  %-6s  %6.2f  %6.2f  %6.2f  %6.2f  %6.2f  %5s  %7.2f\n",
			sc.Exercise.ID, truncate(sc.Exercise.Title, 28), sc.Exercise.Difficulty,
			sc.SkillMatch, sc.Novelty, sc.Guard, sc.SkipBonus, sc.FailPenalty, retry, sc.Total)
	}
}

func init() {
	practiceCmd.Flags().StringP("mode", "m", "", "Selection mode: learning or standard (default from config)")
	practiceCmd.Flags().Bool("explain", false, "Print the learning-mode score breakdown")
	practiceCmd.Flags().Int("top", 10, "Rows to show with --explain (0 = all)")
}
