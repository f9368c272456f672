package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/NoamFav/bitvoyager/internal/profile"
	"github.com/NoamFav/bitvoyager/internal/recommend"
)

var attemptCmd = &cobra.Command{
	Use:   "attempt <exercise-id>",
	Short: "Record the outcome of an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := attemptFromFlags(cmd)
		if err != nil {
			return err
		}

		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ex, ok := d.engine.Exercises().Get(args[0])
		if !ok {
			return fmt.Errorf("exercise %q not found", args[0])
		}

		modeName, _ := cmd.Flags().GetString("mode")
		if modeName == "" {
			modeName = d.cfg.Practice.Mode
		}
		mode, err := recommend.ParseMode(modeName)
		if err != nil {
			return err
		}

		res, err := d.engine.RecordExercise(cmd.Context(), uuid.NewString(), mode, ex, a)
		if err != nil {
			return fmt.Errorf("record attempt: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, skill %+.2f on %s\n",
			ex.Title, describeAttempt(res.Attempt), res.SkillDelta, strings.Join(ex.Tags, ", "))
		return nil
	},
}

// attemptFromFlags reads the outcome flags. Exactly one of --success,
// --fail and --skip is set; cobra enforces that.
func attemptFromFlags(cmd *cobra.Command) (profile.Attempt, error) {
	success, _ := cmd.Flags().GetBool("success")
	skip, _ := cmd.Flags().GetBool("skip")
	attempts, _ := cmd.Flags().GetInt("attempts")
	if attempts < 1 {
		return profile.Attempt{}, fmt.Errorf("--attempts must be at least 1, got %d", attempts)
	}
	return profile.Attempt{Success: success, Skipped: skip, Attempts: attempts}, nil
}

func describeAttempt(a profile.Attempt) string {
	tries := "1 try"
	if a.Attempts != 1 {
		tries = fmt.Sprintf("%d tries", a.Attempts)
	}
	switch {
	case a.Skipped:
		return "skipped after " + tries
	case a.Success:
		return "solved in " + tries
	}
	return "missed after " + tries
}

func init() {
	attemptCmd.Flags().Bool("success", false, "The exercise was solved")
	attemptCmd.Flags().Bool("fail", false, "The exercise was not solved")
	attemptCmd.Flags().Bool("skip", false, "The exercise was skipped")
	attemptCmd.Flags().IntP("attempts", "n", 1, "Number of tries")
	attemptCmd.Flags().StringP("mode", "m", "", "Mode recorded with the attempt (default from config)")
	attemptCmd.MarkFlagsMutuallyExclusive("success", "fail", "skip")
	attemptCmd.MarkFlagsOneRequired("success", "fail", "skip")
}
