package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NoamFav/bitvoyager/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long: "Reset learner data. Without a selection flag everything is cleared:\n" +
		"the skill profile, shell task completions, command history and level.",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := resetOptions(cmd)

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			ok, err := confirm(cmd, fmt.Sprintf("Reset %s?", describeReset(opts)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.engine.Reset(cmd.Context(), opts); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s for %s.\n", describeReset(opts), d.engine.LearnerID())
		return nil
	},
}

// resetOptions maps the selection flags; none (or --all) selects
// everything.
func resetOptions(cmd *cobra.Command) session.ResetOptions {
	all, _ := cmd.Flags().GetBool("all")
	var o session.ResetOptions
	o.Profile, _ = cmd.Flags().GetBool("profile")
	o.Tasks, _ = cmd.Flags().GetBool("tasks")
	o.History, _ = cmd.Flags().GetBool("history")
	o.Level, _ = cmd.Flags().GetBool("level")
	if all || o == (session.ResetOptions{}) {
		return session.ResetAll()
	}
	return o
}

func describeReset(o session.ResetOptions) string {
	var parts []string
	if o.Profile {
		parts = append(parts, "skill profile")
	}
	if o.Tasks {
		parts = append(parts, "task completions")
	}
	if o.History {
		parts = append(parts, "command history")
	}
	if o.Level {
		parts = append(parts, "shell level")
	}
	return strings.Join(parts, ", ")
}

// confirm asks a y/N question on the command's input.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func init() {
	resetCmd.Flags().Bool("profile", false, "Clear the skill profile")
	resetCmd.Flags().Bool("tasks", false, "Clear shell task completions")
	resetCmd.Flags().Bool("history", false, "Clear the command history")
	resetCmd.Flags().Bool("level", false, "Reset the shell task level")
	resetCmd.Flags().Bool("all", false, "Clear everything (the default)")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
