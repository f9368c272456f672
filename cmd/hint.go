package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/NoamFav/bitvoyager/internal/hints"
)

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Ask for a hint on a shell task or an exercise",
}

var hintTaskCmd = &cobra.Command{
	Use:   "task",
	Short: "Hint for the current shell task",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		h, err := d.engine.TaskHint(ctx, d.engine.ShellSession(ctx))
		if err != nil {
			return fmt.Errorf("task hint: %w", err)
		}
		printHint(cmd.OutOrStdout(), h)
		return nil
	},
}

var hintExerciseCmd = &cobra.Command{
	Use:   "exercise <id>",
	Short: "Hint for an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ex, ok := d.engine.Exercises().Get(args[0])
		if !ok {
			return fmt.Errorf("exercise %q not found", args[0])
		}
		h, err := d.engine.ExerciseHint(cmd.Context(), ex)
		if err != nil {
			return fmt.Errorf("exercise hint: %w", err)
		}
		printHint(cmd.OutOrStdout(), h)
		return nil
	},
}

func printHint(out io.Writer, h hints.Hint) {
	fmt.Fprintln(out, h.Text)
	if h.Command != "" {
		fmt.Fprintf(out, "  try: %s\n", h.Command)
	}
	fmt.Fprintf(out, "(%s)\n", h.Source)
}

func init() {
	hintCmd.AddCommand(hintTaskCmd)
	hintCmd.AddCommand(hintExerciseCmd)
}
