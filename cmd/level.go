package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Show or change the shell task level",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Shell task level: %d of %d\n",
			d.engine.Level(cmd.Context()), d.engine.Tasks().MaxLevel())
		return nil
	},
}

var levelSetCmd = &cobra.Command{
	Use:   "set <level>",
	Short: "Set the shell task level",
	Long:  "Set the shell task level. Values outside the catalog's range are clamped.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid level %q: %w", args[0], err)
		}

		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		level, err := d.engine.SetLevel(cmd.Context(), n)
		if err != nil {
			return fmt.Errorf("set level: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Shell task level set to %d.\n", level)
		return nil
	},
}

func init() {
	levelCmd.AddCommand(levelSetCmd)
}
