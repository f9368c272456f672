package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NoamFav/bitvoyager/internal/catalog"
	"github.com/NoamFav/bitvoyager/internal/taskgen"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Work through shell tasks from the command line",
}

var tasksNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the current shell task and the queue behind it",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		s := d.engine.ShellSession(cmd.Context())
		out := cmd.OutOrStdout()
		queue := s.Queue()
		if len(queue) == 0 {
			fmt.Fprintf(out, "No tasks left at level %d.\n", s.Level())
			return nil
		}

		printTask(out, queue[0])
		if len(queue) > 1 {
			fmt.Fprintf(out, "\nUp next (level %d):\n", s.Level())
			for _, t := range queue[1:] {
				fmt.Fprintf(out, "  %-4s %s\n", t.ID, t.Title)
			}
		}
		return nil
	},
}

var tasksSkipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Skip the current shell task",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		s := d.engine.ShellSession(cmd.Context())
		ev := s.Skip(cmd.Context())
		out := cmd.OutOrStdout()
		if ev.Completed == nil {
			fmt.Fprintln(out, "No task to skip.")
			return nil
		}
		fmt.Fprintf(out, "Skipped %s %q.\n", ev.Completed.TaskID, ev.Completed.Title)
		if next, ok := s.Current(); ok {
			fmt.Fprintf(out, "Next: %s %s\n", next.ID, next.Title)
		}
		return nil
	},
}

var tasksObserveCmd = &cobra.Command{
	Use:   "observe [command line...]",
	Short: "Feed command lines to the shell task session",
	Long: "Feed command lines to the shell task session. The arguments form a single\n" +
		"line; with no arguments every line of standard input is read in turn.\n" +
		"Use -- before a line that starts with a flag.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		s := d.engine.ShellSession(ctx)
		out := cmd.OutOrStdout()

		observe := func(line string) {
			reportEvent(out, line, d.engine.Enter(ctx, s, line))
		}
		if len(args) > 0 {
			observe(strings.Join(args, " "))
			return nil
		}
		return eachLine(cmd.InOrStdin(), observe)
	},
}

var tasksHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed and skipped shell tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := buildDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		history, err := d.engine.TaskHistory(cmd.Context())
		if err != nil {
			return fmt.Errorf("load task history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(history) == 0 {
			fmt.Fprintln(out, "No shell tasks finished yet.")
			return nil
		}
		for _, c := range history {
			status := "done"
			if c.Skipped {
				status = "skipped"
			}
			fmt.Fprintf(out, "%-16s  %-4s  %-8s  %s\n",
				c.CompletedAt.Local().Format("2006-01-02 15:04"), c.TaskID, status, c.Title)
		}
		return nil
	},
}

func printTask(out io.Writer, t catalog.ShellTask) {
	fmt.Fprintf(out, "%s  %s  (level %d)\n", t.ID, t.Title, t.Level)
	if t.Description != "" {
		fmt.Fprintf(out, "  %s\n", t.Description)
	}
	fmt.Fprintf(out, "  Commands to run: %d\n", len(t.Commands))
}

func reportEvent(out io.Writer, line string, ev taskgen.Event) {
	if len(ev.Matched) == 0 {
		fmt.Fprintf(out, "$ %s\n", line)
		return
	}
	fmt.Fprintf(out, "$ %s  ✓ %s\n", line, strings.Join(ev.Matched, ", "))
	if ev.Completed != nil {
		fmt.Fprintf(out, "Completed %s %q.\n", ev.Completed.TaskID, ev.Completed.Title)
	}
	if ev.Regenerated {
		fmt.Fprintln(out, "Queue rebuilt.")
	}
}

func eachLine(r io.Reader, fn func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			fn(line)
		}
	}
	return sc.Err()
}

func init() {
	tasksCmd.AddCommand(tasksNextCmd)
	tasksCmd.AddCommand(tasksSkipCmd)
	tasksCmd.AddCommand(tasksObserveCmd)
	tasksCmd.AddCommand(tasksHistoryCmd)
}
