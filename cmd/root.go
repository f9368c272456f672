package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bitvoyager",
	Short: "Terminal practice for shell commands and Python",
	Long: "BitVoyager is a terminal app for practising shell commands and short Python\n" +
		"exercises. It adapts what it offers to the learner's skills and history.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database file or postgres:// DSN (overrides BITVOYAGER_DB)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides BITVOYAGER_CONFIG)")
	rootCmd.PersistentFlags().String("learner", "", "Learner id (overrides BITVOYAGER_LEARNER)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(attemptCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
