package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NoamFav/bitvoyager/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List or validate the exercise and task catalogs",
}

var catalogExercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List exercises",
	Long: "List the configured exercise catalog. With --file, load and validate\n" +
		"that YAML, TOML or JSON file instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := loadExerciseCatalog(cmd)
		if err != nil {
			return err
		}

		filter, _ := cmd.Flags().GetString("difficulty")
		list := exercises.All()
		if filter != "" {
			d := catalog.Difficulty(strings.ToLower(filter))
			if !d.Valid() {
				return fmt.Errorf("unknown difficulty %q", filter)
			}
			list = exercises.ByDifficulty(d)
		}

		untracked := exercises.Untracked()
		out := cmd.OutOrStdout()
		for _, ex := range list {
			id := ex.ID
			if slices.Contains(untracked, ex.ID) {
				id += "*"
			}
			fmt.Fprintf(out, "%-5s %-6s  %-32s  %s\n",
				id, ex.Difficulty, truncate(ex.Title, 32), strings.Join(ex.Tags, ", "))
		}
		fmt.Fprintf(out, "%d of %d exercises\n", len(list), exercises.Len())
		if len(untracked) > 0 {
			fmt.Fprintf(out, "* %d with no tracked skill tag: attempts will not change skill levels\n", len(untracked))
		}
		return nil
	},
}

var catalogTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List shell tasks",
	Long: "List the configured shell task catalog. With --file, load and validate\n" +
		"that YAML, TOML or JSON file instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := loadTaskCatalog(cmd)
		if err != nil {
			return err
		}

		level, _ := cmd.Flags().GetInt("level")
		out := cmd.OutOrStdout()
		var shown int
		for _, t := range tasks.All() {
			if level > 0 && t.Level != level {
				continue
			}
			shown++
			fmt.Fprintf(out, "%-4s  L%-2d  %-32s  %s\n",
				t.ID, t.Level, truncate(t.Title, 32), strings.Join(t.Commands, " | "))
		}
		fmt.Fprintf(out, "%d of %d tasks, %d levels\n", shown, tasks.Len(), tasks.MaxLevel())
		return nil
	},
}

func loadExerciseCatalog(cmd *cobra.Command) (*catalog.Exercises, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return catalog.LoadExercises(path)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cfg.Practice.LoadExercises()
}

func loadTaskCatalog(cmd *cobra.Command) (*catalog.Tasks, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return catalog.LoadTasks(path)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cfg.Practice.LoadTasks()
}

func init() {
	catalogExercisesCmd.Flags().StringP("file", "f", "", "Catalog file to load instead of the configured one")
	catalogExercisesCmd.Flags().StringP("difficulty", "d", "", "Only show one difficulty (easy, medium, hard)")
	catalogTasksCmd.Flags().StringP("file", "f", "", "Catalog file to load instead of the configured one")
	catalogTasksCmd.Flags().IntP("level", "l", 0, "Only show one level")

	catalogCmd.AddCommand(catalogExercisesCmd)
	catalogCmd.AddCommand(catalogTasksCmd)
}
