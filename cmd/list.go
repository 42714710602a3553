package cmd

import (
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/output"
	"github.com/taskbench/taskbench/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the working set",
	Long:    `Lists the raw working set in insertion order, before any analysis.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().String("sort", "", "sort field (id, due, hours, importance)")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tasks, err := loadWorkingSet(cfg)
	if err != nil {
		return err
	}

	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")

	if sortBy != "" {
		if err := sortTasks(tasks, sortBy, reverse); err != nil {
			return err
		}
	}
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	switch outputFormat() {
	case output.FormatJSON:
		if tasks == nil {
			tasks = []task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.TaskTable(os.Stdout, tasks)
	}
	return nil
}

// sortTasks orders the working set for display only; the stored order
// is always insertion order.
func sortTasks(tasks []task.Task, field string, reverse bool) error {
	var less func(a, b task.Task) bool
	switch field {
	case "id":
		less = func(a, b task.Task) bool { return a.ID < b.ID }
	case "due":
		less = func(a, b task.Task) bool { return a.DueDate.Before(b.DueDate.Time) }
	case "hours":
		less = func(a, b task.Task) bool { return a.EstimatedHours < b.EstimatedHours }
	case "importance":
		less = func(a, b task.Task) bool { return a.Importance < b.Importance }
	default:
		return clierr.Newf(clierr.InvalidInput,
			"invalid --sort field %q; valid: id, due, hours, importance", field)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if reverse {
			return !less(tasks[i], tasks[j])
		}
		return less(tasks[i], tasks[j])
	})
	return nil
}
