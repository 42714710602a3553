package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long:  `Displays one task from the working set.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", args[0]).
			WithDetails(map[string]any{"input": args[0]})
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tasks, err := loadWorkingSet(cfg)
	if err != nil {
		return err
	}

	for _, t := range tasks {
		if t.ID != id {
			continue
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, t)
		}
		output.TaskDetail(os.Stdout, t)
		return nil
	}

	return clierr.Newf(clierr.TaskNotFound, "task #%d not found in working set", id).
		WithDetails(map[string]any{"id": id})
}
