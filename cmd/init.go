package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/output"
	"github.com/taskbench/taskbench/internal/store"
	"github.com/taskbench/taskbench/internal/task"
)

var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Create a new workbench",
	Long: `Creates a workbench directory with a default config and an empty working
set. With no argument, a .taskbench directory is created in the current
directory. Use --example to seed it with starter tasks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("example", false, "seed the working set with example tasks")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := ""
	switch {
	case len(args) > 0:
		dir = args[0]
	case flagDir != "":
		dir = flagDir
	default:
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = filepath.Join(cwd, config.DefaultDir)
	}

	cfg, err := config.Init(dir)
	if err != nil {
		return err
	}

	seed := []task.Task{}
	if example, _ := cmd.Flags().GetBool("example"); example {
		seed = task.ExampleTasks()
	}
	if err := store.SaveFile(cfg.TasksPath(), seed); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"dir":   cfg.Dir(),
			"tasks": len(seed),
		})
	}

	output.Messagef(os.Stdout, "Created workbench at %s", cfg.Dir())
	if len(seed) > 0 {
		output.Messagef(os.Stdout, "  Seeded %d example tasks", len(seed))
	}
	output.Messagef(os.Stdout, "  Scoring service: %s", cfg.Server.URL)
	return nil
}
