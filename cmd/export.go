package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskbench/taskbench/internal/output"
	"github.com/taskbench/taskbench/internal/task"
)

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Write the working set as pretty-printed JSON",
	Long: `Encodes the working set in its canonical bulk-edit form. With no
argument the JSON is written to stdout, ready to edit and load back.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tasks, err := loadWorkingSet(cfg)
	if err != nil {
		return err
	}

	data, err := task.Encode(tasks)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(args[0], data, 0o600); err != nil { //nolint:mnd // private file mode
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	output.Messagef(os.Stdout, "Exported %d tasks to %s", len(tasks), args[0])
	return nil
}
