package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/output"
	"github.com/taskbench/taskbench/internal/store"
	"github.com/taskbench/taskbench/internal/task"
)

var loadCmd = &cobra.Command{
	Use:     "load FILE",
	Aliases: []string{"import"},
	Short:   "Replace the working set from a JSON file",
	Long: `Parses a JSON array of tasks and replaces the entire working set with it.
Use - to read from stdin. The replace is all-or-nothing: on a parse
error the current working set is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	tasks, err := task.Decode(data)
	if err != nil {
		return clierr.Newf(clierr.ParseError, "invalid task JSON: %v", err)
	}

	err = mutateWorkingSet(cfg, func(s *store.Session) error {
		s.ReplaceAll(tasks)
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug().Int("tasks", len(tasks)).Msg("working set replaced")

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"loaded": len(tasks)})
	}
	output.Messagef(os.Stdout, "Loaded %d tasks", len(tasks))
	return nil
}

func readInput(arg string) ([]byte, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(arg) //nolint:gosec // user-supplied input path
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", arg, err)
	}
	return data, nil
}
