package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/output"
	"github.com/taskbench/taskbench/internal/store"
	"github.com/taskbench/taskbench/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add [TITLE]",
	Aliases: []string{"create"},
	Short:   "Add a task to the working set",
	Long: `Adds one task to the end of the working set.

Title can be provided as a positional argument or via --title flag.
Without --id, a timestamp-derived ID is generated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	addCmd.Flags().String("id", "", "task ID (default: timestamp-derived)")
	addCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().String("hours", "", "estimated hours")
	addCmd.Flags().String("importance", "", "importance (0-10)")
	addCmd.Flags().String("depends-on", "", "dependency task IDs (comma-separated)")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "deps":
			name = "depends-on"
		case "estimate":
			name = "hours"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	title, err := resolveAddTitle(cmd, args)
	if err != nil {
		return err
	}

	fields := task.Fields{Title: title}
	fields.ID, _ = cmd.Flags().GetString("id")
	fields.DueDate, _ = cmd.Flags().GetString("due")
	fields.EstimatedHours, _ = cmd.Flags().GetString("hours")
	fields.Importance, _ = cmd.Flags().GetString("importance")
	fields.Dependencies, _ = cmd.Flags().GetString("depends-on")

	t, err := task.Ingest(fields, nil)
	if err != nil {
		return err
	}

	err = mutateWorkingSet(cfg, func(s *store.Session) error {
		s.Append(t)
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug().Int64("id", t.ID).Str("title", t.Title).Msg("task added")

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Added task #%d: %s", t.ID, t.Title)
	output.Messagef(os.Stdout, "  Due: %s | Effort: %sh | Importance: %d/10",
		t.DueDate.String(), strconv.FormatFloat(t.EstimatedHours, 'f', -1, 64), t.Importance)
	return nil
}

// resolveAddTitle returns the task title from either the positional arg or --title flag.
func resolveAddTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := flagTitle != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagTitle, nil
	default:
		return "", clierr.New(clierr.ValidationError,
			"title is required: provide it as an argument or with --title")
	}
}
