package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/output"
	"github.com/taskbench/taskbench/internal/store"
)

var removeCmd = &cobra.Command{
	Use:     "remove ID[,ID,...]",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove tasks from the working set",
	Long: `Removes tasks by ID. Prompts for confirmation in interactive mode.
Multiple IDs can be provided as a comma-separated list (requires --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")

	// Batch mode requires --yes.
	if len(ids) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq, "batch remove requires --yes")
	}

	if len(ids) == 1 && !yes && !confirmRemove(ids[0]) {
		output.Messagef(os.Stdout, "Aborted.")
		return nil
	}

	results := make([]output.BatchResult, 0, len(ids))
	anyFailed := false

	err = mutateWorkingSet(cfg, func(s *store.Session) error {
		for _, id := range ids {
			if s.Remove(id) {
				results = append(results, output.BatchResult{ID: id, OK: true})
			} else {
				anyFailed = true
				results = append(results, output.BatchResult{
					ID: id, OK: false,
					Error: fmt.Sprintf("task #%d not found", id),
					Code:  clierr.TaskNotFound,
				})
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var removed int
		for _, r := range results {
			if r.OK {
				removed++
			} else {
				fmt.Fprintf(os.Stderr, "Error: %s\n", r.Error)
			}
		}
		output.Messagef(os.Stdout, "Removed %d/%d tasks", removed, len(ids))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}

// confirmRemove asks for confirmation on a terminal; non-interactive
// stdin counts as a yes so piped usage doesn't hang.
func confirmRemove(id int64) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}
	fmt.Fprintf(os.Stderr, "Remove task #%d from the working set? [y/N] ", id)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// parseIDs splits a comma-separated ID string into deduplicated IDs.
func parseIDs(arg string) ([]int64, error) {
	parts := strings.Split(arg, ",")
	seen := make(map[int64]bool, len(parts))
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", p).
				WithDetails(map[string]any{"input": p})
		}
		if !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	if len(ids) == 0 {
		return nil, clierr.New(clierr.InvalidTaskID, "no valid task IDs provided")
	}
	return ids, nil
}
