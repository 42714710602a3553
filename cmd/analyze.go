package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskbench/taskbench/internal/analyze"
	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/output"
	"github.com/taskbench/taskbench/internal/rank"
	"github.com/taskbench/taskbench/internal/task"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score the working set and show ranked results",
	Long: `Sends the whole working set to the scoring service in one batch and
renders the analyzed tasks ranked by strategy. The batch is scored
together so the service can weigh inter-task dependencies.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("strategy", "s", "", "ranking strategy (smart, fastest, impact, deadline)")
	analyzeCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	analyzeCmd.Flags().String("save", "", "write the raw analyzed collection to FILE")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tasks, err := loadWorkingSet(cfg)
	if err != nil {
		return err
	}

	analyzed, err := newClient(cfg).Analyze(context.Background(), tasks)
	if err != nil {
		return analysisError(err)
	}

	strategyFlag, _ := cmd.Flags().GetString("strategy")
	strategy := cfg.DefaultStrategy()
	if strategyFlag != "" {
		strategy = rank.Parse(strategyFlag)
	}

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := saveAnalyzed(save, analyzed); err != nil {
			return err
		}
	}

	limit, _ := cmd.Flags().GetInt("limit")
	return renderRanked(analyzed, strategy, limit)
}

// renderRanked orders the analyzed collection and writes it in the
// detected output format.
func renderRanked(analyzed []task.Analyzed, strategy rank.Strategy, limit int) error {
	ranked := rank.Rank(analyzed, strategy)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, ranked)
	case output.FormatCompact:
		output.AnalyzedCompact(os.Stdout, ranked)
	default:
		output.Cards(os.Stdout, ranked)
	}
	return nil
}

func saveAnalyzed(path string, analyzed []task.Analyzed) error {
	data, err := task.EncodeAnalyzed(analyzed)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil { //nolint:mnd // private file mode
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// analysisError maps client failures onto the CLI error taxonomy.
func analysisError(err error) error {
	if errors.Is(err, analyze.ErrNoTasks) {
		return clierr.New(clierr.NoTasks, "no tasks to analyze: the working set is empty")
	}
	var svcErr *analyze.Error
	if errors.As(err, &svcErr) {
		details := map[string]any{}
		if svcErr.Status != 0 {
			details["status"] = svcErr.Status
		}
		return clierr.New(clierr.AnalysisFailed, svcErr.Message).WithDetails(details)
	}
	return err
}
