package cmd

import (
	"github.com/spf13/cobra"

	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/rank"
	"github.com/taskbench/taskbench/internal/task"
)

var rankCmd = &cobra.Command{
	Use:   "rank FILE",
	Short: "Re-rank a saved analysis without re-analyzing",
	Long: `Reads an analyzed collection saved with 'analyze --save' (or - for
stdin) and re-derives the ranked view under a different strategy.
No network call is made.`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringP("strategy", "s", string(rank.Smart), "ranking strategy (smart, fastest, impact, deadline)")
	rankCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0])
	if err != nil {
		return err
	}

	analyzed, err := task.DecodeAnalyzed(data)
	if err != nil {
		return clierr.Newf(clierr.ParseError, "invalid analyzed JSON: %v", err)
	}

	strategyFlag, _ := cmd.Flags().GetString("strategy")
	limit, _ := cmd.Flags().GetInt("limit")
	return renderRanked(analyzed, rank.Parse(strategyFlag), limit)
}
