// Package rank orders analyzed tasks by a user-selected strategy.
package rank

import (
	"sort"

	"github.com/taskbench/taskbench/internal/task"
)

// Strategy names a total ordering over analyzed tasks.
type Strategy string

const (
	// Fastest sorts ascending by estimated hours.
	Fastest Strategy = "fastest"
	// Impact sorts descending by importance.
	Impact Strategy = "impact"
	// Deadline sorts ascending by due date.
	Deadline Strategy = "deadline"
	// Smart sorts descending by service score. It is the default and
	// the fallback for unrecognized strategy names.
	Smart Strategy = "smart"
)

// Strategies lists the valid strategy names in display order.
func Strategies() []Strategy {
	return []Strategy{Smart, Fastest, Impact, Deadline}
}

// Parse maps a strategy name to a Strategy. Unrecognized names fall
// back to Smart rather than erroring, matching the selector contract.
func Parse(s string) Strategy {
	switch Strategy(s) {
	case Fastest, Impact, Deadline, Smart:
		return Strategy(s)
	default:
		return Smart
	}
}

// Rank returns the tasks ordered by the given strategy. The input is
// never mutated: ranking operates on a copy so it can be re-invoked
// with a different strategy without re-fetching an analysis. Ties keep
// their input order (stable sort). An empty input yields an empty,
// non-nil result.
func Rank(tasks []task.Analyzed, strategy Strategy) []task.Analyzed {
	sorted := task.CloneAllAnalyzed(tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compare(sorted[i], sorted[j], strategy)
	})
	return sorted
}

func compare(a, b task.Analyzed, strategy Strategy) bool {
	switch strategy {
	case Fastest:
		return a.EstimatedHours < b.EstimatedHours
	case Impact:
		return a.Importance > b.Importance
	case Deadline:
		return a.DueDate.Before(b.DueDate.Time)
	default:
		return a.Score > b.Score
	}
}
