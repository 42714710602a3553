package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/taskbench/taskbench/internal/rank"
	"github.com/taskbench/taskbench/internal/task"
)

// TaskCompact renders the working set one line per task.
func TaskCompact(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks in working set.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// AnalyzedCompact renders ranked results one line per task.
func AnalyzedCompact(w io.Writer, tasks []task.Analyzed) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No analysis results.")
		return
	}

	for _, t := range tasks {
		line := fmt.Sprintf("%d %s [%s] %s",
			int(math.Round(t.Score)), string(rank.Classify(t.Score)), t.DueDate.String(), t.Title)
		if t.Explanation != "" {
			line += " — " + t.Explanation
		}
		fmt.Fprintln(w, line)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t task.Task) string {
	line := "#" + strconv.FormatInt(t.ID, 10) + " " + t.Title +
		" due:" + t.DueDate.String() +
		" effort:" + formatHours(t.EstimatedHours) +
		" imp:" + strconv.Itoa(t.Importance)

	if len(t.Dependencies) > 0 {
		parts := make([]string, len(t.Dependencies))
		for i, d := range t.Dependencies {
			parts[i] = strconv.FormatInt(d, 10)
		}
		line += " deps:" + strings.Join(parts, ",")
	}

	return line
}
