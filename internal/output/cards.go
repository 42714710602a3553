package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskbench/taskbench/internal/rank"
	"github.com/taskbench/taskbench/internal/task"
)

// Severity badge colors mirror the TUI results palette.
var severityStyles = map[rank.Severity]lipgloss.Style{
	rank.SeverityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	rank.SeverityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	rank.SeverityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
}

var (
	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	cardMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	explainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Italic(true)
)

func disableCardColor() {
	severityStyles = map[rank.Severity]lipgloss.Style{}
	cardTitleStyle = lipgloss.NewStyle()
	cardMetaStyle = lipgloss.NewStyle()
	explainStyle = lipgloss.NewStyle()
}

// Cards renders the ranked analysis result as display cards, one per
// task: title, metadata line, explanation, and a severity-colored
// score badge. Purely a projection; each call fully replaces prior
// output.
func Cards(w io.Writer, tasks []task.Analyzed) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No analysis results.")
		return
	}

	for i, t := range tasks {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", ScoreBadge(t.Score), cardTitleStyle.Render(t.Title))
		meta := fmt.Sprintf("due %s · effort %s · importance %d/10",
			t.DueDate.String(), formatHours(t.EstimatedHours), t.Importance)
		fmt.Fprintln(w, "      "+cardMetaStyle.Render(meta))
		if t.Explanation != "" {
			fmt.Fprintln(w, "      "+explainStyle.Render(t.Explanation))
		}
	}
}

// ScoreBadge renders the rounded score in its severity color, padded
// to a fixed width so cards line up.
func ScoreBadge(score float64) string {
	sev := rank.Classify(score)
	badge := "[" + strconv.Itoa(int(math.Round(score))) + "]"
	badge = padRight(badge, 5) //nolint:mnd // badge column width
	if st, ok := severityStyles[sev]; ok {
		return st.Render(badge)
	}
	return badge
}
