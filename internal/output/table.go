package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskbench/taskbench/internal/task"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	depStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	dueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	lateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// DisableColor strips all styling from rendered output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	depStyle = lipgloss.NewStyle()
	dueStyle = lipgloss.NewStyle()
	lateStyle = lipgloss.NewStyle()
	disableCardColor()
}

// TaskTable renders the working set as a formatted table.
func TaskTable(w io.Writer, tasks []task.Task) {
	TaskTableAt(w, tasks, time.Now())
}

// TaskTableAt is TaskTable with an explicit clock for overdue marking.
func TaskTableAt(w io.Writer, tasks []task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks in working set.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, titleW, dueW, hoursW, impW := 4, 7, 12, 7, 5
	for _, t := range tasks {
		idW = max(idW, len(strconv.FormatInt(t.ID, 10))+pad)
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", titleW, "TITLE", dueW, "DUE", hoursW, "HOURS", impW, "IMP", "DEPS")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		title := t.Title
		const maxTitle = 48
		if len(title) > maxTitle {
			title = title[:maxTitle-3] + "..."
		}

		due := dueStyle.Render(t.DueDate.String())
		if t.DueDate.DaysUntil(now) < 0 {
			due = lateStyle.Render(t.DueDate.String())
		}

		deps := formatDeps(t.Dependencies)
		if deps == "" {
			deps = dimStyle.Render("--")
		} else {
			deps = depStyle.Render(deps)
		}

		row := fmt.Sprintf("%-*d %s %s %s %s %s",
			idW, t.ID,
			padRight(title, titleW),
			padRight(due, dueW),
			padRight(formatHours(t.EstimatedHours), hoursW),
			padRight(strconv.Itoa(t.Importance)+"/10", impW),
			deps)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t task.Task) {
	titleLine := fmt.Sprintf("Task #%d: %s", t.ID, t.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len(titleLine)))

	printField(w, "Due", t.DueDate.String())
	printField(w, "Effort", formatHours(t.EstimatedHours))
	printField(w, "Importance", strconv.Itoa(t.Importance)+"/10")
	if len(t.Dependencies) > 0 {
		printField(w, "Depends on", depStyle.Render(formatDeps(t.Dependencies)))
	} else {
		printField(w, "Depends on", dimStyle.Render("--"))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func formatDeps(deps []int64) string {
	if len(deps) == 0 {
		return ""
	}
	parts := make([]string, len(deps))
	for i, d := range deps {
		parts[i] = "#" + strconv.FormatInt(d, 10)
	}
	return strings.Join(parts, ",")
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
