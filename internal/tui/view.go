package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskbench/taskbench/internal/rank"
	"github.com/taskbench/taskbench/internal/task"
)

// chrome is the tab bar, blank line, and status bar around the content area.
const chrome = 4

// --- Styles ---

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	explainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Italic(true)

	formLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	formFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))

	severityStyles = map[rank.Severity]lipgloss.Style{
		rank.SeverityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		rank.SeverityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		rank.SeverityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// View implements tea.Model.
func (w *Workbench) View() string {
	if w.width == 0 {
		return "Loading..."
	}

	if w.showHelp {
		return w.viewHelp()
	}
	if w.confirmRemove {
		return w.viewRemoveConfirm()
	}

	var content string
	switch w.activeTab {
	case tabAdd:
		content = w.form.view(w.width, true)
	case tabResults:
		content = w.viewResults()
	default:
		content = w.viewTasks()
	}

	content = w.fitHeight(content)

	return lipgloss.JoinVertical(lipgloss.Left,
		w.viewTabBar(), "", content, w.viewStatusBar())
}

func (w *Workbench) viewTabBar() string {
	labels := []string{"1 Tasks", "2 Add", "3 Results"}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if tab(i) == w.activeTab {
			parts[i] = activeTabStyle.Render(l)
		} else {
			parts[i] = tabStyle.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (w *Workbench) viewTasks() string {
	tasks := w.session.Snapshot()
	if len(tasks) == 0 {
		return dimStyle.Render("Working set is empty. Press 2 to add a task,\n" +
			"or run 'taskbench init --example' for starter data.")
	}

	visible := w.pageSize()
	end := min(len(tasks), w.scrollOff+visible)

	var b strings.Builder
	if w.scrollOff > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("↑ %d more", w.scrollOff)) + "\n")
	}
	for i := w.scrollOff; i < end; i++ {
		b.WriteString(w.renderTaskRow(tasks[i], i == w.cursor))
		b.WriteString("\n")
	}
	if end < len(tasks) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("↓ %d more", len(tasks)-end)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *Workbench) renderTaskRow(t task.Task, selected bool) string {
	cursor := "  "
	title := t.Title
	if selected {
		cursor = "» "
		title = lipgloss.NewStyle().Bold(true).Render(title)
	}

	meta := fmt.Sprintf("due %s · %sh · imp %d/10", t.DueDate.String(),
		strconv.FormatFloat(t.EstimatedHours, 'f', -1, 64), t.Importance)
	if len(t.Dependencies) > 0 {
		meta += fmt.Sprintf(" · deps %s", joinIDs(t.Dependencies))
	}
	if t.DueDate.DaysUntil(w.now()) < 0 {
		meta += " · " + errorStyle.Render("overdue")
	}

	line := fmt.Sprintf("%s#%d %s", cursor, t.ID, title)
	return line + "\n" + "    " + metaStyle.Render(meta)
}

func (w *Workbench) viewResults() string {
	if len(w.ranked) == 0 {
		return dimStyle.Render("No analysis yet. Press 'a' to score the working set.")
	}

	var b strings.Builder
	for i := w.resultsOff; i < len(w.ranked); i++ {
		b.WriteString(w.renderCard(w.ranked[i]))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (w *Workbench) renderCard(t task.Analyzed) string {
	sev := rank.Classify(t.Score)
	badge := "[" + strconv.Itoa(int(math.Round(t.Score))) + " " + string(sev) + "]"
	if st, ok := severityStyles[sev]; ok {
		badge = st.Render(badge)
	}

	header := lipgloss.NewStyle().Bold(true).Render(t.Title) + " " + badge
	meta := metaStyle.Render(fmt.Sprintf("due %s · effort %sh · importance %d/10",
		t.DueDate.String(), strconv.FormatFloat(t.EstimatedHours, 'f', -1, 64), t.Importance))

	body := header + "\n" + meta
	if t.Explanation != "" {
		body += "\n" + explainStyle.Render(t.Explanation)
	}

	style := cardStyle
	if sev == rank.SeverityHigh {
		style = activeCardStyle
	}
	return style.Width(min(w.width-2, 76)).Render(body) //nolint:mnd // max card width
}

func (w *Workbench) viewStatusBar() string {
	if w.errText != "" {
		return errorStyle.Render(w.errText)
	}
	if w.loading {
		return w.spin.View() + statusBarStyle.Render(" analyzing...")
	}

	parts := []string{
		fmt.Sprintf("%d tasks", w.session.Len()),
		"strategy: " + string(w.strategy),
		"a analyze · s strategy · d remove · ? help · q quit",
	}
	return statusBarStyle.Render(strings.Join(parts, "  |  "))
}

func (w *Workbench) viewRemoveConfirm() string {
	prompt := fmt.Sprintf("Remove task #%d %q from the working set?\n\ny yes · n no",
		w.removeID, w.removeTitle)
	return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center,
		dialogStyle.Render(prompt))
}

// pageSize returns how many task rows fit in the content area.
func (w *Workbench) pageSize() int {
	const rowHeight = 2
	n := (w.height - chrome) / rowHeight
	if n < 1 {
		return 1
	}
	return n
}

// ensureVisible adjusts a scroll offset so the cursor stays within
// the visible window.
func (w *Workbench) ensureVisible(off *int, cursor int) {
	visible := w.pageSize()
	switch {
	case cursor >= *off+visible:
		*off = cursor - visible + 1
	case cursor < *off:
		*off = cursor
	}
}

// fitHeight clamps or pads the content to the area between tab bar
// and status bar so the status bar stays anchored.
func (w *Workbench) fitHeight(content string) string {
	target := w.height - chrome
	if target <= 0 {
		return content
	}
	actual := strings.Count(content, "\n") + 1
	if actual > target {
		lines := strings.SplitN(content, "\n", target+1)
		return strings.Join(lines[:target], "\n")
	}
	if actual < target {
		return content + strings.Repeat("\n", target-actual)
	}
	return content
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "#" + strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
