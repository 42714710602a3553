package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/filelock"
	"github.com/taskbench/taskbench/internal/store"
	"github.com/taskbench/taskbench/internal/task"
)

// Form field indices, in display order.
const (
	fieldTitle = iota
	fieldDue
	fieldHours
	fieldImportance
	fieldID
	fieldDeps
	fieldCount
)

var formLabels = [fieldCount]string{
	fieldTitle:      "Title",
	fieldDue:        "Due date (YYYY-MM-DD)",
	fieldHours:      "Estimated hours",
	fieldImportance: "Importance (0-10)",
	fieldID:         "ID (blank = auto)",
	fieldDeps:       "Dependencies (comma-separated IDs)",
}

// addForm is the single-entry ingest surface.
type addForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newAddForm() addForm {
	f := addForm{}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 120
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].Placeholder = "Fix login bug"
	f.inputs[fieldDue].Placeholder = "2025-11-30"
	f.inputs[fieldHours].Placeholder = "3"
	f.inputs[fieldImportance].Placeholder = "8"
	f.inputs[fieldDeps].Placeholder = "1, 2"
	return f
}

func (f *addForm) focusFirst() tea.Cmd {
	f.focus = 0
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[0].Focus()
}

func (f *addForm) moveFocus(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

func (f *addForm) fields() task.Fields {
	return task.Fields{
		ID:             f.inputs[fieldID].Value(),
		Title:          f.inputs[fieldTitle].Value(),
		DueDate:        f.inputs[fieldDue].Value(),
		EstimatedHours: f.inputs[fieldHours].Value(),
		Importance:     f.inputs[fieldImportance].Value(),
		Dependencies:   f.inputs[fieldDeps].Value(),
	}
}

func (f *addForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
}

func (w *Workbench) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		w.activeTab = tabTasks
		return w, nil
	case "tab", "down":
		return w, w.form.moveFocus(1)
	case "shift+tab", "up":
		return w, w.form.moveFocus(-1)
	case "enter":
		if w.form.focus == fieldCount-1 {
			return w, w.submitForm()
		}
		return w, w.form.moveFocus(1)
	case "ctrl+s":
		return w, w.submitForm()
	}

	var cmd tea.Cmd
	w.form.inputs[w.form.focus], cmd = w.form.inputs[w.form.focus].Update(msg)
	return w, cmd
}

// submitForm runs the ingestor over the form fields. A validation
// failure rejects the entry and surfaces the offending field; the
// working set is only touched on success.
func (w *Workbench) submitForm() tea.Cmd {
	t, err := task.Ingest(w.form.fields(), w.now)
	if err != nil {
		w.errText = err.Error()
		return nil
	}

	w.session.Append(t)
	w.saveWorkingSet()
	w.form.reset()
	w.errText = ""
	w.activeTab = tabTasks
	w.cursor = w.session.Len() - 1
	w.ensureVisible(&w.scrollOff, w.cursor)
	return nil
}

func (f *addForm) view(width int, focused bool) string {
	var b strings.Builder
	for i := range f.inputs {
		label := formLabels[i]
		if focused && i == f.focus {
			b.WriteString(formFocusStyle.Render(label))
		} else {
			b.WriteString(formLabelStyle.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter/tab next field · ctrl+s add task · esc back"))
	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}

// saveLocked writes the working set under the workbench lock so
// concurrent CLI invocations cannot interleave read-modify-write.
func saveLocked(cfg *config.Config, tasks []task.Task) error {
	unlock, err := filelock.Lock(cfg.LockPath())
	if err != nil {
		return err
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	return store.SaveFile(cfg.TasksPath(), tasks)
}
