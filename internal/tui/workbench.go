// Package tui implements the interactive workbench terminal UI.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskbench/taskbench/internal/analyze"
	"github.com/taskbench/taskbench/internal/config"
	"github.com/taskbench/taskbench/internal/rank"
	"github.com/taskbench/taskbench/internal/store"
	"github.com/taskbench/taskbench/internal/task"
)

// tab represents the active workbench surface.
type tab int

const (
	tabTasks tab = iota
	tabAdd
	tabResults
)

const keyEsc = "esc"

// Workbench is the top-level bubbletea model. It owns the session
// state: the working set, the latest analysis, and the view derived
// from both.
type Workbench struct {
	cfg      *config.Config
	session  *store.Session
	client   *analyze.Client
	strategy rank.Strategy

	// ranked is the current presentation of the analyzed collection.
	// Re-derived whenever the strategy changes or a new analysis
	// lands; never mutated in place.
	ranked []task.Analyzed

	activeTab  tab
	cursor     int
	scrollOff  int
	resultsOff int
	width      int
	height     int

	loading    bool
	pendingGen uint64
	spin       spinner.Model

	form addForm

	errText  string
	showHelp bool
	helpView string

	confirmRemove bool
	removeID      int64
	removeTitle   string

	now func() time.Time
}

// New creates a Workbench model bound to a config and scoring client.
func New(cfg *config.Config, client *analyze.Client) *Workbench {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))

	w := &Workbench{
		cfg:      cfg,
		session:  store.New(),
		client:   client,
		strategy: cfg.DefaultStrategy(),
		spin:     sp,
		form:     newAddForm(),
		now:      time.Now,
	}
	w.loadWorkingSet()
	return w
}

// SetNow overrides the clock used for ID synthesis and overdue display (for testing).
func (w *Workbench) SetNow(fn func() time.Time) {
	w.now = fn
}

// Session exposes the underlying session (for testing).
func (w *Workbench) Session() *store.Session {
	return w.session
}

// WatchPaths returns the paths that should be watched for file changes.
func (w *Workbench) WatchPaths() []string {
	return []string{w.cfg.Dir()}
}

// Init implements tea.Model.
func (w *Workbench) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w *Workbench) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return w.handleKey(msg)
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		w.helpView = "" // re-render at new width
		return w, nil
	case ReloadMsg:
		w.loadWorkingSet()
		return w, nil
	case analyzedMsg:
		return w.handleAnalyzed(msg)
	case spinner.TickMsg:
		if !w.loading {
			return w, nil
		}
		var cmd tea.Cmd
		w.spin, cmd = w.spin.Update(msg)
		return w, cmd
	}
	return w, nil
}

func (w *Workbench) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return w, tea.Quit
	}

	if w.showHelp {
		w.showHelp = false
		return w, nil
	}

	if w.confirmRemove {
		return w.handleRemoveKey(msg)
	}

	if w.activeTab == tabAdd {
		return w.handleFormKey(msg)
	}

	switch msg.String() {
	case "q", keyEsc:
		return w, tea.Quit
	case "?":
		w.showHelp = true
	case "1":
		w.activeTab = tabTasks
	case "2":
		w.activeTab = tabAdd
		return w, w.form.focusFirst()
	case "3":
		w.activeTab = tabResults
	case "tab":
		return w.nextTab()
	case "a":
		return w, w.startAnalysis()
	case "s":
		if w.activeTab == tabResults {
			w.cycleStrategy()
		}
	case "j", "down":
		w.moveCursor(1)
	case "k", "up":
		w.moveCursor(-1)
	case "d":
		if w.activeTab == tabTasks {
			w.handleRemoveStart()
		}
	case "r":
		w.loadWorkingSet()
	}
	return w, nil
}

func (w *Workbench) nextTab() (tea.Model, tea.Cmd) {
	w.activeTab = (w.activeTab + 1) % 3 //nolint:mnd // three tabs
	if w.activeTab == tabAdd {
		return w, w.form.focusFirst()
	}
	return w, nil
}

func (w *Workbench) moveCursor(delta int) {
	switch w.activeTab {
	case tabTasks:
		n := w.session.Len()
		w.cursor = clamp(w.cursor+delta, 0, n-1)
		w.ensureVisible(&w.scrollOff, w.cursor)
	case tabResults:
		w.resultsOff = clamp(w.resultsOff+delta, 0, max(0, len(w.ranked)-1))
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// --- Analysis ---

// startAnalysis snapshots the working set synchronously, reserves the
// next generation, and returns the command performing the network
// call. Edits made while the request is in flight affect only the
// next call.
func (w *Workbench) startAnalysis() tea.Cmd {
	if w.session.Len() == 0 {
		w.errText = "No tasks to analyze."
		return nil
	}

	w.errText = ""
	w.loading = true

	gen := w.session.BeginAnalysis()
	w.pendingGen = gen
	snapshot := w.session.Snapshot()
	client := w.client

	call := func() tea.Msg {
		res, err := client.Analyze(context.Background(), snapshot)
		return analyzedMsg{gen: gen, tasks: res, err: err}
	}
	return tea.Batch(w.spin.Tick, call)
}

func (w *Workbench) handleAnalyzed(msg analyzedMsg) (tea.Model, tea.Cmd) {
	if msg.gen == w.pendingGen {
		w.loading = false
	}

	if msg.err != nil {
		// Errors from superseded requests are not worth a toast.
		if msg.gen == w.pendingGen {
			w.errText = msg.err.Error()
		}
		return w, nil
	}

	// Stale responses are discarded; the previous result stays visible.
	if !w.session.CompleteAnalysis(msg.gen, msg.tasks) {
		return w, nil
	}

	w.rerank()
	w.resultsOff = 0
	w.activeTab = tabResults
	return w, nil
}

func (w *Workbench) cycleStrategy() {
	all := rank.Strategies()
	for i, s := range all {
		if s == w.strategy {
			w.strategy = all[(i+1)%len(all)]
			break
		}
	}
	w.rerank()
	w.resultsOff = 0
}

// rerank re-derives the ordered view from the session's analyzed
// collection. Pure re-sort; no network involved.
func (w *Workbench) rerank() {
	w.ranked = rank.Rank(w.session.Analyzed(), w.strategy)
}

// --- Working-set mutation ---

func (w *Workbench) loadWorkingSet() {
	tasks, err := store.LoadFile(w.cfg.TasksPath())
	if err != nil {
		// Decode failure leaves the session untouched.
		w.errText = err.Error()
		return
	}
	w.errText = ""
	w.session.ReplaceAll(tasks)
	w.cursor = clamp(w.cursor, 0, len(tasks)-1)
}

func (w *Workbench) saveWorkingSet() {
	if err := saveLocked(w.cfg, w.session.Snapshot()); err != nil {
		w.errText = err.Error()
	}
}

func (w *Workbench) handleRemoveStart() {
	tasks := w.session.Snapshot()
	if w.cursor < 0 || w.cursor >= len(tasks) {
		return
	}
	w.removeID = tasks[w.cursor].ID
	w.removeTitle = tasks[w.cursor].Title
	w.confirmRemove = true
}

func (w *Workbench) handleRemoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if w.session.Remove(w.removeID) {
			w.saveWorkingSet()
			w.cursor = clamp(w.cursor, 0, w.session.Len()-1)
		}
		w.confirmRemove = false
	case "n", "N", keyEsc, "q":
		w.confirmRemove = false
	}
	return w, nil
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to refresh the working set.
type ReloadMsg struct{}

// analyzedMsg carries one analysis outcome, tagged with the
// generation it belongs to.
type analyzedMsg struct {
	gen   uint64
	tasks []task.Analyzed
	err   error
}
