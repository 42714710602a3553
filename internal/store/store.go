// Package store holds the in-memory session state of the workbench:
// the raw working set and the most recent analysis result.
package store

import (
	"sync"

	"github.com/taskbench/taskbench/internal/task"
)

// Session owns the two task collections of one workbench session.
// The working set is mutated by the ingestor and the bulk codec; the
// analyzed collection is replaced wholesale by a successful analysis
// and is never merged incrementally. All methods are safe for
// concurrent use; every value crossing the boundary is deep-copied so
// callers can never alias internal state.
type Session struct {
	mu       sync.RWMutex
	tasks    []task.Task
	analyzed []task.Analyzed
	gen      uint64
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// NewWith creates a session pre-populated with the given working set.
func NewWith(tasks []task.Task) *Session {
	return &Session{tasks: task.CloneAll(tasks)}
}

// Append adds one task to the end of the working set.
func (s *Session) Append(t task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t.Clone())
}

// ReplaceAll atomically swaps the entire working set. Partial
// replacement is never observable.
func (s *Session) ReplaceAll(tasks []task.Task) {
	clone := task.CloneAll(tasks)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = clone
}

// Remove deletes the first task with the given ID from the working
// set and reports whether one was found.
func (s *Session) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the working set, in insertion order.
func (s *Session) Snapshot() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return task.CloneAll(s.tasks)
}

// Len returns the number of tasks in the working set.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Analyzed returns a copy of the most recent analysis result, which
// may be stale relative to the working set.
func (s *Session) Analyzed() []task.Analyzed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return task.CloneAllAnalyzed(s.analyzed)
}

// BeginAnalysis reserves the next analysis generation. The returned
// value must be handed back to CompleteAnalysis; responses belonging
// to superseded generations are discarded so an earlier request that
// resolves late cannot overwrite a newer result.
func (s *Session) BeginAnalysis() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// CompleteAnalysis installs the analysis result for the given
// generation. It reports false, leaving the previous result in place,
// when a newer generation has already been started.
func (s *Session) CompleteAnalysis(gen uint64, result []task.Analyzed) bool {
	clone := task.CloneAllAnalyzed(result)
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.analyzed = clone
	return true
}
