// Package task defines the working-set task model and its JSON codec.
package task

import (
	"github.com/taskbench/taskbench/internal/date"
)

// Task represents one entry of the working set, as edited by the user
// and submitted to the scoring service. IDs are expected to be unique
// within a batch but duplicates are passed through unchanged; the
// service owns dependency-graph interpretation.
type Task struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	DueDate        date.Date `json:"due_date"`
	EstimatedHours float64   `json:"estimated_hours"`
	Importance     int       `json:"importance"`
	Dependencies   []int64   `json:"dependencies"`
}

// Analyzed is a Task augmented by the scoring service. Score and
// Explanation are never produced locally; an Analyzed value only
// exists as part of a service response.
type Analyzed struct {
	Task
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	if t.Dependencies != nil {
		c.Dependencies = append([]int64(nil), t.Dependencies...)
	}
	return c
}

// Clone returns a deep copy of the analyzed task.
func (a Analyzed) Clone() Analyzed {
	c := a
	c.Task = a.Task.Clone()
	return c
}

// CloneAll deep-copies a slice of tasks.
func CloneAll(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

// CloneAllAnalyzed deep-copies a slice of analyzed tasks.
func CloneAllAnalyzed(tasks []Analyzed) []Analyzed {
	out := make([]Analyzed, len(tasks))
	for i, a := range tasks {
		out[i] = a.Clone()
	}
	return out
}
