package task

import (
	"time"

	"github.com/taskbench/taskbench/internal/date"
)

// ExampleTasks returns the starter working set used to seed a new
// workbench, small enough to read and rich enough to show dependency
// scoring.
func ExampleTasks() []Task {
	return []Task{
		{
			ID:             1,
			Title:          "Fix login bug",
			DueDate:        date.New(2025, time.November, 30),
			EstimatedHours: 3,
			Importance:     8,
			Dependencies:   []int64{},
		},
		{
			ID:             2,
			Title:          "Write documentation",
			DueDate:        date.New(2025, time.December, 5),
			EstimatedHours: 2,
			Importance:     5,
			Dependencies:   []int64{1},
		},
		{
			ID:             3,
			Title:          "Redesign homepage",
			DueDate:        date.New(2025, time.November, 28),
			EstimatedHours: 20,
			Importance:     9,
			Dependencies:   []int64{},
		},
	}
}
