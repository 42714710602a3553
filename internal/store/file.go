package store

import (
	"fmt"
	"os"

	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/task"
)

const fileMode = 0o600

// LoadFile reads the working-set file into a task slice. A missing
// file is an empty working set, not an error. Malformed content fails
// with a PARSE_ERROR and nothing is returned, so the caller's state
// stays untouched.
func LoadFile(path string) ([]task.Task, error) {
	data, err := os.ReadFile(path) //nolint:gosec // workbench path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("reading working set: %w", err)
	}

	tasks, err := task.Decode(data)
	if err != nil {
		return nil, clierr.Newf(clierr.ParseError, "invalid working set in %s: %v", path, err).
			WithDetails(map[string]any{"file": path})
	}
	return tasks, nil
}

// SaveFile writes the working set to path in canonical pretty-printed
// form.
func SaveFile(path string, tasks []task.Task) error {
	data, err := task.Encode(tasks)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return fmt.Errorf("writing working set: %w", err)
	}
	return nil
}
