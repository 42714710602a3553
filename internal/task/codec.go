package task

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// indent matches the 4-space pretty-printing of the bulk edit surface.
const indent = "    "

// Encode serializes tasks as pretty-printed JSON. The output is the
// canonical form of the bulk edit surface: Decode(Encode(tasks))
// reproduces an equivalent slice.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", indent)
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a JSON task batch. It is all-or-nothing: on any error
// no tasks are returned, so callers can leave their working set
// untouched. Structural shape (an array of task objects) is enforced;
// field-level plausibility (negative hours, out-of-range importance)
// is deliberately left to the scoring service.
func Decode(data []byte) ([]Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty input: expected a JSON array of tasks")
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parsing tasks: %w", err)
	}
	if tasks == nil {
		return nil, fmt.Errorf("expected a JSON array of tasks, got null")
	}
	return tasks, nil
}

// EncodeAnalyzed serializes an analyzed batch, same form as Encode.
func EncodeAnalyzed(tasks []Analyzed) ([]byte, error) {
	if tasks == nil {
		tasks = []Analyzed{}
	}
	data, err := json.MarshalIndent(tasks, "", indent)
	if err != nil {
		return nil, fmt.Errorf("encoding analyzed tasks: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeAnalyzed parses a saved analysis result batch.
func DecodeAnalyzed(data []byte) ([]Analyzed, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty input: expected a JSON array of analyzed tasks")
	}

	var tasks []Analyzed
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parsing analyzed tasks: %w", err)
	}
	if tasks == nil {
		return nil, fmt.Errorf("expected a JSON array of analyzed tasks, got null")
	}
	return tasks, nil
}
