package task

import (
	"strconv"
	"strings"
	"time"

	"github.com/taskbench/taskbench/internal/clierr"
	"github.com/taskbench/taskbench/internal/date"
)

// Fields is a single-entry submission with every value still in free
// text, exactly as read from a form or command line.
type Fields struct {
	ID             string
	Title          string
	DueDate        string
	EstimatedHours string
	Importance     string
	Dependencies   string // comma-separated IDs
}

// Ingest converts one submission into a Task. Malformed numeric fields
// fail with a VALIDATION_ERROR naming the offending field rather than
// being coerced to a sentinel. When no ID is given, a millisecond
// timestamp is used so hand-entered small integers rarely collide.
func Ingest(f Fields, now func() time.Time) (Task, error) {
	if now == nil {
		now = time.Now
	}

	t := Task{Dependencies: []int64{}}

	if strings.TrimSpace(f.Title) == "" {
		return Task{}, clierr.New(clierr.ValidationError, "title must not be empty").
			WithDetails(map[string]any{"field": "title"})
	}
	t.Title = f.Title

	if id := strings.TrimSpace(f.ID); id != "" {
		v, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return Task{}, invalidField("id", id)
		}
		t.ID = v
	} else {
		t.ID = now().UnixMilli()
	}

	d, err := date.Parse(strings.TrimSpace(f.DueDate))
	if err != nil {
		return Task{}, clierr.Newf(clierr.InvalidDate, "invalid due date: %v", err).
			WithDetails(map[string]any{"field": "due_date", "input": f.DueDate})
	}
	t.DueDate = d

	hours, err := strconv.ParseFloat(strings.TrimSpace(f.EstimatedHours), 64)
	if err != nil {
		return Task{}, invalidField("estimated_hours", f.EstimatedHours)
	}
	t.EstimatedHours = hours

	imp, err := strconv.Atoi(strings.TrimSpace(f.Importance))
	if err != nil {
		return Task{}, invalidField("importance", f.Importance)
	}
	t.Importance = imp

	deps, err := ParseDependencies(f.Dependencies)
	if err != nil {
		return Task{}, err
	}
	t.Dependencies = deps

	return t, nil
}

// ParseDependencies splits comma-separated dependency IDs, trimming
// whitespace. An empty string yields an empty set.
func ParseDependencies(s string) ([]int64, error) {
	deps := []int64{}
	if strings.TrimSpace(s) == "" {
		return deps, nil
	}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, invalidField("dependencies", p)
		}
		deps = append(deps, id)
	}
	return deps, nil
}

func invalidField(field, input string) *clierr.Error {
	return clierr.Newf(clierr.ValidationError, "invalid %s %q: expected a number", field, input).
		WithDetails(map[string]any{"field": field, "input": input})
}
