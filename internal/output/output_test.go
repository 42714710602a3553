package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Setenv("TASKBENCH_OUTPUT", "")

	assert.Equal(t, FormatJSON, Detect(true, false, false))
	assert.Equal(t, FormatTable, Detect(false, true, false))
	assert.Equal(t, FormatCompact, Detect(false, false, true))
	assert.Equal(t, FormatAuto, Detect(false, false, false))

	// Flags win over the environment.
	t.Setenv("TASKBENCH_OUTPUT", "table")
	assert.Equal(t, FormatJSON, Detect(true, false, false))
}

func TestDetectFromEnv(t *testing.T) {
	cases := map[string]Format{
		"json":    FormatJSON,
		"table":   FormatTable,
		"compact": FormatCompact,
		"oneline": FormatCompact,
		"bogus":   FormatAuto,
	}

	for value, want := range cases {
		t.Setenv("TASKBENCH_OUTPUT", value)
		assert.Equal(t, want, Detect(false, false, false), "TASKBENCH_OUTPUT=%s", value)
	}
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "TASK_NOT_FOUND", "no task with ID 42", map[string]any{"id": 42})

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "TASK_NOT_FOUND", resp.Code)
	assert.Equal(t, "no task with ID 42", resp.Error)
	assert.EqualValues(t, 42, resp.Details["id"])
}

func TestJSONOmitsEmptyDetails(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "NO_TASKS", "no tasks to analyze", nil)
	assert.NotContains(t, buf.String(), "details")
}
