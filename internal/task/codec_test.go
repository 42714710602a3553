package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench/internal/date"
)

func sampleTasks() []Task {
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
			EstimatedHours: 2.5,
			Importance:     5,
			Dependencies:   []int64{1},
		},
	}
}

func TestCodecRoundTrip(t *testing.T) {
	original := sampleTasks()

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodePrettyPrinted(t *testing.T) {
	data, err := Encode(sampleTasks())
	require.NoError(t, err)

	assert.Contains(t, string(data), "    \"id\": 1")
	assert.Contains(t, string(data), "\"due_date\": \"2025-11-30\"")
}

func TestEncodeNil(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"truncated", `[{"id": 1, "title": "A"`},
		{"not an array", `{"id": 1, "title": "A"}`},
		{"null", `null`},
		{"empty", ``},
		{"whitespace", "  \n\t"},
		{"wrong element type", `[1, 2, 3]`},
		{"bad date", `[{"id": 1, "title": "A", "due_date": "soon"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tasks, err := Decode([]byte(tc.input))
			require.Error(t, err)
			assert.Nil(t, tasks, "failed decode must return nothing")
		})
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	input := `[{"id": 7, "title": "A", "due_date": "2025-01-02",
		"estimated_hours": 1, "importance": 3, "dependencies": [], "color": "red"}]`

	tasks, err := Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(7), tasks[0].ID)
}

func TestDecodeKeepsDuplicateIDs(t *testing.T) {
	input := `[
		{"id": 1, "title": "A", "due_date": "2025-01-02", "estimated_hours": 1, "importance": 3, "dependencies": []},
		{"id": 1, "title": "B", "due_date": "2025-01-03", "estimated_hours": 2, "importance": 4, "dependencies": []}
	]`

	tasks, err := Decode([]byte(input))
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, tasks[0].ID, tasks[1].ID, "duplicate IDs pass through unchanged")
}

func TestAnalyzedCodecRoundTrip(t *testing.T) {
	original := []Analyzed{
		{Task: sampleTasks()[0], Score: 61.5, Explanation: "Overdue, High importance"},
		{Task: sampleTasks()[1], Score: 12, Explanation: "Standard priority"},
	}

	data, err := EncodeAnalyzed(original)
	require.NoError(t, err)

	decoded, err := DecodeAnalyzed(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}
