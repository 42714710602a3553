package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench/internal/date"
	"github.com/taskbench/taskbench/internal/task"
)

func testTasks() []task.Task {
	return []task.Task{
		{ID: 1, Title: "A", DueDate: date.New(2025, time.November, 30), EstimatedHours: 3, Importance: 8, Dependencies: []int64{}},
		{ID: 2, Title: "B", DueDate: date.New(2025, time.November, 28), EstimatedHours: 20, Importance: 9, Dependencies: []int64{1}},
	}
}

func TestSessionAppendAndSnapshot(t *testing.T) {
	s := New()
	for _, tk := range testTasks() {
		s.Append(tk)
	}

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, testTasks(), s.Snapshot(), "snapshot preserves insertion order")
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := NewWith(testTasks())

	snap := s.Snapshot()
	snap[0].Title = "mutated"
	snap[1].Dependencies[0] = 99

	again := s.Snapshot()
	assert.Equal(t, "A", again[0].Title)
	assert.Equal(t, int64(1), again[1].Dependencies[0])
}

func TestNewWithCopiesInput(t *testing.T) {
	input := testTasks()
	s := NewWith(input)

	input[0].Title = "mutated"
	assert.Equal(t, "A", s.Snapshot()[0].Title)
}

func TestReplaceAll(t *testing.T) {
	s := NewWith(testTasks())

	replacement := []task.Task{
		{ID: 7, Title: "C", DueDate: date.New(2025, time.December, 1), Dependencies: []int64{}},
	}
	s.ReplaceAll(replacement)

	assert.Equal(t, replacement, s.Snapshot())
}

func TestReplaceAllEmpty(t *testing.T) {
	s := NewWith(testTasks())
	s.ReplaceAll(nil)
	assert.Equal(t, 0, s.Len())
}

func TestDecodeFailureLeavesSessionUntouched(t *testing.T) {
	s := NewWith(testTasks())
	before := s.Snapshot()

	_, err := task.Decode([]byte(`[{"id": 1,`))
	require.Error(t, err, "a failed decode yields nothing to replace with")

	assert.Equal(t, before, s.Snapshot())
}

func TestRemove(t *testing.T) {
	s := NewWith(testTasks())

	assert.True(t, s.Remove(1))
	assert.False(t, s.Remove(1), "second removal of the same ID finds nothing")
	assert.False(t, s.Remove(42))

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(2), snap[0].ID)
}

func analyzedFixture(score float64) []task.Analyzed {
	return []task.Analyzed{
		{Task: testTasks()[0], Score: score, Explanation: "Standard priority"},
	}
}

func TestCompleteAnalysisInstallsResult(t *testing.T) {
	s := NewWith(testTasks())

	gen := s.BeginAnalysis()
	assert.True(t, s.CompleteAnalysis(gen, analyzedFixture(12)))
	assert.Equal(t, analyzedFixture(12), s.Analyzed())
}

func TestCompleteAnalysisDiscardsStaleGeneration(t *testing.T) {
	s := NewWith(testTasks())

	first := s.BeginAnalysis()
	second := s.BeginAnalysis()

	// The newer request resolves first.
	assert.True(t, s.CompleteAnalysis(second, analyzedFixture(60)))

	// The older one arrives late and must not overwrite it.
	assert.False(t, s.CompleteAnalysis(first, analyzedFixture(12)))
	assert.Equal(t, analyzedFixture(60), s.Analyzed())
}

func TestAnalyzedIsIsolated(t *testing.T) {
	s := New()
	gen := s.BeginAnalysis()
	require.True(t, s.CompleteAnalysis(gen, analyzedFixture(12)))

	out := s.Analyzed()
	out[0].Explanation = "mutated"
	assert.Equal(t, "Standard priority", s.Analyzed()[0].Explanation)
}
