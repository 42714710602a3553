package rank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench/internal/date"
	"github.com/taskbench/taskbench/internal/task"
)

// Three tasks where every strategy produces a different order.
func analyzedFixture() []task.Analyzed {
	return []task.Analyzed{
		{
			Task: task.Task{
				ID: 1, Title: "Fix login bug",
				DueDate:        date.New(2025, time.November, 30),
				EstimatedHours: 3, Importance: 8, Dependencies: []int64{},
			},
			Score: 12, Explanation: "Standard priority",
		},
		{
			Task: task.Task{
				ID: 3, Title: "Redesign homepage",
				DueDate:        date.New(2025, time.November, 28),
				EstimatedHours: 20, Importance: 9, Dependencies: []int64{},
			},
			Score: 60, Explanation: "Due soon, High importance",
		},
		{
			Task: task.Task{
				ID: 2, Title: "Write documentation",
				DueDate:        date.New(2025, time.December, 5),
				EstimatedHours: 2, Importance: 5, Dependencies: []int64{1},
			},
			Score: 35, Explanation: "Due soon",
		},
	}
}

func ids(tasks []task.Analyzed) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestRankStrategies(t *testing.T) {
	cases := []struct {
		strategy Strategy
		want     []int64
	}{
		{Smart, []int64{3, 2, 1}},    // descending score: 60, 35, 12
		{Fastest, []int64{2, 1, 3}},  // ascending hours: 2, 3, 20
		{Impact, []int64{3, 1, 2}},   // descending importance: 9, 8, 5
		{Deadline, []int64{3, 1, 2}}, // ascending due date: 28th, 30th, 5th Dec
	}

	for _, tc := range cases {
		t.Run(string(tc.strategy), func(t *testing.T) {
			got := Rank(analyzedFixture(), tc.strategy)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	input := analyzedFixture()
	Rank(input, Fastest)
	assert.Equal(t, analyzedFixture(), input)
}

func TestRankStableOnTies(t *testing.T) {
	input := analyzedFixture()
	for i := range input {
		input[i].Importance = 5
	}

	got := Rank(input, Impact)
	assert.Equal(t, []int64{1, 3, 2}, ids(got), "ties keep input order")
}

func TestRankEmpty(t *testing.T) {
	got := Rank(nil, Smart)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankDeterministic(t *testing.T) {
	first := Rank(analyzedFixture(), Smart)
	second := Rank(analyzedFixture(), Smart)
	assert.Equal(t, first, second)
}

func TestParse(t *testing.T) {
	assert.Equal(t, Fastest, Parse("fastest"))
	assert.Equal(t, Impact, Parse("impact"))
	assert.Equal(t, Deadline, Parse("deadline"))
	assert.Equal(t, Smart, Parse("smart"))
	assert.Equal(t, Smart, Parse("bogus"), "unknown strategies fall back to smart")
	assert.Equal(t, Smart, Parse(""))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		score float64
		want  Severity
	}{
		{75, SeverityHigh},
		{50, SeverityHigh},
		{49.9, SeverityMedium},
		{20, SeverityMedium},
		{19.9, SeverityLow},
		{0, SeverityLow},
		{-5, SeverityLow},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.score), "score %v", tc.score)
	}
}
