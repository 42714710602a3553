package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2025-11-30")
	require.NoError(t, err)
	assert.Equal(t, "2025-11-30", d.String())
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "30-11-2025", "2025-13-01", "2025-11-30T10:00:00Z"} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2025, time.November, 30)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-11-30"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestUnmarshalJSONInvalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20251130`), &d))
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, time.November, 28, 15, 45, 0, 0, time.UTC)

	assert.Equal(t, 0, New(2025, time.November, 28).DaysUntil(now))
	assert.Equal(t, 2, New(2025, time.November, 30).DaysUntil(now))
	assert.Equal(t, -3, New(2025, time.November, 25).DaysUntil(now))
}
