package analyze

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench/internal/date"
	"github.com/taskbench/taskbench/internal/task"
)

func requestTasks() []task.Task {
	return []task.Task{
		{ID: 1, Title: "Fix login bug", DueDate: date.New(2025, time.November, 30),
			EstimatedHours: 3, Importance: 8, Dependencies: []int64{}},
		{ID: 2, Title: "Write documentation", DueDate: date.New(2025, time.December, 5),
			EstimatedHours: 2, Importance: 5, Dependencies: []int64{1}},
	}
}

func newTestClient(url string) *Client {
	return New(url, time.Second, zerolog.Nop())
}

func TestAnalyze(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []task.Task

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 2, "title": "Write documentation", "due_date": "2025-12-05",
			 "estimated_hours": 2, "importance": 5, "dependencies": [1],
			 "score": 35, "explanation": "Due soon"},
			{"id": 1, "title": "Fix login bug", "due_date": "2025-11-30",
			 "estimated_hours": 3, "importance": 8, "dependencies": [],
			 "score": 12, "explanation": "Standard priority"}
		]`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Analyze(context.Background(), requestTasks())
	require.NoError(t, err)

	assert.Equal(t, "/api/tasks/analyze/", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, requestTasks(), gotBody, "the whole batch is sent in one request")

	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID, "response order is preserved as received")
	assert.Equal(t, 35.0, got[0].Score)
	assert.Equal(t, "Due soon", got[0].Explanation)
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Analyze(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoTasks)
	assert.Nil(t, got)
	assert.False(t, called, "no request is issued for an empty batch")
}

func TestAnalyzeServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "circular dependency detected"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), requestTasks())
	require.Error(t, err)

	var aerr *Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, http.StatusBadRequest, aerr.Status)
	assert.Equal(t, "circular dependency detected", aerr.Message)
}

func TestAnalyzeServiceErrorUnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>Internal Server Error</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Analyze(context.Background(), requestTasks())

	var aerr *Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, http.StatusInternalServerError, aerr.Status)
	assert.Equal(t, "scoring service returned status 500", aerr.Message)
}

func TestAnalyzeMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"scores": "not an array"}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).Analyze(context.Background(), requestTasks())
	require.Error(t, err)
	assert.Nil(t, got)

	var aerr *Error
	require.ErrorAs(t, err, &aerr)
	assert.Zero(t, aerr.Status)
	assert.Contains(t, aerr.Message, "malformed response")
}

func TestAnalyzeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	_, err := newTestClient(srv.URL).Analyze(context.Background(), requestTasks())

	var aerr *Error
	require.ErrorAs(t, err, &aerr)
	assert.Zero(t, aerr.Status)
	assert.Contains(t, aerr.Message, "cannot reach scoring service")
}

func TestAnalyzeContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).Analyze(ctx, requestTasks())
	require.Error(t, err)
}
