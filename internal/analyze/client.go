// Package analyze submits task batches to the external scoring
// service and decodes the analyzed result.
package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskbench/taskbench/internal/task"
)

// endpointPath is the fixed analyze endpoint on the scoring service.
const endpointPath = "/api/tasks/analyze/"

// DefaultTimeout bounds one analysis round trip.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 1 << 16

// ErrNoTasks is returned when analysis is requested on an empty
// working set. No request is issued in that case.
var ErrNoTasks = errors.New("no tasks to analyze")

// Error describes a failed analysis call. Status is zero for
// transport-level failures.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Client calls the scoring service. The zero value is not usable;
// construct with New.
type Client struct {
	baseURL string
	hc      *http.Client
	log     zerolog.Logger
}

// New creates a Client for the service at baseURL. A non-positive
// timeout falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Analyze posts the whole batch to the scoring service and returns
// the analyzed collection. The batch is scored together so the
// service can reason about inter-task dependencies; response order is
// not guaranteed to mirror request order.
func (c *Client) Analyze(ctx context.Context, tasks []task.Task) ([]task.Analyzed, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	body, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := c.baseURL + endpointPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("url", url).Int("tasks", len(tasks)).Msg("analyzing batch")
	start := time.Now()

	res, err := c.hc.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Msg("analysis request failed")
		return nil, &Error{Message: "cannot reach scoring service: " + transportReason(err)}
	}
	defer res.Body.Close() //nolint:errcheck // read-only body

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, c.serviceError(res)
	}

	var analyzed []task.Analyzed
	if err := json.NewDecoder(res.Body).Decode(&analyzed); err != nil {
		c.log.Debug().Err(err).Msg("malformed analysis response")
		return nil, &Error{Message: "scoring service returned a malformed response"}
	}

	c.log.Debug().
		Int("tasks", len(analyzed)).
		Dur("elapsed", time.Since(start)).
		Msg("analysis complete")

	return analyzed, nil
}

// serviceError extracts the human-readable message from a non-2xx
// response. The service sends {"error": "..."}; anything else falls
// back to a generic message.
func (c *Client) serviceError(res *http.Response) *Error {
	e := &Error{
		Status:  res.StatusCode,
		Message: fmt.Sprintf("scoring service returned status %d", res.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	if err != nil {
		return e
	}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		e.Message = payload.Error
	}
	return e
}

// transportReason trims Go's url.Error wrapping down to the
// underlying cause for display.
func transportReason(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
