package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordToolCall(t *testing.T) {
	m := New()

	m.RecordToolCall("get_athlete", nil)
	m.RecordToolCall("get_athlete", nil)
	m.RecordToolCall("get_athlete", errors.New("not found"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("get_athlete", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toolCalls.WithLabelValues("get_athlete", OutcomeError)))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := New()

	m.ObserveHTTPRequest("/athletes/:id", http.MethodGet, http.StatusNotFound, 20*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/athletes/:id", "GET", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.httpDuration))
}

func TestObserveAgentRun(t *testing.T) {
	m := New()

	m.ObserveAgentRun(time.Second, nil)
	m.ObserveAgentRun(time.Second, errors.New("upstream down"))
	m.RecordRateLimitHit()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.agentRuns.WithLabelValues(OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimitHits))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordToolCall("list_athletes", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `registry_tool_calls_total{outcome="ok",tool="list_athletes"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
