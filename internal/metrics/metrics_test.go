package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_SessionLifecycle(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.SessionStarted()
	m.SessionStarted()
	m.Tick(time.Millisecond)
	m.Captured()
	m.SessionEnded("caught", 2, 5)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.active))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.captures))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.dives))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.hops))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues("caught")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.outcomes.WithLabelValues("escaped")))
}

func TestMetrics_DoubleRegisterFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.SessionStarted()
		m.Tick(time.Millisecond)
		m.Captured()
		m.SessionEnded("escaped", 1, 1)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	m.Captured()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "divecatch_captures_total 1")
}
