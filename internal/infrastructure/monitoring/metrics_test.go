package monitoring

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewMetricsTwice(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics()
		NewMetrics()
	})
}

func TestMiddlewareRecordsRoute(t *testing.T) {
	m := NewMetrics()
	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/api/windows/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for _, path := range []string{"/api/windows/a", "/api/windows/b", "/nope"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/windows/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap.TotalRequests)
	assert.Equal(t, int64(1), snap.TotalErrors)
}

func TestPowerStateGauge(t *testing.T) {
	m := NewMetrics()
	m.RecordPowerTransition("active", "locked")
	m.RecordPowerTransition("locked", "active")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PowerState.WithLabelValues("active")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PowerState.WithLabelValues("locked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PowerTransitions.WithLabelValues("active", "locked")))
	assert.Equal(t, "active", m.Snapshot().PowerState)
}

func TestObserveStore(t *testing.T) {
	m := NewMetrics()
	m.ObserveStore("get", time.Millisecond, nil)
	m.ObserveStore("set", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOps.WithLabelValues("get", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOps.WithLabelValues("set", "error")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.SetWindows(2, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "webdesk_windows_open 2"))
	assert.True(t, strings.Contains(string(body), "webdesk_uptime_seconds"))
}

func TestAverageLatency(t *testing.T) {
	assert.Zero(t, MetricsSnapshot{}.AverageLatency())
	s := MetricsSnapshot{TotalDuration: 1.0, RequestCount: 4}
	assert.Equal(t, 250*time.Millisecond, s.AverageLatency())
}
