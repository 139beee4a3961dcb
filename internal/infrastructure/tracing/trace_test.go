package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func observed() (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logging.Logger{Logger: zap.New(core)}, logs
}

func TestStartSpanContinuesTrace(t *testing.T) {
	logger, _ := observed()
	tracer := New("test", logger)
	defer tracer.Close()

	parent, ctx := tracer.StartSpan(context.Background(), "parent")
	_, err := uuid.Parse(string(parent.TraceID))
	require.NoError(t, err)
	assert.Empty(t, parent.ParentID)

	child, _ := tracer.StartSpan(ctx, "child")
	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
}

func TestMiddlewarePropagatesHeaders(t *testing.T) {
	logger, logs := observed()
	tracer := New("test", logger)
	defer tracer.Close()

	var seen TraceID
	r := gin.New()
	r.Use(HTTPMiddleware(tracer))
	r.GET("/ok", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(HeaderTraceID, "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Header().Get(HeaderTraceID))
	assert.NotEmpty(t, w.Header().Get(HeaderSpanID))
	assert.Equal(t, TraceID("trace-123"), seen)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderTraceID))

	require.Eventually(t, func() bool {
		return logs.FilterMessage("Span completed with error").Len() == 1 &&
			logs.FilterMessage("Span completed").Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSubmitAfterCloseIsDropped(t *testing.T) {
	logger, logs := observed()
	tracer := New("test", logger)
	tracer.Close()
	tracer.Close()

	span, _ := tracer.StartSpan(context.Background(), "late")
	span.Finish()
	tracer.Submit(span)

	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, logs.Len())
}

func TestFields(t *testing.T) {
	assert.Nil(t, Fields(context.Background()))
	fields := Fields(WithTraceID(context.Background(), "abc"))
	require.Len(t, fields, 1)
	assert.Equal(t, "abc", fields[0].String)
}
