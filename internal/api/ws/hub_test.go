package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

type message struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Payload map[string]interface{} `json:"payload"`
}

func serve(t *testing.T, hub *Hub) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/stream", hub.HandleConnection)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
}

func dial(t *testing.T, url string, header http.Header) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubGreetsAndAnswersPing(t *testing.T) {
	hub := NewHub([]string{"*"}, logging.NewNop())
	conn := dial(t, serve(t, hub), nil)

	assert.Equal(t, "system", read(t, conn).Type)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	assert.Equal(t, "pong", read(t, conn).Type)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "chat"}))
	assert.Equal(t, "error", read(t, conn).Type)
}

func TestHubBroadcastsEvents(t *testing.T) {
	metrics := monitoring.NewMetrics()
	hub := NewHub([]string{"*"}, logging.NewNop()).WithMetrics(metrics)
	url := serve(t, hub)

	a := dial(t, url, nil)
	b := dial(t, url, nil)
	read(t, a)
	read(t, b)
	require.Eventually(t, func() bool { return hub.Len() == 2 }, time.Second, 10*time.Millisecond)
	assert.EqualValues(t, 2, metrics.Snapshot().ActiveConnections)

	hub.Notify(types.NewEvent(types.EventPower, map[string]string{"state": "locked"}))
	for _, conn := range []*websocket.Conn{a, b} {
		msg := read(t, conn)
		assert.Equal(t, "power", msg.Type)
		assert.Equal(t, "locked", msg.Payload["state"])
	}

	require.NoError(t, a.Close())
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)
	assert.EqualValues(t, 1, metrics.Snapshot().ActiveConnections)
}

func TestHubClockTick(t *testing.T) {
	hub := NewHub([]string{"*"}, logging.NewNop())
	conn := dial(t, serve(t, hub), nil)
	read(t, conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx, 10*time.Millisecond)

	msg := read(t, conn)
	assert.Equal(t, "clock", msg.Type)
	assert.NotEmpty(t, msg.Payload["time"])
}

func TestHubCloseDisconnects(t *testing.T) {
	hub := NewHub([]string{"*"}, logging.NewNop())
	url := serve(t, hub)
	conn := dial(t, url, nil)
	read(t, conn)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.Len())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	assert.True(t, check(req), "same-origin requests carry no Origin")

	req.Header.Set("Origin", "http://localhost:5173")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.test")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}
