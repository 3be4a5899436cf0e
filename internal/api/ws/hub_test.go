package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/presence"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/monitoring"
)

const waitFor = 2 * time.Second
const tick = 10 * time.Millisecond

type testEnv struct {
	hub      *Hub
	registry *presence.Registry
	metrics  *monitoring.Metrics
	server   *httptest.Server
	url      string
}

func setupHub(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := presence.NewRegistry()
	metrics := monitoring.NewMetrics()
	hub := NewHub(presence.NewTracker(registry, nil), DefaultConfig(), nil).WithMetrics(metrics)

	router := gin.New()
	router.GET("/ws", hub.HandleConnection)
	server := httptest.NewServer(router)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})

	return &testEnv{
		hub:      hub,
		registry: registry,
		metrics:  metrics,
		server:   server,
		url:      "ws" + strings.TrimPrefix(server.URL, "http") + "/ws",
	}
}

func (e *testEnv) dial(t *testing.T, header http.Header) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(e.url, header)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func register(t *testing.T, conn *websocket.Conn, payload string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"register","data":`+payload+`}`)))
}

func TestRegisterAndDisconnect(t *testing.T) {
	env := setupHub(t)

	conn := env.dial(t, nil)
	register(t, conn, `"u1"`)

	require.Eventually(t, func() bool {
		_, ok := env.registry.Lookup("u1")
		return ok
	}, waitFor, tick)
	assert.True(t, env.hub.Online("u1"))
	assert.Equal(t, 1, env.hub.Len())

	conn.Close()

	require.Eventually(t, func() bool {
		return env.registry.Len() == 0 && env.hub.Len() == 0
	}, waitFor, tick)
	assert.False(t, env.hub.Online("u1"))
	assert.Equal(t, float64(0), testutil.ToFloat64(env.metrics.RealtimeConnections))
}

func TestNumericUserIDIsNormalised(t *testing.T) {
	env := setupHub(t)

	conn := env.dial(t, nil)
	register(t, conn, `1001`)

	require.Eventually(t, func() bool {
		_, ok := env.registry.Lookup("1001")
		return ok
	}, waitFor, tick)
}

func TestFalsyAndMalformedFramesAreIgnored(t *testing.T) {
	env := setupHub(t)

	conn := env.dial(t, nil)
	register(t, conn, `""`)
	register(t, conn, `null`)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"typing","data":"u1"}`)))

	// The connection survives and a later valid register still lands.
	register(t, conn, `"u1"`)
	require.Eventually(t, func() bool {
		return env.registry.Len() == 1
	}, waitFor, tick)
	_, ok := env.registry.Lookup("u1")
	assert.True(t, ok)
}

func TestEmitDeliversToRegisteredConnection(t *testing.T) {
	env := setupHub(t)

	conn := env.dial(t, nil)
	register(t, conn, `"u1"`)
	require.Eventually(t, func() bool { return env.hub.Online("u1") }, waitFor, tick)

	require.True(t, env.hub.Emit("u1", "newNotification", map[string]string{"type": "like"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(waitFor)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	frame, err := DecodeFrame(msg)
	require.NoError(t, err)
	assert.Equal(t, "newNotification", frame.Event)
	assert.JSONEq(t, `{"type":"like"}`, string(frame.Data))
}

func TestEmitToOfflineUser(t *testing.T) {
	env := setupHub(t)

	assert.False(t, env.hub.Emit("nobody", "newNotification", nil))
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.RealtimeEmits.WithLabelValues("newNotification", "false")))
}

func TestReconnectOverwritesPresence(t *testing.T) {
	env := setupHub(t)

	first := env.dial(t, nil)
	register(t, first, `"u2"`)
	require.Eventually(t, func() bool { return env.hub.Online("u2") }, waitFor, tick)
	oldConn := mustLookup(t, env.registry, "u2")

	second := env.dial(t, nil)
	register(t, second, `"u2"`)
	require.Eventually(t, func() bool {
		c, _ := env.registry.Lookup("u2")
		return c != oldConn
	}, waitFor, tick)

	// Closing the superseded socket drops the user's entry.
	first.Close()
	require.Eventually(t, func() bool {
		return env.hub.Len() == 1 && !env.hub.Online("u2")
	}, waitFor, tick)

	// The live socket registers again to become reachable.
	register(t, second, `"u2"`)
	require.Eventually(t, func() bool { return env.hub.Online("u2") }, waitFor, tick)
}

func TestOriginPolicy(t *testing.T) {
	env := setupHub(t)

	tests := []struct {
		name   string
		origin string
		wantOK bool
	}{
		{name: "configured origin", origin: "https://linkedin1-frontend.onrender.com", wantOK: true},
		{name: "configured origin different case", origin: "HTTPS://LinkedIn1-Frontend.onrender.com", wantOK: true},
		{name: "no origin header", origin: "", wantOK: true},
		{name: "http api origin", origin: "http://localhost:5173", wantOK: false},
		{name: "other site", origin: "https://evil.example.com", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}

			conn, resp, err := websocket.DefaultDialer.Dial(env.url, header)
			if resp != nil && resp.Body != nil {
				defer resp.Body.Close()
			}
			if tt.wantOK {
				require.NoError(t, err)
				conn.Close()
				return
			}
			require.Error(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestOversizedMessageDisconnects(t *testing.T) {
	env := setupHub(t)

	conn := env.dial(t, nil)
	register(t, conn, `"u1"`)
	require.Eventually(t, func() bool { return env.hub.Online("u1") }, waitFor, tick)

	big := `{"event":"register","data":"` + strings.Repeat("x", int(DefaultConfig().MaxMessageSize)) + `"}`
	_ = conn.WriteMessage(websocket.TextMessage, []byte(big))

	require.Eventually(t, func() bool {
		return env.hub.Len() == 0 && !env.hub.Online("u1")
	}, waitFor, tick)
}

func TestCloseDisconnectsEveryone(t *testing.T) {
	env := setupHub(t)

	a := env.dial(t, nil)
	b := env.dial(t, nil)
	register(t, a, `"u1"`)
	register(t, b, `"u2"`)
	require.Eventually(t, func() bool { return env.registry.Len() == 2 }, waitFor, tick)

	env.hub.Close()

	require.Eventually(t, func() bool {
		return env.hub.Len() == 0 && env.registry.Len() == 0
	}, waitFor, tick)
}

func mustLookup(t *testing.T, r *presence.Registry, user presence.UserID) presence.ConnectionID {
	t.Helper()
	conn, ok := r.Lookup(user)
	require.True(t, ok)
	return conn
}
