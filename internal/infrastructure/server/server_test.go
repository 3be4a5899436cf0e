package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/config"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Database.Driver = "memory"
	cfg.Media.UploadDir = t.TempDir()
	cfg.Logging.Level = "error"
	cfg.RateLimit.Enabled = false
	return cfg
}

func TestNewServerMemory(t *testing.T) {
	srv, err := NewServer(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		assert.NoError(t, srv.Shutdown(ctx))
	})

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "health", method: "GET", path: "/health", wantStatus: http.StatusOK, wantBody: "healthy"},
		{name: "metrics", method: "GET", path: "/metrics", wantStatus: http.StatusOK, wantBody: "linkup_"},
		{name: "protected route", method: "GET", path: "/api/user/currentuser", wantStatus: http.StatusUnauthorized},
		{
			name:       "signup",
			method:     "POST",
			path:       "/api/auth/signup",
			body:       `{"firstName":"A","lastName":"B","userName":"ab","email":"ab@example.com","password":"password123"}`,
			wantStatus: http.StatusCreated,
			wantBody:   `"success":true`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRealtimeEndpoint(t *testing.T) {
	cfg := testConfig(t)
	srv, err := NewServer(context.Background(), cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	header := http.Header{}
	header.Set("Origin", cfg.CORS.RealtimeOrigin)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"register","data":"user-1"}`)))

	require.Eventually(t, func() bool {
		return srv.hub.Online("user-1")
	}, 2*time.Second, 10*time.Millisecond)

	conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}

func TestNewServerFailsFastOnDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping network test in short mode")
	}

	cfg := testConfig(t)
	cfg.Database.Driver = "mongo"
	cfg.Database.URI = "mongodb://127.0.0.1:1"
	cfg.Database.ConnectTimeout = 200 * time.Millisecond

	_, err := NewServer(context.Background(), cfg)
	assert.Error(t, err)
}
