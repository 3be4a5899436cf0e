package monitoring

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolatedRegistries(t *testing.T) {
	// Two collectors must not collide on registration.
	m1 := NewMetrics()
	m2 := NewMetrics()

	m1.ConnectionOpened()

	assert.Equal(t, float64(1), testutil.ToFloat64(m1.RealtimeConnections))
	assert.Equal(t, float64(0), testutil.ToFloat64(m2.RealtimeConnections))
}

func TestRealtimeMetrics(t *testing.T) {
	m := NewMetrics()

	m.ConnectionOpened()
	m.ConnectionOpened()
	m.ConnectionClosed()
	m.RecordEvent("register")
	m.RecordEmit("newNotification", true)
	m.RecordEmit("newNotification", false)
	m.SetPresenceUsers(3)
	m.RecordNotification("like")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RealtimeConnections))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.RealtimeEvents.WithLabelValues("connection")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RealtimeEvents.WithLabelValues("disconnect")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RealtimeEvents.WithLabelValues("register")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RealtimeEmits.WithLabelValues("newNotification", "false")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.PresenceUsers))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Notifications.WithLabelValues("like")))
}

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/api/user/profile/:userName", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user/profile/ada", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/api/user/profile/:userName", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "linkup_http_requests_total"))
	assert.True(t, strings.Contains(w.Body.String(), "linkup_uptime_seconds"))
}
