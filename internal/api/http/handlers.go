package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/connection"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/notification"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/post"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/user"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/auth"
	"github.com/GriffinCanCode/Linkup/backend/internal/infrastructure/media"
)

// CookieConfig controls the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// Presence reports realtime connection counts for the health endpoint
type Presence interface {
	Len() int
}

// Deps are the collaborators the handlers need
type Deps struct {
	Users         *user.Service
	Posts         *post.Service
	Connections   *connection.Service
	Notifications *notification.Service
	Tokens        *auth.Tokens
	Media         *media.Store
	Presence      Presence
	Cookie        CookieConfig
}

// Handlers contains all HTTP handlers
type Handlers struct {
	users         *user.Service
	posts         *post.Service
	connections   *connection.Service
	notifications *notification.Service
	tokens        *auth.Tokens
	media         *media.Store
	presence      Presence
	cookie        CookieConfig
	started       time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(deps Deps) *Handlers {
	return &Handlers{
		users:         deps.Users,
		posts:         deps.Posts,
		connections:   deps.Connections,
		notifications: deps.Notifications,
		tokens:        deps.Tokens,
		media:         deps.Media,
		presence:      deps.Presence,
		cookie:        deps.Cookie,
		started:       time.Now(),
	}
}

// Health handles health check
func (h *Handlers) Health(c *gin.Context) {
	online := 0
	if h.presence != nil {
		online = h.presence.Len()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     "linkup",
		"uptime":      time.Since(h.started).Round(time.Second).String(),
		"connections": online,
	})
}
