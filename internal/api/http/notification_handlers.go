package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/Linkup/backend/internal/api/middleware"
)

// ListNotifications returns the caller's notifications, newest first
func (h *Handlers) ListNotifications(c *gin.Context) {
	items, err := h.notifications.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": items})
}

// DeleteNotification removes one of the caller's notifications
func (h *Handlers) DeleteNotification(c *gin.Context) {
	if err := h.notifications.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification deleted",
	})
}

// ClearNotifications removes all of the caller's notifications
func (h *Handlers) ClearNotifications(c *gin.Context) {
	n, err := h.notifications.Clear(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All notifications deleted",
		"deleted": n,
	})
}
