package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/Linkup/backend/internal/api/middleware"
)

// SendRequest sends a connection request to another member
func (h *Handlers) SendRequest(c *gin.Context) {
	r, err := h.connections.Send(c.Request.Context(), middleware.UserID(c), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Connection request sent",
		"connection": r,
	})
}

// AcceptRequest accepts a pending request sent to the caller
func (h *Handlers) AcceptRequest(c *gin.Context) {
	r, err := h.connections.Accept(c.Request.Context(), middleware.UserID(c), c.Param("connectionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Connection request accepted",
		"connection": r,
	})
}

// RejectRequest rejects a pending request sent to the caller
func (h *Handlers) RejectRequest(c *gin.Context) {
	r, err := h.connections.Reject(c.Request.Context(), middleware.UserID(c), c.Param("connectionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Connection request rejected",
		"connection": r,
	})
}

// ConnectionStatus reports how the caller relates to another member
func (h *Handlers) ConnectionStatus(c *gin.Context) {
	status, err := h.connections.Status(c.Request.Context(), middleware.UserID(c), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

// RemoveConnection unlinks the caller from another member
func (h *Handlers) RemoveConnection(c *gin.Context) {
	if err := h.connections.Remove(c.Request.Context(), middleware.UserID(c), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Connection removed",
	})
}

// PendingRequests lists requests the caller has received
func (h *Handlers) PendingRequests(c *gin.Context) {
	requests, err := h.connections.Requests(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "requests": requests})
}

// ListConnections lists the caller's connections
func (h *Handlers) ListConnections(c *gin.Context) {
	users, err := h.connections.Connections(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "connections": users})
}
