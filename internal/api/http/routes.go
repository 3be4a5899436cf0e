package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the five API route groups under r. requireAuth
// guards everything except signup, login and logout. Group roots answer
// with and without a trailing slash rather than redirecting.
func RegisterRoutes(r gin.IRouter, h *Handlers, requireAuth gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/logout", h.Logout)
	}

	userGroup := r.Group("/user", requireAuth)
	{
		userGroup.GET("/currentuser", h.CurrentUser)
		userGroup.GET("/profile/:userName", h.Profile)
		userGroup.PUT("/updateprofile", h.UpdateProfile)
		userGroup.GET("/search", h.Search)
		userGroup.GET("/suggestedusers", h.SuggestedUsers)
	}

	postGroup := r.Group("/post", requireAuth)
	{
		postGroup.POST("/create", h.CreatePost)
		postGroup.GET("/getpost", h.Feed)
		postGroup.GET("/like/:id", h.LikePost)
		postGroup.POST("/comment/:id", h.CommentPost)
	}

	connectionGroup := r.Group("/connection", requireAuth)
	{
		connectionGroup.GET("", h.ListConnections)
		connectionGroup.GET("/", h.ListConnections)
		connectionGroup.GET("/requests", h.PendingRequests)
		connectionGroup.GET("/getStatus/:userId", h.ConnectionStatus)
		connectionGroup.POST("/:userId", h.SendRequest)
		connectionGroup.PUT("/accept/:connectionId", h.AcceptRequest)
		connectionGroup.PUT("/reject/:connectionId", h.RejectRequest)
		connectionGroup.DELETE("/remove/:userId", h.RemoveConnection)
	}

	notificationGroup := r.Group("/notification", requireAuth)
	{
		notificationGroup.GET("/get", h.ListNotifications)
		notificationGroup.DELETE("/deleteone/:id", h.DeleteNotification)
		notificationGroup.DELETE("", h.ClearNotifications)
		notificationGroup.DELETE("/", h.ClearNotifications)
	}
}
