package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/Linkup/backend/internal/api/middleware"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/post"
)

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreatePost publishes a post from a JSON body or a multipart form with an
// optional image file.
func (h *Handlers) CreatePost(c *gin.Context) {
	in := post.CreateInput{AuthorID: middleware.UserID(c)}

	if form, err := c.MultipartForm(); err == nil {
		if v := form.Value["description"]; len(v) > 0 {
			in.Description = v[0]
		}
		if in.Image, err = h.saveUpload(form, "image"); err != nil {
			respondError(c, err)
			return
		}
	} else {
		var req struct {
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		in.Description = req.Description
	}

	p, err := h.posts.Create(c.Request.Context(), in)
	if err != nil {
		h.discardUploads(c, in.Image)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Post created successfully",
		"post":    p,
	})
}

// Feed returns the newest posts
func (h *Handlers) Feed(c *gin.Context) {
	posts, err := h.posts.Feed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts})
}

// LikePost toggles the caller's like on a post
func (h *Handlers) LikePost(c *gin.Context) {
	update, err := h.posts.ToggleLike(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "likes": update.Likes})
}

// CommentPost adds a comment to a post
func (h *Handlers) CommentPost(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	update, err := h.posts.Comment(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Comment added successfully",
		"comment": update.Comments,
	})
}
