package http

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/Linkup/backend/internal/api/middleware"
	"github.com/GriffinCanCode/Linkup/backend/internal/domain/user"
)

// CurrentUser returns the caller's profile
func (h *Handlers) CurrentUser(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

// Profile returns a member's profile by user name
func (h *Handlers) Profile(c *gin.Context) {
	u, err := h.users.GetByUserName(c.Request.Context(), c.Param("userName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

// UpdateProfile edits the caller's profile. Accepts JSON or a multipart
// form with optional profileImage and coverImage files.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var upd user.ProfileUpdate

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			badRequest(c, err)
			return
		}
		if err := decodeProfileForm(form, &upd); err != nil {
			badRequest(c, err)
			return
		}
		if upd.ProfileImage, err = h.saveUpload(form, "profileImage"); err != nil {
			respondError(c, err)
			return
		}
		if upd.CoverImage, err = h.saveUpload(form, "coverImage"); err != nil {
			h.discardUploads(c, upd.ProfileImage)
			respondError(c, err)
			return
		}
	} else if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.users.UpdateProfile(c.Request.Context(), middleware.UserID(c), upd)
	if err != nil {
		h.discardUploads(c, upd.ProfileImage, upd.CoverImage)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    u,
	})
}

// Search finds members by name, user name or skill
func (h *Handlers) Search(c *gin.Context) {
	users, err := h.users.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// SuggestedUsers lists members the caller is not connected to
func (h *Handlers) SuggestedUsers(c *gin.Context) {
	users, err := h.users.Suggested(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// saveUpload stores the first file under field, if any
func (h *Handlers) saveUpload(form *multipart.Form, field string) (string, error) {
	files := form.File[field]
	if len(files) == 0 {
		return "", nil
	}
	return h.media.SaveImage(files[0])
}

// discardUploads removes files stored for a request that then failed
func (h *Handlers) discardUploads(c *gin.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := h.media.Remove(url); err != nil {
			_ = c.Error(err)
		}
	}
}

// decodeProfileForm reads profile fields from form values. List fields are
// JSON encoded; skills also accept a comma separated list.
func decodeProfileForm(form *multipart.Form, upd *user.ProfileUpdate) error {
	value := func(key string) *string {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return &v[0]
		}
		return nil
	}

	upd.FirstName = value("firstName")
	upd.LastName = value("lastName")
	upd.UserName = value("userName")
	upd.Headline = value("headline")
	upd.Location = value("location")
	upd.Gender = value("gender")

	if v := value("skills"); v != nil {
		if strings.HasPrefix(strings.TrimSpace(*v), "[") {
			if err := sonic.UnmarshalString(*v, &upd.Skills); err != nil {
				return err
			}
		} else {
			upd.Skills = strings.Split(*v, ",")
		}
	}
	if v := value("education"); v != nil {
		if err := sonic.UnmarshalString(*v, &upd.Education); err != nil {
			return err
		}
	}
	if v := value("experience"); v != nil {
		if err := sonic.UnmarshalString(*v, &upd.Experience); err != nil {
			return err
		}
	}
	return nil
}
