package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/forkful-backend/internal/service"
)

type ProfileHandler struct {
	users   *service.UserService
	uploads *service.UploadService
}

func NewProfileHandler(users *service.UserService, uploads *service.UploadService) *ProfileHandler {
	return &ProfileHandler{users: users, uploads: uploads}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch service.ProfileUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch service.PreferencesUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdatePreferences(c.Request.Context(), userID, &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateAvatar accepts either a multipart upload or a JSON body with an
// avatar URL already obtained from a previous upload.
func (h *ProfileHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if file, header, err := c.Request.FormFile("avatar"); err == nil {
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(c, err)
			return
		}
		url, err := h.uploads.SaveAvatarImage(header.Filename, data)
		if err != nil {
			respondError(c, err)
			return
		}
		user, err := h.users.UpdateAvatar(c.Request.Context(), userID, url)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	var req struct {
		Avatar string `json:"avatar" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateAvatar(c.Request.Context(), userID, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
