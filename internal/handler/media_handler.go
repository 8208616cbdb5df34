package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educhain/educhain-server/internal/middleware"
	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/response"
	"github.com/educhain/educhain-server/internal/service"
)

// MediaHandler handles avatar upload endpoints.
type MediaHandler struct {
	mediaService *service.MediaService
	authService  *service.AuthService
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(mediaService *service.MediaService, authService *service.AuthService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, authService: authService}
}

// UploadAvatar godoc
// POST /api/v1/media/avatar
// Uploads an avatar image, stores it (Cloudinary or local disk) and
// attaches the URL to the caller's profile.
func (h *MediaHandler) UploadAvatar(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	url, err := h.mediaService.StoreAvatar(data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFile):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusBadGateway, response.ErrUploadFailed)
		}
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), claims, model.UpdateProfileRequest{Avatar: url})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": url, "user": user})
}
