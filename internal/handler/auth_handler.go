package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educhain/educhain-server/internal/middleware"
	"github.com/educhain/educhain-server/internal/model"
	"github.com/educhain/educhain-server/internal/response"
	"github.com/educhain/educhain-server/internal/service"
	"github.com/educhain/educhain-server/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService         *service.AuthService
	notificationService *service.NotificationService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, notificationService *service.NotificationService) *AuthHandler {
	return &AuthHandler{
		authService:         authService,
		notificationService: notificationService,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Validates credentials and returns a JWT plus the user profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.LoginResponse{Token: token, User: *user})
}

// Register godoc
// POST /api/v1/auth/register
// Queues a self-service registration request for admin review. No
// account is created; admins are notified and the caller receives a
// pending acknowledgement.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	fullName := req.FirstName + " " + req.LastName
	err := h.notificationService.NotifyAdmins(c.Request.Context(),
		"Registration request",
		fullName+" ("+req.Email+") requested a "+string(req.Role)+" account.",
		model.NotificationRegistration)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, model.RegisterResponse{
		Message:     "Registration submitted. An administrator will review your request.",
		GeneratedID: "PENDING",
		FullName:    fullName,
		Role:        req.Role,
		Mobile:      req.MobileNumber,
	})
}

// GetProfile godoc
// GET /api/v1/auth/profile
// Returns the authenticated user's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateProfile godoc
// PUT /api/v1/auth/profile
// Merges profile changes into the current identity. Empty fields are
// left untouched; the session is re-persisted so it stays active.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.UpdateProfileRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), claims, req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// Logout godoc
// POST /api/v1/auth/logout
// Clears the active session; the JWT is rejected from here on.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.UserID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}
