package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"rp_admin_backend/internal/middleware"
	"rp_admin_backend/internal/services"
	"rp_admin_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// LoginUser handles user login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "LoginUser", err)
		return
	}

	authResp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.LogWarn(err, "LoginUser: rejected login", map[string]interface{}{"username": req.Username})
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password", err.Error()))
			return
		}
		utils.LogError(err, "LoginUser: Error from authService.Login")
		utils.RespondInternalError(c, "Failed to login", err)
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// RegisterUser creates a dashboard account. Admin only.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req services.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "RegisterUser", err)
		return
	}

	user, err := h.authService.RegisterUser(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Username already exists", err.Error()))
		case errors.Is(err, services.ErrInvalidRole), errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, "Invalid user", err.Error())
		default:
			utils.LogError(err, "RegisterUser: Error from authService.RegisterUser")
			utils.RespondInternalError(c, "Failed to register user", err)
		}
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetCurrentUser retrieves the profile of the currently authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", "Missing user ID in context"))
		return
	}

	user, err := h.authService.GetUserProfile(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User profile not found", err.Error()))
			return
		}
		utils.LogError(err, "GetCurrentUser: Error from authService.GetUserProfile for userID "+strconv.FormatInt(userID, 10))
		utils.RespondInternalError(c, "Failed to retrieve user profile", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
