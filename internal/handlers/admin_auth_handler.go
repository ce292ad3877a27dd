package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/laddalodge/booking-backend/internal/config"
	"github.com/laddalodge/booking-backend/pkg/jwt"
)

// AdminAuthHandler handles admin authentication HTTP requests. There is a
// single back-office account configured through the environment.
type AdminAuthHandler struct {
	admin      config.AdminConfig
	jwtService *jwt.Service
	expiresIn  int
	logger     *logrus.Logger
}

// NewAdminAuthHandler creates a new admin auth handler
func NewAdminAuthHandler(admin config.AdminConfig, jwtService *jwt.Service, accessExpirySeconds int, logger *logrus.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{
		admin:      admin,
		jwtService: jwtService,
		expiresIn:  accessExpirySeconds,
		logger:     logger,
	}
}

// LoginRequest represents the admin login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the admin login response
type LoginResponse struct {
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in_seconds"`
}

// RefreshRequest represents the token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login handles POST /api/v1/admin/login
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	if req.Username != h.admin.Username ||
		bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(req.Password)) != nil {
		h.logger.WithFields(logrus.Fields{
			"username": req.Username,
			"ip":       c.ClientIP(),
		}).Warn("Admin login failed")
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid username or password",
		})
		return
	}

	sessionID := uuid.New()

	accessToken, err := h.jwtService.GenerateAccessToken(sessionID, req.Username)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate access token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create session",
		})
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(sessionID, req.Username)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate refresh token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create session",
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"username":   req.Username,
		"session_id": sessionID,
	}).Info("Admin login successful")

	c.JSON(http.StatusOK, LoginResponse{
		Message:      "Login successful",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    h.expiresIn,
	})
}

// Refresh handles POST /api/v1/admin/refresh
func (h *AdminAuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid request body",
		})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		h.logger.WithError(err).Warn("Token refresh failed")
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Invalid or expired refresh token",
		})
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(claims.SessionID, claims.Username)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate access token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to refresh session",
		})
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(claims.SessionID, claims.Username)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate refresh token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to refresh session",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message:      "Token refreshed",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    h.expiresIn,
	})
}
