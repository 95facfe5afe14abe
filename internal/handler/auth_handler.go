package handler

import (
	"errors"
	"log"
	"net/http"

	"auth_service/internal/model"
	"auth_service/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login and token refresh requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// requestURL reconstructs the URL of the current request; it becomes the
// issuer claim of tokens minted by this endpoint.
func requestURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.Path
}

// Login authenticates a credential pair and returns a Session. All
// authentication failures collapse to one generic 400 so callers cannot
// tell a missing account from a wrong password; the specific cause is
// only logged.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.Username, req.Password, requestURL(c))
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) ||
			errors.Is(err, service.ErrAccountInactive) ||
			errors.Is(err, service.ErrBadCredentials) {
			log.Printf("Login rejected for %s: %v", req.Username, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		log.Printf("Error during login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, session)
}

// Refresh exchanges a valid refresh token for a fresh access token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	session, err := h.service.Refresh(c.Request.Context(), req.Token, requestURL(c))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) || errors.Is(err, service.ErrAccountNotFound) {
			log.Printf("Refresh rejected: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
			return
		}
		log.Printf("Error during refresh: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
		return
	}

	c.JSON(http.StatusOK, session)
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}
