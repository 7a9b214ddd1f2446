package handler

import (
	"errors"
	"net/http"

	"nestgirl/internal/model"
	"nestgirl/internal/service"
	"nestgirl/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles signup, login and session lifecycle requests
type AuthHandler struct {
	service service.AuthService
	log     *zap.SugaredLogger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{service: s, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRegistered) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("signup failed", "phone", req.Phone, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Registered successfully",
		"profile":       result.Profile,
		"token":         result.Token,
		"first_session": result.FirstSession,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		// The client distinguishes "not registered" from "wrong password".
		if errors.Is(err, service.ErrNotRegistered) || errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("login failed", "phone", req.Phone, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Login successful",
		"profile":       result.Profile,
		"token":         result.Token,
		"first_session": result.FirstSession,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := getAuthToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.log.Errorw("logout failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Refresh re-reads the account record and returns the current profile, so a
// returning client picks up changes made from other devices.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := getAuthToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, session.ErrLoggedOut) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session is no longer active"})
			return
		}
		h.log.Errorw("session refresh failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", authMW, h.Logout)
		authGroup.GET("/session", authMW, h.Refresh)
	}
}
