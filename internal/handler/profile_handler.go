package handler

import (
	"errors"
	"net/http"
	"time"

	"nestgirl/internal/model"
	"nestgirl/internal/service"
	"nestgirl/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler serves the signed-in user's own profile, the wellness
// summary card and the onboarding flag.
type ProfileHandler struct {
	service  service.ProfileService
	sessions *session.Store
	log      *zap.SugaredLogger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(s service.ProfileService, sessions *session.Store, log *zap.SugaredLogger) *ProfileHandler {
	return &ProfileHandler{service: s, sessions: sessions, log: log}
}

// sessionProfile resolves the caller's profile snapshot, writing the error
// response itself when the session is gone.
func (h *ProfileHandler) sessionProfile(c *gin.Context) *model.Profile {
	token, err := getAuthToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return nil
	}
	profile, err := h.sessions.Get(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, session.ErrLoggedOut) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session is no longer active"})
			return nil
		}
		h.log.Errorw("session lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return nil
	}
	return profile
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	profile := h.sessionProfile(c)
	if profile == nil {
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	phone, err := getAuthPhone(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	profile, err := h.service.Update(c.Request.Context(), phone, req)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("profile update failed", "phone", phone, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	// Keep the session snapshot in step with the account record.
	if token, err := getAuthToken(c); err == nil {
		if _, err := h.sessions.Refresh(c.Request.Context(), token); err != nil {
			h.log.Warnw("session snapshot refresh failed", "phone", phone, "error", err)
		}
	}

	c.JSON(http.StatusOK, profile)
}

// Wellness returns today's cycle or pregnancy card for the caller.
func (h *ProfileHandler) Wellness(c *gin.Context) {
	profile := h.sessionProfile(c)
	if profile == nil {
		return
	}
	summary := h.service.Wellness(c.Request.Context(), profile, time.Now())
	c.JSON(http.StatusOK, summary)
}

// RecordPeriodStart marks today as the first day of a new period.
func (h *ProfileHandler) RecordPeriodStart(c *gin.Context) {
	phone, err := getAuthPhone(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.RecordPeriodStart(c.Request.Context(), phone, time.Now()); err != nil {
		h.log.Errorw("recording period start failed", "phone", phone, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record period start"})
		return
	}

	if token, err := getAuthToken(c); err == nil {
		if _, err := h.sessions.Refresh(c.Request.Context(), token); err != nil {
			h.log.Warnw("session snapshot refresh failed", "phone", phone, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Period start recorded"})
}

// CompleteOnboarding consumes the one-shot first-session flag. The response
// says whether the walkthrough was still pending, so replays are harmless.
func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	token, err := getAuthToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	wasFirst := h.sessions.ConsumeFirstSession(c.Request.Context(), token)
	c.JSON(http.StatusOK, gin.H{"was_first_session": wasFirst})
}

// RegisterProfileRoutes registers profile routes
func (h *ProfileHandler) RegisterProfileRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	profileGroup := rg.Group("/profile")
	profileGroup.Use(authMW)
	{
		profileGroup.GET("", h.GetMe)
		profileGroup.PUT("", h.UpdateMe)
		profileGroup.GET("/wellness", h.Wellness)
		profileGroup.POST("/period-start", h.RecordPeriodStart)
		profileGroup.POST("/onboarding/complete", h.CompleteOnboarding)
	}
}
