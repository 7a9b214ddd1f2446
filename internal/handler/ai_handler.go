package handler

import (
	"errors"
	"net/http"

	"nestgirl/internal/ai"
	"nestgirl/internal/model"
	"nestgirl/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIHandler serves the assistant features: the daily greeting, meal plan
// generation and the counseling chat. All three degrade to fixed fallbacks
// inside the ai package, so these endpoints never surface model errors.
type AIHandler struct {
	assistant *ai.Assistant
	sessions  *session.Store
	log       *zap.SugaredLogger
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(assistant *ai.Assistant, sessions *session.Store, log *zap.SugaredLogger) *AIHandler {
	return &AIHandler{assistant: assistant, sessions: sessions, log: log}
}

func (h *AIHandler) caller(c *gin.Context) *model.Profile {
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

func (h *AIHandler) Greeting(c *gin.Context) {
	profile := h.caller(c)
	if profile == nil {
		return
	}
	greeting := h.assistant.Greeting(c.Request.Context(), profile)
	c.JSON(http.StatusOK, gin.H{"greeting": greeting})
}

func (h *AIHandler) MealPlan(c *gin.Context) {
	profile := h.caller(c)
	if profile == nil {
		return
	}

	var req struct {
		Goal string `json:"goal" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	plan := h.assistant.MealPlan(c.Request.Context(), profile, req.Goal)
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

func (h *AIHandler) Chat(c *gin.Context) {
	profile := h.caller(c)
	if profile == nil {
		return
	}

	var req struct {
		Message string    `json:"message" binding:"required"`
		History []ai.Turn `json:"history"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reply := h.assistant.Chat(c.Request.Context(), profile, req.Message, req.History)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// RegisterAIRoutes registers assistant routes
func (h *AIHandler) RegisterAIRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	assistant := rg.Group("/assistant")
	assistant.Use(authMW)
	{
		assistant.GET("/greeting", h.Greeting)
		assistant.POST("/meal-plan", h.MealPlan)
		assistant.POST("/chat", h.Chat)
	}
}
