package handler

import (
	"context"
	"errors"
	"net/http"

	"nestgirl/internal/feed"
	"nestgirl/internal/model"
	"nestgirl/internal/service"
	"nestgirl/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommunityHandler serves the shared community feed.
type CommunityHandler struct {
	service  service.CommunityService
	sessions *session.Store
	hub      *feed.Hub
	log      *zap.SugaredLogger
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(s service.CommunityService, sessions *session.Store, hub *feed.Hub, log *zap.SugaredLogger) *CommunityHandler {
	return &CommunityHandler{service: s, sessions: sessions, hub: hub, log: log}
}

func (h *CommunityHandler) GetFeed(c *gin.Context) {
	posts, err := h.service.Feed(c.Request.Context())
	if err != nil {
		h.log.Errorw("loading feed failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// LiveFeed streams the full post list on every change.
func (h *CommunityHandler) LiveFeed(c *gin.Context) {
	streamSnapshots(c, h.hub, feed.CollectionPosts, func(ctx context.Context) (any, error) {
		return h.service.Feed(ctx)
	})
}

func (h *CommunityHandler) Publish(c *gin.Context) {
	token, err := getAuthToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	author, err := h.sessions.Get(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, session.ErrLoggedOut) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session is no longer active"})
			return
		}
		h.log.Errorw("session lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}

	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	post, err := h.service.Publish(c.Request.Context(), author, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPost) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("publishing post failed", "phone", author.Phone, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish post"})
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ToggleLike flips the caller's like on a post and returns the new like set.
func (h *CommunityHandler) ToggleLike(c *gin.Context) {
	phone, err := getAuthPhone(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	likes, err := h.service.ToggleLike(c.Request.Context(), c.Param("id"), phone)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("toggling like failed", "phone", phone, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *CommunityHandler) DeletePost(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("deleting post failed", "post", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// RegisterCommunityRoutes registers community routes. Deletion is an admin
// power, everything else needs only a valid session.
func (h *CommunityHandler) RegisterCommunityRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	posts := rg.Group("/community/posts")
	posts.Use(authMW)
	{
		posts.GET("", h.GetFeed)
		posts.GET("/live", h.LiveFeed)
		posts.POST("", h.Publish)
		posts.POST("/:id/like", h.ToggleLike)
		posts.DELETE("/:id", adminMW, h.DeletePost)
	}
}
