package handler

import (
	"context"
	"net/http"

	"nestgirl/internal/feed"
	"nestgirl/internal/model"
	"nestgirl/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ArticleHandler serves the read-only "nest corner" article sections.
type ArticleHandler struct {
	service service.ArticleService
	hub     *feed.Hub
	log     *zap.SugaredLogger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(s service.ArticleService, hub *feed.Hub, log *zap.SugaredLogger) *ArticleHandler {
	return &ArticleHandler{service: s, hub: hub, log: log}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !model.ValidArticleCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown article category"})
		return
	}

	articles, err := h.service.List(c.Request.Context(), category)
	if err != nil {
		h.log.Errorw("loading articles failed", "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load articles"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) LiveArticles(c *gin.Context) {
	category := c.Query("category")
	streamSnapshots(c, h.hub, feed.CollectionArticles, func(ctx context.Context) (any, error) {
		return h.service.List(ctx, category)
	})
}

// RegisterArticleRoutes registers article routes
func (h *ArticleHandler) RegisterArticleRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	articles := rg.Group("/articles")
	articles.Use(authMW)
	{
		articles.GET("", h.GetArticles)
		articles.GET("/live", h.LiveArticles)
	}
}
