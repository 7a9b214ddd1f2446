package handler

import (
	"context"
	"errors"
	"net/http"

	"nestgirl/internal/feed"
	"nestgirl/internal/model"
	"nestgirl/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler groups the console endpoints: registered users, full order
// management, and catalog and article editing. Every route here sits behind
// the admin role middleware.
type AdminHandler struct {
	profiles service.ProfileService
	store    service.StoreService
	articles service.ArticleService
	hub      *feed.Hub
	log      *zap.SugaredLogger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(profiles service.ProfileService, store service.StoreService, articles service.ArticleService, hub *feed.Hub, log *zap.SugaredLogger) *AdminHandler {
	return &AdminHandler{profiles: profiles, store: store, articles: articles, hub: hub, log: log}
}

// --- Users ---

func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.profiles.All(c.Request.Context())
	if err != nil {
		h.log.Errorw("listing users failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) LiveUsers(c *gin.Context) {
	streamSnapshots(c, h.hub, feed.CollectionUsers, func(ctx context.Context) (any, error) {
		return h.profiles.All(ctx)
	})
}

// --- Orders ---

func (h *AdminHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.store.AllOrders(c.Request.Context())
	if err != nil {
		h.log.Errorw("listing orders failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) LiveOrders(c *gin.Context) {
	streamSnapshots(c, h.hub, feed.CollectionOrders, func(ctx context.Context) (any, error) {
		return h.store.AllOrders(ctx)
	})
}

// UpdateOrderStatus sets an order to any of the known statuses. Transitions
// are unrestricted, so a delivered order can go back to pending.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.store.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.log.Errorw("updating order status failed", "order", c.Param("id"), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}

func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	if err := h.store.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("deleting order failed", "order", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// --- Products ---

func (h *AdminHandler) AddProduct(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	product, err := h.store.AddProduct(c.Request.Context(), req)
	if err != nil {
		h.log.Errorw("adding product failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	product, err := h.store.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("updating product failed", "product", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.store.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("deleting product failed", "product", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// --- Articles ---

func (h *AdminHandler) AddArticle(c *gin.Context) {
	var req model.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	article, err := h.articles.Create(c.Request.Context(), req)
	if err != nil {
		h.log.Errorw("adding article failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add article"})
		return
	}
	c.JSON(http.StatusCreated, article)
}

func (h *AdminHandler) UpdateArticle(c *gin.Context) {
	var req model.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	article, err := h.articles.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("updating article failed", "article", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	if err := h.articles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("deleting article failed", "article", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}

// RegisterAdminRoutes registers admin console routes
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(authMW)
	admin.Use(adminMW)
	{
		admin.GET("/users", h.GetUsers)
		admin.GET("/users/live", h.LiveUsers)

		admin.GET("/orders", h.GetAllOrders)
		admin.GET("/orders/live", h.LiveOrders)
		admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		admin.DELETE("/orders/:id", h.DeleteOrder)

		admin.POST("/products", h.AddProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)

		admin.POST("/articles", h.AddArticle)
		admin.PUT("/articles/:id", h.UpdateArticle)
		admin.DELETE("/articles/:id", h.DeleteArticle)
	}
}
