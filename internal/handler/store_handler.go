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

// StoreHandler serves the product catalog, checkout and the caller's own
// orders. Catalog and order management for admins live in AdminHandler.
type StoreHandler struct {
	service  service.StoreService
	sessions *session.Store
	hub      *feed.Hub
	log      *zap.SugaredLogger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(s service.StoreService, sessions *session.Store, hub *feed.Hub, log *zap.SugaredLogger) *StoreHandler {
	return &StoreHandler{service: s, sessions: sessions, hub: hub, log: log}
}

func (h *StoreHandler) GetProducts(c *gin.Context) {
	products, err := h.service.Products(c.Request.Context())
	if err != nil {
		h.log.Errorw("loading products failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *StoreHandler) LiveProducts(c *gin.Context) {
	streamSnapshots(c, h.hub, feed.CollectionProducts, func(ctx context.Context) (any, error) {
		return h.service.Products(ctx)
	})
}

func (h *StoreHandler) Checkout(c *gin.Context) {
	token, err := getAuthToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	buyer, err := h.sessions.Get(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, session.ErrLoggedOut) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session is no longer active"})
			return
		}
		h.log.Errorw("session lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	order, err := h.service.Checkout(c.Request.Context(), buyer, req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("checkout failed", "phone", buyer.Phone, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *StoreHandler) GetMyOrders(c *gin.Context) {
	phone, err := getAuthPhone(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	orders, err := h.service.OrdersForUser(c.Request.Context(), phone)
	if err != nil {
		h.log.Errorw("loading orders failed", "phone", phone, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// RegisterStoreRoutes registers store routes
func (h *StoreHandler) RegisterStoreRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	store := rg.Group("/store")
	store.Use(authMW)
	{
		store.GET("/products", h.GetProducts)
		store.GET("/products/live", h.LiveProducts)
		store.POST("/checkout", h.Checkout)
		store.GET("/orders", h.GetMyOrders)
	}
}
