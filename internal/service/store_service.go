package service

import (
	"context"
	"errors"
	"fmt"

	"nestgirl/internal/feed"
	"nestgirl/internal/model"
	"nestgirl/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("unknown order status")
)

// StoreService covers the shop: product catalog, checkout, order handling.
type StoreService interface {
	Products(ctx context.Context) ([]model.Product, error)
	AddProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// Checkout prices the cart from the catalog, adds the delivery fee and
	// persists the order with exactly that total.
	Checkout(ctx context.Context, buyer *model.Profile, req model.CheckoutRequest) (*model.Order, error)
	OrdersForUser(ctx context.Context, phone string) ([]model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	DeleteOrder(ctx context.Context, id string) error
}

type storeService struct {
	products    repository.ProductRepository
	orders      repository.OrderRepository
	hub         *feed.Hub
	deliveryFee int64
	log         *zap.SugaredLogger
}

// NewStoreService creates a new StoreService. deliveryFee is in piasters
// and is added to every order.
func NewStoreService(products repository.ProductRepository, orders repository.OrderRepository, hub *feed.Hub, deliveryFee int64, log *zap.SugaredLogger) StoreService {
	return &storeService{
		products:    products,
		orders:      orders,
		hub:         hub,
		deliveryFee: deliveryFee,
		log:         log,
	}
}

func (s *storeService) Products(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

func (s *storeService) AddProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to add product: %w", err)
	}
	s.hub.Notify(feed.CollectionProducts)
	return product, nil
}

func (s *storeService) UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for update: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		product.Category = *req.Category
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	s.hub.Notify(feed.CollectionProducts)
	return product, nil
}

func (s *storeService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Notify(feed.CollectionProducts)
	return nil
}

func (s *storeService) Checkout(ctx context.Context, buyer *model.Profile, req model.CheckoutRequest) (*model.Order, error) {
	var items []model.OrderItem
	var total int64
	for _, line := range req.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to price cart item: %w", err)
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		items = append(items, model.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    line.Quantity,
		})
		total += product.Price * int64(line.Quantity)
	}
	total += s.deliveryFee

	order := &model.Order{
		ID:       uuid.NewString(),
		UserID:   buyer.Phone,
		UserName: buyer.Name,
		Items:    items,
		Total:    total,
		Status:   model.OrderStatusPending,
		Address:  req.Address,
		City:     req.City,
		Phone:    buyer.Phone,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	s.log.Infow("order placed", "order_id", order.ID, "user", buyer.Phone, "total", total)
	s.hub.Notify(feed.CollectionOrders)
	return order, nil
}

func (s *storeService) OrdersForUser(ctx context.Context, phone string) ([]model.Order, error) {
	orders, err := s.orders.FindByUser(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to load user orders: %w", err)
	}
	return orders, nil
}

func (s *storeService) AllOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

func (s *storeService) UpdateOrderStatus(ctx context.Context, id, status string) error {
	if !model.ValidOrderStatus(status) {
		return ErrInvalidOrderStatus
	}
	existing, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find order for status update: %w", err)
	}
	if existing == nil {
		return ErrOrderNotFound
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	s.hub.Notify(feed.CollectionOrders)
	return nil
}

func (s *storeService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.hub.Notify(feed.CollectionOrders)
	return nil
}
