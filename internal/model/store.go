package model

import "time"

// Order status values. The admin console moves orders forward through
// pending -> shipped -> delivered, but any state may be set at any time;
// the progression is a UI convention, not a state machine.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// Product is a store item, managed only by administrators.
// Prices are in piasters (1 JOD = 100).
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProductRequest is the admin body for adding a product.
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

// UpdateProductRequest supports partial product edits.
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Price       *int64  `json:"price,omitempty" binding:"omitempty,gt=0"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// OrderItem is a line in an order. ProductName and UnitPrice are snapshots
// taken at checkout so later product edits do not rewrite order history.
type OrderItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

// Order is a checkout record. Total includes the delivery fee and is the
// exact value computed at checkout time.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"` // buyer's phone
	UserName  string      `json:"user_name"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
	Status    string      `json:"status"`
	Address   string      `json:"address"`
	City      string      `json:"city"`
	Phone     string      `json:"phone"`
	CreatedAt time.Time   `json:"created_at"`
}

// CheckoutItem is one cart line in a checkout request.
type CheckoutItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest is the body for placing an order.
type CheckoutRequest struct {
	Items   []CheckoutItem `json:"items" binding:"required,min=1,dive"`
	Address string         `json:"address" binding:"required"`
	City    string         `json:"city" binding:"required"`
}
