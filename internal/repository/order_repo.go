package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"nestgirl/internal/model"

	"github.com/jackc/pgx/v5"
)

// OrderRepository defines operations for checkout orders. Items are stored
// as a JSONB document, mirroring the original document-store layout.
type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByUser(ctx context.Context, phone string) ([]model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type orderRepository struct {
	db DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	sql := `INSERT INTO orders (id, user_id, user_name, items, total, status, address, city, phone)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created_at`
	err = r.db.QueryRow(ctx, sql, o.ID, o.UserID, o.UserName, items, o.Total, o.Status, o.Address, o.City, o.Phone).Scan(&o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	o := &model.Order{}
	var items []byte
	if err := row.Scan(&o.ID, &o.UserID, &o.UserName, &items, &o.Total, &o.Status, &o.Address, &o.City, &o.Phone, &o.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	return o, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	sql := `SELECT id, user_id, user_name, items, total, status, address, city, phone, created_at FROM orders WHERE id = $1`
	o, err := scanOrder(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	return o, nil
}

func (r *orderRepository) findMany(ctx context.Context, sql string, args ...any) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return orders, nil
}

func (r *orderRepository) FindByUser(ctx context.Context, phone string) ([]model.Order, error) {
	sql := `SELECT id, user_id, user_name, items, total, status, address, city, phone, created_at
            FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.findMany(ctx, sql, phone)
}

func (r *orderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	sql := `SELECT id, user_id, user_name, items, total, status, address, city, phone, created_at
            FROM orders ORDER BY created_at DESC`
	return r.findMany(ctx, sql)
}

// UpdateStatus sets the order status. Any known status may be set at any
// time; the pending -> shipped -> delivered progression is not enforced.
func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	sql := `UPDATE orders SET status = $1 WHERE id = $2`
	tag, err := r.db.Exec(ctx, sql, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order not found for status update")
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	sql := `DELETE FROM orders WHERE id = $1`
	tag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order not found for deletion")
	}
	return nil
}
