package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fairyhunter13/storefront-checkout/internal/model"
)

// OrderRepository persists orders. Items, region, promo and customer are stored as JSONB
// and encoded by pgx's json codec.
type OrderRepository struct {
	pool PoolInterface
}

// NewOrderRepository creates a new OrderRepository with the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// NewOrderRepositoryWithPool creates a new OrderRepository with a custom pool interface.
func NewOrderRepositoryWithPool(pool PoolInterface) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Insert stores a new order.
func (r *OrderRepository) Insert(ctx context.Context, o *model.Order) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO orders (id, items, subtotal, shipping_cost, total, governorate, promo_code, customer, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.Items, o.Subtotal, o.ShippingCost, o.Total, o.Governorate, o.PromoCode, o.Customer, o.Status, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", o.ID, err)
	}
	return nil
}

// List returns up to limit orders, newest first.
func (r *OrderRepository) List(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT id::text, items, subtotal, shipping_cost, total, governorate, promo_code, customer, status, created_at
		FROM orders ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID,
			&o.Items,
			&o.Subtotal,
			&o.ShippingCost,
			&o.Total,
			&o.Governorate,
			&o.PromoCode,
			&o.Customer,
			&o.Status,
			&o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
