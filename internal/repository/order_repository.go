package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/quickplate-service/internal/domain"
)

// OrderRepository encapsulates order persistence. Line items are embedded in
// the order row as JSONB rather than normalized into a child table.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type orderRepository struct {
	db DB
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(db DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	const query = `
        INSERT INTO orders (external_key, user_id, items, total, status, pickup_time, payment_method)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		order.ExternalKey,
		order.UserID,
		items,
		order.Total,
		order.Status,
		order.PickupTime,
		order.PaymentMethod,
	).Scan(&order.ID, &order.CreatedAt)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT id, external_key, user_id, items, total, status, pickup_time, payment_method, created_at
        FROM orders WHERE id=$1`

	var order domain.Order
	var items []byte
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.ExternalKey,
		&order.UserID,
		&items,
		&order.Total,
		&order.Status,
		&order.PickupTime,
		&order.PaymentMethod,
		&order.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Order, error) {
	query := `
        SELECT id, external_key, user_id, items, total, status, pickup_time, payment_method, created_at
        FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		var items []byte
		if err := rows.Scan(
			&order.ID,
			&order.ExternalKey,
			&order.UserID,
			&items,
			&order.Total,
			&order.Status,
			&order.PickupTime,
			&order.PaymentMethod,
			&order.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE orders SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
