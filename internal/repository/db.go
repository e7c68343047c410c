package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the querier shared by pool-backed and transaction-scoped repositories.
// Both *pgxpool.Pool and pgx.Tx satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all store access over a single querier.
type Repositories struct {
	Users  UserRepository
	Meals  MealRepository
	Orders OrderRepository
	Offers OfferRepository
}

// New builds the repository bundle over the given querier.
func New(db DB) Repositories {
	return Repositories{
		Users:  NewUserRepository(db),
		Meals:  NewMealRepository(db),
		Orders: NewOrderRepository(db),
		Offers: NewOfferRepository(db),
	}
}

// TxManager runs a function with transaction-scoped repositories. Settlement
// mutations (balance read, balance write, order insert) go through it so they
// commit or roll back as one unit.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

type pgxTxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager returns a pgx-backed transaction manager.
func NewTxManager(pool *pgxpool.Pool) TxManager {
	return &pgxTxManager{pool: pool}
}

func (m *pgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	return pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
		return fn(ctx, New(tx))
	})
}
