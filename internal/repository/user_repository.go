package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/quickplate-service/internal/domain"
)

// UserRepository defines persistence access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetBySapID(ctx context.Context, sapID string) (*domain.User, error)
	// GetForUpdate locks the user row for the duration of the surrounding
	// transaction. Only meaningful when the repository is tx-scoped.
	GetForUpdate(ctx context.Context, id string) (*domain.User, error)
	SetLoyaltyPoints(ctx context.Context, id string, points int) error
}

type userRepository struct {
	db DB
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, sap_id, name, email, phone, photo_url, password_hash, loyalty_points, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (sap_id, name, email, phone, photo_url, password_hash, loyalty_points)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		user.SapID,
		user.Name,
		user.Email,
		user.Phone,
		user.PhotoURL,
		user.PasswordHash,
		user.LoyaltyPoints,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, phone=$3, photo_url=$4, password_hash=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.db.Exec(ctx, query,
		user.Name,
		user.Email,
		user.Phone,
		user.PhotoURL,
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetBySapID(ctx context.Context, sapID string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE sap_id=$1`, sapID)
}

func (r *userRepository) GetForUpdate(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1 FOR UPDATE`, id)
}

func (r *userRepository) SetLoyaltyPoints(ctx context.Context, id string, points int) error {
	const query = `UPDATE users SET loyalty_points=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.db.Exec(ctx, query, points, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.SapID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PhotoURL,
		&user.PasswordHash,
		&user.LoyaltyPoints,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
