package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/quickplate-service/internal/domain"
)

// OfferRepository encapsulates loyalty offer persistence.
type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) error
	GetByID(ctx context.Context, id string) (*domain.Offer, error)
	GetByTitle(ctx context.Context, title string) (*domain.Offer, error)
	ListActive(ctx context.Context) ([]domain.Offer, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type offerRepository struct {
	db DB
}

// NewOfferRepository instantiates repository.
func NewOfferRepository(db DB) OfferRepository {
	return &offerRepository{db: db}
}

const offerColumns = `id, title, description, points_required, discount_amount, active`

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	const query = `
        INSERT INTO offers (title, description, points_required, discount_amount, active)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	return r.db.QueryRow(ctx, query,
		offer.Title,
		offer.Description,
		offer.PointsRequired,
		offer.DiscountAmount,
		offer.Active,
	).Scan(&offer.ID)
}

func (r *offerRepository) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	return r.fetchSingle(ctx, `SELECT `+offerColumns+` FROM offers WHERE id=$1`, id)
}

func (r *offerRepository) GetByTitle(ctx context.Context, title string) (*domain.Offer, error) {
	return r.fetchSingle(ctx, `SELECT `+offerColumns+` FROM offers WHERE title=$1`, title)
}

func (r *offerRepository) ListActive(ctx context.Context) ([]domain.Offer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+offerColumns+` FROM offers WHERE active = TRUE ORDER BY points_required`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Offer
	for rows.Next() {
		var offer domain.Offer
		if err := rows.Scan(
			&offer.ID,
			&offer.Title,
			&offer.Description,
			&offer.PointsRequired,
			&offer.DiscountAmount,
			&offer.Active,
		); err != nil {
			return nil, err
		}
		result = append(result, offer)
	}
	return result, rows.Err()
}

func (r *offerRepository) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.db.Exec(ctx, `UPDATE offers SET active=$1 WHERE id=$2`, active, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *offerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Offer, error) {
	var offer domain.Offer
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&offer.ID,
		&offer.Title,
		&offer.Description,
		&offer.PointsRequired,
		&offer.DiscountAmount,
		&offer.Active,
	); err != nil {
		return nil, err
	}
	return &offer, nil
}
