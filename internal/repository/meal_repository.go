package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/quickplate-service/internal/domain"
)

// MealFilter narrows catalog listings.
type MealFilter struct {
	Category      *domain.MealCategory
	AvailableOnly bool
}

// MealRepository encapsulates catalog persistence.
type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) error
	GetByID(ctx context.Context, id string) (*domain.Meal, error)
	GetByName(ctx context.Context, name string) (*domain.Meal, error)
	List(ctx context.Context, filter MealFilter) ([]domain.Meal, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}

type mealRepository struct {
	db DB
}

// NewMealRepository instantiates repository.
func NewMealRepository(db DB) MealRepository {
	return &mealRepository{db: db}
}

const mealColumns = `id, name, category, price, description, available, prep_time_minutes`

func (r *mealRepository) Create(ctx context.Context, meal *domain.Meal) error {
	const query = `
        INSERT INTO meals (name, category, price, description, available, prep_time_minutes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`

	return r.db.QueryRow(ctx, query,
		meal.Name,
		meal.Category,
		meal.Price,
		meal.Description,
		meal.Available,
		meal.PrepTimeMinutes,
	).Scan(&meal.ID)
}

func (r *mealRepository) GetByID(ctx context.Context, id string) (*domain.Meal, error) {
	return r.fetchSingle(ctx, `SELECT `+mealColumns+` FROM meals WHERE id=$1`, id)
}

func (r *mealRepository) GetByName(ctx context.Context, name string) (*domain.Meal, error) {
	return r.fetchSingle(ctx, `SELECT `+mealColumns+` FROM meals WHERE name=$1`, name)
}

func (r *mealRepository) List(ctx context.Context, filter MealFilter) ([]domain.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM meals WHERE 1=1`
	args := []any{}

	if filter.AvailableOnly {
		query += ` AND available = TRUE`
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += ` AND category = $1`
	}
	query += ` ORDER BY category, name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Meal
	for rows.Next() {
		var meal domain.Meal
		if err := rows.Scan(
			&meal.ID,
			&meal.Name,
			&meal.Category,
			&meal.Price,
			&meal.Description,
			&meal.Available,
			&meal.PrepTimeMinutes,
		); err != nil {
			return nil, err
		}
		result = append(result, meal)
	}
	return result, rows.Err()
}

func (r *mealRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	cmd, err := r.db.Exec(ctx, `UPDATE meals SET available=$1 WHERE id=$2`, available, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *mealRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Meal, error) {
	var meal domain.Meal
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&meal.ID,
		&meal.Name,
		&meal.Category,
		&meal.Price,
		&meal.Description,
		&meal.Available,
		&meal.PrepTimeMinutes,
	); err != nil {
		return nil, err
	}
	return &meal, nil
}
