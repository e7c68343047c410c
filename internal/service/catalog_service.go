package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/quickplate-service/internal/domain"
	"github.com/spec-kit/quickplate-service/internal/repository"
	apperrors "github.com/spec-kit/quickplate-service/pkg/util"
)

const (
	mealsCacheKeyPrefix = "meals:"
	mealsCacheTTL       = time.Minute
)

// CatalogService serves the meal catalog with a redis read-through cache.
type CatalogService struct {
	meals  repository.MealRepository
	cache  Cache
	logger *zap.Logger
}

// NewCatalogService builds the service.
func NewCatalogService(meals repository.MealRepository, cache Cache, logger *zap.Logger) *CatalogService {
	return &CatalogService{meals: meals, cache: cache, logger: logger}
}

// ListMeals returns available meals, optionally filtered by category.
// Empty or "All" means no filter.
func (s *CatalogService) ListMeals(ctx context.Context, category string) ([]domain.Meal, error) {
	filter := repository.MealFilter{AvailableOnly: true}
	cacheKey := mealsCacheKeyPrefix + "All"

	if category != "" && category != "All" {
		cat := domain.MealCategory(category)
		if !domain.ValidMealCategory(cat) {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": category})
		}
		filter.Category = &cat
		cacheKey = mealsCacheKeyPrefix + category
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var meals []domain.Meal
			if err := json.Unmarshal([]byte(cached), &meals); err == nil {
				return meals, nil
			}
		}
	}

	meals, err := s.meals.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(meals); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(encoded), mealsCacheTTL); err != nil {
				s.logger.Debug("meal cache set failed", zap.Error(err))
			}
		}
	}
	return meals, nil
}

// GetMeal returns a single catalog item.
func (s *CatalogService) GetMeal(ctx context.Context, id string) (*domain.Meal, error) {
	meal, err := s.meals.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("meal", map[string]any{"meal_id": id})
		}
		return nil, err
	}
	return meal, nil
}

// SetAvailability toggles the availability flag, the only mutation meals
// support after seeding, and busts the listing cache.
func (s *CatalogService) SetAvailability(ctx context.Context, id string, available bool) (*domain.Meal, error) {
	if err := s.meals.SetAvailability(ctx, id, available); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("meal", map[string]any{"meal_id": id})
		}
		return nil, err
	}

	if s.cache != nil {
		keys := []string{mealsCacheKeyPrefix + "All"}
		for _, cat := range []domain.MealCategory{
			domain.MealCategoryBreakfast,
			domain.MealCategoryLunch,
			domain.MealCategoryDinner,
			domain.MealCategorySnacks,
		} {
			keys = append(keys, mealsCacheKeyPrefix+string(cat))
		}
		if err := s.cache.Del(ctx, keys...); err != nil {
			s.logger.Debug("meal cache invalidation failed", zap.Error(err))
		}
	}

	return s.GetMeal(ctx, id)
}
