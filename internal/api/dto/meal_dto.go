package dto

import "github.com/spec-kit/quickplate-service/internal/domain"

// MealResponse is the wire shape of a catalog item.
type MealResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	PrepTime    int     `json:"prepTime"`
}

// AvailabilityRequest toggles a meal's availability.
type AvailabilityRequest struct {
	Available *bool `json:"available"`
}

// NewMealResponse maps a domain meal.
func NewMealResponse(meal *domain.Meal) MealResponse {
	return MealResponse{
		ID:          meal.ID,
		Name:        meal.Name,
		Category:    string(meal.Category),
		Price:       meal.Price,
		Description: meal.Description,
		Available:   meal.Available,
		PrepTime:    meal.PrepTimeMinutes,
	}
}

// NewMealListResponse maps a meal slice.
func NewMealListResponse(meals []domain.Meal) []MealResponse {
	result := make([]MealResponse, 0, len(meals))
	for i := range meals {
		result = append(result, NewMealResponse(&meals[i]))
	}
	return result
}
