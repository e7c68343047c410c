package domain

// MealCategory enumerates the canteen menu sections.
type MealCategory string

const (
	MealCategoryBreakfast MealCategory = "Breakfast"
	MealCategoryLunch     MealCategory = "Lunch"
	MealCategoryDinner    MealCategory = "Dinner"
	MealCategorySnacks    MealCategory = "Snacks"
)

// ValidMealCategory reports whether the label is a defined menu section.
func ValidMealCategory(category MealCategory) bool {
	switch category {
	case MealCategoryBreakfast, MealCategoryLunch, MealCategoryDinner, MealCategorySnacks:
		return true
	}
	return false
}

// Meal is a catalog item. Immutable once seeded except for availability.
type Meal struct {
	ID              string
	Name            string
	Category        MealCategory
	Price           float64
	Description     string
	Available       bool
	PrepTimeMinutes int
}
