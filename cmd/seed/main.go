package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/quickplate-service/internal/config"
	"github.com/spec-kit/quickplate-service/internal/domain"
	"github.com/spec-kit/quickplate-service/internal/observability"
	"github.com/spec-kit/quickplate-service/internal/persistence"
	"github.com/spec-kit/quickplate-service/internal/repository"
)

// Seeds the canteen menu and the default loyalty offers. Safe to re-run:
// existing rows are matched by name/title and skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.PoolHandle() == nil {
		logger.Fatal("POSTGRES_DSN is required for seeding")
	}

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	repos := repository.New(pg.PoolHandle())

	seededMeals := 0
	for _, meal := range seedMeals() {
		if _, err := repos.Meals.GetByName(ctx, meal.Name); err == nil {
			continue
		} else if err != pgx.ErrNoRows {
			logger.Fatal("lookup meal", zap.String("name", meal.Name), zap.Error(err))
		}
		m := meal
		if err := repos.Meals.Create(ctx, &m); err != nil {
			logger.Fatal("seed meal", zap.String("name", meal.Name), zap.Error(err))
		}
		seededMeals++
	}

	seededOffers := 0
	for _, offer := range seedOffers() {
		if _, err := repos.Offers.GetByTitle(ctx, offer.Title); err == nil {
			continue
		} else if err != pgx.ErrNoRows {
			logger.Fatal("lookup offer", zap.String("title", offer.Title), zap.Error(err))
		}
		o := offer
		if err := repos.Offers.Create(ctx, &o); err != nil {
			logger.Fatal("seed offer", zap.String("title", offer.Title), zap.Error(err))
		}
		seededOffers++
	}

	logger.Info("seeding complete",
		zap.Int("meals_added", seededMeals),
		zap.Int("offers_added", seededOffers))
}

func seedMeals() []domain.Meal {
	return []domain.Meal{
		{Name: "Masala Dosa", Category: domain.MealCategoryBreakfast, Price: 60, Description: "Crispy rice crepe served with coconut chutney and potato masala.", Available: true, PrepTimeMinutes: 15},
		{Name: "Idli Sambar", Category: domain.MealCategoryBreakfast, Price: 40, Description: "Steamed rice cakes served with sambar and chutney.", Available: true, PrepTimeMinutes: 10},
		{Name: "Poha", Category: domain.MealCategoryBreakfast, Price: 30, Description: "Flattened rice cooked with onions, peas, and spices.", Available: true, PrepTimeMinutes: 10},
		{Name: "Upma", Category: domain.MealCategoryBreakfast, Price: 35, Description: "Savory semolina porridge with vegetables.", Available: true, PrepTimeMinutes: 12},
		{Name: "Veg Thali", Category: domain.MealCategoryLunch, Price: 80, Description: "Complete meal with rice, roti, dal, sabzi, and curd.", Available: true, PrepTimeMinutes: 20},
		{Name: "Chole Bhature", Category: domain.MealCategoryLunch, Price: 70, Description: "Spicy chickpea curry with fried bread.", Available: true, PrepTimeMinutes: 18},
		{Name: "Rajma Chawal", Category: domain.MealCategoryLunch, Price: 65, Description: "Kidney bean curry with steamed rice.", Available: true, PrepTimeMinutes: 15},
		{Name: "Paneer Tikka", Category: domain.MealCategoryLunch, Price: 90, Description: "Grilled cottage cheese marinated in spices.", Available: true, PrepTimeMinutes: 20},
		{Name: "Dal Tadka", Category: domain.MealCategoryDinner, Price: 55, Description: "Yellow lentils tempered with cumin and garlic.", Available: true, PrepTimeMinutes: 15},
		{Name: "Palak Paneer", Category: domain.MealCategoryDinner, Price: 85, Description: "Cottage cheese in creamy spinach gravy.", Available: true, PrepTimeMinutes: 18},
		{Name: "Aloo Paratha", Category: domain.MealCategoryDinner, Price: 50, Description: "Stuffed flatbread with spiced potato filling.", Available: true, PrepTimeMinutes: 15},
		{Name: "Samosa", Category: domain.MealCategorySnacks, Price: 20, Description: "Fried pastry with savory filling of spiced potatoes and peas.", Available: true, PrepTimeMinutes: 5},
		{Name: "Vada Pav", Category: domain.MealCategorySnacks, Price: 25, Description: "Spiced potato fritter in a bun.", Available: true, PrepTimeMinutes: 8},
		{Name: "Pav Bhaji", Category: domain.MealCategorySnacks, Price: 60, Description: "Spiced vegetable mash served with buttered bread.", Available: true, PrepTimeMinutes: 15},
		{Name: "Coffee", Category: domain.MealCategorySnacks, Price: 15, Description: "Hot filter coffee.", Available: true, PrepTimeMinutes: 5},
		{Name: "Tea", Category: domain.MealCategorySnacks, Price: 10, Description: "Hot masala chai.", Available: true, PrepTimeMinutes: 5},
	}
}

func seedOffers() []domain.Offer {
	return []domain.Offer{
		{Title: "Free Coffee", Description: "Redeem points for a hot filter coffee.", PointsRequired: 15, DiscountAmount: 15, Active: true},
		{Title: "Snack Treat", Description: "A free samosa or vada pav on us.", PointsRequired: 25, DiscountAmount: 25, Active: true},
		{Title: "Thali Discount", Description: "50 off the Veg Thali.", PointsRequired: 50, DiscountAmount: 50, Active: true},
		{Title: "Full Meal", Description: "A complete meal covered by points.", PointsRequired: 100, DiscountAmount: 100, Active: true},
	}
}
