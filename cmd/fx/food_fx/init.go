package food_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"eatwise/internal/repositories"
	"eatwise/internal/services"
	"eatwise/pkg/logger"
)

var Module = fx.Provide(
	provideFoodUpdateRepo,
	provideFoodUpdateService)

func provideFoodUpdateRepo(db *gorm.DB) repositories.FoodUpdateRepository {
	return repositories.NewFoodUpdateRepository(db)
}

func provideFoodUpdateService(repo repositories.FoodUpdateRepository, log *logger.Logger) services.FoodUpdateServiceInterface {
	return services.NewFoodUpdateService(repo, log.With("service", "food_update"))
}
