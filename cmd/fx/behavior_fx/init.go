package behavior_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"eatwise/internal/repositories"
	"eatwise/internal/services"
	"eatwise/pkg/logger"
)

var Module = fx.Provide(
	provideBehaviorRepo,
	provideBehaviorService)

func provideBehaviorRepo(db *gorm.DB) repositories.BehaviorRepository {
	return repositories.NewBehaviorRepository(db)
}

func provideBehaviorService(c services.BehaviorCatalog, repo repositories.BehaviorRepository, log *logger.Logger) services.BehaviorServiceInterface {
	return services.NewBehaviorService(c, repo, log.With("service", "behavior"))
}
