package goal_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"eatwise/internal/repositories"
	"eatwise/internal/services"
	"eatwise/pkg/logger"
)

var Module = fx.Provide(
	provideGoalRepo,
	provideGoalService)

func provideGoalRepo(db *gorm.DB) repositories.GoalRepository {
	return repositories.NewGoalRepository(db)
}

// provideGoalService waits for in-flight tip refreshes on shutdown.
func provideGoalService(
	lc fx.Lifecycle,
	goalRepo repositories.GoalRepository,
	tips services.TipsServiceInterface,
	log *logger.Logger,
) services.GoalServiceInterface {
	svc := services.NewGoalService(goalRepo, tips, log.With("service", "goal"))
	lc.Append(fx.StopHook(svc.Wait))
	return svc
}
