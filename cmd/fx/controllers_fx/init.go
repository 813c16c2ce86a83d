package controllers_fx

import (
	"go.uber.org/fx"

	"eatwise/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewQuestionController),
	fx.Provide(controllers.NewBehaviorController),
	fx.Provide(controllers.NewTipsController),
	fx.Provide(controllers.NewFoodUpdateController),
	fx.Provide(controllers.NewGoalController),
	fx.Provide(controllers.NewDashboardController))
