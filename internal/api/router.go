// Package api assembles the HTTP surface: middleware, route groups and the
// controllers behind them.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eatwise/internal/api/controllers"
	"eatwise/internal/models/db_models"
	"eatwise/pkg/middleware"
	"eatwise/pkg/utils"
)

// Controllers groups the route handlers. A nil Dashboard leaves the admin
// routes unmounted.
type Controllers struct {
	Account    *controllers.AccountController
	Question   *controllers.QuestionController
	Behavior   *controllers.BehaviorController
	Tips       *controllers.TipsController
	FoodUpdate *controllers.FoodUpdateController
	Goal       *controllers.GoalController
	Dashboard  *controllers.DashboardController
}

type RouterConfig struct {
	Production  bool
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig, issuer *utils.TokenIssuer, ctrl Controllers) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	RegisterRoutes(r, middleware.JWTAuthMiddleware(issuer), ctrl)
	return r
}

func RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc, ctrl Controllers) {
	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})
	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "Route not found")
	})

	accounts := r.Group("/accounts")
	accounts.POST("/register", ctrl.Account.Register)
	accounts.POST("/login", ctrl.Account.Login)
	accounts.POST("/forgot-password", ctrl.Account.ForgotPassword)
	accounts.POST("/verify-otp", ctrl.Account.VerifyOtp)
	accounts.POST("/reset-password", ctrl.Account.ResetPassword)
	accounts.GET("/profile-details", auth, ctrl.Account.ProfileDetails)
	accounts.PUT("/update-profile", auth, ctrl.Account.UpdateProfile)

	question := r.Group("/question")
	question.GET("/question-list", ctrl.Question.QuestionList)
	question.POST("/submit-answers", auth, ctrl.Question.SubmitAnswers)
	question.GET("/check-submission", auth, ctrl.Question.CheckSubmission)
	question.GET("/get-answers", auth, ctrl.Question.GetAnswers)
	question.GET("/export-answers", auth, ctrl.Question.ExportAnswers)

	behavior := r.Group("/behavior")
	behavior.GET("/behavior-list", ctrl.Behavior.BehaviorList)
	behavior.POST("/submit-behavior", auth, ctrl.Behavior.SubmitBehavior)
	behavior.GET("/check-behavior-submission", auth, ctrl.Behavior.CheckBehaviorSubmission)

	tips := r.Group("/tips", auth)
	tips.POST("/generate-user-tips", ctrl.Tips.GenerateUserTips)
	tips.GET("/get-user-tips", ctrl.Tips.GetUserTips)
	r.POST("/chat", auth, ctrl.Tips.Chat)

	food := r.Group("/food", auth)
	food.POST("/food-update", ctrl.FoodUpdate.PostFoodUpdate)
	food.GET("/user-food-updates", ctrl.FoodUpdate.UserFoodUpdates)
	food.GET("/food-update/:id", ctrl.FoodUpdate.FoodUpdateByID)

	goal := r.Group("/goal", auth)
	goal.POST("/submit-user-goal", ctrl.Goal.SubmitUserGoal)
	goal.GET("/get-user-goal", ctrl.Goal.GetUserGoal)

	if ctrl.Dashboard != nil {
		dashboard := r.Group("/dashboard", auth, middleware.RoleMiddleware(db_models.RoleAdmin))
		dashboard.GET("/stats", ctrl.Dashboard.GetDashboard)
	}
}
