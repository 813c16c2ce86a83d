package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"eatwise/cmd/fx/account_fx"
	"eatwise/cmd/fx/behavior_fx"
	"eatwise/cmd/fx/catalog_fx"
	"eatwise/cmd/fx/config_fx"
	"eatwise/cmd/fx/controllers_fx"
	"eatwise/cmd/fx/dashboard_fx"
	"eatwise/cmd/fx/db_fx"
	"eatwise/cmd/fx/food_fx"
	"eatwise/cmd/fx/goal_fx"
	"eatwise/cmd/fx/mail_fx"
	"eatwise/cmd/fx/memcache_fx"
	"eatwise/cmd/fx/question_fx"
	"eatwise/cmd/fx/tips_fx"
	config "eatwise/configs"
	"eatwise/internal/api"
	"eatwise/internal/api/controllers"
	"eatwise/pkg/logger"
	"eatwise/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.WithLogger(func(log *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.SugaredLogger.Desugar()}
		}),
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		catalog_fx.Module,
		account_fx.Module,
		question_fx.Module,
		behavior_fx.Module,
		tips_fx.Module,
		food_fx.Module,
		goal_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *logger.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Info("Starting HTTP server", "addr", srv.Addr, "env", cfg.Environment)
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	issuer *utils.TokenIssuer,
	accountController *controllers.AccountController,
	questionController *controllers.QuestionController,
	behaviorController *controllers.BehaviorController,
	tipsController *controllers.TipsController,
	foodUpdateController *controllers.FoodUpdateController,
	goalController *controllers.GoalController,
	dashboardController *controllers.DashboardController) *gin.Engine {

	return api.NewRouter(api.RouterConfig{
		Production:  cfg.IsProduction(),
		CORSOrigins: cfg.CORSOrigins,
	}, issuer, api.Controllers{
		Account:    accountController,
		Question:   questionController,
		Behavior:   behaviorController,
		Tips:       tipsController,
		FoodUpdate: foodUpdateController,
		Goal:       goalController,
		Dashboard:  dashboardController,
	})
}
