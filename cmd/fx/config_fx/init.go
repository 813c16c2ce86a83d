package config_fx

import (
	"go.uber.org/fx"

	config "eatwise/configs"
	"eatwise/pkg/logger"
	"eatwise/pkg/utils"
)

var Module = fx.Provide(
	config.Load,
	provideLogger,
	provideTokenIssuer)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*logger.Logger, error) {
	mode := "development"
	if cfg.IsProduction() {
		mode = "production"
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(log.Sync))
	return log, nil
}

func provideTokenIssuer(cfg *config.Config, log *logger.Logger) *utils.TokenIssuer {
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty; tokens are signed with an empty key")
	}
	return utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
}
