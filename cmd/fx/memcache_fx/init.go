package memcache_fx

import (
	"context"

	"go.uber.org/fx"

	config "eatwise/configs"
	"eatwise/pkg/logger"
	mem "eatwise/pkg/memcache"
)

var Module = fx.Provide(provideOTPStore)

// provideOTPStore uses Redis when REDIS_URL is set so codes survive restarts
// and are shared by every replica.
func provideOTPStore(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) (mem.OTPStore, error) {
	if cfg.RedisURL == "" {
		log.Info("OTP store: in memory")
		return mem.NewMemoryOTPStore(), nil
	}

	client, err := mem.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(client.Close))
	log.Info("OTP store: redis")
	return mem.NewRedisOTPStore(client), nil
}
