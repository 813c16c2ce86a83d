package mail_fx

import (
	"go.uber.org/fx"

	config "eatwise/configs"
	"eatwise/internal/services"
	"eatwise/pkg/logger"
)

var Module = fx.Provide(provideMailService)

func provideMailService(cfg *config.Config, log *logger.Logger) services.IMailService {
	if cfg.SMTPPassword == "" {
		log.Warn("SMTP_PASSWORD is empty; OTP emails will fail to send")
	}
	return services.NewSMTPMailService(services.SMTPConfigFrom(cfg))
}
