package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	config "eatwise/configs"
	"eatwise/internal/repositories"
	"eatwise/internal/services"
	"eatwise/pkg/logger"
	mem "eatwise/pkg/memcache"
	"eatwise/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	answerRepo repositories.AnswerRepository,
	behaviorRepo repositories.BehaviorRepository,
	otps mem.OTPStore,
	mailService services.IMailService,
	issuer *utils.TokenIssuer,
	cfg *config.Config,
	log *logger.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, answerRepo, behaviorRepo, otps, mailService, issuer, cfg.OTPTTL, cfg.AdminEmails, log.With("service", "account"))
}
