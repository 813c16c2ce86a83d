package tips_fx

import (
	"strings"

	"go.uber.org/fx"
	"gorm.io/gorm"

	config "eatwise/configs"
	"eatwise/internal/repositories"
	"eatwise/internal/services"
	"eatwise/pkg/logger"
	"eatwise/pkg/utils"
)

var Module = fx.Provide(
	ProvideTipsGenerator,
	provideTipsRepo,
	ProvideTipsService)

// ProvideTipsGenerator picks the LLM client from LLM_PROVIDER.
func ProvideTipsGenerator(lc fx.Lifecycle, cfg *config.Config, log *logger.Logger) (utils.TipsGeneratorInterface, error) {
	provider := strings.ToLower(cfg.LLMProvider)

	var apiKey, model string
	switch provider {
	case "openai":
		apiKey, model = cfg.OpenAIAPIKey, cfg.OpenAIModel
	case "gemini":
		apiKey, model = cfg.GeminiAPIKey, cfg.GeminiModel
	}

	gen, err := utils.NewTipsGenerator(provider, apiKey, model)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(gen.Close))
	log.Info("tips generator ready", "provider", provider, "model", model)
	return gen, nil
}

func provideTipsRepo(db *gorm.DB) repositories.TipsRepository {
	return repositories.NewTipsRepository(db)
}

func ProvideTipsService(
	accountRepo repositories.AccountRepository,
	answerRepo repositories.AnswerRepository,
	behaviorRepo repositories.BehaviorRepository,
	tipsRepo repositories.TipsRepository,
	goalRepo repositories.GoalRepository,
	gen utils.TipsGeneratorInterface,
	cfg *config.Config,
	log *logger.Logger,
) services.TipsServiceInterface {
	return services.NewTipsService(accountRepo, answerRepo, behaviorRepo, tipsRepo, goalRepo, gen, strings.ToLower(cfg.LLMProvider), log.With("service", "tips"))
}
