package catalog_fx

import (
	"go.uber.org/fx"

	"eatwise/internal/catalog"
	"eatwise/internal/services"
	"eatwise/pkg/logger"
)

var Module = fx.Provide(
	provideCatalog,
	provideQuestionCatalog,
	provideBehaviorCatalog)

func provideCatalog(log *logger.Logger) (*catalog.Catalog, error) {
	c, err := catalog.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	log.Info("catalog loaded", "questions", len(c.Questions()), "behaviors", len(c.Behaviors()))
	if len(c.Questions()) == 0 {
		log.Warn("no QUESTION_<n> entries found in the environment")
	}
	return c, nil
}

func provideQuestionCatalog(c *catalog.Catalog) services.QuestionCatalog { return c }

func provideBehaviorCatalog(c *catalog.Catalog) services.BehaviorCatalog { return c }
