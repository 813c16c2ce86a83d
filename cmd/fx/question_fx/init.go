package question_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"eatwise/internal/repositories"
	"eatwise/internal/services"
	"eatwise/pkg/logger"
)

var Module = fx.Provide(
	provideAnswerRepo,
	provideQuestionService)

func provideAnswerRepo(db *gorm.DB) repositories.AnswerRepository {
	return repositories.NewAnswerRepository(db)
}

func provideQuestionService(c services.QuestionCatalog, repo repositories.AnswerRepository, log *logger.Logger) services.QuestionServiceInterface {
	return services.NewQuestionService(c, repo, log.With("service", "question"))
}
