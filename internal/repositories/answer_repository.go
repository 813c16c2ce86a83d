package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eatwise/internal/models/db_models"
)

type AnswerRepository interface {
	// Upsert stores the account's answers, replacing any earlier submission.
	Upsert(ctx context.Context, answer *db_models.QuestionAnswer) error
	FindByAccount(ctx context.Context, accountID string) (*db_models.QuestionAnswer, error)
	ExistsForAccount(ctx context.Context, accountID string) (bool, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Upsert(ctx context.Context, answer *db_models.QuestionAnswer) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"question_data", "updated_at", "deleted_at"}),
		}).
		Create(answer).Error
}

func (r *answerRepository) FindByAccount(ctx context.Context, accountID string) (*db_models.QuestionAnswer, error) {
	var answer db_models.QuestionAnswer
	err := r.db.WithContext(ctx).First(&answer, "account_id = ?", accountID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) ExistsForAccount(ctx context.Context, accountID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db_models.QuestionAnswer{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count > 0, err
}
