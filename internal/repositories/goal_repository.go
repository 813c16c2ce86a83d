package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eatwise/internal/models/db_models"
)

type GoalRepository interface {
	// Upsert keeps one goal per account per day.
	Upsert(ctx context.Context, goal *db_models.UserGoal) error
	FindForDay(ctx context.Context, accountID, day string) (*db_models.UserGoal, error)
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Upsert(ctx context.Context, goal *db_models.UserGoal) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"goal_text", "updated_at"}),
		}).
		Create(goal).Error
}

func (r *goalRepository) FindForDay(ctx context.Context, accountID, day string) (*db_models.UserGoal, error) {
	var goal db_models.UserGoal
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND day = ?", accountID, day).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}
