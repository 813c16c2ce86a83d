package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"eatwise/internal/models/db_models"
)

type FoodUpdateRepository interface {
	Insert(ctx context.Context, update *db_models.FoodUpdate) error
	// ListByAccount returns the newest entries first.
	ListByAccount(ctx context.Context, accountID string) ([]db_models.FoodUpdate, error)
	FindById(ctx context.Context, id string) (*db_models.FoodUpdate, error)
}

type foodUpdateRepository struct {
	db *gorm.DB
}

func NewFoodUpdateRepository(db *gorm.DB) FoodUpdateRepository {
	return &foodUpdateRepository{db: db}
}

func (r *foodUpdateRepository) Insert(ctx context.Context, update *db_models.FoodUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *foodUpdateRepository) ListByAccount(ctx context.Context, accountID string) ([]db_models.FoodUpdate, error) {
	var updates []db_models.FoodUpdate
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Order("id").
		Find(&updates).Error
	return updates, err
}

func (r *foodUpdateRepository) FindById(ctx context.Context, id string) (*db_models.FoodUpdate, error) {
	var update db_models.FoodUpdate
	err := r.db.WithContext(ctx).First(&update, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &update, nil
}
