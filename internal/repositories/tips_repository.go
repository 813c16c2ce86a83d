package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eatwise/internal/models/db_models"
)

type TipsRepository interface {
	// Upsert keeps one row per account per day.
	Upsert(ctx context.Context, tip *db_models.UserTip) error
	FindLatest(ctx context.Context, accountID string) (*db_models.UserTip, error)
}

type tipsRepository struct {
	db *gorm.DB
}

func NewTipsRepository(db *gorm.DB) TipsRepository {
	return &tipsRepository{db: db}
}

func (r *tipsRepository) Upsert(ctx context.Context, tip *db_models.UserTip) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"tips_text", "provider", "updated_at"}),
		}).
		Create(tip).Error
}

func (r *tipsRepository) FindLatest(ctx context.Context, accountID string) (*db_models.UserTip, error) {
	var tip db_models.UserTip
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("day DESC").
		First(&tip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tip, nil
}
