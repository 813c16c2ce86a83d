package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eatwise/internal/models/db_models"
)

type BehaviorRepository interface {
	// ReplaceForAccount deletes the account's behaviors and inserts rows in
	// one transaction, so a resubmission never duplicates.
	ReplaceForAccount(ctx context.Context, accountID uuid.UUID, rows []db_models.UserBehavior) error
	ListByAccount(ctx context.Context, accountID string) ([]db_models.UserBehavior, error)
}

type behaviorRepository struct {
	db *gorm.DB
}

func NewBehaviorRepository(db *gorm.DB) BehaviorRepository {
	return &behaviorRepository{db: db}
}

func (r *behaviorRepository) ReplaceForAccount(ctx context.Context, accountID uuid.UUID, rows []db_models.UserBehavior) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("account_id = ?", accountID).
			Delete(&db_models.UserBehavior{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].AccountID = accountID
			rows[i].Position = i
		}
		return tx.Create(&rows).Error
	})
}

func (r *behaviorRepository) ListByAccount(ctx context.Context, accountID string) ([]db_models.UserBehavior, error) {
	var rows []db_models.UserBehavior
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("position ASC").
		Find(&rows).Error
	return rows, err
}
