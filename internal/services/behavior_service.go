package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"eatwise/internal/models/db_models"
	"eatwise/internal/models/response_models"
	"eatwise/internal/repositories"
	"eatwise/internal/survey"
	"eatwise/pkg/logger"
	"eatwise/pkg/utils"
)

type BehaviorCatalog interface {
	Behaviors() []survey.Behavior
	Behavior(id int) (survey.Behavior, bool)
}

type BehaviorServiceInterface interface {
	ListBehaviors(ctx context.Context) []survey.Behavior
	SubmitBehaviors(ctx context.Context, accountID string, items []survey.BehaviorItem) error
	GetUserBehaviors(ctx context.Context, accountID string) ([]response_models.UserBehaviorResponse, error)
}

type BehaviorService struct {
	catalog      BehaviorCatalog
	behaviorRepo repositories.BehaviorRepository
	log          *logger.Logger
}

func NewBehaviorService(catalog BehaviorCatalog, behaviorRepo repositories.BehaviorRepository, log *logger.Logger) BehaviorServiceInterface {
	return &BehaviorService{
		catalog:      catalog,
		behaviorRepo: behaviorRepo,
		log:          log,
	}
}

func (s *BehaviorService) ListBehaviors(ctx context.Context) []survey.Behavior {
	return s.catalog.Behaviors()
}

// SubmitBehaviors replaces the account's selection. Between one and
// survey.MaxHighPriority entries must be high priority.
func (s *BehaviorService) SubmitBehaviors(ctx context.Context, accountID string, items []survey.BehaviorItem) error {
	if len(items) == 0 {
		return utils.ErrEmptyBehaviorList
	}
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return utils.ErrUnauthorized
	}

	seen := make(map[int]bool, len(items))
	high := 0
	rows := make([]db_models.UserBehavior, 0, len(items))
	for _, item := range items {
		b, ok := s.catalog.Behavior(item.BehaviorID)
		if !ok {
			return fmt.Errorf("%w: %d", utils.ErrBehaviorNotFound, item.BehaviorID)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: behavior %d listed twice", utils.ErrInvalidBehaviors, b.ID)
		}
		seen[b.ID] = true
		if item.HighPriority {
			high++
		}
		rows = append(rows, db_models.UserBehavior{
			BehaviorID:    b.ID,
			BehaviorTitle: b.BehaviorTitle,
			FirstPriority: item.FirstPriority,
			HighPriority:  item.HighPriority,
		})
	}
	if high == 0 || high > survey.MaxHighPriority {
		return fmt.Errorf("%w: %d high priority behaviors, want 1 to %d", utils.ErrInvalidBehaviors, high, survey.MaxHighPriority)
	}

	if err := s.behaviorRepo.ReplaceForAccount(ctx, accID, rows); err != nil {
		s.log.Error("store behaviors failed", "account_id", accountID, "error", err)
		return utils.ErrDatabaseError
	}
	s.log.Info("behaviors submitted", "account_id", accountID, "count", len(rows), "high_priority", high)
	return nil
}

func (s *BehaviorService) GetUserBehaviors(ctx context.Context, accountID string) ([]response_models.UserBehaviorResponse, error) {
	rows, err := s.behaviorRepo.ListByAccount(ctx, accountID)
	if err != nil {
		s.log.Error("list behaviors failed", "account_id", accountID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.UserBehaviorResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, response_models.UserBehaviorResponse{
			BehaviorID:    r.BehaviorID,
			BehaviorTitle: r.BehaviorTitle,
			FirstPriority: r.FirstPriority,
			HighPriority:  r.HighPriority,
		})
	}
	return out, nil
}
