package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"eatwise/internal/models/db_models"
	"eatwise/internal/models/request_models"
	"eatwise/internal/models/response_models"
	"eatwise/internal/repositories"
	"eatwise/pkg/logger"
	"eatwise/pkg/utils"
)

// FoodUpdateServiceInterface is the user's food log. Entries are private to
// their author.
type FoodUpdateServiceInterface interface {
	PostFoodUpdate(ctx context.Context, accountID string, request request_models.FoodUpdateRequest) (*response_models.FoodUpdateResponse, error)
	ListFoodUpdates(ctx context.Context, accountID string) ([]response_models.FoodUpdateResponse, error)
	GetFoodUpdate(ctx context.Context, accountID, id string) (*response_models.FoodUpdateResponse, error)
}

type FoodUpdateService struct {
	repo repositories.FoodUpdateRepository
	log  *logger.Logger
}

func NewFoodUpdateService(repo repositories.FoodUpdateRepository, log *logger.Logger) FoodUpdateServiceInterface {
	return &FoodUpdateService{repo: repo, log: log}
}

func (s *FoodUpdateService) PostFoodUpdate(ctx context.Context, accountID string, request request_models.FoodUpdateRequest) (*response_models.FoodUpdateResponse, error) {
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}
	description := strings.TrimSpace(request.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is empty", utils.ErrInvalidFoodUpdate)
	}

	update := &db_models.FoodUpdate{AccountID: accID, Description: description}
	if err := s.repo.Insert(ctx, update); err != nil {
		s.log.Error("insert food update failed", "account_id", accountID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	s.log.Debug("food update posted", "account_id", accountID, "food_update_id", update.ID)
	return toFoodUpdateResponse(update), nil
}

func (s *FoodUpdateService) ListFoodUpdates(ctx context.Context, accountID string) ([]response_models.FoodUpdateResponse, error) {
	rows, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		s.log.Error("list food updates failed", "account_id", accountID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.FoodUpdateResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toFoodUpdateResponse(&rows[i]))
	}
	return out, nil
}

// GetFoodUpdate hides entries of other accounts behind ErrFoodUpdateNotFound.
func (s *FoodUpdateService) GetFoodUpdate(ctx context.Context, accountID, id string) (*response_models.FoodUpdateResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.ErrFoodUpdateNotFound
	}
	update, err := s.repo.FindById(ctx, id)
	if err != nil {
		s.log.Error("find food update failed", "food_update_id", id, "error", err)
		return nil, utils.ErrDatabaseError
	}
	if update == nil || update.AccountID.String() != accountID {
		return nil, utils.ErrFoodUpdateNotFound
	}
	return toFoodUpdateResponse(update), nil
}

func toFoodUpdateResponse(u *db_models.FoodUpdate) *response_models.FoodUpdateResponse {
	return &response_models.FoodUpdateResponse{
		ID:          u.ID.String(),
		Description: u.Description,
		CreatedAt:   utils.FormatRFC3339(u.CreatedAt),
	}
}
