package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"eatwise/internal/models/db_models"
	"eatwise/internal/models/request_models"
	"eatwise/internal/models/response_models"
	"eatwise/internal/repositories"
	"eatwise/pkg/logger"
	"eatwise/pkg/utils"
)

const tipsRefreshTimeout = 45 * time.Second

type GoalServiceInterface interface {
	// SubmitGoal stores today's goal, replacing an earlier one from the same
	// day, and regenerates today's tips in the background.
	SubmitGoal(ctx context.Context, accountID string, request request_models.UserGoalRequest) (*response_models.UserGoalResponse, error)
	// GetTodayGoal returns nil when no goal was set today.
	GetTodayGoal(ctx context.Context, accountID string) (*response_models.UserGoalResponse, error)
}

type GoalService struct {
	goalRepo repositories.GoalRepository
	tips     TipsServiceInterface
	now      func() time.Time
	log      *logger.Logger

	refreshes sync.WaitGroup
}

// NewGoalService builds the goal service. tips may be nil, in which case
// goals do not trigger tip generation.
func NewGoalService(goalRepo repositories.GoalRepository, tips TipsServiceInterface, log *logger.Logger) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		tips:     tips,
		now:      time.Now,
		log:      log,
	}
}

func (s *GoalService) SubmitGoal(ctx context.Context, accountID string, request request_models.UserGoalRequest) (*response_models.UserGoalResponse, error) {
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}
	text := strings.TrimSpace(request.GoalText)
	if text == "" {
		return nil, fmt.Errorf("%w: goal_text is empty", utils.ErrInvalidGoal)
	}

	goal := &db_models.UserGoal{
		AccountID: accID,
		Day:       utils.DayKey(s.now()),
		GoalText:  text,
	}
	if err := s.goalRepo.Upsert(ctx, goal); err != nil {
		s.log.Error("store goal failed", "account_id", accountID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	s.log.Info("goal saved", "account_id", accountID, "day", goal.Day)

	s.refreshTips(accountID)
	return toGoalResponse(goal), nil
}

func (s *GoalService) GetTodayGoal(ctx context.Context, accountID string) (*response_models.UserGoalResponse, error) {
	goal, err := s.goalRepo.FindForDay(ctx, accountID, utils.DayKey(s.now()))
	if err != nil {
		s.log.Error("find goal failed", "account_id", accountID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	if goal == nil {
		return nil, nil
	}
	return toGoalResponse(goal), nil
}

// refreshTips runs detached from the request; a user without behaviors or a
// server without an LLM provider simply gets no new tips.
func (s *GoalService) refreshTips(accountID string) {
	if s.tips == nil {
		return
	}
	s.refreshes.Add(1)
	go func() {
		defer s.refreshes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), tipsRefreshTimeout)
		defer cancel()

		_, err := s.tips.GenerateTips(ctx, accountID)
		switch {
		case err == nil:
			s.log.Debug("tips refreshed after goal", "account_id", accountID)
		case errors.Is(err, utils.ErrTipsUnavailable), errors.Is(err, utils.ErrInvalidBehaviors):
		default:
			s.log.Warn("tips refresh after goal failed", "account_id", accountID, "error", err)
		}
	}()
}

// Wait blocks until background tip refreshes have finished.
func (s *GoalService) Wait() {
	s.refreshes.Wait()
}

func toGoalResponse(g *db_models.UserGoal) *response_models.UserGoalResponse {
	return &response_models.UserGoalResponse{
		GoalText:  g.GoalText,
		Day:       g.Day,
		UpdatedAt: utils.FormatRFC3339(g.UpdatedAt),
	}
}
