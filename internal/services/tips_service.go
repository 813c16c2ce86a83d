package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"eatwise/internal/models/db_models"
	"eatwise/internal/models/response_models"
	"eatwise/internal/repositories"
	"eatwise/pkg/logger"
	"eatwise/pkg/utils"
)

type TipsServiceInterface interface {
	// GenerateTips asks the LLM for today's tips and stores them, replacing
	// tips generated earlier the same day.
	GenerateTips(ctx context.Context, accountID string) (*response_models.TipsResponse, error)
	GetLatestTips(ctx context.Context, accountID string) (*response_models.TipsResponse, error)
	// Chat forwards a free-form question to the LLM coach.
	Chat(ctx context.Context, prompt string) (*response_models.ChatResponse, error)
}

type TipsService struct {
	accountRepo  repositories.AccountRepository
	answerRepo   repositories.AnswerRepository
	behaviorRepo repositories.BehaviorRepository
	tipsRepo     repositories.TipsRepository
	goalRepo     repositories.GoalRepository
	generator    utils.TipsGeneratorInterface
	provider     string
	now          func() time.Time
	log          *logger.Logger
}

func NewTipsService(
	accountRepo repositories.AccountRepository,
	answerRepo repositories.AnswerRepository,
	behaviorRepo repositories.BehaviorRepository,
	tipsRepo repositories.TipsRepository,
	goalRepo repositories.GoalRepository,
	generator utils.TipsGeneratorInterface,
	provider string,
	log *logger.Logger,
) TipsServiceInterface {
	return &TipsService{
		accountRepo:  accountRepo,
		answerRepo:   answerRepo,
		behaviorRepo: behaviorRepo,
		tipsRepo:     tipsRepo,
		goalRepo:     goalRepo,
		generator:    generator,
		provider:     provider,
		now:          time.Now,
		log:          log,
	}
}

func (s *TipsService) GenerateTips(ctx context.Context, accountID string) (*response_models.TipsResponse, error) {
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return nil, utils.ErrUnauthorized
	}
	account, err := s.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	prompt, err := s.buildPrompt(ctx, account)
	if err != nil {
		return nil, err
	}

	text, err := s.generator.GenerateTips(ctx, prompt)
	if err != nil {
		if errors.Is(err, utils.ErrTipsUnavailable) {
			return nil, err
		}
		s.log.Error("generate tips failed", "account_id", accountID, "provider", s.provider, "error", err)
		return nil, fmt.Errorf("%w: %v", utils.ErrTipsUnavailable, err)
	}

	tip := &db_models.UserTip{
		AccountID: accID,
		Day:       utils.DayKey(s.now()),
		TipsText:  text,
		Provider:  s.provider,
	}
	if err := s.tipsRepo.Upsert(ctx, tip); err != nil {
		s.log.Error("store tips failed", "account_id", accountID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	return toTipsResponse(tip), nil
}

func (s *TipsService) GetLatestTips(ctx context.Context, accountID string) (*response_models.TipsResponse, error) {
	tip, err := s.tipsRepo.FindLatest(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if tip == nil {
		return nil, utils.ErrTipsNotFound
	}
	return toTipsResponse(tip), nil
}

func (s *TipsService) Chat(ctx context.Context, prompt string) (*response_models.ChatResponse, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is empty", utils.ErrInvalidPrompt)
	}
	answer, err := s.generator.Chat(ctx, prompt)
	if err != nil {
		if errors.Is(err, utils.ErrTipsUnavailable) {
			return nil, err
		}
		s.log.Error("chat failed", "provider", s.provider, "error", err)
		return nil, fmt.Errorf("%w: %v", utils.ErrTipsUnavailable, err)
	}
	return &response_models.ChatResponse{Response: answer}, nil
}

// buildPrompt collects the selected behaviors, high priority first, today's
// goal and any stored survey answers.
func (s *TipsService) buildPrompt(ctx context.Context, account *db_models.Account) (utils.TipsPrompt, error) {
	accountID := account.ID.String()
	prompt := utils.TipsPrompt{FirstName: account.FirstName}

	behaviors, err := s.behaviorRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return prompt, utils.ErrDatabaseError
	}
	if len(behaviors) == 0 {
		return prompt, fmt.Errorf("%w: select behaviors before generating tips", utils.ErrInvalidBehaviors)
	}
	sort.SliceStable(behaviors, func(i, j int) bool {
		return behaviors[i].HighPriority && !behaviors[j].HighPriority
	})
	for _, b := range behaviors {
		prompt.Behaviors = append(prompt.Behaviors, b.BehaviorTitle)
	}

	goal, err := s.goalRepo.FindForDay(ctx, accountID, utils.DayKey(s.now()))
	if err != nil {
		return prompt, utils.ErrDatabaseError
	}
	if goal != nil {
		prompt.Goal = goal.GoalText
	}

	row, err := s.answerRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return prompt, utils.ErrDatabaseError
	}
	if row != nil {
		var stored []db_models.StoredAnswer
		if err := json.Unmarshal(row.QuestionData, &stored); err != nil {
			s.log.Warn("ignoring undecodable answers", "account_id", accountID, "error", err)
		}
		for _, a := range stored {
			prompt.Answers = append(prompt.Answers, [2]string{a.Question, a.Answer.String()})
		}
	}
	return prompt, nil
}

func toTipsResponse(tip *db_models.UserTip) *response_models.TipsResponse {
	var tips []string
	for _, line := range strings.Split(tip.TipsText, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• "))
		if line != "" {
			tips = append(tips, line)
		}
	}
	return &response_models.TipsResponse{
		Day:       tip.Day,
		Tips:      tips,
		CreatedAt: utils.FormatRFC3339(tip.CreatedAt),
	}
}
