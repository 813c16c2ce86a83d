package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"eatwise/internal/models/db_models"
	"eatwise/internal/models/response_models"
	"eatwise/internal/repositories"
	"eatwise/internal/survey"
	"eatwise/pkg/logger"
	"eatwise/pkg/utils"
)

const answersSheet = "Answers"

// QuestionCatalog is the read-only question list served to clients.
type QuestionCatalog interface {
	Questions() []survey.Question
	Question(id int) (survey.Question, bool)
}

type QuestionServiceInterface interface {
	ListQuestions(ctx context.Context) []survey.Question
	SubmitAnswers(ctx context.Context, accountID string, items []survey.AnswerItem) error
	CheckSubmission(ctx context.Context, accountID string) (bool, error)
	GetAnswers(ctx context.Context, accountID string) ([]response_models.AnswerResponse, error)
	ExportAnswers(ctx context.Context, accountID string) (*bytes.Buffer, error)
}

type QuestionService struct {
	catalog    QuestionCatalog
	answerRepo repositories.AnswerRepository
	log        *logger.Logger
}

func NewQuestionService(catalog QuestionCatalog, answerRepo repositories.AnswerRepository, log *logger.Logger) QuestionServiceInterface {
	return &QuestionService{
		catalog:    catalog,
		answerRepo: answerRepo,
		log:        log,
	}
}

func (s *QuestionService) ListQuestions(ctx context.Context) []survey.Question {
	return s.catalog.Questions()
}

// SubmitAnswers validates every item against the catalog and stores the set,
// replacing the account's previous submission. Nothing is stored if any
// item is rejected.
func (s *QuestionService) SubmitAnswers(ctx context.Context, accountID string, items []survey.AnswerItem) error {
	if len(items) == 0 {
		return utils.ErrEmptyAnswerList
	}
	accID, err := uuid.Parse(accountID)
	if err != nil {
		return utils.ErrUnauthorized
	}

	order := make(map[int]int)
	for i, q := range s.catalog.Questions() {
		order[q.ID] = i
	}

	seen := make(map[int]bool, len(items))
	stored := make([]db_models.StoredAnswer, 0, len(items))
	for _, item := range items {
		q, ok := s.catalog.Question(item.QuestionID)
		if !ok {
			return fmt.Errorf("%w: %d", utils.ErrQuestionNotFound, item.QuestionID)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: question %d answered twice", utils.ErrInvalidAnswer, q.ID)
		}
		seen[q.ID] = true

		if err := q.Accept(item.Answer); err != nil {
			return fmt.Errorf("%w: %w", utils.ErrInvalidAnswer, err)
		}
		if !item.Answer.CompleteFor(q.QuestionType) {
			return fmt.Errorf("%w: question %d is incomplete", utils.ErrInvalidAnswer, q.ID)
		}
		stored = append(stored, db_models.StoredAnswer{
			QuestionID:   q.ID,
			Question:     q.QuestionText,
			QuestionType: q.QuestionType,
			Answer:       item.Answer,
		})
	}
	sort.SliceStable(stored, func(i, j int) bool {
		return order[stored[i].QuestionID] < order[stored[j].QuestionID]
	})

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	if err := s.answerRepo.Upsert(ctx, &db_models.QuestionAnswer{
		AccountID:    accID,
		QuestionData: datatypes.JSON(data),
	}); err != nil {
		s.log.Error("store answers failed", "account_id", accountID, "error", err)
		return utils.ErrDatabaseError
	}

	s.log.Info("answers submitted", "account_id", accountID, "count", len(stored))
	return nil
}

func (s *QuestionService) CheckSubmission(ctx context.Context, accountID string) (bool, error) {
	ok, err := s.answerRepo.ExistsForAccount(ctx, accountID)
	if err != nil {
		s.log.Error("check submission failed", "account_id", accountID, "error", err)
		return false, utils.ErrDatabaseError
	}
	return ok, nil
}

func (s *QuestionService) GetAnswers(ctx context.Context, accountID string) ([]response_models.AnswerResponse, error) {
	stored, err := s.loadStored(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]response_models.AnswerResponse, 0, len(stored))
	for _, a := range stored {
		out = append(out, response_models.AnswerResponse{
			QuestionID:   a.QuestionID,
			Question:     a.Question,
			QuestionType: a.QuestionType,
			Answer:       a.Answer,
		})
	}
	return out, nil
}

// ExportAnswers renders the stored answers as an xlsx workbook with one row
// per question.
func (s *QuestionService) ExportAnswers(ctx context.Context, accountID string) (*bytes.Buffer, error) {
	stored, err := s.loadStored(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return renderAnswersWorkbook(stored)
}

func (s *QuestionService) loadStored(ctx context.Context, accountID string) ([]db_models.StoredAnswer, error) {
	row, err := s.answerRepo.FindByAccount(ctx, accountID)
	if err != nil {
		s.log.Error("load answers failed", "account_id", accountID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	if row == nil {
		return nil, utils.ErrAnswersNotFound
	}
	var stored []db_models.StoredAnswer
	if err := json.Unmarshal(row.QuestionData, &stored); err != nil {
		s.log.Error("decode answers failed", "account_id", accountID, "error", err)
		return nil, utils.ErrDatabaseError
	}
	return stored, nil
}

func renderAnswersWorkbook(stored []db_models.StoredAnswer) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", answersSheet); err != nil {
		return nil, err
	}

	if err := writeRow(f, 1, []interface{}{"Question ID", "Question", "Type", "Answer"}); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(answersSheet, "A1", "D1", bold); err != nil {
		return nil, err
	}

	for i, a := range stored {
		values := []interface{}{a.QuestionID, a.Question, string(a.QuestionType), a.Answer.String()}
		if err := writeRow(f, i+2, values); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(answersSheet, "B", "B", 50); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(answersSheet, "D", "D", 60); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

// writeRow fills the answers sheet row (1-based) from column A.
func writeRow(f *excelize.File, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("answers sheet cell: %w", err)
		}
		if err := f.SetCellValue(answersSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
