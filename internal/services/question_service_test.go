package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"eatwise/internal/survey"
	"eatwise/pkg/logger"
	"eatwise/pkg/utils"
)

func validAnswers() []survey.AnswerItem {
	return []survey.AnswerItem{
		{QuestionID: 4, Answer: survey.Scalar("Eat more greens")},
		{QuestionID: 2, Answer: survey.Scalar("Vegan")},
		{QuestionID: 1, Answer: survey.Scalar("30")},
		{QuestionID: 3, Answer: survey.DropdownCheckbox("Yes", "Peanuts")},
	}
}

func TestSubmitAnswersStoresInCatalogOrder(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewQuestionService(testCatalog(), repo, logger.Nop())
	ctx := context.Background()
	user := uuid.NewString()

	require.NoError(t, svc.SubmitAnswers(ctx, user, validAnswers()))

	ok, err := svc.CheckSubmission(ctx, user)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := svc.GetAnswers(ctx, user)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i, id := range []int{1, 2, 3, 4} {
		assert.Equal(t, id, got[i].QuestionID)
	}
	assert.Equal(t, "Allergies", got[2].Question)
	assert.Equal(t, []string{"Peanuts"}, got[2].Answer.Checkboxes())

	// resubmission replaces; "0" is a complete answer
	require.NoError(t, svc.SubmitAnswers(ctx, user, []survey.AnswerItem{{QuestionID: 5, Answer: survey.Scalar("0")}}))
	got, err = svc.GetAnswers(ctx, user)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].QuestionID)
	assert.Equal(t, "0", got[0].Answer.Value())
}

func TestSubmitAnswersRejects(t *testing.T) {
	repo := newFakeAnswerRepo()
	svc := NewQuestionService(testCatalog(), repo, logger.Nop())
	ctx := context.Background()
	user := uuid.NewString()

	cases := map[string]struct {
		items []survey.AnswerItem
		want  error
	}{
		"empty":        {nil, utils.ErrEmptyAnswerList},
		"unknown":      {[]survey.AnswerItem{{QuestionID: 99, Answer: survey.Scalar("x")}}, utils.ErrQuestionNotFound},
		"not option":   {[]survey.AnswerItem{{QuestionID: 2, Answer: survey.Scalar("Keto")}}, utils.ErrInvalidAnswer},
		"out of range": {[]survey.AnswerItem{{QuestionID: 1, Answer: survey.Scalar("101")}}, utils.ErrInvalidAnswer},
		"below range":  {[]survey.AnswerItem{{QuestionID: 1, Answer: survey.Scalar("0")}}, utils.ErrInvalidAnswer},
		"shape":        {[]survey.AnswerItem{{QuestionID: 1, Answer: survey.Set("30")}}, utils.ErrInvalidAnswer},
		"incomplete":   {[]survey.AnswerItem{{QuestionID: 4, Answer: survey.Scalar("")}}, utils.ErrInvalidAnswer},
		"duplicate": {[]survey.AnswerItem{
			{QuestionID: 1, Answer: survey.Scalar("30")},
			{QuestionID: 1, Answer: survey.Scalar("31")},
		}, utils.ErrInvalidAnswer},
	}
	for name, tc := range cases {
		err := svc.SubmitAnswers(ctx, user, tc.items)
		assert.ErrorIs(t, err, tc.want, name)
	}
	assert.Zero(t, repo.upserts, "rejected submissions store nothing")

	err := svc.SubmitAnswers(ctx, user, []survey.AnswerItem{{QuestionID: 2, Answer: survey.Scalar("Keto")}})
	assert.ErrorIs(t, err, survey.ErrInvalidSelection)
}

func TestGetAnswersBeforeSubmit(t *testing.T) {
	svc := NewQuestionService(testCatalog(), newFakeAnswerRepo(), logger.Nop())
	_, err := svc.GetAnswers(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrAnswersNotFound)
}

func TestExportAnswers(t *testing.T) {
	svc := NewQuestionService(testCatalog(), newFakeAnswerRepo(), logger.Nop())
	ctx := context.Background()
	user := uuid.NewString()
	require.NoError(t, svc.SubmitAnswers(ctx, user, validAnswers()))

	buf, err := svc.ExportAnswers(ctx, user)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(answersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Question ID", "Question", "Type", "Answer"}, rows[0])
	assert.Equal(t, []string{"3", "Allergies", "DROPDOWN_CHECKBOX", "Yes (Peanuts)"}, rows[3])

	width, err := f.GetColWidth(answersSheet, "D")
	require.NoError(t, err)
	assert.Equal(t, 60.0, width)
}

func TestWriteRow(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", answersSheet))

	assert.Error(t, writeRow(f, 0, []interface{}{"x"}), "row numbers start at 1")

	require.NoError(t, writeRow(f, 2, []interface{}{5, "Fast food meals per week", "SLIDER", "0"}))
	rows, err := f.GetRows(answersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"5", "Fast food meals per week", "SLIDER", "0"}, rows[1])
}
