package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eatwise/internal/models/request_models"
	"eatwise/internal/models/response_models"
	"eatwise/internal/services"
	"eatwise/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type QuestionController struct {
	questionService services.QuestionServiceInterface
}

func NewQuestionController(questionService services.QuestionServiceInterface) *QuestionController {
	return &QuestionController{
		questionService: questionService,
	}
}

// QuestionList godoc
// @Summary List survey questions
// @Description Catalog order defines paging and submission order
// @Tags Questions
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]survey.Question}
// @Router /question/question-list [get]
func (q *QuestionController) QuestionList(c *gin.Context) {
	utils.RespondSuccess(c, q.questionService.ListQuestions(c.Request.Context()), "Questions fetched successfully")
}

// SubmitAnswers godoc
// @Summary Submit survey answers
// @Description Validates each answer against its question and replaces earlier answers
// @Tags Questions
// @Accept json
// @Produce json
// @Param request body request_models.SubmitAnswersRequest true "Answers payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /question/submit-answers [post]
func (q *QuestionController) SubmitAnswers(c *gin.Context) {
	var req request_models.SubmitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := q.questionService.SubmitAnswers(c.Request.Context(), c.GetString("user_id"), req.AnswerList); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Answers submitted successfully")
}

// CheckSubmission godoc
// @Summary Whether the caller has submitted answers
// @Tags Questions
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.SubmissionStatus}
// @Security BearerAuth
// @Router /question/check-submission [get]
func (q *QuestionController) CheckSubmission(c *gin.Context) {
	submitted, err := q.questionService.CheckSubmission(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.SubmissionStatus{Submitted: submitted}, "")
}

// GetAnswers godoc
// @Summary Get the caller's stored answers
// @Tags Questions
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.AnswerResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /question/get-answers [get]
func (q *QuestionController) GetAnswers(c *gin.Context) {
	answers, err := q.questionService.GetAnswers(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, answers, "Answers fetched successfully")
}

// ExportAnswers godoc
// @Summary Download the caller's answers as xlsx
// @Tags Questions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /question/export-answers [get]
func (q *QuestionController) ExportAnswers(c *gin.Context) {
	buf, err := q.questionService.ExportAnswers(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("eatwise-answers-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
