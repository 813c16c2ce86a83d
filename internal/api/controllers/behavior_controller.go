package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eatwise/internal/models/request_models"
	"eatwise/internal/services"
	"eatwise/pkg/utils"
)

type BehaviorController struct {
	behaviorService services.BehaviorServiceInterface
}

func NewBehaviorController(behaviorService services.BehaviorServiceInterface) *BehaviorController {
	return &BehaviorController{
		behaviorService: behaviorService,
	}
}

// BehaviorList godoc
// @Summary List eating behaviors
// @Tags Behaviors
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]survey.Behavior}
// @Router /behavior/behavior-list [get]
func (b *BehaviorController) BehaviorList(c *gin.Context) {
	utils.RespondSuccess(c, b.behaviorService.ListBehaviors(c.Request.Context()), "Behaviors fetched successfully")
}

// SubmitBehavior godoc
// @Summary Submit the caller's behavior selection
// @Description Replaces any earlier selection
// @Tags Behaviors
// @Accept json
// @Produce json
// @Param request body request_models.SubmitBehaviorsRequest true "Behavior payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /behavior/submit-behavior [post]
func (b *BehaviorController) SubmitBehavior(c *gin.Context) {
	var req request_models.SubmitBehaviorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := b.behaviorService.SubmitBehaviors(c.Request.Context(), c.GetString("user_id"), req.BehaviorList); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Behaviors submitted successfully")
}

// CheckBehaviorSubmission godoc
// @Summary List the caller's selected behaviors
// @Tags Behaviors
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.UserBehaviorResponse}
// @Security BearerAuth
// @Router /behavior/check-behavior-submission [get]
func (b *BehaviorController) CheckBehaviorSubmission(c *gin.Context) {
	rows, err := b.behaviorService.GetUserBehaviors(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rows, "")
}
