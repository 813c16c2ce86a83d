package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eatwise/internal/models/request_models"
	"eatwise/internal/services"
	"eatwise/pkg/utils"
)

type GoalController struct {
	goalService services.GoalServiceInterface
}

func NewGoalController(goalService services.GoalServiceInterface) *GoalController {
	return &GoalController{goalService: goalService}
}

// SubmitUserGoal godoc
// @Summary Set the caller's goal for today
// @Description Replaces a goal set earlier the same day and refreshes today's tips in the background
// @Tags Goal
// @Accept json
// @Produce json
// @Param request body request_models.UserGoalRequest true "Goal"
// @Success 200 {object} utils.APIResponse{data=response_models.UserGoalResponse}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /goal/submit-user-goal [post]
func (g *GoalController) SubmitUserGoal(c *gin.Context) {
	var req request_models.UserGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	goal, err := g.goalService.SubmitGoal(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, goal, "Goal saved successfully")
}

// GetUserGoal godoc
// @Summary Get the caller's goal for today
// @Tags Goal
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.UserGoalResponse}
// @Security BearerAuth
// @Router /goal/get-user-goal [get]
func (g *GoalController) GetUserGoal(c *gin.Context) {
	goal, err := g.goalService.GetTodayGoal(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if goal == nil {
		utils.RespondSuccess(c, nil, "No goal set for today")
		return
	}
	utils.RespondSuccess(c, goal, "User goal retrieved successfully")
}
