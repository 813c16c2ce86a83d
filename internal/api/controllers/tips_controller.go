package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eatwise/internal/models/request_models"
	"eatwise/internal/services"
	"eatwise/pkg/utils"
)

type TipsController struct {
	tipsService services.TipsServiceInterface
}

func NewTipsController(tipsService services.TipsServiceInterface) *TipsController {
	return &TipsController{tipsService: tipsService}
}

// GenerateUserTips godoc
// @Summary Generate today's tips for the caller
// @Tags Tips
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.TipsResponse}
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tips/generate-user-tips [post]
func (t *TipsController) GenerateUserTips(c *gin.Context) {
	tips, err := t.tipsService.GenerateTips(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, tips, "Tips generated successfully")
}

// GetUserTips godoc
// @Summary Get the caller's latest tips
// @Tags Tips
// @Produce json
// @Success 200 {object} utils.APIResponse{data=response_models.TipsResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /tips/get-user-tips [get]
func (t *TipsController) GetUserTips(c *gin.Context) {
	tips, err := t.tipsService.GetLatestTips(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, tips, "")
}

// Chat godoc
// @Summary Ask the nutrition coach a question
// @Tags Tips
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Question"
// @Success 200 {object} utils.APIResponse{data=response_models.ChatResponse}
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /chat [post]
func (t *TipsController) Chat(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := t.tipsService.Chat(c.Request.Context(), req.Prompt)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}
