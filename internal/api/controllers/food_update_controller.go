package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eatwise/internal/models/request_models"
	"eatwise/internal/services"
	"eatwise/pkg/utils"
)

type FoodUpdateController struct {
	foodUpdateService services.FoodUpdateServiceInterface
}

func NewFoodUpdateController(foodUpdateService services.FoodUpdateServiceInterface) *FoodUpdateController {
	return &FoodUpdateController{foodUpdateService: foodUpdateService}
}

// PostFoodUpdate godoc
// @Summary Add an entry to the caller's food log
// @Tags Food
// @Accept json
// @Produce json
// @Param request body request_models.FoodUpdateRequest true "Food update"
// @Success 200 {object} utils.APIResponse{data=response_models.FoodUpdateResponse}
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /food/food-update [post]
func (f *FoodUpdateController) PostFoodUpdate(c *gin.Context) {
	var req request_models.FoodUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	update, err := f.foodUpdateService.PostFoodUpdate(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, update, "Food update posted successfully")
}

// UserFoodUpdates godoc
// @Summary List the caller's food log, newest first
// @Tags Food
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response_models.FoodUpdateResponse}
// @Security BearerAuth
// @Router /food/user-food-updates [get]
func (f *FoodUpdateController) UserFoodUpdates(c *gin.Context) {
	updates, err := f.foodUpdateService.ListFoodUpdates(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if len(updates) == 0 {
		utils.RespondSuccess(c, updates, "No food updates found")
		return
	}
	utils.RespondSuccess(c, updates, "Food updates fetched successfully")
}

// FoodUpdateByID godoc
// @Summary Get one entry of the caller's food log
// @Tags Food
// @Produce json
// @Param id path string true "Food update id"
// @Success 200 {object} utils.APIResponse{data=response_models.FoodUpdateResponse}
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /food/food-update/{id} [get]
func (f *FoodUpdateController) FoodUpdateByID(c *gin.Context) {
	update, err := f.foodUpdateService.GetFoodUpdate(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, update, "")
}
