package request_models

type FoodUpdateRequest struct {
	Description string `json:"description" binding:"required,max=2000"`
}

type UserGoalRequest struct {
	GoalText string `json:"goal_text" binding:"required,max=500"`
}

type ChatRequest struct {
	Prompt string `json:"prompt" binding:"required,max=4000"`
}
