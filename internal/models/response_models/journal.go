package response_models

type FoodUpdateResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

type UserGoalResponse struct {
	GoalText  string `json:"goal_text"`
	Day       string `json:"day"`
	UpdatedAt string `json:"updated_at"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
