package response_models

type AccountLoginResponse struct {
	Token string `json:"token"`
}

type AccountResponse struct {
	ID                string `json:"id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	SurveyCompleted   bool   `json:"survey_completed"`
	BehaviorsSelected bool   `json:"behaviors_selected"`
	CreatedAt         string `json:"created_at"`
}

type OTPVerificationResponse struct {
	Valid bool `json:"valid"`
}
