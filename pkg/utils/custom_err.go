package utils

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrInvalidProfile     = errors.New("invalid profile update")

	ErrQuestionNotFound  = errors.New("question not found")
	ErrBehaviorNotFound  = errors.New("behavior not found")
	ErrInvalidAnswer     = errors.New("invalid answer")
	ErrEmptyAnswerList   = errors.New("answer_list must not be empty")
	ErrEmptyBehaviorList = errors.New("behavior_list must not be empty")
	ErrInvalidBehaviors  = errors.New("invalid behavior list")
	ErrAnswersNotFound   = errors.New("answers not found")

	ErrTipsNotFound    = errors.New("tips not found")
	ErrTipsUnavailable = errors.New("tips generator unavailable")
	ErrInvalidPrompt   = errors.New("invalid chat prompt")

	ErrFoodUpdateNotFound = errors.New("food update not found")
	ErrInvalidFoodUpdate  = errors.New("invalid food update")
	ErrInvalidGoal        = errors.New("invalid goal")

	ErrDatabaseError = errors.New("database error")
)
