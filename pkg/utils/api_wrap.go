package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps service sentinel errors to a response. Anything
// unrecognised is reported as a 500 without leaking the cause.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already exists")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrQuestionNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBehaviorNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAnswersNotFound):
		RespondError(c, http.StatusNotFound, "No answers submitted yet")
	case errors.Is(err, ErrTipsNotFound):
		RespondError(c, http.StatusNotFound, "No tips generated yet")
	case errors.Is(err, ErrFoodUpdateNotFound):
		RespondError(c, http.StatusNotFound, "Food update not found")
	case errors.Is(err, ErrInvalidProfile), errors.Is(err, ErrInvalidFoodUpdate), errors.Is(err, ErrInvalidGoal),
		errors.Is(err, ErrInvalidPrompt):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidAnswer), errors.Is(err, ErrInvalidBehaviors):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrEmptyBehaviorList), errors.Is(err, ErrEmptyAnswerList):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidOTP):
		RespondError(c, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, ErrTipsUnavailable):
		RespondError(c, http.StatusServiceUnavailable, "Tips generation is not configured")
	case errors.Is(err, ErrDatabaseError):
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
