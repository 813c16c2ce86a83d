package survey

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotLoaded       = errors.New("survey catalogs not loaded")
	ErrAlreadyLoaded   = errors.New("survey catalogs already loaded")
	ErrBusy            = errors.New("submission in progress")
	ErrFlowFinished    = errors.New("survey flow already finished")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownBehavior = errors.New("unknown behavior")

	// answer acceptance, checked against the catalog entry
	ErrAnswerShape      = errors.New("answer shape does not match question type")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrInvalidCheckbox  = errors.New("invalid checkbox selection")
	ErrOutOfRange       = errors.New("value out of range")
)

// ValidationError is reported in place; the flow state is unchanged and the
// user can fix the input and retry.
type ValidationError struct {
	Reason      string
	QuestionIDs []int
}

func (e *ValidationError) Error() string {
	if len(e.QuestionIDs) == 0 {
		return e.Reason
	}
	ids := make([]string, len(e.QuestionIDs))
	for i, id := range e.QuestionIDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s (questions %s)", e.Reason, strings.Join(ids, ", "))
}

// AuthError signals that the user must sign in again. Matches ErrUnauthenticated.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "session expired, please log in again"
	}
	return "session expired, please log in again: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrUnauthenticated }

type SubmitStep string

const (
	StepBehaviors SubmitStep = "behaviors"
	StepAnswers   SubmitStep = "answers"
)

// SubmissionError is a retryable failure of one submission call. A failure
// at StepAnswers means the behavior list was already accepted.
type SubmissionError struct {
	Step SubmitStep
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit %s: %v", e.Step, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
