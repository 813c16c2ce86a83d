package response_models

import "eatwise/internal/survey"

type SubmissionStatus struct {
	Submitted bool `json:"submitted"`
}

type AnswerResponse struct {
	QuestionID   int                 `json:"question_id"`
	Question     string              `json:"question"`
	QuestionType survey.QuestionType `json:"question_type"`
	Answer       survey.Answer       `json:"answer"`
}

type UserBehaviorResponse struct {
	BehaviorID    int    `json:"behavior_id"`
	BehaviorTitle string `json:"behavior_title"`
	FirstPriority bool   `json:"first_priority"`
	HighPriority  bool   `json:"high_priority"`
}

type TipsResponse struct {
	Day       string   `json:"day"`
	Tips      []string `json:"tips"`
	CreatedAt string   `json:"created_at"`
}
