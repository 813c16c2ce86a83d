package request_models

import "eatwise/internal/survey"

type SubmitAnswersRequest struct {
	AnswerList []survey.AnswerItem `json:"answer_list" binding:"required"`
}

type SubmitBehaviorsRequest struct {
	BehaviorList []survey.BehaviorItem `json:"behavior_list" binding:"required"`
}
