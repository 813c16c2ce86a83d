package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"eatwise/internal/survey"
)

// QuestionAnswer is a user's latest survey submission, one row per account.
// QuestionData holds a JSON array of StoredAnswer in catalog order.
type QuestionAnswer struct {
	BaseModel
	AccountID    uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null"`
	QuestionData datatypes.JSON `gorm:"type:jsonb;not null"`
}

// StoredAnswer keeps the question text next to the answer so reads do not
// depend on the catalog still carrying the question.
type StoredAnswer struct {
	QuestionID   int                 `json:"question_id"`
	Question     string              `json:"question"`
	QuestionType survey.QuestionType `json:"question_type"`
	Answer       survey.Answer       `json:"answer"`
}
