package db_models

import "github.com/google/uuid"

type UserBehavior struct {
	BaseModel
	AccountID     uuid.UUID `gorm:"type:uuid;index;not null"`
	BehaviorID    int       `gorm:"not null"`
	BehaviorTitle string
	FirstPriority bool
	HighPriority  bool
	// Position is the order the behavior was selected in.
	Position int
}
