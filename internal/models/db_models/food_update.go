package db_models

import "github.com/google/uuid"

// FoodUpdate is one entry in a user's food log.
type FoodUpdate struct {
	BaseModel
	AccountID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Description string    `gorm:"type:text;not null"`
}
