package db_models

import "github.com/google/uuid"

// UserGoal is the goal a user set for one UTC day. Setting it again the same
// day replaces the text.
type UserGoal struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_goal_day;not null"`
	Day       string    `gorm:"size:10;uniqueIndex:idx_user_goal_day;not null"`
	GoalText  string    `gorm:"type:text;not null"`
}
