package db_models

import "github.com/google/uuid"

type UserTip struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_tip_day;not null"`
	Day       string    `gorm:"size:10;uniqueIndex:idx_user_tip_day;not null"`
	TipsText  string    `gorm:"type:text"`
	Provider  string
}
