package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Feedback struct {
	Id                    uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Message               string            `gorm:"type:text;not null"`
	FromAddress           string            `gorm:"type:varchar(320)"`
	AdditionalInformation string            `gorm:"type:text"`
	Metadata              datatypes.JSONMap `gorm:"type:jsonb"` // referer, user agent
	Status                string            `gorm:"type:varchar(20);not null;index"`
	LastError             *string           `gorm:"type:text"`
	CreatedAt             time.Time         `gorm:"not null;index"`
	SentAt                *time.Time
}

func (Feedback) TableName() string {
	return "feedback_submissions"
}
