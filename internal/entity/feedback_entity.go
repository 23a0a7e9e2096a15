package entity

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackStatus string

const (
	FeedbackStatusQueued FeedbackStatus = "queued"
	FeedbackStatusSent   FeedbackStatus = "sent"
	FeedbackStatusFailed FeedbackStatus = "failed"
)

type Feedback struct {
	Id                    uuid.UUID
	Message               string
	From                  string
	AdditionalInformation string
	Referer               string
	UserAgent             string
	Status                FeedbackStatus
	LastError             *string
	CreatedAt             time.Time
	SentAt                *time.Time
}
