package dto

import "github.com/google/uuid"

type FeedbackRequest struct {
	Message               string `json:"message" validate:"notblank,max=10000"`
	From                  string `json:"from" validate:"max=320"`
	AdditionalInformation string `json:"additionalInformation" validate:"max=10000"`
}

type FeedbackResponse struct {
	Id uuid.UUID `json:"id"`
}

// PublishFeedbackMessage is the payload queued for delivery.
type PublishFeedbackMessage struct {
	FeedbackId uuid.UUID `json:"feedback_id"`
}
