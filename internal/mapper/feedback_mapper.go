package mapper

import (
	"streetmix-be/internal/entity"
	"streetmix-be/internal/model"

	"gorm.io/datatypes"
)

type FeedbackMapper struct{}

func NewFeedbackMapper() *FeedbackMapper {
	return &FeedbackMapper{}
}

func (m *FeedbackMapper) ToEntity(f *model.Feedback) *entity.Feedback {
	if f == nil {
		return nil
	}

	e := &entity.Feedback{
		Id:                    f.Id,
		Message:               f.Message,
		From:                  f.FromAddress,
		AdditionalInformation: f.AdditionalInformation,
		Status:                entity.FeedbackStatus(f.Status),
		LastError:             f.LastError,
		CreatedAt:             f.CreatedAt,
		SentAt:                f.SentAt,
	}
	if v, ok := f.Metadata["referer"].(string); ok {
		e.Referer = v
	}
	if v, ok := f.Metadata["user_agent"].(string); ok {
		e.UserAgent = v
	}
	return e
}

func (m *FeedbackMapper) ToModel(e *entity.Feedback) *model.Feedback {
	if e == nil {
		return nil
	}

	return &model.Feedback{
		Id:                    e.Id,
		Message:               e.Message,
		FromAddress:           e.From,
		AdditionalInformation: e.AdditionalInformation,
		Metadata: datatypes.JSONMap{
			"referer":    e.Referer,
			"user_agent": e.UserAgent,
		},
		Status:    string(e.Status),
		LastError: e.LastError,
		CreatedAt: e.CreatedAt,
		SentAt:    e.SentAt,
	}
}
