package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"streetmix-be/internal/dto"
	"streetmix-be/internal/entity"
	"streetmix-be/internal/pkg/logger"
	"streetmix-be/internal/repository/contract"
	"streetmix-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

var ErrEmptyMessage = errors.New("please specify a message")

// FeedbackMeta is what the transport knows about the submitter.
type FeedbackMeta struct {
	Referer   string
	UserAgent string
}

type IFeedbackService interface {
	Submit(ctx context.Context, req *dto.FeedbackRequest, meta FeedbackMeta) (*dto.FeedbackResponse, error)
}

type feedbackService struct {
	repo      contract.FeedbackRepository
	queue     message.Publisher
	topic     string
	publisher events.Publisher
	logger    logger.ILogger
}

func NewFeedbackService(
	repo contract.FeedbackRepository,
	queue message.Publisher,
	topic string,
	publisher events.Publisher,
	log logger.ILogger,
) IFeedbackService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &feedbackService{repo: repo, queue: queue, topic: topic, publisher: publisher, logger: log}
}

// Submit records the feedback and queues it for delivery. It returns once
// the submission is accepted, not when the email is out.
func (s *feedbackService) Submit(ctx context.Context, req *dto.FeedbackRequest, meta FeedbackMeta) (*dto.FeedbackResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, ErrEmptyMessage
	}

	feedback := &entity.Feedback{
		Id:                    uuid.New(),
		Message:               msg,
		From:                  strings.TrimSpace(req.From),
		AdditionalInformation: req.AdditionalInformation,
		Referer:               meta.Referer,
		UserAgent:             meta.UserAgent,
		Status:                entity.FeedbackStatusQueued,
		CreatedAt:             time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("store feedback: %w", err)
	}

	payload, err := json.Marshal(dto.PublishFeedbackMessage{FeedbackId: feedback.Id})
	if err != nil {
		return nil, err
	}
	if err := s.queue.Publish(s.topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		return nil, fmt.Errorf("queue feedback: %w", err)
	}

	s.logger.Info("FeedbackService", "Feedback accepted", map[string]interface{}{"feedback_id": feedback.Id.String()})

	ev := events.New(events.TypeFeedbackSubmitted, map[string]interface{}{"feedback_id": feedback.Id.String()})
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("FeedbackService", "Failed to publish feedback event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.FeedbackResponse{Id: feedback.Id}, nil
}
