// FILE: internal/service/feedback_consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"streetmix-be/internal/dto"
	"streetmix-be/internal/entity"
	"streetmix-be/internal/pkg/logger"
	"streetmix-be/internal/pkg/mailer"
	"streetmix-be/internal/pkg/serverutils"
	"streetmix-be/internal/repository/contract"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IFeedbackConsumerService interface {
	Consume(ctx context.Context) error
}

type FeedbackMailConfig struct {
	Recipient string
	Subject   string
}

type feedbackConsumerService struct {
	subscriber message.Subscriber
	topic      string
	repo       contract.FeedbackRepository
	mailer     mailer.IEmailService
	mailCfg    FeedbackMailConfig
	logger     logger.ILogger
}

func NewFeedbackConsumerService(
	subscriber message.Subscriber,
	topic string,
	repo contract.FeedbackRepository,
	emailService mailer.IEmailService,
	mailCfg FeedbackMailConfig,
	log logger.ILogger,
) IFeedbackConsumerService {
	return &feedbackConsumerService{
		subscriber: subscriber,
		topic:      topic,
		repo:       repo,
		mailer:     emailService,
		mailCfg:    mailCfg,
		logger:     log,
	}
}

// Consume subscribes to the feedback topic and delivers in the background
// until ctx is cancelled.
func (cs *feedbackConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *feedbackConsumerService) processMessage(msg *message.Message) {
	// Delivery is attempted once; failures are recorded, not retried
	defer msg.Ack()
	ctx := msg.Context()

	var payload dto.PublishFeedbackMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("FeedbackConsumer", "Invalid queue message", map[string]interface{}{"error": err})
		return
	}

	feedback, err := cs.repo.FindByID(ctx, payload.FeedbackId)
	if err != nil {
		cs.logger.Error("FeedbackConsumer", "Feedback not found", map[string]interface{}{"feedback_id": payload.FeedbackId.String(), "error": err})
		return
	}

	email := ComposeFeedbackEmail(feedback, cs.mailCfg)
	if err := cs.mailer.Send(email); err != nil {
		cs.logger.Error("FeedbackConsumer", "Feedback delivery failed", map[string]interface{}{"feedback_id": feedback.Id.String(), "error": err})
		if mErr := cs.repo.MarkFailed(ctx, feedback.Id, err.Error()); mErr != nil {
			cs.logger.Error("FeedbackConsumer", "Failed to record delivery failure", map[string]interface{}{"error": mErr})
		}
		return
	}

	if err := cs.repo.MarkSent(ctx, feedback.Id, time.Now().UTC()); err != nil {
		cs.logger.Error("FeedbackConsumer", "Failed to record delivery", map[string]interface{}{"error": err})
		return
	}
	cs.logger.Info("FeedbackConsumer", "Feedback delivered", map[string]interface{}{"feedback_id": feedback.Id.String()})
}

// ComposeFeedbackEmail lays out the message for the team inbox. A valid
// sender address becomes the Reply-To; anything else is only quoted.
func ComposeFeedbackEmail(f *entity.Feedback, cfg FeedbackMailConfig) mailer.Email {
	referer := f.Referer
	if referer == "" {
		referer = "(not specified)"
	}

	var b strings.Builder
	b.WriteString(f.Message)
	b.WriteString("\n\n-- \n")
	b.WriteString("URL: " + referer + "\n")
	if f.UserAgent != "" {
		b.WriteString("User agent: " + f.UserAgent + "\n")
	}
	if f.AdditionalInformation != "" {
		b.WriteString(f.AdditionalInformation + "\n")
	}

	email := mailer.Email{To: cfg.Recipient, Subject: cfg.Subject}
	switch {
	case serverutils.IsEmail(f.From):
		email.ReplyTo = f.From
		b.WriteString("From: " + f.From + "\n")
	case f.From != "":
		b.WriteString("From (not a valid email address): " + f.From + "\n")
	}
	email.Body = b.String()
	return email
}
