package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"streetmix-be/internal/dto"
	"streetmix-be/internal/entity"
	"streetmix-be/internal/pkg/logger"
	"streetmix-be/internal/pkg/mailer"
	"streetmix-be/internal/repository/memory"
	"streetmix-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTopic = "feedback-test"

type stubMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
	err  error
}

func (m *stubMailer) Send(email mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *stubMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type feedbackFixture struct {
	svc    IFeedbackService
	repo   *memory.FeedbackRepository
	mailer *stubMailer
	pub    *recordingPublisher
}

func newFeedbackFixture(t *testing.T, mailErr error) *feedbackFixture {
	t.Helper()
	log := logger.NewNopLogger()
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = bus.Close() })

	f := &feedbackFixture{
		repo:   memory.NewFeedbackRepository(),
		mailer: &stubMailer{err: mailErr},
		pub:    &recordingPublisher{},
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	consumer := NewFeedbackConsumerService(bus, testTopic, f.repo, f.mailer, FeedbackMailConfig{
		Recipient: "team@example.com",
		Subject:   "Feedback",
	}, log)
	require.NoError(t, consumer.Consume(ctx))

	f.svc = NewFeedbackService(f.repo, bus, testTopic, f.pub, log)
	return f
}

func TestFeedbackSubmitDelivers(t *testing.T) {
	f := newFeedbackFixture(t, nil)

	resp, err := f.svc.Submit(context.Background(), &dto.FeedbackRequest{
		Message: "  Love the bike lanes  ",
		From:    "rider@example.com",
	}, FeedbackMeta{Referer: "https://streetmix.test/-/3", UserAgent: "test-agent"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		stored, err := f.repo.FindByID(context.Background(), resp.Id)
		return err == nil && stored.Status == entity.FeedbackStatusSent
	}, 2*time.Second, 10*time.Millisecond)

	require.Equal(t, 1, f.mailer.count())
	email := f.mailer.sent[0]
	assert.Equal(t, "team@example.com", email.To)
	assert.Equal(t, "rider@example.com", email.ReplyTo)
	assert.True(t, strings.HasPrefix(email.Body, "Love the bike lanes\n\n-- \n"))
	assert.Contains(t, email.Body, "URL: https://streetmix.test/-/3")
	assert.Contains(t, f.pub.types(), events.TypeFeedbackSubmitted)
}

func TestFeedbackSubmitRecordsFailure(t *testing.T) {
	f := newFeedbackFixture(t, errors.New("smtp unavailable"))

	resp, err := f.svc.Submit(context.Background(), &dto.FeedbackRequest{Message: "hello"}, FeedbackMeta{})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		stored, err := f.repo.FindByID(context.Background(), resp.Id)
		return err == nil && stored.Status == entity.FeedbackStatusFailed
	}, 2*time.Second, 10*time.Millisecond)

	stored, _ := f.repo.FindByID(context.Background(), resp.Id)
	require.NotNil(t, stored.LastError)
	assert.Equal(t, "smtp unavailable", *stored.LastError)
}

func TestFeedbackSubmitRejectsBlankMessage(t *testing.T) {
	f := newFeedbackFixture(t, nil)

	_, err := f.svc.Submit(context.Background(), &dto.FeedbackRequest{Message: " \n\t "}, FeedbackMeta{})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestComposeFeedbackEmail(t *testing.T) {
	cfg := FeedbackMailConfig{Recipient: "team@example.com", Subject: "Feedback"}

	tests := []struct {
		name        string
		feedback    entity.Feedback
		wantReplyTo string
		contains    []string
	}{
		{
			name:     "no sender",
			feedback: entity.Feedback{Message: "hi"},
			contains: []string{"URL: (not specified)"},
		},
		{
			name:        "valid sender",
			feedback:    entity.Feedback{Message: "hi", From: "a@b.co", AdditionalInformation: "extra"},
			wantReplyTo: "a@b.co",
			contains:    []string{"From: a@b.co", "extra"},
		},
		{
			name:     "invalid sender",
			feedback: entity.Feedback{Message: "hi", From: "@twitter-handle"},
			contains: []string{"From (not a valid email address): @twitter-handle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email := ComposeFeedbackEmail(&tt.feedback, cfg)
			assert.Equal(t, cfg.Recipient, email.To)
			assert.Equal(t, cfg.Subject, email.Subject)
			assert.Equal(t, tt.wantReplyTo, email.ReplyTo)
			for _, want := range tt.contains {
				assert.Contains(t, email.Body, want)
			}
		})
	}
}
