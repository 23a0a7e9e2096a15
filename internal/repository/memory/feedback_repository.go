package memory

import (
	"context"
	"sync"
	"time"

	"streetmix-be/internal/entity"
	"streetmix-be/internal/repository/contract"

	"github.com/google/uuid"
)

// FeedbackRepository keeps submissions in process memory. It is used when no
// database is configured.
type FeedbackRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]entity.Feedback
}

func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{items: make(map[uuid.UUID]entity.Feedback)}
}

func (r *FeedbackRepository) Create(_ context.Context, feedback *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[feedback.Id] = *feedback
	return nil
}

func (r *FeedbackRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.items[id]
	if !ok {
		return nil, contract.ErrNotFound
	}
	return &f, nil
}

func (r *FeedbackRepository) MarkSent(_ context.Context, id uuid.UUID, sentAt time.Time) error {
	return r.update(id, func(f *entity.Feedback) {
		f.Status = entity.FeedbackStatusSent
		f.SentAt = &sentAt
		f.LastError = nil
	})
}

func (r *FeedbackRepository) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	return r.update(id, func(f *entity.Feedback) {
		f.Status = entity.FeedbackStatusFailed
		f.LastError = &reason
	})
}

func (r *FeedbackRepository) update(id uuid.UUID, fn func(f *entity.Feedback)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[id]
	if !ok {
		return contract.ErrNotFound
	}
	fn(&f)
	r.items[id] = f
	return nil
}
