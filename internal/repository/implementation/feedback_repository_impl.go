package implementation

import (
	"context"
	"errors"
	"time"

	"streetmix-be/internal/entity"
	"streetmix-be/internal/mapper"
	"streetmix-be/internal/model"
	"streetmix-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeedbackMapper
}

func NewFeedbackRepository(db *gorm.DB) contract.FeedbackRepository {
	return &FeedbackRepositoryImpl{db: db, mapper: mapper.NewFeedbackMapper()}
}

func (r *FeedbackRepositoryImpl) Create(ctx context.Context, feedback *entity.Feedback) error {
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(feedback)).Error
}

func (r *FeedbackRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Feedback, error) {
	var m model.Feedback
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, contract.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeedbackRepositoryImpl) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	return r.updateStatus(ctx, id, map[string]interface{}{
		"status":     string(entity.FeedbackStatusSent),
		"sent_at":    sentAt,
		"last_error": nil,
	})
}

func (r *FeedbackRepositoryImpl) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.updateStatus(ctx, id, map[string]interface{}{
		"status":     string(entity.FeedbackStatusFailed),
		"last_error": reason,
	})
}

func (r *FeedbackRepositoryImpl) updateStatus(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Feedback{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	return nil
}

// AutoMigrate creates or updates the tables this repository needs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Feedback{})
}
