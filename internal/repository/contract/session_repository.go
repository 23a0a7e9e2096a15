package contract

import (
	"context"

	"streetmix-be/internal/entity"
)

type SessionRepository interface {
	Save(ctx context.Context, session *entity.NavigationSession) error
	// Get returns ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (*entity.NavigationSession, error)
	Delete(ctx context.Context, id string) error
}
