package memory

import (
	"context"
	"time"

	"streetmix-be/internal/entity"
	"streetmix-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps sessions for ttl after their last save and
// purges expired ones every 10 minutes.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionRepository) Save(_ context.Context, session *entity.NavigationSession) error {
	// Store a copy so callers cannot change the cached value behind our back
	r.cache.Set(session.Id, *session, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, id string) (*entity.NavigationSession, error) {
	if x, found := r.cache.Get(id); found {
		s := x.(entity.NavigationSession)
		return &s, nil
	}
	return nil, contract.ErrNotFound
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
