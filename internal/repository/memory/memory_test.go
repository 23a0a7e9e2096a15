package memory

import (
	"context"
	"testing"
	"time"

	"streetmix-be/internal/entity"
	"streetmix-be/internal/repository/contract"
	"streetmix-be/pkg/route"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, contract.ErrNotFound)

	s := &entity.NavigationSession{Id: "abc", Mode: route.ModeNewStreet}
	require.NoError(t, repo.Save(ctx, s))

	s.Mode = route.ModeAbout
	got, err := repo.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, route.ModeNewStreet, got.Mode, "saved value is a copy")
	assert.Equal(t, 1, repo.Count())

	require.NoError(t, repo.Delete(ctx, "abc"))
	_, err = repo.Get(ctx, "abc")
	assert.ErrorIs(t, err, contract.ErrNotFound)
}

func TestSessionRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(10 * time.Millisecond)

	require.NoError(t, repo.Save(ctx, &entity.NavigationSession{Id: "short"}))
	time.Sleep(30 * time.Millisecond)

	_, err := repo.Get(ctx, "short")
	assert.ErrorIs(t, err, contract.ErrNotFound)
}

func TestFeedbackRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()
	id := uuid.New()

	assert.ErrorIs(t, repo.MarkSent(ctx, id, time.Now()), contract.ErrNotFound)

	require.NoError(t, repo.Create(ctx, &entity.Feedback{Id: id, Message: "Hello!", Status: entity.FeedbackStatusQueued}))

	require.NoError(t, repo.MarkFailed(ctx, id, "smtp down"))
	f, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackStatusFailed, f.Status)
	require.NotNil(t, f.LastError)
	assert.Equal(t, "smtp down", *f.LastError)

	require.NoError(t, repo.MarkSent(ctx, id, time.Now()))
	f, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.FeedbackStatusSent, f.Status)
	assert.Nil(t, f.LastError)
	assert.NotNil(t, f.SentAt)
}
