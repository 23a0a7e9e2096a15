package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"streetmix-be/internal/pkg/logger"
	"streetmix-be/internal/repository/memory"
	internalWS "streetmix-be/internal/websocket"
	"streetmix-be/pkg/events"
	"streetmix-be/pkg/pageurl"
	"streetmix-be/pkg/route"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPusher struct {
	mu   sync.Mutex
	sent map[string][]internalWS.Message
	err  error
}

func newRecordingPusher() *recordingPusher {
	return &recordingPusher{sent: make(map[string][]internalWS.Message)}
}

func (p *recordingPusher) SendToSession(_ context.Context, sessionID string, msg internalWS.Message) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent[sessionID] = append(p.sent[sessionID], msg)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, ev := range p.events {
		out = append(out, ev.EventType())
	}
	return out
}

func newTestSessionService(pusher SessionPusher, pub events.Publisher) ISessionService {
	log := logger.NewNopLogger()
	return NewSessionService(
		memory.NewSessionRepository(time.Hour),
		NewRouteService(route.DefaultTokens()),
		NewShareMenuNotifier(pusher, pub, log),
		pub,
		log,
	)
}

func TestSessionNavigate(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	svc := newTestSessionService(newRecordingPusher(), pub)

	s, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, route.ModeContinue, s.Mode)

	s, err = svc.Navigate(ctx, s.Id, "/~alice/42/main-street")
	require.NoError(t, err)
	assert.Equal(t, route.ModeExistingStreet, s.Mode)
	require.NotNil(t, s.Street.CreatorID)
	assert.Equal(t, "alice", *s.Street.CreatorID)
	assert.Equal(t, "42", s.Street.NamespacedID)

	s, err = svc.Navigate(ctx, s.Id, "/bob")
	require.NoError(t, err)
	assert.Equal(t, route.ModeUserGallery, s.Mode)
	require.NotNil(t, s.GalleryUserId)
	assert.Equal(t, "bob", *s.GalleryUserId)
	assert.Equal(t, "42", s.Street.NamespacedID, "gallery navigation keeps the loaded street")

	s, err = svc.Navigate(ctx, s.Id, "/nowhere/")
	require.NoError(t, err)
	assert.Equal(t, route.ModeUserGallery, s.Mode)

	s, err = svc.Navigate(ctx, s.Id, "/a//b")
	require.NoError(t, err)
	assert.Equal(t, route.ModeNotFound, s.Mode)

	stored, err := svc.Get(ctx, s.Id)
	require.NoError(t, err)
	assert.Equal(t, route.ModeNotFound, stored.Mode)

	assert.Contains(t, pub.types(), events.TypeSessionNavigated)
}

func TestSessionNavigateReadsDebugFlags(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(newRecordingPusher(), nil)

	s, _ := svc.Create(ctx)
	s, err := svc.Navigate(ctx, s.Id, "/-/7?debug-force-metric&debug-experimental")
	require.NoError(t, err)

	assert.Equal(t, route.ModeExistingStreet, s.Mode)
	assert.Nil(t, s.Street.CreatorID)
	assert.True(t, s.DebugFlags.ForceMetric)
	assert.True(t, s.DebugFlags.Experimental)
}

func TestSessionUpdatePageURL(t *testing.T) {
	ctx := context.Background()
	pusher := newRecordingPusher()
	pub := &recordingPublisher{}
	svc := newTestSessionService(pusher, pub)

	s, _ := svc.Create(ctx)
	_, err := svc.Navigate(ctx, s.Id, "/alice/42")
	require.NoError(t, err)

	url, err := svc.UpdatePageURL(ctx, s.Id, false, &pageurl.DebugFlags{HoverPolygon: true, ForceTouch: true})
	require.NoError(t, err)
	assert.Equal(t, "/alice/42?debug-hover-polygon&debug-force-touch", url)

	stored, err := svc.Get(ctx, s.Id)
	require.NoError(t, err)
	assert.Equal(t, url, stored.CurrentURL)
	assert.True(t, stored.DebugFlags.HoverPolygon)

	require.Len(t, pusher.sent[s.Id], 1)
	assert.Equal(t, ShareMenuUpdateMessage, pusher.sent[s.Id][0].Type)
	assert.Equal(t, map[string]string{"url": url}, pusher.sent[s.Id][0].Data)
	assert.Contains(t, pub.types(), events.TypePageURLUpdated)

	_, err = svc.Navigate(ctx, s.Id, "/bob")
	require.NoError(t, err)
	url, err = svc.UpdatePageURL(ctx, s.Id, true, nil)
	require.NoError(t, err)
	assert.Equal(t, "/bob?debug-hover-polygon&debug-force-touch", url, "nil flags keep the stored ones")
}

func TestSessionUpdatePageURLShareMenuFailure(t *testing.T) {
	ctx := context.Background()
	pusher := newRecordingPusher()
	pusher.err = errors.New("hub down")
	svc := newTestSessionService(pusher, nil)

	s, _ := svc.Create(ctx)
	url, err := svc.UpdatePageURL(ctx, s.Id, true, nil)
	require.NoError(t, err)
	assert.Equal(t, "/gallery/", url)

	stored, _ := svc.Get(ctx, s.Id)
	assert.Equal(t, "/gallery/", stored.CurrentURL)
}

func TestSessionNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(newRecordingPusher(), nil)

	_, err := svc.Navigate(ctx, "missing", "/new")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.UpdatePageURL(ctx, "missing", false, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrSessionNotFound)

	s, _ := svc.Create(ctx)
	require.NoError(t, svc.Delete(ctx, s.Id))
	_, err = svc.Get(ctx, s.Id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRouteServiceResolveStripsQuery(t *testing.T) {
	svc := NewRouteService(route.DefaultTokens())

	res := svc.Resolve("/error/404?debug-force-metric")
	assert.Equal(t, "/error/404", res.Path)
	assert.Equal(t, route.ModeError, res.Mode)
	assert.Equal(t, "error", res.Rule)
	require.NotNil(t, res.Context.ErrorCode)
	assert.Equal(t, "404", *res.Context.ErrorCode)
}
