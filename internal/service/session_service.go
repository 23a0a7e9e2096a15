package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"streetmix-be/internal/entity"
	"streetmix-be/internal/pkg/logger"
	"streetmix-be/internal/repository/contract"
	"streetmix-be/pkg/events"
	"streetmix-be/pkg/pageurl"
	"streetmix-be/pkg/route"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type ISessionService interface {
	Create(ctx context.Context) (*entity.NavigationSession, error)
	Get(ctx context.Context, id string) (*entity.NavigationSession, error)
	Navigate(ctx context.Context, id, path string) (*entity.NavigationSession, error)
	UpdatePageURL(ctx context.Context, id string, forceGallery bool, flags *pageurl.DebugFlags) (string, error)
	Delete(ctx context.Context, id string) error
}

type sessionService struct {
	repo      contract.SessionRepository
	routes    IRouteService
	shareMenu IShareMenuNotifier
	publisher events.Publisher
	logger    logger.ILogger
	now       func() time.Time
}

func NewSessionService(
	repo contract.SessionRepository,
	routes IRouteService,
	shareMenu IShareMenuNotifier,
	publisher events.Publisher,
	log logger.ILogger,
) ISessionService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &sessionService{
		repo:      repo,
		routes:    routes,
		shareMenu: shareMenu,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (s *sessionService) Create(ctx context.Context) (*entity.NavigationSession, error) {
	now := s.now().UTC()
	session := &entity.NavigationSession{
		Id:        uuid.NewString(),
		Mode:      route.ModeContinue,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

func (s *sessionService) Get(ctx context.Context, id string) (*entity.NavigationSession, error) {
	session, err := s.repo.Get(ctx, id)
	if errors.Is(err, contract.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return session, nil
}

// Navigate resolves path and applies the outcome to the session explicitly:
// street identity for existing streets, gallery owner for user galleries.
func (s *sessionService) Navigate(ctx context.Context, id, path string) (*entity.NavigationSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	path, query, hasQuery := strings.Cut(path, "?")
	res := s.routes.Resolver().Resolve(path)

	session.Mode = res.Mode
	session.RouteContext = res.Context
	res.ApplyTo(&session.Street)
	switch res.Mode {
	case route.ModeUserGallery:
		session.GalleryUserId = res.Context.GalleryUserID
	case route.ModeGlobalGallery:
		session.GalleryUserId = nil
	}
	if hasQuery {
		session.DebugFlags = pageurl.ParseDebugFlags(query)
	}
	session.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Debug("SessionService", "Session navigated", map[string]interface{}{
		"session_id": id,
		"path":       path,
		"mode":       res.Mode.String(),
	})

	ev := events.New(events.TypeSessionNavigated, map[string]interface{}{
		"session_id": id,
		"mode":       res.Mode.String(),
	})
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("SessionService", "Failed to publish navigation event", map[string]interface{}{"error": err.Error()})
	}

	return session, nil
}

// UpdatePageURL runs the URL writer over the session. The session itself is
// the history the URL is written to. A nil flags keeps the session's flags.
func (s *sessionService) UpdatePageURL(ctx context.Context, id string, forceGallery bool, flags *pageurl.DebugFlags) (string, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if flags != nil {
		session.DebugFlags = *flags
	}

	writer := pageurl.NewWriter(
		s.routes.Builder(),
		&sessionHistory{repo: s.repo, session: session, now: s.now},
		sessionShareMenu{sessionID: id, notifier: s.shareMenu},
	)

	url, err := writer.Update(ctx, forceGallery, session.PageState(), session.DebugFlags)
	if err != nil && url == "" {
		return "", err
	}
	if err != nil {
		// URL is already stored; a share menu that missed the update
		// catches up on the next one.
		s.logger.Warn("SessionService", "Share menu update failed", map[string]interface{}{"session_id": id, "error": err.Error()})
	}
	return url, nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// sessionHistory replaces the session's current URL in place.
type sessionHistory struct {
	repo    contract.SessionRepository
	session *entity.NavigationSession
	now     func() time.Time
}

func (h *sessionHistory) ReplaceState(ctx context.Context, url string) error {
	h.session.CurrentURL = url
	h.session.UpdatedAt = h.now().UTC()
	return h.repo.Save(ctx, h.session)
}
