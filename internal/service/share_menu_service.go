package service

import (
	"context"

	"streetmix-be/internal/pkg/logger"
	internalWS "streetmix-be/internal/websocket"
	"streetmix-be/pkg/events"
)

const ShareMenuUpdateMessage = "share_menu.update"

// SessionPusher delivers a frame to the browsers attached to a session.
type SessionPusher interface {
	SendToSession(ctx context.Context, sessionID string, msg internalWS.Message) error
}

type IShareMenuNotifier interface {
	Notify(ctx context.Context, sessionID, url string) error
}

type shareMenuNotifier struct {
	pusher    SessionPusher
	publisher events.Publisher
	logger    logger.ILogger
}

func NewShareMenuNotifier(pusher SessionPusher, publisher events.Publisher, log logger.ILogger) IShareMenuNotifier {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &shareMenuNotifier{pusher: pusher, publisher: publisher, logger: log}
}

// Notify asks the session's share menus to re-render with url. The bus event
// is best effort; only a failed push is reported.
func (n *shareMenuNotifier) Notify(ctx context.Context, sessionID, url string) error {
	err := n.pusher.SendToSession(ctx, sessionID, internalWS.Message{
		Type: ShareMenuUpdateMessage,
		Data: map[string]string{"url": url},
	})
	if err != nil {
		return err
	}

	ev := events.New(events.TypePageURLUpdated, map[string]interface{}{
		"session_id": sessionID,
		"url":        url,
	})
	if err := n.publisher.Publish(ctx, ev); err != nil {
		n.logger.Warn("ShareMenu", "Failed to publish page url event", map[string]interface{}{"session_id": sessionID, "error": err.Error()})
	}
	return nil
}

// sessionShareMenu binds the notifier to one session for the URL writer.
type sessionShareMenu struct {
	sessionID string
	notifier  IShareMenuNotifier
}

func (m sessionShareMenu) Update(ctx context.Context, url string) error {
	return m.notifier.Notify(ctx, m.sessionID, url)
}
