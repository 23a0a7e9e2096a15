package handler

import (
	"streetmix-be/internal/pkg/logger"
	"streetmix-be/internal/pkg/serverutils"
	"streetmix-be/internal/service"
	internalWS "streetmix-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RealtimeHandler upgrades share menu connections for a navigation session.
type RealtimeHandler struct {
	sessions  service.ISessionService
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewRealtimeHandler(sessions service.ISessionService, hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *RealtimeHandler {
	return &RealtimeHandler{
		sessions:  sessions,
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// ServeWs checks the session before upgrading. Browsers cannot set headers
// on a websocket handshake, so the token usually arrives as ?token=.
func (h *RealtimeHandler) ServeWs(c *fiber.Ctx) error {
	sessionID, ok := c.Locals(serverutils.SessionIDLocal).(string)
	if !ok {
		return fiber.ErrUnauthorized
	}

	if _, err := h.sessions.Get(c.UserContext(), sessionID); err != nil {
		h.logger.Warn("RealtimeHandler", "Rejected handshake for unknown session", map[string]interface{}{"session_id": sessionID})
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("RealtimeHandler", "Share menu connected", map[string]interface{}{"session_id": sessionID})
		internalWS.ServeWs(h.hub, conn, sessionID)
		h.logger.Info("RealtimeHandler", "Share menu disconnected", map[string]interface{}{"session_id": sessionID})
	})(c)
}

func (h *RealtimeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/sessions/:id", serverutils.SessionTokenMiddleware(h.jwtSecret), h.ServeWs)
}
