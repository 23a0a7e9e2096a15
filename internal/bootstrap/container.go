package bootstrap

import (
	"context"
	"log"

	"streetmix-be/internal/config"
	"streetmix-be/internal/controller"
	"streetmix-be/internal/handler"
	"streetmix-be/internal/pkg/logger"
	"streetmix-be/internal/pkg/mailer"
	"streetmix-be/internal/repository/contract"
	"streetmix-be/internal/repository/implementation"
	"streetmix-be/internal/repository/memory"
	"streetmix-be/internal/service"
	"streetmix-be/internal/websocket"
	"streetmix-be/pkg/events"
	pktNats "streetmix-be/pkg/nats"
	"streetmix-be/pkg/route"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RouteController    controller.IRouteController
	SessionController  controller.ISessionController
	FeedbackController controller.IFeedbackController

	// Background Services (started by Start)
	ConsumerService service.IFeedbackConsumerService

	// WebSockets
	RealtimeHandler *handler.RealtimeHandler
	WebSocketHub    *websocket.Hub

	Logger logger.ILogger

	natsPub *pktNats.Publisher
	rdb     *redis.Client
	pubSub  *gochannel.GoChannel
}

// Option overrides a collaborator, mostly for tests.
type Option func(*options)

type options struct {
	logger   logger.ILogger
	wsLogger logger.ILogger
	mailer   mailer.IEmailService
}

func WithLogger(l logger.ILogger) Option {
	return func(o *options) {
		o.logger = l
		o.wsLogger = l
	}
}

func WithEmailService(m mailer.IEmailService) Option {
	return func(o *options) { o.mailer = m }
}

// NewContainer wires the application. db may be nil, in which case
// feedback is kept in memory. NATS and Redis are optional.
func NewContainer(db *gorm.DB, cfg *config.Config, opts ...Option) *Container {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	// 1. Core Facades
	if o.logger == nil {
		o.logger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}
	if o.wsLogger == nil {
		o.wsLogger = logger.NewIsolatedLogger(cfg.App.RealtimeLogPath)
	}
	sysLogger := o.logger

	emailService := o.mailer
	if emailService == nil {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
			sysLogger,
		)
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	// 3. Infrastructure
	var publisher events.Publisher = events.NopPublisher{}
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		p, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = p
			publisher = p
		}
	}

	rdb := connectRedis(cfg.App.RedisURL)

	var sessionRepo contract.SessionRepository
	if cfg.Session.Backend == "redis" && rdb != nil {
		sessionRepo = implementation.NewRedisSessionRepository(rdb, cfg.Session.TTL)
		log.Printf("[INFO] Using Session Backend: REDIS")
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Session.TTL)
		log.Printf("[INFO] Using Session Backend: MEMORY")
	}

	var feedbackRepo contract.FeedbackRepository
	if db != nil {
		feedbackRepo = implementation.NewFeedbackRepository(db)
	} else {
		feedbackRepo = memory.NewFeedbackRepository()
	}

	wsHub := websocket.NewHub(rdb, uuid.NewString(), o.wsLogger)

	// 4. Services
	routeService := service.NewRouteService(RouteTokens(cfg.Routes))
	shareMenu := service.NewShareMenuNotifier(wsHub, publisher, o.wsLogger)
	sessionService := service.NewSessionService(sessionRepo, routeService, shareMenu, publisher, sysLogger)
	feedbackService := service.NewFeedbackService(feedbackRepo, pubSub, cfg.Feedback.Topic, publisher, sysLogger)
	consumerService := service.NewFeedbackConsumerService(
		pubSub,
		cfg.Feedback.Topic,
		feedbackRepo,
		emailService,
		service.FeedbackMailConfig{Recipient: cfg.Feedback.Recipient, Subject: cfg.Feedback.Subject},
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		RouteController:    controller.NewRouteController(routeService),
		SessionController:  controller.NewSessionController(sessionService, cfg.App.JWTSecret, cfg.Session.TTL),
		FeedbackController: controller.NewFeedbackController(feedbackService),

		ConsumerService: consumerService,

		RealtimeHandler: handler.NewRealtimeHandler(sessionService, wsHub, cfg.App.JWTSecret, o.wsLogger),
		WebSocketHub:    wsHub,

		Logger: sysLogger,

		natsPub: natsPub,
		rdb:     rdb,
		pubSub:  pubSub,
	}
}

// Start runs the hub and the feedback consumer until ctx is cancelled.
// The consumer is subscribed before Start returns.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	return c.ConsumerService.Consume(ctx)
}

func (c *Container) Close() {
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	_ = c.pubSub.Close()
	_ = c.Logger.Sync()
}

// RouteTokens maps the configured vocabulary overrides onto route.Tokens.
// Unset values keep the defaults.
func RouteTokens(rc config.RoutesConfig) route.Tokens {
	t := route.Tokens{
		NewStreet:         rc.NewStreet,
		NewStreetCopyLast: rc.NewStreetCopyLast,
		JustSignedIn:      rc.JustSignedIn,
		Error:             rc.Error,
		GlobalGallery:     rc.GlobalGallery,
		Help:              rc.Help,
		About:             rc.About,
		NoUser:            rc.NoUser,
	}
	if rc.ReservedPrefix != "" {
		t.ReservedPrefix = rc.ReservedPrefix[0]
	}
	return t.WithDefaults()
}

func connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
