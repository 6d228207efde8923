package bootstrap

import (
	"context"
	"log"

	"learner-account-be/internal/config"
	"learner-account-be/internal/controller"
	"learner-account-be/internal/pkg/lmsclient"
	"learner-account-be/internal/pkg/logger"
	"learner-account-be/internal/repository/contract"
	"learner-account-be/internal/repository/implementation"
	"learner-account-be/internal/repository/memory"
	"learner-account-be/internal/service"
	"learner-account-be/internal/websocket"
	"learner-account-be/pkg/events"
	pktNats "learner-account-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DeleteAccountController          controller.IDeleteAccountController
	NotificationPreferenceController controller.INotificationPreferenceController
	HealthController                 *controller.HealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	WebSocketHub *websocket.Hub
	Logger       logger.ILogger

	natsPub *pktNats.Publisher
	rdb     *redis.Client
	pubSub  *gochannel.GoChannel
}

// NewContainer wires the service. db may be nil, in which case deletion
// attempts are not persisted. ctx bounds the background workers.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// NATS (optional)
	var eventPublisher events.Publisher
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
			eventPublisher = pub
		}
	}

	// Redis (optional, enables cross-instance state fan-out)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// Audit storage (optional)
	var attempts contract.DeletionAttemptRepository
	if db != nil {
		attempts = implementation.NewDeletionAttemptRepository(db)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.StreamLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run(ctx)

	// LMS transport
	transport := lmsclient.New(lmsclient.Options{
		TokenType: cfg.Lms.TokenType,
		Timeout:   cfg.Lms.Timeout,
	})

	// 4. Services
	sessionRepo := memory.NewFlowSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)

	transitionService := service.NewTransitionPublisherService(service.FlowTransitionTopic, pubSub)
	consumerService := service.NewAuditConsumerService(
		pubSub,
		service.FlowTransitionTopic,
		attempts,
		eventPublisher,
		sysLogger,
	)

	lmsAccountService := service.NewLmsAccountService(cfg.Lms.BaseURL, transport)
	deleteAccountService := service.NewDeleteAccountService(
		sessionRepo,
		lmsAccountService,
		transitionService,
		wsHub,
		cfg.Lms.LogoutURL,
		sysLogger,
	)
	preferenceService := service.NewNotificationPreferenceService(cfg.Lms.BaseURL, transport)

	// 5. Controllers
	return &Container{
		DeleteAccountController:          controller.NewDeleteAccountController(deleteAccountService, wsHub),
		NotificationPreferenceController: controller.NewNotificationPreferenceController(preferenceService),
		HealthController:                 controller.NewHealthController(sessionRepo.Count),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		Logger:          sysLogger,

		natsPub: natsPub,
		rdb:     rdb,
		pubSub:  pubSub,
	}
}

// Close releases the external connections held by the container.
func (c *Container) Close() {
	if c.pubSub != nil {
		_ = c.pubSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	_ = c.Logger.Sync()
}
