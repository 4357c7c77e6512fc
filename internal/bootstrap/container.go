package bootstrap

import (
	"context"
	"log"

	"champ-voting-be/internal/config"
	"champ-voting-be/internal/controller"
	"champ-voting-be/internal/pkg/logger"
	"champ-voting-be/internal/repository/unitofwork"
	"champ-voting-be/internal/service"
	"champ-voting-be/internal/websocket"

	pktNats "champ-voting-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	OAuthController    controller.IOAuthController
	SessionController  controller.ISessionController
	ChampionController controller.IChampionController
	VoteController     controller.IVoteController
	StatsController    controller.IStatsController

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	SessionService      service.ISessionService
	ChampionViewService service.IChampionViewService

	// WebSockets
	WebSocketHub *websocket.Hub

	// InstanceID identifies this process on the shared buses.
	InstanceID string
}

// NewContainer wires the object graph. db may be nil, in which case all
// state lives in process memory.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	var uowFactory unitofwork.RepositoryFactory
	if db == nil || cfg.App.UseMemoryStore {
		uowFactory = unitofwork.NewMemoryFactory()
		log.Printf("[INFO] Using in-memory store")
	} else {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	}
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	// Redis
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
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	publisherService := service.NewPublisherService(pubSub, natsPub, sysLogger)
	consumerService := service.NewConsumerService(natsSub, publisherService, sysLogger)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, publisherService.InstanceID(), wsLogger)
	go wsHub.Run()

	// 3. Services
	authService := service.NewAuthService(uowFactory, cfg)
	oauthService := service.NewOAuthService(uowFactory, authService, cfg)
	catalogService := service.NewCatalogService(cfg, sysLogger)

	sessionService := service.NewSessionService(uowFactory, pubSub, publisherService, sysLogger)
	championViewService := service.NewChampionViewService(uowFactory, pubSub, sessionService, publisherService, sysLogger)
	voteService := service.NewVoteService(uowFactory, championViewService, publisherService, sysLogger)

	// 4. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		OAuthController:    controller.NewOAuthController(oauthService),
		SessionController:  controller.NewSessionController(sessionService),
		ChampionController: controller.NewChampionController(championViewService, sessionService, catalogService),
		VoteController:     controller.NewVoteController(voteService, sessionService),
		StatsController:    controller.NewStatsController(championViewService, sessionService),

		ConsumerService:     consumerService,
		SessionService:      sessionService,
		ChampionViewService: championViewService,

		WebSocketHub: wsHub,
		InstanceID:   publisherService.InstanceID(),
	}
}
