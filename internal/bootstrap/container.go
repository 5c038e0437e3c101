package bootstrap

import (
	"context"
	"log"
	"time"

	"cassie-be/internal/config"
	"cassie-be/internal/controller"
	"cassie-be/internal/handler"
	"cassie-be/internal/pkg/logger"
	"cassie-be/internal/pkg/mailer"
	"cassie-be/internal/repository/memory"
	"cassie-be/internal/repository/unitofwork"
	"cassie-be/internal/service"
	"cassie-be/internal/websocket"
	"cassie-be/pkg/events"
	"cassie-be/pkg/journal"
	"cassie-be/pkg/llm/factory"

	pktNats "cassie-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// JournalTopic is the in-process topic for saved journal entries.
const JournalTopic = events.TypeJournalEntrySaved

type Container struct {
	// Controllers
	ChatController       controller.IChatController
	PlanController       controller.IPlanController
	OnboardingController controller.IOnboardingController
	JournalController    controller.IJournalController
	DashboardController  controller.IDashboardController
	CoachController      controller.ICoachController
	AuthController       controller.IAuthController
	PaymentController    controller.IPaymentController

	// Background services, started by main
	ConsumerService     service.IConsumerService
	NotificationService service.INotificationService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger *logger.ZapLogger

	closers []func()
}

// Close releases bus and cache connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		sysLogger,
	)

	// 2. In-process bus for journal progress
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. NATS for domain events. A missing server leaves the bus disabled.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	c.closers = append(c.closers, natsPub.Close)

	var eventSubscriber service.EventSubscriber
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		eventSubscriber = natsSub
		c.closers = append(c.closers, natsSub.Close)
	}

	// 4. Redis for idempotency and websocket fan-out, go-cache otherwise
	var rdb *redis.Client
	var idempotency memory.IdempotencyStore = memory.NewCacheIdempotencyStore(memory.DefaultIdempotencyTTL)
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		client := redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
			_ = client.Close()
		} else {
			rdb = client
			idempotency = memory.NewRedisIdempotencyStore(rdb, memory.DefaultIdempotencyTTL)
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}
		cancel()
	}

	// 5. Completion provider
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		APIKey:   cfg.Keys.For(cfg.Ai.LLMProvider),
		Timeout:  time.Duration(cfg.Ai.RequestTimeout) * time.Second,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 6. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.NotificationLog)
	c.WebSocketHub = websocket.NewHub(rdb, wsLogger)

	// 7. Services
	temperature := cfg.Ai.Temperature
	replyService := service.NewReplyService(uowFactory, llmProvider, natsPub, idempotency, service.ReplyConfig{
		Model:       cfg.Ai.LLMModel,
		MaxTokens:   cfg.Ai.MaxTokens,
		Temperature: &temperature,
	}, sysLogger)
	onboardingService := service.NewOnboardingService(uowFactory, cfg.Payment.MidtransServerKey != "", sysLogger)
	publisherService := service.NewPublisherService(JournalTopic, pubSub)
	journalService := service.NewJournalService(uowFactory, onboardingService, publisherService, journal.NewPicker(nil), sysLogger)
	dashboardService := service.NewDashboardService(uowFactory, onboardingService)
	coachService := service.NewCoachService(uowFactory, onboardingService, replyService, sysLogger)
	authService := service.NewAuthService(uowFactory, emailService, natsPub, cfg.App.FrontendURL, sysLogger)
	paymentService := service.NewPaymentService(
		uowFactory,
		service.NewSnapGateway(cfg.Payment.MidtransServerKey, cfg.Payment.MidtransIsProduction),
		cfg.Payment.MidtransServerKey,
		cfg.App.FrontendURL,
		natsPub,
		emailService,
		cfg.Payment.IDRPerUSD,
		sysLogger,
	)

	c.ConsumerService = service.NewConsumerService(pubSub, JournalTopic, uowFactory, natsPub, sysLogger)
	c.NotificationService = service.NewNotificationService(uowFactory, eventSubscriber, c.WebSocketHub, wsLogger)
	c.NotificationHandler = handler.NewNotificationHandler(c.NotificationService, c.WebSocketHub, wsLogger)

	// 8. Controllers
	c.ChatController = controller.NewChatController(replyService)
	c.PlanController = controller.NewPlanController(onboardingService)
	c.OnboardingController = controller.NewOnboardingController(onboardingService)
	c.JournalController = controller.NewJournalController(journalService)
	c.DashboardController = controller.NewDashboardController(dashboardService)
	c.CoachController = controller.NewCoachController(coachService)
	c.AuthController = controller.NewAuthController(authService)
	c.PaymentController = controller.NewPaymentController(paymentService)

	return c
}
