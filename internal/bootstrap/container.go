package bootstrap

import (
	"context"
	"fmt"

	"ai-learning-assistant-be/internal/config"
	"ai-learning-assistant-be/internal/constant"
	"ai-learning-assistant-be/internal/controller"
	"ai-learning-assistant-be/internal/pkg/logger"
	"ai-learning-assistant-be/internal/pkg/serverutils"
	"ai-learning-assistant-be/internal/repository/cache"
	"ai-learning-assistant-be/internal/repository/contract"
	"ai-learning-assistant-be/internal/repository/memory"
	"ai-learning-assistant-be/internal/repository/unitofwork"
	"ai-learning-assistant-be/internal/service"
	"ai-learning-assistant-be/pkg/chat/content"
	"ai-learning-assistant-be/pkg/chat/state"
	"ai-learning-assistant-be/pkg/document"
	"ai-learning-assistant-be/pkg/events"
	"ai-learning-assistant-be/pkg/llm"
	"ai-learning-assistant-be/pkg/llm/factory"
	pktNats "ai-learning-assistant-be/pkg/nats"
	"ai-learning-assistant-be/pkg/quiz"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	UserController    controller.IUserController
	ContentController controller.IContentController
	ChatController    controller.IChatController
	QuizController    controller.IQuizController

	closers []func()
}

// Close releases bus and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// 2. LLM Provider
	llmProvider, err := newLLMProvider(cfg.Ai)
	if err != nil {
		return nil, err
	}
	sysLogger.Info(constant.ModuleServer, "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 3. Quiz batch cache
	batches := newQuizBatchRepository(ctx, c, cfg, sysLogger)

	// 4. Event Bus
	activityService := service.NewActivityService(sysLogger)
	publisher, err := newEventBus(ctx, c, cfg, activityService, sysLogger)
	if err != nil {
		c.Close()
		return nil, err
	}

	// 5. Services
	contents := content.NewStore(uowFactory, constant.DefaultChatSummary)
	states := state.NewManager(uowFactory, cfg.Chat.SummaryLength)

	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, cfg.Auth.AccessTokenTTL, sysLogger)
	userService := service.NewUserService(uowFactory, publisher, sysLogger, cfg.App.UploadDir, cfg.App.MaxAvatarBytes)
	contentService := service.NewContentService(contents, document.NewExtractor(cfg.App.MaxDocumentBytes), publisher, sysLogger)
	chatService := service.NewChatService(uowFactory, states, llmProvider, publisher, sysLogger, cfg.Chat.HistoryWindow)
	quizService := service.NewQuizService(contents, llmProvider, quiz.NewDecoder(cfg.Chat.QuizSize), batches, userService, sysLogger)

	// 6. Controllers
	auth := serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)
	c.AuthController = controller.NewAuthController(authService)
	c.UserController = controller.NewUserController(userService, auth)
	c.ContentController = controller.NewContentController(contentService, auth)
	c.ChatController = controller.NewChatController(chatService, auth)
	c.QuizController = controller.NewQuizController(quizService, auth)

	return c, nil
}

// RegisterRoutes mounts every controller under r.
func (c *Container) RegisterRoutes(r fiber.Router) {
	c.AuthController.RegisterRoutes(r)
	c.UserController.RegisterRoutes(r)
	c.ContentController.RegisterRoutes(r)
	c.ChatController.RegisterRoutes(r)
	c.QuizController.RegisterRoutes(r)
}

func newLLMProvider(cfg config.AIConfig) (llm.LLMProvider, error) {
	fc := factory.Config{
		Provider:    cfg.LLMProvider,
		Model:       cfg.LLMModel,
		Temperature: cfg.Temperature,
		Timeout:     cfg.RequestTimeout,
	}
	switch cfg.LLMProvider {
	case factory.ProviderOllama:
		fc.BaseURL = cfg.OllamaBaseURL
	case factory.ProviderOpenAI:
		fc.APIKey = cfg.OpenAIKey
		fc.BaseURL = cfg.OpenAIBaseURL
	default:
		fc.APIKey = cfg.GoogleGemini
		fc.BaseURL = cfg.GeminiBaseURL
	}

	provider, err := factory.NewLLMProvider(fc)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	return provider, nil
}

// newQuizBatchRepository prefers redis and falls back to process memory when
// redis is not configured or unreachable.
func newQuizBatchRepository(ctx context.Context, c *Container, cfg *config.Config, sysLogger logger.ILogger) contract.QuizBatchRepository {
	if cfg.App.RedisURL == "" {
		sysLogger.Info(constant.ModuleServer, "REDIS_URL not set, caching quizzes in memory", nil)
		return memory.NewQuizBatchRepository(cfg.Chat.QuizTTL)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn(constant.ModuleServer, "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		sysLogger.Warn(constant.ModuleServer, "Failed to connect to Redis, caching quizzes in memory", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return memory.NewQuizBatchRepository(cfg.Chat.QuizTTL)
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return cache.NewQuizBatchRepository(rdb, cfg.Chat.QuizTTL)
}

// newEventBus connects to NATS JetStream when configured. Otherwise events
// travel over an in-process channel. Either way the activity service consumes
// them.
func newEventBus(ctx context.Context, c *Container, cfg *config.Config, activity service.IActivityService, sysLogger logger.ILogger) (events.Publisher, error) {
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(ctx, cfg.App.NatsURL)
		if err == nil {
			c.closers = append(c.closers, natsPub.Close)

			natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, func(subject string, err error) {
				sysLogger.Warn(constant.ModuleActivity, "Event handling failed", map[string]interface{}{
					"subject": subject,
					"error":   err.Error(),
				})
			})
			if err != nil {
				return nil, err
			}
			c.closers = append(c.closers, natsSub.Close)

			if err := natsSub.Subscribe(ctx, pktNats.Subject(">"), "activity-log", activity.Handle); err != nil {
				return nil, err
			}
			sysLogger.Info(constant.ModuleServer, "Events published to NATS JetStream", map[string]interface{}{"stream": pktNats.StreamName})
			return natsPub, nil
		}
		sysLogger.Warn(constant.ModuleServer, "Failed to connect to NATS, using in-process bus", map[string]interface{}{"error": err.Error()})
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	c.closers = append(c.closers, func() { _ = pubSub.Close() })
	if err := activity.Consume(ctx, pubSub, events.Topic); err != nil {
		return nil, err
	}
	return events.NewChannelPublisher(pubSub, events.Topic), nil
}
