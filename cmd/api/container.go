// Package main provides the API server entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/quizforge/quizforge/internal/application/audit"
	categoryapp "github.com/quizforge/quizforge/internal/application/category"
	"github.com/quizforge/quizforge/internal/application/dispatch"
	questionapp "github.com/quizforge/quizforge/internal/application/question"
	quizapp "github.com/quizforge/quizforge/internal/application/quiz"
	"github.com/quizforge/quizforge/internal/application/security"
	"github.com/quizforge/quizforge/internal/config"
	httphandler "github.com/quizforge/quizforge/internal/handler/http"
	wshandler "github.com/quizforge/quizforge/internal/handler/websocket"
	"github.com/quizforge/quizforge/internal/infrastructure/auth"
	auditinfra "github.com/quizforge/quizforge/internal/infrastructure/audit"
	"github.com/quizforge/quizforge/internal/infrastructure/healthcheck"
	"github.com/quizforge/quizforge/internal/infrastructure/repository/mongodb"
	"github.com/quizforge/quizforge/internal/infrastructure/session"
	"github.com/quizforge/quizforge/internal/infrastructure/websocket"
	"github.com/quizforge/quizforge/internal/middleware"
)

// Container initialization timeouts.
const (
	containerInitTimeout   = 30 * time.Second
	redisPingTimeout       = 5 * time.Second
	mongoDisconnectTimeout = 10 * time.Second
)

// Container holds all application dependencies and manages their lifecycle.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Infrastructure
	MongoDB *mongo.Client
	Redis   *redis.Client
	Feed    *websocket.Feed
	Emitter *audit.AsyncEmitter
	Health  *healthcheck.Registry

	// Repositories
	QuizRepo     *mongodb.QuizRepository
	QuestionRepo *mongodb.QuestionRepository
	CategoryRepo *mongodb.CategoryRepository
	UserRepo     *mongodb.UserRepository

	// Security
	SessionStore security.SessionStore
	Tracker      *security.Tracker
	Chain        *security.Chain

	// Dispatch
	Registry   *dispatch.Registry
	Dispatcher *dispatch.Dispatcher

	// Auth
	TokenValidator auth.TokenValidator
	UserResolver   *auth.UserResolver

	// HTTP boundary
	QuizHandler     *httphandler.QuizHandler
	QuestionHandler *httphandler.QuestionHandler
	CategoryHandler *httphandler.CategoryHandler
	HealthHandler   *httphandler.HealthHandler
	WSHandler       *wshandler.Handler
	RateLimitStore  middleware.RateLimitStore

	memoryStore *security.MemoryStore
}

// ContainerOption configures the Container.
type ContainerOption func(*Container)

// WithLogger sets a custom logger for the container.
func WithLogger(logger *slog.Logger) ContainerOption {
	return func(c *Container) {
		c.Logger = logger
	}
}

// NewContainer creates a new dependency injection container.
func NewContainer(cfg *config.Config, opts ...ContainerOption) (*Container, error) {
	c := &Container{
		Config: cfg,
		Logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.setupInfrastructure(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to setup infrastructure: %w", err)
	}

	c.setupRepositories()
	c.setupAudit()
	c.setupSecurity()

	if err := c.setupDispatcher(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to setup dispatcher: %w", err)
	}

	if err := c.setupAuth(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to setup auth: %w", err)
	}

	c.setupHandlers()
	c.setupHealth()

	return c, nil
}

// Start launches the background components: the audit emitter and the
// websocket feed loop.
func (c *Container) Start(ctx context.Context) {
	c.Emitter.Start(ctx)
	go c.Feed.Run(ctx)
	if c.memoryStore != nil {
		c.memoryStore.StartJanitor(ctx)
	}
}

// Close releases container resources in reverse dependency order.
func (c *Container) Close() error {
	var errs []error

	if c.Emitter != nil {
		if err := c.Emitter.Close(); err != nil {
			errs = append(errs, fmt.Errorf("audit emitter: %w", err))
		}
	}
	if c.Feed != nil {
		c.Feed.Stop()
	}
	if c.memoryStore != nil {
		c.memoryStore.Close()
	}
	if c.TokenValidator != nil {
		if err := c.TokenValidator.Close(); err != nil {
			errs = append(errs, fmt.Errorf("token validator: %w", err))
		}
	}
	if c.MongoDB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectTimeout)
		if err := c.MongoDB.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongodb: %w", err))
		}
		cancel()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (c *Container) setupInfrastructure() error {
	ctx, cancel := context.WithTimeout(context.Background(), containerInitTimeout)
	defer cancel()

	if err := c.setupMongoDB(ctx); err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}
	if c.needsRedis() {
		if err := c.setupRedis(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}

	c.Feed = websocket.NewFeed(websocket.WithFeedLogger(c.Logger))

	return nil
}

func (c *Container) needsRedis() bool {
	return strings.EqualFold(c.Config.Security.SessionStore, config.StoreRedis) ||
		strings.EqualFold(c.Config.RateLimit.Store, config.StoreRedis) ||
		c.Config.Audit.PublishToRedis
}

func (c *Container) setupMongoDB(ctx context.Context) error {
	clientOpts := options.Client().
		ApplyURI(c.Config.MongoDB.URI).
		SetMaxPoolSize(c.Config.MongoDB.MaxPoolSize)

	client, connectErr := mongo.Connect(clientOpts)
	if connectErr != nil {
		return fmt.Errorf("failed to connect: %w", connectErr)
	}

	pingCtx, cancel := context.WithTimeout(ctx, c.Config.MongoDB.Timeout)
	defer cancel()

	if pingErr := client.Ping(pingCtx, nil); pingErr != nil {
		return fmt.Errorf("failed to ping: %w", pingErr)
	}

	c.MongoDB = client

	c.Logger.InfoContext(ctx, "connected to MongoDB",
		slog.String("database", c.Config.MongoDB.Database),
	)

	indexCtx, indexCancel := context.WithTimeout(ctx, c.Config.MongoDB.Timeout)
	defer indexCancel()

	db := client.Database(c.Config.MongoDB.Database)
	if indexErr := mongodb.CreateAllIndexes(indexCtx, db); indexErr != nil {
		return fmt.Errorf("failed to create indexes: %w", indexErr)
	}

	return nil
}

func (c *Container) setupRedis(ctx context.Context) error {
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
		PoolSize: c.Config.Redis.PoolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if pingErr := c.Redis.Ping(pingCtx).Err(); pingErr != nil {
		return fmt.Errorf("failed to ping: %w", pingErr)
	}

	c.Logger.InfoContext(ctx, "connected to Redis",
		slog.String("addr", c.Config.Redis.Addr),
	)

	return nil
}

func (c *Container) setupRepositories() {
	db := c.MongoDB.Database(c.Config.MongoDB.Database)

	c.QuizRepo = mongodb.NewQuizRepository(db.Collection(mongodb.QuizCollection), c.Logger)
	c.QuestionRepo = mongodb.NewQuestionRepository(db.Collection(mongodb.QuestionCollection), c.Logger)
	c.CategoryRepo = mongodb.NewCategoryRepository(db.Collection(mongodb.CategoryCollection), c.Logger)
	c.UserRepo = mongodb.NewUserRepository(db.Collection(mongodb.UserCollection), c.Logger)
}

func (c *Container) setupAudit() {
	sinks := []audit.Sink{
		auditinfra.NewSlogSink(c.Logger),
		c.Feed,
	}
	if c.Config.Audit.PublishToRedis {
		sinks = append(sinks, auditinfra.NewRedisPublisher(auditinfra.RedisPublisherConfig{
			Client:        c.Redis,
			ChannelPrefix: c.Config.Audit.ChannelPrefix,
		}))
	}

	c.Emitter = audit.NewAsyncEmitter(audit.AsyncEmitterConfig{
		BufferSize: c.Config.Audit.BufferSize,
		Logger:     c.Logger,
		Sinks:      sinks,
	})
}

func (c *Container) setupSecurity() {
	if strings.EqualFold(c.Config.Security.SessionStore, config.StoreMemory) {
		c.memoryStore = security.NewMemoryStore(security.MemoryStoreConfig{
			IdleTTL: c.Config.Security.SessionTTL,
			Logger:  c.Logger,
		})
		c.SessionStore = c.memoryStore
	} else {
		c.SessionStore = session.NewRedisStore(session.RedisStoreConfig{
			Client: c.Redis,
			TTL:    c.Config.Security.SessionTTL,
		})
	}

	c.Tracker = security.NewTracker(security.TrackerConfig{
		Store:         c.SessionStore,
		Emitter:       c.Emitter,
		Logger:        c.Logger,
		StrictIPCheck: c.Config.Security.StrictIPCheck,
	})

	retry := security.RetryPolicy{
		MaxRetries:   c.Config.Security.Retry.MaxRetries,
		InitialDelay: c.Config.Security.Retry.InitialDelay,
		MaxDelay:     c.Config.Security.Retry.MaxDelay,
		Logger:       c.Logger,
	}
	db := c.MongoDB.Database(c.Config.MongoDB.Database)
	checker := mongodb.NewOwnershipChecker(db.Collection(mongodb.QuizCollection), c.Logger)

	c.Chain = security.NewChain(c.Logger,
		security.NewAuthPresenceValidator(c.Emitter),
		security.NewIdentityMatchValidator(c.Emitter),
		security.NewSessionIntegrityValidator(c.Tracker),
		security.NewOwnershipValidator(checker, retry, c.Emitter),
		security.NewActiveStateValidator(checker, retry, c.Emitter),
	)
}

func (c *Container) setupDispatcher() error {
	registry := dispatch.NewRegistry()

	regErrs := []error{
		dispatch.RegisterCommand(registry, quizapp.NewCreateQuizUseCase(c.QuizRepo, c.Logger)),
		dispatch.RegisterCommand(registry, quizapp.NewUpdateQuizUseCase(c.QuizRepo, c.Logger)),
		dispatch.RegisterCommand(registry, quizapp.NewPublishQuizUseCase(c.QuizRepo, c.Logger)),
		dispatch.RegisterCommand(registry, quizapp.NewArchiveQuizUseCase(c.QuizRepo, c.Logger)),
		dispatch.RegisterCommand(registry, quizapp.NewDeleteQuizUseCase(c.QuizRepo, c.QuestionRepo, c.Logger)),
		dispatch.RegisterQuery(registry, quizapp.NewGetQuizUseCase(c.QuizRepo, c.QuestionRepo, c.Logger)),
		dispatch.RegisterQuery(registry, quizapp.NewListQuizzesUseCase(c.QuizRepo, c.Logger)),
		dispatch.RegisterCommand(registry, questionapp.NewAddQuestionUseCase(c.QuestionRepo, c.QuizRepo, c.Logger)),
		dispatch.RegisterCommand(registry, questionapp.NewUpdateQuestionUseCase(c.QuestionRepo, c.QuizRepo, c.Logger)),
		dispatch.RegisterCommand(registry, questionapp.NewRemoveQuestionUseCase(c.QuestionRepo, c.QuizRepo, c.Logger)),
		dispatch.RegisterCommand(registry, categoryapp.NewCreateCategoryUseCase(c.CategoryRepo, c.Logger)),
		dispatch.RegisterCommand(registry, categoryapp.NewRenameCategoryUseCase(c.CategoryRepo, c.Logger)),
		dispatch.RegisterQuery(registry, categoryapp.NewListCategoriesUseCase(c.CategoryRepo)),
	}
	if err := errors.Join(regErrs...); err != nil {
		return err
	}

	// Every request the HTTP boundary can build must resolve to a handler.
	if err := registry.Validate(
		quizapp.CreateQuizCommand{},
		quizapp.UpdateQuizCommand{},
		quizapp.PublishQuizCommand{},
		quizapp.ArchiveQuizCommand{},
		quizapp.DeleteQuizCommand{},
		quizapp.GetQuizQuery{},
		quizapp.ListQuizzesQuery{},
		questionapp.AddQuestionCommand{},
		questionapp.UpdateQuestionCommand{},
		questionapp.RemoveQuestionCommand{},
		categoryapp.CreateCategoryCommand{},
		categoryapp.RenameCategoryCommand{},
		categoryapp.ListCategoriesQuery{},
	); err != nil {
		return err
	}

	c.Registry = registry
	c.Dispatcher = dispatch.New(dispatch.Config{
		Registry: registry,
		Chain:    c.Chain,
		Emitter:  c.Emitter,
		Logger:   c.Logger,
	})

	return nil
}

func (c *Container) setupAuth() error {
	validator, err := auth.NewTokenValidator(auth.Config{
		IssuerURL:       c.Config.OIDC.IssuerURL,
		JWKSURL:         c.Config.OIDC.JWKSURL,
		Audience:        c.Config.OIDC.Audience,
		Leeway:          c.Config.OIDC.Leeway,
		RefreshInterval: c.Config.OIDC.RefreshInterval,
		Logger:          c.Logger,
	})
	if err != nil {
		return err
	}

	c.TokenValidator = validator
	c.UserResolver = auth.NewUserResolver(c.UserRepo, c.Logger)

	return nil
}

func (c *Container) setupHandlers() {
	c.QuizHandler = httphandler.NewQuizHandler(c.Dispatcher)
	c.QuestionHandler = httphandler.NewQuestionHandler(c.Dispatcher)
	c.CategoryHandler = httphandler.NewCategoryHandler(c.Dispatcher)

	c.WSHandler = wshandler.NewHandler(c.Feed,
		wshandler.WithLogger(c.Logger),
		wshandler.WithClientConfig(websocket.ClientConfig{
			PingInterval:   c.Config.WebSocket.PingInterval,
			PongWait:       c.Config.WebSocket.PongTimeout,
			WriteWait:      websocket.DefaultClientConfig().WriteWait,
			MaxMessageSize: websocket.DefaultClientConfig().MaxMessageSize,
		}),
	)

	if strings.EqualFold(c.Config.RateLimit.Store, config.StoreRedis) {
		c.RateLimitStore = middleware.NewRedisRateLimitStore(c.Redis)
	} else {
		c.RateLimitStore = middleware.NewMemoryRateLimitStore()
	}
}

func (c *Container) setupHealth() {
	registry := healthcheck.NewRegistry()
	registry.Add("mongodb", healthcheck.MongoCheck(c.MongoDB))
	if c.Redis != nil {
		registry.Add("redis", healthcheck.RedisCheck(c.Redis))
	}

	c.Health = registry
	c.HealthHandler = httphandler.NewHealthHandler(registry)
}
