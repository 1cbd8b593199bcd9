package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/anonqa-service/internal/api/http"
	"github.com/spec-kit/anonqa-service/internal/api/http/handlers"
	"github.com/spec-kit/anonqa-service/internal/config"
	"github.com/spec-kit/anonqa-service/internal/events"
	"github.com/spec-kit/anonqa-service/internal/observability"
	"github.com/spec-kit/anonqa-service/internal/persistence"
	"github.com/spec-kit/anonqa-service/internal/ratelimit"
	"github.com/spec-kit/anonqa-service/internal/repository"
	"github.com/spec-kit/anonqa-service/internal/repository/memory"
	"github.com/spec-kit/anonqa-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var userRepo repository.UserRepository
	var messageRepo repository.MessageRepository
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		messageRepo = repository.NewMessageRepository(pool)
	} else {
		logger.Warn("running with in-memory stores; data will not survive restarts")
		userRepo = memory.NewUserStore()
		messageRepo = memory.NewMessageStore()
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	service.NewActivityService(dispatcher, logger).RegisterHandlers()

	userService := service.NewUserService(userRepo, dispatcher)
	messageService := service.NewMessageService(messageRepo, userRepo, dispatcher)

	metrics := observability.NewMetrics()

	globalLimiter := newLimiter(ctx, redis, "global", cfg.RateLimit.GlobalLimit, cfg.RateLimit.GlobalWindow())
	userCreateLimiter := newLimiter(ctx, redis, "user_create", cfg.RateLimit.UserCreateLimit, cfg.RateLimit.UserCreateWindow())
	messageCreateLimiter := newLimiter(ctx, redis, "message_create", cfg.RateLimit.MessageCreateLimit, cfg.RateLimit.MessageCreateWindow())

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.App.BodyLimitBytes,
	})
	httptransport.RegisterMiddlewares(app, cfg, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:             handlers.NewHealthHandler(),
		Users:              handlers.NewUsersHandler(userService),
		Messages:           handlers.NewMessagesHandler(messageService),
		GlobalLimit:        ratelimit.Middleware(globalLimiter, "Too many requests from this IP, please try again later.", logger),
		UserCreateLimit:    ratelimit.Middleware(userCreateLimiter, "Too many user creations from this IP", logger),
		MessageCreateLimit: ratelimit.Middleware(messageCreateLimiter, "Too many messages sent, please try again later", logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// newLimiter returns a Redis-backed limiter when Redis is configured and a
// process-local one otherwise.
func newLimiter(ctx context.Context, redis *persistence.Redis, name string, limit int, window time.Duration) ratelimit.Limiter {
	if redis != nil && redis.Client != nil {
		return ratelimit.NewRedis(redis.Client, name, limit, window)
	}
	m := ratelimit.NewMemory(limit, window)
	m.StartJanitor(ctx, 5*time.Minute)
	return m
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
