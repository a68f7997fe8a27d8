package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskhive/backend/api/handler"
	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskhive/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskhive/backend/internal/infrastructure/redis"
	"github.com/taskhive/backend/internal/infrastructure/storage"
	"github.com/taskhive/backend/internal/middleware"
	"github.com/taskhive/backend/internal/router"
	"github.com/taskhive/backend/internal/services/lifecycle"
	"github.com/taskhive/backend/pkg/httpcontext"
	"github.com/taskhive/backend/pkg/logger"
	"github.com/taskhive/backend/repository/postgres"
	redisRepo "github.com/taskhive/backend/repository/redis"
	authUC "github.com/taskhive/backend/usecase/auth"
	profileUC "github.com/taskhive/backend/usecase/profile"
	taskUC "github.com/taskhive/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	fileStore, err := storage.NewLocal(cfg.Storage.Dir, cfg.Storage.PublicBaseURL, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to prepare storage", zap.Error(err))
	}

	mon := monitor.New(pool, redisClient, cfg.Storage.Dir, cfg.Monitor.Interval, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	tokenRepo := redisRepo.NewTokenRepository(redisClient, cfg.Auth.TokenTTL)

	authUseCase := authUC.New(userRepo, tokenRepo, cfg.Auth.TokenTTL, zapLogger)
	profileUseCase := profileUC.New(userRepo, fileStore, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Profile: apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Task:    apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.TokenAuth(authUseCase, zapLogger)
	r := router.New(handlers, authMiddleware, cfg.Storage.Dir)

	server := &fasthttp.Server{
		Handler:            r.Handler,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		MaxRequestBodySize: cfg.HTTP.MaxBodySize,
		Concurrency:        cfg.HTTP.MaxConn,
		Name:               cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
