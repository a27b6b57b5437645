package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/meapi/adapters/event"
	httpAdapter "github.com/khoahotran/meapi/adapters/http"
	"github.com/khoahotran/meapi/adapters/persistence"
	profileUC "github.com/khoahotran/meapi/internal/application/usecase/profile"
	projectUC "github.com/khoahotran/meapi/internal/application/usecase/project"
	searchUC "github.com/khoahotran/meapi/internal/application/usecase/search"
	"github.com/khoahotran/meapi/internal/application/usecase/seed"
	skillUC "github.com/khoahotran/meapi/internal/application/usecase/skill"
	"github.com/khoahotran/meapi/internal/config"
	"github.com/khoahotran/meapi/pkg/logger"
	"github.com/khoahotran/meapi/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start me-api server...", zap.String("env", cfg.App.Env))

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "meapi-server")
	if err != nil {
		appLogger.Fatal("cannot init tracer provider", err)
	}
	defer tracing.Shutdown(tp, appLogger)

	// Store
	store, err := persistence.NewStore(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot open store", err, zap.String("driver", cfg.DB.Driver))
	}
	defer store.Close()

	ddl, err := store.Schema(cfg.DB.SchemaPath)
	if err != nil {
		appLogger.Fatal("cannot load schema", err)
	}

	// Repositories
	profileRepo := persistence.NewSQLProfileRepo(store, appLogger)
	skillRepo := persistence.NewSQLSkillRepo(store, appLogger)
	workRepo := persistence.NewSQLWorkRepo(store, appLogger)
	projectRepo := persistence.NewSQLProjectRepo(store, appLogger)

	// Seed before listening
	seeder := seed.NewSeeder(store, ddl, seed.FileSource(cfg.DB.SeedPath),
		profileRepo, skillRepo, workRepo, projectRepo, appLogger)
	if _, err := seeder.Run(context.Background()); err != nil {
		appLogger.Fatal("seeding failed", err, zap.String("seed_path", cfg.DB.SeedPath))
	}

	// Optional cache and events
	opts := profileUC.Options{Transactional: cfg.DB.TransactionalReplace}
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		opts.Cache = persistence.NewRedisProfileCache(redisClient, cfg.Redis.TTL, appLogger)
	}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		opts.Publisher = kafkaClient
	}

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, skillRepo, workRepo, projectRepo, store, opts, appLogger)
	listProjectsUseCase := projectUC.NewListProjectsUseCase(projectRepo, appLogger)
	listSkillsUseCase := skillUC.NewListSkillsUseCase(skillRepo, appLogger)
	searchUseCase := searchUC.NewSearchUseCase(projectRepo, skillRepo, workRepo, appLogger)
	projectsFeedUseCase := projectUC.NewProjectsFeedUseCase(projectRepo, profileRepo, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Profile: httpAdapter.NewProfileHandler(profileUseCase, appLogger),
		Project: httpAdapter.NewProjectHandler(listProjectsUseCase, appLogger),
		Skill:   httpAdapter.NewSkillHandler(listSkillsUseCase, appLogger),
		Search:  httpAdapter.NewSearchHandler(searchUseCase, appLogger),
		Feed:    httpAdapter.NewFeedHandler(projectsFeedUseCase, appLogger),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(handlers, cfg.Static.Dir, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("me-api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("cannot start server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server forced to shutdown", err)
	}
}
