package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/meapi/adapters/event"
	"github.com/khoahotran/meapi/adapters/persistence"
	profileUC "github.com/khoahotran/meapi/internal/application/usecase/profile"
	"github.com/khoahotran/meapi/internal/config"
	"github.com/khoahotran/meapi/pkg/logger"
)

// The worker re-warms the Redis profile cache whenever a replace event
// arrives on profile.events.
func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting me-api worker...")

	if cfg.Redis.Addr == "" || len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("worker needs both redis.addr and kafka.brokers", errors.New("missing configuration"))
	}

	// Store
	store, err := persistence.NewStore(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot open store", err)
	}
	defer store.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	// Repositories
	profileRepo := persistence.NewSQLProfileRepo(store, appLogger)
	skillRepo := persistence.NewSQLSkillRepo(store, appLogger)
	workRepo := persistence.NewSQLWorkRepo(store, appLogger)
	projectRepo := persistence.NewSQLProjectRepo(store, appLogger)

	profileUseCase := profileUC.NewProfileUseCase(profileRepo, skillRepo, workRepo, projectRepo, store,
		profileUC.Options{Cache: persistence.NewRedisProfileCache(redisClient, cfg.Redis.TTL, appLogger)},
		appLogger)

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  "profile-cache-warmer",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicProfileEvents))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.ProfileEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Warn("Failed to unmarshal event, skipping", zap.Error(err), zap.ByteString("key", msg.Key))
			commitMessage(ctx, consumer, msg, appLogger)
			continue
		}

		appLogger.Info("Processing event",
			zap.String("event_type", string(payload.EventType)),
			zap.String("event_id", payload.EventID.String()),
			zap.Strings("collections", payload.Collections))

		if err := profileUseCase.ExecuteWarmCache(ctx); err != nil {
			appLogger.Error("Failed to warm profile cache", err, zap.String("event_id", payload.EventID.String()))
			continue
		}

		commitMessage(ctx, consumer, msg, appLogger)
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
