package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/meapi/internal/config"
	"github.com/khoahotran/meapi/pkg/logger"
)

const (
	TopicProfileEvents = "profile.events"
)

type ProfileEventType string

const (
	ProfileEventTypeReplaced ProfileEventType = "profile.replaced"
)

// ProfileEventPayload announces a completed profile replace. Collections
// lists which of skills/work/projects were replaced alongside the profile row.
type ProfileEventPayload struct {
	EventID     uuid.UUID        `json:"event_id"`
	EventType   ProfileEventType `json:"event_type"`
	Collections []string         `json:"collections"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

func NewProfileReplacedEvent(collections []string) ProfileEventPayload {
	if collections == nil {
		collections = []string{}
	}
	return ProfileEventPayload{
		EventID:     uuid.New(),
		EventType:   ProfileEventTypeReplaced,
		Collections: collections,
		OccurredAt:  time.Now().UTC(),
	}
}

type KafkaProducerClient struct {
	ProfileEventsWriter *kafka.Writer
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicProfileEvents,
		Balancer: &kafka.LeastBytes{},
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
		logger:              log,
	}, nil
}

func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.EventID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		if err := c.ProfileEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close profile events writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
