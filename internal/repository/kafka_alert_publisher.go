package repository

import (
	"context"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/repository"
	pkgkafka "github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/kafka"
)

// KafkaAlertPublisher implements AlertPublisher for Kafka.
type KafkaAlertPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAlertPublisher creates a Kafka alert publisher.
func NewKafkaAlertPublisher(producer *pkgkafka.Producer, topic string) repository.AlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

func (p *KafkaAlertPublisher) Publish(ctx context.Context, m *models.Match) error {
	// Keyed by player so one player's alerts stay ordered per partition.
	return p.producer.Publish(ctx, p.topic, []byte(m.PlayerID), matchPayload(m))
}

func (p *KafkaAlertPublisher) PublishBatch(ctx context.Context, ms []*models.Match) error {
	if len(ms) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(ms))
	for i, m := range ms {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(m.PlayerID),
			Value: matchPayload(m),
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaAlertPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

func matchPayload(m *models.Match) map[string]interface{} {
	return map[string]interface{}{
		"criteria_id": m.CriteriaID,
		"player_id":   m.PlayerID,
		"stat":        m.Stat,
		"line":        m.Line,
		"direction":   string(m.Direction),
		"game_id":     m.GameID,
		"matched_at":  m.MatchedAt.Format(time.RFC3339),
	}
}
