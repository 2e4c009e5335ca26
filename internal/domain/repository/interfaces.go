package repository

import (
	"context"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

// StatStream is the live game feed: finished-game stat lines arriving over
// a long-lived connection.
type StatStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.GameEvent, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Storage persists raw game-log rows from the ingest pipeline.
type Storage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, ev *models.GameEvent) error
	StoreBatch(ctx context.Context, evs []*models.GameEvent) error
	Health(ctx context.Context) error // ping
	Close() error
}

// AlertPublisher emits criteria matches for downstream notification.
type AlertPublisher interface {
	Publish(ctx context.Context, m *models.Match) error
	PublishBatch(ctx context.Context, ms []*models.Match) error
	Close() error
}

// CriteriaSource holds the user-authored rules to evaluate. Rules are
// persisted outside the core; the set is replaced wholesale when the
// subscription service pushes an update.
type CriteriaSource interface {
	ListActive(ctx context.Context, sport string) ([]models.Criteria, error)
	Replace(ctx context.Context, rules []models.Criteria) error
}

// SlateFeed fetches the day's offered prop lines from the stat provider.
type SlateFeed interface {
	FetchSlate(ctx context.Context, sport string, date time.Time) ([]models.PropDescriptor, error)
}

// SlateStore persists the day's slate so scans can enumerate candidates.
type SlateStore interface {
	ReplaceSlate(ctx context.Context, sport string, date time.Time, props []models.PropDescriptor) error
}

// Metrics records operational counters and latencies.
type Metrics interface {
	RecordGameStored(sport, stat string)
	RecordError(kind string)
	RecordMatchEmitted(sport string)
	RecordLatency(op string, seconds float64)
}
