package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
	drepo "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/repository"
)

// ScanEnqueuer schedules a criteria scan after new game logs land.
type ScanEnqueuer interface {
	PublishMessage(ctx context.Context, msgType string, payload interface{}) error
}

// GameLogProcessor persists stat-line events and schedules follow-up scans.
type GameLogProcessor struct {
	store    drepo.Storage
	metrics  drepo.Metrics
	enqueuer ScanEnqueuer
	batchSz  int
	batchTO  time.Duration
}

// NewGameLogProcessor creates a new GameLogProcessor instance.
func NewGameLogProcessor(
	store drepo.Storage,
	metrics drepo.Metrics,
	enqueuer ScanEnqueuer,
	batchSz int,
	batchTO time.Duration,
) *GameLogProcessor {
	return &GameLogProcessor{
		store:    store,
		metrics:  metrics,
		enqueuer: enqueuer,
		batchSz:  batchSz,
		batchTO:  batchTO,
	}
}

// Process stores a single stat-line event.
func (p *GameLogProcessor) Process(ctx context.Context, ev *models.GameEvent) error {
	if ev == nil {
		return fmt.Errorf("event is nil")
	}

	start := time.Now()
	if err := p.store.Store(ctx, ev); err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process event: %w", err)
	}

	p.metrics.RecordGameStored(ev.Sport, ev.Stat)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())

	p.enqueueScan(ctx, ev.Sport)
	return nil
}

// ProcessBatch stores multiple stat-line events in a batch.
func (p *GameLogProcessor) ProcessBatch(ctx context.Context, evs []*models.GameEvent) error {
	if len(evs) == 0 {
		return nil
	}

	start := time.Now()
	if err := p.store.StoreBatch(ctx, evs); err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	sports := make(map[string]struct{}, 2)
	for _, ev := range evs {
		p.metrics.RecordGameStored(ev.Sport, ev.Stat)
		sports[ev.Sport] = struct{}{}
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())

	for sport := range sports {
		p.enqueueScan(ctx, sport)
	}
	return nil
}

// enqueueScan is best-effort: a failed enqueue never fails the store.
func (p *GameLogProcessor) enqueueScan(ctx context.Context, sport string) {
	if p.enqueuer == nil || sport == "" {
		return
	}
	payload := map[string]interface{}{"sport": sport}
	if err := p.enqueuer.PublishMessage(ctx, ScanJobType, payload); err != nil {
		p.metrics.RecordError("scan_enqueue")
	}
}

// Close closes underlying resources if available.
func (p *GameLogProcessor) Close() {
	if p.store != nil {
		_ = p.store.Close()
	}
}
