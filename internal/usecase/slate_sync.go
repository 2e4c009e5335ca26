package usecase

import (
	"context"
	"fmt"
	"time"

	domrepo "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/repository"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/logger"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/util"
)

// SlateSyncUseCase pulls the day's offered prop lines from the provider and
// stores them, then queues a criteria scan so alerts fire against the fresh
// slate. Runs once at startup and again every day at the configured hour.
type SlateSyncUseCase struct {
	feed        domrepo.SlateFeed
	store       domrepo.SlateStore
	enqueuer    ScanEnqueuer
	metrics     domrepo.Metrics
	lgr         *logger.Logger
	sports      []string
	refreshHour int
}

func NewSlateSyncUseCase(
	feed domrepo.SlateFeed,
	store domrepo.SlateStore,
	enqueuer ScanEnqueuer,
	metrics domrepo.Metrics,
	lgr *logger.Logger,
	sports []string,
	refreshHour int,
) *SlateSyncUseCase {
	return &SlateSyncUseCase{
		feed:        feed,
		store:       store,
		enqueuer:    enqueuer,
		metrics:     metrics,
		lgr:         lgr,
		sports:      sports,
		refreshHour: refreshHour,
	}
}

// Sync fetches and stores today's slate for every configured sport. A sport
// that fails is logged and skipped; the others still sync.
func (uc *SlateSyncUseCase) Sync(ctx context.Context) error {
	start := time.Now()
	date := time.Now().UTC().Truncate(24 * time.Hour)

	var lastErr error
	for _, sport := range uc.sports {
		props, err := uc.feed.FetchSlate(ctx, sport, date)
		if err != nil {
			uc.metrics.RecordError("slate_fetch")
			uc.lgr.Error("slate fetch failed", logger.String("sport", sport), logger.Error(err))
			lastErr = err
			continue
		}
		if err := uc.store.ReplaceSlate(ctx, sport, date, props); err != nil {
			uc.metrics.RecordError("slate_store")
			uc.lgr.Error("slate store failed", logger.String("sport", sport), logger.Error(err))
			lastErr = err
			continue
		}
		uc.lgr.Info("slate synced",
			logger.String("sport", sport),
			logger.Int("props", len(props)))

		if uc.enqueuer != nil && len(props) > 0 {
			if err := uc.enqueuer.PublishMessage(ctx, ScanJobType, map[string]interface{}{"sport": sport}); err != nil {
				uc.lgr.Warn("scan enqueue failed", logger.String("sport", sport), logger.Error(err))
			}
		}
	}
	uc.metrics.RecordLatency("slate_sync", time.Since(start).Seconds())
	if lastErr != nil {
		return fmt.Errorf("slate sync: %w", lastErr)
	}
	return nil
}

// Run syncs immediately, then once a day at the refresh hour until the
// context is cancelled.
func (uc *SlateSyncUseCase) Run(ctx context.Context) {
	_ = uc.Sync(ctx)
	for {
		next := util.NextDailyRefresh(time.Now(), uc.refreshHour)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			_ = uc.Sync(ctx)
		}
	}
}
