package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/analytics"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/criteria"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
	domrepo "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/repository"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/logger"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/pkg/queue"
)

// ScanJobType is the queue message type for scheduled criteria scans.
const ScanJobType = "criteria_scan"

// AlertScanUseCase evaluates the active criteria against the current slate
// and publishes matches for downstream alerting.
type AlertScanUseCase struct {
	store   domrepo.GameLogStore
	rules   domrepo.CriteriaSource
	engine  *criteria.Engine
	reports *PropReportUseCase
	pub     domrepo.AlertPublisher
	metrics domrepo.Metrics
}

func NewAlertScanUseCase(
	store domrepo.GameLogStore,
	rules domrepo.CriteriaSource,
	engine *criteria.Engine,
	reports *PropReportUseCase,
	pub domrepo.AlertPublisher,
	metrics domrepo.Metrics,
) *AlertScanUseCase {
	return &AlertScanUseCase{
		store:   store,
		rules:   rules,
		engine:  engine,
		reports: reports,
		pub:     pub,
		metrics: metrics,
	}
}

// Scan builds a feature context for every slate prop, evaluates the sport's
// active criteria over the batch, and publishes the matches. Lookback bounds
// the streak window; zero takes the default.
func (uc *AlertScanUseCase) Scan(ctx context.Context, sport string, lookback int) ([]models.Match, error) {
	if sport == "" {
		return nil, fmt.Errorf("sport required")
	}
	start := time.Now()

	props, err := uc.store.ListSlateProps(ctx, sport)
	if err != nil {
		uc.metrics.RecordError("scan_slate")
		return nil, fmt.Errorf("list slate props: %w", err)
	}
	rules, err := uc.rules.ListActive(ctx, sport)
	if err != nil {
		uc.metrics.RecordError("scan_rules")
		return nil, fmt.Errorf("list criteria: %w", err)
	}
	if len(props) == 0 || len(rules) == 0 {
		return nil, nil
	}

	window := int(domrepo.NormalizeWindow(lookback))
	contexts := make([]models.FeatureContext, 0, len(props))
	for _, prop := range props {
		fc, err := uc.buildContext(ctx, sport, prop, window)
		if err != nil {
			// one prop with missing data must not abort the scan
			uc.metrics.RecordError("scan_context")
			continue
		}
		contexts = append(contexts, fc)
	}
	if len(contexts) == 0 {
		return nil, nil
	}

	matches := uc.engine.EvaluateBatch(ctx, rules, contexts)
	if len(matches) > 0 && uc.pub != nil {
		ptrs := make([]*models.Match, len(matches))
		for i := range matches {
			ptrs[i] = &matches[i]
		}
		if err := uc.pub.PublishBatch(ctx, ptrs); err != nil {
			uc.metrics.RecordError("scan_publish")
			return matches, fmt.Errorf("publish matches: %w", err)
		}
		for range matches {
			uc.metrics.RecordMatchEmitted(sport)
		}
	}
	uc.metrics.RecordLatency("criteria_scan", time.Since(start).Seconds())
	return matches, nil
}

func (uc *AlertScanUseCase) buildContext(ctx context.Context, sport string, prop models.PropDescriptor, window int) (models.FeatureContext, error) {
	obs, err := uc.store.GetLatestObservations(ctx, prop.PlayerID, prop.Stat, window)
	if err != nil {
		return models.FeatureContext{}, err
	}
	if len(obs) == 0 {
		return models.FeatureContext{}, fmt.Errorf("no observations for %s/%s", prop.PlayerID, prop.Stat)
	}
	season, err := uc.store.GetSeasonAverage(ctx, prop.PlayerID, prop.Stat)
	if err != nil {
		return models.FeatureContext{}, err
	}

	streak := analytics.ComputeStreakRow(obs, prop.Stat, prop.Line, season)
	streak.PlayerID = prop.PlayerID
	verdict, err := uc.reports.Convergence(ctx, models.ConvergenceRequest{
		PlayerID: prop.PlayerID, Stat: prop.Stat, Line: prop.Line,
	})
	if err != nil {
		return models.FeatureContext{}, err
	}

	return criteria.BuildFeatureContext(prop, "", sport, obs[0], streak, *verdict), nil
}

// ScanJob runs scheduled scans off the Redis queue.
type ScanJob struct {
	uc  *AlertScanUseCase
	lgr *logger.Logger
}

func NewScanJob(uc *AlertScanUseCase, lgr *logger.Logger) *ScanJob {
	return &ScanJob{uc: uc, lgr: lgr}
}

func (j *ScanJob) Name() string { return "criteria-scan" }
func (j *ScanJob) Type() string { return ScanJobType }

type scanPayload struct {
	Sport    string `json:"sport"`
	Lookback int    `json:"lookback"`
}

func (j *ScanJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[scanPayload](payload)
	if err != nil {
		return fmt.Errorf("scan payload: %w", err)
	}
	matches, err := j.uc.Scan(ctx, p.Sport, p.Lookback)
	if err != nil {
		return err
	}
	j.lgr.Info("criteria scan done",
		logger.String("sport", p.Sport),
		logger.Int("matches", len(matches)))
	return nil
}
