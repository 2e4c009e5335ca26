package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/analytics"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
	domrepo "github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/repository"
)

// defaultLookback is a full regular season of games.
const defaultLookback = 82

// PropReportUseCase computes the per-prop analytics views from stored game
// logs: distribution, heat-ring streaks, convergence, and the combined
// player-card report.
type PropReportUseCase struct {
	store   domrepo.GameLogStore
	timeout time.Duration
}

func NewPropReportUseCase(store domrepo.GameLogStore) *PropReportUseCase {
	return &PropReportUseCase{store: store, timeout: 10 * time.Second}
}

// Distribution builds the smoothed density view with the default overlays.
func (uc *PropReportUseCase) Distribution(ctx context.Context, req models.DistributionRequest) (*models.DistributionResult, error) {
	if req.N <= 0 {
		req.N = defaultLookback
	}
	obs, err := uc.store.GetLatestObservations(ctx, req.PlayerID, req.Stat, req.N)
	if err != nil {
		return nil, fmt.Errorf("distribution observations: %w", err)
	}
	res := analytics.ComputeDistribution(obs, req.Line, analytics.DefaultOverlays()...)
	return &res, nil
}

// Streak builds one heat-ring row for a (player, stat, line) over a window.
func (uc *PropReportUseCase) Streak(ctx context.Context, req models.StreakRequest) (*models.StreakRow, error) {
	w := domrepo.NormalizeWindow(req.Window)
	obs, err := uc.store.GetLatestObservations(ctx, req.PlayerID, req.Stat, int(w))
	if err != nil {
		return nil, fmt.Errorf("streak observations: %w", err)
	}
	season, err := uc.store.GetSeasonAverage(ctx, req.PlayerID, req.Stat)
	if err != nil {
		return nil, fmt.Errorf("season average: %w", err)
	}
	row := analytics.ComputeStreakRow(obs, req.Stat, req.Line, season)
	row.PlayerID = req.PlayerID
	return &row, nil
}

// Convergence scores the signal set for a prop. Pace data is not stored per
// game yet, so the pace signal stays neutral.
func (uc *PropReportUseCase) Convergence(ctx context.Context, req models.ConvergenceRequest) (*models.ConvergenceVerdict, error) {
	obs, err := uc.store.GetLatestObservations(ctx, req.PlayerID, req.Stat, defaultLookback)
	if err != nil {
		return nil, fmt.Errorf("convergence observations: %w", err)
	}
	if len(obs) == 0 {
		v := analytics.ScoreConvergence(nil)
		return &v, nil
	}
	season, err := uc.store.GetSeasonAverage(ctx, req.PlayerID, req.Stat)
	if err != nil {
		return nil, fmt.Errorf("season average: %w", err)
	}

	dist := analytics.ComputeDistribution(obs, req.Line, analytics.DefaultOverlays()...)

	window := obs
	if def := int(domrepo.DefaultWindow()); len(window) > def {
		window = window[:def]
	}
	streak := analytics.ComputeStreakRow(window, req.Stat, req.Line, season)

	signals := analytics.BuildSignals(dist, streak, obs[0], 0)
	v := analytics.ScoreConvergence(signals)
	return &v, nil
}

// Correlation builds the per-game correlation matrix for selected props.
func (uc *PropReportUseCase) Correlation(ctx context.Context, req models.CorrelationRequest) (*models.CorrelationMatrix, error) {
	if req.Lookback <= 0 {
		req.Lookback = 20
	}
	series := make([]models.PropSeries, 0, len(req.Props))
	for _, p := range req.Props {
		obs, err := uc.store.GetLatestObservations(ctx, p.PlayerID, p.Stat, req.Lookback)
		if err != nil {
			return nil, fmt.Errorf("correlation observations %s/%s: %w", p.PlayerID, p.Stat, err)
		}
		dated := make([]models.DatedValue, len(obs))
		for i, o := range obs {
			dated[i] = models.DatedValue{Date: o.Date, Value: o.Value}
		}
		series = append(series, models.PropSeries{
			Prop: models.PropDescriptor{
				PlayerID:  p.PlayerID,
				Stat:      p.Stat,
				Line:      p.Line,
				Team:      p.Team,
				Direction: models.Direction(p.Direction),
			},
			Series: dated,
		})
	}
	return analytics.ComputeCorrelationMatrix(series)
}

// ReportParams selects one prop for the combined player-card report.
type ReportParams struct {
	PlayerID string
	Stat     string
	Line     float64
	Window   int
}

// Report fans out the three per-prop sections concurrently and collects
// partial results; a failed section reports its error instead of failing
// the whole card.
func (uc *PropReportUseCase) Report(ctx context.Context, p ReportParams) (*models.PropReport, error) {
	if p.PlayerID == "" {
		return nil, fmt.Errorf("playerId required")
	}
	if p.Stat == "" {
		return nil, fmt.Errorf("stat required")
	}

	// Overall timeout
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := &models.PropReport{
		PlayerID:  p.PlayerID,
		Stat:      p.Stat,
		Line:      p.Line,
		Timestamp: time.Now(),
		Errors:    map[string]string{},
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.Distribution(ctx, models.DistributionRequest{
			PlayerID: p.PlayerID, Stat: p.Stat, Line: p.Line,
		})
		ch <- item{"distribution", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.Streak(ctx, models.StreakRequest{
			PlayerID: p.PlayerID, Stat: p.Stat, Line: p.Line, Window: p.Window,
		})
		ch <- item{"streak", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.Convergence(ctx, models.ConvergenceRequest{
			PlayerID: p.PlayerID, Stat: p.Stat, Line: p.Line,
		})
		ch <- item{"convergence", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case "distribution":
			res.Distribution = it.val.(*models.DistributionResult)
		case "streak":
			res.Streak = it.val.(*models.StreakRow)
		case "convergence":
			res.Convergence = it.val.(*models.ConvergenceVerdict)
		}
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
