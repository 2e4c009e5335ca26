package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

type fakeStore struct {
	obs     map[string][]models.Observation // key playerID:stat
	season  map[string]float64
	props   []models.PropDescriptor
	obsErr  error
	propErr error
}

func key(playerID, stat string) string { return playerID + ":" + stat }

func (f *fakeStore) GetLatestObservations(ctx context.Context, playerID, stat string, n int) ([]models.Observation, error) {
	if f.obsErr != nil {
		return nil, f.obsErr
	}
	obs := f.obs[key(playerID, stat)]
	if len(obs) > n {
		obs = obs[:n]
	}
	return obs, nil
}

func (f *fakeStore) GetSeasonAverage(ctx context.Context, playerID, stat string) (float64, error) {
	return f.season[key(playerID, stat)], nil
}

func (f *fakeStore) ListSlateProps(ctx context.Context, sport string) ([]models.PropDescriptor, error) {
	if f.propErr != nil {
		return nil, f.propErr
	}
	return f.props, nil
}

func gameObs(daysAgo int, value float64) models.Observation {
	return models.Observation{
		Date:                time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo),
		Opponent:            "BOS",
		IsHome:              daysAgo%2 == 0,
		RestDays:            1,
		OpponentDefenseRank: 15,
		Value:               value,
	}
}

func seededStore() *fakeStore {
	obs := make([]models.Observation, 0, 20)
	for i := 0; i < 20; i++ {
		obs = append(obs, gameObs(i, 20+float64(i%7)))
	}
	return &fakeStore{
		obs:    map[string][]models.Observation{"p1:points": obs},
		season: map[string]float64{"p1:points": 22.5},
	}
}

func TestDistributionComputesFromStore(t *testing.T) {
	uc := NewPropReportUseCase(seededStore())
	res, err := uc.Distribution(context.Background(), models.DistributionRequest{
		PlayerID: "p1", Stat: "points", Line: 21.5, N: 20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Values) != 20 {
		t.Fatalf("expected 20 values, got %d", len(res.Values))
	}
	if len(res.DensityCurve) == 0 {
		t.Fatalf("expected a density curve")
	}
	if got := res.OverFraction + res.UnderFraction; got < 0.999 || got > 1.001 {
		t.Fatalf("fractions must sum to 1, got %f", got)
	}
}

func TestStreakUsesWindowAndSeasonAverage(t *testing.T) {
	uc := NewPropReportUseCase(seededStore())
	row, err := uc.Streak(context.Background(), models.StreakRequest{
		PlayerID: "p1", Stat: "points", Line: 21.5, Window: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.PlayerID != "p1" {
		t.Fatalf("player id not carried: %+v", row)
	}
	if len(row.HitGames) != 10 {
		t.Fatalf("expected 10-game window, got %d", len(row.HitGames))
	}
	if row.SeasonAverage != 22.5 {
		t.Fatalf("season average must come from the store, got %f", row.SeasonAverage)
	}
}

func TestStreakInvalidWindowFallsBack(t *testing.T) {
	uc := NewPropReportUseCase(seededStore())
	row, err := uc.Streak(context.Background(), models.StreakRequest{
		PlayerID: "p1", Stat: "points", Line: 21.5, Window: 7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(row.HitGames) != 10 {
		t.Fatalf("invalid window must fall back to 10, got %d", len(row.HitGames))
	}
}

func TestConvergenceNoDataIsTossUp(t *testing.T) {
	uc := NewPropReportUseCase(&fakeStore{obs: map[string][]models.Observation{}, season: map[string]float64{}})
	v, err := uc.Convergence(context.Background(), models.ConvergenceRequest{
		PlayerID: "p9", Stat: "points", Line: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Direction != models.DirectionTossUp || v.Score != 0 {
		t.Fatalf("no data must be a toss-up with score 0, got %+v", v)
	}
}

func TestConvergenceScoreWithinBounds(t *testing.T) {
	uc := NewPropReportUseCase(seededStore())
	v, err := uc.Convergence(context.Background(), models.ConvergenceRequest{
		PlayerID: "p1", Stat: "points", Line: 21.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Score < 0 || v.Score > len(v.ContributingSignals) {
		t.Fatalf("score out of bounds: %+v", v)
	}
}

func TestCorrelationAlignsSeriesFromStore(t *testing.T) {
	store := seededStore()
	store.obs["p2:rebounds"] = store.obs["p1:points"]
	uc := NewPropReportUseCase(store)

	res, err := uc.Correlation(context.Background(), models.CorrelationRequest{
		GameID: "g1",
		Props: []models.CorrelationProp{
			{PlayerID: "p1", Stat: "points", Line: 21.5, Team: "DEN", Direction: "over"},
			{PlayerID: "p2", Stat: "rebounds", Line: 8.5, Team: "DEN", Direction: "over"},
		},
		Lookback: 20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Correlations) != 2 {
		t.Fatalf("expected 2x2 matrix")
	}
	// identical series must be perfectly correlated
	if got := res.Correlations[0][1]; got < 0.999 {
		t.Fatalf("expected correlation 1, got %f", got)
	}
	if len(res.Suggestions) != 1 || res.Suggestions[0].Team != "DEN" {
		t.Fatalf("expected one same-team suggestion, got %+v", res.Suggestions)
	}
}

func TestReportFansOutAllSections(t *testing.T) {
	uc := NewPropReportUseCase(seededStore())
	rep, err := uc.Report(context.Background(), ReportParams{
		PlayerID: "p1", Stat: "points", Line: 21.5, Window: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Distribution == nil || rep.Streak == nil || rep.Convergence == nil {
		t.Fatalf("all sections must be present: %+v", rep)
	}
	if rep.Errors != nil {
		t.Fatalf("no section errors expected, got %v", rep.Errors)
	}
}

func TestReportCollectsPartialErrors(t *testing.T) {
	store := seededStore()
	store.obsErr = fmt.Errorf("clickhouse down")
	uc := NewPropReportUseCase(store)

	rep, err := uc.Report(context.Background(), ReportParams{
		PlayerID: "p1", Stat: "points", Line: 21.5,
	})
	if err != nil {
		t.Fatalf("report must not fail outright: %v", err)
	}
	if len(rep.Errors) == 0 {
		t.Fatalf("expected section errors")
	}
	if rep.Distribution != nil {
		t.Fatalf("failed section must stay nil")
	}
}

func TestReportRequiresPlayerAndStat(t *testing.T) {
	uc := NewPropReportUseCase(seededStore())
	if _, err := uc.Report(context.Background(), ReportParams{Stat: "points"}); err == nil {
		t.Fatalf("missing player must error")
	}
	if _, err := uc.Report(context.Background(), ReportParams{PlayerID: "p1"}); err == nil {
		t.Fatalf("missing stat must error")
	}
}
