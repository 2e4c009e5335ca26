package criteria

import (
	"context"
	"testing"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

func TestBuildFeatureContextFields(t *testing.T) {
	prop := models.PropDescriptor{
		PlayerID:  "p1",
		Stat:      "points",
		Line:      21.5,
		Team:      "DEN",
		Direction: models.DirectionOver,
	}
	last := models.Observation{
		Date:                time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		Opponent:            "BOS",
		IsHome:              true,
		IsBackToBack:        false,
		RestDays:            2,
		OpponentDefenseRank: 25,
		Value:               28,
	}
	streak := models.StreakRow{
		HitCount:          7,
		HitRate:           0.7,
		WindowAverage:     24.1,
		SeasonAverage:     22.5,
		ConsecutiveStreak: 4,
	}
	verdict := models.ConvergenceVerdict{
		Score:         6,
		Direction:     models.DirectionOver,
		ConfidencePct: 67,
	}

	fc := BuildFeatureContext(prop, "g1", "nba", last, streak, verdict)

	if fc.PlayerID != "p1" || fc.Sport != "nba" || fc.Stat != "points" || fc.GameID != "g1" {
		t.Fatalf("identity fields wrong: %+v", fc)
	}

	checks := map[string]models.FeatureValue{
		"line":                  models.Number(21.5),
		"opponent":              models.Enum("BOS"),
		"is_home":               models.Boolean(true),
		"is_back_to_back":       models.Boolean(false),
		"rest_days":             models.Number(2),
		"opp_def_rank":          models.Number(25),
		"hit_rate":              models.Number(0.7),
		"hit_count":             models.Number(7),
		"consecutive_streak":    models.Number(4),
		"window_average":        models.Number(24.1),
		"season_average":        models.Number(22.5),
		"convergence_score":     models.Number(6),
		"convergence_direction": models.Enum("over"),
		"confidence_pct":        models.Number(67),
	}
	for name, want := range checks {
		got, ok := fc.Fields[name]
		if !ok {
			t.Fatalf("missing field %q", name)
		}
		if got != want {
			t.Fatalf("field %q: got %+v want %+v", name, got, want)
		}
	}
	if len(fc.Fields) != len(checks) {
		t.Fatalf("unexpected extra fields: %d vs %d", len(fc.Fields), len(checks))
	}
}

func TestBuiltContextMatchesEngine(t *testing.T) {
	prop := models.PropDescriptor{PlayerID: "p1", Stat: "points", Line: 21.5}
	last := models.Observation{Opponent: "BOS", IsHome: true, RestDays: 2, OpponentDefenseRank: 25}
	streak := models.StreakRow{HitRate: 0.7, HitCount: 7}
	verdict := models.ConvergenceVerdict{Score: 6, Direction: models.DirectionOver, ConfidencePct: 67}

	fc := BuildFeatureContext(prop, "g1", "nba", last, streak, verdict)

	crit := models.Criteria{
		ID:       "c1",
		Sport:    "nba",
		Stat:     "points",
		IsActive: true,
		Conditions: []models.Condition{
			{Field: "hit_rate", Operator: models.OpGte, Value: []models.FeatureValue{models.Number(0.6)}},
			{Field: "is_home", Operator: models.OpEq, Value: []models.FeatureValue{models.Boolean(true)}},
			{Field: "convergence_direction", Operator: models.OpIn, Value: []models.FeatureValue{models.Enum("over")}},
		},
	}

	eng := NewEngine()
	matches := eng.EvaluateBatch(context.Background(), []models.Criteria{crit}, []models.FeatureContext{fc})
	if len(matches) != 1 {
		t.Fatalf("expected the built context to satisfy the criterion, got %d matches", len(matches))
	}
	if matches[0].CriteriaID != "c1" || matches[0].PlayerID != "p1" {
		t.Fatalf("unexpected match %+v", matches[0])
	}
}
