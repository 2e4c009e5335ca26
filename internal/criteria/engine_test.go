package criteria

import (
	"context"
	"testing"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

func testEngine() *Engine {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewEngine(WithWorkers(2), WithClock(func() time.Time { return fixed }))
}

func ctxWith(fields map[string]models.FeatureValue) models.FeatureContext {
	return models.FeatureContext{
		PlayerID: "p1",
		GameID:   "g1",
		Sport:    "nba",
		Stat:     "points",
		Line:     20.5,
		Fields:   fields,
	}
}

func restCriteria(op models.Operator, value ...models.FeatureValue) models.Criteria {
	return models.Criteria{
		ID:        "c1",
		Sport:     "nba",
		Stat:      "points",
		Direction: models.DirectionOver,
		IsActive:  true,
		Conditions: []models.Condition{
			{Field: "rest_days", Operator: op, Value: value},
		},
	}
}

func TestGteOperator(t *testing.T) {
	cr := restCriteria(models.OpGte, models.Number(2))
	e := testEngine()

	low := e.EvaluateBatch(context.Background(), []models.Criteria{cr},
		[]models.FeatureContext{ctxWith(map[string]models.FeatureValue{"rest_days": models.Number(1)})})
	if len(low) != 0 {
		t.Fatalf("rest_days 1 must not match gte 2")
	}

	high := e.EvaluateBatch(context.Background(), []models.Criteria{cr},
		[]models.FeatureContext{ctxWith(map[string]models.FeatureValue{"rest_days": models.Number(3)})})
	if len(high) != 1 {
		t.Fatalf("rest_days 3 must match gte 2")
	}
}

func TestMissingFieldAlwaysFalse(t *testing.T) {
	e := testEngine()
	ops := []models.Operator{models.OpEq, models.OpGt, models.OpGte, models.OpLt, models.OpLte, models.OpIn}
	for _, op := range ops {
		cr := restCriteria(op, models.Number(2))
		got := e.EvaluateBatch(context.Background(), []models.Criteria{cr},
			[]models.FeatureContext{ctxWith(map[string]models.FeatureValue{})})
		if len(got) != 0 {
			t.Errorf("missing field must be false for %s", op)
		}
	}
}

func TestNonNumericActualFalseForOrderedOps(t *testing.T) {
	e := testEngine()
	cr := restCriteria(models.OpGt, models.Number(1))
	got := e.EvaluateBatch(context.Background(), []models.Criteria{cr},
		[]models.FeatureContext{ctxWith(map[string]models.FeatureValue{"rest_days": models.Enum("two")})})
	if len(got) != 0 {
		t.Fatalf("non-numeric actual must evaluate false")
	}
}

func TestBetweenInclusive(t *testing.T) {
	e := testEngine()
	cr := restCriteria(models.OpBetween, models.Number(2), models.Number(4))
	cases := map[float64]bool{1: false, 2: true, 3: true, 4: true, 5: false}
	for v, want := range cases {
		got := e.EvaluateBatch(context.Background(), []models.Criteria{cr},
			[]models.FeatureContext{ctxWith(map[string]models.FeatureValue{"rest_days": models.Number(v)})})
		if (len(got) == 1) != want {
			t.Errorf("between [2,4] with %v: expected %v", v, want)
		}
	}
}

func TestInOperator(t *testing.T) {
	e := testEngine()
	cr := models.Criteria{
		ID: "c2", Sport: "nba", Stat: "points", IsActive: true,
		Direction: models.DirectionOver,
		Conditions: []models.Condition{
			{Field: "opponent", Operator: models.OpIn, Value: []models.FeatureValue{models.Enum("BOS"), models.Enum("NYK")}},
		},
	}
	hit := e.EvaluateBatch(context.Background(), []models.Criteria{cr},
		[]models.FeatureContext{ctxWith(map[string]models.FeatureValue{"opponent": models.Enum("NYK")})})
	if len(hit) != 1 {
		t.Fatalf("NYK must match in-list")
	}
	miss := e.EvaluateBatch(context.Background(), []models.Criteria{cr},
		[]models.FeatureContext{ctxWith(map[string]models.FeatureValue{"opponent": models.Enum("MIA")})})
	if len(miss) != 0 {
		t.Fatalf("MIA must not match in-list")
	}
}

func TestEqBool(t *testing.T) {
	e := testEngine()
	cr := models.Criteria{
		ID: "c3", Sport: "nba", Stat: "points", IsActive: true,
		Direction: models.DirectionUnder,
		Conditions: []models.Condition{
			{Field: "is_back_to_back", Operator: models.OpEq, Value: []models.FeatureValue{models.Boolean(true)}},
		},
	}
	got := e.EvaluateBatch(context.Background(), []models.Criteria{cr},
		[]models.FeatureContext{ctxWith(map[string]models.FeatureValue{"is_back_to_back": models.Boolean(true)})})
	if len(got) != 1 {
		t.Fatalf("expected bool eq match")
	}
}

func TestConjunctionRequiresAllConditions(t *testing.T) {
	e := testEngine()
	cr := models.Criteria{
		ID: "c4", Sport: "nba", Stat: "points", IsActive: true,
		Direction: models.DirectionOver,
		Conditions: []models.Condition{
			{Field: "rest_days", Operator: models.OpGte, Value: []models.FeatureValue{models.Number(2)}},
			{Field: "convergence_score", Operator: models.OpGte, Value: []models.FeatureValue{models.Number(6)}},
		},
	}
	got := e.EvaluateBatch(context.Background(), []models.Criteria{cr},
		[]models.FeatureContext{ctxWith(map[string]models.FeatureValue{
			"rest_days":         models.Number(3),
			"convergence_score": models.Number(4),
		})})
	if len(got) != 0 {
		t.Fatalf("one failing condition must fail the criterion")
	}
}

func TestInactiveAndScopeFiltering(t *testing.T) {
	e := testEngine()
	inactive := restCriteria(models.OpGte, models.Number(0))
	inactive.IsActive = false
	wrongStat := restCriteria(models.OpGte, models.Number(0))
	wrongStat.Stat = "rebounds"

	got := e.EvaluateBatch(context.Background(), []models.Criteria{inactive, wrongStat},
		[]models.FeatureContext{ctxWith(map[string]models.FeatureValue{"rest_days": models.Number(5)})})
	if len(got) != 0 {
		t.Fatalf("inactive or out-of-scope criteria must not match")
	}
}

func TestBatchAcrossManyContexts(t *testing.T) {
	e := testEngine()
	cr := restCriteria(models.OpGte, models.Number(2))
	var contexts []models.FeatureContext
	for i := 0; i < 50; i++ {
		fc := ctxWith(map[string]models.FeatureValue{"rest_days": models.Number(float64(i % 5))})
		contexts = append(contexts, fc)
	}
	got := e.EvaluateBatch(context.Background(), []models.Criteria{cr}, contexts)
	// i%5 in {2,3,4} matches: 30 of 50
	if len(got) != 30 {
		t.Fatalf("expected 30 matches, got %d", len(got))
	}
	for _, m := range got {
		if m.CriteriaID != "c1" || m.PlayerID != "p1" {
			t.Fatalf("malformed match: %+v", m)
		}
	}
}

func TestMatchTimestampFromClock(t *testing.T) {
	e := testEngine()
	cr := restCriteria(models.OpGte, models.Number(0))
	got := e.EvaluateBatch(context.Background(), []models.Criteria{cr},
		[]models.FeatureContext{ctxWith(map[string]models.FeatureValue{"rest_days": models.Number(1)})})
	if len(got) != 1 {
		t.Fatalf("expected a match")
	}
	want := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if !got[0].MatchedAt.Equal(want) {
		t.Fatalf("expected clock timestamp, got %v", got[0].MatchedAt)
	}
}
