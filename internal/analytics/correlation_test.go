package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

func datedSeries(values ...float64) []models.DatedValue {
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.DatedValue, len(values))
	for i, v := range values {
		out[i] = models.DatedValue{Date: base.AddDate(0, 0, i), Value: v}
	}
	return out
}

func prop(player, team string, dir models.Direction) models.PropDescriptor {
	return models.PropDescriptor{PlayerID: player, Stat: "points", Line: 20.5, Team: team, Direction: dir}
}

func TestCorrelationMatrixDiagonal(t *testing.T) {
	m, err := ComputeCorrelationMatrix([]models.PropSeries{
		{Prop: prop("a", "BOS", models.DirectionOver), Series: datedSeries(10, 20, 30)},
		{Prop: prop("b", "BOS", models.DirectionOver), Series: datedSeries(5, 6, 9)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range m.Correlations {
		if m.Correlations[i][i] != 1 {
			t.Fatalf("diagonal[%d] must be 1, got %v", i, m.Correlations[i][i])
		}
	}
}

func TestCorrelationMatrixSymmetric(t *testing.T) {
	m, err := ComputeCorrelationMatrix([]models.PropSeries{
		{Prop: prop("a", "BOS", models.DirectionOver), Series: datedSeries(10, 15, 22, 18)},
		{Prop: prop("b", "BOS", models.DirectionOver), Series: datedSeries(4, 8, 7, 6)},
		{Prop: prop("c", "NYK", models.DirectionOver), Series: datedSeries(30, 22, 28, 35)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range m.Correlations {
		for j := range m.Correlations[i] {
			if m.Correlations[i][j] != m.Correlations[j][i] {
				t.Fatalf("asymmetric at (%d,%d)", i, j)
			}
			if math.Abs(m.Correlations[i][j]) > 1+1e-9 {
				t.Fatalf("coefficient out of range at (%d,%d): %v", i, j, m.Correlations[i][j])
			}
		}
	}
}

func TestCorrelationAlignsByDate(t *testing.T) {
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	// leg b misses the middle date; the overlap {day0, day2} is perfectly
	// correlated even though raw slices are different lengths
	a := []models.DatedValue{
		{Date: base, Value: 10},
		{Date: base.AddDate(0, 0, 1), Value: 50},
		{Date: base.AddDate(0, 0, 2), Value: 20},
	}
	b := []models.DatedValue{
		{Date: base, Value: 1},
		{Date: base.AddDate(0, 0, 2), Value: 2},
	}
	m, err := ComputeCorrelationMatrix([]models.PropSeries{
		{Prop: prop("a", "BOS", models.DirectionOver), Series: a},
		{Prop: prop("b", "BOS", models.DirectionOver), Series: b},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Correlations[0][1]; math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected 1 on aligned overlap, got %v", got)
	}
}

func TestCorrelationDoubleHeaderKeepsFirstEntry(t *testing.T) {
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	// day0 appears twice in leg a; only the first entry may count, or the
	// otherwise perfect overlap with leg b would break
	a := []models.DatedValue{
		{Date: base, Value: 10},
		{Date: base, Value: 99},
		{Date: base.AddDate(0, 0, 1), Value: 20},
		{Date: base.AddDate(0, 0, 2), Value: 30},
	}
	b := []models.DatedValue{
		{Date: base, Value: 1},
		{Date: base.AddDate(0, 0, 1), Value: 2},
		{Date: base.AddDate(0, 0, 2), Value: 3},
	}
	m, err := ComputeCorrelationMatrix([]models.PropSeries{
		{Prop: prop("a", "BOS", models.DirectionOver), Series: a},
		{Prop: prop("b", "BOS", models.DirectionOver), Series: b},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Correlations[0][1]; math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected 1 with duplicate date deduplicated, got %v", got)
	}
}

func TestCorrelationInsufficientOverlapNeutral(t *testing.T) {
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	m, err := ComputeCorrelationMatrix([]models.PropSeries{
		{Prop: prop("a", "BOS", models.DirectionOver), Series: []models.DatedValue{{Date: base, Value: 10}}},
		{Prop: prop("b", "BOS", models.DirectionOver), Series: []models.DatedValue{{Date: base, Value: 5}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := m.Correlations[0][1]; got != 0 {
		t.Fatalf("expected neutral 0 for single pair, got %v", got)
	}
}

func TestCorrelationZeroSeriesFailsLoudly(t *testing.T) {
	if _, err := ComputeCorrelationMatrix(nil); err == nil {
		t.Fatalf("expected error for zero series")
	}
}

func TestParlaySuggestionsGroupByTeam(t *testing.T) {
	m, err := ComputeCorrelationMatrix([]models.PropSeries{
		{Prop: prop("a", "BOS", models.DirectionOver), Series: datedSeries(10, 12, 14)},
		{Prop: prop("b", "BOS", models.DirectionOver), Series: datedSeries(5, 6, 7)},
		{Prop: prop("c", "NYK", models.DirectionOver), Series: datedSeries(20, 22, 24)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion (solo NYK leg excluded), got %d", len(m.Suggestions))
	}
	s := m.Suggestions[0]
	if s.Team != "BOS" || len(s.Props) != 2 || s.Warning != "" {
		t.Fatalf("unexpected suggestion: %+v", s)
	}
}

func TestParlaySuggestionsMixedDirectionWarning(t *testing.T) {
	m, err := ComputeCorrelationMatrix([]models.PropSeries{
		{Prop: prop("a", "BOS", models.DirectionOver), Series: datedSeries(10, 12, 14)},
		{Prop: prop("b", "BOS", models.DirectionUnder), Series: datedSeries(5, 6, 7)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Suggestions) != 1 || m.Suggestions[0].Warning == "" {
		t.Fatalf("expected mixed-direction warning, got %+v", m.Suggestions)
	}
}
