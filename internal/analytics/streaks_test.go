package analytics

import (
	"math"
	"testing"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

func window(values ...float64) []models.Observation {
	out := make([]models.Observation, len(values))
	for i, v := range values {
		out[i] = models.Observation{Value: v}
	}
	return out
}

func TestStreakRowHitCountMatchesHitGames(t *testing.T) {
	row := ComputeStreakRow(window(25, 18, 30, 20, 27), "points", 20.5, 23.1)
	count := 0
	for _, h := range row.HitGames {
		if h {
			count++
		}
	}
	if row.HitCount != count {
		t.Fatalf("hitCount %d disagrees with hitGames %d", row.HitCount, count)
	}
	if row.HitCount != 3 {
		t.Fatalf("expected 3 hits, got %d", row.HitCount)
	}
}

func TestStreakRowTieIsMiss(t *testing.T) {
	row := ComputeStreakRow(window(20.5), "points", 20.5, 20.5)
	if row.HitCount != 0 {
		t.Fatalf("tie must not count as a hit")
	}
}

func TestStreakBrokenByMiss(t *testing.T) {
	// newest-first: hit, hit, miss, hit -> only the runs ending at the most
	// recent game count, so 2 consecutive hits
	row := ComputeStreakRow(window(25, 24, 15, 26), "points", 20.5, 0)
	if row.ConsecutiveStreak != 2 {
		t.Fatalf("expected 2, got %d", row.ConsecutiveStreak)
	}
}

func TestStreakSingleHitThenMiss(t *testing.T) {
	// hit, miss, miss, hit -> 1
	row := ComputeStreakRow(window(25, 15, 14, 26), "points", 20.5, 0)
	if row.ConsecutiveStreak != 1 {
		t.Fatalf("expected 1, got %d", row.ConsecutiveStreak)
	}
}

func TestStreakAllHits(t *testing.T) {
	row := ComputeStreakRow(window(25, 24, 23), "points", 20.5, 0)
	if row.ConsecutiveStreak != 3 {
		t.Fatalf("expected 3, got %d", row.ConsecutiveStreak)
	}
}

func TestStreakNegativeForMisses(t *testing.T) {
	row := ComputeStreakRow(window(15, 14, 26, 25), "points", 20.5, 0)
	if row.ConsecutiveStreak != -2 {
		t.Fatalf("expected -2, got %d", row.ConsecutiveStreak)
	}
}

func TestStreakRowAverages(t *testing.T) {
	row := ComputeStreakRow(window(20, 30), "points", 24.5, 26.4)
	if math.Abs(row.WindowAverage-25) > 1e-9 {
		t.Fatalf("expected window average 25, got %v", row.WindowAverage)
	}
	if row.SeasonAverage != 26.4 {
		t.Fatalf("season average must pass through unchanged, got %v", row.SeasonAverage)
	}
	if math.Abs(row.HitRate-0.5) > 1e-9 {
		t.Fatalf("expected hit rate 0.5, got %v", row.HitRate)
	}
}

func TestStreakRowEmptyWindow(t *testing.T) {
	row := ComputeStreakRow(nil, "points", 20.5, 23.0)
	if row.HitCount != 0 || row.HitRate != 0 || row.ConsecutiveStreak != 0 {
		t.Fatalf("expected zeroed row, got %+v", row)
	}
	if row.SeasonAverage != 23.0 {
		t.Fatalf("season average must survive empty windows")
	}
}
