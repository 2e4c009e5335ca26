package analytics

import (
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/analytics/stats"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

// ComputeStreakRow summarizes hit/miss behavior for a windowed game-log
// slice. The window must be newest-first; truncation to 5/10/20 games is the
// caller's job. A hit is value strictly greater than the line; a tie is a
// miss. seasonAverage is computed by the caller over the full season and
// passed through unchanged, never substituted with the window average.
func ComputeStreakRow(window []models.Observation, stat string, line, seasonAverage float64) models.StreakRow {
	row := models.StreakRow{
		Stat:          stat,
		Line:          line,
		SeasonAverage: seasonAverage,
	}
	if len(window) == 0 {
		return row
	}

	hits := make([]bool, len(window))
	hitCount := 0
	for i, o := range window {
		if o.Value > line {
			hits[i] = true
			hitCount++
		}
	}

	row.HitGames = hits
	row.HitCount = hitCount
	row.HitRate = float64(hitCount) / float64(len(hits))
	row.WindowAverage = stats.Mean(models.Values(window))
	row.ConsecutiveStreak = consecutiveStreak(hits)
	return row
}

// consecutiveStreak scans newest-first hits: the sign comes from the most
// recent game, the magnitude is the length of the unbroken run ending there.
func consecutiveStreak(hits []bool) int {
	if len(hits) == 0 {
		return 0
	}
	first := hits[0]
	run := 1
	for _, h := range hits[1:] {
		if h != first {
			break
		}
		run++
	}
	if first {
		return run
	}
	return -run
}
