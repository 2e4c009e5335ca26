package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/analytics/stats"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

// mixedDirectionWarning is attached to same-team groups that pair overs with
// unders; the group is still suggested.
const mixedDirectionWarning = "legs may be negatively correlated"

// ComputeCorrelationMatrix builds the pairwise Pearson structure for the
// selected props of one game, plus same-game parlay suggestions grouped by
// team. Series are aligned by game date before correlating; dates missing
// from either leg are dropped for that pair, and when a leg repeats a date
// (double-header) the first entry wins, so newest-first series keep the
// later game. Fewer than 2 paired observations yields a neutral 0 so the
// matrix stays square and renderable. Zero series is a caller contract
// violation and fails loudly.
func ComputeCorrelationMatrix(series []models.PropSeries) (*models.CorrelationMatrix, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("correlation: at least one prop series required")
	}

	props := make([]models.PropDescriptor, len(series))
	byDate := make([]map[time.Time]float64, len(series))
	for i, s := range series {
		props[i] = s.Prop
		m := make(map[time.Time]float64, len(s.Series))
		for _, dv := range s.Series {
			if _, ok := m[dv.Date]; ok {
				continue
			}
			m[dv.Date] = dv.Value
		}
		byDate[i] = m
	}

	n := len(series)
	corr := make([][]float64, n)
	for i := range corr {
		corr[i] = make([]float64, n)
		corr[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := pairedPearson(byDate[i], byDate[j])
			corr[i][j] = c
			corr[j][i] = c
		}
	}

	return &models.CorrelationMatrix{
		Props:        props,
		Correlations: corr,
		Suggestions:  parlaySuggestions(props),
	}, nil
}

// pairedPearson inner-joins two dated series and correlates the overlap.
func pairedPearson(a, b map[time.Time]float64) float64 {
	dates := make([]time.Time, 0, len(a))
	for d := range a {
		if _, ok := b[d]; ok {
			dates = append(dates, d)
		}
	}
	if len(dates) < 2 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	xs := make([]float64, len(dates))
	ys := make([]float64, len(dates))
	for i, d := range dates {
		xs[i] = a[d]
		ys[i] = b[d]
	}
	return stats.Pearson(xs, ys)
}

// parlaySuggestions groups props by team and flags groups with two or more
// legs as co-movement candidates. Groups mixing over and under directions
// carry a soft warning instead of being rejected.
func parlaySuggestions(props []models.PropDescriptor) []models.ParlaySuggestion {
	byTeam := make(map[string][]models.PropDescriptor)
	order := make([]string, 0)
	for _, p := range props {
		if _, ok := byTeam[p.Team]; !ok {
			order = append(order, p.Team)
		}
		byTeam[p.Team] = append(byTeam[p.Team], p)
	}

	var out []models.ParlaySuggestion
	for _, team := range order {
		group := byTeam[team]
		if len(group) < 2 {
			continue
		}
		s := models.ParlaySuggestion{Team: team, Props: group}
		var hasOver, hasUnder bool
		for _, p := range group {
			switch p.Direction {
			case models.DirectionOver:
				hasOver = true
			case models.DirectionUnder:
				hasUnder = true
			}
		}
		if hasOver && hasUnder {
			s.Warning = mixedDirectionWarning
		}
		out = append(out, s)
	}
	return out
}
