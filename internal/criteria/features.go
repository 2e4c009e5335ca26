package criteria

import (
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

// BuildFeatureContext assembles the typed feature vector for one candidate
// (player, game, stat, line) from its computed analytics. Field names here
// are the vocabulary criteria conditions are written against; a field absent
// from the map simply never matches.
func BuildFeatureContext(prop models.PropDescriptor, gameID, sport string, last models.Observation, streak models.StreakRow, verdict models.ConvergenceVerdict) models.FeatureContext {
	fields := map[string]models.FeatureValue{
		"line":                  models.Number(prop.Line),
		"opponent":              models.Enum(last.Opponent),
		"is_home":               models.Boolean(last.IsHome),
		"is_back_to_back":       models.Boolean(last.IsBackToBack),
		"rest_days":             models.Number(float64(last.RestDays)),
		"opp_def_rank":          models.Number(float64(last.OpponentDefenseRank)),
		"hit_rate":              models.Number(streak.HitRate),
		"hit_count":             models.Number(float64(streak.HitCount)),
		"consecutive_streak":    models.Number(float64(streak.ConsecutiveStreak)),
		"window_average":        models.Number(streak.WindowAverage),
		"season_average":        models.Number(streak.SeasonAverage),
		"convergence_score":     models.Number(float64(verdict.Score)),
		"convergence_direction": models.Enum(string(verdict.Direction)),
		"confidence_pct":        models.Number(float64(verdict.ConfidencePct)),
	}
	return models.FeatureContext{
		PlayerID: prop.PlayerID,
		GameID:   gameID,
		Sport:    sport,
		Stat:     prop.Stat,
		Line:     prop.Line,
		Fields:   fields,
	}
}
