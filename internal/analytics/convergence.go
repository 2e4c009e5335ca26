package analytics

import (
	"math"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

// Canonical signal names emitted by the signal builders. The scorer itself
// accepts any named set; these keep handler output stable for auditing.
const (
	SignalMatchup    = "matchup"
	SignalRecentForm = "recent_form"
	SignalRest       = "rest"
	SignalPace       = "pace"
	SignalVenue      = "venue"
	SignalVolatility = "volatility"
	SignalSeasonEdge = "season_edge"
	SignalStreak     = "streak"
	SignalNarrative  = "narrative"
)

// ScoreConvergence combines independently computed signals into a single
// bounded verdict. Every signal carries one vote (equal weighting is the
// documented policy): score counts the votes agreeing with the net-majority
// direction, and confidence is the majority share of the total. The verdict
// lists every contributing signal so a user can audit why it was reached.
func ScoreConvergence(signals []models.Signal) models.ConvergenceVerdict {
	verdict := models.ConvergenceVerdict{
		Direction:           models.DirectionTossUp,
		ContributingSignals: signals,
	}
	if len(signals) == 0 {
		return verdict
	}

	var over, under int
	for _, s := range signals {
		switch s.Vote {
		case models.VoteOver:
			over++
		case models.VoteUnder:
			under++
		}
	}

	switch {
	case over > under:
		verdict.Direction = models.DirectionOver
		verdict.Score = over
	case under > over:
		verdict.Direction = models.DirectionUnder
		verdict.Score = under
	default:
		verdict.Score = over // tied; toss-up keeps the shared count
	}

	majority := over
	if under > majority {
		majority = under
	}
	verdict.ConfidencePct = int(math.Round(100 * float64(majority) / float64(len(signals))))
	return verdict
}

// BuildSignals derives the canonical signal set for a (player, stat, line)
// tuple from the already-computed distribution and streak features. Each
// builder votes over, under, or neutral; the scorer stays a transparent
// tally over the result.
func BuildSignals(dist models.DistributionResult, streak models.StreakRow, last models.Observation, pace float64) []models.Signal {
	signals := []models.Signal{
		{Name: SignalMatchup, Vote: matchupVote(last)},
		{Name: SignalRecentForm, Vote: thresholdVote(streak.HitRate, 0.6, 0.4)},
		{Name: SignalRest, Vote: restVote(last)},
		{Name: SignalPace, Vote: thresholdVote(pace, 1.02, 0.98)},
		{Name: SignalVenue, Vote: venueVote(dist, last)},
		{Name: SignalVolatility, Vote: volatilityVote(dist)},
		{Name: SignalSeasonEdge, Vote: thresholdVote(safeRatio(streak.SeasonAverage, streak.Line), 1.05, 0.95)},
		{Name: SignalStreak, Vote: streakVote(streak.ConsecutiveStreak)},
		// No narrative feed (injury reports, role news) is ingested yet, so
		// this vote is always neutral; it still appears in the audit trail.
		{Name: SignalNarrative, Vote: models.VoteNeutral},
	}
	return signals
}

func matchupVote(last models.Observation) models.Vote {
	switch {
	case last.OpponentDefenseRank >= 21:
		return models.VoteOver
	case last.OpponentDefenseRank > 0 && last.OpponentDefenseRank <= 10:
		return models.VoteUnder
	default:
		return models.VoteNeutral
	}
}

func restVote(last models.Observation) models.Vote {
	switch {
	case last.IsBackToBack:
		return models.VoteUnder
	case last.RestDays >= 2:
		return models.VoteOver
	default:
		return models.VoteNeutral
	}
}

func venueVote(dist models.DistributionResult, last models.Observation) models.Vote {
	name := "away"
	if last.IsHome {
		name = "home"
	}
	for _, ov := range dist.Overlays {
		if ov.Name != name || ov.Games == 0 {
			continue
		}
		return thresholdVote(safeRatio(ov.Mean, dist.Mean), 1.05, 0.95)
	}
	return models.VoteNeutral
}

func volatilityVote(dist models.DistributionResult) models.Vote {
	// High variance cuts both ways; only a steady profile above the line
	// counts as an over signal.
	if dist.VolatilityTier == models.VolatilityLow && dist.OverFraction > 0.5 {
		return models.VoteOver
	}
	if dist.VolatilityTier == models.VolatilityHigh {
		return models.VoteUnder
	}
	return models.VoteNeutral
}

func streakVote(streak int) models.Vote {
	switch {
	case streak >= 3:
		return models.VoteOver
	case streak <= -3:
		return models.VoteUnder
	default:
		return models.VoteNeutral
	}
}

func thresholdVote(v, overAt, underAt float64) models.Vote {
	switch {
	case v >= overAt:
		return models.VoteOver
	case v <= underAt && v > 0:
		return models.VoteUnder
	default:
		return models.VoteNeutral
	}
}

func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
