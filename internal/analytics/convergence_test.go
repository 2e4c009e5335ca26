package analytics

import (
	"reflect"
	"testing"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

func votes(over, under, neutral int) []models.Signal {
	var out []models.Signal
	for i := 0; i < over; i++ {
		out = append(out, models.Signal{Name: "over_sig", Vote: models.VoteOver})
	}
	for i := 0; i < under; i++ {
		out = append(out, models.Signal{Name: "under_sig", Vote: models.VoteUnder})
	}
	for i := 0; i < neutral; i++ {
		out = append(out, models.Signal{Name: "neutral_sig", Vote: models.VoteNeutral})
	}
	return out
}

func TestScoreConvergenceMajorityOver(t *testing.T) {
	v := ScoreConvergence(votes(6, 3, 0))
	if v.Direction != models.DirectionOver {
		t.Fatalf("expected over, got %s", v.Direction)
	}
	if v.Score != 6 {
		t.Fatalf("expected score 6, got %d", v.Score)
	}
	if v.ConfidencePct != 67 {
		t.Fatalf("expected 67, got %d", v.ConfidencePct)
	}
}

func TestScoreConvergenceMajorityUnder(t *testing.T) {
	v := ScoreConvergence(votes(2, 5, 2))
	if v.Direction != models.DirectionUnder || v.Score != 5 {
		t.Fatalf("expected under/5, got %s/%d", v.Direction, v.Score)
	}
	if v.ConfidencePct != 56 {
		t.Fatalf("expected round(100*5/9)=56, got %d", v.ConfidencePct)
	}
}

func TestScoreConvergenceTossUp(t *testing.T) {
	v := ScoreConvergence(votes(3, 3, 1))
	if v.Direction != models.DirectionTossUp {
		t.Fatalf("expected toss-up, got %s", v.Direction)
	}
}

func TestScoreConvergenceNoSignals(t *testing.T) {
	v := ScoreConvergence(nil)
	if v.Direction != models.DirectionTossUp || v.ConfidencePct != 0 || v.Score != 0 {
		t.Fatalf("expected empty toss-up verdict, got %+v", v)
	}
}

func TestScoreConvergenceAuditTrail(t *testing.T) {
	in := votes(2, 1, 1)
	v := ScoreConvergence(in)
	if !reflect.DeepEqual(v.ContributingSignals, in) {
		t.Fatalf("every input signal must appear in the verdict")
	}
}

func TestScoreConvergenceIdempotent(t *testing.T) {
	in := votes(4, 2, 3)
	a := ScoreConvergence(in)
	b := ScoreConvergence(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical verdicts for identical inputs")
	}
}

func TestBuildSignalsCanonicalSet(t *testing.T) {
	dist := models.DistributionResult{Mean: 22, OverFraction: 0.7, VolatilityTier: models.VolatilityLow}
	streak := models.StreakRow{Line: 20.5, HitRate: 0.7, SeasonAverage: 23, ConsecutiveStreak: 4}
	last := models.Observation{OpponentDefenseRank: 25, RestDays: 2}

	signals := BuildSignals(dist, streak, last, 1.03)
	if len(signals) != 9 {
		t.Fatalf("expected 9 canonical signals, got %d", len(signals))
	}
	seen := map[string]models.Vote{}
	for _, s := range signals {
		seen[s.Name] = s.Vote
	}
	if seen[SignalMatchup] != models.VoteOver {
		t.Fatalf("weak defense should vote over, got %s", seen[SignalMatchup])
	}
	if seen[SignalRest] != models.VoteOver {
		t.Fatalf("2+ rest days should vote over, got %s", seen[SignalRest])
	}
	if seen[SignalStreak] != models.VoteOver {
		t.Fatalf("streak of 4 should vote over, got %s", seen[SignalStreak])
	}
}

func TestBuildSignalsNarrativeAlwaysNeutral(t *testing.T) {
	signals := BuildSignals(models.DistributionResult{}, models.StreakRow{}, models.Observation{}, 1.0)
	for _, s := range signals {
		if s.Name == SignalNarrative {
			if s.Vote != models.VoteNeutral {
				t.Fatalf("narrative has no feed and must stay neutral, got %s", s.Vote)
			}
			return
		}
	}
	t.Fatalf("narrative signal missing")
}

func TestBuildSignalsBackToBackVotesUnder(t *testing.T) {
	signals := BuildSignals(models.DistributionResult{}, models.StreakRow{}, models.Observation{IsBackToBack: true}, 1.0)
	for _, s := range signals {
		if s.Name == SignalRest {
			if s.Vote != models.VoteUnder {
				t.Fatalf("back-to-back should vote under, got %s", s.Vote)
			}
			return
		}
	}
	t.Fatalf("rest signal missing")
}
