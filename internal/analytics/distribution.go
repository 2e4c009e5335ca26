package analytics

import (
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/analytics/stats"
	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

const (
	// densityPoints is the number of KDE samples per curve.
	densityPoints = 100
	// overlayDensityPoints keeps conditioned curves cheaper; splits are small.
	overlayDensityPoints = 60
	// minOverlayGames is the statistical minimum for a conditioned KDE.
	minOverlayGames = 3
)

// OverlayPredicate names a boolean split of the observation set. Each
// predicate that keeps enough games yields one conditioned sub-distribution.
type OverlayPredicate struct {
	Name string
	Keep func(models.Observation) bool
}

// HomeAwayOverlays returns the canonical venue split.
func HomeAwayOverlays() []OverlayPredicate {
	return []OverlayPredicate{
		{Name: "home", Keep: func(o models.Observation) bool { return o.IsHome }},
		{Name: "away", Keep: func(o models.Observation) bool { return !o.IsHome }},
	}
}

// DefenseOverlays returns the opposing-defense split. Ranks run 1 (stingiest)
// through 30; strongMax and weakMin are inclusive boundaries.
func DefenseOverlays(strongMax, weakMin int) []OverlayPredicate {
	return []OverlayPredicate{
		{Name: "vs_strong_defense", Keep: func(o models.Observation) bool {
			return o.OpponentDefenseRank > 0 && o.OpponentDefenseRank <= strongMax
		}},
		{Name: "vs_weak_defense", Keep: func(o models.Observation) bool {
			return o.OpponentDefenseRank >= weakMin
		}},
	}
}

// DefaultOverlays combines the venue split with a top-10/bottom-10 defense
// split, the fixed set the product renders.
func DefaultOverlays() []OverlayPredicate {
	return append(HomeAwayOverlays(), DefenseOverlays(10, 21)...)
}

// ComputeDistribution builds the smoothed density view of a stat's history
// against a threshold line, plus one conditioned overlay per predicate.
// Chronological order of observations is irrelevant here. Empty input yields
// a zeroed result rather than an error so the caller can render "no data".
func ComputeDistribution(obs []models.Observation, line float64, overlays ...OverlayPredicate) models.DistributionResult {
	values := models.Values(obs)
	if len(values) == 0 {
		return models.DistributionResult{VolatilityTier: models.VolatilityLow}
	}

	mean := stats.Mean(values)
	sd := stats.StdDev(values)
	lo, hi := stats.MinMax(values)
	bw := stats.SilvermanBandwidth(values)

	// Pad the domain by two bandwidths so the tails are visible.
	curve := densityCurve(values, bw, lo-2*bw, hi+2*bw, densityPoints)

	over := 0
	for _, v := range values {
		if v > line {
			over++
		}
	}
	overFrac := float64(over) / float64(len(values))

	cv := 0.0
	if mean != 0 {
		cv = sd / mean * 100
	}

	res := models.DistributionResult{
		Values:          values,
		Mean:            mean,
		Median:          stats.Median(values),
		StdDev:          sd,
		Min:             lo,
		Max:             hi,
		DensityCurve:    curve,
		OverFraction:    overFrac,
		UnderFraction:   1 - overFrac,
		VolatilityTier:  volatilityTier(cv),
		VolatilityScore: cv,
	}

	for _, p := range overlays {
		res.Overlays = append(res.Overlays, computeOverlay(obs, p))
	}
	return res
}

// computeOverlay filters observations by the predicate and estimates a
// smaller-sample density. Sparse splits come back as Games: 0, never an
// error: the caller renders "insufficient data".
func computeOverlay(obs []models.Observation, p OverlayPredicate) models.Overlay {
	var values []float64
	for _, o := range obs {
		if p.Keep(o) {
			values = append(values, o.Value)
		}
	}
	if len(values) < minOverlayGames {
		return models.Overlay{Name: p.Name}
	}
	bw := stats.SilvermanBandwidth(values)
	lo, hi := stats.MinMax(values)
	return models.Overlay{
		Name:         p.Name,
		Games:        len(values),
		Mean:         stats.Mean(values),
		DensityCurve: densityCurve(values, bw, lo-2*bw, hi+2*bw, overlayDensityPoints),
	}
}

func densityCurve(values []float64, bw, xMin, xMax float64, n int) []models.DensityPoint {
	pts := stats.GaussianKDE(values, bw, xMin, xMax, n)
	out := make([]models.DensityPoint, len(pts))
	for i, p := range pts {
		out[i] = models.DensityPoint{X: p.X, Y: p.Y}
	}
	return out
}

// volatilityTier buckets the coefficient of variation: <30 low, <60 medium,
// else high.
func volatilityTier(cv float64) models.VolatilityTier {
	switch {
	case cv < 30:
		return models.VolatilityLow
	case cv < 60:
		return models.VolatilityMedium
	default:
		return models.VolatilityHigh
	}
}
