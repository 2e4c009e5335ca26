package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/jasonbowman97/HeatCheckHQ-sub005/internal/domain/models"
)

func obsWith(values ...float64) []models.Observation {
	out := make([]models.Observation, len(values))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		out[i] = models.Observation{
			Date:   base.AddDate(0, 0, -i),
			Value:  v,
			IsHome: i%2 == 0,
		}
	}
	return out
}

func TestComputeDistributionFractionsSumToOne(t *testing.T) {
	res := ComputeDistribution(obsWith(10, 22, 25, 31, 18, 27), 24.5)
	if got := res.OverFraction + res.UnderFraction; math.Abs(got-1) > 1e-9 {
		t.Fatalf("fractions must sum to 1, got %v", got)
	}
}

func TestComputeDistributionOverFractionStrict(t *testing.T) {
	// exactly on the line is not over
	res := ComputeDistribution(obsWith(20, 20, 25, 15), 20)
	if res.OverFraction != 0.25 {
		t.Fatalf("expected 0.25, got %v", res.OverFraction)
	}
}

func TestComputeDistributionEmpty(t *testing.T) {
	res := ComputeDistribution(nil, 10.5)
	if res.Mean != 0 || res.StdDev != 0 || len(res.DensityCurve) != 0 || len(res.Values) != 0 {
		t.Fatalf("expected zeroed result, got %+v", res)
	}
}

func TestComputeDistributionCurveShape(t *testing.T) {
	res := ComputeDistribution(obsWith(12, 18, 22, 25, 30, 14, 19, 26), 20.5)
	if len(res.DensityCurve) != densityPoints {
		t.Fatalf("expected %d points, got %d", densityPoints, len(res.DensityCurve))
	}
	for i := 1; i < len(res.DensityCurve); i++ {
		if res.DensityCurve[i].X <= res.DensityCurve[i-1].X {
			t.Fatalf("x not strictly increasing at %d", i)
		}
	}
	// domain padded beyond observed range
	if res.DensityCurve[0].X >= res.Min {
		t.Fatalf("expected left tail below min %v, got %v", res.Min, res.DensityCurve[0].X)
	}
}

func TestVolatilityTiers(t *testing.T) {
	cases := []struct {
		cv   float64
		want models.VolatilityTier
	}{
		{10, models.VolatilityLow},
		{29.99, models.VolatilityLow},
		{30, models.VolatilityMedium},
		{59.99, models.VolatilityMedium},
		{60, models.VolatilityHigh},
		{150, models.VolatilityHigh},
	}
	for _, c := range cases {
		if got := volatilityTier(c.cv); got != c.want {
			t.Errorf("cv %v: expected %s, got %s", c.cv, c.want, got)
		}
	}
}

func TestComputeDistributionZeroMeanGuard(t *testing.T) {
	res := ComputeDistribution(obsWith(0, 0, 0, 0), 0.5)
	if res.VolatilityScore != 0 {
		t.Fatalf("expected 0 CV when mean is 0, got %v", res.VolatilityScore)
	}
}

func TestOverlaySparseSplit(t *testing.T) {
	obs := obsWith(10, 20, 30)
	// predicate keeps nothing
	res := ComputeDistribution(obs, 15, OverlayPredicate{
		Name: "never",
		Keep: func(models.Observation) bool { return false },
	})
	if len(res.Overlays) != 1 {
		t.Fatalf("expected 1 overlay, got %d", len(res.Overlays))
	}
	ov := res.Overlays[0]
	if ov.Games != 0 || len(ov.DensityCurve) != 0 {
		t.Fatalf("expected empty overlay, got %+v", ov)
	}
}

func TestOverlayHomeSplit(t *testing.T) {
	obs := []models.Observation{
		{Value: 30, IsHome: true},
		{Value: 28, IsHome: true},
		{Value: 32, IsHome: true},
		{Value: 18, IsHome: false},
		{Value: 20, IsHome: false},
		{Value: 16, IsHome: false},
	}
	res := ComputeDistribution(obs, 24.5, HomeAwayOverlays()...)
	if len(res.Overlays) != 2 {
		t.Fatalf("expected 2 overlays, got %d", len(res.Overlays))
	}
	home, away := res.Overlays[0], res.Overlays[1]
	if home.Games != 3 || away.Games != 3 {
		t.Fatalf("expected 3 games each, got %d and %d", home.Games, away.Games)
	}
	if home.Mean <= away.Mean {
		t.Fatalf("expected home mean above away, got %v vs %v", home.Mean, away.Mean)
	}
}

func TestComputeDistributionIdempotent(t *testing.T) {
	obs := obsWith(11, 19, 23, 27, 14, 31)
	a := ComputeDistribution(obs, 20.5, DefaultOverlays()...)
	b := ComputeDistribution(obs, 20.5, DefaultOverlays()...)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical results for identical inputs")
	}
}
