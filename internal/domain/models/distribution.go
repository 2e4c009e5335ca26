package models

// DensityPoint is one sample of a smoothed density curve.
type DensityPoint struct {
	X float64
	Y float64
}

// VolatilityTier buckets the coefficient of variation of a stat.
type VolatilityTier string

const (
	VolatilityLow    VolatilityTier = "low"
	VolatilityMedium VolatilityTier = "medium"
	VolatilityHigh   VolatilityTier = "high"
)

// Overlay is a sub-distribution conditioned on a boolean split of the
// input observations (home/away, strong/weak opposing defense, ...).
// Games == 0 means the split had too few observations to estimate.
type Overlay struct {
	Name         string
	Games        int
	Mean         float64
	DensityCurve []DensityPoint
}

// DistributionResult is the full smoothed view of a stat's history
// against a threshold line. Derived and stateless: computed fresh per
// request, never persisted by the core.
type DistributionResult struct {
	Values          []float64
	Mean            float64
	Median          float64
	StdDev          float64
	Min             float64
	Max             float64
	DensityCurve    []DensityPoint
	OverFraction    float64
	UnderFraction   float64
	VolatilityTier  VolatilityTier
	VolatilityScore float64
	Overlays        []Overlay
}
