package stats

import (
	"math"
	"sort"
)

// Closed-form primitives shared by the analytics core. Empty input returns 0
// everywhere: downstream callers treat "no data" as a valid, displayable
// state rather than an error.

// Mean returns the arithmetic mean of values, or 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value of values, or 0 for empty input.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// StdDev returns the population standard deviation of values, or 0 for
// empty input.
func StdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	m := Mean(values)
	sum2 := 0.0
	for _, v := range values {
		d := v - m
		sum2 += d * d
	}
	return math.Sqrt(sum2 / float64(n))
}

// MinMax returns the smallest and largest values, or (0, 0) for empty input.
func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Pearson returns the Pearson correlation coefficient of two equal-length
// series. It returns 0 when fewer than 2 pairs exist or when either series
// has zero variance, so degenerate inputs stay renderable instead of NaN.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

// IQR returns the interquartile range Q3-Q1 using linear interpolation
// between closest ranks.
func IQR(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	return quantile(sorted, 0.75) - quantile(sorted, 0.25)
}

// quantile expects sorted input and q in [0, 1].
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// SilvermanBandwidth returns the rule-of-thumb KDE bandwidth
// 0.9 * min(stdDev, IQR/1.34) * n^(-1/5). The rule is unstable on tiny
// samples, so for n < 5 it falls back to stdDev*0.5, or 1 when the sample
// is constant.
func SilvermanBandwidth(values []float64) float64 {
	n := len(values)
	sd := StdDev(values)
	if n < 5 {
		if sd == 0 {
			return 1
		}
		return sd * 0.5
	}
	spread := sd
	if iqr := IQR(values) / 1.34; iqr > 0 && iqr < spread {
		spread = iqr
	}
	if spread == 0 {
		return 1
	}
	return 0.9 * spread * math.Pow(float64(n), -0.2)
}

// Point is one (x, density) sample of a kernel density estimate.
type Point struct {
	X float64
	Y float64
}

// GaussianKDE evaluates a Gaussian-kernel density estimate at numPoints
// evenly spaced locations in [xMin, xMax]. Each point's density is the mean
// of per-observation Gaussian kernels centered at that observation with the
// given bandwidth. Deterministic; x strictly increasing; all y >= 0.
func GaussianKDE(values []float64, bandwidth, xMin, xMax float64, numPoints int) []Point {
	if len(values) == 0 || numPoints <= 0 || bandwidth <= 0 {
		return nil
	}
	out := make([]Point, numPoints)
	step := 0.0
	if numPoints > 1 {
		step = (xMax - xMin) / float64(numPoints-1)
	}
	norm := 1 / (bandwidth * math.Sqrt(2*math.Pi))
	for i := 0; i < numPoints; i++ {
		x := xMin + float64(i)*step
		sum := 0.0
		for _, v := range values {
			z := (x - v) / bandwidth
			sum += norm * math.Exp(-0.5*z*z)
		}
		out[i] = Point{X: x, Y: sum / float64(len(values))}
	}
	return out
}
