package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMeanEmpty(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{2, 4, 6}); !almostEqual(got, 4) {
		t.Fatalf("expected 4, got %v", got)
	}
}

func TestMedianOdd(t *testing.T) {
	if got := Median([]float64{9, 1, 5}); !almostEqual(got, 5) {
		t.Fatalf("expected 5, got %v", got)
	}
}

func TestMedianEven(t *testing.T) {
	if got := Median([]float64{1, 2, 3, 4}); !almostEqual(got, 2.5) {
		t.Fatalf("expected 2.5, got %v", got)
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_ = Median(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Fatalf("input mutated: %v", in)
	}
}

func TestStdDevPopulation(t *testing.T) {
	// population stddev of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if !almostEqual(got, 2) {
		t.Fatalf("expected 2, got %v", got)
	}
}

func TestStdDevEmpty(t *testing.T) {
	if got := StdDev(nil); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestPearsonPerfect(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	if got := Pearson(xs, xs); !almostEqual(got, 1) {
		t.Fatalf("expected 1, got %v", got)
	}
}

func TestPearsonSymmetry(t *testing.T) {
	xs := []float64{1, 3, 2, 5}
	ys := []float64{10, 4, 7, 1}
	if a, b := Pearson(xs, ys), Pearson(ys, xs); !almostEqual(a, b) {
		t.Fatalf("expected symmetry, got %v and %v", a, b)
	}
}

func TestPearsonZeroVariance(t *testing.T) {
	xs := []float64{5, 5, 5}
	ys := []float64{1, 2, 3}
	if got := Pearson(xs, ys); got != 0 {
		t.Fatalf("expected 0 for constant series, got %v", got)
	}
}

func TestPearsonLengthMismatch(t *testing.T) {
	if got := Pearson([]float64{1, 2}, []float64{1}); got != 0 {
		t.Fatalf("expected 0 for mismatched lengths, got %v", got)
	}
}

func TestSilvermanSmallSampleFallback(t *testing.T) {
	got := SilvermanBandwidth([]float64{10, 12, 14})
	want := StdDev([]float64{10, 12, 14}) * 0.5
	if !almostEqual(got, want) {
		t.Fatalf("expected fallback %v, got %v", want, got)
	}
}

func TestSilvermanConstantSample(t *testing.T) {
	if got := SilvermanBandwidth([]float64{7, 7, 7}); got != 1 {
		t.Fatalf("expected 1 for constant sample, got %v", got)
	}
}

func TestSilvermanRule(t *testing.T) {
	values := []float64{10, 12, 15, 18, 20, 22, 25, 30}
	got := SilvermanBandwidth(values)
	sd := StdDev(values)
	iqr := IQR(values) / 1.34
	spread := sd
	if iqr < spread {
		spread = iqr
	}
	want := 0.9 * spread * math.Pow(8, -0.2)
	if !almostEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGaussianKDEShape(t *testing.T) {
	values := []float64{10, 15, 20, 25}
	pts := GaussianKDE(values, 2, 5, 30, 50)
	if len(pts) != 50 {
		t.Fatalf("expected 50 points, got %d", len(pts))
	}
	for i, p := range pts {
		if p.Y < 0 {
			t.Fatalf("negative density at %d: %v", i, p.Y)
		}
		if i > 0 && pts[i].X <= pts[i-1].X {
			t.Fatalf("x not strictly increasing at %d", i)
		}
	}
}

func TestGaussianKDEDeterministic(t *testing.T) {
	values := []float64{3, 5, 8}
	a := GaussianKDE(values, 1, 0, 10, 20)
	b := GaussianKDE(values, 1, 0, 10, 20)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic output at %d", i)
		}
	}
}

func TestGaussianKDEEmpty(t *testing.T) {
	if pts := GaussianKDE(nil, 1, 0, 10, 20); pts != nil {
		t.Fatalf("expected nil for empty input, got %d points", len(pts))
	}
}
