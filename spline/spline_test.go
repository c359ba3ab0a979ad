package spline_test

import (
	"testing"

	"github.com/scintillometry/weif/spline"
)

func TestInterpolatesKnots(t *testing.T) {
	y := []float64{1, 4, 9, 2, 7, 3}
	s, err := spline.New(y, spline.Natural())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range y {
		if got := s.At(float64(i)); got != want {
			t.Fatalf("index %d: got %v, want %v", i, got, want)
		}
	}
}

func TestNaturalBoundaryAffine(t *testing.T) {
	const a, b = 3.0, 2.5
	n := 8
	y := make([]float64, n)
	for i := range y {
		y[i] = a + b*float64(i)
	}
	s, err := spline.New(y, spline.Natural())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < n-1; i++ {
		x := float64(i) + 0.5
		want := a + b*x
		if got := s.At(x); abs(got-want) > 1e-9 {
			t.Fatalf("at %v: got %v, want %v", x, got, want)
		}
	}
}

func TestSecondOrderBoundaryQuadratic(t *testing.T) {
	n := 8
	y := make([]float64, n)
	for i := range y {
		y[i] = float64(i * i)
	}
	s, err := spline.New(y, spline.SecondDerivative(2, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < n-1; i++ {
		x := float64(i) + 0.5
		want := x * x
		if got := s.At(x); abs(got-want) > 1e-9 {
			t.Fatalf("at %v: got %v, want %v", x, got, want)
		}
	}
}

func TestScaleValues(t *testing.T) {
	y := []float64{0, 1, 4, 9, 16}
	s, err := spline.New(y, spline.Natural())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.ScaleValues(2)
	for i, want := range y {
		if got := s.ValueAt(i); got != want*2 {
			t.Fatalf("index %d: got %v, want %v", i, got, want*2)
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
