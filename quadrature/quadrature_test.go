package quadrature_test

import (
	"math"
	"testing"

	"github.com/scintillometry/weif/dsp/core"
	"github.com/scintillometry/weif/quadrature"
)

func TestExpSinhGaussianIntegral(t *testing.T) {
	q := quadrature.NewExpSinh()
	// ∫₀^∞ exp(-x²) dx = √π/2
	got, err := q.Integrate(func(x float64) float64 {
		return math.Exp(-x * x)
	}, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Sqrt(math.Pi) / 2
	if !core.NearlyEqual(got, want, 1e-6) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExpSinhExponentialDecay(t *testing.T) {
	q := quadrature.NewExpSinh()
	// ∫₀^∞ exp(-x) dx = 1
	got, err := q.Integrate(func(x float64) float64 {
		return math.Exp(-x)
	}, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !core.NearlyEqual(got, 1, 1e-6) {
		t.Fatalf("got %v, want 1", got)
	}
}

func TestTanhSinhConstant(t *testing.T) {
	q := quadrature.NewTanhSinh()
	// ∫₋₁^1 1 dx = 2
	got, err := q.Integrate(func(x float64) float64 {
		return 1
	}, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-2) > 1e-9 {
		t.Fatalf("got %v, want 2", got)
	}
}

func TestTanhSinhPolynomial(t *testing.T) {
	q := quadrature.NewTanhSinh()
	// ∫₋₁^1 x² dx = 2/3
	got, err := q.Integrate(func(x float64) float64 {
		return x * x
	}, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 2.0 / 3.0
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("got %v, want %v", got, want)
	}
}
