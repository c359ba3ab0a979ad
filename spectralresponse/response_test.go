package spectralresponse_test

import (
	"math"
	"testing"

	"github.com/scintillometry/weif/grid"
	"github.com/scintillometry/weif/internal/testutil"
	"github.com/scintillometry/weif/spectralresponse"
)

func TestNormalizeSumsToOne(t *testing.T) {
	g := grid.New(400, 10, 5)
	r, err := spectralresponse.New(g, testutil.LinearRamp(1, 1, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Normalize()

	sum := 0.0
	for _, v := range r.Values {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("sum = %v, want 1", sum)
	}
}

func TestStackIntersectsAndMultiplies(t *testing.T) {
	a, err := spectralresponse.New(grid.New(400, 10, 6), testutil.Ones(6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := spectralresponse.New(grid.New(420, 10, 6), testutil.DC(2, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := a.Stack(b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Grid.Origin != 420 {
		t.Fatalf("origin = %v, want 420", a.Grid.Origin)
	}
	for _, v := range a.Values {
		if v != 2 {
			t.Fatalf("value = %v, want 2", v)
		}
	}
}

func TestEffectiveLambda(t *testing.T) {
	g := grid.New(500, 0, 1)
	g.Delta = 1
	r, err := spectralresponse.New(g, []float64{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.EffectiveLambda(); got != 500 {
		t.Fatalf("got %v, want 500", got)
	}
}
