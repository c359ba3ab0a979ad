package weight_test

import (
	"sync"
	"testing"

	"github.com/scintillometry/weif/aperture"
	"github.com/scintillometry/weif/dsp/core"
	"github.com/scintillometry/weif/internal/testutil"
	"github.com/scintillometry/weif/spectralfilter"
	"github.com/scintillometry/weif/weight"
)

func TestWeightFunction1DZeroAtOrigin(t *testing.T) {
	wf, err := weight.NewWeightFunction1D(spectralfilter.Mono{}, aperture.Point{}, 550, 10,
		core.WithGridSize(64))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := wf.At(0); got != 0 {
		t.Fatalf("W(0) = %v, want 0", got)
	}
}

func TestWeightFunction1DFiniteAndPositive(t *testing.T) {
	wf, err := weight.NewWeightFunction1D(spectralfilter.Mono{}, aperture.Point{}, 550, 10,
		core.WithGridSize(64))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	altitudes := []float64{0.5, 1, 10, 32}
	values := make([]float64, len(altitudes))
	for i, h := range altitudes {
		values[i] = wf.At(h)
	}
	testutil.RequireFinite(t, values)
	for i, v := range values {
		if v <= 0 {
			t.Fatalf("W(%v) = %v, want > 0", altitudes[i], v)
		}
	}
}

func TestWeightFunction2DZeroAtOrigin(t *testing.T) {
	wf, err := weight.NewWeightFunction2D(spectralfilter.Mono{}, aperture.Square{}, 550, 10,
		core.WithGridSize(32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := wf.At(0); got != 0 {
		t.Fatalf("W(0) = %v, want 0", got)
	}
}

func TestWeightFunctionGrid2DZeroAltitude(t *testing.T) {
	g, err := weight.NewWeightFunctionGrid2D(spectralfilter.Mono{}, aperture.Point{}, 550, 10, 1, 4, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := g.At(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("index %d: got %v, want 0 at h=0", i, v)
		}
	}
}

func TestWeightFunctionGrid2DWithPool(t *testing.T) {
	pool := &sync.Pool{New: func() any { return make([]float64, 0, 16) }}
	g, err := weight.NewWeightFunctionGrid2D(spectralfilter.Mono{}, aperture.Point{}, 550, 10, 1, 4, 4,
		weight.WithTensorPool(pool))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := g.At(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 16 {
		t.Fatalf("len(out) = %d, want 16", len(out))
	}
	g.Release(out)
}
