package aperture_test

import (
	"math"
	"testing"

	"github.com/scintillometry/weif/aperture"
)

func TestAtZeroIsOne(t *testing.T) {
	filters := map[string]aperture.Filter{
		"point":        aperture.Point{},
		"circular":     aperture.Circular{},
		"annular":      aperture.Annular{Obscuration: 0.3},
		"crossannular": aperture.CrossAnnular{Alpha: 0.5, Obscuration1: 0.2, Obscuration2: 0.3},
		"square":       aperture.Square{},
	}
	for name, f := range filters {
		if got := f.At(0); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s.At(0) = %v, want 1", name, got)
		}
	}
}

func TestAnnularLimitsToCircular(t *testing.T) {
	a := aperture.Annular{Obscuration: 1e-9}
	c := aperture.Circular{}
	for _, u := range []float64{0.1, 0.5, 1.0, 2.0} {
		got, want := a.At(u), c.At(u)
		if math.Abs(got-want) > 1e-5 {
			t.Errorf("Annular(eps->0).At(%v) = %v, want ~%v", u, got, want)
		}
	}
}

func TestCircularBoundedByOne(t *testing.T) {
	c := aperture.Circular{}
	for _, u := range []float64{0.1, 0.5, 1, 2, 5, 10} {
		v := c.At(u)
		if v < 0 || v > 1 {
			t.Errorf("Circular.At(%v) = %v, want in [0,1]", u, v)
		}
	}
}

func TestGaussAtZero(t *testing.T) {
	g := aperture.Gauss{}
	if got := g.At(0); got != 1 {
		t.Errorf("Gauss.At(0) = %v, want 1", got)
	}
}
