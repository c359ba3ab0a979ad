package spectralfilter_test

import (
	"math"
	"testing"

	"github.com/scintillometry/weif/spectralfilter"
)

func TestMonoSpecialValues(t *testing.T) {
	m := spectralfilter.Mono{}
	if got := m.E(0); math.Abs(got) > 1e-12 {
		t.Errorf("E(0) = %v, want 0", got)
	}
	if got := m.E(0.5); math.Abs(got-1) > 1e-12 {
		t.Errorf("E(0.5) = %v, want 1", got)
	}
	if got := m.E(1); math.Abs(got) > 1e-9 {
		t.Errorf("E(1) = %v, want 0", got)
	}
	if got := m.E(-0.3) - m.E(0.3); math.Abs(got) > 1e-12 {
		t.Errorf("E not symmetric: diff = %v", got)
	}
}

func TestMonoRegular(t *testing.T) {
	m := spectralfilter.Mono{}
	if got := m.Regular(0); math.Abs(got-math.Pi*math.Pi) > 1e-9 {
		t.Errorf("Regular(0) = %v, want π²", got)
	}
	if got := m.Regular(0.5); math.Abs(got-4) > 1e-9 {
		t.Errorf("Regular(0.5) = %v, want 4", got)
	}
	if got := m.Regular(0.1); math.Abs(got-9.549150281252) > 1e-6 {
		t.Errorf("Regular(0.1) = %v, want 9.549150281252", got)
	}
}

func TestGaussSpecialValues(t *testing.T) {
	g := spectralfilter.Gauss{Lambda: 0.1}
	if got := g.E(0.1); math.Abs(got-0.09547450823) > 1e-6 {
		t.Errorf("E(0.1) = %v, want 0.09547450823", got)
	}
	if got := g.E(0.5); math.Abs(got-0.99556025079) > 1e-6 {
		t.Errorf("E(0.5) = %v, want 0.99556025079", got)
	}
}
