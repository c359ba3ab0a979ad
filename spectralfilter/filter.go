// Package spectralfilter implements the spectral filter variants
// E(x): Mono, Gauss(Λ), and the FFT-based polychromatic Poly filter
// (§3, §4.6). Grounded on weif/sf/*.h and the teacher's real-FFT usage
// in dsp/spectrum.
package spectralfilter

import (
	"math"

	"github.com/scintillometry/weif/specialmath"
)

// Filter is the common shape of every spectral filter variant: the
// direct evaluation E(x) and its low-frequency-regularised form
// (E(x)/x², kept finite as x→0).
type Filter interface {
	E(x float64) float64
	Regular(x float64) float64
}

// Mono is the monochromatic spectral filter: E(x) = sin²(πx),
// regular(x) = π²·sinc_π(πx)².
type Mono struct{}

func (Mono) E(x float64) float64 {
	s := math.Sin(math.Pi * x)
	return s * s
}

func (Mono) Regular(x float64) float64 {
	s := specialmath.SincPi(math.Pi * x)
	return math.Pi * math.Pi * s * s
}

// Gauss is the Gaussian-bandwidth polychromatic approximation:
// E(x) = sin²(πx)·exp(-π²Λ²x²/(8 ln 2)).
type Gauss struct {
	Lambda float64
}

func (g Gauss) E(x float64) float64 {
	s := math.Sin(math.Pi * x)
	return s * s * math.Exp(-math.Pi*math.Pi*g.Lambda*g.Lambda*x*x/(8*math.Ln2))
}

func (g Gauss) Regular(x float64) float64 {
	s := specialmath.SincPi(math.Pi * x)
	return math.Pi * math.Pi * s * s * math.Exp(-math.Pi*math.Pi*g.Lambda*g.Lambda*x*x/(8*math.Ln2))
}
