// Package aperture implements the closed-form aperture filter
// variants A(u) / A(u_x,u_y): the squared modulus of the normalised
// Fourier transform of the entrance pupil (§3, §4.5). Grounded on
// weif/af/*.h.
package aperture

import (
	"math"

	"github.com/scintillometry/weif/specialmath"
)

// Filter is the common shape of every aperture variant: a radial
// evaluation and a 2-D evaluation for variants that are not
// axisymmetric.
type Filter interface {
	At(u float64) float64
	At2D(ux, uy float64) float64
}

// radial composes a radially-symmetric At into the default 2-D
// overload A(√(u_x²+u_y²)) (§4.5).
type radial struct {
	at func(u float64) float64
}

func (r radial) At(u float64) float64 {
	return r.at(u)
}

func (r radial) At2D(ux, uy float64) float64 {
	return r.at(math.Hypot(ux, uy))
}

// Point is the unobstructed, infinitesimal aperture: A ≡ 1.
type Point struct{}

func (Point) At(float64) float64            { return 1 }
func (Point) At2D(float64, float64) float64 { return 1 }

// Circular is the Airy aperture filter: A(u) = jinc_π(πu)².
type Circular struct{}

func (Circular) At(u float64) float64 {
	j := specialmath.JincPi(math.Pi * u)
	return j * j
}

func (c Circular) At2D(ux, uy float64) float64 {
	return radial{at: c.At}.At2D(ux, uy)
}

// Annular is a circular aperture obstructed by a concentric disk of
// relative radius Obscuration (0 <= ε < 1).
type Annular struct {
	Obscuration float64
}

func (a Annular) At(u float64) float64 {
	eps := a.Obscuration
	j1 := specialmath.JincPi(math.Pi * u)
	j2 := specialmath.JincPi(eps * math.Pi * u)
	num := j1 - eps*eps*j2
	den := 1 - eps*eps
	v := num / den
	return v * v
}

func (a Annular) At2D(ux, uy float64) float64 {
	return radial{at: a.At}.At2D(ux, uy)
}

// CrossAnnular is the product of two normalised annular kernels
// evaluated at u and at α·u — the MASS-instrument composite aperture
// built from a pair of concentric radii ratios (§3).
type CrossAnnular struct {
	Alpha                      float64
	Obscuration1, Obscuration2 float64
}

func (c CrossAnnular) At(u float64) float64 {
	a1 := Annular{Obscuration: c.Obscuration1}
	a2 := Annular{Obscuration: c.Obscuration2}
	return a1.At(u) * a2.At(c.Alpha*u)
}

func (c CrossAnnular) At2D(ux, uy float64) float64 {
	return radial{at: c.At}.At2D(ux, uy)
}

// Square is a square (non-radially-symmetric) pupil:
// A(u_x,u_y) = (sinc_π(πu_x)·sinc_π(πu_y))².
type Square struct{}

func (Square) At(u float64) float64 {
	s := specialmath.SincPi(math.Pi * u)
	return s * s
}

func (Square) At2D(ux, uy float64) float64 {
	sx := specialmath.SincPi(math.Pi * ux)
	sy := specialmath.SincPi(math.Pi * uy)
	v := sx * sy
	return v * v
}

// Gauss is the apodised Gaussian aperture filter supplemented from
// weif/af/gauss.h (§12 point 1): A(u) = exp(-u²),
// A(u_x,u_y) = exp(-u_x²-u_y²).
type Gauss struct{}

func (Gauss) At(u float64) float64 {
	return math.Exp(-u * u)
}

func (Gauss) At2D(ux, uy float64) float64 {
	return math.Exp(-ux*ux - uy*uy)
}

// Dimm wraps an aperture filter with the J0 fringe factor for a
// differential-image-motion baseline of relative ratio Beta
// (BaseRatio / aperture scale): A(u)·J0(2π·u·β) (§3).
type Dimm struct {
	Wrapped Filter
	Beta    float64
}

func (d Dimm) At(u float64) float64 {
	return d.Wrapped.At(u) * math.J0(2*math.Pi*u*d.Beta)
}

func (d Dimm) At2D(ux, uy float64) float64 {
	u := math.Hypot(ux, uy)
	return d.Wrapped.At2D(ux, uy) * math.J0(2*math.Pi*u*d.Beta)
}
