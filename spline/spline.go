// Package spline implements the natural/clamped cubic spline used to
// interpolate spectral filter spectra and precomputed weight functions
// on an integer-spaced knot axis.
package spline

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// BoundaryKind selects which pair of endpoint constraints a Boundary
// carries.
type BoundaryKind int

const (
	// SecondOrder constrains the second derivative at each end
	// (y''_0, y''_{N-1}); the zero/zero case is the "natural" spline.
	SecondOrder BoundaryKind = iota
	// FirstOrder constrains the first derivative at each end
	// (y'_0, y'_{N-1}), i.e. a clamped spline.
	FirstOrder
)

// Boundary is a tagged union of the two boundary-condition families a
// CubicSpline construction can be given.
type Boundary struct {
	Kind  BoundaryKind
	Left  float64
	Right float64
}

// Natural is the default boundary: zero second derivative at both ends.
func Natural() Boundary {
	return Boundary{Kind: SecondOrder, Left: 0, Right: 0}
}

// Clamped constrains the first derivative at both ends.
func Clamped(leftSlope, rightSlope float64) Boundary {
	return Boundary{Kind: FirstOrder, Left: leftSlope, Right: rightSlope}
}

// SecondDerivative constrains the second derivative at both ends.
func SecondDerivative(leftCurvature, rightCurvature float64) Boundary {
	return Boundary{Kind: SecondOrder, Left: leftCurvature, Right: rightCurvature}
}

// Spline is a cubic spline over knots y_0..y_{N-1} on the integer axis
// 0..N-1, with second derivatives m_i solved at construction by a
// Thomas-algorithm tridiagonal sweep.
type Spline struct {
	y []float64
	m []float64
}

// New builds a Spline through y using boundary. len(y) must be >= 2.
func New(y []float64, boundary Boundary) (*Spline, error) {
	n := len(y)
	if n < 2 {
		return nil, fmt.Errorf("spline: need at least 2 knots, got %d", n)
	}

	s := &Spline{
		y: append([]float64(nil), y...),
		m: make([]float64, n),
	}
	s.solve(boundary)
	return s, nil
}

// solve runs the Thomas-algorithm forward sweep and back-substitution
// for the tridiagonal second-derivative system, following the same
// coefficient layout as the original C++ cubic_spline: interior rows
// have off-diagonal 0.5 and diagonal 2, and the boundary rows encode
// either a first- or second-order condition via (first, last, d0, dn).
func (s *Spline) solve(boundary Boundary) {
	n := len(s.y)

	var first, last, d0, dn float64
	switch boundary.Kind {
	case FirstOrder:
		first, last = 1, 1
		d0 = (s.y[1] - s.y[0] - boundary.Left) * 6
		dn = (boundary.Right - (s.y[n-1] - s.y[n-2])) * 6
	default: // SecondOrder
		first, last = 0, 0
		d0 = boundary.Left * 2
		dn = boundary.Right * 2
	}

	d := make([]float64, n)
	d[0] = d0
	d[n-1] = dn
	for i := 1; i < n-1; i++ {
		d[i] = (s.y[i-1] - 2*s.y[i] + s.y[i+1]) * 3
	}

	cprime := make([]float64, n)

	// Row 0: diagonal 2 with off-diagonal `first` on the super-diagonal
	// side (first==1 for clamped, first==0 leaves m0 free of m1).
	b0 := 2.0
	cprime[0] = first / b0
	s.m[0] = d[0] / b0

	for i := 1; i < n-1; i++ {
		denom := 2.0 - 0.5*cprime[i-1]
		cprime[i] = 0.5 / denom
		s.m[i] = (d[i] - 0.5*s.m[i-1]) / denom
	}

	denomN := 2.0 - last*cprime[n-2]
	s.m[n-1] = (d[n-1] - last*s.m[n-2]) / denomN

	for i := n - 2; i >= 0; i-- {
		s.m[i] -= cprime[i] * s.m[i+1]
	}
}

// Len returns the number of knots.
func (s *Spline) Len() int {
	return len(s.y)
}

// At evaluates the spline at real x in [0, N-1].
func (s *Spline) At(x float64) float64 {
	n := len(s.y)
	idx := int(math.Floor(x))
	if idx < 0 {
		idx = 0
	}
	if idx > n-2 {
		idx = n - 2
	}

	delta0 := x - float64(idx)
	delta1 := 1 - delta0

	y0, y1 := s.y[idx], s.y[idx+1]
	d20, d21 := s.m[idx]/6, s.m[idx+1]/6

	return d20*delta1*delta1*delta1 + d21*delta0*delta0*delta0 + (y0-d20)*delta1 + (y1-d21)*delta0
}

// SecondDerivativeAt returns the stored second derivative m_i at knot i,
// used by SpectralFilter's regularised near-zero evaluation (§4.6).
func (s *Spline) SecondDerivativeAt(i int) float64 {
	return s.m[i]
}

// ValueAt returns the stored knot value y_i.
func (s *Spline) ValueAt(i int) float64 {
	return s.y[i]
}

// ScaleValues multiplies both knot values and second derivatives by c,
// in place — the operation Poly.Normalize uses to rescale a spline by
// the equivalent wavelength (§4.6, §9: "do not symmetrise these
// boundaries", i.e. scaling must not re-solve the tridiagonal system).
func (s *Spline) ScaleValues(c float64) {
	vecmath.ScaleBlockInPlace(s.y, c)
	vecmath.ScaleBlockInPlace(s.m, c)
}

// ShiftValues adds c to every knot value without touching curvature —
// used when only the mean level of a sequence changes.
func (s *Spline) ShiftValues(c float64) {
	for i := range s.y {
		s.y[i] += c
	}
}
