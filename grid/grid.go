// Package grid implements UniformGrid, the equispaced index-to-value
// mapping shared by every spectral, aperture, and weight-function
// component in this module.
package grid

import "math"

// Grid is an equispaced 1-D sequence origin, origin+delta, …,
// origin+(size-1)*delta. A zero-value Grid has Size 0 and is empty.
type Grid struct {
	Origin float64
	Delta  float64
	Size   int
}

// New constructs a Grid directly from (origin, delta, size). It performs
// no validation: callers that need uniformity checking should use
// FromValues.
func New(origin, delta float64, size int) Grid {
	return Grid{Origin: origin, Delta: delta, Size: size}
}

// FromValues builds a Grid from an explicit value sequence, validating
// that every element beyond the first two lies on the grid implied by
// them. It returns a *NonUniformGridError naming the first offending
// index.
func FromValues(values []float64) (Grid, error) {
	if len(values) == 0 {
		return Grid{}, nil
	}
	if len(values) == 1 {
		return Grid{Origin: values[0], Delta: 0, Size: 1}, nil
	}

	origin := values[0]
	delta := values[1] - values[0]

	for i := 2; i < len(values); i++ {
		expected := origin + float64(i)*delta
		if values[i] != expected {
			return Grid{}, &NonUniformGridError{Index: i, Actual: values[i], Expected: expected}
		}
	}

	return Grid{Origin: origin, Delta: delta, Size: len(values)}, nil
}

// Value returns the i-th grid point.
func (g Grid) Value(i int) float64 {
	return g.Origin + float64(i)*g.Delta
}

// Last returns the final grid point, or Origin if Size <= 1.
func (g Grid) Last() float64 {
	if g.Size <= 0 {
		return g.Origin
	}
	return g.Value(g.Size - 1)
}

// ToIndex returns floor((v-origin)/delta), the index of the grid point
// at or below v. It is valid even when v lies outside [Origin,
// Last()].
func (g Grid) ToIndex(v float64) int {
	return int(math.Floor((v - g.Origin) / g.Delta))
}

// PhaseMatch reports whether g and other share a step and an origin
// phase, i.e. whether they are subgrids of the same infinite lattice.
func (g Grid) PhaseMatch(other Grid) bool {
	if g.Delta != other.Delta {
		return false
	}
	return math.Mod(g.Origin, g.Delta) == math.Mod(other.Origin, other.Delta)
}

// Intersect returns the largest common subgrid of g and other, or a
// *MismatchedGridsError if their phases disagree.
func (g Grid) Intersect(other Grid) (Grid, error) {
	if other.Origin < g.Origin {
		return other.Intersect(g)
	}

	if !g.PhaseMatch(other) {
		return Grid{}, &MismatchedGridsError{A: g, B: other}
	}

	if g.Size == 0 || other.Size == 0 {
		return Grid{Origin: other.Origin, Delta: other.Delta, Size: 0}, nil
	}

	last := math.Min(g.Last(), other.Last())
	if last < other.Origin {
		return Grid{Origin: other.Origin, Delta: other.Delta, Size: 0}, nil
	}

	size := int((last-other.Origin)/other.Delta) + 1
	return Grid{Origin: other.Origin, Delta: other.Delta, Size: size}, nil
}

// Scale returns g with Origin and Delta multiplied by c.
func (g Grid) Scale(c float64) Grid {
	return Grid{Origin: g.Origin * c, Delta: g.Delta * c, Size: g.Size}
}

// ScaleOrigin returns g with only Origin multiplied by c, leaving Delta
// unchanged — used when rescaling a value axis without resampling the
// index spacing.
func (g Grid) ScaleOrigin(c float64) Grid {
	return Grid{Origin: g.Origin * c, Delta: g.Delta, Size: g.Size}
}

// Values returns the full materialized sequence of grid points.
func (g Grid) Values() []float64 {
	out := make([]float64, g.Size)
	for i := range out {
		out[i] = g.Value(i)
	}
	return out
}
