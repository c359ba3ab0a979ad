// Package weight implements the precomputed scintillation weight
// functions W(h): the 1-D and 2-D spline-based forms and the DCT-based
// grid form for regular aperture arrays (§3, §4.8-§4.10). Grounded on
// weif/weight_function*.h.
package weight

import (
	"fmt"
	"math"

	"github.com/scintillometry/weif/aperture"
	"github.com/scintillometry/weif/dsp/core"
	"github.com/scintillometry/weif/grid"
	"github.com/scintillometry/weif/quadrature"
	"github.com/scintillometry/weif/spectralfilter"
	"github.com/scintillometry/weif/specialmath"
	"github.com/scintillometry/weif/spline"
)

// scaleConstant is 2π·16π²·Kolmogorov_Cn2_scale·10^13, the fused
// prefactor from weif/weight_function.h (the outer 2π) and
// weif/detail/weight_function_base.h (16π²·Cn²·10^13, the unit
// conversion from km/nm/mm to SI absorbed by 10^13).
const scaleConstant = 2 * math.Pi * 16 * math.Pi * math.Pi * specialmath.KolmogorovCnScale * 1e13

const machineEpsilon = 2.220446049250313e-16

// WeightFunction1D is the precomputed W(h) built from a radially
// symmetric aperture filter (§3, §4.8).
type WeightFunction1D struct {
	lambda float64 // nm
	d      float64 // mm
	grid   grid.Grid
	wf     *spline.Spline
}

// NewWeightFunction1D precomputes W(h) on an N-point spline over the
// compact altitude coordinate z = ρ_F/(ρ_F+D), for the given spectral
// and aperture filters (§4.8).
func NewWeightFunction1D(sf spectralfilter.Filter, af aperture.Filter, lambda, d float64, opts ...core.PrecomputeOption) (*WeightFunction1D, error) {
	cfg := core.ApplyPrecomputeOptions(opts...)
	n := cfg.GridSize
	if n < 2 {
		return nil, fmt.Errorf("weight: grid size must be >= 2, got %d", n)
	}

	values := make([]float64, n)
	q := quadrature.NewExpSinh()
	q.Tolerance = math.Pow(machineEpsilon, cfg.ToleranceExponent)

	for k := 0; k < n; k++ {
		z := float64(k) / float64(n-1)
		x := math.Inf(1)
		if z > 0 {
			x = (1 - z) / z
		}

		integral, err := q.Integrate(radialIntegrand(sf, af, x), "weight_function_1d")
		if err != nil {
			return nil, err
		}
		values[k] = integral
	}

	wf, err := spline.New(values, spline.Clamped(0, 0))
	if err != nil {
		return nil, err
	}

	return &WeightFunction1D{
		lambda: lambda,
		d:      d,
		grid:   grid.New(0, 1.0/float64(n-1), n),
		wf:     wf,
	}, nil
}

// radialIntegrand builds the u-integrand for a given aperture-scale
// ratio x = D/ρ_F, following §4.8's explicit branch on u<1 (see
// SPEC_FULL.md §12 point 6 for why this branch is implemented even
// though the literal C++ header for the 1-D case omits it: it is the
// same branch used, unambiguously, by the grid-2D kernel and by
// eval_equiv_lambda).
func radialIntegrand(sf spectralfilter.Filter, af aperture.Filter, x float64) quadrature.Func {
	return func(u float64) float64 {
		if u == 0 || math.IsInf(u, 1) || math.IsInf(x, 1) {
			return 0
		}
		if u < 1 {
			return math.Pow(u, 4.0/3) * sf.Regular(u*u) * af.At(x*u)
		}
		tail := math.Pow(u, -8.0/3)
		if tail == 0 {
			return 0
		}
		return tail * sf.E(u*u) * af.At(x*u)
	}
}

// At evaluates W at altitude h (km). W(0) = 0.
func (w *WeightFunction1D) At(h float64) float64 {
	if h == 0 {
		return 0
	}

	rhoF := math.Sqrt(w.lambda * h)
	z := rhoF / (rhoF + w.d)
	idx := (z - w.grid.Origin) / w.grid.Delta

	scale := scaleConstant * math.Pow(h, 5.0/6) * math.Pow(w.lambda, -7.0/6)
	return scale * w.wf.At(idx)
}
