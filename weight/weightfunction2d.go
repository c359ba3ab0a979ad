package weight

import (
	"fmt"
	"math"

	"github.com/scintillometry/weif/aperture"
	"github.com/scintillometry/weif/dsp/core"
	"github.com/scintillometry/weif/grid"
	"github.com/scintillometry/weif/quadrature"
	"github.com/scintillometry/weif/spectralfilter"
	"github.com/scintillometry/weif/spline"
)

// WeightFunction2D is the precomputed W(h) for a non-axisymmetric
// aperture filter, built by nesting an angular tanh-sinh average
// inside the radial exp-sinh integral (§4.9).
type WeightFunction2D struct {
	lambda float64
	d      float64
	grid   grid.Grid
	wf     *spline.Spline
}

// NewWeightFunction2D precomputes W(h) as WeightFunction1D does, but
// replaces the scalar aperture evaluation AF(x·u) with its average
// over angle φ ∈ [-π,π], computed by tanh-sinh integration with the
// axis-avoidance branch described in SPEC_FULL.md §9 (the original
// library's `|φ|<0.5 ? cos(πφ) : -cos(πθ)` split, preserved here
// verbatim rather than simplified to a single cos/sin call).
func NewWeightFunction2D(sf spectralfilter.Filter, af aperture.Filter, lambda, d float64, opts ...core.PrecomputeOption) (*WeightFunction2D, error) {
	cfg := core.ApplyPrecomputeOptions(opts...)
	n := cfg.GridSize
	if n < 2 {
		return nil, fmt.Errorf("weight: grid size must be >= 2, got %d", n)
	}

	values := make([]float64, n)
	tol := math.Pow(machineEpsilon, cfg.ToleranceExponent)
	radialQ := quadrature.NewExpSinh()
	radialQ.Tolerance = tol
	angularQ := quadrature.NewTanhSinh()
	angularQ.Tolerance = tol

	for k := 0; k < n; k++ {
		z := float64(k) / float64(n-1)
		x := math.Inf(1)
		if z > 0 {
			x = (1 - z) / z
		}

		integral, err := radialQ.Integrate(radial2DIntegrand(sf, af, x, angularQ), "weight_function_2d")
		if err != nil {
			return nil, err
		}
		values[k] = integral * 0.5
	}

	wf, err := spline.New(values, spline.Clamped(0, 0))
	if err != nil {
		return nil, err
	}

	return &WeightFunction2D{
		lambda: lambda,
		d:      d,
		grid:   grid.New(0, 1.0/float64(n-1), n),
		wf:     wf,
	}, nil
}

func radial2DIntegrand(sf spectralfilter.Filter, af aperture.Filter, x float64, angularQ *quadrature.TanhSinh) quadrature.Func {
	return func(u float64) float64 {
		if u == 0 || math.IsInf(u, 1) || math.IsInf(x, 1) {
			return 0
		}

		angleAvg, err := angularQ.Integrate(angularIntegrand(af, x*u), "weight_function_2d_angle")
		if err != nil {
			return 0
		}

		if u < 1 {
			return math.Pow(u, 4.0/3) * sf.Regular(u*u) * angleAvg
		}
		tail := math.Pow(u, -8.0/3)
		if tail == 0 {
			return 0
		}
		return tail * sf.E(u*u) * angleAvg
	}
}

// angularIntegrand averages af over the full circle at radius r,
// parameterised by phi ∈ [-1,1] representing angle π·phi, using the
// axis-avoidance branch for sin/cos near their saturation points.
func angularIntegrand(af aperture.Filter, r float64) quadrature.Func {
	return func(phi float64) float64 {
		c, s := cosSinPi(phi)
		return af.At2D(r*c, r*s)
	}
}

// cosSinPi returns (cos(π·phi), sin(π·phi)) for phi ∈ [-1,1], computed
// via the complementary angle θ = 1-|phi| when |phi| >= 0.5 to avoid
// evaluating sin/cos near their ±1 saturation points (§9). Do not
// simplify this to a direct cos/sin call.
func cosSinPi(phi float64) (cos, sin float64) {
	if math.Abs(phi) < 0.5 {
		return math.Cos(math.Pi * phi), math.Sin(math.Pi * phi)
	}

	theta := 1 - math.Abs(phi)
	sign := 1.0
	if phi < 0 {
		sign = -1.0
	}
	return -math.Cos(math.Pi * theta), sign * math.Sin(math.Pi*theta)
}

// At evaluates W at altitude h (km). W(0) = 0.
func (w *WeightFunction2D) At(h float64) float64 {
	if h == 0 {
		return 0
	}

	rhoF := math.Sqrt(w.lambda * h)
	z := rhoF / (rhoF + w.d)
	idx := (z - w.grid.Origin) / w.grid.Delta

	scale := scaleConstant * math.Pow(h, 5.0/6) * math.Pow(w.lambda, -7.0/6)
	return scale * w.wf.At(idx)
}
