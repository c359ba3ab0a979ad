package spectralfilter

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/scintillometry/weif/dsp/core"
	"github.com/scintillometry/weif/grid"
	"github.com/scintillometry/weif/quadrature"
	"github.com/scintillometry/weif/spectralresponse"
	"github.com/scintillometry/weif/spline"
)

// Poly is the FFT-based polychromatic spectral filter built from a
// tabulated SpectralResponse via the carrier-shifted real-to-complex
// FFT trick (§3, §4.6).
type Poly struct {
	grid        grid.Grid
	real        *spline.Spline
	imag        *spline.Spline
	carrier     float64
	equivLambda float64
}

// PolyOption configures Poly construction.
type PolyOption func(*polyConfig)

type polyConfig struct {
	size    int
	carrier float64
}

// WithSize overrides the FFT slice length used to build the filter.
// The effective transform length is max(size, response.Grid.Size).
func WithSize(size int) PolyOption {
	return func(c *polyConfig) {
		if size > 0 {
			c.size = size
		}
	}
}

// WithCarrier overrides the carrier wavelength (nm). Defaults to the
// response's effective wavelength.
func WithCarrier(carrier float64) PolyOption {
	return func(c *polyConfig) {
		if carrier > 0 {
			c.carrier = carrier
		}
	}
}

// NewPoly builds a Poly filter from response, following §4.6's
// construction: elementwise λ-correction, zero-padding, periodic
// tiling, a carrier-anchored slice, and a real-to-complex FFT of that
// slice whose last bin is forced to zero as the +∞ boundary condition.
func NewPoly(response *spectralresponse.Response, opts ...PolyOption) (*Poly, error) {
	cfg := polyConfig{size: 0, carrier: 0}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.carrier == 0 {
		cfg.carrier = response.EffectiveLambda()
	}

	g := response.Grid
	r := g.Size
	p := r
	if cfg.size > p {
		p = cfg.size
	}

	ic := g.ToIndex(cfg.carrier)

	// (a) geometric correction: divide by λ.
	corrected := make([]float64, r)
	for i, v := range response.Values {
		lambda := g.Value(i)
		if lambda == 0 {
			corrected[i] = 0
			continue
		}
		corrected[i] = v / lambda
	}

	// (b) right-pad with zeros to length p, (c) periodically tile by 2.
	padded := make([]float64, p)
	core.CopyInto(padded, corrected)
	tiled := make([]float64, 2*p)
	core.CopyInto(tiled, padded)
	core.CopyInto(tiled[p:], padded)

	// (d) slice [ic, ic+p).
	if ic < 0 {
		ic = 0
	}
	if ic+p > len(tiled) {
		return nil, fmt.Errorf("spectralfilter: carrier index %d out of range for tiled length %d", ic, len(tiled))
	}
	slice := tiled[ic : ic+p]

	realParts, imagParts, err := realFFT(slice)
	if err != nil {
		return nil, err
	}
	// +∞ boundary: force the last complex bin to zero.
	last := len(realParts) - 1
	realParts[last] = 0
	imagParts[last] = 0

	deltaF := 1 / (g.Delta * float64(p))
	fGrid := grid.New(0, deltaF, len(realParts))

	// The real spline is clamped to zero slope at both ends; the
	// imaginary spline keeps the natural (zero curvature) boundary —
	// this asymmetry is required for the regularised near-zero branch
	// to be second-order accurate (§9), do not symmetrise it.
	realSpline, err := spline.New(realParts, spline.Clamped(0, 0))
	if err != nil {
		return nil, err
	}
	imagSpline, err := spline.New(imagParts, spline.Natural())
	if err != nil {
		return nil, err
	}

	poly := &Poly{
		grid:    fGrid,
		real:    realSpline,
		imag:    imagSpline,
		carrier: cfg.carrier,
	}
	poly.equivLambda, err = poly.evalEquivLambda()
	if err != nil {
		return nil, err
	}

	return poly, nil
}

// realFFT computes the real-to-complex FFT of a real sequence using the
// general complex plan (algofft.NewPlan64), embedding the real input as
// a zero-imaginary complex sequence: the "−" sign forward transform
// convention required by §9's shift-theorem note is algo-fft's default.
func realFFT(xs []float64) (realParts, imagParts []float64, err error) {
	n := len(xs)
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, nil, fmt.Errorf("spectralfilter: fft plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range xs {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("spectralfilter: fft forward: %w", err)
	}

	half := n/2 + 1
	realParts = make([]float64, half)
	imagParts = make([]float64, half)
	for i := 0; i < half; i++ {
		realParts[i] = real(out[i])
		imagParts[i] = imag(out[i])
	}
	return realParts, imagParts, nil
}

// E evaluates the polychromatic spectral filter at frequency x.
func (p *Poly) E(x float64) float64 {
	ax := math.Abs(x)
	if ax > p.grid.Last() {
		return 0
	}

	cx := math.Pi * p.carrier * ax
	d := (ax/2 - p.grid.Origin) / p.grid.Delta

	re := p.real.At(d)
	im := p.imag.At(d)

	v := math.Sin(cx)*re - math.Cos(cx)*im
	return v * v
}

// Regular evaluates the low-frequency-regularised form of E, avoiding
// catastrophic cancellation in E(x)/x² as x→0 (§4.6).
func (p *Poly) Regular(x float64) float64 {
	ax := math.Abs(x)
	if ax > p.grid.Last() {
		return 0
	}

	c := math.Pi * p.carrier
	cx := c * ax
	d := (ax/2 - p.grid.Origin) / p.grid.Delta

	re := p.real.At(d)

	var im float64
	if d < 1 {
		m1 := p.imag.SecondDerivativeAt(1)
		y1 := p.imag.ValueAt(1)
		im = (y1 + m1*(d*d-1)/6) / (2 * p.grid.Delta)
	} else if ax != 0 {
		im = p.imag.At(d) / ax
	}

	sinc := sincPiRaw(cx)
	v := c*sinc*re - math.Cos(cx)*im
	return v * v
}

func sincPiRaw(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(x) / x
}

// EquivLambda returns the equivalent wavelength λ₀ computed at
// construction time.
func (p *Poly) EquivLambda() float64 {
	return p.equivLambda
}

// Carrier returns the filter's carrier wavelength (or, after Normalize,
// the dimensionless carrier).
func (p *Poly) Carrier() float64 {
	return p.carrier
}

// evalEquivLambda integrates x^(1/6)·regular(x) on [0,1] plus
// x^(-11/6)·E(x) on [1,∞), then returns 3.28·I^(-6/7) (§4.6).
func (p *Poly) evalEquivLambda() (float64, error) {
	q := quadrature.NewExpSinh()
	integral, err := q.Integrate(func(x float64) float64 {
		if x == 0 || math.IsInf(x, 1) {
			return 0
		}
		if x < 1 {
			return math.Pow(x, 1.0/6) * p.Regular(x)
		}
		return math.Pow(x, -11.0/6) * p.E(x)
	}, "equiv_lambda")
	if err != nil {
		return 0, err
	}

	return 3.28 * math.Pow(integral, -6.0/7), nil
}

// Normalize rescales the grid, carrier, equivalent wavelength, and both
// splines by λ₀, producing a dimensionless filter with EquivLambda()
// == 1 (§4.6).
func (p *Poly) Normalize() {
	lambda0 := p.equivLambda
	p.grid = p.grid.ScaleOrigin(lambda0)
	p.grid.Delta *= lambda0
	p.carrier /= lambda0
	p.equivLambda /= lambda0
	p.real.ScaleValues(lambda0)
	p.imag.ScaleValues(lambda0)
}
