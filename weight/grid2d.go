package weight

import (
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/scintillometry/weif/aperture"
	"github.com/scintillometry/weif/dsp/core"
	"github.com/scintillometry/weif/specialmath"
	"github.com/scintillometry/weif/spectralfilter"
)

// gridScaleConstant is Kolmogorov_Cn2_scale·16π²·10^13, the grid-mode
// prefactor from weif/weight_function_grid_2d.cpp — note it omits the
// outer 2π factor that weif/weight_function.h applies in the 1-D/2-D
// spline forms, since the grid form reports per-aperture weights
// directly rather than the azimuthally-integrated scintillation index.
const gridScaleConstant = specialmath.KolmogorovCnScale * 16 * math.Pi * math.Pi * 1e13

// WeightFunctionGrid2D computes a regular Nx×Ny array of per-aperture
// weights for identical apertures at a single altitude, via an
// in-place DCT-I (REDFT00) of the evaluated kernel (§3, §4.10).
type WeightFunctionGrid2D struct {
	lambda  float64
	d       float64
	delta   float64
	nx, ny  int
	sf      spectralfilter.Filter
	af      aperture.Filter
	fftNorm float64
	pool    *sync.Pool
}

// GridOption configures WeightFunctionGrid2D construction.
type GridOption func(*WeightFunctionGrid2D)

// WithTensorPool supplies an ambient *sync.Pool from which the result
// tensor's backing slice is obtained, instead of a fresh allocation —
// the Go analogue of the original library's allocator-parameterised
// weight_function_grid_2d template (§5, §12 point 2).
func WithTensorPool(pool *sync.Pool) GridOption {
	return func(g *WeightFunctionGrid2D) {
		g.pool = pool
	}
}

// NewWeightFunctionGrid2D constructs a grid evaluator for an Nx×Ny
// array of apertures spaced delta (mm) apart.
func NewWeightFunctionGrid2D(sf spectralfilter.Filter, af aperture.Filter, lambda, d, delta float64, nx, ny int, opts ...GridOption) (*WeightFunctionGrid2D, error) {
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("weight: grid shape must be >= 2x2, got %dx%d", nx, ny)
	}
	if delta <= 0 {
		return nil, fmt.Errorf("weight: grid step must be positive, got %v", delta)
	}

	g := &WeightFunctionGrid2D{
		lambda:  lambda,
		d:       d,
		delta:   delta,
		nx:      nx,
		ny:      ny,
		sf:      sf,
		af:      af,
		fftNorm: 1 / (4 * float64(nx-1) * float64(ny-1) * delta * delta),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *WeightFunctionGrid2D) tensor() []float64 {
	n := g.nx * g.ny
	if g.pool != nil {
		if v, ok := g.pool.Get().([]float64); ok {
			return core.EnsureLen(v, n)
		}
	}
	return make([]float64, n)
}

// Release returns tensor to the configured pool, if any. Callers that
// constructed WeightFunctionGrid2D with WithTensorPool should call
// Release once they are done with a tensor returned by At.
func (g *WeightFunctionGrid2D) Release(tensor []float64) {
	if g.pool != nil {
		g.pool.Put(tensor) //nolint:staticcheck // pool element type is []float64, matches tensor()
	}
}

// At evaluates the Nx×Ny weight tensor at altitude h (km), row-major
// with y varying fastest (index = ix*Ny+iy). For h == 0 it returns a
// zero tensor of the target shape (§4.10).
func (g *WeightFunctionGrid2D) At(h float64) ([]float64, error) {
	out := g.tensor()
	core.Zero(out)
	if h == 0 {
		return out, nil
	}

	rhoF := math.Sqrt(g.lambda * h)
	nyquist := rhoF / (2 * g.delta)
	x := g.d / rhoF

	ux := make([]float64, g.nx)
	uy := make([]float64, g.ny)
	for i := range ux {
		ux[i] = nyquist * float64(i) / float64(g.nx-1)
	}
	for j := range uy {
		uy[j] = nyquist * float64(j) / float64(g.ny-1)
	}

	for i := 0; i < g.nx; i++ {
		for j := 0; j < g.ny; j++ {
			out[i*g.ny+j] = g.kernel(ux[i], uy[j], x)
		}
	}

	if err := dctInPlace2D(out, g.nx, g.ny); err != nil {
		return nil, fmt.Errorf("weight: dct: %w", err)
	}

	scale := gridScaleConstant * g.fftNorm / math.Pow(g.lambda, 1.0/6) * math.Pow(h, 11.0/6)
	for i := range out {
		out[i] *= scale
	}

	return out, nil
}

// kernel evaluates the integrand of §4.10 at a single (ux,uy)
// frequency-grid point: a regularised low-frequency branch (power
// u²^(1/6)) and the tail branch (power u²^(-11/6)), matching the
// branch structure used by Poly.EquivLambda.
func (g *WeightFunctionGrid2D) kernel(ux, uy, x float64) float64 {
	if ux == 0 && uy == 0 {
		return 0
	}
	if math.IsInf(ux, 1) || math.IsInf(uy, 1) {
		return 0
	}

	u2 := ux*ux + uy*uy
	af := g.af.At2D(x*ux, x*uy)

	if u2 < 1 {
		return math.Pow(u2, 1.0/6) * g.sf.Regular(u2) * af
	}
	return math.Pow(u2, -11.0/6) * g.sf.E(u2) * af
}

// dctInPlace2D applies an in-place DCT-I (REDFT00) along both axes of
// a row-major nx*ny tensor, via the even-symmetric-extension real-FFT
// technique: a length-n DCT-I is the first n bins of the real FFT of a
// length-2(n-1) even-symmetric extension of the input (§4.10, §11).
func dctInPlace2D(data []float64, nx, ny int) error {
	row := make([]float64, nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			row[i] = data[i*ny+j]
		}
		out, err := dct1D(row)
		if err != nil {
			return err
		}
		for i := 0; i < nx; i++ {
			data[i*ny+j] = out[i]
		}
	}

	col := make([]float64, ny)
	for i := 0; i < nx; i++ {
		copy(col, data[i*ny:i*ny+ny])
		out, err := dct1D(col)
		if err != nil {
			return err
		}
		copy(data[i*ny:i*ny+ny], out)
	}

	return nil
}

func dct1D(x []float64) ([]float64, error) {
	n := len(x)
	if n < 2 {
		return append([]float64(nil), x...), nil
	}

	m := 2 * (n - 1)
	ext := make([]complex128, m)
	for i := 0; i < n; i++ {
		ext[i] = complex(x[i], 0)
	}
	for i := 1; i < n-1; i++ {
		ext[m-i] = complex(x[i], 0)
	}

	plan, err := algofft.NewPlan64(m)
	if err != nil {
		return nil, fmt.Errorf("dct fft plan: %w", err)
	}
	out := make([]complex128, m)
	if err := plan.Forward(out, ext); err != nil {
		return nil, fmt.Errorf("dct fft forward: %w", err)
	}

	result := make([]float64, n)
	for i := 0; i < n; i++ {
		result[i] = real(out[i])
	}
	return result, nil
}
