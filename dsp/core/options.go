package core

// PrecomputeConfig controls the numerical resolution used when
// precomputing weight functions: the spline knot count and the
// quadrature tolerance.
type PrecomputeConfig struct {
	// GridSize is the number of knots of the precomputed weight-function
	// spline over the compact altitude coordinate z ∈ [0,1].
	GridSize int

	// ToleranceExponent sets the target quadrature tolerance as
	// eps^ToleranceExponent, where eps is machine epsilon. The original
	// library uses 2/3; most callers should not need to change this.
	ToleranceExponent float64
}

// PrecomputeOption mutates a PrecomputeConfig.
type PrecomputeOption func(*PrecomputeConfig)

// DefaultPrecomputeConfig returns the resolution used by the library's
// own CLI tools.
func DefaultPrecomputeConfig() PrecomputeConfig {
	return PrecomputeConfig{
		GridSize:          1024,
		ToleranceExponent: 2.0 / 3.0,
	}
}

// WithGridSize sets the number of grid samples used for interpolation tables.
func WithGridSize(n int) PrecomputeOption {
	return func(cfg *PrecomputeConfig) {
		if n > 0 {
			cfg.GridSize = n
		}
	}
}

// WithToleranceExponent sets the quadrature tolerance exponent.
func WithToleranceExponent(exp float64) PrecomputeOption {
	return func(cfg *PrecomputeConfig) {
		if exp > 0 {
			cfg.ToleranceExponent = exp
		}
	}
}

// ApplyPrecomputeOptions applies zero or more options to the default config.
func ApplyPrecomputeOptions(opts ...PrecomputeOption) PrecomputeConfig {
	cfg := DefaultPrecomputeConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
