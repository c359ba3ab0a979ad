package core

import "testing"

func TestApplyPrecomputeOptions(t *testing.T) {
	cfg := ApplyPrecomputeOptions(WithGridSize(2048), WithToleranceExponent(0.75))
	if cfg.GridSize != 2048 {
		t.Fatalf("grid size = %d, want 2048", cfg.GridSize)
	}
	if cfg.ToleranceExponent != 0.75 {
		t.Fatalf("tolerance exponent = %v, want 0.75", cfg.ToleranceExponent)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyPrecomputeOptions(WithGridSize(0), WithToleranceExponent(-1))
	def := DefaultPrecomputeConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}
