package testutil

import "testing"

func TestDC(t *testing.T) {
	d := DC(0.5, 4)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestOnes(t *testing.T) {
	o := Ones(3)
	if len(o) != 3 {
		t.Fatalf("len = %d, want 3", len(o))
	}
	for i, v := range o {
		if v != 1 {
			t.Fatalf("Ones[%d] = %v, want 1", i, v)
		}
	}
}

func TestLinearRamp(t *testing.T) {
	r := LinearRamp(400, 10, 4)
	want := []float64{400, 410, 420, 430}
	for i, v := range r {
		if v != want[i] {
			t.Fatalf("r[%d] = %v, want %v", i, v, want[i])
		}
	}
}
