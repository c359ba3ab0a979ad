package grid_test

import (
	"errors"
	"testing"

	"github.com/scintillometry/weif/grid"
)

func TestFromValuesUniform(t *testing.T) {
	values := []float64{1, 1.5, 2, 2.5, 3}
	g, err := grid.FromValues(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range values {
		if g.Value(i) != v {
			t.Fatalf("index %d: got %v, want %v", i, g.Value(i), v)
		}
	}
}

func TestFromValuesNonUniform(t *testing.T) {
	values := []float64{1, 1.5, 2, 2.6}
	_, err := grid.FromValues(values)
	if err == nil {
		t.Fatal("expected NonUniformGridError")
	}
	var nuErr *grid.NonUniformGridError
	if !errors.As(err, &nuErr) {
		t.Fatalf("expected *NonUniformGridError, got %T", err)
	}
	if nuErr.Index != 3 {
		t.Fatalf("expected offending index 3, got %d", nuErr.Index)
	}
}

func TestIntersectSymmetry(t *testing.T) {
	a := grid.New(0, 1, 10)
	b := grid.New(3, 1, 10)

	ab, err := a.Intersect(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := b.Intersect(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab != ba {
		t.Fatalf("intersection not symmetric: %+v vs %+v", ab, ba)
	}
	if ab.Size != 7 {
		t.Fatalf("expected overlap size 7, got %d", ab.Size)
	}
}

func TestIntersectDisjoint(t *testing.T) {
	a := grid.New(0, 1, 5)
	b := grid.New(20, 1, 5)

	ab, err := a.Intersect(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ab.Size != 0 {
		t.Fatalf("expected disjoint ranges to intersect to size 0, got %d", ab.Size)
	}
}

func TestIntersectMismatchedPhase(t *testing.T) {
	a := grid.New(0, 1, 5)
	b := grid.New(0.5, 1, 5)

	_, err := a.Intersect(b)
	if !errors.Is(err, grid.ErrMismatchedGrids) {
		t.Fatalf("expected ErrMismatchedGrids, got %v", err)
	}
}

func TestToIndex(t *testing.T) {
	g := grid.New(2, 0.5, 10)
	if idx := g.ToIndex(3.0); idx != 2 {
		t.Fatalf("got %d, want 2", idx)
	}
}
