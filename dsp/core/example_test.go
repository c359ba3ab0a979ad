package core_test

import (
	"fmt"

	"github.com/scintillometry/weif/dsp/core"
)

func ExampleApplyPrecomputeOptions() {
	cfg := core.ApplyPrecomputeOptions(
		core.WithGridSize(2048),
		core.WithToleranceExponent(0.75),
	)

	fmt.Printf("gridSize=%d toleranceExponent=%.2f\n", cfg.GridSize, cfg.ToleranceExponent)

	// Output:
	// gridSize=2048 toleranceExponent=0.75
}

func ExampleEnsureLen() {
	buf := make([]float64, 2, 4)
	buf[0], buf[1] = 1, 2
	buf = core.EnsureLen(buf, 4)

	copied := core.CopyInto(buf[2:], []float64{3, 4})
	fmt.Println(copied, buf)

	core.Zero(buf[:2])
	fmt.Println(buf)

	// Output:
	// 2 [1 2 3 4]
	// [0 0 3 4]
}
