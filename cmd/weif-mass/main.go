// Command weif-mass sweeps a set of cross-annular sub-aperture
// combinations — the MASS-instrument aperture layout generalised from a
// fixed four-annulus combination to arbitrary -inner/-outer pairs
// (SPEC_FULL.md §12 point 4) — and writes one transposed CSV with two
// columns (altitude, W) per combination (§6).
//
// Usage:
//
//	weif-mass [flags]
//
// Example:
//
//	weif-mass -response_filename qe.txt -aperture_scale 130 \
//	  -inner 0.3 -outer 0.5 -inner 0.3 -outer 1.0 -inner 0.5 -outer 1.0
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/scintillometry/weif/aperture"
	"github.com/scintillometry/weif/dsp/core"
	"github.com/scintillometry/weif/spectralfilter"
	"github.com/scintillometry/weif/spectralresponse"
	"github.com/scintillometry/weif/weight"
)

type fileList []string

func (f *fileList) String() string { return fmt.Sprint([]string(*f)) }

func (f *fileList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

type floatList []float64

func (f *floatList) String() string { return fmt.Sprint([]float64(*f)) }

func (f *floatList) Set(v string) error {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("parse %q: %w", v, err)
	}
	*f = append(*f, n)
	return nil
}

func main() {
	var responseFiles fileList
	flag.Var(&responseFiles, "response_filename", "spectral response file (repeatable; stacked)")

	var inner, outer floatList
	flag.Var(&inner, "inner", "inner sub-aperture relative radius (repeatable, paired by order with -outer)")
	flag.Var(&outer, "outer", "outer sub-aperture relative radius (repeatable, paired by order with -inner)")

	size := flag.Int("size", 1024, "precompute grid size")
	apertureScale := flag.Float64("aperture_scale", 0, "aperture scale (mm)")
	obscuration := flag.Float64("central_obscuration", 0, "central obscuration ratio (0 <= eps < 1)")
	carrier := flag.Float64("carrier", 0, "carrier wavelength override (nm); defaults to the response's effective wavelength")
	mono := flag.Float64("mono", 0, "use a monochromatic filter at this wavelength (nm) instead of -response_filename")
	outputFilename := flag.String("output_filename", "", "output CSV path; defaults to stdout")
	hMin := flag.Float64("h_min", 0, "minimum altitude (km)")
	hMax := flag.Float64("h_max", 30, "maximum altitude (km)")
	hCount := flag.Int("h_count", 61, "number of altitude samples")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: weif-mass [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Sweeps a set of cross-annular sub-aperture combinations, each given\n")
		fmt.Fprintf(os.Stderr, "by a pair of -inner/-outer relative radii, and writes one transposed\n")
		fmt.Fprintf(os.Stderr, "CSV with two columns (altitude, W) per combination.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  weif-mass -response_filename qe.txt -aperture_scale 130 \\\n")
		fmt.Fprintf(os.Stderr, "    -inner 0.3 -outer 0.5 -inner 0.3 -outer 1.0\n")
	}
	flag.Parse()

	if err := run(responseFiles, inner, outer, *size, *apertureScale, *obscuration, *carrier, *mono, *outputFilename, *hMin, *hMax, *hCount); err != nil {
		fmt.Fprintf(os.Stderr, "weif-mass: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}
}

func run(responseFiles fileList, inner, outer floatList, size int, apertureScale, obscuration, carrier, mono float64, outputFilename string, hMin, hMax float64, hCount int) error {
	if len(inner) == 0 || len(inner) != len(outer) {
		return fmt.Errorf("-inner and -outer must each be given the same number of times (got %d inner, %d outer)", len(inner), len(outer))
	}

	sf, lambda, err := buildSpectralFilter(responseFiles, carrier, mono)
	if err != nil {
		return err
	}

	out, err := openOutput(outputFilename)
	if err != nil {
		return err
	}
	defer out.Close()

	opts := []core.PrecomputeOption{core.WithGridSize(size)}

	rows := make([][]float64, len(inner))
	for i := range inner {
		af := crossAnnular(inner[i], outer[i], obscuration)
		wf, err := weight.NewWeightFunction1D(sf, af, lambda, apertureScale, opts...)
		if err != nil {
			return fmt.Errorf("precompute combination %d (inner=%v outer=%v): %w", i, inner[i], outer[i], err)
		}
		rows[i] = evaluateAltitudes(wf.At, hMin, hMax, hCount)
	}

	return writeTransposed(out, hMin, hMax, hCount, rows)
}

// crossAnnular builds the sub-aperture combination for one (inner, outer)
// pair of relative radii: the ratio between them parameterises the
// second annulus's angular scale (CrossAnnular.Alpha), while the same
// central obscuration applies to both (§3, §12 point 4).
func crossAnnular(inner, outer, obscuration float64) aperture.Filter {
	if inner <= 0 {
		inner = 1e-9
	}
	return aperture.CrossAnnular{
		Alpha:        outer / inner,
		Obscuration1: obscuration,
		Obscuration2: obscuration,
	}
}

func buildSpectralFilter(responseFiles fileList, carrier, mono float64) (spectralfilter.Filter, float64, error) {
	if mono > 0 {
		return spectralfilter.Mono{}, mono, nil
	}
	if len(responseFiles) == 0 {
		return nil, 0, fmt.Errorf("either -mono or at least one -response_filename is required")
	}

	response, err := spectralresponse.StackFromFiles(responseFiles)
	if err != nil {
		return nil, 0, fmt.Errorf("spectral response: %w", err)
	}
	response.Normalize()

	var polyOpts []spectralfilter.PolyOption
	if carrier > 0 {
		polyOpts = append(polyOpts, spectralfilter.WithCarrier(carrier))
	}
	poly, err := spectralfilter.NewPoly(response, polyOpts...)
	if err != nil {
		return nil, 0, fmt.Errorf("polychromatic filter: %w", err)
	}

	lambda0 := poly.EquivLambda()
	poly.Normalize()
	return poly, lambda0, nil
}

func openOutput(path string) (*os.File, error) {
	if path == "" {
		return os.Stdout, nil
	}
	f, err := os.Create(path) //nolint:gosec // path is operator-supplied CLI input
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

func evaluateAltitudes(at func(float64) float64, hMin, hMax float64, hCount int) []float64 {
	step := (hMax - hMin) / float64(hCount-1)
	values := make([]float64, hCount)
	for i := 0; i < hCount; i++ {
		values[i] = at(hMin + step*float64(i))
	}
	return values
}

// writeTransposed emits one row per altitude sample, with a pair of
// columns (altitude, W) per combination — the CSV transpose convention
// of §6.
func writeTransposed(out *os.File, hMin, hMax float64, hCount int, rows [][]float64) error {
	if hCount < 2 {
		return fmt.Errorf("h_count must be >= 2, got %d", hCount)
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	step := (hMax - hMin) / float64(hCount-1)
	for i := 0; i < hCount; i++ {
		h := hMin + step*float64(i)
		record := make([]string, 0, 2*len(rows))
		for _, row := range rows {
			record = append(record,
				strconv.FormatFloat(h, 'g', -1, 64),
				strconv.FormatFloat(row[i], 'g', -1, 64),
			)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return w.Error()
}
