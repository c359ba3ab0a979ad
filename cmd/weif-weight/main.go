// Command weif-weight evaluates a single scintillation weight function
// W(h) for one spectral/aperture filter pair over an altitude range and
// writes the result as two-column CSV (§6).
//
// Usage:
//
//	weif-weight [flags]
//
// Examples:
//
//	weif-weight -response_filename qe.txt -aperture_scale 130 -output_filename w.csv
//	weif-weight -mono 550 -aperture_scale 130 -central_obscuration 0.3
//	weif-weight -mono 550 -aperture_scale 130 -square
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

// fileList accumulates repeated -response_filename occurrences.
type fileList []string

func (f *fileList) String() string { return fmt.Sprint([]string(*f)) }

func (f *fileList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	var responseFiles fileList
	flag.Var(&responseFiles, "response_filename", "spectral response file (repeatable; stacked)")

	size := flag.Int("size", 1024, "precompute grid size")
	apertureScale := flag.Float64("aperture_scale", 0, "aperture scale (mm)")
	obscuration := flag.Float64("central_obscuration", 0, "central obscuration ratio (0 <= eps < 1)")
	baseRatio := flag.Float64("base_ratio", 0, "DIMM baseline / aperture scale; 0 disables DIMM wrapping")
	square := flag.Bool("square", false, "use a square aperture instead of circular/annular")
	carrier := flag.Float64("carrier", 0, "carrier wavelength override (nm); defaults to the response's effective wavelength")
	mono := flag.Float64("mono", 0, "use a monochromatic filter at this wavelength (nm) instead of -response_filename")
	outputFilename := flag.String("output_filename", "", "output CSV path; defaults to stdout")
	hMin := flag.Float64("h_min", 0, "minimum altitude (km)")
	hMax := flag.Float64("h_max", 30, "maximum altitude (km)")
	hCount := flag.Int("h_count", 61, "number of altitude samples")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: weif-weight [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Evaluates a single scintillation weight function W(h) and writes\n")
		fmt.Fprintf(os.Stderr, "altitude,weight CSV rows.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  weif-weight -response_filename qe.txt -aperture_scale 130\n")
		fmt.Fprintf(os.Stderr, "  weif-weight -mono 550 -aperture_scale 130 -central_obscuration 0.3\n")
	}
	flag.Parse()

	if err := run(responseFiles, *size, *apertureScale, *obscuration, *baseRatio, *square, *carrier, *mono, *outputFilename, *hMin, *hMax, *hCount); err != nil {
		fmt.Fprintf(os.Stderr, "weif-weight: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}
}

func run(responseFiles fileList, size int, apertureScale, obscuration, baseRatio float64, square bool, carrier, mono float64, outputFilename string, hMin, hMax float64, hCount int) error {
	af := buildAperture(square, obscuration, baseRatio, apertureScale)

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

	if square {
		wf, err := weight.NewWeightFunction2D(sf, af, lambda, apertureScale, opts...)
		if err != nil {
			return fmt.Errorf("precompute: %w", err)
		}
		return writeWeights(out, hMin, hMax, hCount, wf.At)
	}

	wf, err := weight.NewWeightFunction1D(sf, af, lambda, apertureScale, opts...)
	if err != nil {
		return fmt.Errorf("precompute: %w", err)
	}
	return writeWeights(out, hMin, hMax, hCount, wf.At)
}

func buildAperture(square bool, obscuration, baseRatio, apertureScale float64) aperture.Filter {
	var af aperture.Filter
	switch {
	case square:
		af = aperture.Square{}
	case obscuration > 0:
		af = aperture.Annular{Obscuration: obscuration}
	default:
		af = aperture.Circular{}
	}

	if baseRatio > 0 {
		af = aperture.Dimm{Wrapped: af, Beta: baseRatio}
	}
	return af
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

func writeWeights(out *os.File, hMin, hMax float64, hCount int, at func(float64) float64) error {
	if hCount < 2 {
		return fmt.Errorf("h_count must be >= 2, got %d", hCount)
	}

	w := csv.NewWriter(out)
	defer w.Flush()

	step := (hMax - hMin) / float64(hCount-1)
	for i := 0; i < hCount; i++ {
		h := hMin + step*float64(i)
		row := []string{
			strconv.FormatFloat(h, 'g', -1, 64),
			strconv.FormatFloat(at(h), 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return w.Error()
}
