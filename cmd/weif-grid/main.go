// Command weif-grid evaluates the DCT-based weight tensor for a regular
// Nx×Ny array of identical apertures at a single altitude (§4.10) and
// writes it as CSV, one row per grid line.
//
// Usage:
//
//	weif-grid [flags]
//
// Example:
//
//	weif-grid -mono 550 -aperture_scale 130 -delta 50 -nx 8 -ny 8 -altitude 5
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/scintillometry/weif/aperture"
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

func main() {
	var responseFiles fileList
	flag.Var(&responseFiles, "response_filename", "spectral response file (repeatable; stacked)")

	apertureScale := flag.Float64("aperture_scale", 0, "aperture scale (mm)")
	obscuration := flag.Float64("central_obscuration", 0, "central obscuration ratio (0 <= eps < 1)")
	delta := flag.Float64("delta", 0, "aperture array spacing (mm)")
	nx := flag.Int("nx", 4, "number of apertures along x")
	ny := flag.Int("ny", 4, "number of apertures along y")
	altitude := flag.Float64("altitude", 1, "altitude at which to evaluate the tensor (km)")
	carrier := flag.Float64("carrier", 0, "carrier wavelength override (nm); defaults to the response's effective wavelength")
	mono := flag.Float64("mono", 0, "use a monochromatic filter at this wavelength (nm) instead of -response_filename")
	outputFilename := flag.String("output_filename", "", "output CSV path; defaults to stdout")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: weif-grid [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Evaluates the DCT-based Nx*Ny weight tensor for a regular aperture\n")
		fmt.Fprintf(os.Stderr, "array at one altitude.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  weif-grid -mono 550 -aperture_scale 130 -delta 50 -nx 8 -ny 8 -altitude 5\n")
	}
	flag.Parse()

	if err := run(responseFiles, *apertureScale, *obscuration, *delta, *nx, *ny, *altitude, *carrier, *mono, *outputFilename); err != nil {
		fmt.Fprintf(os.Stderr, "weif-grid: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}
}

func run(responseFiles fileList, apertureScale, obscuration, delta float64, nx, ny int, altitude, carrier, mono float64, outputFilename string) error {
	var af aperture.Filter = aperture.Circular{}
	if obscuration > 0 {
		af = aperture.Annular{Obscuration: obscuration}
	}

	sf, lambda, err := buildSpectralFilter(responseFiles, carrier, mono)
	if err != nil {
		return err
	}

	g, err := weight.NewWeightFunctionGrid2D(sf, af, lambda, apertureScale, delta, nx, ny)
	if err != nil {
		return fmt.Errorf("precompute: %w", err)
	}

	tensor, err := g.At(altitude)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	defer g.Release(tensor)

	out, err := openOutput(outputFilename)
	if err != nil {
		return err
	}
	defer out.Close()

	return writeTensor(out, tensor, nx, ny)
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

func writeTensor(out *os.File, tensor []float64, nx, ny int) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	for i := 0; i < nx; i++ {
		record := make([]string, ny)
		for j := 0; j < ny; j++ {
			record[j] = strconv.FormatFloat(tensor[i*ny+j], 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return w.Error()
}
