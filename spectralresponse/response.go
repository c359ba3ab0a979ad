// Package spectralresponse loads and manipulates tabulated instrument
// spectral response curves S(λ), grounded on
// weif/spectral_response.h.
package spectralresponse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"github.com/scintillometry/weif/grid"
)

// ErrEmptyResponse is returned when a response is constructed with no
// samples.
var ErrEmptyResponse = errors.New("spectralresponse: empty response")

// Response is a tabulated spectral response S(λ) on a uniform
// wavelength grid (§3, §4.4).
type Response struct {
	Grid   grid.Grid
	Values []float64
}

// New constructs a Response from an explicit grid and value slice. It
// does not copy values defensively beyond what callers already own.
func New(g grid.Grid, values []float64) (*Response, error) {
	if len(values) == 0 {
		return nil, ErrEmptyResponse
	}
	if len(values) != g.Size {
		return nil, fmt.Errorf("spectralresponse: grid size %d does not match %d values", g.Size, len(values))
	}
	return &Response{Grid: g, Values: values}, nil
}

// Normalize divides every value by the current sum, so that Σ S_i = 1.
func (r *Response) Normalize() {
	sum := 0.0
	for _, v := range r.Values {
		sum += v
	}
	if sum == 0 {
		return
	}
	vecmath.ScaleBlockInPlace(r.Values, 1/sum)
}

// Stack intersects r's grid with other's, replaces r's values with the
// elementwise product on the intersection, and adopts the intersected
// grid (§4.4).
func (r *Response) Stack(other *Response) error {
	intersection, err := r.Grid.Intersect(other.Grid)
	if err != nil {
		return fmt.Errorf("spectralresponse: stack: %w", err)
	}

	rOffset := int((intersection.Origin - r.Grid.Origin) / r.Grid.Delta)
	oOffset := int((intersection.Origin - other.Grid.Origin) / other.Grid.Delta)

	rSlice := r.Values[rOffset : rOffset+intersection.Size]
	oSlice := other.Values[oOffset : oOffset+intersection.Size]

	product := make([]float64, intersection.Size)
	vecmath.MulBlock(product, rSlice, oSlice)

	r.Values = product
	r.Grid = intersection
	return nil
}

// EffectiveLambda returns ⟨λ⟩ weighted by S(λ)/λ (§4.4).
func (r *Response) EffectiveLambda() float64 {
	num, den := 0.0, 0.0
	for i, v := range r.Values {
		lambda := r.Grid.Value(i)
		if lambda == 0 {
			continue
		}
		w := v / lambda
		num += float64(i) * w
		den += w
	}
	if den == 0 {
		return r.Grid.Origin
	}
	return r.Grid.Origin + r.Grid.Delta*num/den
}

// FromFile parses a two-column whitespace-separated (wavelength_nm,
// response) text file with no header, validating that the wavelength
// column is uniformly spaced (§6).
func FromFile(path string) (*Response, error) {
	f, err := os.Open(path) //nolint:gosec // path is operator-supplied CLI input, not attacker-controlled
	if err != nil {
		return nil, fmt.Errorf("spectralresponse: open %s: %w", path, err)
	}
	defer f.Close()

	return parseResponse(f)
}

func parseResponse(r io.Reader) (*Response, error) {
	var lambdas, values []float64

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("spectralresponse: expected 2 columns, got %d: %q", len(fields), line)
		}
		lambda, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("spectralresponse: parse wavelength %q: %w", fields[0], err)
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("spectralresponse: parse value %q: %w", fields[1], err)
		}
		lambdas = append(lambdas, lambda)
		values = append(values, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("spectralresponse: scan: %w", err)
	}
	if len(lambdas) == 0 {
		return nil, ErrEmptyResponse
	}

	g, err := grid.FromValues(lambdas)
	if err != nil {
		return nil, err
	}

	return &Response{Grid: g, Values: values}, nil
}

// StackFromFiles folds make_from_file over paths, stacking each new
// file into the running accumulator: acc = file.Stack(acc) rather than
// acc.Stack(file). This mirrors the original library's
// std::accumulate body exactly (§9, §12 point 3): on each iteration the
// latest file's Response receives the product and becomes the new
// accumulator, and its grid is replaced by the intersection of both
// grids.
func StackFromFiles(paths []string) (*Response, error) {
	if len(paths) == 0 {
		return nil, ErrEmptyResponse
	}

	acc, err := FromFile(paths[0])
	if err != nil {
		return nil, err
	}

	for _, path := range paths[1:] {
		next, err := FromFile(path)
		if err != nil {
			return nil, err
		}
		if err := next.Stack(acc); err != nil {
			return nil, err
		}
		acc = next
	}

	return acc, nil
}
