// Package dataset generates synthetic regression samples.
package dataset

import (
	"fmt"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sample is one input vector and its target.
type Sample struct {
	X []float64
	Y float64
}

// Func maps an input vector to a target.
type Func func(x []float64) float64

// QuadraticFunc is y = x² + 2x + 4 on the first input.
func QuadraticFunc(x []float64) float64 {
	return x[0]*x[0] + 2*x[0] + 4
}

// Quadratic draws n one-dimensional samples of y = x² + 2x + 4 with x
// uniform in [-1, 1).
func Quadratic(n int, src rand.Source) []Sample {
	return Generate(n, 1, QuadraticFunc, src)
}

// Generate draws n samples with dim inputs, each uniform in [-1, 1), and
// labels them with f.
//
// Panics if n is negative or dim < 1.
func Generate(n, dim int, f Func, src rand.Source) []Sample {
	if n < 0 || dim < 1 {
		panic(fmt.Sprintf("dataset.Generate: invalid size n=%d dim=%d", n, dim))
	}

	u := distuv.Uniform{Min: -1, Max: 1, Src: src}
	samples := make([]Sample, n)
	for i := range samples {
		x := make([]float64, dim)
		for j := range x {
			x[j] = u.Rand()
		}
		samples[i] = Sample{X: x, Y: f(x)}
	}
	return samples
}

// Inputs lifts the sample's inputs to constant values labelled x0, x1, ...
func (s Sample) Inputs() []*autodiff.Value {
	return autodiff.Constants("x", s.X...)
}

// Target lifts the sample's target to a constant value labelled y.
func (s Sample) Target() *autodiff.Value {
	return autodiff.NewValue(s.Y, "y")
}

// Targets returns the target of every sample.
func Targets(samples []Sample) []float64 {
	ys := make([]float64, len(samples))
	for i, s := range samples {
		ys[i] = s.Y
	}
	return ys
}

// Dim returns the input width shared by samples, or 0 if there are none.
// It returns an error if the widths differ.
func Dim(samples []Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	dim := len(samples[0].X)
	for i, s := range samples[1:] {
		if len(s.X) != dim {
			return 0, fmt.Errorf("sample %d has %d inputs, sample 0 has %d", i+1, len(s.X), dim)
		}
	}
	return dim, nil
}
