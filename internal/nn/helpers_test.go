package nn_test

import (
	"iter"
	"slices"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/nn"
	"gonum.org/v1/gonum/diff/fd"
)

const gradTolerance = 1e-4

// checkParameterGradients returns the analytic and numeric gradients of
// loss() with respect to every value in seq. loss must rebuild the graph
// from the current parameter values on every call.
func checkParameterGradients(seq iter.Seq[*autodiff.Value], loss func() *autodiff.Value) (analytic, numeric []float64) {
	params := slices.Collect(seq)
	start := make([]float64, len(params))
	for i, p := range params {
		start[i] = p.Data()
	}
	set := func(x []float64) {
		for i, p := range params {
			p.SetData(x[i])
		}
	}

	numeric = fd.Gradient(nil, func(x []float64) float64 {
		set(x)
		return loss().Data()
	}, start, &fd.Settings{Formula: fd.Central})

	set(start)
	nn.ZeroGrad(seq)
	loss().Backward()

	analytic = make([]float64, len(params))
	for i, p := range params {
		analytic[i] = p.Grad()
	}
	return analytic, numeric
}

// values returns the data of every element of seq.
func values(seq iter.Seq[*autodiff.Value]) []float64 {
	var out []float64
	for p := range seq {
		out = append(out, p.Data())
	}
	return out
}

func grads(seq iter.Seq[*autodiff.Value]) []float64 {
	var out []float64
	for p := range seq {
		out = append(out, p.Grad())
	}
	return out
}
