package serialization

import (
	"fmt"
	"iter"
	"slices"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Capture returns the data of every value in params, in order.
func Capture(params iter.Seq[*autodiff.Value]) []float64 {
	values := []float64{}
	for p := range params {
		values = append(values, p.Data())
	}
	return values
}

// Restore writes values into params, in order, and clears their gradients.
// Nothing is written unless the counts match.
func Restore(params iter.Seq[*autodiff.Value], values []float64) error {
	targets := slices.Collect(params)
	if len(targets) != len(values) {
		return fmt.Errorf("%w: model has %d parameters, checkpoint has %d", ErrParameterCount, len(targets), len(values))
	}
	for i, p := range targets {
		p.SetData(values[i])
		p.ZeroGrad()
	}
	return nil
}
