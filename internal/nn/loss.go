package nn

import (
	"fmt"
	"iter"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// SquaredError returns (prediction - target)².
func SquaredError(prediction, target *autodiff.Value) *autodiff.Value {
	return prediction.Sub(target).Pow(2)
}

// MSE computes mean((predictions - targets)²) as a graph node.
//
// Panics if the slices are empty or differ in length.
//
// Example:
//
//	preds := model.Forward(x)
//	loss := nn.MSE(preds, autodiff.Constants("y", 2.0))
//	loss.Backward()
func MSE(predictions, targets []*autodiff.Value) *autodiff.Value {
	if len(predictions) != len(targets) {
		panic(fmt.Sprintf("MSE: %d predictions but %d targets", len(predictions), len(targets)))
	}
	if len(predictions) == 0 {
		panic("MSE: no predictions")
	}

	terms := make([]*autodiff.Value, len(predictions))
	for i, p := range predictions {
		terms[i] = SquaredError(p, targets[i])
	}

	n := autodiff.NewValue(1/float64(len(terms)), "n")
	return autodiff.Sum(terms...).Mul(n)
}

// L2 computes lambda * Σ w² over weights.
func L2(weights iter.Seq[*autodiff.Value], lambda float64) *autodiff.Value {
	sum := autodiff.NewValue(0, "SUM")
	for w := range weights {
		sum = sum.Add(w.Pow(2))
	}
	return sum.Mul(autodiff.NewValue(lambda, "lambda"))
}
