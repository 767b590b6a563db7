// Package nn implements neural network modules on top of the scalar autodiff
// engine.
//
// This package provides:
//   - Neuron: weighted sum of inputs plus bias, followed by an activation
//   - Layer: ordered neurons applied to the same input vector
//   - MLP: a stack of layers (multi-layer perceptron)
//   - RNN and LSTM: small recurrent cells built from layers
//   - Loss helpers (MSE, L2) composed from autodiff operators
//   - Initialization from an explicit random source
//
// Every weight and bias is an *autodiff.Value that persists for the lifetime
// of its module. Forward passes build fresh intermediate nodes on top of them.
package nn

import (
	"iter"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Module is the base interface for all neural network components.
//
// Forward maps an input vector to an output vector, building new graph
// nodes. Parameters enumerates every trainable value (weights and biases)
// in a stable order, which persistence relies on.
type Module interface {
	Forward(inputs []*autodiff.Value) []*autodiff.Value
	Parameters() iter.Seq[*autodiff.Value]
}

// Trainable is a Module that also exposes its weights (without biases, for
// regularization) and applies the gradient-descent update in place.
type Trainable interface {
	Module
	Weights() iter.Seq[*autodiff.Value]
	Nudge(learningRate float64)
}

// Count returns the number of values in seq.
func Count(seq iter.Seq[*autodiff.Value]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}

// NudgeAll applies Value.Nudge to every value in seq.
func NudgeAll(seq iter.Seq[*autodiff.Value], learningRate float64) {
	for v := range seq {
		v.Nudge(learningRate)
	}
}

// ZeroGrad clears the gradient of every value in seq.
func ZeroGrad(seq iter.Seq[*autodiff.Value]) {
	for v := range seq {
		v.ZeroGrad()
	}
}

// chain concatenates sequences.
func chain(seqs ...iter.Seq[*autodiff.Value]) iter.Seq[*autodiff.Value] {
	return func(yield func(*autodiff.Value) bool) {
		for _, seq := range seqs {
			for v := range seq {
				if !yield(v) {
					return
				}
			}
		}
	}
}
