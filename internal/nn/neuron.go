package nn

import (
	"fmt"
	"iter"
	"slices"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Neuron is a single computational unit: activation(b + Σ wᵢ·xᵢ).
//
// The number of weights is fixed at construction. Weights and bias are
// long-lived leaves of every graph built by Forward and are only changed by
// Nudge (or SetData when restoring).
//
// Example:
//
//	src := nn.NewSource(1234)
//	n := nn.NewNeuron(3, nn.Tanh, nn.NewUniform(src))
//	y := n.Forward(autodiff.Constants("x", 2, 3, -1))
type Neuron struct {
	weights    []*autodiff.Value
	bias       *autodiff.Value
	activation Activation
}

// NewNeuron creates a neuron with inputs weights. Weights and bias are drawn
// from sampler.
//
// Panics if inputs < 1.
func NewNeuron(inputs int, activation Activation, sampler Sampler) *Neuron {
	if inputs < 1 {
		panic(fmt.Sprintf("NewNeuron: need at least one input, got %d", inputs))
	}

	weights := make([]*autodiff.Value, inputs)
	for i := range weights {
		weights[i] = autodiff.NewValue(sampler.Rand(), fmt.Sprintf("w%d", i+1))
	}

	return &Neuron{
		weights:    weights,
		bias:       autodiff.NewValue(sampler.Rand(), "b"),
		activation: activation,
	}
}

// NewNeuronWithParams creates a neuron with the given weights and bias.
//
// Panics if weights is empty.
func NewNeuronWithParams(weights []float64, bias float64, activation Activation) *Neuron {
	if len(weights) == 0 {
		panic("NewNeuronWithParams: need at least one weight")
	}

	values := make([]*autodiff.Value, len(weights))
	for i, w := range weights {
		values[i] = autodiff.NewValue(w, fmt.Sprintf("w%d", i+1))
	}

	return &Neuron{
		weights:    values,
		bias:       autodiff.NewValue(bias, "b"),
		activation: activation,
	}
}

// Forward computes activation(b + Σ wᵢ·xᵢ).
//
// Panics if len(inputs) differs from the number of weights.
func (n *Neuron) Forward(inputs []*autodiff.Value) *autodiff.Value {
	if len(inputs) != len(n.weights) {
		panic(fmt.Sprintf("Neuron.Forward: expected %d inputs, got %d", len(n.weights), len(inputs)))
	}

	sum := n.bias
	for i, w := range n.weights {
		sum = sum.Add(w.Mul(inputs[i]))
	}

	return n.activation.Apply(sum)
}

// Weights returns the weight values in input order.
func (n *Neuron) Weights() iter.Seq[*autodiff.Value] {
	return slices.Values(n.weights)
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() iter.Seq[*autodiff.Value] {
	return func(yield func(*autodiff.Value) bool) {
		for _, w := range n.weights {
			if !yield(w) {
				return
			}
		}
		yield(n.bias)
	}
}

// Bias returns the bias value.
func (n *Neuron) Bias() *autodiff.Value {
	return n.bias
}

// NumInputs returns the number of weights.
func (n *Neuron) NumInputs() int {
	return len(n.weights)
}

// NumParameters returns the number of weights plus one for the bias.
func (n *Neuron) NumParameters() int {
	return len(n.weights) + 1
}

// Activation returns the configured nonlinearity.
func (n *Neuron) Activation() Activation {
	return n.activation
}

// Nudge applies value -= lr * grad to every parameter and clears gradients.
func (n *Neuron) Nudge(learningRate float64) {
	n.bias.Nudge(learningRate)
	for _, w := range n.weights {
		w.Nudge(learningRate)
	}
}
