package nn

import (
	"fmt"
	"iter"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Layer is an ordered collection of neurons that all read the same input
// vector. Its output width is the number of neurons.
type Layer struct {
	neurons []*Neuron
	inputs  int
}

// NewLayer creates a layer of outputs neurons, each with inputs weights.
//
// Panics if inputs or outputs is less than 1.
func NewLayer(inputs, outputs int, activation Activation, sampler Sampler) *Layer {
	if outputs < 1 {
		panic(fmt.Sprintf("NewLayer: need at least one neuron, got %d", outputs))
	}

	neurons := make([]*Neuron, outputs)
	for i := range neurons {
		neurons[i] = NewNeuron(inputs, activation, sampler)
	}

	return &Layer{
		neurons: neurons,
		inputs:  inputs,
	}
}

// NewLayerFromNeurons groups existing neurons into a layer.
//
// Panics if no neurons are given or if their input widths differ.
func NewLayerFromNeurons(neurons ...*Neuron) *Layer {
	if len(neurons) == 0 {
		panic("NewLayerFromNeurons: need at least one neuron")
	}

	inputs := neurons[0].NumInputs()
	for i, n := range neurons[1:] {
		if n.NumInputs() != inputs {
			panic(fmt.Sprintf("NewLayerFromNeurons: neuron %d has %d inputs, neuron 0 has %d", i+1, n.NumInputs(), inputs))
		}
	}

	return &Layer{
		neurons: neurons,
		inputs:  inputs,
	}
}

// Forward applies every neuron to inputs and returns one output per neuron,
// in neuron order. The returned slice is freshly allocated on each call.
//
// Panics if len(inputs) differs from the layer's input width.
func (l *Layer) Forward(inputs []*autodiff.Value) []*autodiff.Value {
	if len(inputs) != l.inputs {
		panic(fmt.Sprintf("Layer.Forward: expected %d inputs, got %d", l.inputs, len(inputs)))
	}

	outputs := make([]*autodiff.Value, len(l.neurons))
	for i, n := range l.neurons {
		outputs[i] = n.Forward(inputs)
	}

	return outputs
}

// Weights returns the weights of every neuron, neuron by neuron.
func (l *Layer) Weights() iter.Seq[*autodiff.Value] {
	return func(yield func(*autodiff.Value) bool) {
		for _, n := range l.neurons {
			for w := range n.Weights() {
				if !yield(w) {
					return
				}
			}
		}
	}
}

// Parameters returns the parameters of every neuron (weights, then bias),
// neuron by neuron.
func (l *Layer) Parameters() iter.Seq[*autodiff.Value] {
	return func(yield func(*autodiff.Value) bool) {
		for _, n := range l.neurons {
			for p := range n.Parameters() {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Nudge updates every neuron's parameters.
func (l *Layer) Nudge(learningRate float64) {
	for _, n := range l.neurons {
		n.Nudge(learningRate)
	}
}

// Neurons returns the neurons in order. The slice is shared with the layer.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// NumInputs returns the input width.
func (l *Layer) NumInputs() int {
	return l.inputs
}

// NumOutputs returns the output width.
func (l *Layer) NumOutputs() int {
	return len(l.neurons)
}
