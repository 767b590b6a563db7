// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neurons, layers and networks built on scalar autodiff.
//
// # Overview
//
// This package contains:
//   - Neuron: activation(b + Σ wᵢ·xᵢ)
//   - Layer: neurons sharing one input vector
//   - MLP: layers applied in sequence
//   - RNN, LSTM: recurrent cells
//   - Loss helpers: SquaredError, MSE, L2
//   - Initialization: NewUniform, Fixed, and per-layer NewSource with
//     UniformInit or XavierInit
//
// # Basic Usage
//
//	model, err := nn.NewMLP(nn.Config{
//	    Inputs:     1,
//	    Widths:     []int{3, 1},
//	    Activation: nn.Tanh,
//	}, nn.NewUniform(1234))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pred := model.Forward(autodiff.Constants("x", 0.5))[0]
//	loss := nn.SquaredError(pred, autodiff.NewValue(5.25, "y"))
//	loss.Backward()
//	model.Nudge(0.01)
//
// Xavier/Glorot initialization scales each layer by its fan-in and fan-out:
//
//	model, err := nn.NewMLPWithInit(config, nn.XavierInit(nn.NewSource(1234)))
package nn

import (
	"iter"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/nn"
	"golang.org/x/exp/rand"
)

// Module is the common interface of every network component.
type Module = nn.Module

// Trainable is a Module that exposes its weights and applies updates.
type Trainable = nn.Trainable

// Activation selects a neuron's nonlinearity.
type Activation = nn.Activation

// Supported activations.
const (
	Identity = nn.Identity
	ReLU     = nn.ReLU
	Tanh     = nn.Tanh
	Sigmoid  = nn.Sigmoid
)

// ParseActivation parses an activation name.
func ParseActivation(s string) (Activation, error) {
	return nn.ParseActivation(s)
}

// Sampler draws initial parameter values.
type Sampler = nn.Sampler

// Fixed is a Sampler that always returns the same value.
type Fixed = nn.Fixed

// NewUniform returns a sampler over [-1, 1) seeded with seed.
func NewUniform(seed uint64) Sampler {
	return nn.NewUniform(nn.NewSource(seed))
}

// Source is a seeded random source shared by samplers.
type Source = rand.Source

// NewSource returns a seeded random source.
func NewSource(seed uint64) Source {
	return nn.NewSource(seed)
}

// Xavier returns a Xavier/Glorot uniform sampler for a layer with the given
// fan-in and fan-out.
func Xavier(fanIn, fanOut int, src Source) Sampler {
	return nn.Xavier(fanIn, fanOut, src)
}

// Init chooses the sampler for each layer of an MLP.
type Init = nn.Init

// UniformInit draws every layer from U(-1, 1).
func UniformInit(src Source) Init {
	return nn.UniformInit(src)
}

// XavierInit draws each layer from Xavier(fanIn, fanOut, src).
func XavierInit(src Source) Init {
	return nn.XavierInit(src)
}

// Neuron is a single weighted-sum unit.
type Neuron = nn.Neuron

// NewNeuron creates a neuron with inputs weights drawn from sampler.
func NewNeuron(inputs int, activation Activation, sampler Sampler) *Neuron {
	return nn.NewNeuron(inputs, activation, sampler)
}

// NewNeuronWithParams creates a neuron with explicit weights and bias.
//
// Example:
//
//	n := nn.NewNeuronWithParams([]float64{1, 1, 1}, 0, nn.Identity)
//	y := n.Forward(autodiff.Constants("x", 2, 3, -1)) // 4
func NewNeuronWithParams(weights []float64, bias float64, activation Activation) *Neuron {
	return nn.NewNeuronWithParams(weights, bias, activation)
}

// Layer is an ordered collection of neurons.
type Layer = nn.Layer

// NewLayer creates a layer of outputs neurons with inputs weights each.
func NewLayer(inputs, outputs int, activation Activation, sampler Sampler) *Layer {
	return nn.NewLayer(inputs, outputs, activation, sampler)
}

// Config describes an MLP architecture.
type Config = nn.Config

// MLP is a multi-layer perceptron.
type MLP = nn.MLP

// NewMLP builds an MLP with parameters drawn from sampler.
func NewMLP(config Config, sampler Sampler) (*MLP, error) {
	return nn.NewMLP(config, sampler)
}

// NewMLPWithInit builds an MLP whose layers draw from the sampler init
// returns for them.
func NewMLPWithInit(config Config, init Init) (*MLP, error) {
	return nn.NewMLPWithInit(config, init)
}

// NewMLPFromLayers stacks existing layers.
func NewMLPFromLayers(layers ...*Layer) (*MLP, error) {
	return nn.NewMLPFromLayers(layers...)
}

// RNN is a simple recurrent cell.
type RNN = nn.RNN

// NewRNN creates a recurrent cell.
func NewRNN(inputs, hidden int, sampler Sampler) *RNN {
	return nn.NewRNN(inputs, hidden, sampler)
}

// LSTM is a gated recurrent cell.
type LSTM = nn.LSTM

// NewLSTM creates a gated recurrent cell.
func NewLSTM(inputs, hidden int, sampler Sampler) *LSTM {
	return nn.NewLSTM(inputs, hidden, sampler)
}

// SquaredError returns (prediction - target)².
func SquaredError(prediction, target *autodiff.Value) *autodiff.Value {
	return nn.SquaredError(prediction, target)
}

// MSE computes the mean squared error as a graph node.
func MSE(predictions, targets []*autodiff.Value) *autodiff.Value {
	return nn.MSE(predictions, targets)
}

// L2 computes lambda * Σ w² over weights.
func L2(weights iter.Seq[*autodiff.Value], lambda float64) *autodiff.Value {
	return nn.L2(weights, lambda)
}

// Count returns the number of values in seq.
func Count(seq iter.Seq[*autodiff.Value]) int {
	return nn.Count(seq)
}
