package nn

import (
	"fmt"
	"iter"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// RNN is a simple recurrent cell:
//
//	h_t = tanh(W_h · (tanh(W_x · x_t + b_x) + h_{t-1}) + b_h)
//
// The hidden state starts at zero. Each Step links the new state to the
// previous one, so a backward pass from a later output reaches every earlier
// step. Call Detach to truncate that history.
type RNN struct {
	input  *Layer
	hidden *Layer
	state  []*autodiff.Value
}

// NewRNN creates a recurrent cell with the given input and hidden widths.
func NewRNN(inputs, hidden int, sampler Sampler) *RNN {
	return &RNN{
		input:  NewLayer(inputs, hidden, Tanh, sampler),
		hidden: NewLayer(hidden, hidden, Tanh, sampler),
		state:  zeroState("h", hidden),
	}
}

func zeroState(prefix string, n int) []*autodiff.Value {
	return autodiff.Constants(prefix, make([]float64, n)...)
}

// Step consumes one input vector and returns the new hidden state.
//
// Panics if len(x) differs from the input width.
func (r *RNN) Step(x []*autodiff.Value) []*autodiff.Value {
	if len(x) != r.input.NumInputs() {
		panic(fmt.Sprintf("RNN.Step: expected %d inputs, got %d", r.input.NumInputs(), len(x)))
	}

	activation := r.input.Forward(x)
	combined := make([]*autodiff.Value, len(activation))
	for i, a := range activation {
		combined[i] = a.Add(r.state[i])
	}

	r.state = r.hidden.Forward(combined)
	return r.State()
}

// Forward is Step; it lets an RNN be used as a Module.
func (r *RNN) Forward(inputs []*autodiff.Value) []*autodiff.Value {
	return r.Step(inputs)
}

// State returns a copy of the current hidden state.
func (r *RNN) State() []*autodiff.Value {
	state := make([]*autodiff.Value, len(r.state))
	copy(state, r.state)
	return state
}

// Detach replaces the hidden state with constants holding the same values,
// cutting the graph to earlier steps.
func (r *RNN) Detach() {
	r.state = detach("h", r.state)
}

// Reset sets the hidden state back to zero.
func (r *RNN) Reset() {
	r.state = zeroState("h", len(r.state))
}

func detach(prefix string, values []*autodiff.Value) []*autodiff.Value {
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = v.Data()
	}
	return autodiff.Constants(prefix, data...)
}

// Weights returns the weights of the input and hidden layers.
func (r *RNN) Weights() iter.Seq[*autodiff.Value] {
	return chain(r.input.Weights(), r.hidden.Weights())
}

// Parameters returns the parameters of the input and hidden layers.
func (r *RNN) Parameters() iter.Seq[*autodiff.Value] {
	return chain(r.input.Parameters(), r.hidden.Parameters())
}

// Nudge updates both layers.
func (r *RNN) Nudge(learningRate float64) {
	r.input.Nudge(learningRate)
	r.hidden.Nudge(learningRate)
}
