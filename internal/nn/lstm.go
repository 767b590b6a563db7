package nn

import (
	"iter"

	"github.com/born-ml/scalargrad/internal/autodiff"
)

// LSTM is a gated recurrent cell built around an RNN:
//
//	h = rnn.Step(x)
//	f = sigmoid(W_f · h + b_f)   forget gate
//	o = sigmoid(W_o · h + b_o)   output gate
//	c = c * f + h                cell state
//	y = c * o
//
// Like RNN, state carries across steps until Detach or Reset.
type LSTM struct {
	rnn    *RNN
	forget *Layer
	output *Layer
	cell   []*autodiff.Value
}

// NewLSTM creates a gated cell with the given input and hidden widths.
func NewLSTM(inputs, hidden int, sampler Sampler) *LSTM {
	return &LSTM{
		rnn:    NewRNN(inputs, hidden, sampler),
		forget: NewLayer(hidden, hidden, Sigmoid, sampler),
		output: NewLayer(hidden, hidden, Sigmoid, sampler),
		cell:   zeroState("c", hidden),
	}
}

// Step consumes one input vector and returns the gated output.
//
// Panics if len(x) differs from the input width.
func (l *LSTM) Step(x []*autodiff.Value) []*autodiff.Value {
	h := l.rnn.Step(x)
	f := l.forget.Forward(h)
	o := l.output.Forward(h)

	out := make([]*autodiff.Value, len(h))
	for i := range h {
		l.cell[i] = l.cell[i].Mul(f[i]).Add(h[i])
		out[i] = l.cell[i].Mul(o[i])
	}
	return out
}

// Forward is Step; it lets an LSTM be used as a Module.
func (l *LSTM) Forward(inputs []*autodiff.Value) []*autodiff.Value {
	return l.Step(inputs)
}

// Cell returns a copy of the current cell state.
func (l *LSTM) Cell() []*autodiff.Value {
	cell := make([]*autodiff.Value, len(l.cell))
	copy(cell, l.cell)
	return cell
}

// Detach cuts the hidden and cell state from earlier steps.
func (l *LSTM) Detach() {
	l.rnn.Detach()
	l.cell = detach("c", l.cell)
}

// Reset zeroes the hidden and cell state.
func (l *LSTM) Reset() {
	l.rnn.Reset()
	l.cell = zeroState("c", len(l.cell))
}

// Weights returns the weights of every layer.
func (l *LSTM) Weights() iter.Seq[*autodiff.Value] {
	return chain(l.rnn.Weights(), l.forget.Weights(), l.output.Weights())
}

// Parameters returns the parameters of every layer.
func (l *LSTM) Parameters() iter.Seq[*autodiff.Value] {
	return chain(l.rnn.Parameters(), l.forget.Parameters(), l.output.Parameters())
}

// Nudge updates every layer.
func (l *LSTM) Nudge(learningRate float64) {
	l.rnn.Nudge(learningRate)
	l.forget.Nudge(learningRate)
	l.output.Nudge(learningRate)
}
