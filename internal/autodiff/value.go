package autodiff

import (
	"fmt"
	"math"
)

// Value is a single scalar node in the computation graph.
//
// A Value holds its numeric data, the gradient accumulated during backward
// passes, and the operation that produced it. Leaf values (constants,
// parameters, inputs) have a nil operation.
//
// Values are shared by pointer: the same *Value may be an operand of any
// number of downstream operations. Operands always exist before the operation
// node is built, so the graph is acyclic by construction.
//
// A Value is not safe for concurrent mutation. Reading Data from several
// goroutines is fine as long as no backward pass or update runs at the
// same time.
type Value struct {
	data  float64
	grad  float64
	op    Operation
	label string
}

// NewValue creates a constant (leaf) value.
//
// Example:
//
//	x := autodiff.NewValue(2.0, "x")
//	w := autodiff.NewValue(-0.5, "w")
//	y := x.Mul(w).Tanh()
func NewValue(data float64, label string) *Value {
	return &Value{
		data:  data,
		label: label,
	}
}

// newResult creates a non-leaf value produced by op.
// Its label is derived from the operands on demand.
func newResult(data float64, op Operation) *Value {
	return &Value{
		data: data,
		op:   op,
	}
}

// Data returns the current numeric value.
func (v *Value) Data() float64 {
	return v.data
}

// SetData overwrites the numeric value.
//
// Used when restoring parameters from a checkpoint. Values computed from v
// before the call keep their old data; rebuild the graph with a new forward
// pass to see the change.
func (v *Value) SetData(data float64) {
	v.data = data
}

// Grad returns the gradient accumulated by backward passes.
func (v *Value) Grad() float64 {
	return v.grad
}

// ZeroGrad resets the accumulated gradient.
func (v *Value) ZeroGrad() {
	v.grad = 0
}

// Nudge performs one gradient-descent step on v: data -= lr * grad, then
// clears the gradient.
//
// Calling Nudge without a preceding backward pass is a no-op because the
// gradient is zero.
func (v *Value) Nudge(learningRate float64) {
	v.data -= learningRate * v.grad
	v.grad = 0
}

// Label returns the diagnostic label.
//
// Results of operations without an explicit label describe themselves from
// their operands, e.g. "w0 * x0 + b". The description is built on each call,
// so avoid calling it on large graphs in hot loops.
func (v *Value) Label() string {
	if v.label != "" || v.op == nil {
		return v.label
	}
	return v.op.Describe()
}

// Named sets an explicit label on v and returns v.
func (v *Value) Named(label string) *Value {
	v.label = label
	return v
}

// Op returns the operation that produced v, or nil for constants.
func (v *Value) Op() Operation {
	return v.op
}

// Kind returns the operation tag of v.
func (v *Value) Kind() OpKind {
	if v.op == nil {
		return OpConstant
	}
	return v.op.Kind()
}

// IsFinite reports whether the data is neither NaN nor infinite.
func (v *Value) IsFinite() bool {
	return !math.IsNaN(v.data) && !math.IsInf(v.data, 0)
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return fmt.Sprintf("Value(%s=%g, grad=%g)", v.Label(), v.data, v.grad)
}

// addGrad accumulates g into the gradient of v.
func (v *Value) addGrad(g float64) {
	v.grad += g
}

// Add returns v + other.
func (v *Value) Add(other *Value) *Value {
	return newResult(v.data+other.data, &AddOp{a: v, b: other})
}

// Sub returns v - other.
func (v *Value) Sub(other *Value) *Value {
	return newResult(v.data-other.data, &SubOp{a: v, b: other})
}

// Mul returns v * other.
func (v *Value) Mul(other *Value) *Value {
	return newResult(v.data*other.data, &MulOp{a: v, b: other})
}

// Pow returns v raised to a constant exponent.
//
// The exponent is a plain number and does not receive a gradient. A negative
// base with a non-integer exponent yields NaN, which propagates unchanged.
func (v *Value) Pow(exponent float64) *Value {
	return newResult(math.Pow(v.data, exponent), &PowOp{a: v, exponent: exponent})
}

// Tanh returns the hyperbolic tangent of v.
func (v *Value) Tanh() *Value {
	return newResult(math.Tanh(v.data), &TanhOp{a: v})
}

// Sigmoid returns 1 / (1 + exp(-v)).
func (v *Value) Sigmoid() *Value {
	return newResult(1.0/(1.0+math.Exp(-v.data)), &SigmoidOp{a: v})
}

// ReLU returns max(0, v).
func (v *Value) ReLU() *Value {
	return newResult(math.Max(0, v.data), &ReLUOp{a: v})
}

// Sum folds values with Add, starting from a constant zero labelled "SUM".
// An empty call returns that zero constant.
func Sum(values ...*Value) *Value {
	acc := NewValue(0, "SUM")
	for _, v := range values {
		acc = acc.Add(v)
	}
	return acc
}

// Scale returns v multiplied by the constant k.
func Scale(v *Value, k float64) *Value {
	return v.Mul(NewValue(k, fmt.Sprintf("%g", k)))
}

// Constants wraps each number in a constant Value labelled prefix0, prefix1, ...
func Constants(prefix string, data ...float64) []*Value {
	values := make([]*Value, len(data))
	for i, d := range data {
		values[i] = NewValue(d, fmt.Sprintf("%s%d", prefix, i))
	}
	return values
}
