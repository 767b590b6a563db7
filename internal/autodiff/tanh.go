package autodiff

// TanhOp represents the hyperbolic tangent activation: output = tanh(a).
//
// Since the output tanh(a) is already computed:
// grad_a += (1 - output²) * outputGrad.
type TanhOp struct {
	a *Value
}

// Kind returns OpTanh.
func (op *TanhOp) Kind() OpKind {
	return OpTanh
}

// Inputs returns [a].
func (op *TanhOp) Inputs() []*Value {
	return []*Value{op.a}
}

// Backward computes the gradient for tanh from the cached output.
func (op *TanhOp) Backward(output *Value) {
	op.a.addGrad((1 - output.data*output.data) * output.grad)
}

// Describe returns "tanh(a)".
func (op *TanhOp) Describe() string {
	return "tanh(" + op.a.Label() + ")"
}
