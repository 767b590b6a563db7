package autodiff

// SigmoidOp represents the logistic sigmoid: output = 1 / (1 + exp(-a)).
//
// Backward pass uses the cached output σ:
// grad_a += σ * (1 - σ) * outputGrad.
type SigmoidOp struct {
	a *Value
}

// Kind returns OpSigmoid.
func (op *SigmoidOp) Kind() OpKind {
	return OpSigmoid
}

// Inputs returns [a].
func (op *SigmoidOp) Inputs() []*Value {
	return []*Value{op.a}
}

// Backward computes the gradient for sigmoid.
func (op *SigmoidOp) Backward(output *Value) {
	s := output.data
	op.a.addGrad(s * (1 - s) * output.grad)
}

// Describe returns "sigmoid(a)".
func (op *SigmoidOp) Describe() string {
	return "sigmoid(" + op.a.Label() + ")"
}
