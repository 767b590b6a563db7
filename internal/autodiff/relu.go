package autodiff

// ReLUOp represents a rectified linear unit: output = max(0, a).
//
// Backward pass:
//   - d(ReLU(a))/da = 1 if output > 0, else 0
//
// At a = 0 the subgradient 0 is used.
type ReLUOp struct {
	a *Value
}

// Kind returns OpReLU.
func (op *ReLUOp) Kind() OpKind {
	return OpReLU
}

// Inputs returns [a].
func (op *ReLUOp) Inputs() []*Value {
	return []*Value{op.a}
}

// Backward passes the gradient through where the unit is active.
func (op *ReLUOp) Backward(output *Value) {
	if output.data > 0 {
		op.a.addGrad(output.grad)
	}
}

// Describe returns "relu(a)".
func (op *ReLUOp) Describe() string {
	return "relu(" + op.a.Label() + ")"
}
