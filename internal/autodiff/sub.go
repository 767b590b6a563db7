package autodiff

// SubOp represents a subtraction: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a += outputGrad
//   - d(a-b)/db = -1, so grad_b -= outputGrad
type SubOp struct {
	a, b *Value
}

// Kind returns OpSub.
func (op *SubOp) Kind() OpKind {
	return OpSub
}

// Inputs returns [a, b].
func (op *SubOp) Inputs() []*Value {
	return []*Value{op.a, op.b}
}

// Backward propagates the output gradient to a and its negation to b.
func (op *SubOp) Backward(output *Value) {
	op.a.addGrad(output.grad)
	op.b.addGrad(-output.grad)
}

// Describe returns "a - b".
func (op *SubOp) Describe() string {
	return op.a.Label() + " - " + op.b.Label()
}
