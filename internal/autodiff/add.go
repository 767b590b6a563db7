package autodiff

// AddOp represents an addition: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a += outputGrad
//   - d(a+b)/db = 1, so grad_b += outputGrad
//
// a and b may be the same Value (x + x); both contributions are added.
type AddOp struct {
	a, b *Value
}

// Kind returns OpAdd.
func (op *AddOp) Kind() OpKind {
	return OpAdd
}

// Inputs returns [a, b].
func (op *AddOp) Inputs() []*Value {
	return []*Value{op.a, op.b}
}

// Backward propagates the output gradient unchanged to both operands.
func (op *AddOp) Backward(output *Value) {
	op.a.addGrad(output.grad)
	op.b.addGrad(output.grad)
}

// Describe returns "a + b".
func (op *AddOp) Describe() string {
	return op.a.Label() + " + " + op.b.Label()
}
