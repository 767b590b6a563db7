package autodiff

// MulOp represents a multiplication: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a += b * outputGrad
//   - d(a*b)/db = a, so grad_b += a * outputGrad
//
// For a squared node (x * x) both terms land on x, giving 2x * outputGrad.
type MulOp struct {
	a, b *Value
}

// Kind returns OpMul.
func (op *MulOp) Kind() OpKind {
	return OpMul
}

// Inputs returns [a, b].
func (op *MulOp) Inputs() []*Value {
	return []*Value{op.a, op.b}
}

// Backward applies the product rule.
func (op *MulOp) Backward(output *Value) {
	op.a.addGrad(op.b.data * output.grad)
	op.b.addGrad(op.a.data * output.grad)
}

// Describe returns "a * b".
func (op *MulOp) Describe() string {
	return op.a.Label() + " * " + op.b.Label()
}
