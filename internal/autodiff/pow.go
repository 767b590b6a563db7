package autodiff

import (
	"fmt"
	"math"
)

// PowOp represents raising a value to a constant exponent: output = a^e.
//
// Backward pass:
//   - d(a^e)/da = e * a^(e-1), so grad_a += e * a^(e-1) * outputGrad
//
// The exponent is not a node and receives no gradient.
type PowOp struct {
	a        *Value
	exponent float64
}

// Kind returns OpPow.
func (op *PowOp) Kind() OpKind {
	return OpPow
}

// Inputs returns [a].
func (op *PowOp) Inputs() []*Value {
	return []*Value{op.a}
}

// Exponent returns the constant exponent.
func (op *PowOp) Exponent() float64 {
	return op.exponent
}

// Backward applies the power rule.
func (op *PowOp) Backward(output *Value) {
	op.a.addGrad(op.exponent * math.Pow(op.a.data, op.exponent-1) * output.grad)
}

// Describe returns "a^e".
func (op *PowOp) Describe() string {
	return fmt.Sprintf("%s^%g", op.a.Label(), op.exponent)
}
