package autodiff

// OpKind identifies how a Value was derived.
type OpKind int

// Operation kinds.
const (
	OpConstant OpKind = iota
	OpAdd
	OpSub
	OpMul
	OpPow
	OpTanh
	OpSigmoid
	OpReLU
)

var opKindNames = [...]string{
	OpConstant: "Constant",
	OpAdd:      "Add",
	OpSub:      "Sub",
	OpMul:      "Mul",
	OpPow:      "Pow",
	OpTanh:     "Tanh",
	OpSigmoid:  "Sigmoid",
	OpReLU:     "ReLU",
}

// String implements fmt.Stringer.
func (k OpKind) String() string {
	if k < 0 || int(k) >= len(opKindNames) {
		return "Unknown"
	}
	return opKindNames[k]
}

// Operation records how a non-leaf Value was computed from its operands.
//
// Each operation implements the local derivative rule of the chain rule:
// given the output node (whose gradient is already complete), it adds the
// output's contribution to each operand's gradient.
//
// Supported operations:
//   - AddOp: d(a+b)/da = 1, d(a+b)/db = 1
//   - SubOp: d(a-b)/da = 1, d(a-b)/db = -1
//   - MulOp: d(a*b)/da = b, d(a*b)/db = a
//   - PowOp: d(a^e)/da = e * a^(e-1)
//   - TanhOp: d(tanh(a))/da = 1 - tanh²(a)
//   - SigmoidOp: d(σ(a))/da = σ(a) * (1 - σ(a))
//   - ReLUOp: d(ReLU(a))/da = 1 if ReLU(a) > 0, else 0
type Operation interface {
	// Kind returns the operation tag.
	Kind() OpKind

	// Inputs returns the operand values, in order.
	Inputs() []*Value

	// Backward adds the contribution of output's gradient to each operand's
	// gradient. output must be the Value this operation produced.
	Backward(output *Value)

	// Describe returns a human-readable expression built from operand labels.
	Describe() string
}
