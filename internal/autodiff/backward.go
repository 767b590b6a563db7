package autodiff

// Backward computes the gradient of v with respect to every node reachable
// from it. See GradientTape.Backward for the accumulation rules.
func (v *Value) Backward() {
	NewGradientTape(v).Backward()
}

// Backward computes gradients of output and returns the tape it used, so the
// caller can inspect the graph or rerun the pass.
//
// Example:
//
//	x := autodiff.NewValue(3, "x")
//	y := x.Mul(x) // y = x²
//	autodiff.Backward(y)
//	fmt.Println(x.Grad()) // dy/dx = 2x = 6
func Backward(output *Value) *GradientTape {
	tape := NewGradientTape(output)
	tape.Backward()
	return tape
}
