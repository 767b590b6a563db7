package autodiff

// GradientTape holds the nodes reachable from an output Value in topological
// order (every operand precedes the operations that consume it) and computes
// gradients by walking that order in reverse.
//
// Walking in reverse topological order guarantees that a node shared by
// several consumers has received every contribution before it propagates to
// its own operands, and that it propagates exactly once.
//
// Usage:
//
//	loss := pred.Sub(target).Pow(2)
//	tape := autodiff.NewGradientTape(loss)
//	tape.Backward()
//	fmt.Println(w.Grad())
//
// A tape is a snapshot of the graph at construction time and can be reused
// for repeated backward passes over the same graph.
type GradientTape struct {
	output *Value
	nodes  []*Value // Topological order, output last
}

// NewGradientTape builds the topological order of the graph reachable from
// output.
func NewGradientTape(output *Value) *GradientTape {
	return &GradientTape{
		output: output,
		nodes:  topologicalOrder(output),
	}
}

// frame is one entry of the explicit DFS stack.
type frame struct {
	node   *Value
	inputs []*Value
	next   int // Index of the next input to visit
}

// topologicalOrder returns a depth-first post-order of the graph rooted at
// root. The traversal uses an explicit stack so that long chains (for example
// a sum over many samples) do not recurse once per node.
func topologicalOrder(root *Value) []*Value {
	visited := map[*Value]struct{}{root: {}}
	order := make([]*Value, 0, 64)
	stack := []frame{{node: root, inputs: inputsOf(root)}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.inputs) {
			child := top.inputs[top.next]
			top.next++
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}
			stack = append(stack, frame{node: child, inputs: inputsOf(child)})
			continue
		}
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}

	return order
}

func inputsOf(v *Value) []*Value {
	if v.op == nil {
		return nil
	}
	return v.op.Inputs()
}

// Backward seeds the output gradient with 1 and propagates gradients to every
// node on the tape.
//
// Gradients of intermediate (non-leaf) nodes are recomputed from scratch on
// every call, so running Backward twice on the same tape does not compound
// them. Gradients of leaves (parameters, inputs, constants) accumulate until
// they are cleared with Nudge or ZeroGrad.
func (t *GradientTape) Backward() {
	for _, n := range t.nodes {
		if n.op != nil {
			n.grad = 0
		}
	}

	t.output.grad = 1

	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := t.nodes[i]
		if n.op == nil {
			continue
		}
		n.op.Backward(n)
	}
}

// ZeroGrad clears the gradient of every node on the tape, leaves included.
func (t *GradientTape) ZeroGrad() {
	for _, n := range t.nodes {
		n.grad = 0
	}
}

// Output returns the node the tape was built from.
func (t *GradientTape) Output() *Value {
	return t.output
}

// Nodes returns the recorded nodes in topological order. The slice is shared
// with the tape and must not be modified.
func (t *GradientTape) Nodes() []*Value {
	return t.nodes
}

// Len returns the number of distinct nodes reachable from the output.
func (t *GradientTape) Len() int {
	return len(t.nodes)
}

// Leaves returns the reachable nodes that have no operation (constants,
// inputs and parameters), in topological order.
func (t *GradientTape) Leaves() []*Value {
	var leaves []*Value
	for _, n := range t.nodes {
		if n.op == nil {
			leaves = append(leaves, n)
		}
	}
	return leaves
}
