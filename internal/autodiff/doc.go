// Package autodiff implements a scalar reverse-mode automatic differentiation
// engine.
//
// Architecture:
//   - Value: one scalar node (data, accumulated gradient, producing Operation)
//   - Operation: one struct per operator implementing its local derivative
//   - GradientTape: reverse topological walk applying the chain rule
//
// The operator set is fixed: Add, Sub, Mul, Pow (constant exponent), Tanh,
// Sigmoid and ReLU. Nodes are shared by pointer, so a node may feed several
// downstream operations; the tape accumulates every contribution before the
// node propagates further.
//
// Graphs are single-threaded: a backward pass mutates gradients of shared
// nodes and must not run concurrently with another pass or update on the
// same nodes.
package autodiff
