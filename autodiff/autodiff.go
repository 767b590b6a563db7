// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Every Value records the operation that produced it. Calling Backward on a
// result walks the graph in reverse topological order and accumulates
// d(result)/d(node) into each node's gradient, visiting every node once no
// matter how many paths lead to it.
//
// Example:
//
//	import "github.com/born-ml/scalargrad/autodiff"
//
//	func main() {
//	    x := autodiff.NewValue(2, "x")
//	    w := autodiff.NewValue(-3, "w")
//	    y := x.Mul(w).Add(autodiff.NewValue(10, "b")).Tanh()
//	    y.Backward()
//	    fmt.Println(x.Grad(), w.Grad())
//	}
package autodiff

import (
	"github.com/born-ml/scalargrad/internal/autodiff"
)

// Value is a scalar node in the computation graph.
type Value = autodiff.Value

// NewValue creates a constant (leaf) value.
func NewValue(data float64, label string) *Value {
	return autodiff.NewValue(data, label)
}

// Constants wraps each number in a constant Value labelled prefix0, prefix1, ...
func Constants(prefix string, data ...float64) []*Value {
	return autodiff.Constants(prefix, data...)
}

// Sum folds values with Add.
func Sum(values ...*Value) *Value {
	return autodiff.Sum(values...)
}

// Scale returns v multiplied by the constant k.
func Scale(v *Value, k float64) *Value {
	return autodiff.Scale(v, k)
}

// OpKind identifies the operation that produced a Value.
type OpKind = autodiff.OpKind

// Operation kinds.
const (
	OpConstant = autodiff.OpConstant
	OpAdd      = autodiff.OpAdd
	OpSub      = autodiff.OpSub
	OpMul      = autodiff.OpMul
	OpPow      = autodiff.OpPow
	OpTanh     = autodiff.OpTanh
	OpSigmoid  = autodiff.OpSigmoid
	OpReLU     = autodiff.OpReLU
)

// Operation is the record of how a Value was computed.
type Operation = autodiff.Operation

// GradientTape is the reverse-topological schedule of a backward pass.
type GradientTape = autodiff.GradientTape

// NewGradientTape orders every node reachable from output.
func NewGradientTape(output *Value) *GradientTape {
	return autodiff.NewGradientTape(output)
}

// Backward backpropagates from output and returns the tape it used.
func Backward(output *Value) *GradientTape {
	return autodiff.Backward(output)
}
