// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 tensors consumed by the optim
// package.
//
// # Overview
//
// A Tensor is a fixed-shape, row-major float64 array. Kernels mutate their
// receiver in place and return an error instead of broadcasting when operand
// shapes differ:
//   - Element-wise: Add, Sub, Mul, Div, AddScaled, Scale, AddConst, Square, Sqrt
//   - Reductions: Norm, ColumnNorms (L2 along axis 0)
//   - Column rescale: ScaleColumns
//
// # Basic Usage
//
//	w := tensor.Zeros(tensor.Shape{784, 10})
//	g, err := tensor.FromSlice(gradValues, tensor.Shape{784, 10})
//	if err != nil {
//	    return err
//	}
//
//	if err := w.AddScaled(-0.01, g); err != nil { // w -= 0.01 * g
//	    return err
//	}
//	norms := w.ColumnNorms() // one norm per output unit
package tensor
