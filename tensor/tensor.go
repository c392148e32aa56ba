// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/nncore/internal/tensor"
)

// Tensor is a fixed-shape, row-major float64 array.
type Tensor = tensor.Tensor

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// ShapeError reports the operation and shapes of a rejected operand.
type ShapeError = tensor.ShapeError

// ErrShapeMismatch is matched by errors.Is for every *ShapeError.
var ErrShapeMismatch = tensor.ErrShapeMismatch

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 4})
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// ZerosLike creates a zero tensor with the same shape as t.
func ZerosLike(t *Tensor) *Tensor {
	return tensor.ZerosLike(t)
}

// Full creates a tensor filled with value.
func Full(shape Shape, value float64) *Tensor {
	return tensor.Full(shape, value)
}

// Scalar creates a 0-D tensor holding v.
func Scalar(v float64) *Tensor {
	return tensor.Scalar(v)
}

// FromSlice creates a tensor from a copy of data.
//
// Example:
//
//	t, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Wrap creates a tensor backed by data without copying.
//
// Useful to hand existing model weights to an optimizer: updates made by the
// optimizer are then visible through the original slice.
func Wrap(data []float64, shape Shape) (*Tensor, error) {
	return tensor.Wrap(data, shape)
}
