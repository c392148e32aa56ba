package tensor

import (
	"fmt"

	"github.com/born-ml/nncore/internal/parallel"
)

// Zeros creates a tensor filled with zeros.
//
// Panics if the shape has a non-positive dimension.
//
// Example:
//
//	t := tensor.Zeros(Shape{3, 4})
func Zeros(shape Shape) *Tensor {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	return &Tensor{
		shape: shape.Clone(),
		data:  make([]float64, shape.NumElements()),
	}
}

// ZerosLike creates a zero tensor with the same shape as t.
func ZerosLike(t *Tensor) *Tensor {
	return Zeros(t.shape)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(Shape{3, 3}, 3.14)
func Full(shape Shape, value float64) *Tensor {
	t := Zeros(shape)
	parallel.For(len(t.data), func(i int) {
		t.data[i] = value
	}, parallelCfg)
	return t
}

// Scalar creates a 0-D tensor holding v.
func Scalar(v float64) *Tensor {
	return &Tensor{shape: Shape{}, data: []float64{v}}
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	t := Zeros(shape)
	copy(t.data, data)
	return t, nil
}

// Wrap creates a tensor that uses data as its storage without copying.
//
// Later writes through either the slice or the tensor are visible to both.
func Wrap(data []float64, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	return &Tensor{shape: shape.Clone(), data: data}, nil
}
