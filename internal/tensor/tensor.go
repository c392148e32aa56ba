// Package tensor provides the dense float64 tensor used as parameters,
// gradients and optimizer state.
//
// A Tensor owns a flat row-major []float64 and a fixed Shape. Every kernel in
// this package mutates its receiver in place and returns an error instead of
// broadcasting when operand shapes differ.
//
// The element-wise set (Add, Sub, Mul, Div, Square, Sqrt, AddConst, Norm) is
// the general arithmetic surface offered to callers composing their own
// update rules; the built-in optimizers use only a subset of it.
package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a fixed-shape, row-major float64 array.
//
// Example:
//
//	w := tensor.Zeros(tensor.Shape{784, 10})
//	g, _ := tensor.FromSlice(grads, tensor.Shape{784, 10})
//	_ = w.AddScaled(-0.01, g) // w -= 0.01 * g
type Tensor struct {
	shape Shape
	data  []float64
}

// Shape returns the tensor's shape.
//
// The returned slice must not be modified.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns the underlying storage.
//
// Writes through the returned slice are visible to every holder of t; this is
// how optimizers update parameters in place.
func (t *Tensor) Data() []float64 {
	return t.data
}

// Clone returns a deep copy of t.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Tensor{shape: t.shape.Clone(), data: data}
}

// CopyFrom overwrites t's values with src's values.
func (t *Tensor) CopyFrom(src *Tensor) error {
	if err := checkShape("CopyFrom", t, src); err != nil {
		return err
	}
	copy(t.data, src.data)
	return nil
}

// String returns a compact description, eliding data beyond eight elements.
func (t *Tensor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tensor%v[", []int(t.shape))
	for i, v := range t.data {
		if i == 8 {
			fmt.Fprintf(&b, " ...(%d more)", len(t.data)-8)
			break
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%g", v)
	}
	b.WriteByte(']')
	return b.String()
}
