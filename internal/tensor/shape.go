package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// Columns splits the shape for a reduction along the first axis.
//
// rows is the length of axis 0 and cols the product of the remaining
// dimensions, so element (r, c) of the flattened view lives at r*cols+c.
//
//	(4, 3)    → rows=4, cols=3
//	(2, 3, 5) → rows=2, cols=15
//	(7)       → rows=7, cols=1
//	()        → rows=1, cols=1
func (s Shape) Columns() (rows, cols int) {
	if len(s) == 0 {
		return 1, 1
	}
	return s[0], Shape(s[1:]).NumElements()
}
