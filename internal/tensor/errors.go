package tensor

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned (wrapped in a *ShapeError) when the operands of
// an element-wise operation do not have identical shapes.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeError describes which operation rejected which shapes.
type ShapeError struct {
	Op   string // Operation name (e.g., "AddScaled")
	Want Shape  // Shape of the receiver
	Got  Shape  // Shape of the operand
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v: want %v, got %v", e.Op, ErrShapeMismatch, e.Want, e.Got)
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// checkShape returns a *ShapeError unless a and b have the same shape.
func checkShape(op string, a, b *Tensor) error {
	if !a.shape.Equal(b.shape) {
		return &ShapeError{Op: op, Want: a.shape.Clone(), Got: b.shape.Clone()}
	}
	return nil
}
