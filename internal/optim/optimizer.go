// Package optim implements in-place gradient-descent update rules.
//
// This package provides:
//   - Optimizer interface: shared contract for all update rules
//   - SGD: gradient descent with classical or Nesterov momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//
// Both optimizers support an optional L2 penalty folded into the gradient and
// an optional per-column weight-norm limit enforced after each update.
//
// An optimizer is bound to an ordered list of parameter tensors at
// construction. Apply consumes gradients in exactly that order and mutates the
// parameters in place:
//
//	w := tensor.Zeros(tensor.Shape{784, 10})
//	b := tensor.Zeros(tensor.Shape{10})
//
//	optimizer, err := optim.NewAdam([]*tensor.Tensor{w, b}, optim.AdamConfig{
//	    LR:          0.001,
//	    WeightLimit: optim.Float(3),
//	})
//	if err != nil {
//	    return err
//	}
//
//	for step := range steps {
//	    dw, db := computeGradients(w, b, batch(step))
//	    if err := optimizer.Apply([]*tensor.Tensor{dw, db}); err != nil {
//	        return err
//	    }
//	}
package optim

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/nncore/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update parameters in place based on externally computed
// gradients. An Optimizer is not safe for concurrent use.
type Optimizer interface {
	// Apply consumes one gradient per bound parameter, in construction
	// order, and updates the parameters and internal state in place.
	//
	// Gradients are read, never modified or retained. If the gradient list
	// does not match the parameters in length or shape, Apply returns an
	// error before touching any parameter or state.
	Apply(grads []*tensor.Tensor) error

	// Parameters returns the bound parameter tensors in construction order.
	Parameters() []*tensor.Tensor

	// GetLR returns the learning rate.
	GetLR() float64
}

// Stateful is implemented by optimizers whose auxiliary state can be exported
// and restored, e.g. for checkpointing with the serialization package.
type Stateful interface {
	StateDict() map[string]*tensor.Tensor
	LoadStateDict(state map[string]*tensor.Tensor) error
}

// Common errors.
var (
	ErrInvalidConfig  = errors.New("invalid optimizer config")
	ErrLengthMismatch = errors.New("gradient count does not match parameter count")
	ErrNilGradient    = errors.New("nil gradient")
	ErrNotInitialized = errors.New("optimizer not initialized: use a constructor")
	ErrStateMismatch  = errors.New("optimizer state does not match parameters")
)

// Float returns a pointer to v, for the optional fields of SGDConfig and
// AdamConfig.
//
//	cfg := optim.SGDConfig{LR: 0.1, Momentum: 0.9, L2Penalty: optim.Float(1e-4)}
func Float(v float64) *float64 {
	return &v
}

// validateParams rejects nil and duplicate parameter tensors.
func validateParams(params []*tensor.Tensor) error {
	seen := make(map[*tensor.Tensor]int, len(params))
	for i, p := range params {
		if p == nil {
			return fmt.Errorf("%w: parameter %d is nil", ErrInvalidConfig, i)
		}
		if j, ok := seen[p]; ok {
			return fmt.Errorf("%w: parameter %d is the same tensor as parameter %d", ErrInvalidConfig, i, j)
		}
		seen[p] = i
	}
	return nil
}

// validateLR requires a finite, strictly positive learning rate.
func validateLR(lr float64) error {
	if !(lr > 0) || math.IsInf(lr, 0) {
		return fmt.Errorf("%w: learning rate must be finite and > 0, got %v", ErrInvalidConfig, lr)
	}
	return nil
}

// validateOptional accepts nil or a finite non-negative value.
func validateOptional(name string, v *float64) error {
	if v == nil {
		return nil
	}
	if !(*v >= 0) || math.IsInf(*v, 0) {
		return fmt.Errorf("%w: %s must be finite and >= 0, got %v", ErrInvalidConfig, name, *v)
	}
	return nil
}

// checkGradients verifies that grads pairs one-to-one with params.
func checkGradients(params, grads []*tensor.Tensor) error {
	if len(grads) != len(params) {
		return fmt.Errorf("%w: got %d gradients for %d parameters", ErrLengthMismatch, len(grads), len(params))
	}
	for i, g := range grads {
		if g == nil {
			return fmt.Errorf("gradient %d: %w", i, ErrNilGradient)
		}
		if !g.Shape().Equal(params[i].Shape()) {
			return fmt.Errorf("gradient %d: %w", i, &tensor.ShapeError{
				Op:   "Apply",
				Want: params[i].Shape().Clone(),
				Got:  g.Shape().Clone(),
			})
		}
	}
	return nil
}

// zerosLike allocates one zero tensor per parameter.
func zerosLike(params []*tensor.Tensor) []*tensor.Tensor {
	out := make([]*tensor.Tensor, len(params))
	for i, p := range params {
		out[i] = tensor.ZerosLike(p)
	}
	return out
}

// effectiveGradient copies grad into scratch and, if an L2 penalty is set,
// adds l2 * param using the parameter's current (pre-update) value.
//
// The caller's gradient is never written.
func effectiveGradient(scratch, param, grad *tensor.Tensor, l2 *float64) (*tensor.Tensor, error) {
	if err := scratch.CopyFrom(grad); err != nil {
		return nil, err
	}
	if l2 != nil {
		if err := scratch.AddScaled(*l2, param); err != nil {
			return nil, err
		}
	}
	return scratch, nil
}
