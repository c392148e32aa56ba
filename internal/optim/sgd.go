package optim

import (
	"fmt"

	"github.com/born-ml/nncore/internal/tensor"
)

// SGD implements gradient descent with momentum.
//
// Update rule, per parameter θ with gradient g and velocity v:
//
//	g = g + l2 * θ                 // only if L2Penalty is set, pre-update θ
//	v = momentum * v - lr * g
//	θ = θ + v                      // classical momentum
//	θ = θ + momentum * v - lr * g  // Nesterov lookahead
//
// followed by the per-column max-norm constraint if WeightLimit is set.
// Velocities start at zero, so with Momentum 0 this is plain gradient
// descent.
//
// Example:
//
//	optimizer, err := optim.NewSGD(params, optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	    Nesterov: true,
//	})
type SGD struct {
	params      []*tensor.Tensor
	lr          float64
	momentum    float64
	nesterov    bool
	l2Penalty   *float64
	weightLimit *float64
	velocities  []*tensor.Tensor
	scratch     []*tensor.Tensor // Gradient copies, adjusted for L2 without touching caller data
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR          float64  // Learning rate (required, > 0)
	Momentum    float64  // Momentum factor (range: [0, 1))
	Nesterov    bool     // Use Nesterov lookahead (default: false)
	L2Penalty   *float64 // L2 coefficient added to the gradient (default: disabled)
	WeightLimit *float64 // Max L2 norm per column (default: disabled)
}

// NewSGD creates a new SGD optimizer bound to params.
//
// One zero velocity tensor is allocated per parameter. Returns
// ErrInvalidConfig for a nil or repeated parameter, a non-positive learning
// rate, momentum outside [0, 1), or a negative L2Penalty/WeightLimit.
func NewSGD(params []*tensor.Tensor, config SGDConfig) (*SGD, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	if err := validateLR(config.LR); err != nil {
		return nil, err
	}
	if !(config.Momentum >= 0 && config.Momentum < 1) {
		return nil, fmt.Errorf("%w: momentum must be in [0, 1), got %v", ErrInvalidConfig, config.Momentum)
	}
	if err := validateOptional("l2 penalty", config.L2Penalty); err != nil {
		return nil, err
	}
	if err := validateOptional("weight limit", config.WeightLimit); err != nil {
		return nil, err
	}

	return &SGD{
		params:      append([]*tensor.Tensor(nil), params...),
		lr:          config.LR,
		momentum:    config.Momentum,
		nesterov:    config.Nesterov,
		l2Penalty:   copyOptional(config.L2Penalty),
		weightLimit: copyOptional(config.WeightLimit),
		velocities:  zerosLike(params),
		scratch:     zerosLike(params),
	}, nil
}

// Apply performs a single optimization step.
//
// grads[i] must be the gradient of the loss with respect to the i-th bound
// parameter. All gradients are validated before any parameter is updated.
func (s *SGD) Apply(grads []*tensor.Tensor) error {
	if s.velocities == nil {
		return ErrNotInitialized
	}
	if err := checkGradients(s.params, grads); err != nil {
		return err
	}

	for i, param := range s.params {
		if err := s.updateParameter(param, grads[i], s.velocities[i], s.scratch[i]); err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}
	}
	return nil
}

// updateParameter performs the momentum update for a single parameter.
func (s *SGD) updateParameter(param, grad, velocity, scratch *tensor.Tensor) error {
	g, err := effectiveGradient(scratch, param, grad, s.l2Penalty)
	if err != nil {
		return err
	}

	// v = momentum * v - lr * g
	velocity.Scale(s.momentum)
	if err := velocity.AddScaled(-s.lr, g); err != nil {
		return err
	}

	if s.nesterov {
		// θ += momentum * v - lr * g
		if err := param.AddScaled(s.momentum, velocity); err != nil {
			return err
		}
		if err := param.AddScaled(-s.lr, g); err != nil {
			return err
		}
	} else if err := param.Add(velocity); err != nil {
		return err
	}

	return applyWeightLimit(param, s.weightLimit)
}

// Parameters returns the bound parameters in construction order.
func (s *SGD) Parameters() []*tensor.Tensor {
	return s.params
}

// GetLR returns the learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// GetMomentum returns the momentum factor.
func (s *SGD) GetMomentum() float64 {
	return s.momentum
}

// Velocity returns the velocity buffer of parameter i.
//
// The returned tensor is live optimizer state; modifying it changes the next
// update.
func (s *SGD) Velocity(i int) *tensor.Tensor {
	return s.velocities[i]
}

// copyOptional detaches an optional value from the caller's variable.
func copyOptional(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return Float(*v)
}
