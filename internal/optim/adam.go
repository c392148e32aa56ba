package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/nncore/internal/parallel"
	"github.com/born-ml/nncore/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// Update rule, with one timestep t shared by every parameter:
//
//	t = t + 1                                         // once per Apply
//	g = g + l2 * θ                                    // only if L2Penalty is set
//	m = beta1 * m + (1-beta1) * g                     // First moment
//	v = beta2 * v + (1-beta2) * g²                    // Second moment
//	m_hat = m / (1 - beta1^t)                         // Bias correction
//	v_hat = v / (1 - beta2^t)                         // Bias correction
//	θ = θ - lr * m_hat / (eps + sqrt(v_hat))          // Parameter update
//
// followed by the per-column max-norm constraint if WeightLimit is set.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	optimizer, err := optim.NewAdam(params, optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: &[2]float64{0.9, 0.999},
//	    Eps:   optim.Float(1e-8),
//	})
type Adam struct {
	params      []*tensor.Tensor
	lr          float64
	beta1       float64
	beta2       float64
	eps         float64
	l2Penalty   *float64
	weightLimit *float64
	t           int              // Timestep for bias correction
	m           []*tensor.Tensor // First moment estimates
	v           []*tensor.Tensor // Second moment estimates
	scratch     []*tensor.Tensor
	parallel    parallel.Config
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR          float64    // Learning rate (required, > 0)
	Betas       *[2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps         *float64    // Term added to sqrt(v_hat) for numerical stability (default: 1e-8)
	L2Penalty   *float64    // L2 coefficient added to the gradient (default: disabled)
	WeightLimit *float64    // Max L2 norm per column (default: disabled)
}

// Default Adam hyperparameters.
const (
	DefaultBeta1 = 0.9
	DefaultBeta2 = 0.999
	DefaultEps   = 1e-8
)

// NewAdam creates a new Adam optimizer bound to params.
//
// Nil Betas or Eps take their defaults:
//   - Betas: [0.9, 0.999]
//   - Eps: 1e-8
//
// Explicit values are used as given, so a beta of 0 disables that moving
// average.
//
// Two zero moment tensors are allocated per parameter and the timestep
// starts at 0.
func NewAdam(params []*tensor.Tensor, config AdamConfig) (*Adam, error) {
	// Set defaults
	betas := [2]float64{DefaultBeta1, DefaultBeta2}
	if config.Betas != nil {
		betas = *config.Betas
	}
	eps := DefaultEps
	if config.Eps != nil {
		eps = *config.Eps
	}

	if err := validateParams(params); err != nil {
		return nil, err
	}
	if err := validateLR(config.LR); err != nil {
		return nil, err
	}
	for i, beta := range betas {
		if !(beta >= 0 && beta < 1) {
			return nil, fmt.Errorf("%w: beta%d must be in [0, 1), got %v", ErrInvalidConfig, i+1, beta)
		}
	}
	if !(eps > 0) || math.IsInf(eps, 0) {
		return nil, fmt.Errorf("%w: eps must be finite and > 0, got %v", ErrInvalidConfig, eps)
	}
	if err := validateOptional("l2 penalty", config.L2Penalty); err != nil {
		return nil, err
	}
	if err := validateOptional("weight limit", config.WeightLimit); err != nil {
		return nil, err
	}

	return &Adam{
		params:      append([]*tensor.Tensor(nil), params...),
		lr:          config.LR,
		beta1:       betas[0],
		beta2:       betas[1],
		eps:         eps,
		l2Penalty:   copyOptional(config.L2Penalty),
		weightLimit: copyOptional(config.WeightLimit),
		t:           0,
		m:           zerosLike(params),
		v:           zerosLike(params),
		scratch:     zerosLike(params),
		parallel:    parallel.DefaultConfig(),
	}, nil
}

// Apply performs a single optimization step using Adam algorithm.
//
// Applies Adam update to all parameters:
//  1. Increment the shared timestep
//  2. Update biased first moment estimate
//  3. Update biased second moment estimate
//  4. Compute bias-corrected moment estimates
//  5. Update parameters and enforce the weight limit
//
// If the gradients do not match the parameters, the timestep is not advanced.
func (a *Adam) Apply(grads []*tensor.Tensor) error {
	if a.m == nil {
		return ErrNotInitialized
	}
	if err := checkGradients(a.params, grads); err != nil {
		return err
	}

	// Increment timestep
	a.t++

	// Compute bias correction factors
	// bias_correction1 = 1 - beta1^t
	// bias_correction2 = 1 - beta2^t
	biasCorrection1 := 1 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1 - math.Pow(a.beta2, float64(a.t))

	for i, param := range a.params {
		g, err := effectiveGradient(a.scratch[i], param, grads[i], a.l2Penalty)
		if err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}

		a.updateParameter(param, g, a.m[i], a.v[i], biasCorrection1, biasCorrection2)

		if err := applyWeightLimit(param, a.weightLimit); err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}
	}
	return nil
}

// updateParameter performs Adam update for a single parameter.
//
// All four tensors have the same shape; checkGradients guarantees it for the
// gradient and construction guarantees it for the moments.
func (a *Adam) updateParameter(param, grad, m, v *tensor.Tensor, biasCorrection1, biasCorrection2 float64) {
	paramData := param.Data()
	gradData := grad.Data()
	mData := m.Data()
	vData := v.Data()

	parallel.ForRange(len(paramData), func(start, end int) {
		for i := start; i < end; i++ {
			g := gradData[i]

			mData[i] = a.beta1*mData[i] + (1-a.beta1)*g
			vData[i] = a.beta2*vData[i] + (1-a.beta2)*g*g

			mHat := mData[i] / biasCorrection1
			vHat := vData[i] / biasCorrection2

			paramData[i] -= a.lr * mHat / (a.eps + math.Sqrt(vHat))
		}
	}, a.parallel)
}

// Parameters returns the bound parameters in construction order.
func (a *Adam) Parameters() []*tensor.Tensor {
	return a.params
}

// GetLR returns the learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// GetBetas returns the moment decay rates.
func (a *Adam) GetBetas() (beta1, beta2 float64) {
	return a.beta1, a.beta2
}

// GetTimestep returns the current timestep.
//
// It equals the number of successful Apply calls since construction (or the
// value restored by LoadStateDict).
func (a *Adam) GetTimestep() int {
	return a.t
}

// Moments returns the first and second moment buffers of parameter i.
func (a *Adam) Moments(i int) (m, v *tensor.Tensor) {
	return a.m[i], a.v[i]
}
