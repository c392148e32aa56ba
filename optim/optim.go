// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/nncore/internal/optim"
	"github.com/born-ml/nncore/internal/tensor"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Stateful is implemented by optimizers that can export and restore state.
type Stateful = optim.Stateful

// Errors returned by constructors and Apply.
var (
	ErrInvalidConfig  = optim.ErrInvalidConfig
	ErrLengthMismatch = optim.ErrLengthMismatch
	ErrNilGradient    = optim.ErrNilGradient
	ErrNotInitialized = optim.ErrNotInitialized
	ErrStateMismatch  = optim.ErrStateMismatch
)

// Float returns a pointer to v for optional config fields.
func Float(v float64) *float64 {
	return optim.Float(v)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	w := tensor.Zeros(tensor.Shape{784, 10})
//	optimizer, err := optim.NewSGD(
//	    []*tensor.Tensor{w},
//	    optim.SGDConfig{
//	        LR:       0.01,
//	        Momentum: 0.9,
//	    },
//	)
func NewSGD(params []*tensor.Tensor, config SGDConfig) (*SGD, error) {
	return optim.NewSGD(params, config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	w := tensor.Zeros(tensor.Shape{784, 10})
//	optimizer, err := optim.NewAdam(
//	    []*tensor.Tensor{w},
//	    optim.AdamConfig{
//	        LR:    0.001,
//	        Betas: &[2]float64{0.9, 0.999},
//	        Eps:   optim.Float(1e-8),
//	    },
//	)
func NewAdam(params []*tensor.Tensor, config AdamConfig) (*Adam, error) {
	return optim.NewAdam(params, config)
}

// Constraints

// ClipColumnNorms rescales every column of param whose L2 norm exceeds limit
// down to limit, and returns how many columns were rescaled.
func ClipColumnNorms(param *tensor.Tensor, limit float64) (int, error) {
	return optim.ClipColumnNorms(param, limit)
}

// Checkpoints

// MergeStateDicts combines several state dicts under distinct prefixes.
func MergeStateDicts(parts map[string]map[string]*tensor.Tensor) map[string]*tensor.Tensor {
	return optim.MergeStateDicts(parts)
}

// SplitStateDict extracts one prefix from a merged state dict.
func SplitStateDict(merged map[string]*tensor.Tensor, prefix string) map[string]*tensor.Tensor {
	return optim.SplitStateDict(merged, prefix)
}
