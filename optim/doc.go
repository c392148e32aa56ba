// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides in-place gradient-descent update rules.
//
// # Overview
//
// This package contains:
//   - SGD: gradient descent with classical or Nesterov momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface shared by both
//
// Both accept an optional L2 penalty (added to the gradient before the
// update) and an optional per-column weight-norm limit (enforced after the
// update).
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/nncore/optim"
//	    "github.com/born-ml/nncore/tensor"
//	)
//
//	func train(w, b *tensor.Tensor) error {
//	    optimizer, err := optim.NewAdam(
//	        []*tensor.Tensor{w, b},
//	        optim.AdamConfig{
//	            LR:    0.001,
//	            Betas: &[2]float64{0.9, 0.999},
//	        },
//	    )
//	    if err != nil {
//	        return err
//	    }
//
//	    for step := range 1000 {
//	        dw, db := gradients(w, b, step) // computed elsewhere
//	        if err := optimizer.Apply([]*tensor.Tensor{dw, db}); err != nil {
//	            return err
//	        }
//	    }
//	    return nil
//	}
//
// # Optimizers
//
// SGD with Nesterov momentum, L2 penalty and max-norm columns:
//
//	optimizer, err := optim.NewSGD(
//	    params,
//	    optim.SGDConfig{
//	        LR:          0.01,
//	        Momentum:    0.9,
//	        Nesterov:    true,
//	        L2Penalty:   optim.Float(1e-4),
//	        WeightLimit: optim.Float(3),
//	    },
//	)
//
// Adam (Adaptive Moment Estimation):
//
//	optimizer, err := optim.NewAdam(
//	    params,
//	    optim.AdamConfig{
//	        LR:    0.001,
//	        Betas: &[2]float64{0, 0.999}, // no first-moment averaging
//	        Eps:   optim.Float(1e-7),
//	    },
//	)
//
// # Ordering
//
// Gradients are matched to parameters by position only. Passing them in a
// different order than the parameters were given at construction is not
// detected when the shapes happen to agree.
package optim
