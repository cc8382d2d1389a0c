// Copyright 2026 The housefit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the optimizers that fit the house-price line.
//
// # Overview
//
// This package contains:
//   - GD: fixed-count batch gradient descent
//   - BFGS: fixed-count damped quasi-Newton with an inverse-Hessian estimate
//   - Optimizer interface and the Method enum used to pick one
//
// # Basic Usage
//
//	import (
//	    "github.com/Virtuozs/interactive-optimization-house-price-prediction/optim"
//	)
//
//	func main() {
//	    opt, err := optim.New(optim.QuasiNewton, optim.Config{
//	        LR:         0.5,
//	        Iterations: 30,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // x and y must already be standardized.
//	    history, err := opt.Run(optim.Params{}, x, y)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for step, e := range history {
//	        fmt.Printf("%3d  w=%.4f  b=%.4f  loss=%.6f\n", step, e.W, e.B, e.Loss)
//	    }
//	}
//
// # Optimizers
//
// Gradient descent:
//
//	w = w - lr * dL/dw
//	b = b - lr * dL/db
//
// BFGS (lr multiplies the quasi-Newton direction; there is no line search):
//
//	θ' = θ - lr * H⁻¹ g
//	H⁻¹ = (I - ρ s ykᵀ) H⁻¹ (I - ρ yk sᵀ) + ρ s sᵀ   if yk·s > 1e-8
//
// Both run exactly Config.Iterations steps and record one Entry per step.
package optim
