// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/Applied-Materials-Technology/sloth/scalar"

// FlowRule implements a viscoplastic flow rule φ(σt, Δp) integrated with backward Euler:
//
//  residual(Δp) = φ(σt - μ̄ Δp, R(Δp)) Δt - Δp
//
// Residual returns the partials needed by Derivative, evaluated at the same Δp. Thus, the
// caller must pass the bundle returned by Residual to Derivative
type FlowRule[T any] interface {
	Residual(s *Step[T], σt, Δp T) (T, Partials[T]) // residual and partials at Δp
	Derivative(s *Step[T], it Partials[T]) T        // d(residual)/d(Δp)
	Hardening() Hardening[T]                        // hardening law
	YieldStress(s *Step[T]) T                       // σy at this point
}

// Partials holds the derivatives of φ computed together with the residual
type Partials[T any] struct {
	Dφdp    T    // ∂φ/∂Δp with R fixed
	DφdR    T    // ∂φ/∂R
	Slope   T    // R'
	Plastic bool // the partials were computed (yield condition > 0)
}

// derivative assembles ∂φ/∂Δp Δt + R' ∂φ/∂R Δt - 1. It returns 1 for elastic steps
func (o Partials[T]) derivative(F scalar.Field[T], Δt float64) T {
	if !o.Plastic {
		return F.Const(1)
	}
	return F.Sub(F.Scale(Δt, F.Add(o.Dφdp, F.Mul(o.Slope, o.DφdR))), F.Const(1))
}

// plastic tells whether the step has been initialised with a positive yield condition.
// It panics if the yield condition has not been computed in this step
func plastic[T any](F scalar.Field[T], s *Step[T]) bool {
	if !s.ready {
		panicUninitialised()
	}
	return F.Real(s.Fy) > 0
}
