// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/Applied-Materials-Technology/sloth/scalar"
)

// NewtonConfig holds the settings of the local Newton-Raphson iterations
type NewtonConfig struct {
	NmaxIt int     // max number of iterations
	Atol   float64 // absolute tolerance on |residual|
	Rtol   float64 // tolerance on |residual| relative to the first residual
}

// SetDefault sets default values
func (o *NewtonConfig) SetDefault() {
	o.NmaxIt = 30
	o.Atol = 1e-11
	o.Rtol = 1e-8
}

// RadialReturn implements the radial return mapping for J2 viscoplasticity. The scalar
// Δp is found by a Newton-Raphson method using the residual of the flow rule. The stages
// are: Initialize, then Residual, Derivative and IterationFinalize per iteration, and
// finally StressFinalize
type RadialReturn[T any] struct {
	F    scalar.Field[T] // arithmetic
	Flow FlowRule[T]     // flow rule and hardening
	Nl   NewtonConfig    // Newton-Raphson settings
}

// NewRadialReturn returns a new return mapping solver with default Newton settings
func NewRadialReturn[T any](F scalar.Field[T], flow FlowRule[T]) (o *RadialReturn[T]) {
	o = &RadialReturn[T]{F: F, Flow: flow}
	o.Nl.SetDefault()
	return
}

// Initialize computes the yield condition σt - r_old - σy and sets cur ← old for r and εp
//  D -- elasticity tensor; not needed by isotropic J2 models
func (o *RadialReturn[T]) Initialize(s *Step[T], σt T, D [][]float64) {
	F := o.F
	s.Fy = F.Sub(F.Sub(σt, s.Old.R), o.Flow.YieldStress(s))
	s.ready = true
	s.Nit = 0
	s.Cur.R = s.Old.R
	copy(s.Cur.EpsP, s.Old.EpsP)
}

// Residual computes the residual and the partials for Derivative
func (o *RadialReturn[T]) Residual(s *Step[T], σt, Δp T) (T, Partials[T]) {
	return o.Flow.Residual(s, σt, Δp)
}

// Derivative computes d(residual)/d(Δp) using the partials returned by Residual
func (o *RadialReturn[T]) Derivative(s *Step[T], it Partials[T]) T {
	return o.Flow.Derivative(s, it)
}

// IterationFinalize sets the hardening variable corresponding to Δp
func (o *RadialReturn[T]) IterationFinalize(s *Step[T], Δp T) {
	if plastic(o.F, s) {
		s.Cur.R = o.Flow.Hardening().Value(s, Δp)
	}
}

// StressFinalize adds the plastic strain increment to εp
func (o *RadialReturn[T]) StressFinalize(s *Step[T], ΔεP []T) {
	for i := range s.Cur.EpsP {
		s.Cur.EpsP[i] = o.F.Add(s.Cur.EpsP[i], ΔεP[i])
	}
}

// Solve performs the return mapping for a given trial stress tensor. On exit, s.Cur holds
// the updated stress, plastic strain, hardening variable and effective inelastic strain
//  σtr -- trial stress (Mandel) [nsig]
//  D   -- elasticity tensor
//  Δp  -- converged scalar increment; zero if elastic
//  ΔεP -- plastic strain increment = (Δp/σt) dev(σtr)
//  Note: the stress correction is 3G (Δp/σt) dev(σtr) = (3/2) 2G ΔεP. Thus ΔεP carries the
//        direction of the flow but its equivalent norm √(2/3 ΔεP:ΔεP) is (2/3) Δp; ε̄ is
//        accumulated from Δp directly
func (o *RadialReturn[T]) Solve(s *Step[T], σtr []T, D [][]float64) (Δp T, ΔεP []T, err error) {

	// effective trial stress
	F := o.F
	dev := Dev(F, σtr)
	σt := Qeq(F, dev)
	o.Initialize(s, σt, D)
	Δp = F.Const(0)
	ΔεP = F.Zeros(len(σtr))

	// elastic update
	if !plastic(F, s) {
		Propagate(s.Cur, s.Old)
		copy(s.Cur.Sig, σtr)
		return
	}

	// Newton-Raphson
	Δp, err = o.newton(s, σt)
	if err != nil {
		return
	}
	o.IterationFinalize(s, Δp)

	// plastic strain and stress
	m := F.Div(Δp, σt)
	mσ := F.Mul(s.G3, m)
	for i := range σtr {
		ΔεP[i] = F.Mul(m, dev[i])
		s.Cur.Sig[i] = F.Sub(σtr[i], F.Mul(mσ, dev[i]))
	}
	o.StressFinalize(s, ΔεP)
	s.Cur.Pbar = F.Add(s.Old.Pbar, Δp)
	s.Cur.Dgam = Δp
	s.Cur.Loading = true
	s.Cur.D = s.Old.D
	return
}

// newton runs the Newton-Raphson iterations starting from Δp = 0
func (o *RadialReturn[T]) newton(s *Step[T], σt T) (Δp T, err error) {
	F := o.F
	Δp = F.Const(0)
	var r0 float64
	for it := 0; ; it++ {
		s.Nit = it
		res, part := o.Residual(s, σt, Δp)
		r := scalar.Abs(F, res)
		if it == 0 {
			r0 = r
		}
		finite := scalar.IsFinite(F, res)
		if finite && (r <= o.Nl.Atol || r <= o.Nl.Rtol*r0) {
			return
		}
		if !finite || it >= o.Nl.NmaxIt {
			eid, ipid, _ := identity(s)
			return Δp, &ConvergenceError{Eid: eid, Ipid: ipid, Nit: it, Scalar: F.Real(Δp), Residual: F.Real(res)}
		}
		Δp = F.Sub(Δp, F.Div(res, o.Derivative(s, part)))
		o.IterationFinalize(s, Δp)
	}
}
