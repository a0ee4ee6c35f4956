// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// HypSinePrms holds the parameters of the hyperbolic sine flow rule
type HypSinePrms struct {
	Sy    float64 // σy: yield stress
	Alpha float64 // α: scales the hyperbolic function
	Beta  float64 // β: coefficient inside the hyperbolic function
}

// Init parses yield_stress, c_alpha and c_beta; other names are ignored
func (o *HypSinePrms) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "yield_stress":
			o.Sy = p.V
		case "c_alpha":
			o.Alpha = p.V
		case "c_beta":
			o.Beta = p.V
		}
	}
	if o.Alpha <= 0 || o.Beta <= 0 {
		return chk.Err("hyperbolic sine: c_alpha=%g and c_beta=%g must be positive", o.Alpha, o.Beta)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o HypSinePrms) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "yield_stress", V: 200},
		&dbf.P{N: "c_alpha", V: 1e-3},
		&dbf.P{N: "c_beta", V: 0.01},
	}
}

// HypSine implements the hyperbolic sine flow rule (Dunne and Petrinic)
//
//  φ = α sinh(β (σt - μ̄ Δp - R - σy))
//
type HypSine[T any] struct {
	F    scalar.Field[T]
	H    Hardening[T]
	Prms HypSinePrms
}

// Hardening returns the hardening law
func (o *HypSine[T]) Hardening() Hardening[T] { return o.H }

// YieldStress returns σy at this point
func (o *HypSine[T]) YieldStress(s *Step[T]) T {
	return o.F.Const(s.prop("yield_stress", o.Prms.Sy))
}

// Residual computes φ Δt - Δp
func (o *HypSine[T]) Residual(s *Step[T], σt, Δp T) (res T, it Partials[T]) {
	F := o.F
	if !plastic(F, s) {
		return F.Const(0), it
	}
	α, β := s.prop("c_alpha", o.Prms.Alpha), s.prop("c_beta", o.Prms.Beta)
	it.Slope = o.H.Slope(s, Δp)
	over := F.Sub(F.Sub(F.Sub(σt, F.Mul(s.G3, Δp)), o.H.Value(s, Δp)), o.YieldStress(s))
	x := F.Scale(β, over)
	φ := F.Scale(α, F.Sinh(x))
	it.DφdR = F.Scale(-α*β, F.Cosh(x))
	it.Dφdp = F.Mul(s.G3, it.DφdR)
	it.Plastic = true
	res = F.Sub(F.Scale(s.Dt, φ), Δp)
	return
}

// Derivative computes d(residual)/d(Δp)
func (o *HypSine[T]) Derivative(s *Step[T], it Partials[T]) T {
	return it.derivative(o.F, s.Dt)
}
