// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// PowerLawPrms holds the parameters of the Perzyna and Peric flow rules
type PowerLawPrms struct {
	Sy  float64 // σy: yield stress
	N   float64 // n: power law exponent
	Eta float64 // η: viscosity / drag stress coefficient
}

// Init parses yield_stress, n and eta; other names are ignored
func (o *PowerLawPrms) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "yield_stress":
			o.Sy = p.V
		case "n":
			o.N = p.V
		case "eta":
			o.Eta = p.V
		}
	}
	if o.N <= 0 || o.Eta <= 0 {
		return chk.Err("power law: n=%g and eta=%g must be positive", o.N, o.Eta)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o PowerLawPrms) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "yield_stress", V: 100},
		&dbf.P{N: "n", V: 5},
		&dbf.P{N: "eta", V: 50},
	}
}

// powerLaw holds the data shared by the power law flow rules. With
//
//  xflow = (σt - μ̄ Δp) / (R + σy) [- 1]
//
// the cached partials are
//
//  ∂φ/∂Δp = -μ̄ η n / (R + σy) xflowⁿ⁻¹
//  ∂φ/∂R  = -η n (σt - μ̄ Δp) / (R + σy)² xflowⁿ⁻¹
//
type powerLaw[T any] struct {
	F    scalar.Field[T]
	H    Hardening[T]
	Prms PowerLawPrms
}

// Hardening returns the hardening law
func (o *powerLaw[T]) Hardening() Hardening[T] { return o.H }

// YieldStress returns σy at this point
func (o *powerLaw[T]) YieldStress(s *Step[T]) T {
	return o.F.Const(s.prop("yield_stress", o.Prms.Sy))
}

// Derivative computes d(residual)/d(Δp)
func (o *powerLaw[T]) Derivative(s *Step[T], it Partials[T]) T {
	return it.derivative(o.F, s.Dt)
}

// eval computes the residual for the flow potential given by phi(xflow, ratio); shift is
// subtracted from the stress ratio to obtain xflow
func (o *powerLaw[T]) eval(s *Step[T], σt, Δp T, shift float64, phi func(η, n float64, ratio, xflow T) T) (res T, it Partials[T]) {
	F := o.F
	if !plastic(F, s) {
		return F.Const(0), it
	}
	η, n := s.prop("eta", o.Prms.Eta), s.prop("n", o.Prms.N)
	it.Slope = o.H.Slope(s, Δp)
	σe := F.Sub(σt, F.Mul(s.G3, Δp))
	den := F.Add(o.H.Value(s, Δp), o.YieldStress(s))
	ratio := F.Div(σe, den)
	xflow := F.Sub(ratio, F.Const(shift))
	pw := F.Pow(xflow, n-1)
	it.Dφdp = F.Mul(F.Div(F.Scale(-η*n, s.G3), den), pw)
	it.DφdR = F.Mul(F.Div(F.Scale(-η*n, σe), F.Mul(den, den)), pw)
	it.Plastic = true
	res = F.Sub(F.Scale(s.Dt, phi(η, n, ratio, xflow)), Δp)
	return
}

// Perzyna implements the Perzyna power law
//
//  φ = η ((σt - μ̄ Δp) / (R + σy) - 1)ⁿ
//
type Perzyna[T any] struct {
	powerLaw[T]
}

// NewPerzyna returns a new Perzyna flow rule
func NewPerzyna[T any](F scalar.Field[T], h Hardening[T], prms PowerLawPrms) *Perzyna[T] {
	return &Perzyna[T]{powerLaw[T]{F: F, H: h, Prms: prms}}
}

// Residual computes φ Δt - Δp
func (o *Perzyna[T]) Residual(s *Step[T], σt, Δp T) (T, Partials[T]) {
	return o.eval(s, σt, Δp, 1, func(η, n float64, ratio, xflow T) T {
		return o.F.Scale(η, o.F.Pow(xflow, n))
	})
}

// Peric implements the Peric power law
//
//  φ = η (((σt - μ̄ Δp) / (R + σy))ⁿ - 1)
//
type Peric[T any] struct {
	powerLaw[T]
}

// NewPeric returns a new Peric flow rule
func NewPeric[T any](F scalar.Field[T], h Hardening[T], prms PowerLawPrms) *Peric[T] {
	return &Peric[T]{powerLaw[T]{F: F, H: h, Prms: prms}}
}

// Residual computes φ Δt - Δp
func (o *Peric[T]) Residual(s *Step[T], σt, Δp T) (T, Partials[T]) {
	return o.eval(s, σt, Δp, 0, func(η, n float64, ratio, xflow T) T {
		return o.F.Scale(η, o.F.Sub(o.F.Pow(ratio, n), o.F.Const(1)))
	})
}
