// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// DamageFuzzyTol is the tolerance used when checking 0 ≤ D ≤ 1
const DamageFuzzyTol = 1e-12

// KRPrms holds the parameters of the power law damage model
type KRPrms struct {
	A    float64 // a: stress scaling parameter
	Phi  float64 // φ: power of previous damage
	Zeta float64 // ζ: stress power
}

// Init parses a, phi and zeta. Unknown names are errors
func (o *KRPrms) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "a":
			o.A = p.V
		case "phi":
			o.Phi = p.V
		case "zeta":
			o.Zeta = p.V
		default:
			return chk.Err("damage: parameter named %q is incorrect", p.N)
		}
	}
	if o.A <= 0 {
		return chk.Err("damage: a=%g must be positive", o.A)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o KRPrms) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "a", V: 1000},
		&dbf.P{N: "phi", V: 2},
		&dbf.P{N: "zeta", V: 3},
	}
}

// KRDamage integrates the damage index with an explicit Euler step of
//
//  dD/dt = (σvm / a)^ζ (1 - D)^(-φ)
//
type KRDamage[T any] struct {
	F    scalar.Field[T]
	Prms KRPrms
}

// NewKRDamage returns a new damage model
func NewKRDamage[T any](F scalar.Field[T], prms dbf.Params) (o *KRDamage[T], err error) {
	o = &KRDamage[T]{F: F}
	err = o.Prms.Init(prms)
	return
}

// Rate computes dD/dt for a given stress tensor and damage index
func (o *KRDamage[T]) Rate(σ []T, D T) T {
	F := o.F
	vm := Qeq(F, Dev(F, σ))
	a := F.Const(1)
	if o.Prms.Zeta != 0 {
		if o.Prms.Zeta > 0 && F.Real(vm) == 0 {
			return F.Const(0)
		}
		a = F.Pow(F.Scale(1.0/o.Prms.A, vm), o.Prms.Zeta)
	}
	b := F.Pow(F.Sub(F.Const(1), D), -o.Prms.Phi)
	return F.Mul(a, b)
}

// Compute returns D_new = D_old + Δt dD/dt(σ, D_old). An error is returned if D_new ∉ [0,1]
func (o *KRDamage[T]) Compute(σ []T, Dold T, Δt float64) (Dnew T, err error) {
	F := o.F
	Dnew = F.Add(Dold, F.Scale(Δt, o.Rate(σ, Dold)))
	if v := F.Real(Dnew); !(v >= -DamageFuzzyTol && v <= 1+DamageFuzzyTol) {
		err = &DamageError{Eid: -1, Ipid: -1, Value: v}
	}
	return
}

// Update computes s.Cur.D from s.Cur.Sig and s.Old.D
func (o *KRDamage[T]) Update(s *Step[T]) (err error) {
	s.Cur.D, err = o.Compute(s.Cur.Sig, s.Old.D, s.Dt)
	if e, ok := err.(*DamageError); ok {
		e.Eid, e.Ipid, e.X = identity(s)
	}
	return
}
