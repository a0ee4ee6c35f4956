// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Hardening computes the isotropic hardening R(ε̄) and its slope R'(ε̄) where ε̄ = ε̄_old + Δp
type Hardening[T any] interface {
	Value(s *Step[T], Δp T) T // R(ε̄_old + Δp)
	Slope(s *Step[T], Δp T) T // R' (see SlopeAt)
}

// SlopeAt defines where the hardening slope is evaluated
type SlopeAt int

const (
	// SlopeOld evaluates R' at ε̄_old for the whole step
	SlopeOld SlopeAt = iota

	// SlopeCurrent evaluates R' at ε̄_old + Δp (consistent with R)
	SlopeCurrent
)

// TimeSpace defines external scalar callables of one argument (optionally position-aware);
// e.g. a tabulated stress vs plastic strain curve. dbf.T satisfies this interface
type TimeSpace interface {
	F(t float64, x []float64) float64 // value
	G(t float64, x []float64) float64 // first derivative
	H(t float64, x []float64) float64 // second derivative
}

// slopeStrain returns ε̄ at which the slope is evaluated
func slopeStrain[T any](F scalar.Field[T], at SlopeAt, s *Step[T], Δp T) T {
	if at == SlopeCurrent {
		return F.Add(s.Old.Pbar, Δp)
	}
	return s.Old.Pbar
}

// Voce //////////////////////////////////////////////////////////////////////////////////////

// VocePrms holds the parameters of the Voce saturation law
type VocePrms struct {
	Sat float64 // S: saturation stress
	Exp float64 // E: exponential rate
	Lin float64 // L: linear rate
}

// Init parses sat_stress, exp_rate and lin_rate; other names are ignored
func (o *VocePrms) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "sat_stress":
			o.Sat = p.V
		case "exp_rate":
			o.Exp = p.V
		case "lin_rate":
			o.Lin = p.V
		}
	}
	if o.Exp < 0 {
		return chk.Err("voce: exp_rate=%g must be non-negative", o.Exp)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o VocePrms) GetPrms() dbf.Params {
	return []*dbf.P{
		&dbf.P{N: "sat_stress", V: 100},
		&dbf.P{N: "exp_rate", V: 10},
		&dbf.P{N: "lin_rate", V: 50},
	}
}

// Voce implements R = S (1 - exp(-E ε̄)) + L ε̄. Parameters may vary spatially and are read
// from the point properties, falling back to Prms
type Voce[T any] struct {
	F    scalar.Field[T]
	Prms VocePrms
	At   SlopeAt
}

func (o *Voce[T]) prms(s *Step[T]) (S, E, L float64) {
	return s.prop("sat_stress", o.Prms.Sat), s.prop("exp_rate", o.Prms.Exp), s.prop("lin_rate", o.Prms.Lin)
}

// Value computes R(ε̄_old + Δp)
func (o *Voce[T]) Value(s *Step[T], Δp T) T {
	F := o.F
	S, E, L := o.prms(s)
	ε := F.Add(s.Old.Pbar, Δp)
	return F.Add(F.Scale(S, F.Sub(F.Const(1), F.Exp(F.Scale(-E, ε)))), F.Scale(L, ε))
}

// Slope computes R' = L + S E exp(-E ε̄)
func (o *Voce[T]) Slope(s *Step[T], Δp T) T {
	F := o.F
	S, E, L := o.prms(s)
	ε := slopeStrain(F, o.At, s, Δp)
	return F.Add(F.Const(L), F.Scale(S*E, F.Exp(F.Scale(-E, ε))))
}

// function //////////////////////////////////////////////////////////////////////////////////

// FuncHardening delegates R and R' to an external callable; e.g. a tabulated curve
type FuncHardening[T any] struct {
	F       scalar.Field[T]
	Fcn     TimeSpace // R(ε̄) with R' = Fcn.G
	Spatial bool      // pass the point position to Fcn
	At      SlopeAt
}

func (o *FuncHardening[T]) x(s *Step[T]) []float64 {
	if o.Spatial {
		return s.x()
	}
	return nil
}

// Value computes R(ε̄_old + Δp)
func (o *FuncHardening[T]) Value(s *Step[T], Δp T) T {
	ε := o.F.Add(s.Old.Pbar, Δp)
	t, x := o.F.Real(ε), o.x(s)
	return o.F.Apply(ε, o.Fcn.F(t, x), o.Fcn.G(t, x))
}

// Slope computes R' from the callable's derivative
func (o *FuncHardening[T]) Slope(s *Step[T], Δp T) T {
	ε := slopeStrain(o.F, o.At, s, Δp)
	t, x := o.F.Real(ε), o.x(s)
	return o.F.Apply(ε, o.Fcn.G(t, x), o.Fcn.H(t, x))
}
