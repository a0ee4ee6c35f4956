// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"math"

	"github.com/Applied-Materials-Technology/sloth/scalar"
	"gonum.org/v1/gonum/diff/fd"
)

// DerivCheck compares the analytical d(residual)/d(Δp) with a central finite difference. The
// hardening slope is evaluated at ε̄_old + Δp so both values refer to the same function
//  old    -- state at the beginning of the step
//  σt     -- effective trial stress
//  threeG -- 3G
//  Δp     -- where the derivative is computed
//  h      -- finite difference step
// Returns isPlastic=false if the yield condition is not positive; ana and num are then 1 and 0
func DerivCheck(mdl *Model, pt *Point, old *State[float64], σt, threeG, Δt, Δp, h float64) (ana, num float64, isPlastic bool, err error) {

	// flow rule with consistent slope
	F := scalar.Real{}
	m := *mdl
	m.SlopeAt = SlopeCurrent
	flow, err := NewFlowRule[float64](F, &m)
	if err != nil {
		return
	}
	rr := NewRadialReturn[float64](F, flow)

	// step
	s := NewStep[float64](F, pt, old, old.GetCopy(), Δt, threeG)
	rr.Initialize(s, σt, nil)
	if !plastic[float64](F, s) {
		return 1, 0, false, nil
	}

	// derivatives
	_, it := rr.Residual(s, σt, Δp)
	ana = rr.Derivative(s, it)
	num = fd.Derivative(func(x float64) float64 {
		r, _ := rr.Residual(s, σt, x)
		return r
	}, Δp, &fd.Settings{Formula: fd.Central, Step: h})
	return ana, num, true, nil
}

// RelErr returns |a - b| / max(1, |b|)
func RelErr(a, b float64) float64 {
	return math.Abs(a-b) / math.Max(1, math.Abs(b))
}
