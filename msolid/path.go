// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Path holds a strain path followed by one integration point
type Path struct {
	Deps [][]float64 // Δε: strain increments (Mandel) [ninc][nsig]
	Dt   []float64   // Δt: time increments [ninc]
}

// Ninc returns the number of increments
func (o Path) Ninc() int { return len(o.Dt) }

// Check checks the dimensions of this path
func (o Path) Check(nsig int) (err error) {
	if len(o.Deps) != len(o.Dt) {
		return chk.Err("path: number of strain increments (%d) must be equal to number of time increments (%d)", len(o.Deps), len(o.Dt))
	}
	for i, Δε := range o.Deps {
		if len(Δε) != nsig {
			return chk.Err("path: strain increment %d must have %d components. %d is incorrect", i, nsig, len(Δε))
		}
		if o.Dt[i] < 0 {
			return chk.Err("path: time increment %d must not be negative. Δt=%g is incorrect", i, o.Dt[i])
		}
	}
	return
}

// Append adds one increment
func (o *Path) Append(Δε []float64, Δt float64) {
	o.Deps = append(o.Deps, utl.GetCopy(Δε))
	o.Dt = append(o.Dt, Δt)
}

// SetRate sets a path with constant strain rate
//  rate -- dε/dt (Mandel) [nsig]
func (o *Path) SetRate(rate []float64, Δt float64, ninc int) (err error) {
	if ninc < 1 || Δt <= 0 {
		return chk.Err("path: ninc=%d and Δt=%g must be positive", ninc, Δt)
	}
	o.Deps, o.Dt = nil, nil
	Δε := make([]float64, len(rate))
	for i, v := range rate {
		Δε[i] = v * Δt
	}
	for k := 0; k < ninc; k++ {
		o.Append(Δε, Δt)
	}
	return
}

// SetStrains sets a path from total strains at given times
//  eps   -- total strains (Mandel) [npts][nsig]; eps[0] is the initial strain
//  times -- times [npts]
func (o *Path) SetStrains(eps [][]float64, times []float64) (err error) {
	if len(eps) != len(times) || len(eps) < 2 {
		return chk.Err("path: at least two points with strains and times are required")
	}
	o.Deps, o.Dt = nil, nil
	for k := 1; k < len(eps); k++ {
		if len(eps[k]) != len(eps[0]) {
			return chk.Err("path: all strains must have the same number of components")
		}
		Δε := make([]float64, len(eps[k]))
		for i := range Δε {
			Δε[i] = eps[k][i] - eps[k-1][i]
		}
		o.Append(Δε, times[k]-times[k-1])
	}
	return o.Check(len(eps[0]))
}

// UniaxialRate returns the Mandel strain rate of an isochoric uniaxial extension along x
// with rate edot; i.e. {edot, -edot/2, -edot/2, 0...}
func UniaxialRate(ndim int, edot float64) (rate []float64) {
	rate = make([]float64, 2*ndim)
	rate[0] = edot
	rate[1] = -edot / 2.0
	rate[2] = -edot / 2.0
	return
}
