// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"context"
	"errors"

	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"go.uber.org/zap"
)

// Driver runs one integration point along a strain path. Each increment computes the elastic
// predictor, performs the return mapping and then updates the damage index
type Driver[T any] struct {

	// input
	F      scalar.Field[T]  // arithmetic
	Pt     Point            // integration point
	Elast  *SmallElasticity // elastic predictor
	Solver *RadialReturn[T] // return mapping
	Damage *KRDamage[T]     // damage model; may be nil

	// settings
	DvgCtrl bool        // divergence control: restore state and halve Δt if Newton fails
	NdvgMax int         // max number of continued divergence
	DtMin   float64     // minimum Δt
	Seed    []float64   // derivative channel of the strain increments (dual numbers) [nsig]
	Verbose bool        // show messages
	Log     *zap.Logger // logger

	// state
	Old *State[T] // last converged state
	Cur *State[T] // state being computed
	T   float64   // time

	// results
	Res  []*State[T] // converged states [ninc+1]
	Eps  [][]T       // total strains [ninc+1][nsig]
	Nit  int         // total number of Newton iterations
	Ncut int         // number of step cuts due to divergence

	eps []T // current total strain
}

// Init initialises driver
func (o *Driver[T]) Init(F scalar.Field[T], pt Point, elast *SmallElasticity, solver *RadialReturn[T], damage *KRDamage[T]) {
	o.F = F
	o.Pt = pt
	o.Elast = elast
	o.Solver = solver
	o.Damage = damage
	o.NdvgMax = 20
	o.DtMin = 1e-8
	o.Verbose = chk.Verbose
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	o.Reset()
}

// Reset sets the first visit state: all history variables are zero
func (o *Driver[T]) Reset() {
	nsig := o.Elast.Nsig
	o.Old = NewState[T](nsig)
	o.Cur = NewState[T](nsig)
	o.eps = o.F.Zeros(nsig)
	o.T = 0
	o.Res = []*State[T]{o.Old.GetCopy()}
	o.Eps = [][]T{append([]T{}, o.eps...)}
	o.Nit = 0
	o.Ncut = 0
}

// Run runs the point along pth, appending converged states to Res. It stops between
// increments if ctx is cancelled
func (o *Driver[T]) Run(ctx context.Context, pth *Path) (err error) {
	err = pth.Check(o.Elast.Nsig)
	if err != nil {
		return
	}
	for i := 0; i < pth.Ninc(); i++ {
		if err = ctx.Err(); err != nil {
			return
		}
		err = o.Update(pth.Deps[i], pth.Dt[i])
		if err != nil {
			return
		}
		o.Res = append(o.Res, o.Old.GetCopy())
		o.Eps = append(o.Eps, append([]T{}, o.eps...))
	}
	return
}

// Update advances the point by one increment. If divergence control is on, a failed return
// mapping restores the old state and the remaining increment is split in halves
func (o *Driver[T]) Update(Δε []float64, Δt float64) (err error) {
	md := 1.0    // step multiplier
	ndiverg := 0 // number of steps diverging
	left := 1.0  // fraction of the increment still to be applied
	for left > 0 {

		// check for continued divergence
		if ndiverg >= o.NdvgMax {
			return chk.Err("continuous divergence after %d steps reached", ndiverg)
		}

		// sub-increment
		f := md
		if f > left {
			f = left
		}
		if Δt > 0 && f*Δt < o.DtMin {
			return chk.Err("Δt increment is too small: %g < %g", f*Δt, o.DtMin)
		}

		// run
		err = o.step(Δε, Δt, f)
		var cerr *ConvergenceError
		if errors.As(err, &cerr) && o.DvgCtrl {
			if o.Verbose {
				io.Pfred(". . . iterations diverging (%2d) . . .\n", ndiverg+1)
			}
			o.Log.Debug("return mapping diverging", zap.Int("eid", o.Pt.Eid), zap.Int("ipid", o.Pt.Ipid),
				zap.Float64("t", o.T), zap.Float64("dt", f*Δt), zap.Int("ndiverg", ndiverg+1), zap.Error(err))
			o.Cur.Set(o.Old)
			md = f * 0.5
			ndiverg++
			o.Ncut++
			continue
		}
		if err != nil {
			return
		}

		// accept
		for i, v := range Δε {
			o.eps[i] = o.F.Add(o.eps[i], o.strain(v, i, f))
		}
		o.Old.Set(o.Cur)
		o.T += f * Δt
		left -= f
		if left < 1e-14 {
			left = 0
		}
		ndiverg = 0
		md = 1.0
	}
	return
}

// step runs the elastic predictor, the return mapping and the damage update over the
// fraction f of the increment
func (o *Driver[T]) step(Δε []float64, Δt, f float64) (err error) {
	Δεf := make([]T, len(Δε))
	for i, v := range Δε {
		Δεf[i] = o.strain(v, i, f)
	}
	s := NewStep(o.F, &o.Pt, o.Old, o.Cur, f*Δt, o.Elast.ThreeG())
	σtr := TrialStress(o.F, o.Elast, o.Old.Sig, Δεf)
	_, _, err = o.Solver.Solve(s, σtr, o.Elast.D)
	o.Nit += s.Nit
	if err != nil {
		return
	}
	if o.Damage != nil {
		err = o.Damage.Update(s)
	}
	return
}

// strain lifts the fraction f of one strain component, seeding the derivative channel
func (o *Driver[T]) strain(v float64, i int, f float64) T {
	if o.Seed == nil {
		return o.F.Const(f * v)
	}
	return o.F.Var(f*v, f*o.Seed[i])
}
