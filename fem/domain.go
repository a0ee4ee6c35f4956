// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"context"
	"errors"

	"github.com/Applied-Materials-Technology/sloth/inp"
	"github.com/Applied-Materials-Technology/sloth/msolid"
	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Domain holds all integration points of a simulation. Each point owns its Old and Current
// states (inside its driver) and is updated independently of the others
type Domain[T any] struct {

	// init: auxiliary variables
	Sim *inp.Simulation // simulation data
	F   scalar.Field[T] // arithmetic
	Log *zap.Logger     // logger

	// integration points
	Drivers []*msolid.Driver[T] // one driver per point
	Paths   []*msolid.Path      // strain paths
}

// NewDomain returns a new domain with all points of sim
func NewDomain[T any](F scalar.Field[T], sim *inp.Simulation, log *zap.Logger) (o *Domain[T], err error) {
	o = &Domain[T]{Sim: sim, F: F, Log: log}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	nl := sim.Solver.Newton()
	for i, p := range sim.Points {
		mat := sim.MatDb.Get(p.Mat)
		if mat == nil {
			return nil, chk.Err("cannot find material %q of point %d", p.Mat, i)
		}
		solver, err := msolid.NewSolver(F, mat.Solid, nl)
		if err != nil {
			return nil, chk.Err("cannot allocate solver of point %d:\n%v", i, err)
		}
		var damage *msolid.KRDamage[T]
		if mat.HasDamage() {
			damage, err = msolid.NewKRDamage(F, mat.Damage)
			if err != nil {
				return nil, chk.Err("cannot allocate damage model of point %d:\n%v", i, err)
			}
		}
		pth, err := p.Path.GetPath(sim.Data.Ndim)
		if err != nil {
			return nil, chk.Err("cannot set path of point %d:\n%v", i, err)
		}
		elast := mat.Elast
		drv := &msolid.Driver[T]{Log: o.Log}
		drv.Init(F, p.Point(), &elast, solver, damage)
		drv.DvgCtrl = sim.Solver.DvgCtrl
		drv.NdvgMax = sim.Solver.NdvgMax
		drv.DtMin = sim.Solver.DtMin
		drv.Verbose = false
		if len(p.Seed) > 0 {
			if len(p.Seed) != elast.Nsig {
				return nil, chk.Err("seed of point %d must have %d components", i, elast.Nsig)
			}
			drv.Seed = p.Seed
		}
		o.Drivers = append(o.Drivers, drv)
		o.Paths = append(o.Paths, pth)
	}
	return
}

// Run runs all points along their paths using at most Solver.Workers goroutines. The first
// error cancels the remaining points. Damage errors are fatal
func (o *Domain[T]) Run(ctx context.Context) (err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Sim.Solver.Workers)
	for i := range o.Drivers {
		drv, pth := o.Drivers[i], o.Paths[i]
		g.Go(func() error {
			e := drv.Run(ctx, pth)
			if e != nil {
				o.logFailure(drv, e)
			}
			return e
		})
	}
	return g.Wait()
}

// Reset sets all points to their first visit state
func (o *Domain[T]) Reset() {
	for _, drv := range o.Drivers {
		drv.Reset()
	}
}

// Backup copies Current into Old for all points (after an accepted step)
func (o *Domain[T]) Backup() {
	for _, drv := range o.Drivers {
		drv.Old.Set(drv.Cur)
	}
}

// Restore copies Old into Current for all points (before retrying a step)
func (o *Domain[T]) Restore() {
	for _, drv := range o.Drivers {
		drv.Cur.Set(drv.Old)
	}
}

// logFailure reports the failure of one point
func (o *Domain[T]) logFailure(drv *msolid.Driver[T], err error) {
	fields := []zap.Field{zap.Int("eid", drv.Pt.Eid), zap.Int("ipid", drv.Pt.Ipid), zap.Float64("t", drv.T), zap.Error(err)}
	var derr *msolid.DamageError
	switch {
	case errors.As(err, &derr):
		o.Log.Error("damage index out of bounds", append(fields, zap.Float64("damage", derr.Value))...)
	case errors.Is(err, context.Canceled):
		o.Log.Debug("point cancelled", fields...)
	default:
		o.Log.Warn("point failed", fields...)
	}
}

// Print prints the final state of all points
func (o *Domain[T]) Print() {
	for _, drv := range o.Drivers {
		s := drv.Old
		io.Pf("%4d %3d : t=%g  σ=%v  ε̄p=%g  r=%g  D=%g  nit=%d  ncut=%d\n", drv.Pt.Eid, drv.Pt.Ipid, drv.T,
			scalar.Reals(o.F, s.Sig), o.F.Real(s.Pbar), o.F.Real(s.R), o.F.Real(s.D), drv.Nit, drv.Ncut)
	}
}
