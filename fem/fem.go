// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fem runs the integration points of a simulation: each point follows its own strain
// path through the return mapping and damage update of its material
package fem

import (
	"context"
	"time"

	"github.com/Applied-Materials-Technology/sloth/inp"
	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/num/dual"
)

// FEM holds all data for a simulation
type FEM struct {
	Sim     *inp.Simulation // simulation data
	Summary *Summary        // summary of last run
	Save    bool            // save states and summary after running
	Verbose bool            // show messages
	Log     *zap.Logger     // logger

	// domains; only one is allocated depending on Sim.Data.Dual
	Real *Domain[float64]     // plain numbers
	Dual *Domain[dual.Number] // dual numbers
}

// NewFEM returns a new FEM structure
//  Input:
//   sim     -- simulation data; see inp.ReadSim
//   save    -- save results
//   verbose -- show messages
//   log     -- logger; may be nil
func NewFEM(sim *inp.Simulation, save, verbose bool, log *zap.Logger) (o *FEM, err error) {

	// new FEM object
	o = &FEM{Sim: sim, Save: save, Verbose: verbose, Log: log}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}

	// allocate domain
	if o.Sim.Data.Dual {
		o.Dual, err = NewDomain[dual.Number](scalar.Dual{}, o.Sim, o.Log)
	} else {
		o.Real, err = NewDomain[float64](scalar.Real{}, o.Sim, o.Log)
	}
	if err != nil {
		return nil, chk.Err("cannot allocate domain:\n%v", err)
	}
	return
}

// Run runs simulation
func (o *FEM) Run(ctx context.Context) (err error) {

	// message
	if o.Verbose {
		io.Pf("\n> running %q with %d points and %d workers\n", o.Sim.Key, len(o.Sim.Points), o.Sim.Solver.Workers)
	}
	o.Log.Info("run started", zap.String("key", o.Sim.Key), zap.Int("npts", len(o.Sim.Points)),
		zap.Int("workers", o.Sim.Solver.Workers), zap.Bool("dual", o.Sim.Data.Dual))

	// run
	cputime := time.Now()
	if o.Dual != nil {
		err = run(ctx, o, o.Dual)
	} else {
		err = run(ctx, o, o.Real)
	}
	elapsed := time.Since(cputime)
	if err != nil {
		o.Log.Error("run failed", zap.String("key", o.Sim.Key), zap.Error(err))
		return
	}
	o.Log.Info("run finished", zap.String("key", o.Sim.Key), zap.Duration("elapsed", elapsed))
	if o.Verbose {
		io.Pfblue2("cpu time   = %v\n", elapsed)
	}

	// summary
	if o.Dual != nil {
		o.Summary = NewSummary(o.Dual, elapsed, true)
	} else {
		o.Summary = NewSummary(o.Real, elapsed, false)
	}
	if o.Save {
		err = o.Summary.Save(o.Sim.EncType, o.Verbose)
	}
	return
}

// run runs the domain and saves its states
func run[T any](ctx context.Context, o *FEM, d *Domain[T]) (err error) {
	err = d.Run(ctx)
	if err != nil {
		return
	}
	if o.Verbose {
		d.Print()
	}
	if o.Save {
		err = d.SaveStates(o.Verbose)
	}
	return
}
