// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package out implements the handling of saved results: histories of states of integration
// points are loaded back and converted into time series
package out

import (
	"github.com/Applied-Materials-Technology/sloth/fem"
	"github.com/Applied-Materials-Technology/sloth/inp"
	"github.com/Applied-Materials-Technology/sloth/msolid"
	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/num/dual"
)

// constants
var (
	TolC = 1e-8 // tolerance to compare x-y-z coordinates
)

// ResultsMap maps aliases to points
type ResultsMap map[string]Points

// Global variables
var (

	// data set by Start
	Sim     *inp.Simulation      // simulation data
	Sum     *fem.Summary         // summary of the run
	Dom     *fem.Domain[float64] // domain with histories loaded from file
	Ipoints []*Point             // all integration points. index == point index in simulation

	// defined entities and results loaded by LoadResults
	Results ResultsMap // maps labels => points
)

// Start starts handling of results given a simulation input file
//  alias -- alias used when running the simulation; may be empty
func Start(simfnpath, alias string) (err error) {

	// simulation data
	Sim, err = inp.ReadSim(simfnpath, alias)
	if err != nil {
		return
	}
	return StartSim(Sim)
}

// StartSim starts handling of results of an already loaded simulation. Histories of runs
// with dual numbers are loaded with their primal values only
func StartSim(sim *inp.Simulation) (err error) {

	// summary
	Sim = sim
	Sum, err = fem.ReadSum(Sim.DirOut, Sim.Key, Sim.EncType)
	if err != nil {
		return chk.Err("cannot read summary:\n%v", err)
	}

	// histories
	Dom, err = fem.NewDomain[float64](scalar.Real{}, Sim, nil)
	if err != nil {
		return
	}
	if Sum.Dual {
		err = readDual()
	} else {
		err = Dom.ReadStates(Sim.DirOut, Sim.Key, Sim.EncType)
	}
	if err != nil {
		return chk.Err("cannot read states:\n%v", err)
	}

	// clear previous data
	Results = make(map[string]Points)
	Ipoints = make([]*Point, len(Dom.Drivers))
	for i, drv := range Dom.Drivers {
		Ipoints[i] = &Point{Idx: i, Eid: drv.Pt.Eid, Ipid: drv.Pt.Ipid, X: drv.Pt.X, Mat: Sim.Points[i].Mat}
	}
	return
}

// readDual reads histories saved with dual numbers and copies their primal values into Dom
func readDual() (err error) {
	F := scalar.Dual{}
	dom, err := fem.NewDomain[dual.Number](F, Sim, nil)
	if err != nil {
		return
	}
	err = dom.ReadStates(Sim.DirOut, Sim.Key, Sim.EncType)
	if err != nil {
		return
	}
	for i, drv := range Dom.Drivers {
		src := dom.Drivers[i]
		drv.Res = make([]*msolid.State[float64], len(src.Res))
		for k, s := range src.Res {
			drv.Res[k] = msolid.Primal[dual.Number](F, s)
		}
		drv.Old.Set(drv.Res[len(drv.Res)-1])
		drv.Cur.Set(drv.Res[len(drv.Res)-1])
		drv.T = src.T
	}
	return
}
