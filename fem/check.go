// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/Applied-Materials-Technology/sloth/msolid"
	"github.com/cpmech/gosl/io"
)

// DerivReport holds the result of a derivative check at one point
type DerivReport struct {
	Eid, Ipid int     // point identity
	Mat       string  // material name
	Dp        float64 // Δp where the derivative was computed
	Ana       float64 // analytical derivative
	Num       float64 // numerical derivative
	Err       float64 // relative error
	Plastic   bool    // the first increment is viscoplastic
}

// CheckDerivatives compares the analytical and numerical derivatives of the residual of every
// point for the first increment of its path, at Δp = 0 and at fractions of the converged Δp.
// The states of the points are not modified
func CheckDerivatives(d *Domain[float64], h float64, verbose bool) (reps []DerivReport, err error) {
	for i, drv := range d.Drivers {
		pth := d.Paths[i]
		if pth.Ninc() == 0 {
			continue
		}
		mdl := d.Sim.MatDb.Get(d.Sim.Points[i].Mat)

		// trial stress
		σtr := msolid.TrialStress(d.F, drv.Elast, drv.Old.Sig, pth.Deps[0])
		σt := msolid.Qeq(d.F, msolid.Dev(d.F, σtr))

		// converged Δp
		cur := drv.Old.GetCopy()
		s := msolid.NewStep(d.F, &drv.Pt, drv.Old, cur, pth.Dt[0], drv.Elast.ThreeG())
		Δp, _, e := drv.Solver.Solve(s, σtr, drv.Elast.D)
		if e != nil {
			Δp = 0
		}

		// check
		for _, f := range []float64{0, 0.5, 1} {
			if f > 0 && Δp == 0 {
				break
			}
			r := DerivReport{Eid: drv.Pt.Eid, Ipid: drv.Pt.Ipid, Mat: mdl.Name, Dp: f * Δp}
			r.Ana, r.Num, r.Plastic, err = msolid.DerivCheck(mdl.Solid, &drv.Pt, drv.Old, σt, drv.Elast.ThreeG(), pth.Dt[0], r.Dp, h)
			if err != nil {
				return
			}
			r.Err = msolid.RelErr(r.Ana, r.Num)
			if verbose {
				io.Pf("%4d %3d %-12s Δp=%-12.5e ana=%-14.6e num=%-14.6e err=%.3e\n", r.Eid, r.Ipid, r.Mat, r.Dp, r.Ana, r.Num, r.Err)
			}
			reps = append(reps, r)
			if !r.Plastic {
				break
			}
		}
	}
	return
}
