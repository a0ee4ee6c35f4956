// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"errors"
	"math"
	"testing"

	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/num/dual"
)

func Test_rr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rr01. residual before initialize")

	F := scalar.Real{}
	for _, name := range Names() {
		mdl := newModel(tst, name, append(hsvPrms(), powerPrms(false)...), nil, SlopeOld)
		rr := newSolver[float64](tst, F, mdl)
		s := NewStep[float64](F, nil, NewState[float64](4), NewState[float64](4), 1, 3000)
		func() {
			defer func() {
				if err := recover(); err == nil {
					tst.Errorf("%s: Residual before Initialize should have panicked\n", name)
				}
			}()
			rr.Residual(s, 300, 0)
		}()
	}
}

func Test_rr02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rr02. non-convergence")

	F := scalar.Real{}

	// too few iterations
	mdl := newModel(tst, "hsv", hsvPrms(), nil, SlopeOld)
	rr := newSolver[float64](tst, F, mdl)
	rr.Nl.NmaxIt = 1
	pt := &Point{Eid: 7, Ipid: 2}
	s := NewStep[float64](F, pt, NewState[float64](4), NewState[float64](4), 1, 240000)
	_, _, err := rr.Solve(s, uniaxial[float64](F, 300), nil)
	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		tst.Errorf("ConvergenceError expected. got %v\n", err)
		return
	}
	io.Pforan("err = %v\n", err)
	chk.Int(tst, "eid", cerr.Eid, 7)
	chk.Int(tst, "ipid", cerr.Ipid, 2)
	chk.Int(tst, "nit", cerr.Nit, 1)

	// overflow: sinh(1000) = +Inf
	prms := hsvPrms()
	prms[2].V = 10
	mdl = newModel(tst, "hsv", prms, nil, SlopeOld)
	rr = newSolver[float64](tst, F, mdl)
	s = NewStep[float64](F, nil, NewState[float64](4), NewState[float64](4), 1, 240000)
	_, _, err = rr.Solve(s, uniaxial[float64](F, 300), nil)
	if !errors.As(err, &cerr) {
		tst.Errorf("ConvergenceError expected. got %v\n", err)
		return
	}
	chk.Int(tst, "nit", cerr.Nit, 0)
	chk.Int(tst, "eid", cerr.Eid, -1)
}

func Test_rr03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rr03. real and dual")

	for _, name := range []string{"hsv", "perzyna", "peric"} {

		// models
		prms := powerPrms(true)
		σ0, mub, Δt := 150.0, 3000.0, 0.01
		if name == "hsv" {
			prms = hsvPrms()
			σ0, mub, Δt = 300.0, 240000.0, 1.0
		}
		mdl := newModel(tst, name, prms, nil, SlopeCurrent)
		Fr, Fd := scalar.Real{}, scalar.Dual{}
		rrR := newSolver[float64](tst, Fr, mdl)
		rrD := newSolver[dual.Number](tst, Fd, mdl)
		atol := 1e-15
		if name == "peric" {
			atol = 1e-14
		}
		rrR.Nl.Atol, rrR.Nl.Rtol = atol, 0
		rrD.Nl.Atol, rrD.Nl.Rtol = atol, 0

		// solve with plain numbers
		solve := func(σ float64) (float64, *State[float64]) {
			s := NewStep[float64](Fr, nil, NewState[float64](4), NewState[float64](4), Δt, mub)
			Δp, _, err := rrR.Solve(s, uniaxial[float64](Fr, σ), nil)
			if err != nil {
				tst.Fatalf("%s: Solve failed: %v\n", name, err)
			}
			return Δp, s.Cur
		}
		ΔpR, curR := solve(σ0)

		// solve with dual numbers: derivative with respect to σ
		s := NewStep[dual.Number](Fd, nil, NewState[dual.Number](4), NewState[dual.Number](4), Δt, mub)
		ΔpD, _, err := rrD.Solve(s, uniaxial[dual.Number](Fd, Fd.Var(σ0, 1)), nil)
		if err != nil {
			tst.Errorf("%s: Solve failed: %v\n", name, err)
			return
		}
		io.Pforan("%s: Δp = %v  dΔp/dσ = %v\n", name, ΔpD.Real, ΔpD.Emag)

		// same primal values
		chk.Float64(tst, name+": Δp", 1e-14, ΔpD.Real, ΔpR)
		chk.Float64(tst, name+": R", 1e-11, s.Cur.R.Real, curR.R)
		chk.Array(tst, name+": σ", 1e-9, scalar.Reals[dual.Number](Fd, s.Cur.Sig), curR.Sig)

		// sensitivity
		h := 1e-4
		Δpp, curp := solve(σ0 + h)
		Δpm, curm := solve(σ0 - h)
		chk.AnaNum(tst, name+": dΔp/dσ", 1e-7, ΔpD.Emag, (Δpp-Δpm)/(2*h), chk.Verbose)
		chk.AnaNum(tst, name+": dσ0/dσ", 1e-5, s.Cur.Sig[0].Emag, (curp.Sig[0]-curm.Sig[0])/(2*h), chk.Verbose)
		chk.AnaNum(tst, name+": dR/dσ", 1e-5, s.Cur.R.Emag, (curp.R-curm.R)/(2*h), chk.Verbose)
	}
}

func Test_rr04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rr04. monotonicity")

	F := scalar.Real{}
	for _, name := range []string{"hsv", "perzyna", "peric"} {

		// driver
		prms := powerPrms(true)
		if name == "hsv" {
			prms = hsvPrms()
		}
		mdl := newModel(tst, name, prms, nil, SlopeOld)
		rr := newSolver[float64](tst, F, mdl)
		var drv Driver[float64]
		drv.Init(F, Point{}, newElast(tst, 200000, 0.25), rr, nil)

		// loading and unloading
		var pth Path
		err := pth.SetRate(UniaxialRate(2, 0.1), 0.01, 10)
		if err != nil {
			tst.Errorf("SetRate failed: %v\n", err)
			return
		}
		rate := UniaxialRate(2, -0.1)
		for i := 0; i < 10; i++ {
			pth.Append([]float64{rate[0] * 0.01, rate[1] * 0.01, rate[2] * 0.01, rate[3] * 0.01}, 0.01)
		}
		err = pth.Check(4)
		if err != nil {
			tst.Errorf("Check failed: %v\n", err)
			return
		}

		// run
		err = drv.Run(ctx(), &pth)
		if err != nil {
			tst.Errorf("%s: Run failed: %v\n", name, err)
			return
		}
		chk.Int(tst, name+": number of states", len(drv.Res), 21)
		for i := 1; i < len(drv.Res); i++ {
			if drv.Res[i].Pbar < drv.Res[i-1].Pbar {
				tst.Errorf("%s: ε̄ decreased at increment %d: %g < %g\n", name, i, drv.Res[i].Pbar, drv.Res[i-1].Pbar)
			}
			if drv.Res[i].Dgam < 0 {
				tst.Errorf("%s: Δp=%g must not be negative\n", name, drv.Res[i].Dgam)
			}
		}
		io.Pforan("%s: ε̄ = %v\n", name, drv.Res[len(drv.Res)-1].Pbar)
		if drv.Res[10].Pbar <= 0 {
			tst.Errorf("%s: loading should be viscoplastic\n", name)
		}
	}
}

func Test_rr05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rr05. elastic round trip")

	F := scalar.Real{}
	mdl := newModel(tst, "hsv", hsvPrms(), nil, SlopeOld)
	rr := newSolver[float64](tst, F, mdl)
	var drv Driver[float64]
	drv.Init(F, Point{}, newElast(tst, 200000, 0.3), rr, nil)

	// small strains: σ stays below the yield stress
	Δε := []float64{1e-4, -2e-5, 3e-5, 5e-5}
	var pth Path
	pth.Append(Δε, 1)
	pth.Append(Δε, 1)
	pth.Append([]float64{-2 * Δε[0], -2 * Δε[1], -2 * Δε[2], -2 * Δε[3]}, 1)
	err := drv.Run(ctx(), &pth)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	last := drv.Res[len(drv.Res)-1]
	io.Pforan("σ = %v\n", last.Sig)
	chk.Array(tst, "σ", 1e-10, last.Sig, []float64{0, 0, 0, 0})
	chk.Array(tst, "εP", 1e-17, last.EpsP, []float64{0, 0, 0, 0})
	chk.Float64(tst, "pbar", 1e-17, last.Pbar, 0)
	chk.Float64(tst, "R", 1e-17, last.R, 0)
	chk.Array(tst, "ε", 1e-17, drv.Eps[len(drv.Eps)-1], []float64{0, 0, 0, 0})
}

func Test_rr06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rr06. registry")

	names := Names()
	chk.Strings(tst, "names", names, []string{"hsv", "hyperbolic", "peric", "perzyna"})

	// unknown model
	_, err := New("dp", nil, nil)
	if err == nil {
		tst.Errorf("unknown model should have failed\n")
	}

	// unknown parameter
	_, err = New("perzyna", append(powerPrms(false), &dbf.P{N: "c_gamma", V: 1}), nil)
	if err == nil {
		tst.Errorf("unknown parameter should have failed\n")
	}

	// hsv does not accept a hardening function
	_, err = New("hsv", hsvPrms(), quadHard{a: 1})
	if err == nil {
		tst.Errorf("hsv with hardening function should have failed\n")
	}

	// settings
	mdl, err := New("perzyna", append(powerPrms(false), &dbf.P{N: "slope_current", V: 1}, &dbf.P{N: "spatial", V: 1}), quadHard{a: 1})
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	if mdl.SlopeAt != SlopeCurrent || !mdl.Spatial {
		tst.Errorf("settings were not parsed\n")
	}
	chk.Int(tst, "nprms", len(mdl.GetPrms()), 3)
}

func Test_rr07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rr07. plastic strain increment")

	F := scalar.Real{}
	mdl := newModel(tst, "perzyna", powerPrms(true), nil, SlopeOld)
	rr := newSolver[float64](tst, F, mdl)

	mub := 3000.0
	σtr := []float64{150, -20, 10, 30}
	s := NewStep[float64](F, nil, NewState[float64](4), NewState[float64](4), 0.01, mub)
	Δp, ΔεP, err := rr.Solve(s, σtr, nil)
	if err != nil {
		tst.Errorf("Solve failed: %v\n", err)
		return
	}
	if Δp <= 0 {
		tst.Errorf("step should be viscoplastic\n")
		return
	}

	// direction of the trial deviator and equivalent norm (2/3) Δp
	dev := Dev[float64](F, σtr)
	σt := Qeq[float64](F, dev)
	for i := range dev {
		chk.Float64(tst, io.Sf("ΔεP%d", i), 1e-17, ΔεP[i], Δp/σt*dev[i])
	}
	chk.Float64(tst, "equivalent ΔεP", 1e-15, math.Sqrt(2.0/3.0*DoubleDot[float64](F, ΔεP, ΔεP)), 2.0/3.0*Δp)
	chk.Array(tst, "εP", 1e-17, s.Cur.EpsP, ΔεP)
	chk.Float64(tst, "ε̄", 1e-17, s.Cur.Pbar, Δp)

	// stress correction = (3/2) 2G ΔεP with μ̄ = 3G
	G := mub / 3.0
	for i := range σtr {
		chk.Float64(tst, io.Sf("Δσ%d", i), 1e-10, σtr[i]-s.Cur.Sig[i], 1.5*2*G*ΔεP[i])
	}

	// the equivalent stress is returned by μ̄ Δp
	chk.Float64(tst, "σeq", 1e-10, Qeq[float64](F, Dev[float64](F, s.Cur.Sig)), σt-mub*Δp)
}
