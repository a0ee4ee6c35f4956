// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Applied-Materials-Technology/sloth/fem"
	"github.com/Applied-Materials-Technology/sloth/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// runSim runs a simulation from the fem data directory and saves its results
func runSim(tst *testing.T, fn string) *inp.Simulation {
	sim, err := inp.ReadSim(filepath.Join("..", "fem", "data", fn), "")
	if err != nil {
		tst.Fatalf("ReadSim failed:\n%v", err)
	}
	sim.DirOut = tst.TempDir()
	analysis, err := fem.NewFEM(sim, true, false, nil)
	if err != nil {
		tst.Fatalf("NewFEM failed:\n%v", err)
	}
	err = analysis.Run(context.Background())
	if err != nil {
		tst.Fatalf("Run failed:\n%v", err)
	}
	return sim
}

func Test_out01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out01. time series")

	// start post-processing
	sim := runSim(tst, "points01.sim")
	err := StartSim(sim)
	if err != nil {
		tst.Errorf("StartSim failed:\n%v", err)
		return
	}
	chk.Int(tst, "npts", len(Ipoints), 6)
	chk.Int(tst, "npts (summary)", Sum.Npts, 6)

	// define entities
	Define("A", P{{0, 0}})
	Define("B C", P{{1, -1}})
	Define("steel", M{"steel"})
	Define("right", At{1, 0})
	Define("all", All{})
	LoadResults()
	chk.Ints(tst, "ids of A", GetIds("A"), []int{0})
	chk.Ints(tst, "ids of steel", GetIds("steel"), []int{0, 1})
	chk.Ints(tst, "ids of C", GetIds("C"), []int{3})
	chk.Ints(tst, "ids of right", GetIds("right"), []int{3})
	chk.Array(tst, "x of C", 1e-17, GetCoords("C"), []float64{1, 0})

	// time series of A: 5 increments of 1e-3 along x
	t := GetRes("t", "A", 0)
	chk.Array(tst, "t", 1e-15, t, []float64{0, 1, 2, 3, 4, 5})
	ex := GetRes("ex", "A", 0)
	chk.Float64(tst, "ex", 1e-15, ex[5], 5e-3)
	chk.Float64(tst, "ey", 1e-15, GetRes("ey", "A", 0)[5], -2.5e-3)

	// uniaxial stress state: q = |sx - sy|, p = -(sx + 2 sy)/3
	sx, sy, sz := GetRes("sx", "A", 0), GetRes("sy", "A", 0), GetRes("sz", "A", 0)
	q, p := GetRes("q", "A", 0), GetRes("p", "A", 0)
	for i := range t {
		chk.Float64(tst, "sy = sz", 1e-10, sy[i], sz[i])
		chk.Float64(tst, "q", 1e-9, q[i], math.Abs(sx[i]-sy[i]))
		chk.Float64(tst, "p", 1e-10, p[i], -(sx[i]+2*sy[i])/3)
	}

	// final values of all points
	pbar := GetRes("pbar", "all", -1)
	chk.Int(tst, "npbar", len(pbar), 6)
	for i, v := range pbar {
		chk.Float64(tst, io.Sf("pbar%d", i), 1e-17, v, Dom.Drivers[i].Old.Pbar)
	}
	io.Pf("%s", String())

	// keys and table
	keys := Keys("A")
	chk.Int(tst, "nkeys", len(keys), 1+3*4+6)
	dir := tst.TempDir()
	WriteTable(dir, "A.txt", "A", nil, chk.Verbose)
	b, err := os.ReadFile(filepath.Join(dir, "A.txt"))
	if err != nil {
		tst.Errorf("cannot read table:\n%v", err)
		return
	}
	if len(b) == 0 {
		tst.Errorf("table is empty\n")
	}
}

// seriesOf returns the time series of a key for all points
func seriesOf(key string) (res [][]float64) {
	Define("all", All{})
	LoadResults()
	for i := range Ipoints {
		res = append(res, GetRes(key, "all", i))
	}
	return
}

func Test_out02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out02. histories of dual runs")

	// reference: plain numbers
	sim := runSim(tst, "points01.sim")
	err := StartSim(sim)
	if err != nil {
		tst.Errorf("StartSim failed:\n%v", err)
		return
	}
	keys := []string{"t", "sx", "sy", "pbar", "R", "D"}
	ref := make(map[string][][]float64)
	for _, key := range keys {
		ref[key] = seriesOf(key)
	}

	// dual numbers with both encoders
	for _, enc := range []string{"gob", "json"} {
		sim, err := inp.ReadSim(filepath.Join("..", "fem", "data", "points01.sim"), "")
		if err != nil {
			tst.Fatalf("ReadSim failed:\n%v", err)
		}
		sim.DirOut = tst.TempDir()
		sim.Data.Dual = true
		sim.EncType = enc
		analysis, err := fem.NewFEM(sim, true, false, nil)
		if err != nil {
			tst.Fatalf("NewFEM failed:\n%v", err)
		}
		err = analysis.Run(context.Background())
		if err != nil {
			tst.Fatalf("Run failed:\n%v", err)
		}

		err = StartSim(sim)
		if err != nil {
			tst.Errorf("%s: StartSim after dual run failed:\n%v", enc, err)
			return
		}
		if !Sum.Dual {
			tst.Errorf("%s: summary should indicate a dual run\n", enc)
		}
		chk.Int(tst, enc+": npts", len(Ipoints), 6)
		for _, key := range keys {
			res := seriesOf(key)
			for i := range res {
				chk.Array(tst, io.Sf("%s: %s of point %d", enc, key, i), 1e-8, res[i], ref[key][i])
			}
		}
		for i, drv := range Dom.Drivers {
			chk.Float64(tst, io.Sf("%s: T%d", enc, i), 1e-14, drv.T, Sum.Times[i])
		}
	}
}
