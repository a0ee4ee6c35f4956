// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"context"
	"math"
	"testing"

	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

func ctx() context.Context { return context.Background() }

// quadHard implements R(ε̄) = (a + c x[0]) ε̄ + b ε̄²
type quadHard struct {
	a, b, c float64
}

func (o quadHard) coef(x []float64) float64 {
	if len(x) == 0 {
		return o.a
	}
	return o.a + o.c*x[0]
}

func (o quadHard) F(t float64, x []float64) float64 { return o.coef(x)*t + o.b*t*t }
func (o quadHard) G(t float64, x []float64) float64 { return o.coef(x) + 2.0*o.b*t }
func (o quadHard) H(t float64, x []float64) float64 { return 2.0 * o.b }

// flaky fails with a NaN residual if Δt is greater than dtmax
type flaky struct {
	FlowRule[float64]
	dtmax float64
}

func (o flaky) Residual(s *Step[float64], σt, Δp float64) (float64, Partials[float64]) {
	if s.Dt > o.dtmax {
		return math.NaN(), Partials[float64]{}
	}
	return o.FlowRule.Residual(s, σt, Δp)
}

// hsvPrms returns the parameters of the hyperbolic sine scenario
func hsvPrms() dbf.Params {
	return dbf.Params{
		&dbf.P{N: "yield_stress", V: 200},
		&dbf.P{N: "c_alpha", V: 1e-3},
		&dbf.P{N: "c_beta", V: 0.01},
		&dbf.P{N: "sat_stress", V: 100},
		&dbf.P{N: "exp_rate", V: 10},
		&dbf.P{N: "lin_rate", V: 50},
	}
}

// powerPrms returns the parameters of the power law scenarios
func powerPrms(hardening bool) (prms dbf.Params) {
	prms = dbf.Params{
		&dbf.P{N: "yield_stress", V: 100},
		&dbf.P{N: "n", V: 5},
		&dbf.P{N: "eta", V: 50},
	}
	if hardening {
		prms = append(prms,
			&dbf.P{N: "sat_stress", V: 100},
			&dbf.P{N: "exp_rate", V: 10},
			&dbf.P{N: "lin_rate", V: 50},
		)
	}
	return
}

// newModel allocates a model or fails the test
func newModel(tst *testing.T, name string, prms dbf.Params, hfcn TimeSpace, at SlopeAt) *Model {
	mdl, err := New(name, prms, hfcn)
	if err != nil {
		tst.Fatalf("New failed: %v\n", err)
	}
	mdl.SlopeAt = at
	return mdl
}

// newSolver allocates a solver or fails the test
func newSolver[T any](tst *testing.T, F scalar.Field[T], mdl *Model) *RadialReturn[T] {
	var nl NewtonConfig
	nl.SetDefault()
	rr, err := NewSolver(F, mdl, nl)
	if err != nil {
		tst.Fatalf("NewSolver failed: %v\n", err)
	}
	return rr
}

// uniaxial returns the Mandel tensor {s, 0, 0, 0}
func uniaxial[T any](F scalar.Field[T], s T) []T {
	res := F.Zeros(4)
	res[0] = s
	for i := 1; i < 4; i++ {
		res[i] = F.Const(0)
	}
	return res
}

// newElast returns an elastic model or fails the test
func newElast(tst *testing.T, E, nu float64) *SmallElasticity {
	var el SmallElasticity
	err := el.Init(2, dbf.Params{&dbf.P{N: "E", V: E}, &dbf.P{N: "nu", V: nu}})
	if err != nil {
		tst.Fatalf("elasticity failed: %v\n", err)
	}
	return &el
}
