// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/tsr"
	"github.com/cpmech/gosl/utl"
)

// SmallElasticity implements linear/isotropic elasticity for small strain analyses. It
// provides the elastic predictor and the elasticity tensor consumed by the return mapping
type SmallElasticity struct {
	Nsig int         // number of stress components
	E    float64     // Young modulus
	Nu   float64     // Poisson coefficient
	K    float64     // bulk modulus
	G    float64     // shear modulus
	D    [][]float64 // elasticity tensor (Mandel) [nsig][nsig]
}

// Init initialises this structure. Either {E, nu} or {K, G} must be given
func (o *SmallElasticity) Init(ndim int, prms dbf.Params) (err error) {
	o.Nsig = 2 * ndim
	var hasE, hasNu, hasK, hasG bool
	for _, p := range prms {
		switch p.N {
		case "E":
			o.E, hasE = p.V, true
		case "nu":
			o.Nu, hasNu = p.V, true
		case "K":
			o.K, hasK = p.V, true
		case "G":
			o.G, hasG = p.V, true
		}
	}
	switch {
	case hasE && hasNu:
		o.K = Calc_K_from_Enu(o.E, o.Nu)
		o.G = Calc_G_from_Enu(o.E, o.Nu)
	case hasK && hasG:
		o.E = Calc_E_from_KG(o.K, o.G)
		o.Nu = Calc_nu_from_KG(o.K, o.G)
	default:
		return chk.Err("elasticity: either {E, nu} or {K, G} must be given")
	}
	if o.G <= 0 || o.K <= 0 {
		return chk.Err("elasticity: K=%g and G=%g must be positive", o.K, o.G)
	}
	o.D = utl.Alloc(o.Nsig, o.Nsig)
	for i := 0; i < o.Nsig; i++ {
		for j := 0; j < o.Nsig; j++ {
			o.D[i][j] = o.K*tsr.SecIdenMan[i]*tsr.SecIdenMan[j] + 2.0*o.G*tsr.FouPsdMan[i][j]
		}
	}
	return
}

// ThreeG returns 3G; i.e. the factor mapping the scalar increment into stress space
func (o SmallElasticity) ThreeG() float64 { return 3.0 * o.G }

// TrialStress computes σtr = σ + K tr(Δε) I + 2G dev(Δε)
func TrialStress[T any](F scalar.Field[T], o *SmallElasticity, σ, Δε []T) (σtr []T) {
	trΔε := F.Add(F.Add(Δε[0], Δε[1]), Δε[2])
	σtr = make([]T, o.Nsig)
	for i := 0; i < o.Nsig; i++ {
		devΔε_i := F.Sub(Δε[i], F.Scale(tsr.SecIdenMan[i]/3.0, trΔε))
		σtr[i] = F.Add(σ[i], F.Add(F.Scale(o.K*tsr.SecIdenMan[i], trΔε), F.Scale(2.0*o.G, devΔε_i)))
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////

// Calc_K_from_Enu returns K given E and ν
func Calc_K_from_Enu(E, ν float64) float64 { return E / (3.0 * (1.0 - 2.0*ν)) }

// Calc_G_from_Enu returns G given E and ν
func Calc_G_from_Enu(E, ν float64) float64 { return E / (2.0 * (1.0 + ν)) }

// Calc_E_from_KG returns E given K and G
func Calc_E_from_KG(K, G float64) float64 { return 9.0 * K * G / (3.0*K + G) }

// Calc_nu_from_KG returns ν given K and G
func Calc_nu_from_KG(K, G float64) float64 { return (3.0*K - 2.0*G) / (6.0*K + 2.0*G) }
