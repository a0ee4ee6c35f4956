// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package msolid implements viscoplastic models for solids: radial return mapping with
// interchangeable flow rules and hardening laws, plus a scalar damage model
package msolid

import (
	"sort"

	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Rule defines the configuration-time data of a flow rule
type Rule interface {
	Init(prms dbf.Params) error // parses parameters
	GetPrms() dbf.Params        // gets (an example) of parameters
}

// Model holds the configuration of one viscoplastic material: flow rule and hardening law
type Model struct {
	Name    string    // name of model; e.g. "hsv", "perzyna"
	Rule    Rule      // flow rule parameters
	Voce    VocePrms  // Voce parameters (used if Hfcn == nil)
	Hfcn    TimeSpace // hardening function; nil => Voce law
	Spatial bool      // evaluate Hfcn at the point position
	SlopeAt SlopeAt   // where the hardening slope is evaluated

	voce bool // the Voce law is built into the model
}

// New returns a new model. hfcn is the hardening function; if nil, the Voce law is used
func New(name string, prms dbf.Params, hfcn TimeSpace) (o *Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'msolid' database", name)
	}
	o = allocator()
	o.Name = name
	if o.voce && hfcn != nil {
		return nil, chk.Err("model %q uses the Voce law and does not accept a hardening function", name)
	}
	o.Hfcn = hfcn
	err = o.Init(prms)
	return
}

// Init parses all parameters
func (o *Model) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch p.N {
		case "yield_stress", "c_alpha", "c_beta", "n", "eta", "sat_stress", "exp_rate", "lin_rate":
		case "slope_current":
			if p.V > 0 {
				o.SlopeAt = SlopeCurrent
			}
		case "spatial":
			o.Spatial = p.V > 0
		case "E", "nu", "K", "G":
		default:
			return chk.Err("%s: parameter named %q is incorrect", o.Name, p.N)
		}
	}
	err = o.Rule.Init(prms)
	if err != nil {
		return
	}
	if o.Hfcn == nil {
		err = o.Voce.Init(prms)
	}
	return
}

// GetPrms gets (an example) of parameters
func (o Model) GetPrms() (prms dbf.Params) {
	prms = o.Rule.GetPrms()
	if o.Hfcn == nil {
		prms = append(prms, o.Voce.GetPrms()...)
	}
	return
}

// NewFlowRule allocates the flow rule described by mdl for the arithmetic F
func NewFlowRule[T any](F scalar.Field[T], mdl *Model) (flow FlowRule[T], err error) {
	var h Hardening[T]
	if mdl.Hfcn == nil {
		h = &Voce[T]{F: F, Prms: mdl.Voce, At: mdl.SlopeAt}
	} else {
		h = &FuncHardening[T]{F: F, Fcn: mdl.Hfcn, Spatial: mdl.Spatial, At: mdl.SlopeAt}
	}
	switch r := mdl.Rule.(type) {
	case *HypSinePrms:
		return &HypSine[T]{F: F, H: h, Prms: *r}, nil
	case *perzynaPrms:
		return NewPerzyna(F, h, r.PowerLawPrms), nil
	case *pericPrms:
		return NewPeric(F, h, r.PowerLawPrms), nil
	}
	return nil, chk.Err("flow rule of model %q cannot be allocated", mdl.Name)
}

// NewSolver allocates a radial return solver for mdl
func NewSolver[T any](F scalar.Field[T], mdl *Model, nl NewtonConfig) (o *RadialReturn[T], err error) {
	flow, err := NewFlowRule(F, mdl)
	if err != nil {
		return
	}
	o = NewRadialReturn(F, flow)
	o.Nl = nl
	return
}

// Names returns the names of the available models
func Names() (names []string) {
	for name := range allocators {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// perzynaPrms and pericPrms tag the power law parameters
type perzynaPrms struct{ PowerLawPrms }
type pericPrms struct{ PowerLawPrms }

// allocators holds all available models; modelname => allocator
var allocators = map[string]func() *Model{}

// add models to factory
func init() {

	// hyperbolic sine with Voce law; all parameters may be point properties
	allocators["hsv"] = func() *Model { return &Model{Rule: new(HypSinePrms), voce: true} }

	// function hardening (the Voce law is used if no function is given)
	allocators["hyperbolic"] = func() *Model { return &Model{Rule: new(HypSinePrms)} }
	allocators["perzyna"] = func() *Model { return &Model{Rule: new(perzynaPrms)} }
	allocators["peric"] = func() *Model { return &Model{Rule: new(pericPrms), Spatial: true} }
}
