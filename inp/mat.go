// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"path/filepath"

	"github.com/Applied-Materials-Technology/sloth/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Material holds material data
type Material struct {

	// input
	Name   string     `json:"name"`   // name of material
	Model  string     `json:"model"`  // name of model; e.g. "hsv", "perzyna"
	Hfcn   string     `json:"hfcn"`   // name of hardening function; empty => Voce law
	Prms   dbf.Params `json:"prms"`   // model and elastic parameters
	Damage dbf.Params `json:"damage"` // damage parameters; empty => no damage

	// derived
	Solid *msolid.Model          // viscoplastic model
	Elast msolid.SmallElasticity // elastic predictor
}

// elasticity parameter names
var elastNames = map[string]bool{"E": true, "nu": true, "K": true, "G": true}

// HasDamage tells whether damage parameters are given
func (o Material) HasDamage() bool { return len(o.Damage) > 0 }

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {
	Functions FuncsData `json:"functions"` // all functions
	Materials MatsData  `json:"materials"` // all materials
}

// Get returns the material named name or nil if not found
func (o MatDb) Get(name string) *Material {
	for _, m := range o.Materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// ReadMat reads all materials data from a .mat file
func ReadMat(dir, fn string, ndim int) (mdb *MatDb, err error) {

	// read file
	mdb = new(MatDb)
	err = decodeFile(filepath.Join(dir, fn), mdb)
	if err != nil {
		return nil, err
	}

	// alloc/init
	names := make(map[string]bool)
	for _, m := range mdb.Materials {
		if names[m.Name] {
			return nil, chk.Err("material %q is repeated", m.Name)
		}
		names[m.Name] = true
		err = m.init(mdb.Functions, ndim)
		if err != nil {
			return nil, chk.Err("material %q:\n%v", m.Name, err)
		}
	}
	return
}

// init allocates the model and the elastic predictor
func (o *Material) init(fcns FuncsData, ndim int) (err error) {
	hfcn, err := fcns.Get(o.Hfcn)
	if err != nil {
		return
	}
	var h msolid.TimeSpace
	if hfcn != nil {
		h = hfcn
	}
	o.Solid, err = msolid.New(o.Model, o.Prms, h)
	if err != nil {
		return
	}
	var eprms dbf.Params
	for _, p := range o.Prms {
		if elastNames[p.N] {
			eprms = append(eprms, p)
		}
	}
	err = o.Elast.Init(ndim, eprms)
	if err != nil {
		return
	}
	if o.HasDamage() {
		var dmg msolid.KRPrms
		err = dmg.Init(o.Damage)
	}
	return
}
