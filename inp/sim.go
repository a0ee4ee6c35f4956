// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp implements the input data read from (.sim) and (.mat) files. JSON is the
// default format; files with .yaml or .yml extensions are decoded as YAML
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/Applied-Materials-Technology/sloth/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Data holds global data for simulations
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	Matfile string `json:"matfile"` // materials file path
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/sloth
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"
	Ndim    int    `json:"ndim"`    // space dimension: 2 or 3
	Dual    bool   `json:"dual"`    // propagate derivatives with dual numbers
}

// SolverData holds the settings of the local solvers
type SolverData struct {

	// Newton-Raphson
	NmaxIt int     `json:"nmaxit"` // number of max iterations
	Atol   float64 `json:"atol"`   // absolute tolerance
	Rtol   float64 `json:"rtol"`   // relative tolerance

	// divergence control
	DvgCtrl bool    `json:"dvgctrl"` // use divergence control
	NdvgMax int     `json:"ndvgmax"` // max number of continued divergence
	DtMin   float64 `json:"dtmin"`   // minimum value of Dt

	// parallel
	Workers int `json:"workers"` // max number of points running concurrently
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	var nl msolid.NewtonConfig
	nl.SetDefault()
	o.NmaxIt = nl.NmaxIt
	o.Atol = nl.Atol
	o.Rtol = nl.Rtol
	o.NdvgMax = 20
	o.DtMin = 1e-8
	o.Workers = 1
}

// PostProcess checks values and sets derived ones
func (o *SolverData) PostProcess() (err error) {
	if o.NmaxIt < 1 {
		return chk.Err("solver: nmaxit=%d must be positive", o.NmaxIt)
	}
	if o.Atol <= 0 && o.Rtol <= 0 {
		return chk.Err("solver: at least one of atol=%g and rtol=%g must be positive", o.Atol, o.Rtol)
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return
}

// Newton returns the settings of the Newton-Raphson method
func (o SolverData) Newton() msolid.NewtonConfig {
	return msolid.NewtonConfig{NmaxIt: o.NmaxIt, Atol: o.Atol, Rtol: o.Rtol}
}

// PathData holds the definition of a strain path. Either explicit increments, a strain rate
// or an isochoric uniaxial strain rate must be given
type PathData struct {
	Deps     [][]float64 `json:"deps"`     // strain increments (Mandel) [ninc][nsig]
	Dts      []float64   `json:"dts"`      // time increments [ninc]
	Rate     []float64   `json:"rate"`     // constant strain rate (Mandel) [nsig]
	Uniaxial float64     `json:"uniaxial"` // isochoric uniaxial strain rate along x
	Dt       float64     `json:"dt"`       // time increment (with rate or uniaxial)
	Ninc     int         `json:"ninc"`     // number of increments (with rate or uniaxial)
}

// GetPath returns the strain path
func (o PathData) GetPath(ndim int) (pth *msolid.Path, err error) {
	pth = new(msolid.Path)
	switch {
	case len(o.Deps) > 0:
		pth.Deps, pth.Dt = o.Deps, o.Dts
	case len(o.Rate) > 0:
		err = pth.SetRate(o.Rate, o.Dt, o.Ninc)
	case o.Uniaxial != 0:
		err = pth.SetRate(msolid.UniaxialRate(ndim, o.Uniaxial), o.Dt, o.Ninc)
	default:
		return nil, chk.Err("path: one of deps, rate or uniaxial must be given")
	}
	if err != nil {
		return
	}
	err = pth.Check(2 * ndim)
	return
}

// PointData holds the data of one integration point
type PointData struct {
	Eid   int                `json:"eid"`   // element id
	Ipid  int                `json:"ipid"`  // integration point index
	X     []float64          `json:"x"`     // coordinates
	Mat   string             `json:"mat"`   // material name
	Props map[string]float64 `json:"props"` // per-point material properties
	Path  PathData           `json:"path"`  // strain path
	Seed  []float64          `json:"seed"`  // derivative channel of strain increments (dual numbers)
}

// Point returns the identity and material data of this point
func (o PointData) Point() msolid.Point {
	return msolid.Point{Eid: o.Eid, Ipid: o.Ipid, X: o.X, Props: o.Props}
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data   Data         `json:"data"`   // stores global simulation data
	Solver SolverData   `json:"solver"` // solver data
	Points []*PointData `json:"points"` // integration points

	// derived
	Key     string // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	DirOut  string // directory to save results
	EncType string // encoder type
	MatDb   *MatDb // materials database
}

// ReadSim reads all simulation data from a .sim file
//  alias -- added to the simulation key
func ReadSim(simfilepath, alias string) (o *Simulation, err error) {

	// new sim
	o = new(Simulation)
	o.Data.Ndim = 3
	o.Solver.SetDefault()

	// read file
	err = decodeFile(simfilepath, o)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read simulation file %q:\n%v", simfilepath, err)
	}
	if o.Data.Ndim != 2 && o.Data.Ndim != 3 {
		return nil, chk.Err("ReadSim: ndim=%d is incorrect; must be 2 or 3", o.Data.Ndim)
	}

	// input directory and filename key
	dir := os.ExpandEnv(filepath.Dir(simfilepath))
	fnkey := io.FnKey(filepath.Base(simfilepath))
	o.Key = fnkey
	if alias != "" {
		o.Key += "-" + alias
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = filepath.Join(os.TempDir(), "sloth", fnkey)
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}

	// set solver constants
	err = o.Solver.PostProcess()
	if err != nil {
		return nil, err
	}

	// read materials database
	o.MatDb, err = ReadMat(dir, o.Data.Matfile, o.Data.Ndim)
	if err != nil {
		return nil, chk.Err("ReadSim: cannot read materials database:\n%v", err)
	}

	// check points
	if len(o.Points) == 0 {
		return nil, chk.Err("ReadSim: at least one point must be given")
	}
	for i, p := range o.Points {
		if o.MatDb.Get(p.Mat) == nil {
			return nil, chk.Err("ReadSim: cannot find material %q of point %d", p.Mat, i)
		}
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// decodeFile decodes a JSON or YAML file into v
func decodeFile(fn string, v interface{}) (err error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return
	}
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(b, v)
	}
	return json.Unmarshal(b, v)
}
