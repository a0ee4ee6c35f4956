// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// FuncData holds function definition
type FuncData struct {
	Name string     `json:"name"` // name of function. ex: hard1, myfunction1, etc.
	Type string     `json:"type"` // type of function. ex: lin, pts
	Prms dbf.Params `json:"prms"` // parameters
}

// Funcs holds functions
type FuncsData []*FuncData

// Get returns function by name. An empty name or "none" returns nil
func (o FuncsData) Get(name string) (fcn dbf.T, err error) {
	if name == "" || name == "none" {
		return
	}
	for _, f := range o {
		if f.Name == name {
			return f.alloc()
		}
	}
	err = chk.Err("cannot find function named %q\n", name)
	return
}

// alloc allocates the function. dbf.New panics on unknown types or missing parameters
func (o FuncData) alloc() (fcn dbf.T, err error) {
	defer func() {
		if r := recover(); r != nil {
			fcn, err = nil, chk.Err("cannot get function named %q because of the following error:\n%v", o.Name, r)
		}
	}()
	fcn = dbf.New(o.Type, o.Prms)
	return
}
