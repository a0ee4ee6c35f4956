// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/Applied-Materials-Technology/sloth/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// SaveStates saves the history of states of all points to a file
func (o Domain[T]) SaveStates(verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := utl.NewEncoder(&buf, o.Sim.EncType)

	// number of points
	err = enc.Encode(len(o.Drivers))
	if err != nil {
		return chk.Err("cannot encode number of points\n%v", err)
	}

	// histories
	for i, drv := range o.Drivers {
		err = enc.Encode(drv.Res)
		if err != nil {
			return chk.Err("cannot encode states of point %d\n%v", i, err)
		}
	}

	// save file
	err = os.MkdirAll(o.Sim.DirOut, 0777)
	if err != nil {
		return chk.Err("cannot create directory for output results (%s): %v", o.Sim.DirOut, err)
	}
	fn := out_ips_path(o.Sim.DirOut, o.Sim.Key, o.Sim.EncType)
	return save_file(fn, &buf, verbose)
}

// ReadStates reads the history of states of all points from a file. The last state of
// each history becomes the Old and Current states of the corresponding point and the time
// is set from the path
func (o *Domain[T]) ReadStates(dir, fnkey, enctype string) (err error) {

	// open file
	fn := out_ips_path(dir, fnkey, enctype)
	fil, err := os.Open(fn)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()

	// decoder
	dec := utl.NewDecoder(fil, enctype)

	// number of points
	var npts int
	err = dec.Decode(&npts)
	if err != nil {
		return chk.Err("cannot decode number of points:\n%v", err)
	}
	if npts != len(o.Drivers) {
		return chk.Err("number of points in file (%d) is different than the number of points in domain (%d)", npts, len(o.Drivers))
	}

	// histories
	for i, drv := range o.Drivers {
		var res []*msolid.State[T]
		err = dec.Decode(&res)
		if err != nil {
			return chk.Err("cannot decode states of point %d:\n%v", i, err)
		}
		if len(res) == 0 {
			return chk.Err("history of point %d is empty", i)
		}
		if len(res) > o.Paths[i].Ninc()+1 {
			return chk.Err("history of point %d has more states (%d) than increments in path (%d)", i, len(res), o.Paths[i].Ninc())
		}
		drv.Res = res
		drv.Old.Set(res[len(res)-1])
		drv.Cur.Set(res[len(res)-1])
		drv.T = 0
		for _, Δt := range o.Paths[i].Dt[:len(res)-1] {
			drv.T += Δt
		}
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_ips_path(dir, fnkey, enctype string) string {
	return filepath.Join(dir, io.Sf("%s_ips.%s", fnkey, enctype))
}

func out_sum_path(dir, fnkey, enctype string) string {
	return filepath.Join(dir, io.Sf("%s_sum.%s", fnkey, enctype))
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
