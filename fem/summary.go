// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Summary records summary of a run
type Summary struct {

	// main data
	Npts    int           // number of points
	Times   []float64     // [npts] final times reached by each point
	Nits    []int         // [npts] total number of Newton iterations of each point
	Ncuts   []int         // [npts] number of step cuts of each point
	Elapsed time.Duration // wall time of the run
	Dual    bool          // derivatives were propagated
	Dirout  string        // directory where results are stored
	Fnkey   string        // filename key of simulation
}

// NewSummary collects the summary of a domain after a run
func NewSummary[T any](d *Domain[T], elapsed time.Duration, dual bool) (o *Summary) {
	o = &Summary{Npts: len(d.Drivers), Elapsed: elapsed, Dual: dual, Dirout: d.Sim.DirOut, Fnkey: d.Sim.Key}
	for _, drv := range d.Drivers {
		o.Times = append(o.Times, drv.T)
		o.Nits = append(o.Nits, drv.Nit)
		o.Ncuts = append(o.Ncuts, drv.Ncut)
	}
	return
}

// Save saves summary to disc
func (o Summary) Save(enctype string, verbose bool) (err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := utl.NewEncoder(&buf, enctype)

	// encode summary
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary\n%v", err)
	}

	// save file
	err = os.MkdirAll(o.Dirout, 0777)
	if err != nil {
		return
	}
	return save_file(out_sum_path(o.Dirout, o.Fnkey, enctype), &buf, verbose)
}

// ReadSum reads summary back
func ReadSum(dir, fnkey, enctype string) (o *Summary, err error) {

	// open file
	fil, err := os.Open(out_sum_path(dir, fnkey, enctype))
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()

	// decode summary
	o = new(Summary)
	err = utl.NewDecoder(fil, enctype).Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode summary\n%v", err)
	}
	return
}
