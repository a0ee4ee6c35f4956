// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"
	"math"
	"sort"
	"strings"

	"github.com/Applied-Materials-Technology/sloth/msolid"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// component names of Mandel tensors
var (
	SigKeys  = []string{"sx", "sy", "sz", "sxy", "syz", "szx"}
	EpsKeys  = []string{"ex", "ey", "ez", "exy", "eyz", "ezx"}
	EpsPkeys = []string{"epx", "epy", "epz", "epxy", "epyz", "epzx"}
)

// Define defines aliases
//  alias -- an alias to a group of points or to an individual point. Example: "A" or "a b c".
//           If the number of points found is equal to the number of words in alias, one
//           alias is set for each point; otherwise a group is created.
//  Note:
//    To use spaces in aliases, prefix the alias with an exclamation mark; e.g "!right column"
func Define(alias string, loc Locator) {

	// check
	if len(alias) < 1 {
		chk.Panic("alias must have at least one character. %q is invalid", alias)
	}

	// locate points
	pts := loc.Locate()
	if len(pts) < 1 {
		chk.Panic("cannot define entities with alias=%q and locator=%v", alias, loc)
	}

	// set results map
	if alias[0] == '!' {
		Results[alias[1:]] = pts
		return
	}
	lbls := strings.Fields(alias)
	if len(lbls) == len(pts) {
		for i, l := range lbls {
			Results[l] = Points{pts[i]}
		}
		return
	}
	Results[alias] = pts
}

// LoadResults loads the time series of all defined points
func LoadResults() {
	for _, pts := range Results {
		for _, p := range pts {
			if p.Vals == nil {
				p.Vals = Series(p.Idx)
			}
		}
	}
}

// Series computes the time series of the point with index idx in simulation
func Series(idx int) (vals map[string][]float64) {
	drv, pth := Dom.Drivers[idx], Dom.Paths[idx]
	F := Dom.F
	nsig := drv.Elast.Nsig
	vals = make(map[string][]float64)
	t := 0.0
	eps := make([]float64, nsig)
	for k, s := range drv.Res {
		if k > 0 {
			t += pth.Dt[k-1]
			for i, Δε := range pth.Deps[k-1] {
				eps[i] += Δε
			}
		}
		utl.StrFltsMapAppend(vals, "t", t)
		for i := 0; i < nsig; i++ {
			c := 1.0
			if i > 2 {
				c = 1.0 / math.Sqrt2
			}
			utl.StrFltsMapAppend(vals, SigKeys[i], c*s.Sig[i])
			utl.StrFltsMapAppend(vals, EpsKeys[i], c*eps[i])
			utl.StrFltsMapAppend(vals, EpsPkeys[i], c*s.EpsP[i])
		}
		utl.StrFltsMapAppend(vals, "p", -(s.Sig[0]+s.Sig[1]+s.Sig[2])/3.0)
		utl.StrFltsMapAppend(vals, "q", msolid.Qeq[float64](F, msolid.Dev[float64](F, s.Sig)))
		utl.StrFltsMapAppend(vals, "pbar", s.Pbar)
		utl.StrFltsMapAppend(vals, "dgam", s.Dgam)
		utl.StrFltsMapAppend(vals, "R", s.R)
		utl.StrFltsMapAppend(vals, "D", s.D)
	}
	return
}

// GetRes gets results as a time series corresponding to a given alias of a single point or,
// for a set of points, the values at time index idx
//  idx -- index in time series; use -1 for the last item. Ignored if alias defines a single point
func GetRes(key, alias string, idx int) (res []float64) {
	pts, ok := Results[alias]
	if !ok {
		chk.Panic("cannot get %q at %q", key, alias)
	}
	if len(pts) == 1 {
		if v, ok := pts[0].Vals[key]; ok {
			return v
		}
		chk.Panic("cannot get %q at %q", key, alias)
	}
	for _, p := range pts {
		v, ok := p.Vals[key]
		if !ok {
			chk.Panic("cannot get %q at %q", key, alias)
		}
		i := idx
		if i < 0 {
			i = len(v) - 1
		}
		res = append(res, v[i])
	}
	return
}

// GetIds return the indices of points corresponding to alias
func GetIds(alias string) (ids []int) {
	if pts, ok := Results[alias]; ok {
		for _, p := range pts {
			ids = append(ids, p.Idx)
		}
	}
	return
}

// GetCoords returns the coordinates of a single point
func GetCoords(alias string) []float64 {
	if pts, ok := Results[alias]; ok {
		if len(pts) == 1 {
			return pts[0].X
		}
	}
	chk.Panic("cannot get coordinates of point with alias %q (make sure this alias corresponds to a single point)", alias)
	return nil
}

// Keys returns the sorted keys of the time series of a single point
func Keys(alias string) (keys []string) {
	pts, ok := Results[alias]
	if !ok || len(pts) != 1 {
		chk.Panic("cannot get keys of point with alias %q (make sure this alias corresponds to a single point)", alias)
	}
	for k := range pts[0].Vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return
}

// WriteTable writes the time series of a single point to a text file (columns = keys)
//  keys -- selected keys; nil means all keys with "t" first
func WriteTable(dirout, fn, alias string, keys []string, verbose bool) {
	if keys == nil {
		keys = []string{"t"}
		for _, k := range Keys(alias) {
			if k != "t" {
				keys = append(keys, k)
			}
		}
	}
	cols := make([][]float64, len(keys))
	for j, k := range keys {
		cols[j] = GetRes(k, alias, -1)
	}
	var buf bytes.Buffer
	for _, k := range keys {
		io.Ff(&buf, "%23s", k)
	}
	io.Ff(&buf, "\n")
	for i := range cols[0] {
		for j := range keys {
			io.Ff(&buf, "%23.15e", cols[j][i])
		}
		io.Ff(&buf, "\n")
	}
	if verbose {
		io.WriteFileVD(dirout, fn, &buf)
		return
	}
	io.WriteFileD(dirout, fn, &buf)
}

// String returns a summary of the final values of all points
func String() string {
	var buf bytes.Buffer
	io.Ff(&buf, "%4s %4s %-10s %13s %13s %13s %13s\n", "eid", "ipid", "mat", "t", "q", "pbar", "D")
	for _, p := range Ipoints {
		s := Dom.Drivers[p.Idx].Old
		io.Ff(&buf, "%4d %4d %-10s %13.6e %13.6e %13.6e %13.6e\n", p.Eid, p.Ipid, p.Mat, Dom.Drivers[p.Idx].T,
			msolid.Qeq(Dom.F, msolid.Dev(Dom.F, s.Sig)), s.Pbar, s.D)
	}
	return buf.String()
}
