// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import "math"

// Point holds the results of one integration point
type Point struct {
	Idx  int                  // index of point in simulation
	Eid  int                  // element id
	Ipid int                  // integration point index
	X    []float64            // coordinates
	Mat  string               // material name
	Vals map[string][]float64 // time series; e.g. "t", "sx", "pbar"
}

// Points is a set of points
type Points []*Point

// Locator defines interface for locating integration points
type Locator interface {
	Locate() Points
}

// P implements [element][integrationPoint] locator
//  Note: negative integration points ids means all integration points of element
type P [][]int

// At implements locator at coordinates
type At []float64

// M implements locator by material name
type M []string

// I implements locator by index of point in simulation
type I []int

// All implements locator of all points
type All struct{}

// Locate finds points
func (o P) Locate() (res Points) {
	for _, pair := range o {
		if len(pair) != 2 {
			continue
		}
		for _, p := range Ipoints {
			if p.Eid == pair[0] && (pair[1] < 0 || p.Ipid == pair[1]) {
				res = append(res, p)
			}
		}
	}
	return
}

// Locate finds points
func (o At) Locate() (res Points) {
	for _, p := range Ipoints {
		if len(p.X) < len(o) {
			continue
		}
		near := true
		for i, x := range o {
			if math.Abs(p.X[i]-x) > TolC {
				near = false
				break
			}
		}
		if near {
			res = append(res, p)
		}
	}
	return
}

// Locate finds points
func (o M) Locate() (res Points) {
	for _, p := range Ipoints {
		for _, name := range o {
			if p.Mat == name {
				res = append(res, p)
				break
			}
		}
	}
	return
}

// Locate finds points
func (o I) Locate() (res Points) {
	for _, idx := range o {
		if idx >= 0 && idx < len(Ipoints) {
			res = append(res, Ipoints[idx])
		}
	}
	return
}

// Locate finds points
func (o All) Locate() Points {
	return append(Points{}, Ipoints...)
}
