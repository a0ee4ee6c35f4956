// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/Applied-Materials-Technology/sloth/scalar"

// Props holds spatially varying material data of one integration point; e.g. yield_stress
type Props map[string]float64

// Get returns the value named name or def if absent
func (o Props) Get(name string, def float64) float64 {
	if v, ok := o[name]; ok {
		return v
	}
	return def
}

// Point holds the identity of an integration point and its own material data
type Point struct {
	Eid   int       // element id
	Ipid  int       // integration point index
	X     []float64 // coordinates
	Props Props     // per-point material properties (override model parameters)
}

// Step holds the working data of one point during one time step
type Step[T any] struct {
	Pt  *Point    // integration point; may be nil
	Old *State[T] // last converged state (read-only)
	Cur *State[T] // state being computed
	Dt  float64   // Δt: time increment
	G3  T         // μ̄ = 3G: shear modulus factor
	Fy  T         // yield condition; valid after Initialize
	Nit int       // number of Newton iterations performed

	ready bool // yield condition has been computed in this step
}

// NewStep returns a new step for the given point and states
func NewStep[T any](F scalar.Field[T], pt *Point, old, cur *State[T], Δt, threeG float64) *Step[T] {
	return &Step[T]{Pt: pt, Old: old, Cur: cur, Dt: Δt, G3: F.Const(threeG)}
}

// prop returns a per-point material property or the model default
func (o *Step[T]) prop(name string, def float64) float64 {
	if o.Pt == nil {
		return def
	}
	return o.Pt.Props.Get(name, def)
}

// x returns the point coordinates, if any
func (o *Step[T]) x() []float64 {
	if o.Pt == nil {
		return nil
	}
	return o.Pt.X
}
