// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// ConvergenceError reports that the local Newton iterations did not converge. It is
// recoverable: the caller may restore the old state and retry with a smaller step
type ConvergenceError struct {
	Eid, Ipid int     // point identity
	Nit       int     // number of iterations performed
	Scalar    float64 // last iterate Δp
	Residual  float64 // last residual
}

func (o *ConvergenceError) Error() string {
	return io.Sf("return mapping did not converge at element %d, point %d: %d iterations, Δp=%g, residual=%g",
		o.Eid, o.Ipid, o.Nit, o.Scalar, o.Residual)
}

// DamageError reports a damage index outside [0,1]. It is fatal: the simulation must stop
type DamageError struct {
	Eid, Ipid int       // point identity
	X         []float64 // point coordinates
	Value     float64   // offending damage index
}

func (o *DamageError) Error() string {
	return io.Sf("damage_index must be between 0 and 1 at element %d, point %d (x=%v). Current value is: %g",
		o.Eid, o.Ipid, o.X, o.Value)
}

// panicUninitialised stops the program when the residual is requested before Initialize
func panicUninitialised() {
	chk.Panic("the yield condition was not updated by Initialize before computing the residual")
}

// identity returns the point identity of a step
func identity[T any](s *Step[T]) (eid, ipid int, x []float64) {
	if s.Pt == nil {
		return -1, -1, nil
	}
	return s.Pt.Eid, s.Pt.Ipid, s.Pt.X
}
