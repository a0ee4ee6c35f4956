// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"github.com/Applied-Materials-Technology/sloth/scalar"
	"github.com/cpmech/gosl/tsr"
)

// Dev computes the deviator of a second order tensor in Mandel basis
func Dev[T any](F scalar.Field[T], a []T) (dev []T) {
	tr := F.Add(F.Add(a[0], a[1]), a[2])
	m := F.Scale(1.0/3.0, tr)
	dev = make([]T, len(a))
	for i := 0; i < len(a); i++ {
		dev[i] = F.Sub(a[i], F.Scale(tsr.SecIdenMan[i], m))
	}
	return
}

// DoubleDot computes a:b in Mandel basis
func DoubleDot[T any](F scalar.Field[T], a, b []T) (res T) {
	res = F.Const(0)
	for i := 0; i < len(a); i++ {
		res = F.Add(res, F.Mul(a[i], b[i]))
	}
	return
}

// Qeq computes the von Mises equivalent stress sqrt(3/2 dev:dev) for a given deviator.
// The primal value is equal to the von Mises stress of the original tensor
func Qeq[T any](F scalar.Field[T], dev []T) T {
	return F.Sqrt(F.Scale(1.5, DoubleDot(F, dev, dev)))
}
