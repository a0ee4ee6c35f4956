// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import "github.com/Applied-Materials-Technology/sloth/scalar"

// State holds the history variables of one integration point. Two instances exist per point:
// Old (last converged step; read-only during a step) and Cur (written once per step)
type State[T any] struct {

	// essential
	Sig []T // σ: current Cauchy stress tensor (Mandel) [nsig]

	// viscoplasticity
	EpsP    []T  // εp: plastic strain tensor (Mandel) [nsig]
	R       T    // r: hardening variable
	Pbar    T    // ε̄p: effective inelastic strain
	Dgam    T    // Δp: scalar increment of the last step
	Loading bool // the last step was viscoplastic

	// damage
	D T // damage index ∈ [0,1]
}

// NewState allocates a zero-initialised state (first visit of a point)
func NewState[T any](nsig int) *State[T] {
	return &State[T]{
		Sig:  make([]T, nsig),
		EpsP: make([]T, nsig),
	}
}

// Set copies states
//  Note: 1) this and other states must have been pre-allocated with the same sizes
//        2) this method does not check for errors
func (o *State[T]) Set(other *State[T]) {
	copy(o.Sig, other.Sig)
	copy(o.EpsP, other.EpsP)
	o.R = other.R
	o.Pbar = other.Pbar
	o.Dgam = other.Dgam
	o.Loading = other.Loading
	o.D = other.D
}

// GetCopy returns a copy of this state
func (o *State[T]) GetCopy() *State[T] {
	other := NewState[T](len(o.Sig))
	other.Set(o)
	return other
}

// Primal returns a copy of a state holding the primal values only
func Primal[T any](F scalar.Field[T], o *State[T]) *State[float64] {
	return &State[float64]{
		Sig:     scalar.Reals(F, o.Sig),
		EpsP:    scalar.Reals(F, o.EpsP),
		R:       F.Real(o.R),
		Pbar:    F.Real(o.Pbar),
		Dgam:    F.Real(o.Dgam),
		Loading: o.Loading,
		D:       F.Real(o.D),
	}
}

// Propagate copies the history of old into cur unchanged (elastic step). Stresses are not
// part of the history and are left untouched
func Propagate[T any](cur, old *State[T]) {
	copy(cur.EpsP, old.EpsP)
	cur.R = old.R
	cur.Pbar = old.Pbar
	cur.D = old.D
	var zero T
	cur.Dgam = zero
	cur.Loading = false
}
