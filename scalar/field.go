// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scalar implements the arithmetic used by the constitutive models. Models are
// written once against Field and evaluated either with plain float64 numbers or with dual
// numbers carrying one derivative channel
package scalar

import (
	"math"

	"gonum.org/v1/gonum/num/dual"
)

// Field defines the arithmetic capability over a scalar representation T
type Field[T any] interface {
	Const(v float64) T             // Const lifts a constant (zero derivative)
	Var(v, dv float64) T           // Var lifts a value with derivative channel dv (if any)
	Real(x T) float64              // Real returns the primal value
	Add(x, y T) T                  // Add returns x + y
	Sub(x, y T) T                  // Sub returns x - y
	Mul(x, y T) T                  // Mul returns x * y
	Div(x, y T) T                  // Div returns x / y
	Neg(x T) T                     // Neg returns -x
	Scale(a float64, x T) T        // Scale returns a * x
	Sinh(x T) T                    // Sinh returns sinh(x)
	Cosh(x T) T                    // Cosh returns cosh(x)
	Exp(x T) T                     // Exp returns exp(x)
	Pow(x T, p float64) T          // Pow returns x^p
	Sqrt(x T) T                    // Sqrt returns sqrt(x)
	Apply(x T, fx, dfdx float64) T // Apply returns f(x) given f and f' evaluated at Real(x)
	Zeros(n int) []T               // Zeros allocates n zero values
}

// Real implements Field for float64 numbers (no derivative propagation) //////////////////

// Real is the plain numeric field
type Real struct{}

func (Real) Const(v float64) float64 { return v }
func (Real) Var(v, dv float64) float64 { return v }
func (Real) Real(x float64) float64 { return x }
func (Real) Add(x, y float64) float64 { return x + y }
func (Real) Sub(x, y float64) float64 { return x - y }
func (Real) Mul(x, y float64) float64 { return x * y }
func (Real) Div(x, y float64) float64 { return x / y }
func (Real) Neg(x float64) float64 { return -x }
func (Real) Scale(a, x float64) float64 { return a * x }
func (Real) Sinh(x float64) float64 { return math.Sinh(x) }
func (Real) Cosh(x float64) float64 { return math.Cosh(x) }
func (Real) Exp(x float64) float64 { return math.Exp(x) }
func (Real) Pow(x, p float64) float64 { return math.Pow(x, p) }
func (Real) Sqrt(x float64) float64 { return math.Sqrt(x) }
func (Real) Apply(x, fx, dfdx float64) float64 { return fx }
func (Real) Zeros(n int) []float64 { return make([]float64, n) }

// Dual implements Field for dual numbers //////////////////////////////////////////////////

// Dual is the derivative-propagating field: x = Real + ε Emag with ε² = 0
type Dual struct{}

func (Dual) Const(v float64) dual.Number { return dual.Number{Real: v} }
func (Dual) Var(v, dv float64) dual.Number { return dual.Number{Real: v, Emag: dv} }
func (Dual) Real(x dual.Number) float64 { return x.Real }

func (Dual) Add(x, y dual.Number) dual.Number {
	return dual.Number{Real: x.Real + y.Real, Emag: x.Emag + y.Emag}
}
func (Dual) Sub(x, y dual.Number) dual.Number {
	return dual.Number{Real: x.Real - y.Real, Emag: x.Emag - y.Emag}
}
func (Dual) Mul(x, y dual.Number) dual.Number { return dual.Mul(x, y) }
func (Dual) Div(x, y dual.Number) dual.Number { return dual.Mul(x, dual.Inv(y)) }
func (Dual) Neg(x dual.Number) dual.Number { return dual.Scale(-1, x) }
func (Dual) Scale(a float64, x dual.Number) dual.Number { return dual.Scale(a, x) }
func (Dual) Sinh(x dual.Number) dual.Number { return dual.Sinh(x) }
func (Dual) Cosh(x dual.Number) dual.Number { return dual.Cosh(x) }
func (Dual) Exp(x dual.Number) dual.Number { return dual.Exp(x) }
func (Dual) Pow(x dual.Number, p float64) dual.Number { return dual.PowReal(x, p) }
func (Dual) Sqrt(x dual.Number) dual.Number { return dual.Sqrt(x) }
func (Dual) Zeros(n int) []dual.Number { return make([]dual.Number, n) }

// Apply chains the slope of an external callable into the derivative channel
func (Dual) Apply(x dual.Number, fx, dfdx float64) dual.Number {
	return dual.Number{Real: fx, Emag: dfdx * x.Emag}
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////

// IsFinite tells whether the primal value of x is neither NaN nor ±Inf
func IsFinite[T any](F Field[T], x T) bool {
	v := F.Real(x)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Abs returns |x| of the primal value
func Abs[T any](F Field[T], x T) float64 {
	return math.Abs(F.Real(x))
}

// Reals returns the primal values of a slice
func Reals[T any](F Field[T], x []T) (res []float64) {
	res = make([]float64, len(x))
	for i, v := range x {
		res[i] = F.Real(v)
	}
	return
}

// Consts lifts a slice of constants
func Consts[T any](F Field[T], v []float64) (res []T) {
	res = make([]T, len(v))
	for i, a := range v {
		res[i] = F.Const(a)
	}
	return
}
