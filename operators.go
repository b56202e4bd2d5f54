// Copyright ©2024 The RESESOP Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resesop

import "gonum.org/v1/gonum/mat"

// Linear is a linear operator given by its action and the action of its
// transpose. Both methods store the result into dst.
type Linear interface {
	MulVec(dst, x []float64)
	MulTransVec(dst, x []float64)
}

// LinearOperators returns the Operators of the subproblems A_i = a[i].
func LinearOperators(a []Linear) Operators {
	return Operators{
		Forward: func(dst []float64, i int, x []float64) {
			a[i].MulVec(dst, x)
		},
		Adjoint: func(dst []float64, i int, w []float64) {
			a[i].MulTransVec(dst, w)
		},
	}
}

// MatrixOperators returns the Operators of the subproblems A_i = a[i], where
// every a[i] is a len(g_i)×dim matrix.
func MatrixOperators(a []mat.Matrix) Operators {
	return Operators{
		Forward: func(dst []float64, i int, x []float64) {
			d := mat.NewVecDense(len(dst), dst)
			d.MulVec(a[i], mat.NewVecDense(len(x), x))
		},
		Adjoint: func(dst []float64, i int, w []float64) {
			d := mat.NewVecDense(len(dst), dst)
			d.MulVec(a[i].T(), mat.NewVecDense(len(w), w))
		},
	}
}
