// Copyright ©2024 The RESESOP Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resesop

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"

	"github.com/kenaj123/RESESOP/internal/triplet"
)

func TestMatrixOperators(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	const (
		rows  = 12
		dim   = 5
		block = 3
	)
	a := make([]float64, rows*dim)
	sp := triplet.New(rows, dim)
	for i := 0; i < rows; i++ {
		for j := 0; j < dim; j++ {
			if rnd.Float64() < 0.5 {
				continue
			}
			v := rnd.NormFloat64()
			a[i*dim+j] = v
			sp.Append(i, j, v)
		}
	}
	var dense []mat.Matrix
	for lo := 0; lo < rows; lo += block {
		dense = append(dense, mat.NewDense(block, dim, a[lo*dim:(lo+block)*dim]))
	}
	ops := []Operators{
		MatrixOperators(dense),
		linearBlocks(sp.Blocks(block)),
	}

	bi := blas64.Implementation()
	x := make([]float64, dim)
	for i := range x {
		x[i] = rnd.NormFloat64()
	}
	for i := 0; i < rows/block; i++ {
		ai := a[i*block*dim : (i+1)*block*dim]
		want := make([]float64, block)
		bi.Dgemv(blas.NoTrans, block, dim, 1, ai, dim, x, 1, 0, want, 1)
		w := make([]float64, block)
		for k := range w {
			w[k] = rnd.NormFloat64()
		}
		wantT := make([]float64, dim)
		bi.Dgemv(blas.Trans, block, dim, 1, ai, dim, w, 1, 0, wantT, 1)

		for k, op := range ops {
			got := make([]float64, block)
			op.Forward(got, i, x)
			if !floats.EqualApprox(got, want, 1e-14) {
				t.Errorf("Block %v, operators %v: A*x=%v, want %v", i, k, got, want)
			}
			gotT := make([]float64, dim)
			op.Adjoint(gotT, i, w)
			if !floats.EqualApprox(gotT, wantT, 1e-14) {
				t.Errorf("Block %v, operators %v: A^T*w=%v, want %v", i, k, gotT, wantT)
			}
		}
	}
}

func TestProblemTolerance(t *testing.T) {
	p := Problem{
		G:     [][]float64{{1}, {2}},
		Eta:   []float64{0.5, 0},
		Delta: []float64{0.1, 0.2},
	}
	for i, want := range []float64{2.1, 0.2} {
		if got := p.Tolerance(i, 4); !scalar.EqualWithinAbs(got, want, 1e-15) {
			t.Errorf("subproblem %v: unexpected tolerance %v, want %v", i, got, want)
		}
	}
	p.Eta, p.Delta = nil, nil
	if got := p.Tolerance(1, 4); got != 0 {
		t.Errorf("exact subproblem: unexpected tolerance %v", got)
	}
}
