// Copyright ©2024 The RESESOP Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package triplet provides a sparse matrix in coordinate format that can be
// split into row blocks, one block per subproblem.
package triplet

type triplet struct {
	i, j int
	v    float64
}

// Matrix is an r×c sparse matrix stored as a list of (i, j, v) entries.
// Duplicate entries are summed.
type Matrix struct {
	r, c int
	data []triplet
}

func New(r, c int) *Matrix {
	return &Matrix{
		r: r,
		c: c,
	}
}

func (m *Matrix) Dims() (r, c int) {
	return m.r, m.c
}

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int {
	return len(m.data)
}

func (m *Matrix) Append(i, j int, v float64) {
	if i < 0 || m.r <= i {
		panic("triplet: row index out of range")
	}
	if j < 0 || m.c <= j {
		panic("triplet: column index out of range")
	}
	m.data = append(m.data, triplet{i, j, v})
}

// Rows returns the block of rows lo <= i < hi as a new (hi-lo)×c matrix.
func (m *Matrix) Rows(lo, hi int) *Matrix {
	if lo < 0 || hi < lo || m.r < hi {
		panic("triplet: row range out of range")
	}
	b := New(hi-lo, m.c)
	for _, e := range m.data {
		if lo <= e.i && e.i < hi {
			b.data = append(b.data, triplet{e.i - lo, e.j, e.v})
		}
	}
	return b
}

// Blocks splits m into consecutive row blocks of at most size rows.
func (m *Matrix) Blocks(size int) []*Matrix {
	if size <= 0 {
		panic("triplet: block size not positive")
	}
	var blocks []*Matrix
	for lo := 0; lo < m.r; lo += size {
		hi := lo + size
		if hi > m.r {
			hi = m.r
		}
		blocks = append(blocks, m.Rows(lo, hi))
	}
	return blocks
}

// MulVec stores A*x into dst.
func (m *Matrix) MulVec(dst, x []float64) {
	if m.c != len(x) || m.r != len(dst) {
		panic("triplet: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for _, e := range m.data {
		dst[e.i] += e.v * x[e.j]
	}
}

// MulTransVec stores A^T*x into dst.
func (m *Matrix) MulTransVec(dst, x []float64) {
	if m.c != len(dst) || m.r != len(x) {
		panic("triplet: dimension mismatch")
	}
	for i := range dst {
		dst[i] = 0
	}
	for _, e := range m.data {
		dst[e.j] += e.v * x[e.i]
	}
}
