// Copyright ©2024 The RESESOP Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resesop

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kenaj123/RESESOP/geometry"
)

// TwoDirections implements the sequential subspace optimization method with
// two search directions: the direction of the violated subproblem and the
// direction of the previous update.
//
// An update first projects the iterate onto the upper boundary
//  H(u, α+ζ)
// of the current stripe. If the result leaves the stripe of the previous
// update, it is projected further onto the intersection of H(u, α+ζ) and the
// violated boundary of the previous stripe.
//
// The error history holds the absolute error ‖x - groundtruth‖.
type TwoDirections struct {
	prevU     []float64
	prevAlpha float64
	prevZeta  float64
	ft        []float64
}

// Init implements the Method interface. The previous stripe is set to the
// whole space.
func (m *TwoDirections) Init(x []float64) {
	m.prevU = reuse(m.prevU, len(x))
	copy(m.prevU, x)
	m.prevAlpha = 0
	m.prevZeta = math.Inf(1)
	m.ft = reuse(m.ft, len(x))
}

// Update implements the Method interface.
func (m *TwoDirections) Update(ctx *Context) geometry.Status {
	u := ctx.Direction
	upper := ctx.Alpha + ctx.Zeta
	if geometry.ProjectHyperplane(m.ft, ctx.X, u, upper) == geometry.Degenerate {
		return geometry.Degenerate
	}

	status := geometry.Success
	c := floats.Dot(m.ft, m.prevU)
	switch {
	case c > m.prevAlpha+m.prevZeta:
		status = geometry.ProjectHyperplanes(ctx.X, m.ft, u, m.prevU, upper, m.prevAlpha+m.prevZeta)
	case c < m.prevAlpha-m.prevZeta:
		status = geometry.ProjectHyperplanes(ctx.X, m.ft, u, m.prevU, upper, m.prevAlpha-m.prevZeta)
	default:
		copy(ctx.X, m.ft)
	}

	copy(m.prevU, u)
	m.prevAlpha = ctx.Alpha
	m.prevZeta = ctx.Zeta
	return status
}

// ErrorNorm implements the Method interface.
func (*TwoDirections) ErrorNorm(x, groundtruth []float64) float64 {
	return floats.Distance(x, groundtruth, 2)
}
