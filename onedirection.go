// Copyright ©2024 The RESESOP Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resesop

import (
	"gonum.org/v1/gonum/floats"

	"github.com/kenaj123/RESESOP/geometry"
)

// OneDirection implements the sequential subspace optimization method with
// one search direction. Every update projects the iterate onto the stripe
// of the violated subproblem.
//
// The error history holds the relative error ‖x - groundtruth‖/‖groundtruth‖.
type OneDirection struct{}

// Init implements the Method interface.
func (OneDirection) Init(x []float64) {}

// Update implements the Method interface.
func (OneDirection) Update(ctx *Context) geometry.Status {
	return geometry.ProjectStripe(ctx.X, ctx.X, ctx.Direction, ctx.Alpha, ctx.Zeta)
}

// ErrorNorm implements the Method interface.
func (OneDirection) ErrorNorm(x, groundtruth []float64) float64 {
	return floats.Distance(x, groundtruth, 2) / floats.Norm(groundtruth, 2)
}
