// Copyright ©2024 The RESESOP Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geometry provides orthogonal projections onto hyperplanes and
// stripes, and maximization of linear functionals over a ball intersected
// with a hyperplane or a stripe.
//
// A hyperplane is the set
//  H(u, α) = { z : ⟨z,u⟩ = α },
// and a stripe is the set
//  S(u, α, ζ) = { z : |⟨z,u⟩ - α| ≤ ζ },  ζ ≥ 0.
// A stripe with ζ = 0 is a hyperplane, a stripe with ζ = +Inf is the whole
// space.
//
// All functions treat vectors as flat slices. Results are stored into dst,
// which must have the length of the input vectors and may alias the input
// point.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Status reports the outcome of a geometric operation.
type Status int

const (
	// Success means that dst holds the result.
	Success Status = iota
	// Infeasible means that the constraint set does not intersect the ball.
	// dst is not modified.
	Infeasible
	// Degenerate means that the direction is zero or that two directions are
	// linearly dependent. Projections leave the input point in dst.
	Degenerate
)

func (s Status) String() string {
	switch s {
	case Success:
		return "Success"
	case Infeasible:
		return "Infeasible"
	case Degenerate:
		return "Degenerate"
	}
	return "Status(?)"
}

// ProjectHyperplane stores into dst the orthogonal projection of x onto
// H(u, α),
//  dst = x - (⟨u,x⟩-α)/⟨u,u⟩ u.
// If u is the zero vector, x is copied into dst and Degenerate is returned.
func ProjectHyperplane(dst, x, u []float64, alpha float64) Status {
	checkLen(dst, x, u)
	uu := floats.Dot(u, u)
	if uu == 0 {
		copy(dst, x)
		return Degenerate
	}
	t := (floats.Dot(u, x) - alpha) / uu
	floats.AddScaledTo(dst, x, -t, u)
	return Success
}

// ProjectHyperplanes stores into dst the orthogonal projection of f onto the
// intersection of H(u1, a1) and H(u2, a2). f must already lie in H(u1, a1).
//
// The correction is computed from the Gram matrix of u1 and u2. If its
// determinant vanishes relative to ‖u1‖²‖u2‖², the intersection is not
// well defined, f is copied into dst and Degenerate is returned.
func ProjectHyperplanes(dst, f, u1, u2 []float64, a1, a2 float64) Status {
	checkLen(dst, f, u1)
	checkLen(dst, f, u2)
	u11 := floats.Dot(u1, u1)
	u22 := floats.Dot(u2, u2)
	u12 := floats.Dot(u1, u2)
	det := u11*u22 - u12*u12
	if det <= gramTol*u11*u22 {
		copy(dst, f)
		return Degenerate
	}
	t := (floats.Dot(f, u2) - a2) / det
	t1 := -u12 * t
	t2 := u11 * t
	// dst = f - t1 u1 - t2 u2, with dst possibly aliasing f.
	floats.AddScaledTo(dst, f, -t1, u1)
	floats.AddScaled(dst, -t2, u2)
	return Success
}

// InStripe reports whether x belongs to S(u, α, ζ).
func InStripe(x, u []float64, alpha, zeta float64) bool {
	if len(x) != len(u) {
		panic(badLength)
	}
	return math.Abs(floats.Dot(x, u)-alpha) <= zeta
}

// ProjectStripe stores into dst the orthogonal projection of x onto
// S(u, α, ζ). If x is in the stripe, it is copied into dst unchanged,
// otherwise dst lies on the boundary hyperplane that x violates.
//
// If u is the zero vector and x is not in the stripe (that is, |α| > ζ and
// the stripe is empty), x is copied into dst and Degenerate is returned.
func ProjectStripe(dst, x, u []float64, alpha, zeta float64) Status {
	checkLen(dst, x, u)
	c := floats.Dot(u, x)
	switch {
	case c > alpha+zeta:
		return ProjectHyperplane(dst, x, u, alpha+zeta)
	case c < alpha-zeta:
		return ProjectHyperplane(dst, x, u, alpha-zeta)
	}
	copy(dst, x)
	return Success
}

// ArgmaxHyperplane stores into dst the point z of H(u, α) with ‖z‖ ≤ ρ that
// maximizes ⟨z,a⟩.
//
// Infeasible is returned if H(u, α) does not intersect the closed ball of
// radius ρ, that is, if its minimal-norm point α/‖u‖² u has norm larger than
// ρ. Degenerate is returned if u is the zero vector. In both cases dst is
// not modified.
//
// If the projection of a onto H(u, α) coincides with the minimal-norm point,
// every feasible point gives the same value and the minimal-norm point is
// returned. Otherwise the maximizer lies on the sphere of radius ρ.
//
// dst must not share memory with u.
func ArgmaxHyperplane(dst, u []float64, alpha, rho float64, a []float64) Status {
	checkLen(dst, u, a)
	uu := floats.Dot(u, u)
	if uu == 0 {
		return Degenerate
	}
	// The minimal-norm point is s*u and the projection of a is
	// a - t*u, so a_proj - u_proj = a - (t+s) u.
	s := alpha / uu
	t := (floats.Dot(u, a) - alpha) / uu
	k := rho*rho - s*s*uu // ρ² - ‖u_proj‖²
	if k < 0 {
		return Infeasible
	}
	c := -(t + s)
	if len(a) > 0 && &dst[0] == &a[0] {
		// dst cannot hold the difference without destroying a.
		a = append([]float64(nil), a...)
	}
	floats.AddScaledTo(dst, a, c, u) // a_proj - u_proj
	dd := floats.Dot(dst, dst)
	if dd <= sameTol*floats.Dot(a, a) {
		floats.ScaleTo(dst, s, u)
		return Success
	}
	// dst = u_proj + sqrt(k/dd) (a_proj - u_proj)
	floats.Scale(math.Sqrt(k/dd), dst)
	floats.AddScaled(dst, s, u)
	return Success
}

// ArgmaxStripe stores into dst the point z of S(u, α, ζ) with ‖z‖ ≤ ρ that
// maximizes ⟨z,a⟩.
//
// If the unconstrained maximizer ρ a/‖a‖ lies in the stripe, it is returned.
// Otherwise the maximizer lies on one of the boundary hyperplanes
// H(u, α+ζ) and H(u, α-ζ): the feasible candidate with the larger value is
// returned. Infeasible is returned if neither boundary intersects the ball,
// Degenerate if a or u is the zero vector. In both cases dst is not
// modified.
func ArgmaxStripe(dst, u []float64, alpha, zeta, rho float64, a []float64) Status {
	checkLen(dst, u, a)
	anorm := floats.Norm(a, 2)
	if anorm == 0 {
		return Degenerate
	}
	at := make([]float64, len(a))
	floats.ScaleTo(at, rho/anorm, a)
	if InStripe(at, u, alpha, zeta) {
		copy(dst, at)
		return Success
	}

	upper := at // Reuse the storage.
	lower := make([]float64, len(a))
	su := ArgmaxHyperplane(upper, u, alpha+zeta, rho, a)
	sl := ArgmaxHyperplane(lower, u, alpha-zeta, rho, a)
	switch {
	case su == Degenerate || sl == Degenerate:
		return Degenerate
	case su == Infeasible && sl == Infeasible:
		return Infeasible
	case su == Infeasible:
		copy(dst, lower)
	case sl == Infeasible:
		copy(dst, upper)
	case floats.Dot(upper, a) > floats.Dot(lower, a):
		copy(dst, upper)
	default:
		copy(dst, lower)
	}
	return Success
}

// gramTol is the relative threshold below which the Gram determinant of two
// directions is treated as zero.
const gramTol = 1e-12

// sameTol is the relative threshold below which the projection of a onto a
// hyperplane is treated as the minimal-norm point.
const sameTol = (64 * dlamchE) * (64 * dlamchE)

const dlamchE = 1.0 / (1 << 53)

const badLength = "geometry: slice length mismatch"

func checkLen(dst, x, u []float64) {
	if len(dst) != len(x) || len(x) != len(u) {
		panic(badLength)
	}
}
