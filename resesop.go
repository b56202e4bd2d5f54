// Copyright ©2024 The RESESOP Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resesop provides sequential subspace optimization (Kaczmarz-type)
// methods for families of linear inverse problems
//  A_i f = g_i,  i = 0, ..., n-1,
// where only noisy data g_i with ‖g_i - A_i f‖ ≤ δ_i and inexact operators
// with ‖A_i - A_i^η‖ ≤ η_i are available.
//
// A sweep visits the subproblems in random order. Whenever the discrepancy
// of a subproblem exceeds its tolerance, the current iterate is projected
// onto a stripe that contains every solution of norm at most ρ that is
// consistent with the subproblem data.
package resesop

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/kenaj123/RESESOP/geometry"
)

var (
	// ErrNoIterate is returned when neither Settings.X0 nor the state
	// provide a starting iterate.
	ErrNoIterate = errors.New("resesop: no initial iterate")
	// ErrNoGroundtruth is returned when errors are requested without a
	// groundtruth.
	ErrNoGroundtruth = errors.New("resesop: no groundtruth for error history")
)

// Operators describes the family of operators A_i^η of the subproblems.
type Operators struct {
	// Forward computes A_i x and stores
	// the result into dst. The length of
	// dst is the length of the data g_i.
	// It must be non-nil.
	Forward func(dst []float64, i int, x []float64)

	// Adjoint computes A_i^* w and stores
	// the result into dst. The length of
	// dst is the length of the iterate.
	// It must be non-nil.
	Adjoint func(dst []float64, i int, w []float64)
}

// Problem holds the data of all subproblems. It is not modified by the
// solvers.
type Problem struct {
	Operators

	// G holds the noisy right-hand sides.
	// The number of subproblems is len(G).
	G [][]float64

	// Eta holds the bounds on the model
	// uncertainty of the operators. If it
	// is nil, all operators are exact.
	Eta []float64

	// Delta holds the bounds on the noise
	// in G. If it is nil, the data are
	// exact.
	Delta []float64
}

// Len returns the number of subproblems.
func (p Problem) Len() int { return len(p.G) }

// Tolerance returns η_i ρ + δ_i, the radius of the set of admissible data of
// subproblem i for solutions of norm at most rho.
func (p Problem) Tolerance(i int, rho float64) float64 {
	var tol float64
	if p.Eta != nil {
		tol += p.Eta[i] * rho
	}
	if p.Delta != nil {
		tol += p.Delta[i]
	}
	return tol
}

// Validate checks the consistency of the subproblem data.
func (p Problem) Validate() error {
	n := p.Len()
	switch {
	case n == 0:
		return errors.New("no subproblems")
	case p.Forward == nil:
		return errors.New("nil forward operator")
	case p.Adjoint == nil:
		return errors.New("nil adjoint operator")
	case p.Eta != nil && len(p.Eta) != n:
		return errors.Errorf("len(Eta)=%d, want %d", len(p.Eta), n)
	case p.Delta != nil && len(p.Delta) != n:
		return errors.Errorf("len(Delta)=%d, want %d", len(p.Delta), n)
	}
	for i := 0; i < n; i++ {
		if len(p.G[i]) == 0 {
			return errors.Errorf("empty data for subproblem %d", i)
		}
		if p.Eta != nil && !(p.Eta[i] >= 0) {
			return errors.Errorf("invalid eta %v for subproblem %d", p.Eta[i], i)
		}
		if p.Delta != nil && !(p.Delta[i] >= 0) {
			return errors.Errorf("invalid delta %v for subproblem %d", p.Delta[i], i)
		}
	}
	return nil
}

// Discrepancies stores into dst the discrepancies ‖A_i x - g_i‖ of all
// subproblems at x. If dst is nil, a new slice is allocated.
func (p Problem) Discrepancies(dst, x []float64) []float64 {
	n := p.Len()
	if dst == nil {
		dst = make([]float64, n)
	}
	if len(dst) != n {
		panic("resesop: mismatched length of discrepancies")
	}
	var w []float64
	for i, g := range p.G {
		w = reuse(w, len(g))
		p.Forward(w, i, x)
		floats.Sub(w, g)
		dst[i] = floats.Norm(w, 2)
	}
	return dst
}

// Settings holds various settings for a sweep.
type Settings struct {
	// X0 is the starting iterate. If it
	// is nil, the iterate stored in the
	// State is continued.
	X0 []float64

	// Rho is the a priori bound on the
	// norm of the solution. It must be
	// non-negative.
	Rho float64

	// Tau is the safety factor of the
	// discrepancy principle. A subproblem
	// is updated only if its discrepancy
	// exceeds
	//  Tau * (η_i ρ + δ_i).
	// Tau must be greater than one. If it
	// is zero, DefaultTau is used.
	Tau float64

	// Sweeps is the maximum number of
	// passes over all subproblems. If it
	// is zero, it will be set to
	// DefaultSweeps.
	Sweeps int

	// ComputeErrors requests that the
	// error with respect to the
	// groundtruth of the State is
	// recorded after every completed
	// pass.
	ComputeErrors bool

	// Rand is the source of the random
	// order of the subproblems. If it is
	// nil, a time-seeded source is used.
	Rand *rand.Rand

	// Logger receives the events of the
	// sweep. If it is nil, no events are
	// logged.
	Logger *zap.Logger
}

// Defaults for the zero values of Settings.
const (
	DefaultTau    = 1.00001
	DefaultSweeps = 50
)

func defaultSettings(s *Settings) {
	if s.Tau == 0 {
		s.Tau = DefaultTau
	}
	if s.Sweeps == 0 {
		s.Sweeps = DefaultSweeps
	}
	if s.Rand == nil {
		s.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
}

// State is the mutable state carried between sweeps.
type State struct {
	// X is the current iterate. It is
	// updated in place by every sweep.
	X []float64

	// Groundtruth is the solution used
	// only for the error history. It
	// never influences the iterates.
	Groundtruth []float64

	// Errors holds one error per pass
	// completed with
	// Settings.ComputeErrors.
	Errors []float64

	// TotalSweeps is the number of passes
	// of all sweeps that ended without
	// convergence.
	TotalSweeps int
}

// Context mediates the communication between the sweep and a Method.
type Context struct {
	// X is the current iterate. Method
	// must update it in place.
	X []float64

	// Index is the violated subproblem.
	Index int

	// Residual is A_i X - g_i.
	Residual []float64

	// Direction is the search direction
	// u = A_i^* Residual. It is never the
	// zero vector.
	Direction []float64

	// Alpha and Zeta define the stripe
	//  |⟨z,u⟩ - Alpha| ≤ Zeta
	// that contains every admissible
	// solution of norm at most ρ.
	Alpha, Zeta float64
}

// Method is a rule for updating the iterate with respect to a violated
// subproblem.
type Method interface {
	// Init is called at the start of a sweep with the starting iterate.
	Init(x []float64)

	// Update moves ctx.X with respect to the stripe described by ctx.
	// It returns geometry.Degenerate if the update could not be carried
	// out as intended.
	Update(ctx *Context) geometry.Status

	// ErrorNorm returns the error of x with respect to groundtruth that
	// is recorded in the error history.
	ErrorNorm(x, groundtruth []float64) float64
}

// Stats holds statistics about a sweep.
type Stats struct {
	// Sweeps is the number of passes
	// started.
	Sweeps int
	// Updates is the number of visits to
	// violated subproblems.
	Updates int
	// Degenerate is the number of updates
	// that left the iterate unchanged or
	// fell back due to degenerate
	// directions.
	Degenerate int
	// Forward and Adjoint are the number
	// of operator evaluations.
	Forward int
	Adjoint int
	// Converged is true if a full round of
	// subproblems needed no update.
	Converged bool
	// StartTime is an approximate time
	// when the sweep was started.
	StartTime time.Time
	// Runtime is an approximate duration
	// of the sweep.
	Runtime time.Duration
}

// Result holds the result of a sweep.
type Result struct {
	// X is a copy of the final iterate.
	X []float64
	// Stats holds the statistics of the
	// sweep.
	Stats Stats
}

func reuse(v []float64, n int) []float64 {
	if cap(v) < n {
		return make([]float64, n)
	}
	return v[:n]
}
