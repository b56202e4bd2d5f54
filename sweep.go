// Copyright ©2024 The RESESOP Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resesop

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/kenaj123/RESESOP/geometry"
)

// Sweep runs at most settings.Sweeps passes of method over the subproblems of
// p, starting from settings.X0 or, if it is nil, from st.X. Every pass visits
// the subproblems in an order drawn from settings.Rand.
//
// Subproblem i is violated at the iterate x if
//  ‖A_i x - g_i‖ > Tau * (η_i ρ + δ_i),
// in which case method updates x. If the adjoint A_i^* (A_i x - g_i) is the
// zero vector, the visit counts as an update but x is left unchanged.
//
// The sweep converges as soon as a full pass over the n subproblems needs no
// update. The final iterate is kept in st.X, so calling Sweep again continues
// the iteration. If error logging is requested, the error of the iterate is
// appended to st.Errors at the end of every completed pass.
func Sweep(p Problem, method Method, st *State, settings Settings) (Result, error) {
	stats := Stats{StartTime: time.Now()}

	if method == nil {
		panic("resesop: nil method")
	}
	if err := p.Validate(); err != nil {
		return Result{Stats: stats}, errors.Wrap(err, "resesop: invalid problem")
	}
	defaultSettings(&settings)
	switch {
	case !(settings.Tau > 1):
		panic("resesop: invalid tau")
	case !(settings.Rho >= 0):
		panic("resesop: invalid rho")
	case settings.Sweeps < 0:
		panic("resesop: negative number of sweeps")
	}

	switch {
	case settings.X0 != nil:
		st.X = append(st.X[:0:0], settings.X0...)
	case st.X == nil:
		return Result{Stats: stats}, ErrNoIterate
	}
	if settings.ComputeErrors {
		if st.Groundtruth == nil {
			return Result{Stats: stats}, ErrNoGroundtruth
		}
		if len(st.Groundtruth) != len(st.X) {
			panic("resesop: mismatched length of groundtruth")
		}
	}

	sweep(p, method, st, settings, &stats)

	stats.Runtime = time.Since(stats.StartTime)
	return Result{
		X:     append([]float64(nil), st.X...),
		Stats: stats,
	}, nil
}

func sweep(p Problem, method Method, st *State, settings Settings, stats *Stats) {
	n := p.Len()
	x := st.X
	log := settings.Logger

	var w []float64
	u := make([]float64, len(x))
	ctx := &Context{X: x}

	method.Init(x)

	for j := 0; j < settings.Sweeps; j++ {
		stats.Sweeps++
		counter := 0 // Visits without update since the last update.
		for _, i := range settings.Rand.Perm(n) {
			g := p.G[i]
			w = reuse(w, len(g))
			p.Forward(w, i, x)
			stats.Forward++
			floats.Sub(w, g) // w = A_i x - g_i
			discrepancy := floats.Norm(w, 2)
			tol := p.Tolerance(i, settings.Rho)

			if discrepancy <= settings.Tau*tol {
				counter++
				if counter >= n {
					stats.Converged = true
					log.Info("sweep converged",
						zap.Int("updates", stats.Updates),
						zap.Int("sweeps", stats.Sweeps))
					return
				}
				continue
			}

			stats.Updates++
			counter = 0
			p.Adjoint(u, i, w)
			stats.Adjoint++
			if floats.Norm(u, 2) == 0 {
				stats.Degenerate++
				log.Debug("zero search direction",
					zap.Int("index", i),
					zap.Int("sweep", j))
				continue
			}

			ctx.Index = i
			ctx.Residual = w
			ctx.Direction = u
			ctx.Alpha = floats.Dot(w, g)
			ctx.Zeta = tol * discrepancy
			if method.Update(ctx) == geometry.Degenerate {
				stats.Degenerate++
				log.Debug("degenerate search directions",
					zap.Int("index", i),
					zap.Int("sweep", j))
			}
		}
		if settings.ComputeErrors {
			st.Errors = append(st.Errors, method.ErrorNorm(x, st.Groundtruth))
		}
	}

	st.TotalSweeps += settings.Sweeps
	log.Info("sweep budget exhausted",
		zap.Int("updates", stats.Updates),
		zap.Int("sweeps", stats.Sweeps),
		zap.Int("total_sweeps", st.TotalSweeps))
}
