// Copyright ©2024 The RESESOP Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resesop

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestSolverLifecycle(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	x0 := []float64{0, 0}
	s := NewSolver(coordinates([]float64{3, 5}), x0, []float64{3, 5})
	x0[0] = 1
	if !floats.Equal(s.State.X, []float64{0, 0}) {
		t.Fatalf("initial iterate not copied")
	}

	r, err := s.OneDirection(Settings{Rho: 10, Tau: 1.1, Sweeps: 1, ComputeErrors: true, Rand: rnd})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !floats.Equal(r.X, []float64{3, 5}) || len(s.State.Errors) != 1 {
		t.Errorf("unexpected result %v, errors %v", r.X, s.State.Errors)
	}

	// Replacing the subproblems continues from the stored iterate.
	s.SetProblem(coordinates([]float64{3, 6}))
	r, err = s.TwoDirections(Settings{Rho: 10, Tau: 1.1, Rand: rnd})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !r.Stats.Converged || r.Stats.Updates != 1 {
		t.Errorf("unexpected stats %+v", r.Stats)
	}
	if !floats.Equal(r.X, []float64{3, 6}) {
		t.Errorf("unexpected result %v", r.X)
	}
	if len(s.State.Errors) != 1 {
		t.Errorf("error history modified: %v", s.State.Errors)
	}

	// The result does not share memory with the state.
	r.X[0] = 100
	if s.State.X[0] != 3 {
		t.Errorf("result aliases the stored iterate")
	}

	s.Reset()
	if s.State.X != nil || s.State.Errors != nil {
		t.Errorf("reset kept iterate %v or errors %v", s.State.X, s.State.Errors)
	}
	if s.Problem.Len() != 2 || s.State.Groundtruth == nil {
		t.Errorf("reset discarded subproblems or groundtruth")
	}
	if _, err := s.OneDirection(Settings{Rho: 10, Rand: rnd}); err != ErrNoIterate {
		t.Errorf("unexpected error %v, want %v", err, ErrNoIterate)
	}
	r, err = s.OneDirection(Settings{X0: []float64{3, 6}, Rho: 10, Rand: rnd})
	if err != nil || !r.Stats.Converged || r.Stats.Updates != 0 {
		t.Errorf("explicit starting point: error %v, stats %+v", err, r.Stats)
	}
}

func TestSolverContinues(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	p, want := randomProblem(40, 8, 4, 1e-3, rnd)
	s := NewSolver(p, make([]float64, 8), want)
	var sweeps int
	for k := 0; k < 1000; k++ {
		r, err := s.OneDirection(Settings{Rho: 1, Tau: 1.5, Sweeps: 2, ComputeErrors: true, Rand: rnd})
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if r.Stats.Converged {
			break
		}
		sweeps += 2
	}
	if s.State.TotalSweeps != sweeps {
		t.Errorf("unexpected total sweeps %v, want %v", s.State.TotalSweeps, sweeps)
	}
	for i, d := range p.Discrepancies(nil, s.State.X) {
		if d > 1.5e-3 {
			t.Errorf("discrepancy %v of subproblem %v above tolerance", d, i)
		}
	}
}
