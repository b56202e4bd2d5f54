// Copyright ©2024 The RESESOP Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resesop

// Solver bundles a Problem with the State of its iteration.
type Solver struct {
	Problem Problem
	State   State
}

// NewSolver returns a Solver for p. The initial iterate x0 and the
// groundtruth may be nil. Both are copied.
func NewSolver(p Problem, x0, groundtruth []float64) *Solver {
	s := &Solver{Problem: p}
	if x0 != nil {
		s.State.X = append([]float64(nil), x0...)
	}
	if groundtruth != nil {
		s.State.Groundtruth = append([]float64(nil), groundtruth...)
	}
	return s
}

// Reset discards the iterate and the error history. The subproblems, the
// groundtruth and the sweep total are kept.
func (s *Solver) Reset() {
	s.State.X = nil
	s.State.Errors = nil
}

// SetProblem replaces the subproblems. The iterate and the error history are
// kept.
func (s *Solver) SetProblem(p Problem) {
	s.Problem = p
}

// OneDirection runs a sweep of the method with one search direction.
func (s *Solver) OneDirection(settings Settings) (Result, error) {
	return Sweep(s.Problem, OneDirection{}, &s.State, settings)
}

// TwoDirections runs a sweep of the method with two search directions.
func (s *Solver) TwoDirections(settings Settings) (Result, error) {
	return Sweep(s.Problem, &TwoDirections{}, &s.State, settings)
}
