/*
Package bspline implements Cox-de Boor B-spline basis functions, open
uniform knot vectors, and curves and tensor-product surfaces built on them.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package bspline

import (
	"errors"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'floraison'
func tracer() tracing.Trace {
	return tracing.Select("floraison")
}

// Errors returned when constructing curves and surfaces.
var (
	ErrEmptyGrid     = errors.New("control grid is empty")
	ErrRaggedGrid    = errors.New("control grid rows differ in length")
	ErrDegreeTooHigh = errors.New("degree too high for number of control points")
	ErrKnotCount     = errors.New("knot vector has wrong length")
	ErrTooFewSamples = errors.New("too few samples requested")
)

// near-zero threshold for knot spans and denominators
const tiny = 1e-10

// Basis evaluates the B-spline basis function N(i,p) at u over knots.
//
// A zero-width knot span yields 0. The last non-empty span is closed on the
// right when u sits at the maximum knot, so the final basis function does not
// vanish at the upper end of the domain. Out-of-range i yields 0.
func Basis(i, p int, u float64, knots []float64) float64 {
	if i < 0 || p < 0 || i+p+1 >= len(knots) {
		return 0
	}
	if p == 0 {
		lo, hi := knots[i], knots[i+1]
		if hi-lo < tiny {
			return 0
		}
		if lo <= u && u < hi {
			return 1
		}
		umax := knots[len(knots)-1]
		if math.Abs(u-umax) < tiny && math.Abs(hi-umax) < tiny && lo <= u && u <= hi {
			return 1
		}
		return 0
	}
	var left, right float64
	if d := knots[i+p] - knots[i]; d > tiny {
		left = (u - knots[i]) / d * Basis(i, p-1, u, knots)
	}
	if d := knots[i+p+1] - knots[i+1]; d > tiny {
		right = (knots[i+p+1] - u) / d * Basis(i+1, p-1, u, knots)
	}
	return left + right
}

// KnotVector returns the open uniform (clamped) knot vector for n control
// points and degree p. It has n+p+1 entries; the first p+1 are 0, the last
// p+1 are 1, and the interior entries are evenly spaced.
func KnotVector(n, p int) []float64 {
	if n <= p || p < 0 {
		tracer().Errorf("knot vector for %d control points of degree %d", n, p)
		return nil
	}
	m := n + p + 1
	knots := make([]float64, m)
	for i := p + 1; i < n; i++ {
		knots[i] = float64(i-p) / float64(n-p)
	}
	for i := n; i < m; i++ {
		knots[i] = 1
	}
	return knots
}
