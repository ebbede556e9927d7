/*
Package curve evaluates parametric curve segments: quadratic and cubic
Bézier curves and uniform Catmull-Rom splines.

All functions are generic over the vector type, so the same code serves
2D points (sdfx v2.Vec) and 3D points (sdfx v3.Vec). Parameters t are
expected in [0,1] and are not clamped.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package curve

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'floraison'
func tracer() tracing.Trace {
	return tracing.Select("floraison")
}

// Vector is the arithmetic a control point has to support.
// Both v2.Vec and v3.Vec of package sdfx satisfy it.
type Vector[T any] interface {
	Add(T) T
	Sub(T) T
	MulScalar(float64) T
}

// Errors returned for invalid arguments.
var (
	ErrTooFewControlPoints = errors.New("too few control points")
	ErrTooFewSamples       = errors.New("too few samples requested")
)

// Quadratic evaluates the quadratic Bézier curve (p0,p1,p2) at t.
func Quadratic[T Vector[T]](p0, p1, p2 T, t float64) T {
	u := 1 - t
	return p0.MulScalar(u * u).Add(p1.MulScalar(2 * u * t)).Add(p2.MulScalar(t * t))
}

// QuadraticDerivative is the first derivative of Quadratic with respect to t.
func QuadraticDerivative[T Vector[T]](p0, p1, p2 T, t float64) T {
	u := 1 - t
	return p1.Sub(p0).MulScalar(2 * u).Add(p2.Sub(p1).MulScalar(2 * t))
}

// Cubic evaluates the cubic Bézier curve (p0,p1,p2,p3) at t.
func Cubic[T Vector[T]](p0, p1, p2, p3 T, t float64) T {
	u := 1 - t
	uu, tt := u*u, t*t
	return p0.MulScalar(uu * u).
		Add(p1.MulScalar(3 * uu * t)).
		Add(p2.MulScalar(3 * u * tt)).
		Add(p3.MulScalar(tt * t))
}

// CubicDerivative is the first derivative of Cubic with respect to t.
func CubicDerivative[T Vector[T]](p0, p1, p2, p3 T, t float64) T {
	u := 1 - t
	return p1.Sub(p0).MulScalar(3 * u * u).
		Add(p2.Sub(p1).MulScalar(6 * u * t)).
		Add(p3.Sub(p2).MulScalar(3 * t * t))
}

// SampleQuadratic returns count points of a quadratic Bézier curve, evenly
// spaced in parameter space. The first and last point are p0 and p2.
func SampleQuadratic[T Vector[T]](p0, p1, p2 T, count int) ([]T, error) {
	if count < 2 {
		return nil, fmt.Errorf("%w: quadratic Bézier needs 2 samples, have %d", ErrTooFewSamples, count)
	}
	pts := make([]T, count)
	for i := range pts {
		pts[i] = Quadratic(p0, p1, p2, param(i, count))
	}
	return pts, nil
}

// SampleCubic returns count points of a cubic Bézier curve, evenly spaced
// in parameter space. The first and last point are p0 and p3.
func SampleCubic[T Vector[T]](p0, p1, p2, p3 T, count int) ([]T, error) {
	if count < 2 {
		return nil, fmt.Errorf("%w: cubic Bézier needs 2 samples, have %d", ErrTooFewSamples, count)
	}
	pts := make([]T, count)
	for i := range pts {
		pts[i] = Cubic(p0, p1, p2, p3, param(i, count))
	}
	return pts, nil
}

// MustSampleCubic is like SampleCubic, but panics on error.
func MustSampleCubic[T Vector[T]](p0, p1, p2, p3 T, count int) []T {
	pts, err := SampleCubic(p0, p1, p2, p3, count)
	if err != nil {
		panic(err)
	}
	return pts
}

// param is t = i/(count-1), exact at both ends.
func param(i, count int) float64 {
	if i == count-1 {
		return 1
	}
	return float64(i) / float64(count-1)
}
