/*
Package reconstruct lifts a planar sketch curve into space.

The input is a 2D curve of (x, height) samples with strictly increasing
height. The output is a 3D curve (x, height, z) whose curvature magnitude
is constant: z″ is chosen so that x″² + z″² = k², where k is the largest
|x″| along the sketch. A straight sketch therefore stays straight and flat.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package reconstruct

import (
	"errors"
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'floraison'
func tracer() tracing.Trace {
	return tracing.Select("floraison")
}

// Errors returned for invalid input curves.
var (
	ErrTooFewPoints  = errors.New("curve reconstruction needs at least 3 points")
	ErrNotMonotonic  = errors.New("sketch height is not increasing")
	ErrTooFewSamples = errors.New("too few samples requested")
)

// minimum step used as a divisor
const minStep = 1e-6

// ResampleUniformHeight resamples points to n samples with evenly spaced
// heights between the first and the last point, interpolating x linearly.
func ResampleUniformHeight(points []v2.Vec, n int) ([]v2.Vec, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: have %d", ErrTooFewPoints, len(points))
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: resampling to %d points", ErrTooFewSamples, n)
	}
	y0, y1 := points[0].Y, points[len(points)-1].Y
	out := make([]v2.Vec, n)
	idx := 0
	for i := range out {
		target := y0 + (y1-y0)*float64(i)/float64(n-1)
		for idx < len(points)-2 && points[idx+1].Y < target {
			idx++
		}
		p0, p1 := points[idx], points[idx+1]
		t := (target - p0.Y) / math.Max(p1.Y-p0.Y, minStep)
		out[i] = v2.Vec{X: p0.X + (p1.X-p0.X)*t, Y: target}
	}
	return out, nil
}

// SecondDerivativesX estimates d²x/dy² at every sample: forward difference
// at the first, backward at the last, central in between. Needs at least
// 3 points.
func SecondDerivativesX(points []v2.Vec) []float64 {
	n := len(points)
	if n < 3 {
		return make([]float64, n)
	}
	d2 := make([]float64, n)
	for i := range d2 {
		c := i
		if c == 0 {
			c = 1
		} else if c == n-1 {
			c = n - 2
		}
		p0, p1, p2 := points[c-1], points[c], points[c+1]
		dy := math.Max(math.Abs(p1.Y-p0.Y), minStep)
		d2[i] = (p2.X - 2*p1.X + p0.X) / (dy * dy)
	}
	return d2
}

// ApplySigns gives z″ values a sign, flipping it whenever x″ changes sign
// between consecutive samples. dz2 is modified in place.
func ApplySigns(dx2, dz2 []float64) {
	sign := 1.0
	for i := range dz2 {
		if i > 0 && dx2[i]*dx2[i-1] < 0 {
			sign = -sign
		}
		dz2[i] *= sign
	}
}

// IntegrateTwice integrates values twice with the trapezoidal rule at unit
// step, starting from zero value and zero slope.
func IntegrateTwice(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	slope := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		slope[i] = slope[i-1] + (values[i]+values[i-1])/2
	}
	out := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		out[i] = out[i-1] + (slope[i]+slope[i-1])/2
	}
	return out
}

// Curve3D reconstructs a spatial curve from a planar sketch of (x, height)
// points. The result has as many points as the input, evenly spaced in
// height.
func Curve3D(points []v2.Vec) ([]v3.Vec, error) {
	if len(points) < 3 {
		tracer().Errorf("curve reconstruction with %d points", len(points))
		return nil, fmt.Errorf("%w: have %d", ErrTooFewPoints, len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Y <= points[i-1].Y {
			return nil, fmt.Errorf("%w: height %g at point %d follows %g",
				ErrNotMonotonic, points[i].Y, i, points[i-1].Y)
		}
	}
	uniform, err := ResampleUniformHeight(points, len(points))
	if err != nil {
		return nil, err
	}
	dx2 := SecondDerivativesX(uniform)
	k := minStep
	for _, d := range dx2 {
		k = math.Max(k, math.Abs(d))
	}
	dz2 := make([]float64, len(dx2))
	for i, d := range dx2 {
		dz2[i] = math.Sqrt(math.Max(0, k*k-d*d))
	}
	ApplySigns(dx2, dz2)
	z := IntegrateTwice(dz2)
	tracer().Debugf("reconstructed curve of %d points, curvature %.4g", len(points), k)
	out := make([]v3.Vec, len(uniform))
	for i, p := range uniform {
		out[i] = v3.Vec{X: p.X, Y: p.Y, Z: z[i]}
	}
	return out, nil
}

// MustCurve3D is like Curve3D, but panics on error.
func MustCurve3D(points []v2.Vec) []v3.Vec {
	c, err := Curve3D(points)
	if err != nil {
		panic(err)
	}
	return c
}
