/*
Package floraison implements the geometric machinery for procedurally
synthesizing plant inflorescences: curve primitives, B-spline surfaces,
arc-length parameterized axis curves, 2D-to-3D curve reconstruction,
phyllotactic distributions, and the branch-pattern generators built on top
of them.

This root package holds numeric predicates and vector helpers shared by all
sub-packages. Points and vectors are the value types of package sdfx
(v3.Vec, v2.Vec), transformations are sdf.M44 matrices.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package floraison

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'floraison'
func tracer() tracing.Trace {
	return tracing.Select("floraison")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Rad converts an angle in degrees to radians.
func Rad(deg float64) float64 {
	return deg * Deg2Rad
}

// Deg converts an angle in radians to degrees.
func Deg(rad float64) float64 {
	return rad / Deg2Rad
}

// Lerp interpolates linearly between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp restricts n to [lo,hi].
func Clamp(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}

// Smoothstep is the cubic Hermite ease 3t²−2t³, with t clamped to [0,1].
func Smoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// Remap maps value from range [inMin,inMax] to [outMin,outMax].
// A degenerate input range maps everything to outMin.
func Remap(value, inMin, inMax, outMin, outMax float64) float64 {
	span := inMax - inMin
	if Is0(span) {
		tracer().Debugf("remap: degenerate input range [%g,%g]", inMin, inMax)
		return outMin
	}
	return Lerp(outMin, outMax, (value-inMin)/span)
}

// IsFinite is a predicate: is n neither NaN nor ±Inf ?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}
