/*
Package phyllotaxis places repeated organs around an axis: golden-angle
spirals, Vogel disc packings, and radial or whorled arrangements.

All functions are pure. Angles are in radians, positions are relative to
the origin of the axis, with +Y as the axis direction for 3D layouts.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package phyllotaxis

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/npillmayer/floraison"
)

// GoldenAngle is π(3−√5), about 137.5078°.
const GoldenAngle = 2.39996322972865332

// Classic divergence angles.
const (
	Alternate  = math.Pi         // 180°, distichous
	Decussate  = math.Pi / 2     // 90°, opposite pairs
	Tricussate = 2 * math.Pi / 3 // 120°
	Pentagonal = 4 * math.Pi / 5 // 144°
)

// FibonacciAngle is the azimuth of organ i in a golden-angle spiral,
// reduced to [0,2π).
func FibonacciAngle(i int) float64 {
	return math.Mod(float64(i)*GoldenAngle, 2*math.Pi)
}

// VogelSpiral places point i of count points on a disc of the given radius.
// Point 0 sits at the center, point count-1 on the rim.
func VogelSpiral(i, count int, radius float64) v2.Vec {
	r := 0.0
	if count > 1 {
		r = radius * math.Sqrt(float64(i)/float64(count-1))
	}
	return floraison.FromPolar(r, float64(i)*GoldenAngle)
}

// VogelDisc returns all count points of a Vogel spiral.
func VogelDisc(count int, radius float64) []v2.Vec {
	if count <= 0 {
		return nil
	}
	pts := make([]v2.Vec, count)
	for i := range pts {
		pts[i] = VogelSpiral(i, count, radius)
	}
	return pts
}

// RadialPositions distributes count points evenly on a circle, starting at
// angle offset.
func RadialPositions(count int, radius, offset float64) []v2.Vec {
	if count <= 0 {
		return nil
	}
	step := 2 * math.Pi / float64(count)
	pts := make([]v2.Vec, count)
	for i := range pts {
		pts[i] = floraison.FromPolar(radius, offset+float64(i)*step)
	}
	return pts
}

// WhorledPositions distributes count points evenly on a horizontal circle at
// the given height: (r·cos a, height, r·sin a).
func WhorledPositions(count int, radius, height, offset float64) []v3.Vec {
	flat := RadialPositions(count, radius, offset)
	pts := make([]v3.Vec, len(flat))
	for i, p := range flat {
		pts[i] = floraison.V(p.X, height, p.Y)
	}
	return pts
}

// RadiusProfile maps the relative height t ∈ [0,1] along a spiral to a
// radius factor.
type RadiusProfile func(t float64) float64

// Radius profiles for FibonacciSpiral3D.
var (
	Constant  RadiusProfile = func(float64) float64 { return 1 }
	Linear    RadiusProfile = func(t float64) float64 { return 1 - t }
	Quadratic RadiusProfile = func(t float64) float64 { return (1 - t) * (1 - t) }
	Bulge     RadiusProfile = func(t float64) float64 { return math.Sin(t * math.Pi) }
)

// FibonacciSpiral3D places count points on a vertical golden-angle spiral
// of the given height. The radius at relative height t is baseRadius·profile(t).
// A nil profile is treated as Constant.
func FibonacciSpiral3D(count int, baseRadius, height float64, profile RadiusProfile) []v3.Vec {
	if count <= 0 {
		return nil
	}
	if profile == nil {
		profile = Constant
	}
	pts := make([]v3.Vec, count)
	for i := range pts {
		t := 0.0
		if count > 1 {
			t = float64(i) / float64(count-1)
		}
		a := float64(i) * GoldenAngle
		r := baseRadius * profile(t)
		pts[i] = floraison.V(r*math.Cos(a), t*height, r*math.Sin(a))
	}
	return pts
}
