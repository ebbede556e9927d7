/*
Package axis provides an arc-length parameterized space curve with a local
orthonormal frame, used as the main axis of an inflorescence.

An axis curve is built from an ordered point sequence. Sampling at a
normalized parameter t addresses the curve by arc length, not by point
index, so unevenly spaced input points yield evenly spaced samples.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package axis

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/floraison"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'floraison'
func tracer() tracing.Trace {
	return tracing.Select("floraison")
}

// Errors returned for invalid arguments.
var (
	ErrTooFewPoints  = errors.New("axis curve needs at least 2 points")
	ErrTooFewSamples = errors.New("too few samples requested")
)

// Sample is a point on an axis curve together with its local frame.
// Tangent, Normal and Binormal are unit length and mutually orthogonal.
type Sample struct {
	Position v3.Vec
	Tangent  v3.Vec
	Normal   v3.Vec
	Binormal v3.Vec
}

// Curve is an immutable polyline with a cumulative arc-length table.
type Curve struct {
	points []v3.Vec
	arc    []float64    // arc[i] is the length from points[0] to points[i]
	index  *treemap.Map // arc length -> first point index at that length
}

// ArcLengths returns the cumulative distances along points, starting at 0.
func ArcLengths(points []v3.Vec) []float64 {
	if len(points) == 0 {
		return nil
	}
	arc := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		arc[i] = arc[i-1] + points[i].Sub(points[i-1]).Length()
	}
	return arc
}

// New creates an axis curve from at least 2 points. The points are copied.
func New(points []v3.Vec) (*Curve, error) {
	if len(points) < 2 {
		tracer().Errorf("axis curve with %d points", len(points))
		return nil, fmt.Errorf("%w: have %d", ErrTooFewPoints, len(points))
	}
	c := &Curve{
		points: append([]v3.Vec(nil), points...),
		arc:    ArcLengths(points),
		index:  treemap.NewWith(utils.Float64Comparator),
	}
	for i := len(c.arc) - 1; i >= 0; i-- { // lower indices overwrite duplicates
		c.index.Put(c.arc[i], i)
	}
	tracer().Debugf("axis curve with %d points, length %.4g", len(points), c.Length())
	return c, nil
}

// Must is like New, but panics on error.
func Must(points []v3.Vec) *Curve {
	c, err := New(points)
	if err != nil {
		panic(err)
	}
	return c
}

// Length is the total arc length of the curve.
func (c *Curve) Length() float64 {
	return c.arc[len(c.arc)-1]
}

// Points returns a copy of the curve's points.
func (c *Curve) Points() []v3.Vec {
	return append([]v3.Vec(nil), c.points...)
}

// Start is the first point of the curve.
func (c *Curve) Start() v3.Vec { return c.points[0] }

// End is the last point of the curve.
func (c *Curve) End() v3.Vec { return c.points[len(c.points)-1] }

// SampleAt samples the curve at normalized arc-length parameter t, which is
// clamped to [0,1].
func (c *Curve) SampleAt(t float64) Sample {
	t = floraison.Clamp(t, 0, 1)
	return c.SampleAtLength(t * c.Length())
}

// SampleAtLength samples the curve at arc length s from its start.
func (c *Curve) SampleAtLength(s float64) Sample {
	idx := c.segment(s)
	start, seg := c.arc[idx], c.arc[idx+1]-c.arc[idx]
	localT := 0.0
	if seg > 1e-6 {
		localT = (s - start) / seg
	}
	pos := floraison.LerpVec(c.points[idx], c.points[idx+1], localT)
	tangent := c.tangentAt(idx)
	normal := c.normalAt(idx, tangent)
	binormal := floraison.NormalizeOr(tangent.Cross(normal), floraison.ZAxis)
	normal = floraison.NormalizeOr(binormal.Cross(tangent), normal)
	return Sample{
		Position: pos,
		Tangent:  tangent,
		Normal:   normal,
		Binormal: binormal,
	}
}

// SampleUniform returns count samples evenly spaced by arc length, from the
// first to the last point. A single sample is taken at the start.
func (c *Curve) SampleUniform(count int) ([]Sample, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: have %d", ErrTooFewSamples, count)
	}
	if count == 1 {
		return []Sample{c.SampleAt(0)}, nil
	}
	samples := make([]Sample, count)
	for i := range samples {
		samples[i] = c.SampleAt(float64(i) / float64(count-1))
	}
	return samples, nil
}

// segment finds the index i of the segment [points[i], points[i+1]] which
// contains arc length s. It is the first i with arc[i+1] ≥ s, clamped to
// the last segment.
func (c *Curve) segment(s float64) int {
	last := len(c.points) - 2
	k, v := c.index.Ceiling(s)
	if k == nil {
		return last
	}
	idx := v.(int) - 1
	if idx < 0 {
		return 0
	}
	if idx > last {
		return last
	}
	return idx
}

func (c *Curve) tangentAt(i int) v3.Vec {
	n := len(c.points)
	var d v3.Vec
	switch {
	case i == 0:
		d = c.points[1].Sub(c.points[0])
	case i >= n-1:
		d = c.points[n-1].Sub(c.points[n-2])
	default:
		d = c.points[i+1].Sub(c.points[i-1])
	}
	return floraison.NormalizeOr(d, floraison.YAxis)
}

// normalAt derives the normal from the discrete second derivative at point
// i, projected orthogonal to tangent. Straight sections get an arbitrary
// perpendicular.
func (c *Curve) normalAt(i int, tangent v3.Vec) v3.Vec {
	n := len(c.points)
	if n < 3 {
		return floraison.Perpendicular(tangent)
	}
	var d2 v3.Vec
	switch {
	case i == 0:
		d2 = c.points[2].Sub(c.points[1].MulScalar(2)).Add(c.points[0])
	case i >= n-1:
		d2 = c.points[n-1].Sub(c.points[n-2].MulScalar(2)).Add(c.points[n-3])
	default:
		d2 = c.points[i+1].Sub(c.points[i].MulScalar(2)).Add(c.points[i-1])
	}
	d2 = d2.Sub(tangent.MulScalar(d2.Dot(tangent)))
	if d2.Length() < 1e-4 {
		return floraison.Perpendicular(tangent)
	}
	return floraison.NormalizeOr(d2, floraison.XAxis)
}
