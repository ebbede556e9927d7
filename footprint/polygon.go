/*
Package footprint computes the ground-plane footprint of an inflorescence.

Flowers are projected onto the (x, z) plane and approximated by regular
polygonal discs. The discs are united by polygon clipping, giving the region
of ground shaded by the flowers, its area and its bounding box.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package footprint

import (
	"errors"
	"fmt"
	"math"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/npillmayer/floraison"
	"github.com/npillmayer/floraison/phyllotaxis"
	"github.com/npillmayer/schuko/tracing"
)

// L traces to the global floraison tracer.
func L() tracing.Trace {
	return tracing.Select("floraison")
}

// ErrTooFewSegments indicates a disc approximation with less than 3 vertices.
var ErrTooFewSegments = errors.New("disc needs at least 3 segments")

// Polygon is a closed contour of knots in the ground plane.
type Polygon struct {
	contour polyclip.Contour
	cycle   bool
}

// NullPolygon creates an empty polygon, to be extended by Knot and closed
// by Cycle.
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a vertex. Part of builder functionality.
func (pg *Polygon) Knot(p v2.Vec) *Polygon {
	if pg.cycle {
		L().Errorf("cannot add knot to a closed polygon")
		return pg
	}
	pg.contour.Add(polyclip.Point{X: p.X, Y: p.Y})
	return pg
}

// Cycle closes the polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// Box creates a rectangle from two opposite corners.
func Box(a, b v2.Vec) *Polygon {
	return NullPolygon().Knot(a).Knot(floraison.Pt(b.X, a.Y)).Knot(b).
		Knot(floraison.Pt(a.X, b.Y)).Cycle()
}

// Disc approximates a circle by a regular polygon with the given number
// of segments.
func Disc(center v2.Vec, radius float64, segments int) (*Polygon, error) {
	if segments < 3 {
		return nil, fmt.Errorf("%w: %d", ErrTooFewSegments, segments)
	}
	pg := NullPolygon()
	for _, p := range phyllotaxis.RadialPositions(segments, radius, 0) {
		pg.Knot(center.Add(p))
	}
	return pg.Cycle(), nil
}

// N returns the number of vertices.
func (pg *Polygon) N() int {
	return len(pg.contour)
}

// Pt returns vertex i.
func (pg *Polygon) Pt(i int) v2.Vec {
	p := pg.contour[i]
	return floraison.Pt(p.X, p.Y)
}

// Area is the unsigned area enclosed by the polygon.
func (pg *Polygon) Area() float64 {
	return math.Abs(shoelace(pg.contour))
}

// shoelace returns the signed area of a contour, positive if
// counter-clockwise.
func shoelace(c polyclip.Contour) float64 {
	var a float64
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return a / 2
}

// AsString returns a polygon as a (debugging) string, e.g.
//
//	(0,0) -- (1,3) -- (3,0) -- cycle
func AsString(pg *Polygon) string {
	var b strings.Builder
	for i := 0; i < pg.N(); i++ {
		if i > 0 {
			b.WriteString(" -- ")
		}
		p := pg.Pt(i)
		fmt.Fprintf(&b, "(%.4g,%.4g)", p.X, p.Y)
	}
	if pg.cycle {
		b.WriteString(" -- cycle")
	}
	return b.String()
}
