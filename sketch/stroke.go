package sketch

import (
	"errors"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'floraison'
func tracer() tracing.Trace {
	return tracing.Select("floraison")
}

var (
	// ErrTooFewKnots indicates a stroke with less than 2 knots.
	ErrTooFewKnots = errors.New("stroke has too few knots")
	// ErrInvalidKnot indicates a knot coordinate containing NaN/Inf.
	ErrInvalidKnot = errors.New("stroke has invalid knot coordinate")
	// ErrDegenerateSegment indicates two consecutive knots collapsing to one point.
	ErrDegenerateSegment = errors.New("stroke has degenerate segment")
)

// knot is a point of a stroke together with its spline parameters.
type knot struct {
	pt          v2.Vec
	preCurl     float64
	postCurl    float64
	preTension  float64
	postTension float64
	dir         v2.Vec // explicit tangent direction
	hasDir      bool
}

// Stroke is an open path of knots, to be smoothed into a Hobby spline.
// To construct a stroke, start with Nullstroke(), which creates an empty
// stroke, and then extend it.
type Stroke struct {
	knots    []knot
	tension  float64   // pending pre-tension of the next knot
	Controls *Controls // control points, calculated by FindControls
}

// Controls collects calculated spline control points. Segment i runs from
// knot i with control PostControl(i) to knot i+1 with control
// PreControl(i+1).
type Controls struct {
	prec  []v2.Vec
	postc []v2.Vec
}

// Pt is a quick notation for a sketch point (x, height).
func Pt(x, y float64) v2.Vec {
	return v2.Vec{X: x, Y: y}
}

// Nullstroke creates an empty stroke, to be extended by subsequent builder
// calls. The following example builds a stroke of three knots with a
// tense second segment:
//
//	stroke := Nullstroke().Knot(Pt(0,0)).Curve().Knot(Pt(1,2)).
//	    TensionCurve(2, 2).Knot(Pt(0,4)).End()
func Nullstroke() *Stroke {
	return &Stroke{tension: 1}
}

// End finishes a stroke. Part of builder functionality.
func (s *Stroke) End() *Stroke {
	return s
}

// Knot adds a smooth knot. Part of builder functionality.
func (s *Stroke) Knot(p v2.Vec) *Stroke {
	s.knots = append(s.knots, knot{
		pt:          p,
		preCurl:     1,
		postCurl:    1,
		preTension:  s.tension,
		postTension: 1,
	})
	s.tension = 1
	s.Controls = nil
	return s
}

// CurlKnot adds a knot with curl information. A curl of 1 is neutral,
// a curl of 0 lets the stroke leave the knot almost straight.
// Part of builder functionality.
func (s *Stroke) CurlKnot(p v2.Vec, precurl, postcurl float64) *Stroke {
	s.Knot(p)
	k := &s.knots[len(s.knots)-1]
	k.preCurl, k.postCurl = precurl, postcurl
	return s
}

// DirKnot adds a knot with a given tangent direction.
// Part of builder functionality.
func (s *Stroke) DirKnot(p v2.Vec, dir v2.Vec) *Stroke {
	s.Knot(p)
	k := &s.knots[len(s.knots)-1]
	k.dir, k.hasDir = dir, true
	return s
}

// Curve connects two knots with a smooth curve.
// Part of builder functionality.
func (s *Stroke) Curve() *Stroke {
	return s.TensionCurve(1, 1)
}

// TensionCurve connects two knots with a tense curve.
// Part of builder functionality.
//
// Tensions are adapted to lie between 3/4 and 4.
func (s *Stroke) TensionCurve(t1, t2 float64) *Stroke {
	if s.N() == 0 {
		panic("cannot add curve to empty stroke")
	}
	s.knots[s.N()-1].postTension = clampTension(t1)
	s.tension = clampTension(t2)
	s.Controls = nil
	return s
}

func clampTension(t float64) float64 {
	if t < 0.75 {
		return 0.75
	} else if t > 4.0 {
		return 4.0
	}
	return t
}

// N returns the number of knots of a stroke.
func (s *Stroke) N() int {
	return len(s.knots)
}

// Z returns knot i.
func (s *Stroke) Z(i int) v2.Vec {
	return s.knots[i].pt
}

// Knots returns a copy of the stroke's knot coordinates.
func (s *Stroke) Knots() []v2.Vec {
	pts := make([]v2.Vec, s.N())
	for i, k := range s.knots {
		pts[i] = k.pt
	}
	return pts
}

// PreTension returns the tension before knot i.
func (s *Stroke) PreTension(i int) float64 {
	return s.knots[i].preTension
}

// PostTension returns the tension after knot i.
func (s *Stroke) PostTension(i int) float64 {
	return s.knots[i].postTension
}

// PreCurl returns the curl before knot i.
func (s *Stroke) PreCurl(i int) float64 {
	return s.knots[i].preCurl
}

// PostCurl returns the curl after knot i.
func (s *Stroke) PostCurl(i int) float64 {
	return s.knots[i].postCurl
}

// PreControl returns the control point before knot i.
func (c *Controls) PreControl(i int) v2.Vec {
	return c.prec[i]
}

// PostControl returns the control point after knot i.
func (c *Controls) PostControl(i int) v2.Vec {
	return c.postc[i]
}

func (c *Controls) setPreControl(i int, p v2.Vec) {
	c.prec[i] = p
}

func (c *Controls) setPostControl(i int, p v2.Vec) {
	c.postc[i] = p
}
