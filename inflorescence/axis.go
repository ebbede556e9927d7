package inflorescence

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/npillmayer/floraison"
	"github.com/npillmayer/floraison/axis"
	"github.com/npillmayer/floraison/curve"
)

// number of points of a curved main axis
const curvedAxisPoints = 8

// CurvedPoints returns n points from start to end. For amount ≥ 0.01 they
// follow a quadratic Bézier whose control point is the midpoint pushed
// along dir by amount·|end−start|/2; smaller amounts give the straight
// segment [start, end].
func CurvedPoints(start, end v3.Vec, amount float64, dir v3.Vec, n int) []v3.Vec {
	if amount < 0.01 || n < 2 {
		return []v3.Vec{start, end}
	}
	span := end.Sub(start)
	mid := start.Add(span.MulScalar(0.5))
	offset := floraison.NormalizeOr(dir, floraison.XAxis).MulScalar(amount * span.Length() * 0.5)
	pts, err := curve.SampleQuadratic(start, mid.Add(offset), end, n)
	if err != nil { // n ≥ 2 checked above
		panic(err)
	}
	return pts
}

// AxisPoints returns the points of the main axis for p, running from the
// origin up to (0, AxisLength, 0).
func AxisPoints(p Params) []v3.Vec {
	n := 2
	if p.AxisCurveAmount > 0.01 {
		n = curvedAxisPoints
	}
	return CurvedPoints(floraison.Origin, floraison.V(0, p.AxisLength, 0),
		p.AxisCurveAmount, p.AxisCurveDirection, n)
}

// NewAxis creates the main axis curve for p.
func NewAxis(p Params) (*axis.Curve, error) {
	return axis.New(AxisPoints(p))
}
