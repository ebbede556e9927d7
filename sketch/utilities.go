package sketch

import (
	"fmt"
	"math"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/npillmayer/floraison"
)

func hobbyParamsAlphaBeta(theta, phi float64) (float64, float64) {
	constA := 1.41421356     // sqrt(2) -- empiric constants, as explained by J.Hobby
	constB := 0.0625         // 1/16
	constC := 0.38196601125  // (3 - sqrt(5)) / 2
	constCC := 0.61803398875 // 1 - c
	st, ct := math.Sincos(theta)
	sf, cf := math.Sincos(phi)
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	return alpha, beta
}

// controlPoints calculates the offsets of the two control points between
// knot i and knot i+1, relative to these knots.
func controlPoints(phi, theta, a, b float64, dvec v2.Vec) (v2.Vec, v2.Vec) {
	alpha, beta := hobbyParamsAlphaBeta(theta, phi)
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	p2 := floraison.Rotated2(dvec, theta).MulScalar(a / 3 * rho)
	p3 := floraison.Rotated2(dvec, -phi).MulScalar(b / 3 * sigma)
	return p2, p3
}

func angleOf(v v2.Vec) float64 {
	if floraison.Is0(v.X) && floraison.Is0(v.Y) {
		return 0
	}
	return math.Atan2(v.Y, v.X)
}

// Reduce an angle to fit into -pi .. pi.
func reduceAngle(a float64) float64 {
	if math.Abs(a) > math.Pi {
		if a > 0 {
			a -= 2 * math.Pi
		} else {
			a += 2 * math.Pi
		}
	}
	return a
}

// Return 1/a for a.
func recip(a float64) float64 {
	if math.IsNaN(a) || a == 0 {
		return 1.0
	}
	return 1.0 / a
}

func square(a float64) float64 {
	return a * a
}

func ptstring(p v2.Vec, iscontrol bool) string {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return "(<unknown>)"
	}
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f)", round(p.X), round(p.Y))
	}
	return fmt.Sprintf("(%.4g,%.4g)", round(p.X), round(p.Y))
}

func round(x float64) float64 {
	return math.Round(x*10000) / 10000
}

// AsString returns a stroke, optionally including spline control points, as
// a (debugging) string. The string contains newlines if control point
// information is present. Otherwise it will include the knot coordinates in
// one line, e.g.
//
//	(0,0) .. (0.5,3) .. (0,6)
//
// With controls, a straight stroke reads
//
//	(0,0) .. controls (1.0000,0.0000) and (2.0000,0.0000)
//	  .. (3,0)
func AsString(s *Stroke, contr *Controls) string {
	var b strings.Builder
	for i := 0; i < s.N(); i++ {
		if i > 0 {
			if contr != nil {
				fmt.Fprintf(&b, " and %s\n  .. ", ptstring(contr.PreControl(i), true))
			} else {
				b.WriteString(" .. ")
			}
		}
		b.WriteString(ptstring(s.Z(i), false))
		if contr != nil && i < s.N()-1 {
			fmt.Fprintf(&b, " .. controls %s", ptstring(contr.PostControl(i), true))
		}
	}
	return b.String()
}
