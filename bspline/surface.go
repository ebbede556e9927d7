package bspline

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Curve is a B-spline curve of degree P over control points Control.
type Curve struct {
	Control []v3.Vec
	P       int
	Knots   []float64
}

// NewCurve creates a B-spline curve with an open uniform knot vector.
func NewCurve(control []v3.Vec, degree int) (*Curve, error) {
	if len(control) == 0 {
		return nil, ErrEmptyGrid
	}
	if degree < 0 || degree >= len(control) {
		return nil, fmt.Errorf("%w: degree %d with %d control points", ErrDegreeTooHigh, degree, len(control))
	}
	return &Curve{
		Control: control,
		P:       degree,
		Knots:   KnotVector(len(control), degree),
	}, nil
}

// Eval evaluates the curve at u ∈ [0,1].
func (c *Curve) Eval(u float64) v3.Vec {
	var pt v3.Vec
	for i, cp := range c.Control {
		if w := Basis(i, c.P, u, c.Knots); math.Abs(w) >= tiny {
			pt = pt.Add(cp.MulScalar(w))
		}
	}
	return pt
}

// Sample returns count points of c, evenly spaced in parameter space.
func (c *Curve) Sample(count int) ([]v3.Vec, error) {
	if count < 2 {
		return nil, fmt.Errorf("%w: B-spline curve needs 2 samples, have %d", ErrTooFewSamples, count)
	}
	pts := make([]v3.Vec, count)
	for i := range pts {
		pts[i] = c.Eval(float64(i) / float64(count-1))
	}
	return pts, nil
}

// Surface is a tensor-product B-spline surface. Control is indexed [i][j],
// where i runs along parameter u and j along parameter v.
type Surface struct {
	Control [][]v3.Vec
	P, Q    int       // degrees in u and v
	KnotsU  []float64 // len(Control) + P + 1 entries
	KnotsV  []float64 // len(Control[0]) + Q + 1 entries
}

// step for finite-difference partial derivatives
const hDeriv = 0.001

// NewSurface creates a surface over the control grid with open uniform knot
// vectors in both directions.
func NewSurface(control [][]v3.Vec, p, q int) (*Surface, error) {
	if len(control) == 0 || len(control[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	n, m := len(control), len(control[0])
	for i, row := range control {
		if len(row) != m {
			return nil, fmt.Errorf("%w: row %d has %d points, row 0 has %d", ErrRaggedGrid, i, len(row), m)
		}
	}
	if p < 0 || p >= n || q < 0 || q >= m {
		return nil, fmt.Errorf("%w: degrees (%d,%d) with %d×%d grid", ErrDegreeTooHigh, p, q, n, m)
	}
	s := &Surface{
		Control: control,
		P:       p,
		Q:       q,
		KnotsU:  KnotVector(n, p),
		KnotsV:  KnotVector(m, q),
	}
	tracer().Debugf("B-spline surface %d×%d, degrees (%d,%d)", n, m, p, q)
	return s, nil
}

// MustSurface is like NewSurface, but panics on error.
func MustSurface(control [][]v3.Vec, p, q int) *Surface {
	s, err := NewSurface(control, p, q)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks that the knot vectors fit the control grid. It is useful
// for surfaces assembled by hand with custom knots.
func (s *Surface) Validate() error {
	if len(s.Control) == 0 || len(s.Control[0]) == 0 {
		return ErrEmptyGrid
	}
	n, m := len(s.Control), len(s.Control[0])
	for i, row := range s.Control {
		if len(row) != m {
			return fmt.Errorf("%w: row %d has %d points, row 0 has %d", ErrRaggedGrid, i, len(row), m)
		}
	}
	if len(s.KnotsU) != n+s.P+1 {
		return fmt.Errorf("%w: u has %d knots, need %d", ErrKnotCount, len(s.KnotsU), n+s.P+1)
	}
	if len(s.KnotsV) != m+s.Q+1 {
		return fmt.Errorf("%w: v has %d knots, need %d", ErrKnotCount, len(s.KnotsV), m+s.Q+1)
	}
	return nil
}

// Eval evaluates the surface at (u,v). Terms with negligible basis weight
// are skipped.
func (s *Surface) Eval(u, v float64) v3.Vec {
	var pt v3.Vec
	for i, row := range s.Control {
		nu := Basis(i, s.P, u, s.KnotsU)
		if math.Abs(nu) < tiny {
			continue
		}
		for j, cp := range row {
			nv := Basis(j, s.Q, v, s.KnotsV)
			if w := nu * nv; math.Abs(w) >= tiny {
				pt = pt.Add(cp.MulScalar(w))
			}
		}
	}
	return pt
}

// DerivU estimates ∂S/∂u by a central difference, with probes kept in [0,1].
func (s *Surface) DerivU(u, v float64) v3.Vec {
	u0, u1 := probes(u)
	return s.Eval(u1, v).Sub(s.Eval(u0, v)).DivScalar(u1 - u0)
}

// DerivV estimates ∂S/∂v by a central difference, with probes kept in [0,1].
func (s *Surface) DerivV(u, v float64) v3.Vec {
	v0, v1 := probes(v)
	return s.Eval(u, v1).Sub(s.Eval(u, v0)).DivScalar(v1 - v0)
}

// Normal is the unit surface normal at (u,v), or +Y where the partial
// derivatives are (nearly) parallel.
func (s *Surface) Normal(u, v float64) v3.Vec {
	n := s.DerivU(u, v).Cross(s.DerivV(u, v))
	l := n.Length()
	if l <= 1e-6 {
		tracer().Debugf("B-spline surface: degenerate normal at (%.3g,%.3g)", u, v)
		return v3.Vec{Y: 1}
	}
	return n.DivScalar(l)
}

func probes(t float64) (float64, float64) {
	return math.Max(0, t-hDeriv), math.Min(1, t+hDeriv)
}
