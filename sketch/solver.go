package sketch

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/npillmayer/floraison"
)

// Validate checks if a stroke is solvable by Hobby interpolation.
func (s *Stroke) Validate() error {
	n := s.N()
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 knots, got %d", ErrTooFewKnots, n)
	}
	for i, k := range s.knots {
		if !floraison.IsFinite(k.pt.X) || !floraison.IsFinite(k.pt.Y) {
			return fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	for i := 0; i < n-1; i++ {
		if s.delta(i).Length() <= floraison.Epsilon {
			return fmt.Errorf("%w between knots %d and %d", ErrDegenerateSegment, i, i+1)
		}
	}
	return nil
}

// FindControls finds the Hobby-spline control points for a stroke and
// stores them in s.Controls.
func FindControls(s *Stroke) (*Controls, error) {
	if err := s.Validate(); err != nil {
		tracer().Errorf("stroke %s: %v", AsString(s, nil), err)
		return nil, err
	}
	n := s.N()
	controls := &Controls{prec: make([]v2.Vec, n), postc: make([]v2.Vec, n)}
	for _, seg := range s.segments() {
		tracer().Debugf("find controls for knots %d-%d", seg[0], seg[1])
		s.solveSegment(seg[0], seg[1], controls)
	}
	s.Controls = controls
	tracer().Debugf("smooth stroke = %s", AsString(s, controls))
	return controls, nil
}

// MustFindControls is like FindControls, but panics on error.
func MustFindControls(s *Stroke) *Controls {
	c, err := FindControls(s)
	if err != nil {
		panic(err)
	}
	return c
}

// segments splits a stroke at rough knots, i.e. interior knots with a curl
// other than 1 or an explicit direction. Each segment is [first, last]
// knot index.
func (s *Stroke) segments() [][2]int {
	var segs [][2]int
	at := 0
	for i := 1; i < s.N()-1; i++ {
		if s.isRough(i) {
			segs = append(segs, [2]int{at, i})
			at = i
		}
	}
	return append(segs, [2]int{at, s.N() - 1})
}

func (s *Stroke) isRough(i int) bool {
	k := s.knots[i]
	return k.preCurl != 1 || k.postCurl != 1 || k.hasDir
}

func (s *Stroke) delta(i int) v2.Vec {
	return s.knots[i+1].pt.Sub(s.knots[i].pt)
}

// solveSegment sets up and solves the tridiagonal system for the turning
// angles θ of an open segment, then derives the control points.
func (s *Stroke) solveSegment(first, last int, controls *Controls) {
	n := last - first + 1
	k := func(i int) knot { return s.knots[first+i] }
	delta := func(i int) v2.Vec { return s.delta(first + i) }
	dist := func(i int) float64 { return delta(i).Length() }
	psi := func(i int) float64 { // turning angle at interior knots
		if i <= 0 || i >= n-1 {
			return 0
		}
		return reduceAngle(angleOf(delta(i)) - angleOf(delta(i-1)))
	}
	theta := make([]float64, n)
	u := make([]float64, n)
	v := make([]float64, n)
	// start condition: given direction or curl
	if k0 := k(0); k0.hasDir {
		u[0] = 0
		v[0] = reduceAngle(angleOf(k0.dir) - angleOf(delta(0)))
	} else {
		a := recip(k0.postTension)
		b := recip(k(1).preTension)
		c := square(a) * k0.postCurl / square(b)
		u[0] = ((3-a)*c + b) / (a*c + 3 - b)
		v[0] = -u[0] * psi(1)
	}
	tracer().Debugf("u.0 = %.4g, v.0 = %.4g", u[0], v[0])
	for i := 1; i < n-1; i++ {
		a0 := recip(k(i - 1).postTension)
		a1 := recip(k(i).postTension)
		b1 := recip(k(i).preTension)
		b2 := recip(k(i + 1).preTension)
		A := a0 / (square(b1) * dist(i-1))
		B := (3 - a0) / (square(b1) * dist(i-1))
		C := (3 - b2) / (square(a1) * dist(i))
		D := b2 / (square(a1) * dist(i))
		t := B - u[i-1]*A + C
		u[i] = D / t
		v[i] = (-B*psi(i) - D*psi(i+1) - A*v[i-1]) / t
		tracer().Debugf("u.%d = %.4g, v.%d = %.4g", i, u[i], i, v[i])
	}
	// end condition: given direction or curl
	L := n - 1
	if kl := k(L); kl.hasDir {
		theta[L] = reduceAngle(angleOf(kl.dir) - angleOf(delta(L-1)))
	} else {
		a := recip(k(L - 1).postTension)
		b := recip(kl.preTension)
		c := square(b) * kl.preCurl / square(a)
		uL := (b*c + 3 - a) / ((3-b)*c + a)
		if den := u[L-1] - uL; math.Abs(den) > floraison.Epsilon {
			theta[L] = v[L-1] / den
		} // else both ends curl on a single segment: a straight line
	}
	for i := L - 1; i >= 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
	for i := 0; i < L; i++ {
		phi := -psi(i+1) - theta[i+1]
		a := recip(k(i).postTension)
		b := recip(k(i + 1).preTension)
		p2, p3 := controlPoints(phi, theta[i], a, b, delta(i))
		controls.setPostControl(first+i, k(i).pt.Add(p2))
		controls.setPreControl(first+i+1, k(i+1).pt.Sub(p3))
	}
}
