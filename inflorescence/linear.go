package inflorescence

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/npillmayer/floraison"
	"github.com/npillmayer/floraison/axis"
)

// tilt rotates the frame's normal away from the curve by angle around the
// binormal, then spins the result around the tangent by spin. Both angles
// are in radians.
func tilt(s axis.Sample, angle, spin float64) v3.Vec {
	d := floraison.Rotate(s.Normal, s.Binormal, -angle)
	d = floraison.Rotate(d, s.Tangent, spin)
	return floraison.NormalizeOr(d, s.Normal)
}

// linearParam positions branch i of n along the axis. A single branch sits
// in the middle.
func linearParam(i, n int) float64 {
	if n == 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}

// stalkLength computes the pedicel length of a linear pattern.
type stalkLength func(s axis.Sample, dir v3.Vec, deflt float64) float64

// linearBranches is the common loop of raceme, spike and corymb: flowers
// spread evenly along the axis, bottom ones oldest.
func linearBranches(p Params, ax *axis.Curve, length stalkLength) []BranchPoint {
	n := p.BranchCount
	branches := make([]BranchPoint, 0, n)
	for i := 0; i < n; i++ {
		t := linearParam(i, n)
		s := ax.SampleAt(t)
		angle := floraison.Lerp(p.AngleBottom, p.AngleTop, t)
		l := floraison.Lerp(p.BranchLengthBottom, p.BranchLengthTop, t)
		scale := floraison.Lerp(p.FlowerSizeBottom, p.FlowerSizeTop, t)
		dir := tilt(s, floraison.Rad(angle), floraison.Rad(p.RotationAngle*float64(i)))
		l = length(s, dir, l)
		branches = append(branches, BranchPoint{
			Position:    s.Position.Add(dir.MulScalar(l)),
			Direction:   dir,
			Length:      l,
			FlowerScale: scale,
			Age:         ApplyAgeDistribution(1-t, p.AgeDistribution),
		})
	}
	return branches
}

type raceme struct{}

func (raceme) Pattern() Pattern { return Raceme }

func (raceme) BranchPoints(p Params, ax *axis.Curve) []BranchPoint {
	return linearBranches(p, ax, func(_ axis.Sample, _ v3.Vec, l float64) float64 {
		return l
	})
}

type spike struct{}

func (spike) Pattern() Pattern { return Spike }

// Spike flowers are sessile: they sit on the axis, but still face outwards.
func (spike) BranchPoints(p Params, ax *axis.Curve) []BranchPoint {
	return linearBranches(p, ax, func(axis.Sample, v3.Vec, float64) float64 {
		return 0
	})
}

type corymb struct{}

func (corymb) Pattern() Pattern { return Corymb }

// Corymb pedicels are as long as needed for every flower to reach the
// height of the axis top. Nearly horizontal branches keep their default
// length.
func (corymb) BranchPoints(p Params, ax *axis.Curve) []BranchPoint {
	target := ax.SampleAt(1).Position.Y
	return linearBranches(p, ax, func(s axis.Sample, dir v3.Vec, l float64) float64 {
		if math.Abs(dir.Y) <= 0.01 {
			tracer().Debugf("corymb: branch too flat to reach %.3g, length %.3g", target, l)
			return l
		}
		return math.Max(0, (target-s.Position.Y)/dir.Y)
	})
}
