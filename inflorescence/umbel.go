package inflorescence

import (
	"github.com/npillmayer/floraison"
	"github.com/npillmayer/floraison/axis"
)

type umbel struct{}

func (umbel) Pattern() Pattern { return Umbel }

// All umbel rays start at the axis top and share length, angle, flower size
// and age. They differ only in their spiral phase.
func (umbel) BranchPoints(p Params, ax *axis.Curve) []BranchPoint {
	s := ax.SampleAt(1)
	angle := floraison.Rad(p.AngleTop)
	age := ApplyAgeDistribution(1, p.AgeDistribution)
	branches := make([]BranchPoint, p.BranchCount)
	for i := range branches {
		dir := tilt(s, angle, floraison.Rad(p.RotationAngle*float64(i)))
		branches[i] = BranchPoint{
			Position:    s.Position.Add(dir.MulScalar(p.BranchLengthTop)),
			Direction:   dir,
			Length:      p.BranchLengthTop,
			FlowerScale: p.FlowerSizeTop,
			Age:         age,
		}
	}
	return branches
}
