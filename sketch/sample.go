package sketch

import (
	"fmt"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/npillmayer/floraison/axis"
	"github.com/npillmayer/floraison/curve"
	"github.com/npillmayer/floraison/reconstruct"
)

// Sample returns points along the smoothed stroke, perSegment points for
// every Bézier segment, sharing points at the knots. Control points are
// calculated if the stroke has none yet.
func (s *Stroke) Sample(perSegment int) ([]v2.Vec, error) {
	if s.Controls == nil {
		if _, err := FindControls(s); err != nil {
			return nil, err
		}
	}
	if perSegment < 2 {
		return nil, fmt.Errorf("%w: %d points per segment", curve.ErrTooFewSamples, perSegment)
	}
	c := s.Controls
	pts := make([]v2.Vec, 0, (s.N()-1)*(perSegment-1)+1)
	for i := 0; i < s.N()-1; i++ {
		seg, err := curve.SampleCubic(s.Z(i), c.PostControl(i), c.PreControl(i+1), s.Z(i+1), perSegment)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			seg = seg[1:]
		}
		pts = append(pts, seg...)
	}
	return pts, nil
}

// Lift samples the stroke and reconstructs a space curve from it, with the
// stroke's height as Y. The stroke has to rise monotonically.
func (s *Stroke) Lift(perSegment int) ([]v3.Vec, error) {
	pts, err := s.Sample(perSegment)
	if err != nil {
		return nil, err
	}
	return reconstruct.Curve3D(pts)
}

// Axis lifts the stroke into space and wraps it into an axis curve.
func (s *Stroke) Axis(perSegment int) (*axis.Curve, error) {
	pts, err := s.Lift(perSegment)
	if err != nil {
		return nil, err
	}
	return axis.New(pts)
}
