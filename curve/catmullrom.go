package curve

import "fmt"

// CatmullRom evaluates a uniform Catmull-Rom segment (tension 0.5) at t.
// The segment runs from p1 (t=0) to p2 (t=1); p0 and p3 shape the tangents.
func CatmullRom[T Vector[T]](p0, p1, p2, p3 T, t float64) T {
	t2 := t * t
	t3 := t2 * t
	b0 := -t + 2*t2 - t3
	b1 := 2 - 5*t2 + 3*t3
	b2 := t + 4*t2 - 3*t3
	b3 := -t2 + t3
	return weighted(p0, p1, p2, p3, b0, b1, b2, b3)
}

// CatmullRomTangent is the first derivative of CatmullRom with respect to t.
// It is not normalized.
func CatmullRomTangent[T Vector[T]](p0, p1, p2, p3 T, t float64) T {
	t2 := t * t
	b0 := -1 + 4*t - 3*t2
	b1 := -10*t + 9*t2
	b2 := 1 + 8*t - 9*t2
	b3 := -2*t + 3*t2
	return weighted(p0, p1, p2, p3, b0, b1, b2, b3)
}

func weighted[T Vector[T]](p0, p1, p2, p3 T, b0, b1, b2, b3 float64) T {
	return p0.MulScalar(b0).
		Add(p1.MulScalar(b1)).
		Add(p2.MulScalar(b2)).
		Add(p3.MulScalar(b3)).
		MulScalar(0.5)
}

// SampleCatmullRom slides a 4-point window over points and samples each of
// the resulting len(points)-3 segments at perSegment parameter steps.
// The result interpolates points[1] … points[len-2]; the first and last
// input point only seed the end tangents.
func SampleCatmullRom[T Vector[T]](points []T, perSegment int) ([]T, error) {
	n := len(points)
	if n < 4 {
		tracer().Errorf("Catmull-Rom spline with %d control points", n)
		return nil, fmt.Errorf("%w: Catmull-Rom needs 4 control points, have %d", ErrTooFewControlPoints, n)
	}
	if perSegment < 2 {
		return nil, fmt.Errorf("%w: Catmull-Rom needs 2 samples per segment, have %d", ErrTooFewSamples, perSegment)
	}
	pts := make([]T, 0, (n-3)*perSegment+1)
	for s := 0; s+3 < n; s++ {
		for i := 0; i < perSegment; i++ {
			t := float64(i) / float64(perSegment)
			pts = append(pts, CatmullRom(points[s], points[s+1], points[s+2], points[s+3], t))
		}
	}
	pts = append(pts, points[n-2])
	return pts, nil
}

// MustSampleCatmullRom is like SampleCatmullRom, but panics on error.
func MustSampleCatmullRom[T Vector[T]](points []T, perSegment int) []T {
	pts, err := SampleCatmullRom(points, perSegment)
	if err != nil {
		panic(err)
	}
	return pts
}
