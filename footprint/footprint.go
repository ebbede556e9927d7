package footprint

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/npillmayer/floraison"
	"github.com/npillmayer/floraison/inflorescence"
)

// DefaultSegments is the number of vertices per flower disc.
const DefaultSegments = 16

// Footprint is the united ground region of a set of polygons. The region
// may consist of several contours, some of which may be holes.
type Footprint struct {
	Region polyclip.Polygon
}

// Union unites polygons into a footprint.
func Union(polygons ...*Polygon) *Footprint {
	var region polyclip.Polygon
	for _, pg := range polygons {
		if pg == nil || pg.N() < 3 {
			continue
		}
		add := polyclip.Polygon{append(polyclip.Contour(nil), pg.contour...)}
		if len(region) == 0 {
			region = add
			continue
		}
		region = region.Construct(polyclip.UNION, add)
	}
	return &Footprint{Region: region}
}

// Of projects flowers onto the ground plane (x, z) and unites their discs.
// Every flower is a disc of radius·FlowerScale; flowers without size are
// skipped.
func Of(flowers []inflorescence.BranchPoint, radius float64, segments int) (*Footprint, error) {
	discs := make([]*Polygon, 0, len(flowers))
	for _, bp := range flowers {
		r := radius * bp.FlowerScale
		if r <= floraison.Epsilon {
			continue
		}
		d, err := Disc(floraison.Pt(bp.Position.X, bp.Position.Z), r, segments)
		if err != nil {
			L().Errorf("footprint: %v", err)
			return nil, err
		}
		discs = append(discs, d)
	}
	f := Union(discs...)
	L().Debugf("footprint of %d flowers: %d contours, area %.4g", len(discs), len(f.Region), f.Area())
	return f, nil
}

// MustOf is like Of, but panics on error.
func MustOf(flowers []inflorescence.BranchPoint, radius float64, segments int) *Footprint {
	f, err := Of(flowers, radius, segments)
	if err != nil {
		panic(err)
	}
	return f
}

// IsEmpty is true for a footprint without any contour.
func (f *Footprint) IsEmpty() bool {
	return len(f.Region) == 0
}

// Contours returns the number of contours, holes included.
func (f *Footprint) Contours() int {
	return len(f.Region)
}

// Area is the area covered by the footprint. Contours nested an odd number
// of times inside others are holes and count negative.
func (f *Footprint) Area() float64 {
	var area float64
	for i, c := range f.Region {
		if len(c) < 3 {
			continue
		}
		a := math.Abs(shoelace(c))
		if f.depth(i)%2 == 1 {
			area -= a
		} else {
			area += a
		}
	}
	return area
}

func (f *Footprint) depth(i int) int {
	d := 0
	probe := f.Region[i][0]
	for j, c := range f.Region {
		if j != i && c.Contains(probe) {
			d++
		}
	}
	return d
}

// BoundingBox returns the lower left and upper right corners of the
// footprint. An empty footprint has a zero box.
func (f *Footprint) BoundingBox() (v2.Vec, v2.Vec) {
	if f.IsEmpty() {
		return v2.Vec{}, v2.Vec{}
	}
	bb := f.Region.BoundingBox()
	return floraison.Pt(bb.Min.X, bb.Min.Y), floraison.Pt(bb.Max.X, bb.Max.Y)
}
