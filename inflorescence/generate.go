package inflorescence

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	"github.com/npillmayer/floraison/axis"
)

// Generator produces the branch points of one pattern. Implementations are
// stateless and assume validated parameters.
type Generator interface {
	Pattern() Pattern
	BranchPoints(p Params, ax *axis.Curve) []BranchPoint
}

var generators = map[Pattern]Generator{
	Raceme:         raceme{},
	Spike:          spike{},
	Umbel:          umbel{},
	Corymb:         corymb{},
	Dichasium:      dichasium{},
	Drepanium:      drepanium{},
	CompoundRaceme: compoundRaceme,
	CompoundUmbel:  compoundUmbel,
}

// GeneratorFor returns the generator for a pattern.
func GeneratorFor(pattern Pattern) (Generator, error) {
	g, ok := generators[pattern]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPattern, int(pattern))
	}
	return g, nil
}

// Generate validates p and produces its branch points along ax. If ax is
// nil, the main axis is built from p (see AxisPoints).
func Generate(p Params, ax *axis.Curve) ([]BranchPoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g, err := GeneratorFor(p.Pattern)
	if err != nil {
		return nil, err
	}
	if ax == nil {
		if ax, err = NewAxis(p); err != nil {
			return nil, err
		}
	}
	points := g.BranchPoints(p, ax)
	tracer().Debugf("%s: %d branch points", p.Pattern, len(points))
	return points, nil
}

// MustGenerate is like Generate, but panics on error.
func MustGenerate(p Params, ax *axis.Curve) []BranchPoint {
	points, err := Generate(p, ax)
	if err != nil {
		panic(err)
	}
	return points
}

// GenerateCluster validates p and expands a compound pattern into its tree
// of sub-inflorescences. Simple patterns yield a single leaf cluster on the
// axis built from p.
func GenerateCluster(p Params) (*Cluster, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g, err := GeneratorFor(p.Pattern)
	if err != nil {
		return nil, err
	}
	if c, ok := g.(compound); ok {
		return c.Cluster(p), nil
	}
	pts := AxisPoints(p)
	ax, err := axis.New(pts)
	if err != nil {
		return nil, err
	}
	return &Cluster{
		Params:    p,
		Transform: sdf.Identity3d(),
		Axis:      pts,
		Flowers:   g.BranchPoints(p, ax),
	}, nil
}
