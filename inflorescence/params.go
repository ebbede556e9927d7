/*
Package inflorescence generates the branching skeleton of multi-flower
structures.

A generator samples an axis curve, applies phyllotactic offsets, and emits
an ordered list of branch points. Each branch point tells an external mesh
assembler where a flower sits, where it faces, how long its stalk is, how
large it is, and how old it is.

Patterns fall into three groups. Indeterminate patterns (raceme, spike,
corymb, umbel) bloom from the bottom or the outside first. Determinate
patterns (dichasium, drepanium) bloom from the top or the center first.
Compound patterns replace every flower of a raceme or umbel by a smaller
sub-inflorescence.

Usage:

	params := inflorescence.DefaultParams()
	params.Pattern = inflorescence.Corymb
	points, err := inflorescence.Generate(params, nil)

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package inflorescence

import (
	"errors"
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/npillmayer/floraison"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'floraison'
func tracer() tracing.Trace {
	return tracing.Select("floraison")
}

// Errors returned for invalid parameters.
var (
	ErrUnknownPattern   = errors.New("unknown inflorescence pattern")
	ErrInvalidParams    = errors.New("invalid inflorescence parameters")
	ErrRecursionTooDeep = errors.New("recursion depth exceeds limit")
)

// MaxRecursionDepth limits dichasium and drepanium depth.
// A dichasium of depth d has 2^(d+1)-1 flowers.
const MaxRecursionDepth = 12

// MaxCompoundDepth limits the nesting of compound patterns, which grow with
// branch count to the power of depth.
const MaxCompoundDepth = 4

// Pattern selects the branching pattern of an inflorescence.
type Pattern int

// Inflorescence patterns.
const (
	Raceme         Pattern = iota // flowers on pedicels along an unbranched axis
	Spike                         // sessile flowers along an unbranched axis
	Umbel                         // all pedicels from a single point
	Corymb                        // pedicel lengths form a flat top
	Dichasium                     // two branches per node
	Drepanium                     // one branch per node, coiled
	CompoundRaceme                // raceme of racemes
	CompoundUmbel                 // umbel of umbels
)

var patternNames = [...]string{"raceme", "spike", "umbel", "corymb", "dichasium",
	"drepanium", "compound-raceme", "compound-umbel"}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return fmt.Sprintf("pattern(%d)", int(p))
	}
	return patternNames[p]
}

// IsDeterminate is true for patterns whose terminal flower blooms first.
func (p Pattern) IsDeterminate() bool {
	return p == Dichasium || p == Drepanium
}

// IsCompound is true for recursively composed patterns.
func (p Pattern) IsCompound() bool {
	return p == CompoundRaceme || p == CompoundUmbel
}

// BranchPoint is an attachment point for a single flower.
type BranchPoint struct {
	Position    v3.Vec  // flower base
	Direction   v3.Vec  // unit vector the flower faces
	Length      float64 // pedicel length, 0 for sessile flowers
	FlowerScale float64 // 1 = normal size
	Age         float64 // 0 = bud … 1 = oldest
}

func (bp BranchPoint) String() string {
	return fmt.Sprintf("branch[at=%s dir=%s len=%.3g scale=%.3g age=%.3g]",
		floraison.VString(bp.Position), floraison.VString(bp.Direction),
		bp.Length, bp.FlowerScale, bp.Age)
}

// Params controls the shape of an inflorescence. Angles are in degrees.
type Params struct {
	Pattern            Pattern
	AxisLength         float64 // length of the main axis
	BranchCount        int     // number of flower positions
	AngleTop           float64 // branch angle at the top, from the local normal
	AngleBottom        float64 // branch angle at the bottom
	BranchLengthTop    float64 // pedicel length at the top
	BranchLengthBottom float64 // pedicel length at the bottom
	RotationAngle      float64 // spiral increment between branches
	FlowerSizeTop      float64
	FlowerSizeBottom   float64

	// Recursive patterns only. Nil selects the pattern's default.
	RecursionDepth  *int
	BranchRatio     *float64 // child length / parent length
	AngleDivergence *float64 // dichasium fork half-angle

	// AgeDistribution shifts flower ages: 0 = mostly buds, 0.5 = natural
	// gradient, 1 = mostly in bloom.
	AgeDistribution float64

	// AxisCurveAmount bends the main axis, 0 = straight, 1 = strongly
	// curved towards AxisCurveDirection.
	AxisCurveAmount    float64
	AxisCurveDirection v3.Vec
}

// DefaultParams returns parameters for a 12-flower raceme on a straight axis.
func DefaultParams() Params {
	return Params{
		Pattern:            Raceme,
		AxisLength:         10,
		BranchCount:        12,
		AngleTop:           45,
		AngleBottom:        60,
		BranchLengthTop:    0.5,
		BranchLengthBottom: 1.5,
		RotationAngle:      137.5,
		FlowerSizeTop:      0.8,
		FlowerSizeBottom:   1.0,
		AgeDistribution:    0.5,
		AxisCurveDirection: floraison.XAxis,
	}
}

// WithDepth returns a copy of p with the recursion depth set.
func (p Params) WithDepth(depth int) Params {
	p.RecursionDepth = &depth
	return p
}

// WithBranchRatio returns a copy of p with the branch length ratio set.
func (p Params) WithBranchRatio(ratio float64) Params {
	p.BranchRatio = &ratio
	return p
}

// WithAngleDivergence returns a copy of p with the fork angle set (degrees).
func (p Params) WithAngleDivergence(deg float64) Params {
	p.AngleDivergence = &deg
	return p
}

// Defaults for the optional recursive controls.
const (
	dichasiumDepth      = 1
	dichasiumRatio      = 0.7
	dichasiumDivergence = 30.0
	drepaniumDepth      = 5
	drepaniumRatio      = 0.8
	compoundDepth       = 1
)

func (p Params) depthOr(deflt int) int {
	if p.RecursionDepth == nil {
		return deflt
	}
	return *p.RecursionDepth
}

func (p Params) ratioOr(deflt float64) float64 {
	if p.BranchRatio == nil {
		return deflt
	}
	return *p.BranchRatio
}

func (p Params) divergenceOr(deflt float64) float64 {
	if p.AngleDivergence == nil {
		return deflt
	}
	return *p.AngleDivergence
}

// Validate checks p for values no generator can work with.
func (p Params) Validate() error {
	if p.Pattern < Raceme || p.Pattern > CompoundUmbel {
		return fmt.Errorf("%w: %d", ErrUnknownPattern, int(p.Pattern))
	}
	invalid := func(format string, args ...interface{}) error {
		err := fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidParams}, args...)...)
		tracer().Errorf("%v", err)
		return err
	}
	if !(p.AxisLength > 0) || !floraison.IsFinite(p.AxisLength) {
		return invalid("axis length %g", p.AxisLength)
	}
	if p.BranchCount < 0 {
		return invalid("branch count %d", p.BranchCount)
	}
	if p.BranchLengthTop < 0 || p.BranchLengthBottom < 0 {
		return invalid("negative branch length (%g, %g)", p.BranchLengthTop, p.BranchLengthBottom)
	}
	if !(p.FlowerSizeTop > 0) || !(p.FlowerSizeBottom > 0) {
		return invalid("flower size must be positive (%g, %g)", p.FlowerSizeTop, p.FlowerSizeBottom)
	}
	for _, a := range []float64{p.AngleTop, p.AngleBottom, p.RotationAngle} {
		if !floraison.IsFinite(a) {
			return invalid("angle %g", a)
		}
	}
	if p.AgeDistribution < 0 || p.AgeDistribution > 1 {
		return invalid("age distribution %g outside [0,1]", p.AgeDistribution)
	}
	if p.AxisCurveAmount < 0 || p.AxisCurveAmount > 1 {
		return invalid("axis curve amount %g outside [0,1]", p.AxisCurveAmount)
	}
	if p.BranchRatio != nil && !(*p.BranchRatio > 0) {
		return invalid("branch ratio %g", *p.BranchRatio)
	}
	if p.AngleDivergence != nil && !floraison.IsFinite(*p.AngleDivergence) {
		return invalid("angle divergence %g", *p.AngleDivergence)
	}
	if p.RecursionDepth != nil {
		d := *p.RecursionDepth
		if d < 0 {
			return invalid("recursion depth %d", d)
		}
		limit := MaxRecursionDepth
		if p.Pattern.IsCompound() {
			limit = MaxCompoundDepth
		}
		if d > limit {
			return fmt.Errorf("%w: %s with depth %d, limit is %d", ErrRecursionTooDeep, p.Pattern, d, limit)
		}
	}
	return nil
}
