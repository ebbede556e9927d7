package inflorescence

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/npillmayer/floraison"
	"github.com/npillmayer/floraison/axis"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertUnitDirections(t *testing.T, points []BranchPoint) {
	t.Helper()
	for i, bp := range points {
		assert.InDelta(t, 1.0, bp.Direction.Length(), 1e-9, "direction %d", i)
		assert.True(t, bp.Age >= 0 && bp.Age <= 1, "age %d is %g", i, bp.Age)
		assert.True(t, bp.Length >= 0, "length %d is %g", i, bp.Length)
		assert.True(t, bp.FlowerScale > 0, "flower scale %d is %g", i, bp.FlowerScale)
	}
}

func TestPatternNames(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, "raceme", Raceme.String())
	assert.Equal(t, "compound-umbel", CompoundUmbel.String())
	assert.Equal(t, "pattern(42)", Pattern(42).String())
	assert.True(t, Dichasium.IsDeterminate())
	assert.False(t, Umbel.IsDeterminate())
	assert.True(t, CompoundRaceme.IsCompound())
}

func TestRacemeAges(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultParams()
	p.BranchCount = 5
	p.AxisLength = 10
	p.AngleTop, p.AngleBottom = 45, 60
	p.RotationAngle = 137.5
	points, err := Generate(p, nil)
	require.NoError(t, err)
	require.Len(t, points, 5)
	for i, want := range []float64{1, 0.75, 0.5, 0.25, 0} {
		assert.InDelta(t, want, points[i].Age, 1e-12)
	}
	assertUnitDirections(t, points)
	// pedicels interpolate from bottom to top
	assert.InDelta(t, p.BranchLengthBottom, points[0].Length, 1e-12)
	assert.InDelta(t, p.BranchLengthTop, points[4].Length, 1e-12)
	assert.InDelta(t, p.FlowerSizeTop, points[4].FlowerScale, 1e-12)
	// flower sits at the end of its pedicel
	base := points[2].Position.Sub(points[2].Direction.MulScalar(points[2].Length))
	assert.InDelta(t, 5.0, base.Y, 1e-9)
	assert.InDelta(t, 0.0, math.Hypot(base.X, base.Z), 1e-9)
}

func TestRacemeSingleAndEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultParams()
	p.BranchCount = 1
	points := MustGenerate(p, nil)
	require.Len(t, points, 1)
	base := points[0].Position.Sub(points[0].Direction.MulScalar(points[0].Length))
	assert.InDelta(t, p.AxisLength/2, base.Y, 1e-9)
	assert.InDelta(t, 0.5, points[0].Age, 1e-12)
	p.BranchCount = 0
	for _, pattern := range []Pattern{Raceme, Spike, Corymb, Umbel} {
		p.Pattern = pattern
		points = MustGenerate(p, nil)
		assert.Empty(t, points, "%s with zero branches", pattern)
	}
}

func TestSpikeIsSessile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultParams()
	p.Pattern = Spike
	ax := axis.Must([]v3.Vec{floraison.Origin, floraison.V(0, 4, 0)})
	points := MustGenerate(p, ax)
	require.Len(t, points, p.BranchCount)
	assertUnitDirections(t, points)
	for i, bp := range points {
		assert.Equal(t, 0.0, bp.Length)
		assert.InDelta(t, 4*float64(i)/float64(p.BranchCount-1), bp.Position.Y, 1e-9)
		assert.InDelta(t, 0.0, math.Hypot(bp.Position.X, bp.Position.Z), 1e-12)
	}
}

func TestCorymbFlatTop(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	angles := [][2]float64{{45, 60}, {15, 75}, {30, 30}, {5, 85}, {70, 10}}
	for _, a := range angles {
		p := DefaultParams()
		p.Pattern = Corymb
		p.AngleTop, p.AngleBottom = a[0], a[1]
		points, err := Generate(p, nil)
		require.NoError(t, err)
		assertUnitDirections(t, points)
		for i, bp := range points {
			assert.InDelta(t, p.AxisLength, bp.Position.Y, 1e-2,
				"angles %v: tip %d at %s", a, i, floraison.VString(bp.Position))
		}
		// the lowest flower needs the longest pedicel
		assert.Greater(t, points[0].Length, points[len(points)-2].Length)
	}
}

func TestUmbel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultParams()
	p.Pattern = Umbel
	p.BranchCount = 9
	points := MustGenerate(p, nil)
	require.Len(t, points, 9)
	assertUnitDirections(t, points)
	top := floraison.V(0, p.AxisLength, 0)
	for _, bp := range points {
		assert.Equal(t, points[0].Length, bp.Length)
		assert.Equal(t, points[0].FlowerScale, bp.FlowerScale)
		assert.Equal(t, 1.0, bp.Age)
		assert.InDelta(t, p.BranchLengthTop, bp.Position.Sub(top).Length(), 1e-9)
		assert.InDelta(t, points[0].Direction.Y, bp.Direction.Y, 1e-9)
	}
}

func TestDichasium(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for d := 0; d <= 5; d++ {
		p := DefaultParams().WithDepth(d)
		p.Pattern = Dichasium
		points, err := Generate(p, nil)
		require.NoError(t, err)
		require.Len(t, points, 1<<(d+1)-1, "depth %d", d)
		assertUnitDirections(t, points)
		assert.Equal(t, 1.0, points[0].Age)
		assert.Equal(t, p.BranchLengthTop, points[0].Length)
		last := points[len(points)-1]
		if d > 0 {
			assert.InDelta(t, 0.0, last.Age, 1e-12)
			assert.InDelta(t, p.BranchLengthTop*math.Pow(dichasiumRatio, float64(d)), last.Length, 1e-12)
		}
		for _, bp := range points {
			// straight axis: the fork plane is orthogonal to the binormal -Z
			assert.InDelta(t, 0.0, bp.Direction.Z, 1e-9)
			assert.InDelta(t, 0.0, bp.Position.Z, 1e-9)
		}
	}
}

func TestDichasiumPreorder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultParams().WithDepth(2).WithAngleDivergence(40).WithBranchRatio(0.5)
	p.Pattern = Dichasium
	points := MustGenerate(p, nil)
	require.Len(t, points, 7)
	depthOf := []float64{0, 1, 2, 2, 1, 2, 2}
	for i, bp := range points {
		assert.InDelta(t, p.BranchLengthTop*math.Pow(0.5, depthOf[i]), bp.Length, 1e-12, "node %d", i)
	}
	// children are ±40° away from their parent
	for _, child := range []int{1, 4} {
		cos := points[0].Direction.Dot(points[child].Direction)
		assert.InDelta(t, math.Cos(floraison.Rad(40)), cos, 1e-9)
	}
	assert.InDelta(t, 1.0, points[0].FlowerScale/p.FlowerSizeTop, 1e-12)
	assert.InDelta(t, 0.6, points[2].FlowerScale/p.FlowerSizeTop, 1e-12)
}

func TestDrepanium(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for d := 0; d <= 6; d++ {
		p := DefaultParams().WithDepth(d).WithBranchRatio(0.8)
		p.Pattern = Drepanium
		points := MustGenerate(p, nil)
		require.Len(t, points, d+1)
		assertUnitDirections(t, points)
		assert.Equal(t, 1.0, points[0].Age)
		for i := 1; i < len(points); i++ {
			assert.InDelta(t, 0.8, points[i].Length/points[i-1].Length, 1e-9)
			assert.Less(t, points[i].Age, points[i-1].Age)
			// each link starts where its parent's flower sits
			start := points[i].Position.Sub(points[i].Direction.MulScalar(points[i].Length))
			assert.InDelta(t, 0.0, start.Sub(points[i-1].Position).Length(), 1e-9)
		}
	}
	p := DefaultParams()
	p.Pattern = Drepanium
	assert.Len(t, MustGenerate(p, nil), drepaniumDepth+1)
}

func TestCurvedAxis(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	straight := CurvedPoints(floraison.Origin, floraison.V(0, 10, 0), 0.005, floraison.XAxis, 8)
	assert.Len(t, straight, 2)
	p := DefaultParams()
	p.AxisCurveAmount = 0.5
	pts := AxisPoints(p)
	require.Len(t, pts, curvedAxisPoints)
	assert.Equal(t, floraison.Origin, pts[0])
	assert.InDelta(t, 10.0, pts[len(pts)-1].Y, 1e-12)
	for _, pt := range pts[1 : len(pts)-1] {
		assert.Greater(t, pt.X, 0.0)
	}
	points, err := Generate(p, nil)
	require.NoError(t, err)
	assertUnitDirections(t, points)
}

func TestCompoundRaceme(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultParams().WithDepth(2)
	p.Pattern = CompoundRaceme
	p.BranchCount = 4
	c, err := GenerateCluster(p)
	require.NoError(t, err)
	assert.Equal(t, 5, c.Size())
	require.Len(t, c.Stalks, 4)
	require.Len(t, c.Children, 4)
	assert.Empty(t, c.Flowers)
	for i, ch := range c.Children {
		assert.True(t, ch.IsLeaf())
		assert.Len(t, ch.Flowers, 3)
		assert.InDelta(t, p.AxisLength*0.4, ch.Axis[len(ch.Axis)-1].Y, 1e-12)
		// a sub-raceme's base sits at its stalk's tip, its axis along the stalk
		base := ch.Transform.MulPosition(floraison.Origin)
		assert.InDelta(t, 0.0, base.Sub(c.Stalks[i].Position).Length(), 1e-9)
		up := floraison.TransformDirection(ch.Transform, floraison.YAxis)
		assert.InDelta(t, 1.0, up.Dot(c.Stalks[i].Direction), 1e-9)
	}
	flowers := c.Flatten()
	assert.Len(t, flowers, 12)
	assertUnitDirections(t, flowers)
	local := c.Children[0].Flowers[0]
	assert.InDelta(t, local.Length*subScale, flowers[0].Length, 1e-12)
	assert.InDelta(t, local.FlowerScale*subScale, flowers[0].FlowerScale, 1e-12)
	points := MustGenerate(p, nil)
	assert.Len(t, points, 12)
}

func TestCompoundDegradesToSimple(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultParams()
	p.Pattern = CompoundRaceme
	compound := MustGenerate(p, nil)
	p.Pattern = Raceme
	simple := MustGenerate(p, nil)
	require.Len(t, compound, len(simple))
	for i := range simple {
		assert.InDelta(t, 0.0, compound[i].Position.Sub(simple[i].Position).Length(), 1e-9)
		assert.InDelta(t, 0.0, compound[i].Direction.Sub(simple[i].Direction).Length(), 1e-9)
		assert.Equal(t, simple[i].Age, compound[i].Age)
	}
}

func TestCompoundFollowsGivenAxis(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultParams().WithDepth(2)
	p.Pattern = CompoundRaceme
	p.BranchCount = 4
	own := MustGenerate(p, nil)
	shift := floraison.V(5, 0, 0)
	ax := axis.Must([]v3.Vec{shift, floraison.V(5, p.AxisLength, 0)})
	moved := MustGenerate(p, ax)
	require.Len(t, moved, len(own))
	for i := range own {
		assert.InDelta(t, 0.0, moved[i].Position.Sub(own[i].Position.Add(shift)).Length(), 1e-9)
		assert.InDelta(t, 0.0, moved[i].Direction.Sub(own[i].Direction).Length(), 1e-9)
	}
	p = DefaultParams()
	p.Pattern = CompoundUmbel
	flowers := MustGenerate(p, ax)
	for _, bp := range flowers {
		assert.Greater(t, bp.Position.X, 5.0-p.BranchLengthTop-1e-9)
	}
}

func TestCompoundUmbel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultParams().WithDepth(3)
	p.Pattern = CompoundUmbel
	p.BranchCount = 8
	c, err := GenerateCluster(p)
	require.NoError(t, err)
	// 8 rays, 6 sub-rays each, then max(6·3/4, 4) = 4 flowers each
	assert.Equal(t, 1+8+8*6, c.Size())
	flowers := c.Flatten()
	assert.Len(t, flowers, 8*6*4)
	assertUnitDirections(t, flowers)
	for _, f := range flowers {
		assert.InDelta(t, 1.0, f.Age, 1e-12)
		assert.InDelta(t, p.FlowerSizeTop*0.49*0.25, f.FlowerScale, 1e-12)
	}
}

func TestGenerateClusterSimple(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := DefaultParams()
	p.Pattern = Umbel
	c, err := GenerateCluster(p)
	require.NoError(t, err)
	assert.True(t, c.IsLeaf())
	assert.Len(t, c.Flowers, p.BranchCount)
	assert.Len(t, c.Flatten(), p.BranchCount)
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	require.NoError(t, DefaultParams().Validate())
	p := DefaultParams()
	p.Pattern = Pattern(17)
	_, err := Generate(p, nil)
	assert.True(t, errors.Is(err, ErrUnknownPattern))
	_, err = GeneratorFor(Pattern(-1))
	assert.True(t, errors.Is(err, ErrUnknownPattern))
	broken := []func(*Params){
		func(p *Params) { p.AxisLength = 0 },
		func(p *Params) { p.BranchCount = -1 },
		func(p *Params) { p.BranchLengthBottom = -0.1 },
		func(p *Params) { p.FlowerSizeTop = 0 },
		func(p *Params) { p.AgeDistribution = 1.5 },
		func(p *Params) { p.AxisCurveAmount = -0.2 },
		func(p *Params) { p.AngleTop = math.NaN() },
		func(p *Params) { *p = p.WithBranchRatio(0) },
		func(p *Params) { *p = p.WithDepth(-1) },
	}
	for i, b := range broken {
		p := DefaultParams()
		b(&p)
		assert.True(t, errors.Is(p.Validate(), ErrInvalidParams), "case %d", i)
	}
	p = DefaultParams().WithDepth(MaxRecursionDepth + 1)
	p.Pattern = Dichasium
	assert.True(t, errors.Is(p.Validate(), ErrRecursionTooDeep))
	p = DefaultParams().WithDepth(MaxCompoundDepth + 1)
	p.Pattern = CompoundUmbel
	_, err = GenerateCluster(p)
	assert.True(t, errors.Is(err, ErrRecursionTooDeep))
	assert.Panics(t, func() { MustGenerate(p, nil) })
}

func TestAgeDistribution(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, 0.8, ApplyAgeDistribution(0.8, 0.5))
	assert.InDelta(t, budAge, ApplyAgeDistribution(0.8, 0), 1e-12)
	assert.InDelta(t, bloomAge, ApplyAgeDistribution(0.1, 1), 1e-12)
	assert.InDelta(t, (0.9+budAge)/2, ApplyAgeDistribution(0.9, 0.25), 1e-12)
	assert.Equal(t, 1.0, ApplyAgeDistribution(1.4, 0.5))
	p := DefaultParams()
	p.AgeDistribution = 1
	for _, bp := range MustGenerate(p, nil) {
		assert.InDelta(t, bloomAge, bp.Age, 1e-12)
	}
}

func TestStages(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, Bud, StageOf(0))
	assert.Equal(t, Bud, StageOf(0.29))
	assert.Equal(t, Bloom, StageOf(0.3))
	assert.Equal(t, Bloom, StageOf(0.79))
	assert.Equal(t, Wilt, StageOf(0.8))
	assert.Equal(t, "bloom", Bloom.String())
}
