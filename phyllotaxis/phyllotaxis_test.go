package phyllotaxis

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestGoldenAngle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.InDelta(t, math.Pi*(3-math.Sqrt(5)), GoldenAngle, 1e-14)
	assert.InDelta(t, 137.5078, GoldenAngle*180/math.Pi, 1e-4)
	assert.Equal(t, 0.0, FibonacciAngle(0))
	for i := 0; i < 50; i++ {
		a := FibonacciAngle(i)
		assert.True(t, a >= 0 && a < 2*math.Pi)
	}
	assert.InDelta(t, math.Mod(3*GoldenAngle, 2*math.Pi), FibonacciAngle(3), 1e-12)
}

func TestVogelSpiral(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const n, r = 40, 3.0
	disc := VogelDisc(n, r)
	assert.Len(t, disc, n)
	assert.InDelta(t, 0.0, math.Hypot(disc[0].X, disc[0].Y), 1e-12)
	assert.InDelta(t, r, math.Hypot(disc[n-1].X, disc[n-1].Y), 1e-9)
	for i := 1; i < n; i++ {
		ri := math.Hypot(disc[i].X, disc[i].Y)
		assert.InDelta(t, r*math.Sqrt(float64(i)/(n-1)), ri, 1e-9)
	}
	single := VogelSpiral(0, 1, r)
	assert.Equal(t, 0.0, math.Hypot(single.X, single.Y))
}

func TestRadialAndWhorled(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Nil(t, RadialPositions(0, 1, 0))
	pts := RadialPositions(4, 2, math.Pi/4)
	assert.Len(t, pts, 4)
	assert.InDelta(t, math.Sqrt2, pts[0].X, 1e-12)
	assert.InDelta(t, math.Sqrt2, pts[0].Y, 1e-12)
	assert.InDelta(t, -math.Sqrt2, pts[2].X, 1e-12)
	whorl := WhorledPositions(5, 1, 0.8, 0)
	for _, p := range whorl {
		assert.Equal(t, 0.8, p.Y)
		assert.InDelta(t, 1.0, math.Hypot(p.X, p.Z), 1e-12)
	}
	assert.InDelta(t, 1.0, whorl[0].X, 1e-12)
	assert.InDelta(t, Pentagonal, math.Atan2(whorl[2].Z, whorl[2].X), 1e-12)
}

func TestFibonacciSpiral3D(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := FibonacciSpiral3D(11, 2, 5, Linear)
	assert.Len(t, pts, 11)
	assert.InDelta(t, 2.0, math.Hypot(pts[0].X, pts[0].Z), 1e-12)
	assert.InDelta(t, 0.0, math.Hypot(pts[10].X, pts[10].Z), 1e-12)
	assert.InDelta(t, 5.0, pts[10].Y, 1e-12)
	assert.InDelta(t, 2.5, pts[5].Y, 1e-12)
	bulge := FibonacciSpiral3D(3, 1, 1, Bulge)
	assert.InDelta(t, 1.0, math.Hypot(bulge[1].X, bulge[1].Z), 1e-12)
	flat := FibonacciSpiral3D(1, 1, 4, nil)
	assert.Equal(t, 0.0, flat[0].Y)
	assert.InDelta(t, 1.0, Quadratic(0), 1e-12)
	assert.InDelta(t, 0.25, Quadratic(0.5), 1e-12)
}
