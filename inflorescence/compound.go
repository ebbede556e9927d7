package inflorescence

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/floraison"
	"github.com/npillmayer/floraison/axis"
)

// subScale is the uniform scale of a sub-inflorescence relative to its parent.
const subScale = 0.5

// Cluster is one level of a compound inflorescence. A leaf cluster carries
// flowers; an inner cluster carries stalks, each ending in a child cluster.
// Everything is in the cluster's local coordinates; Transform places the
// cluster into its parent.
type Cluster struct {
	Params    Params
	Transform sdf.M44
	Axis      []v3.Vec      // main axis points
	Stalks    []BranchPoint // primary branches of an inner cluster
	Flowers   []BranchPoint // flowers of a leaf cluster
	Children  []*Cluster    // one per stalk
}

// IsLeaf is true for a cluster without sub-inflorescences.
func (c *Cluster) IsLeaf() bool {
	return len(c.Children) == 0
}

// Size counts the clusters of the tree rooted at c.
func (c *Cluster) Size() int {
	size := 0
	c.walk(func(*Cluster, sdf.M44, float64) { size++ })
	return size
}

// Flatten returns all flowers of the tree rooted at c in the coordinates of
// c's parent, in pre-order. Lengths and flower scales shrink with every
// nesting level.
func (c *Cluster) Flatten() []BranchPoint {
	var flowers []BranchPoint
	c.walk(func(cl *Cluster, m sdf.M44, scale float64) {
		for _, f := range cl.Flowers {
			flowers = append(flowers, BranchPoint{
				Position:    m.MulPosition(f.Position),
				Direction:   floraison.TransformDirection(m, f.Direction),
				Length:      f.Length * scale,
				FlowerScale: f.FlowerScale * scale,
				Age:         f.Age,
			})
		}
	})
	return flowers
}

type placed struct {
	cluster *Cluster
	m       sdf.M44
	scale   float64
}

// walk visits the tree in pre-order, passing each cluster's accumulated
// transform and scale.
func (c *Cluster) walk(visit func(*Cluster, sdf.M44, float64)) {
	stack := arraystack.New()
	stack.Push(placed{c, c.Transform, 1})
	for !stack.Empty() {
		v, _ := stack.Pop()
		pl := v.(placed)
		visit(pl.cluster, pl.m, pl.scale)
		for i := len(pl.cluster.Children) - 1; i >= 0; i-- {
			ch := pl.cluster.Children[i]
			stack.Push(placed{ch, pl.m.Mul(ch.Transform), pl.scale * subScale})
		}
	}
}

// compound describes how a compound pattern derives its levels.
type compound struct {
	pattern Pattern
	simple  Generator
	// axis of an inner cluster
	axisPoints func(Params) []v3.Vec
	// parameters of the sub-inflorescences of an inner cluster
	subParams func(Params) Params
}

var compoundRaceme = compound{
	pattern: CompoundRaceme,
	simple:  raceme{},
	axisPoints: func(p Params) []v3.Vec {
		return []v3.Vec{floraison.Origin, floraison.V(0, p.AxisLength, 0)}
	},
	subParams: func(p Params) Params {
		sub := p
		sub.AxisLength *= 0.4
		sub.BranchCount = max(p.BranchCount/2, 3)
		sub.BranchLengthTop *= 0.6
		sub.BranchLengthBottom *= 0.6
		sub.FlowerSizeTop *= 0.7
		sub.FlowerSizeBottom *= 0.7
		return sub.WithDepth(p.depthOr(compoundDepth) - 1)
	},
}

var compoundUmbel = compound{
	pattern:    CompoundUmbel,
	simple:     umbel{},
	axisPoints: AxisPoints,
	subParams: func(p Params) Params {
		sub := p
		sub.AxisLength *= 0.3
		sub.BranchCount = max(p.BranchCount*3/4, 4)
		sub.BranchLengthTop *= 0.6
		sub.FlowerSizeTop *= 0.7
		return sub.WithDepth(p.depthOr(compoundDepth) - 1)
	},
}

func (c compound) Pattern() Pattern { return c.pattern }

// BranchPoints returns the flowers of the flattened cluster tree. The root
// level grows along ax, all deeper levels build their own axes.
func (c compound) BranchPoints(p Params, ax *axis.Curve) []BranchPoint {
	return c.expand(p, ax).Flatten()
}

// Cluster expands p into a tree of sub-inflorescences. Levels with depth ≤ 1
// are simple racemes or umbels.
func (c compound) Cluster(p Params) *Cluster {
	return c.expand(p, nil)
}

// expand builds the cluster tree. A non-nil ax replaces the root's own axis.
func (c compound) expand(p Params, ax *axis.Curve) *Cluster {
	root := &Cluster{Params: p, Transform: sdf.Identity3d()}
	stack := arraystack.New()
	stack.Push(root)
	for !stack.Empty() {
		v, _ := stack.Pop()
		cl := v.(*Cluster)
		leaf := cl.Params.depthOr(compoundDepth) <= 1
		var clax *axis.Curve
		switch {
		case cl == root && ax != nil:
			clax = ax
			cl.Axis = ax.Points()
		case leaf:
			cl.Axis = AxisPoints(cl.Params)
			clax = axis.Must(cl.Axis)
		default:
			cl.Axis = c.axisPoints(cl.Params)
			clax = axis.Must(cl.Axis)
		}
		if leaf {
			cl.Flowers = c.simple.BranchPoints(cl.Params, clax)
			continue
		}
		cl.Stalks = c.simple.BranchPoints(cl.Params, clax)
		sub := c.subParams(cl.Params)
		for _, st := range cl.Stalks {
			child := &Cluster{
				Params:    sub,
				Transform: floraison.Placement(subScale, floraison.RotationArc(floraison.YAxis, st.Direction), st.Position),
			}
			cl.Children = append(cl.Children, child)
			stack.Push(child)
		}
	}
	tracer().Debugf("%s: %d clusters", c.pattern, root.Size())
	return root
}
