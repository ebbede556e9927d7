package inflorescence

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/floraison"
	"github.com/npillmayer/floraison/axis"
)

// node is an internal link of a dichasium tree or a drepanium chain. The
// flower sits at the end of the link.
type node struct {
	pos    v3.Vec
	dir    v3.Vec
	length float64
	depth  int
}

func (n node) end() v3.Vec {
	return n.pos.Add(n.dir.MulScalar(n.length))
}

// rootNode starts a cyme at the axis top, pointing along the local normal.
func rootNode(p Params, ax *axis.Curve) (node, axis.Sample) {
	s := ax.SampleAt(1)
	return node{pos: s.Position, dir: s.Normal, length: p.BranchLengthTop}, s
}

// cymeBranch converts a node to a branch point. Determinate ages fall from
// 1 at the root to 0 at maxDepth; flowers shrink by shrink·depth/maxDepth.
func cymeBranch(p Params, n node, maxDepth int, shrink float64) BranchPoint {
	age := 1.0
	if maxDepth > 0 {
		age = 1 - float64(n.depth)/float64(maxDepth)
	}
	t := float64(n.depth) / float64(max(maxDepth, 1))
	return BranchPoint{
		Position:    n.end(),
		Direction:   n.dir,
		Length:      n.length,
		FlowerScale: p.FlowerSizeTop * (1 - t*shrink),
		Age:         ApplyAgeDistribution(age, p.AgeDistribution),
	}
}

type dichasium struct{}

func (dichasium) Pattern() Pattern { return Dichasium }

// BranchPoints builds a binary tree of depth RecursionDepth. Every fork
// rotates ±AngleDivergence around the binormal of the axis top, so the whole
// tree is planar. Branch points are in pre-order: node, left subtree, right
// subtree.
func (dichasium) BranchPoints(p Params, ax *axis.Curve) []BranchPoint {
	maxDepth := p.depthOr(dichasiumDepth)
	ratio := p.ratioOr(dichasiumRatio)
	div := floraison.Rad(p.divergenceOr(dichasiumDivergence))
	root, s := rootNode(p, ax)
	plane := s.Binormal
	tracer().Debugf("dichasium: depth %d, ratio %.3g, divergence %.3g", maxDepth, ratio, floraison.Deg(div))
	branches := make([]BranchPoint, 0, 1<<(maxDepth+1)-1)
	stack := arraystack.New()
	stack.Push(root)
	for !stack.Empty() {
		v, _ := stack.Pop()
		n := v.(node)
		branches = append(branches, cymeBranch(p, n, maxDepth, 0.4))
		if n.depth >= maxDepth {
			continue
		}
		child := func(angle float64) node {
			return node{
				pos:    n.end(),
				dir:    floraison.NormalizeOr(floraison.Rotate(n.dir, plane, angle), n.dir),
				length: n.length * ratio,
				depth:  n.depth + 1,
			}
		}
		stack.Push(child(-div)) // right, popped after the left subtree
		stack.Push(child(div))
	}
	return branches
}

// droop is the downward tilt of each drepanium link.
var droop = floraison.Rad(15)

type drepanium struct{}

func (drepanium) Pattern() Pattern { return Drepanium }

// BranchPoints builds a chain of RecursionDepth+1 links. Each link turns by
// RotationAngle around its parent's direction and droops by a constant
// angle, giving a coiled, scorpioid shape.
func (drepanium) BranchPoints(p Params, ax *axis.Curve) []BranchPoint {
	maxDepth := p.depthOr(drepaniumDepth)
	ratio := p.ratioOr(drepaniumRatio)
	spiral := floraison.Rad(p.RotationAngle)
	n, _ := rootNode(p, ax)
	tracer().Debugf("drepanium: depth %d, ratio %.3g", maxDepth, ratio)
	branches := make([]BranchPoint, 0, maxDepth+1)
	for {
		branches = append(branches, cymeBranch(p, n, maxDepth, 0.3))
		if n.depth >= maxDepth {
			break
		}
		dir := floraison.Rotate(n.dir, n.dir, spiral)
		var perp v3.Vec
		if math.Abs(n.dir.Y) < 0.9 {
			perp = floraison.YAxis.Cross(n.dir)
		} else {
			perp = floraison.XAxis.Cross(n.dir)
		}
		dir = floraison.Rotate(dir, floraison.NormalizeOrZero(perp), -droop)
		n = node{
			pos:    n.end(),
			dir:    floraison.NormalizeOr(dir, n.dir),
			length: n.length * ratio,
			depth:  n.depth + 1,
		}
	}
	return branches
}
