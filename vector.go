package floraison

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// === Vectors ===============================================================

// Frequently used constant vectors.
var (
	Origin = V(0, 0, 0)
	XAxis  = V(1, 0, 0)
	YAxis  = V(0, 1, 0) // "up" for all inflorescences
	ZAxis  = V(0, 0, 1)
)

// V is a quick notation for constructing a 3D vector from floats.
func V(x, y, z float64) v3.Vec {
	return v3.Vec{X: x, Y: y, Z: z}
}

// Pt is a quick notation for constructing a 2D point from floats.
func Pt(x, y float64) v2.Vec {
	return v2.Vec{X: x, Y: y}
}

// VString is a pretty Stringer for 3D vectors, used for tracing.
func VString(v v3.Vec) string {
	return fmt.Sprintf("(%.4g,%.4g,%.4g)", v.X, v.Y, v.Z)
}

// IsFiniteVec is a predicate: are all components of v finite ?
func IsFiniteVec(v v3.Vec) bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// NormalizeOr returns v scaled to unit length, or fallback if v is too short
// to be normalized safely.
func NormalizeOr(v, fallback v3.Vec) v3.Vec {
	l := v.Length()
	if l <= 1e-12 || !IsFinite(l) {
		return fallback
	}
	return v.DivScalar(l)
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector.
func NormalizeOrZero(v v3.Vec) v3.Vec {
	return NormalizeOr(v, Origin)
}

// LerpVec interpolates linearly between a and b.
func LerpVec(a, b v3.Vec, t float64) v3.Vec {
	return a.Add(b.Sub(a).MulScalar(t))
}

// Perpendicular returns a unit vector orthogonal to v. The candidate axis is
// +Y unless v is nearly parallel to it, then +X.
func Perpendicular(v v3.Vec) v3.Vec {
	candidate := YAxis
	if math.Abs(v.Y) >= 0.9 {
		candidate = XAxis
	}
	parallel := v.MulScalar(candidate.Dot(v))
	return NormalizeOr(candidate.Sub(parallel), XAxis)
}

// Rotate rotates v counter-clockwise by theta (radians) around axis.
// A degenerate axis leaves v unchanged.
func Rotate(v, axis v3.Vec, theta float64) v3.Vec {
	if axis.Length() <= 1e-12 {
		return v
	}
	return sdf.Rotate3d(axis, theta).MulPosition(v)
}

// RotationArc returns the rotation which takes unit vector from onto unit
// vector to along the shortest arc.
func RotationArc(from, to v3.Vec) sdf.M44 {
	d := Clamp(from.Dot(to), -1, 1)
	if d > 1-1e-9 {
		return sdf.Identity3d()
	}
	if d < -1+1e-9 { // opposite vectors: any perpendicular axis will do
		return sdf.Rotate3d(Perpendicular(from), math.Pi)
	}
	return sdf.Rotate3d(from.Cross(to), math.Acos(d))
}

// Placement combines a uniform scale, a rotation and a translation to a
// transform. Points are scaled first, then rotated, then translated.
func Placement(scale float64, rotation sdf.M44, translation v3.Vec) sdf.M44 {
	S := sdf.Scale3d(V(scale, scale, scale))
	T := sdf.Translate3d(translation)
	return T.Mul(rotation).Mul(S)
}

// TransformDirection applies the linear part of m to direction d and
// re-normalizes the result.
func TransformDirection(m sdf.M44, d v3.Vec) v3.Vec {
	o := m.MulPosition(Origin)
	return NormalizeOr(m.MulPosition(d).Sub(o), d)
}

// === Coordinate conversions ================================================

// FromCylindrical creates a vector from cylindrical coordinates
// (radius, angle around Z, height along Z).
func FromCylindrical(radius, angle, height float64) v3.Vec {
	return V(radius*math.Cos(angle), radius*math.Sin(angle), height)
}

// ToCylindrical returns radius, angle in [0,2π) and height of v.
func ToCylindrical(v v3.Vec) (float64, float64, float64) {
	r := math.Hypot(v.X, v.Y)
	return r, positiveAngle(math.Atan2(v.Y, v.X)), v.Z
}

// FromSpherical creates a vector from spherical coordinates: theta is the
// azimuth in the XY-plane, phi the polar angle from +Z.
func FromSpherical(radius, theta, phi float64) v3.Vec {
	sinPhi := math.Sin(phi)
	return V(
		radius*sinPhi*math.Cos(theta),
		radius*sinPhi*math.Sin(theta),
		radius*math.Cos(phi),
	)
}

// ToSpherical returns radius, azimuth in [0,2π) and polar angle of v.
func ToSpherical(v v3.Vec) (float64, float64, float64) {
	r := v.Length()
	theta := positiveAngle(math.Atan2(v.Y, v.X))
	phi := 0.0
	if r > 0 {
		phi = math.Acos(Clamp(v.Z/r, -1, 1))
	}
	return r, theta, phi
}

// FromPolar creates a 2D point from polar coordinates.
func FromPolar(radius, angle float64) v2.Vec {
	return Pt(radius*math.Cos(angle), radius*math.Sin(angle))
}

// ToPolar returns radius and angle in [0,2π) of p.
func ToPolar(p v2.Vec) (float64, float64) {
	return math.Hypot(p.X, p.Y), positiveAngle(math.Atan2(p.Y, p.X))
}

// Rotated2 returns p rotated around the origin by theta (counterclockwise).
func Rotated2(p v2.Vec, theta float64) v2.Vec {
	sin, cos := math.Sincos(theta)
	return Pt(p.X*cos-p.Y*sin, p.X*sin+p.Y*cos)
}

func positiveAngle(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
