// Package math3d provides the 3D math primitives and geometry kernel for rockfield.
package math3d

import "math"

// Vec3 represents a 3D vector or a point in space.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// Up returns the world up vector (0, 1, 0).
func Up() Vec3 {
	return Vec3{0, 1, 0}
}

// Forward returns the world forward vector (0, 0, -1).
// The ship starts out pointing this way.
func Forward() Vec3 {
	return Vec3{0, 0, -1}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length (magnitude) of the vector.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// LenSq returns the squared length.
func (a Vec3) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Normalize returns the unit vector in the same direction.
// The zero vector normalizes to itself.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{a.X / l, a.Y / l, a.Z / l}
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Distance returns the distance between two points.
func (a Vec3) Distance(b Vec3) float64 {
	return a.Sub(b).Len()
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{
		math.Min(a.X, b.X),
		math.Min(a.Y, b.Y),
		math.Min(a.Z, b.Z),
	}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{
		math.Max(a.X, b.X),
		math.Max(a.Y, b.Y),
		math.Max(a.Z, b.Z),
	}
}

// Angle returns the angle between a and b in radians, in [0, π].
// Returns 0 if either vector has zero length.
func (a Vec3) Angle(b Vec3) float64 {
	denom := a.Len() * b.Len()
	if denom == 0 {
		return 0
	}
	c := a.Dot(b) / denom
	// Rounding can push the cosine just past ±1.
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c)
}

// Rotate rotates a by angle radians around axis (right-handed, Rodrigues).
// The axis does not need to be normalized.
func (a Vec3) Rotate(angle float64, axis Vec3) Vec3 {
	k := axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)

	// v*cos + (k×v)*sin + k*(k·v)*(1-cos)
	return a.Scale(c).
		Add(k.Cross(a).Scale(s)).
		Add(k.Scale(k.Dot(a) * (1 - c)))
}

// Ortho returns a unit vector perpendicular to a.
// The result is stable for any non-zero input; the zero vector yields zero.
func (a Vec3) Ortho() Vec3 {
	if a.LenSq() == 0 {
		return Vec3{}
	}
	// Cross with the world axis least aligned with a.
	ax, ay, az := math.Abs(a.X), math.Abs(a.Y), math.Abs(a.Z)
	var ref Vec3
	switch {
	case ax <= ay && ax <= az:
		ref = Vec3{1, 0, 0}
	case ay <= az:
		ref = Vec3{0, 1, 0}
	default:
		ref = Vec3{0, 0, 1}
	}
	return a.Cross(ref).Normalize()
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps &&
		math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps
}

// FromSpherical converts spherical coordinates to a Vec3.
// Colatitude is measured from +Z, longitude in the XY plane.
func FromSpherical(distance, longitude, colatitude float64) Vec3 {
	return Vec3{
		distance * math.Cos(longitude) * math.Sin(colatitude),
		distance * math.Sin(longitude) * math.Sin(colatitude),
		distance * math.Cos(colatitude),
	}
}
