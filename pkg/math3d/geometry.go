package math3d

import "math"

// rayEpsilon is the tolerance for parallel rays and zero-distance hits.
const rayEpsilon = 1e-9

// OutwardNormal returns the unit normal of triangle (a, b, c), oriented so it
// points away from the coordinate origin as seen from vertex a.
//
// Zero-area triangles yield the zero vector.
func OutwardNormal(a, b, c Vec3) Vec3 {
	v := c.Sub(a)
	w := c.Sub(b)
	n := v.Cross(w).Normalize()
	if a.Angle(n) > math.Pi/2 {
		n = n.Negate()
	}
	return n
}

// RayTriangle intersects a ray with triangle (v0, v1, v2) using the
// Möller-Trumbore algorithm. Both faces of the triangle are hittable.
//
// It returns the parametric distance t along dir (in units of |dir|) and true
// when the ray crosses the triangle in front of the origin (t > epsilon).
// Rays parallel to the triangle plane never hit.
func RayTriangle(origin, dir, v0, v1, v2 Vec3) (float64, bool) {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	p := dir.Cross(edge2)
	det := edge1.Dot(p)
	if det > -rayEpsilon && det < rayEpsilon {
		return 0, false
	}
	invDet := 1 / det

	t := origin.Sub(v0)
	u := t.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := t.Cross(edge1)
	v := dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := edge2.Dot(q) * invDet
	if dist <= rayEpsilon {
		return dist, false
	}
	return dist, true
}
