package math3d

import (
	"testing"
)

func BenchmarkVec3Rotate(b *testing.B) {
	v := V3(1, 2, 3)
	axis := V3(0.3, 0.9, 0.1)

	for b.Loop() {
		_ = v.Rotate(0.7, axis)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(Rotate(V3(0, 1, 0), 0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkOutwardNormal(b *testing.B) {
	a, c, d := V3(0, 24, 0), V3(17, 17, 0), V3(8.5, 17, 14.7)

	for b.Loop() {
		_ = OutwardNormal(a, c, d)
	}
}

func BenchmarkRayTriangleHit(b *testing.B) {
	v0, v1, v2 := V3(-1, -1, -5), V3(1, -1, -5), V3(0, 1, -5)
	origin, dir := Zero3(), Forward()

	for b.Loop() {
		_, _ = RayTriangle(origin, dir, v0, v1, v2)
	}
}

func BenchmarkRayTriangleMiss(b *testing.B) {
	v0, v1, v2 := V3(-1, -1, -5), V3(1, -1, -5), V3(0, 1, -5)
	origin, dir := V3(10, 10, 0), Forward()

	for b.Loop() {
		_, _ = RayTriangle(origin, dir, v0, v1, v2)
	}
}
