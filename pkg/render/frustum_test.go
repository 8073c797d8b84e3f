package render

import (
	"math"
	"testing"

	"github.com/taigrr/rockfield/pkg/math3d"
)

func TestPlaneDistanceToPoint(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 0, 1), D: 0}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"origin", math3d.V3(0, 0, 0), 0},
		{"in front", math3d.V3(0, 0, 5), 5},
		{"behind", math3d.V3(0, 0, -3), -3},
		{"offset XY", math3d.V3(10, -5, 2), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	if math.Abs(plane.Normal.Len()-1) > 1e-9 {
		t.Errorf("normal length = %v, want 1", plane.Normal.Len())
	}
	if !plane.Normal.ApproxEqual(math3d.V3(0, 0.6, 0.8), 1e-9) {
		t.Errorf("normal = %v, want (0, 0.6, 0.8)", plane.Normal)
	}
	if math.Abs(plane.D-2) > 1e-9 {
		t.Errorf("D = %v, want 2", plane.D)
	}

	zero := Plane{D: 3}
	zero.Normalize()
	if zero.D != 3 {
		t.Errorf("zero plane D changed to %v", zero.D)
	}
}

// testFrustum looks down -Z from the origin with the game's clip planes.
func testFrustum() Frustum {
	proj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.5, 2500)
	return NewFrustumFromMatrix(proj.Mul(math3d.Identity()))
}

func TestFrustumPlanesNormalized(t *testing.T) {
	for i, plane := range testFrustum().Planes {
		if math.Abs(plane.Normal.Len()-1) > 1e-6 {
			t.Errorf("plane %d normal length = %v, want 1", i, plane.Normal.Len())
		}
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	frustum := testFrustum()

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center near", math3d.V3(0, 0, -1), true},
		{"center mid", math3d.V3(0, 0, -500), true},
		{"backdrop distance", math3d.V3(0, 0, -1000), true},
		{"behind camera", math3d.V3(0, 0, 1), false},
		{"too far", math3d.V3(0, 0, -3000), false},
		{"too close", math3d.V3(0, 0, -0.1), false},
		{"off to the side", math3d.V3(100, 0, -10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	frustum := testFrustum()

	tests := []struct {
		name     string
		center   math3d.Vec3
		radius   float64
		expected bool
	}{
		{"inside", math3d.V3(0, 0, -100), 24, true},
		{"straddling near plane", math3d.V3(0, 0, 10), 24, true},
		{"behind", math3d.V3(0, 0, 50), 24, false},
		{"inside near side plane", math3d.V3(80, 0, -100), 24, true},
		{"clear of side plane", math3d.V3(300, 0, -100), 24, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := frustum.IntersectsSphere(tc.center, tc.radius); got != tc.expected {
				t.Errorf("IntersectsSphere(%v, %v) = %v, want %v", tc.center, tc.radius, got, tc.expected)
			}
		})
	}
}

func TestFrustumWithRotatedCamera(t *testing.T) {
	proj := math3d.Perspective(math.Pi/3, 1, 1, 100)
	view := math3d.LookAt(math3d.Zero3(), math3d.V3(10, 0, 0), math3d.Up())
	frustum := NewFrustumFromMatrix(proj.Mul(view))

	if !frustum.ContainsPoint(math3d.V3(10, 0, 0)) {
		t.Error("point in front of rotated camera should be visible")
	}
	if frustum.ContainsPoint(math3d.V3(-10, 0, 0)) {
		t.Error("point behind rotated camera should not be visible")
	}
}

func TestCameraFrustum(t *testing.T) {
	cam := NewCamera()
	cam.SetAspectRatio(1)
	cam.SetView(math3d.V3(0, 3, 12), math3d.V3(0, 0, -12), math3d.Up())

	f := cam.Frustum()
	if !f.ContainsPoint(math3d.Zero3()) {
		t.Error("ship at the origin should be inside the chase camera frustum")
	}
	if f.ContainsPoint(math3d.V3(0, 3, 20)) {
		t.Error("point behind the camera should be outside")
	}
}

func BenchmarkFrustumIntersectsSphere(b *testing.B) {
	frustum := testFrustum()
	center := math3d.V3(5, 5, -50)
	for b.Loop() {
		frustum.IntersectsSphere(center, 24)
	}
}

func BenchmarkFrustumExtraction(b *testing.B) {
	viewProj := math3d.Perspective(math.Pi/3, 16.0/9.0, 0.5, 2500)
	for b.Loop() {
		NewFrustumFromMatrix(viewProj)
	}
}
