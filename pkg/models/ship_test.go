package models

import (
	"math"
	"testing"

	"github.com/taigrr/rockfield/pkg/math3d"
)

func TestGenerateShip(t *testing.T) {
	m := GenerateShip()

	if got := m.TriangleCount(); got != 6 {
		t.Fatalf("TriangleCount() = %d, want 6", got)
	}
	if got := m.VertexCount(); got != 18 {
		t.Fatalf("VertexCount() = %d, want 18", got)
	}

	nose, _, _ := m.Triangle(0)
	if nose != math3d.V3(0, 0, -2) {
		t.Errorf("nose = %v, want (0, 0, -2)", nose)
	}

	if got := m.Size(); got != math3d.V3(2, 0.4, ShipLength) {
		t.Errorf("Size() = %v, want (2, 0.4, %d)", got, ShipLength)
	}

	for i := range m.TriangleCount() {
		n := m.FaceNormal(i)
		if math.Abs(n.Len()-1) > 1e-9 {
			t.Errorf("face %d: normal length = %v, want 1", i, n.Len())
		}
	}

	// The two back faces share the z=1 plane and face backward.
	for _, i := range []int{4, 5} {
		if n := m.FaceNormal(i); !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
			t.Errorf("back face %d: normal = %v, want (0, 0, 1)", i, n)
		}
	}
}

func TestMeshScaled(t *testing.T) {
	m := GenerateShip().Scaled(6)

	size := m.Size()
	if got := math.Max(size.X, math.Max(size.Y, size.Z)); math.Abs(got-6) > 1e-9 {
		t.Errorf("largest dimension = %v, want 6", got)
	}
	if m.TriangleCount() != 6 {
		t.Errorf("TriangleCount() = %d, want 6", m.TriangleCount())
	}
	if got := m.Radius(); math.Abs(got-4) > 1e-9 {
		t.Errorf("Radius() = %v, want 4", got)
	}
}
