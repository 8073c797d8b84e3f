package models

import "github.com/taigrr/rockfield/pkg/math3d"

// ShipLength is the nose-to-tail length of the generated ship.
const ShipLength = 3

// GenerateShip builds the player ship: a flat arrowhead with a shallow
// ridge, nose at (0, 0, -2) pointing down -Z.
func GenerateShip() *Mesh {
	p := [5]math3d.Vec3{
		math3d.V3(0, 0, -2),   // nose
		math3d.V3(-1, 0, 1),   // back left
		math3d.V3(1, 0, 1),    // back right
		math3d.V3(0, 0.2, 1),  // back top
		math3d.V3(0, -0.2, 1), // back bottom
	}

	faces := [6][3]int{
		{0, 1, 3},
		{0, 2, 3},
		{0, 1, 4},
		{0, 2, 4},
		{3, 1, 4},
		{3, 2, 4},
	}

	m := NewMesh("ship", len(faces))
	for _, f := range faces {
		m.AddTriangle(p[f[0]], p[f[1]], p[f[2]])
	}
	m.CalculateBounds()
	return m
}
