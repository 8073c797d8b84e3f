package models

import (
	"math"
	"math/rand/v2"

	"github.com/taigrr/rockfield/pkg/math3d"
)

// Asteroid lattice dimensions.
const (
	AsteroidTriangleCount = 48
	AsteroidVertexCount   = AsteroidTriangleCount * 3

	upperBand  = 6
	middleBand = 12
	lowerBand  = 6
)

// GenerateAsteroid builds a jagged asteroid around a spherical lattice: a
// pole, six points at 45° colatitude, twelve on the equator, six at 135° and
// the opposite pole. Each lattice point sits at radius + U(0, variation) -
// variation/2 from the origin.
//
// The result always has 48 faces and 144 vertices, each face carrying its
// own outward normal.
func GenerateAsteroid(rng *rand.Rand, radius, variation float64) *Mesh {
	point := func(longitude, colatitude float64) math3d.Vec3 {
		r := radius + rng.Float64()*variation - variation/2
		return math3d.V3(
			r*math.Cos(longitude)*math.Sin(colatitude),
			r*math.Cos(colatitude),
			r*math.Sin(longitude)*math.Sin(colatitude),
		)
	}

	top := point(0, 0)

	var upper [upperBand]math3d.Vec3
	for i := range upper {
		upper[i] = point(math.Pi/3*float64(i), math.Pi/4)
	}

	var middle [middleBand]math3d.Vec3
	for i := range middle {
		middle[i] = point(math.Pi/6*float64(i), math.Pi/2)
	}

	var lower [lowerBand]math3d.Vec3
	for i := range lower {
		lower[i] = point(math.Pi/3*float64(i), 3*math.Pi/4)
	}

	bottom := point(0, math.Pi)

	m := NewMesh("asteroid", AsteroidTriangleCount)

	// Apex fan.
	for i := range upperBand {
		m.AddTriangle(top, upper[i], upper[(i+1)%upperBand])
	}

	// Both mixed bands stitch a six-point ring to the equator.
	stitch := func(ring [6]math3d.Vec3) {
		for i := range 6 {
			next := (i + 1) % 6
			m.AddTriangle(ring[i], middle[2*i+1], ring[next])
			m.AddTriangle(middle[2*i], middle[2*i+1], ring[i])
			m.AddTriangle(middle[2*i+1], middle[(2*i+2)%middleBand], ring[next])
		}
	}
	stitch(upper)
	stitch(lower)

	// Base fan.
	for i := range lowerBand {
		m.AddTriangle(bottom, lower[i], lower[(i+1)%lowerBand])
	}

	m.CalculateBounds()
	return m
}
