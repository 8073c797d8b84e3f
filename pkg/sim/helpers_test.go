package sim

import (
	"math/rand/v2"
	"testing"

	"github.com/taigrr/rockfield/pkg/math3d"
	"github.com/taigrr/rockfield/pkg/models"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

// emptyWorld returns a world with default tuning and no asteroids, bullets
// or backdrop.
func emptyWorld(t *testing.T) *World {
	t.Helper()
	return NewEmpty(DefaultParams(), newRand(1), nil)
}

// still creates a motionless asteroid with a smooth mesh of radius
// 24*size centred on location.
func still(w *World, location math3d.Vec3, size float64) *Asteroid {
	p := w.params
	return &Asteroid{
		Mesh:      models.GenerateAsteroid(w.rng, p.AsteroidRadius*size, 0),
		Location:  location,
		Direction: math3d.V3(1, 0, 0),
		Axis:      math3d.Up(),
		Size:      size,
	}
}

const frame = 1.0 / 60
