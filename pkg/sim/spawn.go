package sim

import (
	"math"

	"github.com/taigrr/rockfield/pkg/math3d"
	"github.com/taigrr/rockfield/pkg/models"
)

// newAsteroid creates a full-size asteroid at location with a fresh mesh,
// random spin and random heading.
func (w *World) newAsteroid(location math3d.Vec3, radius, variation float64) *Asteroid {
	w.nextID++
	a := &Asteroid{
		ID:       w.nextID,
		Mesh:     models.GenerateAsteroid(w.rng, radius, variation),
		Location: location,
		Size:     1,
	}
	a.RotationSpeed = w.rng.Float64() * w.params.MaxRotationSpeed
	a.Axis = w.randomUnit()
	a.Angle = w.rng.Float64() * 2 * math.Pi
	a.Direction = w.randomUnit()
	a.Speed = w.rng.Float64() * w.params.MaxAsteroidSpeed
	return a
}

// randomUnit returns a direction uniformly distributed on the unit sphere.
func (w *World) randomUnit() math3d.Vec3 {
	for {
		v := math3d.V3(w.rng.NormFloat64(), w.rng.NormFloat64(), w.rng.NormFloat64())
		if l := v.Len(); l > 1e-9 {
			return v.Scale(1 / l)
		}
	}
}

// randomDirection returns spherical angles with uniform longitude and
// uniform colatitude.
func (w *World) randomDirection() (longitude, colatitude float64) {
	longitude = w.rng.Float64() * 2 * math.Pi
	colatitude = w.rng.Float64() * math.Pi
	return longitude, colatitude
}

// spawnPoint returns an initial asteroid position between SpawnMinDistance
// and SpawnMaxDistance from the ship.
func (w *World) spawnPoint() math3d.Vec3 {
	lon, col := w.randomDirection()
	p := w.params
	d := math.Sqrt(w.rng.Float64())*(p.SpawnMaxDistance-p.SpawnMinDistance) + p.SpawnMinDistance
	return math3d.FromSpherical(d, lon, col)
}

// shellPoint returns a respawn position between RespawnDistance and
// MaxDistance from the ship.
func (w *World) shellPoint() math3d.Vec3 {
	lon, col := w.randomDirection()
	p := w.params
	d := w.rng.Float64()*(p.MaxDistance-p.RespawnDistance) + p.RespawnDistance
	return math3d.FromSpherical(d, lon, col)
}

// backdropPoint returns a point inside the play volume. Distance follows a
// cube root so the radial density is roughly uniform by volume.
func (w *World) backdropPoint() math3d.Vec3 {
	lon, col := w.randomDirection()
	d := math.Cbrt(w.rng.Float64()) * w.params.MaxDistance
	return math3d.FromSpherical(d, lon, col)
}
