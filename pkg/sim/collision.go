package sim

import (
	"math"

	"go.uber.org/zap"

	"github.com/taigrr/rockfield/pkg/math3d"
)

// mayCollide is the broad phase. It reports false only when the bullet
// cannot reach the asteroid's hull within dt.
func mayCollide(a *Asteroid, b *Bullet, dt, minCollisionDistance float64) bool {
	reach := (b.Speed+a.Speed)*dt + minCollisionDistance*a.Size
	return a.Location.Distance(b.Location) <= reach
}

// hitsTriangle is the narrow phase: a ray from the bullet tail along its
// direction must cross the triangle within the distance the bullet sweeps
// this frame plus its own length.
func hitsTriangle(b *Bullet, v0, v1, v2 math3d.Vec3, dt float64) bool {
	t, ok := math3d.RayTriangle(b.Location.Add(b.Tail), b.Direction, v0, v1, v2)
	return ok && t <= b.SegmentLength()+b.Speed*dt
}

// resolveCollisions destroys every asteroid struck by a bullet this frame,
// splits or replaces it, and then checks whether any asteroid reached the
// ship.
func (w *World) resolveCollisions(dt float64) {
	var spawned []*Asteroid
	var candidates []int

	w.asteroids.Filter(func(a *Asteroid) bool {
		candidates = candidates[:0]
		for j, b := range w.bullets.All() {
			if mayCollide(a, b, dt, w.params.MinCollisionDistance) {
				candidates = append(candidates, j)
			}
		}
		if len(candidates) == 0 {
			return true
		}

		hit := w.firstHit(a, candidates, dt)
		if hit < 0 {
			return true
		}

		b := w.bullets.At(hit)
		w.bullets.RemoveAt(hit)
		spawned = append(spawned, w.destroy(a, b)...)
		return false
	})

	// Newborn asteroids join after the pass so they are not tested in the
	// frame they were created.
	for _, a := range spawned {
		w.asteroids.PushFront(a)
	}

	w.checkShip()
}

// firstHit returns the index of the first candidate bullet that strikes a,
// scanning triangles in order and bullets within each triangle, or -1.
func (w *World) firstHit(a *Asteroid, candidates []int, dt float64) int {
	rot := a.Rotation()
	for i := range a.Mesh.TriangleCount() {
		v0, v1, v2 := a.WorldTriangle(rot, i)
		for _, j := range candidates {
			if hitsTriangle(w.bullets.At(j), v0, v1, v2, dt) {
				return j
			}
		}
	}
	return -1
}

// destroy handles an asteroid struck by bullet b and returns the asteroids
// that replace it, in the order they are pushed to the front.
func (w *World) destroy(a *Asteroid, b *Bullet) []*Asteroid {
	p := w.params
	if a.Size <= p.MinFragmentSize {
		w.logger.Debug("asteroid destroyed",
			zap.Uint64("asteroid", a.ID),
			zap.Uint64("bullet", b.ID),
			zap.Float64("size", a.Size),
		)
		return nil
	}

	w.score++
	size := a.Size / 2

	left := w.newAsteroid(a.Location, p.AsteroidRadius*size, p.AsteroidVariation*size)
	right := w.newAsteroid(a.Location, p.AsteroidRadius*size, p.AsteroidVariation*size)
	left.Size, right.Size = size, size

	spread := b.Direction.Ortho()
	left.Direction = spread
	right.Direction = spread.Negate()

	respawn := w.newAsteroid(w.shellPoint(), p.AsteroidRadius, p.AsteroidVariation)
	respawn.Speed += math.Sqrt(float64(w.score)) * p.RespawnSpeedBoost

	w.logger.Debug("asteroid split",
		zap.Uint64("asteroid", a.ID),
		zap.Uint64("bullet", b.ID),
		zap.Float64("size", size),
		zap.Int("score", w.score),
		zap.Float64("respawn_speed", respawn.Speed),
	)

	return []*Asteroid{left, right, respawn}
}

// checkShip stops the world if any asteroid is inside the ship's collision
// radius. It uses the post-integration positions of this frame.
func (w *World) checkShip() {
	for _, a := range w.asteroids.All() {
		if a.Location.Len() < w.params.MinCollisionDistance*a.Size {
			if w.state == Running {
				w.logger.Info("ship destroyed",
					zap.Uint64("asteroid", a.ID),
					zap.Int("score", w.score),
					zap.Uint64("frame", w.frame),
				)
			}
			w.state = Stopped
			w.ship.Velocity = math3d.Zero3()
		}
	}
}
