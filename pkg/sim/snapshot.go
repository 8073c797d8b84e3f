package sim

import (
	"github.com/taigrr/rockfield/pkg/math3d"
	"github.com/taigrr/rockfield/pkg/models"
)

// Snapshot is a renderable copy of the world after a step. Meshes are
// shared and must be treated as read-only. Everything else is copied.
type Snapshot struct {
	Frame     uint64
	Score     int
	Running   bool
	Ship      ShipInstance
	Asteroids []AsteroidInstance
	Bullets   []BulletInstance
	Backdrop  []math3d.Vec3
}

// ShipInstance is the ship at the origin, oriented along Pointing.
type ShipInstance struct {
	Mesh     *models.Mesh
	Pointing math3d.Vec3
	Velocity math3d.Vec3
}

// Model returns the ship's model matrix.
func (s ShipInstance) Model() math3d.Mat4 {
	return math3d.Basis(s.Pointing, math3d.Up())
}

// AsteroidInstance places a shared asteroid mesh in the world.
type AsteroidInstance struct {
	ID       uint64
	Mesh     *models.Mesh
	Angle    float64
	Axis     math3d.Vec3
	Location math3d.Vec3
	Size     float64
}

// Model returns the asteroid's model matrix: rotation about Axis, then
// translation to Location.
func (a AsteroidInstance) Model() math3d.Mat4 {
	return math3d.Translate(a.Location).Mul(math3d.Rotate(a.Axis, a.Angle))
}

// BulletInstance is a bullet segment in the world.
type BulletInstance struct {
	ID       uint64
	Tail     math3d.Vec3
	Tip      math3d.Vec3
	Location math3d.Vec3
}

// Segment returns the world-space endpoints of the bullet.
func (b BulletInstance) Segment() (tail, tip math3d.Vec3) {
	return b.Location.Add(b.Tail), b.Location.Add(b.Tip)
}

// Snapshot fills dst with the current state, reusing its slices.
func (w *World) Snapshot(dst *Snapshot) {
	dst.Frame = w.frame
	dst.Score = w.score
	dst.Running = w.state == Running
	dst.Ship = ShipInstance{
		Mesh:     w.ship.Mesh,
		Pointing: w.ship.Pointing,
		Velocity: w.ship.Velocity,
	}

	dst.Asteroids = dst.Asteroids[:0]
	for _, a := range w.asteroids.All() {
		dst.Asteroids = append(dst.Asteroids, AsteroidInstance{
			ID:       a.ID,
			Mesh:     a.Mesh,
			Angle:    a.Angle,
			Axis:     a.Axis,
			Location: a.Location,
			Size:     a.Size,
		})
	}

	dst.Bullets = dst.Bullets[:0]
	for _, b := range w.bullets.All() {
		dst.Bullets = append(dst.Bullets, BulletInstance{
			ID:       b.ID,
			Tail:     b.Tail,
			Tip:      b.Tip,
			Location: b.Location,
		})
	}

	dst.Backdrop = append(dst.Backdrop[:0], w.backdrop.Points...)
}
