package sim

import "github.com/taigrr/rockfield/pkg/math3d"

// integrate advances every entity by dt in the ship's reference frame.
func (w *World) integrate(dt float64) {
	shift := w.ship.Velocity.Scale(-dt)
	limit := w.params.MaxDistance

	w.bullets.Filter(func(b *Bullet) bool {
		b.Location = b.Location.Add(b.Direction.Scale(b.Speed * dt)).Add(shift)
		return !beyond(b.Location, limit)
	})

	for _, a := range w.asteroids.All() {
		a.Angle += a.RotationSpeed * dt
		a.Location = wrap(a.Location.Add(a.Direction.Scale(a.Speed*dt)).Add(shift), limit)
	}

	pts := w.backdrop.Points
	for i := range pts {
		pts[i] = wrap(pts[i].Add(shift), limit)
	}
}

// beyond reports whether p lies strictly outside the sphere of radius limit.
func beyond(p math3d.Vec3, limit float64) bool {
	return p.LenSq() > limit*limit
}

// wrap mirrors p through the origin once it leaves the play volume.
func wrap(p math3d.Vec3, limit float64) math3d.Vec3 {
	if beyond(p, limit) {
		return p.Negate()
	}
	return p
}
