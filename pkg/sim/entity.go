package sim

import (
	"github.com/taigrr/rockfield/pkg/math3d"
	"github.com/taigrr/rockfield/pkg/models"
)

// Asteroid is a tumbling rock. Its mesh is fixed at creation and shared
// read-only with the renderer.
type Asteroid struct {
	ID            uint64
	Mesh          *models.Mesh
	Location      math3d.Vec3
	Direction     math3d.Vec3 // unit
	Speed         float64
	Angle         float64
	Axis          math3d.Vec3 // unit
	RotationSpeed float64

	// Size is 1 for a fresh asteroid and halves with every split. It scales
	// the collision radius and limits how often a rock can fragment.
	Size float64
}

// WorldTriangle returns face i of the asteroid mesh rotated by Angle about
// Axis and translated to Location.
func (a *Asteroid) WorldTriangle(rot math3d.Mat4, i int) (v0, v1, v2 math3d.Vec3) {
	l0, l1, l2 := a.Mesh.Triangle(i)
	return rot.MulVec3Dir(l0).Add(a.Location),
		rot.MulVec3Dir(l1).Add(a.Location),
		rot.MulVec3Dir(l2).Add(a.Location)
}

// Rotation returns the asteroid's current orientation.
func (a *Asteroid) Rotation() math3d.Mat4 {
	return math3d.Rotate(a.Axis, a.Angle)
}

// Bullet is a short segment travelling in a straight line. Tail and Tip are
// offsets from Location.
type Bullet struct {
	ID        uint64
	Tail      math3d.Vec3
	Tip       math3d.Vec3
	Location  math3d.Vec3
	Direction math3d.Vec3 // unit
	Speed     float64
}

// NewBullet creates a bullet at location travelling along direction. The
// segment runs one unit forward from the tail.
func NewBullet(location, direction math3d.Vec3, speed float64) *Bullet {
	dir := direction.Normalize()
	return &Bullet{
		Tail:      math3d.Zero3(),
		Tip:       dir,
		Location:  location,
		Direction: dir,
		Speed:     speed,
	}
}

// SegmentLength returns the length of the bullet segment.
func (b *Bullet) SegmentLength() float64 {
	return b.Tip.Distance(b.Tail)
}

// Ship is the player. It never moves: the rest of the world is shifted by
// -Velocity instead.
type Ship struct {
	Mesh     *models.Mesh
	Pointing math3d.Vec3 // unit
	Velocity math3d.Vec3
}

// Backdrop is decorative scenery that only takes part in the frame shift.
type Backdrop struct {
	Points []math3d.Vec3
}
