package render

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/rockfield/pkg/math3d"
)

// ChaseCamera keeps a camera behind and above the ship. The eye and the
// look-at point follow their goals on damped springs, so turning the ship
// swings the view around smoothly instead of snapping.
type ChaseCamera struct {
	Distance float64 // How far behind the ship the eye sits
	Height   float64 // How far above the ship the eye sits

	spring  harmonica.Spring
	eye     math3d.Vec3
	eyeVel  math3d.Vec3
	look    math3d.Vec3
	lookVel math3d.Vec3
	primed  bool
}

// NewChaseCamera creates a chase camera stepped fps times per second.
// frequency is the spring's angular frequency; damping below 1 lets the
// view overshoot slightly.
func NewChaseCamera(fps int, frequency, damping, distance, height float64) *ChaseCamera {
	return &ChaseCamera{
		Distance: distance,
		Height:   height,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
	}
}

// Goal returns where the eye and look-at point settle for a ship pointing
// along pointing.
func (c *ChaseCamera) Goal(pointing math3d.Vec3) (eye, look math3d.Vec3) {
	p := pointing.Normalize()
	eye = p.Scale(-c.Distance).Add(math3d.Up().Scale(c.Height))
	look = p.Scale(c.Distance)
	return eye, look
}

// Update advances the springs by one frame and points cam accordingly.
// The first call jumps straight to the goal.
func (c *ChaseCamera) Update(cam *Camera, pointing math3d.Vec3) {
	eye, look := c.Goal(pointing)
	if !c.primed {
		c.eye, c.look = eye, look
		c.primed = true
	} else {
		c.follow(&c.eye, &c.eyeVel, eye)
		c.follow(&c.look, &c.lookVel, look)
	}
	cam.SetView(c.eye, c.look, math3d.Up())
}

// Reset makes the next Update jump to its goal.
func (c *ChaseCamera) Reset() {
	c.primed = false
	c.eyeVel = math3d.Zero3()
	c.lookVel = math3d.Zero3()
}

func (c *ChaseCamera) follow(pos, vel *math3d.Vec3, target math3d.Vec3) {
	pos.X, vel.X = c.spring.Update(pos.X, vel.X, target.X)
	pos.Y, vel.Y = c.spring.Update(pos.Y, vel.Y, target.Y)
	pos.Z, vel.Z = c.spring.Update(pos.Z, vel.Z, target.Z)
}
