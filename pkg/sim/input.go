package sim

import "github.com/taigrr/rockfield/pkg/math3d"

// Intents is the player's input for one frame. Fire is an edge: set it only
// on the frame the trigger was pressed.
type Intents struct {
	ThrustForward  bool
	ThrustBackward bool
	YawLeft        bool
	YawRight       bool
	PitchUp        bool
	PitchDown      bool
	Fire           bool
}

// apply steers and accelerates the ship and fires.
func (w *World) apply(dt float64, in Intents) {
	s := &w.ship
	p := w.params

	if in.ThrustForward {
		s.Velocity = s.Velocity.Add(s.Pointing.Scale(p.Thrust * dt))
	}
	if in.ThrustBackward {
		s.Velocity = s.Velocity.Add(s.Pointing.Scale(-p.Thrust * dt))
	}

	turn := p.TurnRate * dt
	if in.YawRight {
		s.Pointing = s.Pointing.Rotate(-turn, math3d.Up())
	}
	if in.YawLeft {
		s.Pointing = s.Pointing.Rotate(turn, math3d.Up())
	}

	// Pitch about the horizontal axis perpendicular to the heading. Straight
	// up or down there is no such axis and pitch does nothing.
	if in.PitchUp || in.PitchDown {
		if axis := math3d.Up().Cross(s.Pointing); axis.LenSq() > 0 {
			if in.PitchUp {
				s.Pointing = s.Pointing.Rotate(-turn, axis)
			}
			if in.PitchDown {
				s.Pointing = s.Pointing.Rotate(turn, axis)
			}
		}
	}
	s.Pointing = s.Pointing.Normalize()

	if in.Fire {
		w.AddBullet(NewBullet(math3d.Zero3(), s.Pointing, p.BulletSpeed+s.Velocity.Len()))
	}
}
