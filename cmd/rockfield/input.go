package main

import (
	"sync"
	"time"

	"github.com/taigrr/rockfield/pkg/sim"
)

// action is something a key can ask the ship to do.
type action int

const (
	actThrustForward action = iota
	actThrustBackward
	actYawLeft
	actYawRight
	actPitchUp
	actPitchDown
	actFire
	numActions
)

// bindings maps keys to actions, in the order they are tried.
var bindings = []struct {
	keys []string
	act  action
}{
	{[]string{"e", "up"}, actThrustForward},
	{[]string{"q", "down"}, actThrustBackward},
	{[]string{"a", "left"}, actYawLeft},
	{[]string{"d", "right"}, actYawRight},
	{[]string{"w"}, actPitchUp},
	{[]string{"s"}, actPitchDown},
	{[]string{"t", "space"}, actFire},
}

// lookup returns the action bound to the key match describes.
func lookup(match func(...string) bool) (action, bool) {
	for _, b := range bindings {
		if match(b.keys...) {
			return b.act, true
		}
	}
	return 0, false
}

// controls turns key events into per-frame intents. Most terminals report
// presses and auto-repeats but no releases, so a held key counts as down
// until a release arrives or hold passes without another repeat.
type controls struct {
	mu       sync.Mutex
	hold     time.Duration
	lastSeen [numActions]time.Time
	fires    int // presses not yet handed to a frame
}

func newControls(hold time.Duration) *controls {
	return &controls{hold: hold}
}

// press records a key press. Fire is an edge: repeats are ignored and each
// press queues one shot.
func (c *controls) press(a action, now time.Time, repeat bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if a == actFire {
		if !repeat {
			c.fires++
		}
		return
	}
	c.lastSeen[a] = now
}

// release marks a held key as up.
func (c *controls) release(a action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSeen[a] = time.Time{}
}

// intents returns the intents for a frame at now. It hands out at most one
// queued shot per frame.
func (c *controls) intents(now time.Time) sim.Intents {
	c.mu.Lock()
	defer c.mu.Unlock()

	down := func(a action) bool {
		seen := c.lastSeen[a]
		return !seen.IsZero() && now.Sub(seen) <= c.hold
	}
	in := sim.Intents{
		ThrustForward:  down(actThrustForward),
		ThrustBackward: down(actThrustBackward),
		YawLeft:        down(actYawLeft),
		YawRight:       down(actYawRight),
		PitchUp:        down(actPitchUp),
		PitchDown:      down(actPitchDown),
		Fire:           c.fires > 0,
	}
	if c.fires > 0 {
		c.fires--
	}
	return in
}
