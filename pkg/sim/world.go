// Package sim implements the rockfield simulation: motion in the ship's
// reference frame, bullet/asteroid collisions, fragmentation and respawns.
//
// A World is not safe for concurrent use. One goroutine owns it and hands
// read-only Snapshots to the renderer.
package sim

import (
	"math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/taigrr/rockfield/pkg/math3d"
	"github.com/taigrr/rockfield/pkg/models"
)

// State is the run state of a world.
type State int

const (
	// Running accepts input.
	Running State = iota
	// Stopped is terminal. The world keeps drifting but ignores input.
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// World owns every entity of a game.
type World struct {
	params Params
	rng    *rand.Rand
	logger *zap.Logger

	asteroids Store[*Asteroid]
	bullets   Store[*Bullet]
	backdrop  Backdrop
	ship      Ship

	score  int
	state  State
	frame  uint64
	nextID uint64
}

// New creates a running world populated with the initial asteroid field and
// backdrop. All randomness is drawn from rng. A nil logger disables logging.
func New(p Params, rng *rand.Rand, logger *zap.Logger) *World {
	w := NewEmpty(p, rng, logger)

	w.backdrop.Points = make([]math3d.Vec3, p.BackdropPoints)
	for i := range w.backdrop.Points {
		w.backdrop.Points[i] = w.backdropPoint()
	}

	for range p.AsteroidCount {
		w.asteroids.PushFront(w.newAsteroid(w.spawnPoint(), p.AsteroidRadius, p.AsteroidVariation))
	}

	w.logger.Debug("world created",
		zap.Int("asteroids", w.asteroids.Len()),
		zap.Int("backdrop", len(w.backdrop.Points)),
	)
	return w
}

// NewEmpty creates a running world with a ship and nothing else.
func NewEmpty(p Params, rng *rand.Rand, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &World{
		params: p,
		rng:    rng,
		logger: logger,
		ship: Ship{
			Mesh:     models.GenerateShip(),
			Pointing: math3d.Forward(),
		},
		state: Running,
	}
}

// Step advances the world by dt seconds and applies the player's intents.
// Negative dt is treated as zero.
func (w *World) Step(dt float64, in Intents) {
	dt = max(dt, 0)
	w.frame++

	w.integrate(dt)
	w.resolveCollisions(dt)
	w.ship.Velocity = w.ship.Velocity.Scale(math.Pow(w.params.Damping, dt))

	if w.state == Running {
		w.apply(dt, in)
	}
}

// AddAsteroid inserts a at the front of the asteroid field. A zero ID is
// replaced with a fresh one.
func (w *World) AddAsteroid(a *Asteroid) {
	if a.ID == 0 {
		w.nextID++
		a.ID = w.nextID
	}
	w.asteroids.PushFront(a)
}

// AddBullet inserts b at the front of the bullet list. A zero ID is replaced
// with a fresh one.
func (w *World) AddBullet(b *Bullet) {
	if b.ID == 0 {
		w.nextID++
		b.ID = w.nextID
	}
	w.bullets.PushFront(b)
}

// SetShipMesh replaces the ship's display mesh. The ship's collision
// radius does not depend on it. A nil mesh is ignored.
func (w *World) SetShipMesh(m *models.Mesh) {
	if m != nil {
		w.ship.Mesh = m
	}
}

// Params returns the world's tuning.
func (w *World) Params() Params { return w.params }

// Score returns the number of asteroids split so far.
func (w *World) Score() int { return w.score }

// State returns the run state.
func (w *World) State() State { return w.state }

// Frame returns the number of steps taken.
func (w *World) Frame() uint64 { return w.frame }

// Ship returns a copy of the ship.
func (w *World) Ship() Ship { return w.ship }

// AsteroidCount returns the number of live asteroids.
func (w *World) AsteroidCount() int { return w.asteroids.Len() }

// BulletCount returns the number of live bullets.
func (w *World) BulletCount() int { return w.bullets.Len() }
