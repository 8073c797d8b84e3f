package sim

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/rockfield/pkg/math3d"
	"github.com/taigrr/rockfield/pkg/models"
)

func TestBulletSplitsAsteroid(t *testing.T) {
	w := emptyWorld(t)
	w.AddAsteroid(still(w, math3d.V3(3, 2, -40), 1))
	w.AddBullet(NewBullet(math3d.Zero3(), math3d.Forward(), 700))

	w.Step(frame, Intents{})

	require.Equal(t, 3, w.AsteroidCount(), "one asteroid becomes three")
	assert.Equal(t, 1, w.Score())
	assert.Zero(t, w.BulletCount(), "the bullet is consumed")
	assert.Equal(t, Running, w.State())

	respawn, right, left := w.asteroids.At(0), w.asteroids.At(1), w.asteroids.At(2)

	assert.Equal(t, 1.0, respawn.Size)
	assert.InDelta(t, 1000, respawn.Location.Len(), 1e-9, "replacement spawns on the shell")
	assert.GreaterOrEqual(t, respawn.Speed, 250.0, "replacement speed is boosted by score")

	for _, child := range []*Asteroid{left, right} {
		assert.Equal(t, 0.5, child.Size)
		assert.Equal(t, math3d.V3(3, 2, -40), child.Location)
		assert.InDelta(t, 1, child.Direction.Len(), 1e-12)
		assert.InDelta(t, 0, child.Direction.Dot(math3d.Forward()), 1e-12, "children spread across the shot")
		assert.Equal(t, models.AsteroidVertexCount, child.Mesh.VertexCount())
		assert.LessOrEqual(t, child.Mesh.Radius(), 12+3+1e-9, "children use half radius and variation")
	}
	assert.Equal(t, left.Direction.Negate(), right.Direction)
}

func TestFragmentationThreshold(t *testing.T) {
	tests := []struct {
		size      float64
		wantCount int
		wantScore int
	}{
		{1, 3, 1},
		{0.5, 3, 1},
		{0.25, 3, 1},
		{0.24, 0, 0},
		{0.12, 0, 0},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.size, 'g', -1, 64), func(t *testing.T) {
			w := emptyWorld(t)
			w.AddAsteroid(still(w, math3d.V3(0.5, 0.3, -(12+30*tt.size)), tt.size))
			w.AddBullet(NewBullet(math3d.Zero3(), math3d.Forward(), 700))

			w.Step(frame, Intents{})

			assert.Equal(t, tt.wantCount, w.AsteroidCount())
			assert.Equal(t, tt.wantScore, w.Score())
			assert.Zero(t, w.BulletCount())
			assert.Equal(t, Running, w.State())

			for _, a := range w.asteroids.All() {
				if a.Size < 1 {
					assert.Equal(t, tt.size/2, a.Size)
				}
			}
		})
	}
}

func TestSpawnsGoToFront(t *testing.T) {
	w := emptyWorld(t)

	far := still(w, math3d.V3(0, 600, 0), 1)
	w.AddAsteroid(far)
	target := still(w, math3d.V3(3, 2, -40), 1)
	w.AddAsteroid(target)
	w.AddBullet(NewBullet(math3d.Zero3(), math3d.Forward(), 700))

	w.Step(frame, Intents{})

	require.Equal(t, 4, w.AsteroidCount())
	assert.Equal(t, 1.0, w.asteroids.At(0).Size)
	assert.Equal(t, 0.5, w.asteroids.At(1).Size)
	assert.Equal(t, 0.5, w.asteroids.At(2).Size)
	assert.Same(t, far, w.asteroids.At(3), "untouched asteroids keep their order behind the spawns")

	ids := map[uint64]bool{}
	for _, a := range w.asteroids.All() {
		assert.NotEqual(t, target.ID, a.ID)
		assert.False(t, ids[a.ID], "ids are unique")
		ids[a.ID] = true
	}
}

func TestOneBulletPerAsteroid(t *testing.T) {
	w := emptyWorld(t)
	w.AddAsteroid(still(w, math3d.V3(3, 2, -40), 1))
	w.AddBullet(NewBullet(math3d.Zero3(), math3d.Forward(), 700))
	w.AddBullet(NewBullet(math3d.V3(1, 0, 0), math3d.Forward(), 700))

	w.Step(frame, Intents{})

	assert.Equal(t, 3, w.AsteroidCount())
	assert.Equal(t, 1, w.Score())
	assert.Equal(t, 1, w.BulletCount(), "the second bullet survives and spawns are not hit this frame")
}

func TestBulletMissesAsteroid(t *testing.T) {
	w := emptyWorld(t)
	w.AddAsteroid(still(w, math3d.V3(3, 2, -40), 1))
	w.AddBullet(NewBullet(math3d.Zero3(), math3d.V3(1, 0, 0), 700))

	w.Step(frame, Intents{})

	assert.Equal(t, 1, w.AsteroidCount())
	assert.Zero(t, w.Score())
	assert.Equal(t, 1, w.BulletCount())
}

func TestHitsTriangleReach(t *testing.T) {
	v0 := math3d.V3(-10, -10, -20)
	v1 := math3d.V3(10, -10, -20)
	v2 := math3d.V3(0, 10, -20)

	tests := []struct {
		name  string
		speed float64
		dir   math3d.Vec3
		want  bool
	}{
		{"out of reach", 600, math3d.Forward(), false},
		{"within reach", 1200, math3d.Forward(), true},
		{"moving away", 1200, math3d.V3(0, 0, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBullet(math3d.Zero3(), tt.dir, tt.speed)
			assert.Equal(t, tt.want, hitsTriangle(b, v0, v1, v2, frame))
		})
	}
}

// Any bullet that the exact test says hits an asteroid must also pass the
// broad phase.
func TestBroadPhaseNoFalseNegatives(t *testing.T) {
	w := emptyWorld(t)
	rng := newRand(99)
	p := w.params

	hits := 0
	for trial := range 300 {
		size := []float64{1, 0.5, 0.25}[trial%3]
		a := w.newAsteroid(math3d.Zero3(), p.AsteroidRadius*size, p.AsteroidVariation*size)
		a.Size = size
		a.Location = w.randomUnit().Scale(rng.Float64() * 100)
		a.Angle = rng.Float64() * 2 * math.Pi

		// Aim roughly at the asteroid from up to 40*size away.
		from := a.Location.Add(w.randomUnit().Scale(rng.Float64() * 40 * size))
		aim := a.Location.Add(w.randomUnit().Scale(rng.Float64() * 10 * size))
		b := NewBullet(from, aim.Sub(from), p.BulletSpeed+rng.Float64()*100)

		rot := a.Rotation()
		for i := range a.Mesh.TriangleCount() {
			v0, v1, v2 := a.WorldTriangle(rot, i)
			if hitsTriangle(b, v0, v1, v2, frame) {
				hits++
				require.True(t, mayCollide(a, b, frame, p.MinCollisionDistance),
					"trial %d: narrow hit rejected by broad phase", trial)
			}
		}
	}
	require.Positive(t, hits, "the sample must contain hits")
}

func TestShipCollision(t *testing.T) {
	w := emptyWorld(t)
	w.ship.Velocity = math3d.V3(0, 0, -50)

	a := still(w, math3d.V3(0, 0, -40), 1)
	w.AddAsteroid(a)

	w.Step(0.1, Intents{})

	assert.Equal(t, Stopped, w.State(), "an asteroid inside 36*size ends the run")
	assert.Equal(t, math3d.Zero3(), w.Ship().Velocity)

	// Input is ignored once stopped, but the world keeps moving.
	a.Speed = 10
	before := a.Location
	w.Step(0.1, Intents{ThrustForward: true, Fire: true, YawLeft: true})

	assert.Equal(t, Stopped, w.State())
	assert.Equal(t, math3d.Zero3(), w.Ship().Velocity)
	assert.Equal(t, math3d.Forward(), w.Ship().Pointing)
	assert.Zero(t, w.BulletCount())
	assert.NotEqual(t, before, a.Location)
}

func TestShipCollisionUsesSize(t *testing.T) {
	w := emptyWorld(t)
	w.AddAsteroid(still(w, math3d.V3(0, 0, -20), 0.5))

	w.Step(frame, Intents{})

	assert.Equal(t, Running, w.State(), "a half-size asteroid at 20 is outside 18")
}
