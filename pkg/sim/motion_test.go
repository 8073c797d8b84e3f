package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/rockfield/pkg/math3d"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		in   math3d.Vec3
		want math3d.Vec3
	}{
		{"inside", math3d.V3(10, 20, 30), math3d.V3(10, 20, 30)},
		{"exactly on axis", math3d.V3(1000, 0, 0), math3d.V3(1000, 0, 0)},
		{"exactly off axis", math3d.V3(600, 0, -800), math3d.V3(600, 0, -800)},
		{"just beyond", math3d.V3(0, 1000.001, 0), math3d.V3(0, -1000.001, 0)},
		{"far beyond", math3d.V3(-1200, 300, 5), math3d.V3(1200, -300, -5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrap(tt.in, 1000))
		})
	}
}

func TestBulletExpiry(t *testing.T) {
	w := emptyWorld(t)
	w.AddBullet(NewBullet(math3d.V3(990, 0, 0), math3d.V3(1, 0, 0), 20))

	w.Step(0.5, Intents{})
	require.Equal(t, 1, w.BulletCount(), "a bullet exactly at the horizon survives")
	assert.Equal(t, math3d.V3(1000, 0, 0), w.bullets.At(0).Location)

	w.Step(0.5, Intents{})
	assert.Zero(t, w.BulletCount(), "a bullet beyond the horizon is removed")
}

func TestAsteroidWraparound(t *testing.T) {
	w := emptyWorld(t)

	edge := still(w, math3d.V3(0, 0, -1000), 1)
	w.AddAsteroid(edge)

	drifting := still(w, math3d.V3(995, 0, 0), 1)
	drifting.Speed = 10
	w.AddAsteroid(drifting)

	w.Step(1, Intents{})

	assert.Equal(t, 2, w.AsteroidCount(), "asteroids are never removed by distance")
	assert.Equal(t, math3d.V3(0, 0, -1000), edge.Location)
	assert.Equal(t, math3d.V3(-1005, 0, 0), drifting.Location)
}

func TestReferenceFrameShift(t *testing.T) {
	w := emptyWorld(t)
	w.backdrop.Points = []math3d.Vec3{math3d.V3(0, 0, -10), math3d.V3(0, 0, 995)}

	a := still(w, math3d.V3(0, 0, -500), 1)
	a.RotationSpeed = 0.25
	w.AddAsteroid(a)

	b := NewBullet(math3d.V3(0, 0, -100), math3d.Forward(), 0)
	w.AddBullet(b)

	w.ship.Velocity = math3d.V3(0, 0, -10)
	w.Step(1, Intents{})

	assert.Equal(t, math3d.V3(0, 0, -490), a.Location)
	assert.Equal(t, math3d.V3(0, 0, -90), b.Location)
	assert.InDelta(t, 0.25, a.Angle, 1e-12)
	assert.Equal(t, math3d.V3(0, 0, 0), w.backdrop.Points[0])
	assert.Equal(t, math3d.V3(0, 0, -1005), w.backdrop.Points[1], "backdrop wraps by negation")
}
