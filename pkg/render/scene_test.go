package render

import (
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/rockfield/pkg/math3d"
	"github.com/taigrr/rockfield/pkg/models"
	"github.com/taigrr/rockfield/pkg/sim"
)

func shipSnapshot(running bool) *sim.Snapshot {
	return &sim.Snapshot{
		Running: running,
		Ship: sim.ShipInstance{
			Mesh:     models.GenerateShip(),
			Pointing: math3d.Forward(),
		},
	}
}

// pixelsWhere counts the framebuffer pixels that are not background and
// satisfy keep.
func pixelsWhere(s *Scene, keep func(Color) bool) int {
	n := 0
	for _, c := range s.Framebuffer().Pixels {
		if c != s.Palette.Background && keep(c) {
			n++
		}
	}
	return n
}

func TestSceneResize(t *testing.T) {
	s := NewScene(80, 24, DefaultOptions())
	if fb := s.Framebuffer(); fb.Width != 80 || fb.Height != 48 {
		t.Fatalf("framebuffer = %dx%d, want 80x48", fb.Width, fb.Height)
	}

	s.Resize(100, 30)
	if fb := s.Framebuffer(); fb.Width != 100 || fb.Height != 60 {
		t.Errorf("framebuffer = %dx%d, want 100x60", fb.Width, fb.Height)
	}
	if want := 100.0 / 60.0; s.Camera.AspectRatio != want {
		t.Errorf("aspect = %v, want %v", s.Camera.AspectRatio, want)
	}
}

func TestSceneResizeSnapsChase(t *testing.T) {
	s := NewScene(80, 24, DefaultOptions())
	s.Render(shipSnapshot(true))

	turned := shipSnapshot(true)
	turned.Ship.Pointing = math3d.V3(1, 0, 0)
	s.Render(turned)

	eye, _ := s.Chase.Goal(turned.Ship.Pointing)
	if s.Camera.Position.ApproxEqual(eye, 1e-6) {
		t.Fatal("chase camera reached a new goal in one frame")
	}

	s.Resize(100, 30)
	s.Render(turned)
	if !s.Camera.Position.ApproxEqual(eye, 1e-9) {
		t.Errorf("eye after resize = %v, want %v", s.Camera.Position, eye)
	}
}

func TestSceneRendersShip(t *testing.T) {
	s := NewScene(80, 24, DefaultOptions())

	s.Render(shipSnapshot(true))
	if n := pixelsWhere(s, func(c Color) bool { return c.B > c.R }); n == 0 {
		t.Error("running ship not drawn in ship colors")
	}

	s.Render(shipSnapshot(false))
	if n := pixelsWhere(s, func(c Color) bool { return c.R > c.B }); n == 0 {
		t.Error("stopped ship not drawn as a wreck")
	}
}

func TestSceneRendersBulletsAndBackdrop(t *testing.T) {
	s := NewScene(80, 24, DefaultOptions())
	snap := shipSnapshot(true)
	snap.Bullets = []sim.BulletInstance{{
		Location: math3d.V3(0, 0, -20),
		Tip:      math3d.V3(0, 0, -1),
	}}
	snap.Backdrop = []math3d.Vec3{math3d.V3(0, 0, -500)}

	s.Render(snap)
	if n := pixelsWhere(s, func(c Color) bool { return c == s.Palette.Bullet }); n == 0 {
		t.Error("bullet not drawn")
	}
	if n := pixelsWhere(s, func(c Color) bool { return c == s.Palette.Star }); n == 0 {
		t.Error("backdrop point not drawn")
	}
}

func TestSceneRendersAsteroids(t *testing.T) {
	s := NewScene(80, 24, DefaultOptions())
	snap := &sim.Snapshot{
		Running: true,
		Ship:    sim.ShipInstance{Pointing: math3d.Forward()},
		Asteroids: []sim.AsteroidInstance{{
			ID:       1,
			Mesh:     models.GenerateAsteroid(rand.New(rand.NewPCG(3, 4)), 24, 12),
			Axis:     math3d.Up(),
			Location: math3d.V3(0, 0, -100),
			Size:     1,
		}},
	}

	s.Render(snap)
	stats := s.Stats()
	if stats.MeshesTested != 1 || stats.MeshesCulled != 0 {
		t.Errorf("stats = %+v, want one visible mesh", stats)
	}
	if stats.TrianglesDrawn == 0 || stats.BackfacesCulled == 0 {
		t.Errorf("stats = %+v, want front faces drawn and back faces culled", stats)
	}

	snap.Asteroids[0].Location = math3d.V3(0, 0, 400)
	s.Render(snap)
	if stats := s.Stats(); stats.MeshesCulled != 1 {
		t.Errorf("asteroid behind the camera not culled, stats = %+v", stats)
	}
}

func TestSceneWireframe(t *testing.T) {
	s := NewScene(80, 24, DefaultOptions())
	s.Wireframe = true
	s.Render(shipSnapshot(true))
	if n := pixelsWhere(s, func(c Color) bool { return c == s.Palette.Ship }); n == 0 {
		t.Error("wireframe ship not drawn in its unshaded color")
	}
}

func TestSceneScreenshot(t *testing.T) {
	s := NewScene(40, 12, DefaultOptions())
	s.Render(shipSnapshot(true))

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.Screenshot(path); err != nil {
		t.Fatalf("Screenshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 24 {
		t.Errorf("image = %v, want 40x24", b)
	}
}

func TestScreenshotBadPath(t *testing.T) {
	s := NewScene(4, 2, DefaultOptions())
	if err := s.Screenshot(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
