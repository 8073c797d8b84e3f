package render

import (
	"math"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/rockfield/pkg/math3d"
	"github.com/taigrr/rockfield/pkg/sim"
)

// Options configures a Scene.
type Options struct {
	FPS            int
	FOV            float64 // Vertical field of view in radians
	Palette        Palette
	Light          math3d.Vec3 // Direction towards the light
	ChaseDistance  float64
	ChaseHeight    float64
	ChaseFrequency float64
	ChaseDamping   float64
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		FPS:            60,
		FOV:            math.Pi / 3,
		Palette:        DefaultPalette(),
		Light:          math3d.V3(0.5, 1, 0.3).Normalize(),
		ChaseDistance:  12,
		ChaseHeight:    3,
		ChaseFrequency: 6,
		ChaseDamping:   0.8,
	}
}

// Scene turns world snapshots into framebuffer pixels from a chase camera
// behind the ship.
type Scene struct {
	Camera    *Camera
	Chase     *ChaseCamera
	Palette   Palette
	Light     math3d.Vec3
	Wireframe bool

	fb     *Framebuffer
	raster *Rasterizer
}

// NewScene creates a scene for a terminal of cols x rows cells.
func NewScene(cols, rows int, opts Options) *Scene {
	cam := NewCamera()
	cam.SetFOV(opts.FOV)

	fb := NewFramebuffer(cols, rows*2)
	s := &Scene{
		Camera:  cam,
		Chase:   NewChaseCamera(opts.FPS, opts.ChaseFrequency, opts.ChaseDamping, opts.ChaseDistance, opts.ChaseHeight),
		Palette: opts.Palette,
		Light:   opts.Light.Normalize(),
		fb:      fb,
		raster:  NewRasterizer(cam, fb),
	}
	s.Resize(cols, rows)
	return s
}

// Resize adapts the framebuffer and projection to a new terminal size. The
// chase camera jumps to its goal on the next Render.
func (s *Scene) Resize(cols, rows int) {
	s.Chase.Reset()
	s.fb.Resize(cols, rows*2)
	s.raster.Resize()
	if s.fb.Width > 0 && s.fb.Height > 0 {
		s.Camera.SetAspectRatio(float64(s.fb.Width) / float64(s.fb.Height))
	}
}

// Render draws snap: the backdrop, the asteroids, the ship and the bullets.
func (s *Scene) Render(snap *sim.Snapshot) {
	s.Chase.Update(s.Camera, snap.Ship.Pointing)
	s.fb.Clear(s.Palette.Background)
	s.raster.BeginFrame()

	for _, p := range snap.Backdrop {
		s.raster.DrawPoint(p, s.Palette.Star)
	}

	for _, a := range snap.Asteroids {
		s.drawMesh(a.Mesh, a.Model(), s.Palette.Asteroid)
	}

	ship := s.Palette.Ship
	if !snap.Running {
		ship = s.Palette.Wreck
	}
	if snap.Ship.Mesh != nil {
		s.drawMesh(snap.Ship.Mesh, snap.Ship.Model(), ship)
	}

	for _, b := range snap.Bullets {
		tail, tip := b.Segment()
		s.raster.DrawLine3D(tail, tip, s.Palette.Bullet)
	}
}

func (s *Scene) drawMesh(mesh MeshRenderer, model math3d.Mat4, c Color) {
	if s.Wireframe {
		s.raster.DrawMeshWireframe(mesh, model, c)
		return
	}
	s.raster.DrawMesh(mesh, model, c, s.Light)
}

// Stats returns the counters of the last Render.
func (s *Scene) Stats() Stats {
	return s.raster.Stats
}

// Framebuffer returns the pixels of the last Render.
func (s *Scene) Framebuffer() *Framebuffer {
	return s.fb
}

// Screenshot saves the last rendered frame as a PNG.
func (s *Scene) Screenshot(path string) error {
	return s.fb.SavePNG(path)
}

// Draw implements uv.Drawable.
func (s *Scene) Draw(scr uv.Screen, area uv.Rectangle) {
	s.fb.Draw(scr, area)
}
