package render

import (
	"math"

	"github.com/taigrr/rockfield/pkg/math3d"
)

// ambient is the light level of faces turned away from the light.
const ambient = 0.25

// MeshRenderer is a flat triangle mesh the rasterizer can draw.
type MeshRenderer interface {
	TriangleCount() int
	GetFace(i int) [3]int
	GetVertex(i int) (pos, normal math3d.Vec3)
}

// BoundedMeshRenderer is a mesh with a bounding sphere around its origin.
// The rasterizer uses it to skip meshes outside the view.
type BoundedMeshRenderer interface {
	MeshRenderer
	Radius() float64
}

// Rasterizer draws depth-tested triangles, lines and points into a
// framebuffer as seen from a camera.
type Rasterizer struct {
	camera  *Camera
	fb      *Framebuffer
	zbuffer []float64

	// Per-frame camera state, refreshed by BeginFrame.
	viewProj math3d.Mat4
	frustum  Frustum

	Stats                  Stats
	DisableBackfaceCulling bool
}

// Stats counts what the last frame drew.
type Stats struct {
	MeshesTested    int
	MeshesCulled    int
	TrianglesDrawn  int
	BackfacesCulled int
}

// screenVertex is a vertex after projection to pixel coordinates.
type screenVertex struct {
	X, Y float64
	Z    float64 // NDC depth in [-1, 1]
}

// NewRasterizer creates a rasterizer drawing into fb.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{camera: camera, fb: fb}
	r.Resize()
	r.BeginFrame()
	return r
}

// Resize matches the depth buffer to the framebuffer. Call it after the
// framebuffer has been resized.
func (r *Rasterizer) Resize() {
	n := r.fb.Width * r.fb.Height
	if cap(r.zbuffer) >= n {
		r.zbuffer = r.zbuffer[:n]
	} else {
		r.zbuffer = make([]float64, n)
	}
	r.ClearDepth()
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int { return r.fb.Width }

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int { return r.fb.Height }

// ClearDepth resets every depth sample to the far distance.
func (r *Rasterizer) ClearDepth() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// BeginFrame clears depth and statistics and captures the camera. Call it
// once per frame after the camera has moved.
func (r *Rasterizer) BeginFrame() {
	r.ClearDepth()
	r.Stats = Stats{}
	r.viewProj = r.camera.ViewProjectionMatrix()
	r.frustum = r.camera.Frustum()
}

// project maps a world point to pixel coordinates. Points closer than the
// near plane are rejected.
func (r *Rasterizer) project(p math3d.Vec3) (screenVertex, bool) {
	clip := r.viewProj.MulVec4(math3d.V4FromV3(p, 1))
	if clip.W < r.camera.Near {
		return screenVertex{}, false
	}
	return r.toScreen(clip), true
}

func (r *Rasterizer) toScreen(clip math3d.Vec4) screenVertex {
	ndc := clip.PerspectiveDivide()
	return screenVertex{
		X: (ndc.X + 1) * 0.5 * float64(r.Width()),
		Y: (1 - ndc.Y) * 0.5 * float64(r.Height()),
		Z: ndc.Z,
	}
}

// testAndSet writes c at (x, y) if z is nearer than the stored depth.
func (r *Rasterizer) testAndSet(x, y int, z float64, c Color) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() || z < -1 || z > 1 {
		return
	}
	idx := y*r.Width() + x
	if z < r.zbuffer[idx] {
		r.zbuffer[idx] = z
		r.fb.Pixels[idx] = c
	}
}

// edgeCoeffs returns A, B, C of the edge function A*x + B*y + C for the
// directed edge (x0, y0) -> (x1, y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (a, b, c float64) {
	return y0 - y1, x1 - x0, x0*y1 - x1*y0
}

// DrawTriangle fills a world-space triangle with a solid color. Both
// windings are drawn; triangles crossing the near plane are skipped.
func (r *Rasterizer) DrawTriangle(v0, v1, v2 math3d.Vec3, c Color) {
	var sv [3]screenVertex
	for i, p := range [3]math3d.Vec3{v0, v1, v2} {
		s, ok := r.project(p)
		if !ok {
			return
		}
		sv[i] = s
	}

	area2 := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if area2 == 0 {
		return
	}
	if area2 < 0 {
		sv[1], sv[2] = sv[2], sv[1]
		area2 = -area2
	}
	invArea := 1 / area2

	minX := max(0, int(math.Floor(min(sv[0].X, sv[1].X, sv[2].X))))
	maxX := min(r.Width()-1, int(math.Ceil(max(sv[0].X, sv[1].X, sv[2].X))))
	minY := max(0, int(math.Floor(min(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := min(r.Height()-1, int(math.Ceil(max(sv[0].Y, sv[1].Y, sv[2].Y))))
	if minX > maxX || minY > maxY {
		return
	}

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	a0, b0, c0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	a1, b1, c1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	a2, b2, c2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := a0*px + b0*py + c0
	w1Row := a1*px + b1*py + c1
	w2Row := a2*px + b2*py + c2

	width := r.Width()
	drawn := false
	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		row := y * width
		for x := minX; x <= maxX; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				z := (w0*sv[0].Z + w1*sv[1].Z + w2*sv[2].Z) * invArea
				idx := row + x
				if z >= -1 && z <= 1 && z < r.zbuffer[idx] {
					r.zbuffer[idx] = z
					r.fb.Pixels[idx] = c
					drawn = true
				}
			}
			w0 += a0
			w1 += a1
			w2 += a2
		}
		w0Row += b0
		w1Row += b1
		w2Row += b2
	}
	if drawn {
		r.Stats.TrianglesDrawn++
	}
}

// visible reports whether a mesh placed by model can be on screen.
func (r *Rasterizer) visible(mesh MeshRenderer, model math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return true
	}
	r.Stats.MeshesTested++
	if !r.frustum.IntersectsSphere(model.Translation(), bounded.Radius()) {
		r.Stats.MeshesCulled++
		return false
	}
	return true
}

// DrawMesh draws a flat-shaded mesh. model must be a rigid transform.
// Faces whose normal points away from the camera are skipped unless
// DisableBackfaceCulling is set.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, model math3d.Mat4, c Color, lightDir math3d.Vec3) {
	if !r.visible(mesh, model) {
		return
	}
	light := lightDir.Normalize()
	eye := r.camera.Position

	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)
		p0, n := mesh.GetVertex(face[0])
		p1, _ := mesh.GetVertex(face[1])
		p2, _ := mesh.GetVertex(face[2])

		v0 := model.MulVec3(p0)
		normal := model.MulVec3Dir(n).Normalize()
		if !r.DisableBackfaceCulling && normal.Dot(eye.Sub(v0)) <= 0 {
			r.Stats.BackfacesCulled++
			continue
		}

		intensity := ambient + (1-ambient)*max(0, normal.Dot(light))
		r.DrawTriangle(v0, model.MulVec3(p1), model.MulVec3(p2), Shade(c, intensity))
	}
}

// DrawMeshWireframe draws every triangle edge of a mesh.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshRenderer, model math3d.Mat4, c Color) {
	if !r.visible(mesh, model) {
		return
	}
	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)
		p0, _ := mesh.GetVertex(face[0])
		p1, _ := mesh.GetVertex(face[1])
		p2, _ := mesh.GetVertex(face[2])

		v0, v1, v2 := model.MulVec3(p0), model.MulVec3(p1), model.MulVec3(p2)
		r.DrawLine3D(v0, v1, c)
		r.DrawLine3D(v1, v2, c)
		r.DrawLine3D(v2, v0, c)
	}
}

// DrawLine3D draws a depth-tested world-space segment, clipped to the near
// plane.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, c Color) {
	near := r.camera.Near
	ca := r.viewProj.MulVec4(math3d.V4FromV3(a, 1))
	cb := r.viewProj.MulVec4(math3d.V4FromV3(b, 1))
	if ca.W < near && cb.W < near {
		return
	}
	if ca.W < near {
		ca = clipLerp(ca, cb, (near-ca.W)/(cb.W-ca.W))
	} else if cb.W < near {
		cb = clipLerp(cb, ca, (near-cb.W)/(ca.W-cb.W))
	}

	sa, sb := r.toScreen(ca), r.toScreen(cb)
	dx, dy := sb.X-sa.X, sb.Y-sa.Y
	steps := int(math.Ceil(max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		r.testAndSet(int(sa.X), int(sa.Y), sa.Z, c)
		return
	}
	// Segments projected from just past the near plane can span far off screen.
	if steps > 4*(r.Width()+r.Height()) {
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.testAndSet(
			int(math.Floor(sa.X+dx*t)),
			int(math.Floor(sa.Y+dy*t)),
			sa.Z+(sb.Z-sa.Z)*t,
			c,
		)
	}
}

// clipLerp moves p towards q by t in clip space.
func clipLerp(p, q math3d.Vec4, t float64) math3d.Vec4 {
	return math3d.Vec4{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		Z: p.Z + (q.Z-p.Z)*t,
		W: p.W + (q.W-p.W)*t,
	}
}

// DrawPoint draws a single depth-tested pixel at a world position.
func (r *Rasterizer) DrawPoint(p math3d.Vec3, c Color) {
	if !r.frustum.ContainsPoint(p) {
		return
	}
	s, ok := r.project(p)
	if !ok {
		return
	}
	r.testAndSet(int(math.Floor(s.X)), int(math.Floor(s.Y)), s.Z, c)
}
