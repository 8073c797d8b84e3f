// Package models provides the procedural and imported triangle meshes used by rockfield.
package models

import (
	"errors"

	"github.com/taigrr/rockfield/pkg/math3d"
)

// ErrNoTriangles is returned when a mesh source yields no usable triangles.
var ErrNoTriangles = errors.New("mesh has no triangles")

// Mesh is a flat-shaded triangle list. Face i owns vertices 3i, 3i+1 and
// 3i+2, and all three carry the face normal. A mesh is not modified once it
// has been built, so it can be shared between entities and the renderer.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounding box (calculated on build)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face represents a triangle face with vertex indices.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh with room for n triangles.
func NewMesh(name string, n int) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0, n*3),
		Faces:    make([]Face, 0, n),
	}
}

// NewMeshFromTriangles builds a mesh from raw triangles. The triangles are
// recentred on their bounding box so that face normals can be oriented away
// from the mesh origin.
func NewMeshFromTriangles(name string, tris [][3]math3d.Vec3) (*Mesh, error) {
	if len(tris) == 0 {
		return nil, ErrNoTriangles
	}

	lo, hi := tris[0][0], tris[0][0]
	for _, t := range tris {
		for _, p := range t {
			lo = lo.Min(p)
			hi = hi.Max(p)
		}
	}
	center := lo.Add(hi).Scale(0.5)

	m := NewMesh(name, len(tris))
	for _, t := range tris {
		m.AddTriangle(t[0].Sub(center), t[1].Sub(center), t[2].Sub(center))
	}
	m.CalculateBounds()
	return m, nil
}

// AddTriangle appends triangle (a, b, c) with its outward-facing flat normal.
func (m *Mesh) AddTriangle(a, b, c math3d.Vec3) {
	n := math3d.OutwardNormal(a, b, c)
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices,
		MeshVertex{Position: a, Normal: n},
		MeshVertex{Position: b, Normal: n},
		MeshVertex{Position: c, Normal: n},
	)
	m.Faces = append(m.Faces, Face{V: [3]int{base, base + 1, base + 2}})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Radius returns the distance from the mesh origin to its farthest vertex.
func (m *Mesh) Radius() float64 {
	var r float64
	for _, v := range m.Vertices {
		r = max(r, v.Position.Len())
	}
	return r
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Triangle returns the local-space vertices of face i.
func (m *Mesh) Triangle(i int) (a, b, c math3d.Vec3) {
	f := m.Faces[i].V
	return m.Vertices[f[0]].Position, m.Vertices[f[1]].Position, m.Vertices[f[2]].Position
}

// FaceNormal returns the flat normal of face i.
func (m *Mesh) FaceNormal(i int) math3d.Vec3 {
	return m.Vertices[m.Faces[i].V[0]].Normal
}

// Positions returns the vertex positions as a flat triangle list.
func (m *Mesh) Positions() []math3d.Vec3 {
	out := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position
	}
	return out
}

// Normals returns the per-vertex normals, parallel to Positions.
func (m *Mesh) Normals() []math3d.Vec3 {
	out := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Normal
	}
	return out
}

// Scaled returns a copy of the mesh uniformly scaled so its largest bounding
// box dimension equals size. Normals are unchanged by uniform scaling.
func (m *Mesh) Scaled(size float64) *Mesh {
	dims := m.Size()
	maxDim := max(dims.X, dims.Y, dims.Z)
	s := 1.0
	if maxDim > 0 {
		s = size / maxDim
	}

	out := &Mesh{
		Name:     m.Name,
		Vertices: make([]MeshVertex, len(m.Vertices)),
		Faces:    make([]Face, len(m.Faces)),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = MeshVertex{Position: v.Position.Scale(s), Normal: v.Normal}
	}
	copy(out.Faces, m.Faces)
	out.CalculateBounds()
	return out
}

// GetVertex returns the position and normal for vertex i.
func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3) {
	v := m.Vertices[i]
	return v.Position, v.Normal
}

// GetFace returns the vertex indices for face i.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}
