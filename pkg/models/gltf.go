package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/rockfield/pkg/math3d"
)

// LoadGLB loads a binary GLTF (.glb) file as a flat-shaded triangle list.
// All triangle primitives of all meshes are merged, recentred on their
// bounding box, and given outward normals. Normals stored in the file are
// ignored.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var tris [][3]math3d.Vec3
	for _, m := range doc.Meshes {
		tris, err = appendMeshTriangles(doc, m, tris)
		if err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh, err := NewMeshFromTriangles(filepath.Base(path), tris)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return mesh, nil
}

// SaveGLB writes the mesh to path as a binary GLTF with positions, normals
// and a sequential index buffer.
func SaveGLB(path string, m *Mesh) error {
	if m.TriangleCount() == 0 {
		return ErrNoTriangles
	}

	positions := make([][3]float32, len(m.Vertices))
	normals := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = toFloat32(v.Position)
		normals[i] = toFloat32(v.Normal)
	}
	indices := make([]uint32, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		indices = append(indices, uint32(f.V[0]), uint32(f.V[1]), uint32(f.V[2]))
	}

	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{
		Name: m.Name,
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, positions),
				gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: m.Name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

func toFloat32(v math3d.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// appendMeshTriangles extracts the triangles of every triangle-list primitive.
func appendMeshTriangles(doc *gltf.Document, m *gltf.Mesh, tris [][3]math3d.Vec3) ([][3]math3d.Vec3, error) {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, strips)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		posAcr, err := accessor(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}
		positions, err := modeler.ReadPosition(doc, posAcr, nil)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		var indices []uint32
		if prim.Indices != nil {
			idxAcr, err := accessor(doc, *prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
			indices, err = modeler.ReadIndices(doc, idxAcr, nil)
			if err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		n := uint32(len(positions))
		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			if a >= n || b >= n || c >= n {
				return nil, fmt.Errorf("index out of range at triangle %d", i/3)
			}
			tris = append(tris, [3]math3d.Vec3{
				fromFloat32(positions[a]),
				fromFloat32(positions[b]),
				fromFloat32(positions[c]),
			})
		}
	}
	return tris, nil
}

// accessor returns the accessor at idx, or an error if the document has none.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

func fromFloat32(p [3]float32) math3d.Vec3 {
	return math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
}
