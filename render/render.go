// Package render turns voxel complexes and boundary meshes into triangles,
// and writes them out as STL files, previews and plots.
package render

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a triangle wound counter-clockwise when seen from outside.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of the triangle.
func (t Triangle3) Normal() r3.Vec {
	n := r3.Cross(r3.Sub(t.V[1], t.V[0]), r3.Sub(t.V[2], t.V[0]))
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// Degenerate reports whether two corners are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return r3.Norm(r3.Sub(t.V[0], t.V[1])) <= tol ||
		r3.Norm(r3.Sub(t.V[1], t.V[2])) <= tol ||
		r3.Norm(r3.Sub(t.V[2], t.V[0])) <= tol
}

// Segment3 is a line segment.
type Segment3 [2]r3.Vec

// Renderer streams triangles. ReadTriangles returns io.EOF once exhausted.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// NewMeshRenderer returns a Renderer over an in-memory triangle list.
func NewMeshRenderer(model []Triangle3) Renderer {
	return &meshRenderer{buf: triangle3Buffer{buf: model}}
}

type meshRenderer struct {
	buf triangle3Buffer
}

func (m *meshRenderer) ReadTriangles(t []Triangle3) (int, error) {
	if m.buf.Len() == 0 {
		return 0, io.EOF
	}
	return m.buf.Read(t), nil
}
