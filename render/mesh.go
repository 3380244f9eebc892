package render

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh in flat single precision buffers, the
// layout GPU viewers and glTF writers consume.
type Mesh struct {
	Vertices []float32 // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 // area weighted vertex normals, same layout
	Indices  []uint32  // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// NewMesh welds triangle corners closer than tol into shared vertices.
// Triangles that collapse after welding are dropped.
func NewMesh(model []Triangle3, tol float64) *Mesh {
	var (
		m    Mesh
		tree kdtree.Tree
		tol2 = tol * tol
	)
	weld := func(v r3.Vec) uint32 {
		q := kdVertex{Vec: v}
		if got, d2 := tree.Nearest(q); got != nil && d2 <= tol2 {
			return got.(kdVertex).idx
		}
		q.idx = uint32(m.VertexCount())
		tree.Insert(q, false)
		m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
		return q.idx
	}
	for _, t := range model {
		a, b, c := weld(t.V[0]), weld(t.V[1]), weld(t.V[2])
		if a == b || b == c || c == a {
			continue
		}
		m.Indices = append(m.Indices, a, b, c)
	}
	m.Normals = make([]float32, len(m.Vertices))
	for i := 0; i < len(m.Indices); i += 3 {
		n := m.faceNormal(m.Indices[i], m.Indices[i+1], m.Indices[i+2])
		for _, vi := range m.Indices[i : i+3] {
			for k := 0; k < 3; k++ {
				m.Normals[3*vi+uint32(k)] += n[k]
			}
		}
	}
	for i := 0; i < len(m.Normals); i += 3 {
		n := m.Normals[i : i+3 : i+3]
		l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if l > 0 {
			n[0], n[1], n[2] = n[0]/l, n[1]/l, n[2]/l
		}
	}
	return &m
}

// faceNormal returns the unnormalized normal of a triangle, its length twice
// the triangle's area.
func (m *Mesh) faceNormal(a, b, c uint32) [3]float32 {
	p := m.Vertices[3*a : 3*a+3]
	q := m.Vertices[3*b : 3*b+3]
	r := m.Vertices[3*c : 3*c+3]
	e1 := [3]float32{q[0] - p[0], q[1] - p[1], q[2] - p[2]}
	e2 := [3]float32{r[0] - p[0], r[1] - p[1], r[2] - p[2]}
	return [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
}

// Triangles expands the mesh back into a triangle list.
func (m *Mesh) Triangles() []Triangle3 {
	at := func(i uint32) r3.Vec {
		v := m.Vertices[3*i : 3*i+3]
		return r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
	}
	tris := make([]Triangle3, 0, m.TriangleCount())
	for i := 0; i < len(m.Indices); i += 3 {
		tris = append(tris, Triangle3{V: [3]r3.Vec{at(m.Indices[i]), at(m.Indices[i+1]), at(m.Indices[i+2])}})
	}
	return tris
}

var _ kdtree.Comparable = kdVertex{}

// kdVertex is a welded vertex stored in a kd-tree.
type kdVertex struct {
	r3.Vec
	idx uint32
}

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
//
// Given c = a.Compare(b, d):
//
//	c = a_d - b_d
func (a kdVertex) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	bv := b.(kdVertex)
	switch d {
	case 0:
		return a.X - bv.X
	case 1:
		return a.Y - bv.Y
	}
	return a.Z - bv.Z
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdVertex) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between the receiver and
// the parameter.
func (a kdVertex) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.Vec, b.(kdVertex).Vec))
}
