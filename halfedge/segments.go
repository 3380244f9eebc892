package halfedge

import "gonum.org/v1/gonum/spatial/r3"

// Segment is a line segment between two points.
type Segment [2]r3.Vec

// Segments returns one segment per half-edge. An interior edge is returned
// twice, once for each of its twins.
func (m *Mesh) Segments() []Segment {
	segs := make([]Segment, len(m.Edges))
	for i, e := range m.Edges {
		segs[i] = Segment{m.Vertices[e.Origin].Pos, m.Vertices[m.Dest(i)].Pos}
	}
	return segs
}

// UniqueSegments returns one segment per geometric edge, skipping the twin
// with the higher id.
func (m *Mesh) UniqueSegments() []Segment {
	var segs []Segment
	for i, e := range m.Edges {
		if e.Twin >= 0 && e.Twin < i {
			continue
		}
		segs = append(segs, Segment{m.Vertices[e.Origin].Pos, m.Vertices[m.Dest(i)].Pos})
	}
	return segs
}

// Triangles fans every face from its first corner. Winding follows the face.
func (m *Mesh) Triangles() [][3]r3.Vec {
	var tris [][3]r3.Vec
	for f := range m.Faces {
		pts := m.FaceVertices(f)
		for i := 1; i+1 < len(pts); i++ {
			tris = append(tris, [3]r3.Vec{pts[0], pts[i], pts[i+1]})
		}
	}
	return tris
}

// Transform returns a copy of m with every vertex moved by fn. Topology is
// shared by value and left untouched.
func (m *Mesh) Transform(fn func(r3.Vec) r3.Vec) *Mesh {
	out := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Edges:    append([]HalfEdge(nil), m.Edges...),
		Faces:    append([]Face(nil), m.Faces...),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = Vertex{ID: v.ID, Pos: fn(v.Pos)}
	}
	return out
}
