// Package halfedge implements an index-based half-edge boundary mesh. Faces,
// half-edges and vertices reference each other by position in their slices.
package halfedge

import (
	"errors"
	"fmt"

	"github.com/JonasWard/para-slim-shady/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalid is returned when a face or mesh breaks the half-edge invariants.
var ErrInvalid = errors.New("invalid half-edge mesh")

// DefaultTolerance is the vertex merge distance used when none is given.
const DefaultTolerance = 1e-6

type Vertex struct {
	ID  int
	Pos r3.Vec
}

// HalfEdge runs from vertex Origin to the origin of Next. Twin is -1 on the
// mesh boundary.
type HalfEdge struct {
	ID, Origin, Twin, Next, Face int
}

// FaceMeta records the voxel interface a face was extracted from. Neighbour
// and Face are -1 for faces on the complex boundary.
type FaceMeta struct {
	Voxel, Slot, Face, Neighbour int
}

type Face struct {
	ID, Edge int
	Meta     FaceMeta
}

type Mesh struct {
	Vertices []Vertex
	Edges    []HalfEdge
	Faces    []Face
}

// Builder assembles a Mesh face by face, merging vertices closer than its
// tolerance and linking half-edges that run along the same edge in opposite
// directions.
type Builder struct {
	m       Mesh
	weld    d3.Weld
	pending map[[2]int][]int
}

// NewBuilder returns a Builder merging vertices within tol. A non-positive
// tol selects DefaultTolerance.
func NewBuilder(tol float64) *Builder {
	if !(tol > 0) {
		tol = DefaultTolerance
	}
	return &Builder{
		weld:    d3.Weld{Tol: tol},
		pending: make(map[[2]int][]int),
	}
}

func (b *Builder) vertex(p r3.Vec) int {
	i := b.weld.Add(p)
	if i == len(b.m.Vertices) {
		b.m.Vertices = append(b.m.Vertices, Vertex{ID: i, Pos: p})
	}
	return i
}

// AddFace appends a polygon face and returns its id. The polygon must have
// at least three corners that stay distinct after merging.
func (b *Builder) AddFace(poly []r3.Vec, meta FaceMeta) (int, error) {
	if len(poly) < 3 {
		return -1, fmt.Errorf("%w: face with %d corners", ErrInvalid, len(poly))
	}
	vs := make([]int, len(poly))
	seen := make(map[int]bool, len(poly))
	for i, p := range poly {
		vs[i] = b.vertex(p)
		if seen[vs[i]] {
			return -1, fmt.Errorf("%w: face repeats vertex %v", ErrInvalid, p)
		}
		seen[vs[i]] = true
	}
	fid := len(b.m.Faces)
	first := len(b.m.Edges)
	n := len(vs)
	for i, v := range vs {
		id := first + i
		b.m.Edges = append(b.m.Edges, HalfEdge{
			ID:     id,
			Origin: v,
			Twin:   -1,
			Next:   first + (i+1)%n,
			Face:   fid,
		})
		b.link(id, v, vs[(i+1)%n])
	}
	b.m.Faces = append(b.m.Faces, Face{ID: fid, Edge: first, Meta: meta})
	return fid, nil
}

// link pairs half-edge e running from a to b with an unpaired half-edge
// running from b to a. Edges shared by more than two faces pair up in the
// order they were added.
func (b *Builder) link(e, from, to int) {
	rev := [2]int{to, from}
	if q := b.pending[rev]; len(q) > 0 {
		t := q[0]
		if len(q) == 1 {
			delete(b.pending, rev)
		} else {
			b.pending[rev] = q[1:]
		}
		b.m.Edges[e].Twin = t
		b.m.Edges[t].Twin = e
		return
	}
	key := [2]int{from, to}
	b.pending[key] = append(b.pending[key], e)
}

// Mesh returns the mesh built so far. The builder must not be used after.
func (b *Builder) Mesh() *Mesh {
	m := b.m
	return &m
}

// Dest returns the vertex half-edge e points to.
func (m *Mesh) Dest(e int) int {
	return m.Edges[m.Edges[e].Next].Origin
}

// Loop returns the half-edges of face f in next order.
func (m *Mesh) Loop(f int) []int {
	start := m.Faces[f].Edge
	loop := []int{start}
	for e := m.Edges[start].Next; e != start; e = m.Edges[e].Next {
		if len(loop) > len(m.Edges) {
			panic("half-edge loop does not close")
		}
		loop = append(loop, e)
	}
	return loop
}

// FaceVertices returns the corner positions of face f.
func (m *Mesh) FaceVertices(f int) []r3.Vec {
	loop := m.Loop(f)
	pts := make([]r3.Vec, len(loop))
	for i, e := range loop {
		pts[i] = m.Vertices[m.Edges[e].Origin].Pos
	}
	return pts
}

// FaceNormal returns the unit normal of face f using Newell's method.
func (m *Mesh) FaceNormal(f int) r3.Vec {
	pts := m.FaceVertices(f)
	var n r3.Vec
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	if r3.Norm(n) == 0 {
		return n
	}
	return r3.Unit(n)
}

// BoundaryEdges returns the number of half-edges without a twin.
func (m *Mesh) BoundaryEdges() (n int) {
	for _, e := range m.Edges {
		if e.Twin < 0 {
			n++
		}
	}
	return n
}

// Validate checks twin involution, that every face loop closes over its own
// half-edges and that no loop repeats a vertex.
func (m *Mesh) Validate() error {
	for i, e := range m.Edges {
		switch {
		case e.ID != i:
			return fmt.Errorf("%w: half-edge %d has id %d", ErrInvalid, i, e.ID)
		case e.Next < 0 || e.Next >= len(m.Edges):
			return fmt.Errorf("%w: half-edge %d next %d out of range", ErrInvalid, i, e.Next)
		case e.Origin < 0 || e.Origin >= len(m.Vertices):
			return fmt.Errorf("%w: half-edge %d origin %d out of range", ErrInvalid, i, e.Origin)
		case e.Twin < 0:
			continue
		case e.Twin >= len(m.Edges) || m.Edges[e.Twin].Twin != i:
			return fmt.Errorf("%w: half-edge %d twin %d is not mutual", ErrInvalid, i, e.Twin)
		case m.Edges[e.Twin].Origin != m.Dest(i):
			return fmt.Errorf("%w: half-edge %d twin %d does not run backwards", ErrInvalid, i, e.Twin)
		}
	}
	owned := make([]bool, len(m.Edges))
	for f, face := range m.Faces {
		seen := make(map[int]bool)
		e := face.Edge
		for steps := 0; ; steps++ {
			if steps > len(m.Edges) || e < 0 || e >= len(m.Edges) {
				return fmt.Errorf("%w: face %d loop does not close", ErrInvalid, f)
			}
			he := m.Edges[e]
			if he.Face != f || owned[e] {
				return fmt.Errorf("%w: face %d loop runs through half-edge %d of face %d", ErrInvalid, f, e, he.Face)
			}
			if seen[he.Origin] {
				return fmt.Errorf("%w: face %d repeats vertex %d", ErrInvalid, f, he.Origin)
			}
			seen[he.Origin] = true
			owned[e] = true
			e = he.Next
			if e == face.Edge {
				break
			}
		}
		if len(seen) < 3 {
			return fmt.Errorf("%w: face %d has %d vertices", ErrInvalid, f, len(seen))
		}
	}
	for e, ok := range owned {
		if !ok {
			return fmt.Errorf("%w: half-edge %d belongs to no face loop", ErrInvalid, e)
		}
	}
	return nil
}
