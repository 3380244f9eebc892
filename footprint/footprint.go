// Package footprint builds the planar cell complexes that lamp stories are
// stacked on. A footprint is a set of counter-clockwise polygons sharing
// vertices by index; two cells are neighbours when they share an edge.
package footprint

import (
	"errors"
	"fmt"
	"math"

	"github.com/JonasWard/para-slim-shady/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// vertexTol is the distance under which generated vertices are merged.
const vertexTol = 1e-7

var (
	// ErrUnknownKind is returned when a footprint category has no generator.
	ErrUnknownKind = errors.New("unknown footprint kind")
	// ErrDegenerate is returned for parameters that produce no usable cells.
	ErrDegenerate = errors.New("degenerate footprint")
)

// Footprint is a planar cell complex.
type Footprint struct {
	Vertices []r2.Vec
	Cells    []Cell
}

// Cell is a counter-clockwise polygon. Side i runs from Vertices[i] to
// Vertices[(i+1)%n] and Neighbours[i] is the cell across it, if any.
type Cell struct {
	Vertices   []int
	Neighbours []EdgeLink
}

// EdgeLink references the side Edge of cell Cell. The zero value with Valid
// false means the side lies on the footprint boundary.
type EdgeLink struct {
	Cell, Edge int
	Valid      bool
}

// Sides returns the number of sides of cell i.
func (f *Footprint) Sides(i int) int { return len(f.Cells[i].Vertices) }

// Polygon returns the vertex positions of cell i in counter-clockwise order.
func (f *Footprint) Polygon(i int) d2.Set {
	c := f.Cells[i]
	poly := make(d2.Set, len(c.Vertices))
	for j, vi := range c.Vertices {
		poly[j] = f.Vertices[vi]
	}
	return poly
}

// Centroid returns the area centroid of cell i.
func (f *Footprint) Centroid(i int) r2.Vec {
	return f.Polygon(i).Centroid()
}

// Bounds returns the bounding box of every vertex.
func (f *Footprint) Bounds() d2.Box {
	bb := d2.EmptyBox()
	for _, v := range f.Vertices {
		bb = bb.Include(v)
	}
	return bb
}

// Boundary returns the closed loops formed by cell sides without a neighbour.
// Outer loops are counter-clockwise and holes clockwise.
func (f *Footprint) Boundary() []d2.Set {
	next := make(map[int]int)
	for _, c := range f.Cells {
		n := len(c.Vertices)
		for i, link := range c.Neighbours {
			if !link.Valid {
				next[c.Vertices[i]] = c.Vertices[(i+1)%n]
			}
		}
	}
	var loops []d2.Set
	for len(next) > 0 {
		start := -1
		for v := range next {
			if start < 0 || v < start {
				start = v
			}
		}
		var loop d2.Set
		for v := start; ; {
			loop = append(loop, f.Vertices[v])
			w, ok := next[v]
			if !ok {
				break
			}
			delete(next, v)
			v = w
			if v == start {
				break
			}
		}
		loops = append(loops, loop)
	}
	return loops
}

// Silhouette returns the boundary loop enclosing the largest area.
func (f *Footprint) Silhouette() d2.Set {
	var best d2.Set
	bestArea := math.Inf(-1)
	for _, loop := range f.Boundary() {
		if a := loop.SignedArea(); a > bestArea {
			best, bestArea = loop, a
		}
	}
	return best
}

// builder accumulates polygons, merging coincident vertices.
type builder struct {
	fp   Footprint
	weld d2.Weld
}

func newBuilder() *builder {
	return &builder{weld: d2.Weld{Tol: vertexTol}}
}

func (b *builder) vertex(v r2.Vec) int {
	i := b.weld.Add(v)
	if i == len(b.fp.Vertices) {
		b.fp.Vertices = append(b.fp.Vertices, v)
	}
	return i
}

// addCell appends a polygon, fixing its winding to counter-clockwise.
func (b *builder) addCell(poly d2.Set) {
	if len(poly) < 3 {
		panic("footprint cell needs at least 3 vertices")
	}
	if poly.SignedArea() < 0 {
		poly = poly.Reverse()
	}
	c := Cell{Vertices: make([]int, len(poly))}
	for i, v := range poly {
		c.Vertices[i] = b.vertex(v)
	}
	b.fp.Cells = append(b.fp.Cells, c)
}

// finish links cells that share an edge and returns the footprint.
func (b *builder) finish() (*Footprint, error) {
	if len(b.fp.Cells) == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrDegenerate)
	}
	type side struct{ cell, edge int }
	sides := make(map[[2]int]side)
	for ci := range b.fp.Cells {
		c := &b.fp.Cells[ci]
		n := len(c.Vertices)
		c.Neighbours = make([]EdgeLink, n)
		for i := range c.Vertices {
			key := [2]int{c.Vertices[i], c.Vertices[(i+1)%n]}
			if _, dup := sides[key]; dup {
				return nil, fmt.Errorf("%w: edge %v used twice in the same direction", ErrDegenerate, key)
			}
			sides[key] = side{ci, i}
		}
	}
	for ci := range b.fp.Cells {
		c := &b.fp.Cells[ci]
		n := len(c.Vertices)
		for i := range c.Vertices {
			other, ok := sides[[2]int{c.Vertices[(i+1)%n], c.Vertices[i]}]
			if ok {
				c.Neighbours[i] = EdgeLink{Cell: other.cell, Edge: other.edge, Valid: true}
			}
		}
	}
	fp := b.fp
	return &fp, nil
}
