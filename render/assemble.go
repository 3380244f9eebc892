package render

import (
	"github.com/JonasWard/para-slim-shady/extrusion"
	"github.com/JonasWard/para-slim-shady/halfedge"
	"github.com/JonasWard/para-slim-shady/internal/d2"
	"github.com/JonasWard/para-slim-shady/internal/d3"
	"github.com/JonasWard/para-slim-shady/voxel"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// AssembleVoxels builds the solid of a classified complex. Massive voxels
// merge into one shell with a wall wherever they meet an absent or open
// voxel. Each open voxel becomes a separate block shrunk by the section's
// insets and narrowed along its width profile. A nil xf leaves positions
// untouched.
func AssembleVoxels(c *voxel.Complex, sec extrusion.Section, xf func(r3.Vec) r3.Vec) []Triangle3 {
	var tris []Triangle3
	for i, v := range c.Voxels {
		switch v.State {
		case voxel.Massive:
			for slot := range v.Neighbours {
				if massiveWall(v.State, c.NeighbourState(i, slot)) {
					tris = appendFan(tris, c.FaceCorners(i, slot), xf)
				}
			}
		case voxel.Open:
			tris = appendBlock(tris, c, v, sec, xf)
		}
	}
	return tris
}

// blockWidth is the profile used when a section has none.
var blockWidth = []r2.Vec{{X: 1}, {X: 1, Y: 1}}

// appendBlock lofts the open block of v through one ring per profile point.
// A ring of zero width collapses to the cell centroid.
func appendBlock(tris []Triangle3, c *voxel.Complex, v voxel.Voxel, sec extrusion.Section, xf func(r3.Vec) r3.Vec) []Triangle3 {
	profile := sec.Profile
	if len(profile) < 2 {
		profile = blockWidth
	}
	bottom, top := c.LevelPolygon(v.Cell, v.Story), c.LevelPolygon(v.Cell, v.Story+1)
	z0, z1 := c.Elevations[v.Story], c.Elevations[v.Story+1]
	lo, hi := sec.Insets.Bottom, 1-sec.Insets.Top
	rings := make([][]r3.Vec, len(profile))
	for k, w := range profile {
		u := lo + w.Y*(hi-lo)
		poly := make(d2.Set, len(bottom))
		for j := range bottom {
			poly[j] = d2.Lerp(bottom[j], top[j], u)
		}
		ctr := poly.Centroid()
		z := z0 + u*(z1-z0)
		ring := make([]r3.Vec, len(poly))
		for j, p := range poly {
			if w.X > 1e-9 {
				p = d2.Lerp(ctr, p, (1-sec.Insets.Sides)*w.X)
			} else {
				p = ctr
			}
			ring[j] = d3.FromR2(p, z)
		}
		rings[k] = ring
	}
	n := len(bottom)
	if profile[0].X > 1e-9 {
		floor := make([]r3.Vec, n)
		for j, p := range rings[0] {
			floor[n-1-j] = p
		}
		tris = appendFan(tris, floor, xf)
	}
	if profile[len(profile)-1].X > 1e-9 {
		tris = appendFan(tris, rings[len(rings)-1], xf)
	}
	for k := 1; k < len(rings); k++ {
		a, b := rings[k-1], rings[k]
		for j := 0; j < n; j++ {
			next := (j + 1) % n
			tris = appendFan(tris, distinct(a[j], a[next], b[next], b[j]), xf)
		}
	}
	return tris
}

// distinct drops corners that repeat their predecessor around the loop.
func distinct(pts ...r3.Vec) []r3.Vec {
	out := make([]r3.Vec, 0, len(pts))
	for i, p := range pts {
		if p != pts[(i+len(pts)-1)%len(pts)] {
			out = append(out, p)
		}
	}
	return out
}

// massiveWall reports whether a massive voxel shows the face towards n:
// either the face bounds the enclosure or the open neighbour needs it sealed.
func massiveWall(s voxel.State, n *voxel.State) bool {
	if voxel.IsFaceClosed(s, n) {
		return true
	}
	return voxel.InternalFaceState(*n, &s) == voxel.FaceClosed
}

// EnclosureTriangles fans every face of a boundary mesh.
func EnclosureTriangles(m *halfedge.Mesh) []Triangle3 {
	var tris []Triangle3
	for f := range m.Faces {
		tris = appendFan(tris, m.FaceVertices(f), nil)
	}
	return tris
}

// HalfEdgeSegments converts half-edge segments for drawing.
func HalfEdgeSegments(segs []halfedge.Segment) []Segment3 {
	out := make([]Segment3, len(segs))
	for i, s := range segs {
		out[i] = Segment3(s)
	}
	return out
}

// GraphSegments returns one segment per edge of g between the positions of
// its end nodes.
func GraphSegments(g *simple.UndirectedGraph, pos func(id int64) r3.Vec) []Segment3 {
	var segs []Segment3
	it := g.Edges()
	for it.Next() {
		e := it.Edge()
		segs = append(segs, Segment3{pos(e.From().ID()), pos(e.To().ID())})
	}
	return segs
}

func appendFan(tris []Triangle3, poly []r3.Vec, xf func(r3.Vec) r3.Vec) []Triangle3 {
	if xf != nil {
		moved := make([]r3.Vec, len(poly))
		for i, p := range poly {
			moved[i] = xf(p)
		}
		poly = moved
	}
	for i := 1; i+1 < len(poly); i++ {
		tris = append(tris, Triangle3{V: [3]r3.Vec{poly[0], poly[i], poly[i+1]}})
	}
	return tris
}
