// Package voxel holds the voxel complex: one voxel per footprint cell and
// story, an activation state per voxel and symmetric neighbour links through
// shared face ids.
package voxel

import (
	"errors"
	"fmt"
	"math"

	"github.com/JonasWard/para-slim-shady/footprint"
	"github.com/JonasWard/para-slim-shady/internal/d2"
	"github.com/JonasWard/para-slim-shady/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerate is returned when a complex cannot hold a single voxel.
var ErrDegenerate = errors.New("degenerate voxel complex")

// Neighbour slots. Side i of a footprint cell is held in slot Side(i).
const (
	Down = iota
	Up
	sideBase
)

// Side returns the neighbour slot of footprint cell side i.
func Side(i int) int { return sideBase + i }

// Field is a scalar field sampled at voxel centers to set activation states.
type Field func(p r3.Vec) float64

// Link is an optional neighbour: the neighbouring voxel and the id of the
// face both voxels share.
type Link struct {
	Voxel, Face int
	Valid       bool
}

type Voxel struct {
	ID, Cell, Story int
	State           State
	Neighbours      []Link
}

// Complex owns its voxels. Voxel v sits on footprint cell v%cells in story
// v/cells, between Elevations[story] and Elevations[story+1].
type Complex struct {
	Voxels     []Voxel
	Footprint  *footprint.Footprint
	Elevations []float64
	faces      int
	// levels holds deformed vertex positions per elevation; nil is the plan.
	levels [][]r2.Vec
}

// New builds the complex over fp with one story between each pair of
// consecutive elevations. All voxels start in state None.
func New(fp *footprint.Footprint, elevations []float64) (*Complex, error) {
	switch {
	case fp == nil || len(fp.Cells) == 0:
		return nil, fmt.Errorf("%w: footprint has no cells", ErrDegenerate)
	case len(elevations) < 2:
		return nil, fmt.Errorf("%w: %d elevations, need at least 2", ErrDegenerate, len(elevations))
	}
	for i := 1; i < len(elevations); i++ {
		if !(elevations[i] > elevations[i-1]) || math.IsInf(elevations[i], 0) {
			return nil, fmt.Errorf("%w: story %d spans [%v, %v]", ErrDegenerate, i-1, elevations[i-1], elevations[i])
		}
	}
	cells := len(fp.Cells)
	stories := len(elevations) - 1
	c := &Complex{
		Voxels:     make([]Voxel, cells*stories),
		Footprint:  fp,
		Elevations: append([]float64(nil), elevations...),
	}
	for i := range c.Voxels {
		cell := i % cells
		c.Voxels[i] = Voxel{
			ID:         i,
			Cell:       cell,
			Story:      i / cells,
			Neighbours: make([]Link, Side(fp.Sides(cell))),
		}
	}
	for i := range c.Voxels {
		v := &c.Voxels[i]
		if v.Story+1 < stories {
			c.connect(i, Up, i+cells, Down)
		}
		for e, link := range fp.Cells[v.Cell].Neighbours {
			if link.Valid && !v.Neighbours[Side(e)].Valid {
				c.connect(i, Side(e), c.Index(link.Cell, v.Story), Side(link.Edge))
			}
		}
	}
	return c, nil
}

// connect links slot sa of voxel a with slot sb of voxel b through a new face.
func (c *Complex) connect(a, sa, b, sb int) {
	f := c.faces
	c.faces++
	c.Voxels[a].Neighbours[sa] = Link{Voxel: b, Face: f, Valid: true}
	c.Voxels[b].Neighbours[sb] = Link{Voxel: a, Face: f, Valid: true}
}

// Index returns the voxel id of cell in story.
func (c *Complex) Index(cell, story int) int {
	return story*len(c.Footprint.Cells) + cell
}

// Stories returns the number of stories.
func (c *Complex) Stories() int { return len(c.Elevations) - 1 }

// Faces returns the number of shared interior faces.
func (c *Complex) Faces() int { return c.faces }

// Opposite returns the slot of v's neighbour through which it links back to v.
func (c *Complex) Opposite(v, slot int) int {
	switch slot {
	case Down:
		return Up
	case Up:
		return Down
	}
	vox := c.Voxels[v]
	return Side(c.Footprint.Cells[vox.Cell].Neighbours[slot-sideBase].Edge)
}

// Deform places the footprint vertices of each elevation level l at
// fns[l] of their plan position. Activation and adjacency are untouched.
func (c *Complex) Deform(fns []func(r2.Vec) r2.Vec) error {
	if len(fns) != len(c.Elevations) {
		return fmt.Errorf("%w: %d level deformations for %d elevations", ErrDegenerate, len(fns), len(c.Elevations))
	}
	levels := make([][]r2.Vec, len(fns))
	for l, f := range fns {
		level := make([]r2.Vec, len(c.Footprint.Vertices))
		for i, p := range c.Footprint.Vertices {
			q := f(p)
			if math.IsNaN(q.X+q.Y) || math.IsInf(q.X+q.Y, 0) {
				return fmt.Errorf("%w: level %d moves vertex %d to %v", ErrDegenerate, l, i, q)
			}
			level[i] = q
		}
		levels[l] = level
	}
	c.levels = levels
	return nil
}

// LevelPolygon returns the polygon of cell as placed at elevation level.
func (c *Complex) LevelPolygon(cell, level int) d2.Set {
	if c.levels == nil {
		return c.Footprint.Polygon(cell)
	}
	vs := c.Footprint.Cells[cell].Vertices
	poly := make(d2.Set, len(vs))
	for j, vi := range vs {
		poly[j] = c.levels[level][vi]
	}
	return poly
}

// Center returns the centroid of v's undeformed cell at the story's mid
// elevation. Fields are sampled here.
func (c *Complex) Center(v int) r3.Vec {
	vox := c.Voxels[v]
	z0, z1 := c.Elevations[vox.Story], c.Elevations[vox.Story+1]
	return d3.FromR2(c.Footprint.Centroid(vox.Cell), (z0+z1)/2)
}

// Position is Center after deformation.
func (c *Complex) Position(v int) r3.Vec {
	vox := c.Voxels[v]
	lo := c.LevelPolygon(vox.Cell, vox.Story).Centroid()
	hi := c.LevelPolygon(vox.Cell, vox.Story+1).Centroid()
	z0, z1 := c.Elevations[vox.Story], c.Elevations[vox.Story+1]
	return d3.FromR2(d2.Lerp(lo, hi, 0.5), (z0+z1)/2)
}

// Bounds returns the bounding box of v.
func (c *Complex) Bounds(v int) d3.Box {
	vox := c.Voxels[v]
	bb := d3.EmptyBox()
	for _, l := range []int{vox.Story, vox.Story + 1} {
		for _, p := range c.LevelPolygon(vox.Cell, l) {
			bb = bb.Include(d3.FromR2(p, c.Elevations[l]))
		}
	}
	return bb
}

// FaceCorners returns the corners of the face of v in slot, wound
// counter-clockwise when seen from outside v.
func (c *Complex) FaceCorners(v, slot int) []r3.Vec {
	vox := c.Voxels[v]
	return LoftFace(c.LevelPolygon(vox.Cell, vox.Story), c.LevelPolygon(vox.Cell, vox.Story+1),
		c.Elevations[vox.Story], c.Elevations[vox.Story+1], slot)
}

// LoftFace returns the outward face in slot of the solid joining the
// counter-clockwise polygons bottom at z0 and top at z1. Both polygons must
// have the same number of corners.
func LoftFace(bottom, top d2.Set, z0, z1 float64, slot int) []r3.Vec {
	n := len(bottom)
	switch {
	case slot == Down:
		pts := make([]r3.Vec, n)
		for i, p := range bottom.Reverse() {
			pts[i] = d3.FromR2(p, z0)
		}
		return pts
	case slot == Up:
		pts := make([]r3.Vec, n)
		for i, p := range top {
			pts[i] = d3.FromR2(p, z1)
		}
		return pts
	case slot-sideBase < n:
		i, j := slot-sideBase, (slot-sideBase+1)%n
		return []r3.Vec{d3.FromR2(bottom[i], z0), d3.FromR2(bottom[j], z0), d3.FromR2(top[j], z1), d3.FromR2(top[i], z1)}
	}
	panic(fmt.Sprintf("slot %d out of range for %d-gon", slot, n))
}

