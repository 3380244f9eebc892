package lamp

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/JonasWard/para-slim-shady/field"
	"github.com/JonasWard/para-slim-shady/footprint"
	"github.com/JonasWard/para-slim-shady/halfedge"
	"github.com/JonasWard/para-slim-shady/profile"
	"github.com/JonasWard/para-slim-shady/render"
	"github.com/JonasWard/para-slim-shady/voxel"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Result holds the output of one Build. Exactly one of Solid, Enclosure,
// Segments and Graph is set, according to Method.
type Result struct {
	Method     RenderMethod
	Elevations []float64

	// Solid and Wireframe are set by Normal and Wireframe.
	Solid     []render.Triangle3
	Wireframe bool
	// Enclosure is set by Enclosure.
	Enclosure *halfedge.Mesh
	// Segments holds one segment per half-edge for HalfEdgesEnclosure.
	Segments []render.Segment3
	// Graph is set by Neighbourmap.
	Graph *Graph
}

// Graph is the voxel adjacency graph. Node ids are voxel ids and Nodes holds
// the voxel centers after deformation.
type Graph struct {
	G     *simple.UndirectedGraph
	Nodes []r3.Vec
}

// Segments returns one segment per graph edge.
func (g *Graph) Segments() []render.Segment3 {
	return render.GraphSegments(g.G, func(id int64) r3.Vec { return g.Nodes[id] })
}

// Triangles returns the result's surface triangles, if it has any.
func (r *Result) Triangles() []render.Triangle3 {
	switch {
	case r.Solid != nil:
		return r.Solid
	case r.Enclosure != nil:
		return render.EnclosureTriangles(r.Enclosure)
	}
	return nil
}

// Lines returns the result's segments, if it has any.
func (r *Result) Lines() []render.Segment3 {
	switch {
	case r.Segments != nil:
		return r.Segments
	case r.Graph != nil:
		return r.Graph.Segments()
	}
	return nil
}

// BuildError is returned when building a lamp panics.
type BuildError struct {
	Value any
	Stack string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("lamp: build panicked: %v", e.Value)
}

type options struct {
	log *slog.Logger
	tol float64
}

// Option configures Build.
type Option func(*options)

// WithLogger sets the logger Build reports progress to. By default nothing
// is logged.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithTolerance sets the vertex merge distance of enclosure extraction.
func WithTolerance(tol float64) Option {
	return func(o *options) { o.tol = tol }
}

// Build generates the geometry selected by m from p. Every call starts from
// scratch and shares nothing with earlier results.
func Build(p Parameters, m RenderMethod, opts ...Option) (res *Result, err error) {
	o := options{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tol: halfedge.DefaultTolerance,
	}
	for _, opt := range opts {
		opt(&o)
	}
	defer func() {
		if a := recover(); a != nil {
			res, err = nil, &BuildError{Value: a, Stack: string(debug.Stack())}
		}
	}()
	if m == "" {
		m = Normal
	}
	log := o.log.With("method", string(m))

	heights, err := profile.Heights(p.Heights)
	if err != nil {
		return nil, fmt.Errorf("heights: %w", err)
	}
	var levels []func(r2.Vec) r2.Vec
	if p.PreProcessing != nil && !p.PreProcessing.IsZero() {
		if levels, err = p.PreProcessing.Levels(heights); err != nil {
			return nil, fmt.Errorf("pre processing: %w", err)
		}
	}
	if p.Base != nil {
		if err := p.Base.validate(); err != nil {
			return nil, err
		}
		heights, levels = p.Base.raise(heights, levels)
	}
	fp, err := footprint.Build(p.Footprint)
	if err != nil {
		return nil, fmt.Errorf("footprint: %w", err)
	}
	c, err := voxel.New(fp, heights)
	if err != nil {
		return nil, err
	}
	if levels != nil {
		if err := c.Deform(levels); err != nil {
			return nil, fmt.Errorf("pre processing: %w", err)
		}
	}
	log.Debug("voxel complex built", "footprint", p.Footprint.Kind, "cells", len(fp.Cells), "stories", c.Stories(), "voxels", len(c.Voxels))
	xf := func(v r3.Vec) r3.Vec { return v }
	if p.PostProcessing != nil {
		if xf, err = p.PostProcessing.Transform(); err != nil {
			return nil, fmt.Errorf("post processing: %w", err)
		}
	}

	res = &Result{Method: m, Elevations: heights}
	if m == Neighbourmap {
		g := c.NeighbourGraph()
		nodes := make([]r3.Vec, len(c.Voxels))
		for i := range nodes {
			nodes[i] = xf(c.Position(i))
		}
		res.Graph = &Graph{G: g, Nodes: nodes}
		log.Info("neighbour map built", "nodes", len(nodes), "edges", g.Edges().Len())
		return res, nil
	}

	f, err := fieldFor(p, fp)
	if err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}
	c.Classify(f)
	log.Debug("voxels classified",
		"none", c.Count(voxel.None), "open", c.Count(voxel.Open), "massive", c.Count(voxel.Massive))
	if parts := c.ActiveComponents(); len(parts) > 1 {
		log.Warn("lamp has detached parts", "parts", len(parts))
	}

	switch m {
	case Normal, Wireframe:
		sec, err := p.Extrusion.Section(sectionSegments)
		if err != nil {
			return nil, fmt.Errorf("extrusion: %w", err)
		}
		res.Solid = render.AssembleVoxels(c, sec, xf)
		res.Wireframe = m == Wireframe
		log.Info("solid assembled", "triangles", len(res.Solid))
	case Enclosure, HalfEdgesEnclosure:
		mesh, err := voxel.Enclosure(c, o.tol)
		if err != nil {
			return nil, err
		}
		mesh = mesh.Transform(xf)
		if m == Enclosure {
			res.Enclosure = mesh
		} else {
			res.Segments = render.HalfEdgeSegments(mesh.Segments())
		}
		log.Info("enclosure extracted", "faces", len(mesh.Faces), "halfEdges", len(mesh.Edges), "open", mesh.BoundaryEdges())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderMethod, m)
	}
	return res, nil
}

// sectionSegments is the number of segments per arch curve of an open
// block's width profile.
const sectionSegments = 8

// fieldFor returns the classification field of p. A base fills the first
// SideHeight of the stack whatever the field above it does.
func fieldFor(p Parameters, fp *footprint.Footprint) (voxel.Field, error) {
	f := p.Field
	if f == nil {
		var err error
		if f, err = field.ForFootprint(p.Footprint, fp); err != nil {
			return nil, err
		}
	}
	if p.Base == nil {
		return f, nil
	}
	sil, err := field.Polygon(fp.Silhouette())
	if err != nil {
		return nil, err
	}
	return field.Plinth(sil, p.Base.SideInnerRadius, p.Base.SideHeight, f)
}
