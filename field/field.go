// Package field builds the scalar fields that classify voxels. Fields are
// extruded 2D signed distance functions: a voxel's state depends only on
// where its center falls in plan.
package field

import (
	"fmt"

	"github.com/JonasWard/para-slim-shady/footprint"
	"github.com/JonasWard/para-slim-shady/internal/d2"
	"github.com/JonasWard/para-slim-shady/voxel"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Samples returned by the fields in this package, one per activation state.
const (
	NoneValue    = 0.0
	OpenValue    = 1.5
	MassiveValue = 2.5
)

// Constant returns a field that is v everywhere.
func Constant(v float64) voxel.Field {
	return func(r3.Vec) float64 { return v }
}

// Zones returns a field that is None outside outer or inside core, Open
// inside open and Massive elsewhere. Nil open or core SDFs are empty.
func Zones(outer, open, core sdf.SDF2) voxel.Field {
	if outer == nil {
		panic("field: nil outer sdf")
	}
	return func(p r3.Vec) float64 {
		q := v2.Vec{X: p.X, Y: p.Y}
		switch {
		case outer.Evaluate(q) > 0:
			return NoneValue
		case core != nil && core.Evaluate(q) < 0:
			return NoneValue
		case open != nil && open.Evaluate(q) < 0:
			return OpenValue
		}
		return MassiveValue
	}
}

// Shell returns a field that is Massive within thickness of the inside of
// sil, Open deeper in and None outside. A non-positive thickness makes the
// whole silhouette Massive.
func Shell(sil sdf.SDF2, thickness float64) voxel.Field {
	if thickness <= 0 {
		return Zones(sil, nil, nil)
	}
	return Zones(sil, sdf.Offset2D(sil, -thickness), nil)
}

// Plinth returns a field that is Massive inside sil below top, except for a
// hollow core of innerRadius around the Z axis, and follows above elsewhere.
func Plinth(sil sdf.SDF2, innerRadius, top float64, above voxel.Field) (voxel.Field, error) {
	var core sdf.SDF2
	if innerRadius > 0 {
		var err error
		if core, err = sdf.Circle2D(innerRadius); err != nil {
			return nil, err
		}
	}
	base := Zones(sil, nil, core)
	return func(p r3.Vec) float64 {
		if p.Z < top {
			return base(p)
		}
		return above(p)
	}, nil
}

// Polygon returns the SDF of a closed polygon.
func Polygon(poly d2.Set) (sdf.SDF2, error) {
	vs := make([]v2.Vec, len(poly))
	for i, p := range poly {
		vs[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	return sdf.Polygon2D(vs)
}

// ForFootprint returns the field a footprint kind is classified with. Grids
// keep ShellThickness layers of cells massive along the outline and empty
// BufferInside around the center; polar footprints are massive on the outer
// ring, open on the inner ones and hollow in the core.
func ForFootprint(s footprint.Spec, fp *footprint.Footprint) (voxel.Field, error) {
	switch s.Kind {
	case footprint.KindSquare:
		sil, err := Polygon(fp.Silhouette())
		if err != nil {
			return nil, err
		}
		return Shell(sil, 0), nil
	case footprint.KindSquareGrid, footprint.KindTriangleGrid, footprint.KindHexGrid:
		if s.Grid != nil {
			return gridField(*s.Grid, fp)
		}
	case footprint.KindCylinder:
		if s.Cylinder != nil {
			return cylinderField(*s.Cylinder)
		}
	case footprint.KindMalculmiusOne:
		if s.MalculmiusOne != nil {
			return malculmiusField(*s.MalculmiusOne)
		}
	default:
		return nil, fmt.Errorf("%w: %v", footprint.ErrUnknownKind, s.Kind)
	}
	return nil, fmt.Errorf("%w: %v spec has no parameters", footprint.ErrDegenerate, s.Kind)
}

func gridField(g footprint.Grid, fp *footprint.Footprint) (voxel.Field, error) {
	sil, err := Polygon(fp.Silhouette())
	if err != nil {
		return nil, err
	}
	if g.BufferOutside > 0 {
		sil = sdf.Offset2D(sil, -g.BufferOutside)
	}
	var open, core sdf.SDF2
	if g.ShellThickness > 0 {
		open = sdf.Offset2D(sil, -float64(g.ShellThickness)*g.Size)
	}
	if g.BufferInside > 0 {
		core, err = sdf.Circle2D(g.BufferInside)
		if err != nil {
			return nil, err
		}
	}
	return Zones(sil, open, core), nil
}

func cylinderField(c footprint.Cylinder) (voxel.Field, error) {
	rOpen := c.BufferInside + c.Radius0 + c.Radius1
	rOuter := rOpen + c.Radius2
	if rOuter <= 0 {
		return Constant(NoneValue), nil
	}
	outer, err := Polygon(c.Polygon(rOuter))
	if err != nil {
		return nil, err
	}
	var open, core sdf.SDF2
	if rOpen > 0 {
		if open, err = Polygon(c.Polygon(rOpen)); err != nil {
			return nil, err
		}
	}
	if c.BufferInside > 0 {
		if core, err = Polygon(c.Polygon(c.BufferInside)); err != nil {
			return nil, err
		}
	}
	return Zones(outer, open, core), nil
}

func malculmiusField(m footprint.MalculmiusOne) (voxel.Field, error) {
	inner, middle, outer := m.Rings()
	var zones [3]sdf.SDF2
	for i, ring := range []d2.Set{outer, middle, inner} {
		s, err := Polygon(ring)
		if err != nil {
			return nil, err
		}
		zones[i] = s
	}
	return Zones(zones[0], zones[1], zones[2]), nil
}
