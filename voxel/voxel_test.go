package voxel

import (
	"errors"
	"math"
	"testing"

	"github.com/JonasWard/para-slim-shady/footprint"
	"github.com/JonasWard/para-slim-shady/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func newComplex(t *testing.T, k footprint.Kind, elevations ...float64) *Complex {
	t.Helper()
	spec, err := footprint.Defaults(k)
	if err != nil {
		t.Fatal(err)
	}
	fp, err := footprint.Build(spec)
	if err != nil {
		t.Fatal(err)
	}
	c, err := New(fp, elevations)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func statePtr(s State) *State { return &s }

func TestActivationState(t *testing.T) {
	for _, test := range []struct {
		v    float64
		want State
	}{
		{-3, None},
		{0.5, None},
		{1, Open},
		{1.5, Open},
		{2, Massive},
		{2.5, Massive},
	} {
		if got := ActivationState(test.v); got != test.want {
			t.Errorf("ActivationState(%v) = %v, want %v", test.v, got, test.want)
		}
	}
}

func TestInternalFaceState(t *testing.T) {
	for _, test := range []struct {
		s    State
		n    *State
		want FaceState
	}{
		{None, nil, FaceNone},
		{None, statePtr(Massive), FaceNone},
		{Massive, nil, FaceNone},
		{Massive, statePtr(None), FaceNone},
		{Massive, statePtr(Open), FaceNone},
		{Open, statePtr(Massive), FaceClosed},
		{Open, statePtr(None), FaceOpen},
		{Open, statePtr(Open), FaceOpen},
		{Open, nil, FaceOpen},
	} {
		if got := InternalFaceState(test.s, test.n); got != test.want {
			t.Errorf("InternalFaceState(%v, %v) = %v, want %v", test.s, test.n, got, test.want)
		}
	}
}

func TestIsFaceClosed(t *testing.T) {
	for _, test := range []struct {
		s    State
		n    *State
		want bool
	}{
		{None, nil, false},
		{None, statePtr(Open), false},
		{Open, nil, true},
		{Open, statePtr(None), true},
		{Open, statePtr(Open), false},
		{Open, statePtr(Massive), false},
		{Massive, nil, true},
		{Massive, statePtr(None), true},
		{Massive, statePtr(Open), false},
		{Massive, statePtr(Massive), false},
	} {
		if got := IsFaceClosed(test.s, test.n); got != test.want {
			t.Errorf("IsFaceClosed(%v, %v) = %v, want %v", test.s, test.n, got, test.want)
		}
	}
}

func TestNewAdjacencySymmetric(t *testing.T) {
	for k := footprint.KindSquare; k <= footprint.KindMalculmiusOne; k++ {
		c := newComplex(t, k, 0, 10, 25, 30)
		if got, want := len(c.Voxels), 3*len(c.Footprint.Cells); got != want {
			t.Fatalf("%v: got %d voxels, want %d", k, got, want)
		}
		faces := make(map[int]int)
		for i, v := range c.Voxels {
			if v.ID != i {
				t.Fatalf("%v: voxel %d has id %d", k, i, v.ID)
			}
			for slot, link := range v.Neighbours {
				if !link.Valid {
					continue
				}
				faces[link.Face]++
				back := c.Voxels[link.Voxel].Neighbours[c.Opposite(i, slot)]
				if !back.Valid || back.Voxel != i || back.Face != link.Face {
					t.Errorf("%v: voxel %d slot %d -> %+v, back link %+v", k, i, slot, link, back)
				}
			}
		}
		if len(faces) != c.Faces() {
			t.Errorf("%v: %d face ids in use, %d allocated", k, len(faces), c.Faces())
		}
		for f, n := range faces {
			if n != 2 {
				t.Errorf("%v: face %d referenced %d times", k, f, n)
			}
		}
	}
}

func TestNewErrors(t *testing.T) {
	fp, err := footprint.Build(footprint.Spec{Kind: footprint.KindSquare, Square: &footprint.Square{Size: 1}})
	if err != nil {
		t.Fatal(err)
	}
	for _, elev := range [][]float64{nil, {0}, {0, 0}, {0, 2, 1}, {0, math.NaN()}} {
		if _, err := New(fp, elev); !errors.Is(err, ErrDegenerate) {
			t.Errorf("elevations %v: got %v, want ErrDegenerate", elev, err)
		}
	}
	if _, err := New(&footprint.Footprint{}, []float64{0, 1}); !errors.Is(err, ErrDegenerate) {
		t.Errorf("empty footprint: got %v", err)
	}
}

func TestCenterBounds(t *testing.T) {
	c := newComplex(t, footprint.KindSquareGrid, 0, 4, 10)
	v := c.Index(4, 1)
	want := r3.Vec{X: 0, Y: 0, Z: 7}
	if got := c.Center(v); !d3.EqualWithin(got, want, 1e-12) {
		t.Errorf("center %v, want %v", got, want)
	}
	bb := c.Bounds(v)
	if !d3.EqualWithin(bb.Min, r3.Vec{X: -10, Y: -10, Z: 4}, 1e-12) || !d3.EqualWithin(bb.Max, r3.Vec{X: 10, Y: 10, Z: 10}, 1e-12) {
		t.Errorf("bounds %+v", bb)
	}
}

func rotation(theta float64) func(r2.Vec) r2.Vec {
	sin, cos := math.Sincos(theta)
	return func(p r2.Vec) r2.Vec { return r2.Vec{X: cos*p.X - sin*p.Y, Y: sin*p.X + cos*p.Y} }
}

func TestDeform(t *testing.T) {
	c := newComplex(t, footprint.KindSquareGrid, 0, 4, 10)
	shift := func(dx float64) func(r2.Vec) r2.Vec {
		return func(p r2.Vec) r2.Vec { return r2.Vec{X: p.X + dx, Y: p.Y} }
	}
	if err := c.Deform([]func(r2.Vec) r2.Vec{shift(0), shift(2)}); !errors.Is(err, ErrDegenerate) {
		t.Errorf("short deformation: got %v", err)
	}
	nan := func(r2.Vec) r2.Vec { return r2.Vec{X: math.NaN()} }
	if err := c.Deform([]func(r2.Vec) r2.Vec{shift(0), shift(2), nan}); !errors.Is(err, ErrDegenerate) {
		t.Errorf("NaN deformation: got %v", err)
	}
	if err := c.Deform([]func(r2.Vec) r2.Vec{shift(0), shift(2), shift(4)}); err != nil {
		t.Fatal(err)
	}
	v := c.Index(4, 1)
	if got, want := c.Center(v), (r3.Vec{Z: 7}); !d3.EqualWithin(got, want, 1e-12) {
		t.Errorf("center %v, want plan position %v", got, want)
	}
	if got, want := c.Position(v), (r3.Vec{X: 3, Z: 7}); !d3.EqualWithin(got, want, 1e-12) {
		t.Errorf("position %v, want %v", got, want)
	}
	bb := c.Bounds(v)
	if !d3.EqualWithin(bb.Min, r3.Vec{X: -8, Y: -10, Z: 4}, 1e-12) || !d3.EqualWithin(bb.Max, r3.Vec{X: 14, Y: 10, Z: 10}, 1e-12) {
		t.Errorf("bounds %+v", bb)
	}
	top := c.FaceCorners(v, Up)
	for i, p := range c.Footprint.Polygon(4) {
		if want := d3.FromR2(r2.Vec{X: p.X + 4, Y: p.Y}, 10); !d3.EqualWithin(top[i], want, 1e-12) {
			t.Errorf("top corner %d at %v, want %v", i, top[i], want)
		}
	}
}

func TestEnclosureTwistedIsClosed(t *testing.T) {
	c := newComplex(t, footprint.KindMalculmiusOne, 0, 10, 20, 30)
	if err := c.Deform([]func(r2.Vec) r2.Vec{rotation(0), rotation(0.2), rotation(0.4), rotation(0.6)}); err != nil {
		t.Fatal(err)
	}
	c.Classify(func(r3.Vec) float64 { return 1.5 })
	m, err := Enclosure(c, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if n := m.BoundaryEdges(); n != 0 {
		t.Errorf("twisted solid has %d open edges", n)
	}
	if len(m.Faces) != 72 {
		t.Errorf("got %d faces, want 72", len(m.Faces))
	}
	want := rotation(0.6)(c.Footprint.Vertices[0])
	found := false
	for _, v := range m.Vertices {
		found = found || d3.EqualWithin(v.Pos, d3.FromR2(want, 30), 1e-9)
	}
	if !found {
		t.Errorf("no vertex at the rotated top corner %v", want)
	}
}

func TestEnclosureSingleVoxel(t *testing.T) {
	c := newComplex(t, footprint.KindSquare, 0, 50)
	c.Classify(func(r3.Vec) float64 { return 2.5 })
	m, err := Enclosure(c, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Faces) != 6 || len(m.Vertices) != 8 {
		t.Fatalf("got %d faces %d vertices, want 6 and 8", len(m.Faces), len(m.Vertices))
	}
	if n := m.BoundaryEdges(); n != 0 {
		t.Errorf("cube has %d open edges", n)
	}
	center := c.Center(0)
	for f := range m.Faces {
		p := m.FaceVertices(f)[0]
		if r3.Dot(m.FaceNormal(f), r3.Sub(p, center)) <= 0 {
			t.Errorf("face %d faces inwards", f)
		}
	}
}

func TestEnclosureSolidIsClosed(t *testing.T) {
	c := newComplex(t, footprint.KindMalculmiusOne, 0, 10, 20, 30)
	c.Classify(func(r3.Vec) float64 { return 1.5 })
	m, err := Enclosure(c, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	if n := m.BoundaryEdges(); n != 0 {
		t.Errorf("solid has %d open edges", n)
	}
	euler := len(m.Vertices) - len(m.Edges)/2 + len(m.Faces)
	if euler != 2 {
		t.Errorf("euler characteristic %d, want 2", euler)
	}
	if len(m.Faces) != 72 {
		t.Errorf("got %d faces, want 72", len(m.Faces))
	}
}

// mixed assigns states in a pattern that varies within and across stories.
func mixed(p r3.Vec) float64 {
	return 1.5 + 1.5*math.Sin(0.37*p.X+0.61*p.Y+0.29*p.Z)
}

func TestEnclosureFacesClosedOnce(t *testing.T) {
	c := newComplex(t, footprint.KindMalculmiusOne, 0, 10, 20, 30)
	c.Classify(mixed)
	if c.Count(None) == 0 || c.Count(None) == len(c.Voxels) {
		t.Fatal("field does not mix present and absent voxels")
	}
	m, err := Enclosure(c, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	want := 0
	for i, v := range c.Voxels {
		for slot := range v.Neighbours {
			if IsFaceClosed(v.State, c.NeighbourState(i, slot)) {
				want++
			}
		}
	}
	if len(m.Faces) != want {
		t.Errorf("got %d faces, want %d", len(m.Faces), want)
	}
	seen := make(map[[2]d3.Key]int)
	for f, face := range m.Faces {
		meta := face.Meta
		if !IsFaceClosed(c.Voxels[meta.Voxel].State, c.NeighbourState(meta.Voxel, meta.Slot)) {
			t.Errorf("face %d from voxel %d slot %d is not closed", f, meta.Voxel, meta.Slot)
		}
		pts := m.FaceVertices(f)
		var sum r3.Vec
		for _, p := range pts {
			sum = r3.Add(sum, p)
		}
		key := [2]d3.Key{
			d3.Quantize(r3.Scale(1/float64(len(pts)), sum), 1e-6),
			d3.Quantize(m.FaceNormal(f), 1e-6),
		}
		if g, dup := seen[key]; dup {
			t.Errorf("faces %d and %d coincide", g, f)
		}
		seen[key] = f
	}
}

func TestNeighbourGraph(t *testing.T) {
	c := newComplex(t, footprint.KindHexGrid, 0, 1, 2)
	g := c.NeighbourGraph()
	if got := g.Nodes().Len(); got != len(c.Voxels) {
		t.Errorf("graph has %d nodes, want %d", got, len(c.Voxels))
	}
	if got := g.Edges().Len(); got != c.Faces() {
		t.Errorf("graph has %d edges, want %d", got, c.Faces())
	}
}

func TestActiveComponents(t *testing.T) {
	fp, err := footprint.Build(footprint.Spec{Kind: footprint.KindSquareGrid, Grid: &footprint.Grid{Size: 10, XCount: 3, YCount: 1}})
	if err != nil {
		t.Fatal(err)
	}
	c, err := New(fp, []float64{0, 5})
	if err != nil {
		t.Fatal(err)
	}
	c.Classify(func(p r3.Vec) float64 {
		if math.Abs(p.X) > 5 {
			return 2.5
		}
		return 0
	})
	if got := len(c.ActiveComponents()); got != 2 {
		t.Errorf("got %d components, want 2", got)
	}
}
