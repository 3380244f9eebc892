package footprint

import (
	"errors"
	"math"
	"testing"
)

func mustDefaults(t *testing.T, k Kind) *Footprint {
	t.Helper()
	s, err := Defaults(k)
	if err != nil {
		t.Fatal(err)
	}
	fp, err := Build(s)
	if err != nil {
		t.Fatal(k, err)
	}
	return fp
}

func TestBuildCellCount(t *testing.T) {
	for _, test := range []struct {
		spec  Spec
		cells int
	}{
		{Spec{Kind: KindSquare, Square: &Square{Size: 50}}, 1},
		{Spec{Kind: KindSquareGrid, Grid: &Grid{Size: 20, XCount: 3}}, 9},
		{Spec{Kind: KindSquareGrid, Grid: &Grid{Size: 20, XCount: 3, YCount: 2}}, 6},
		{Spec{Kind: KindTriangleGrid, Grid: &Grid{Size: 20, XCount: 3}}, 18},
		{Spec{Kind: KindHexGrid, Grid: &Grid{Size: 20, XCount: 3}}, 9},
		{Spec{Kind: KindCylinder, Cylinder: &Cylinder{BufferInside: 2, Radius0: 12, Radius1: 12, Radius2: 12, BufferOutside: 2, Segments: 5}}, 21},
		{Spec{Kind: KindCylinder, Cylinder: &Cylinder{Radius0: 12, Radius1: 0, Radius2: 12, Segments: 6}}, 7},
		{Spec{Kind: KindMalculmiusOne, MalculmiusOne: &MalculmiusOne{CircleRadius: 35, CircleDivisions: 5, AngleSplit: 0.5, InnerRadius: 5}}, 21},
	} {
		fp, err := Build(test.spec)
		if err != nil {
			t.Fatal(test.spec.Kind, err)
		}
		if len(fp.Cells) != test.cells {
			t.Errorf("%v: got %d cells, want %d", test.spec.Kind, len(fp.Cells), test.cells)
		}
		for i := range fp.Cells {
			if a := fp.Polygon(i).SignedArea(); a <= 0 {
				t.Errorf("%v: cell %d not counter-clockwise, area %v", test.spec.Kind, i, a)
			}
		}
	}
}

func TestAdjacencySymmetric(t *testing.T) {
	for k := KindSquare; k <= KindMalculmiusOne; k++ {
		fp := mustDefaults(t, k)
		for ci, c := range fp.Cells {
			if len(c.Neighbours) != len(c.Vertices) {
				t.Fatalf("%v: cell %d has %d links for %d sides", k, ci, len(c.Neighbours), len(c.Vertices))
			}
			for e, link := range c.Neighbours {
				if !link.Valid {
					continue
				}
				back := fp.Cells[link.Cell].Neighbours[link.Edge]
				if !back.Valid || back.Cell != ci || back.Edge != e {
					t.Errorf("%v: cell %d side %d links to %+v which links back to %+v", k, ci, e, link, back)
				}
			}
		}
	}
}

func countLinks(c Cell) (n int) {
	for _, link := range c.Neighbours {
		if link.Valid {
			n++
		}
	}
	return n
}

func TestInteriorNeighbours(t *testing.T) {
	sq := mustDefaults(t, KindSquareGrid)
	if got := countLinks(sq.Cells[4]); got != 4 {
		t.Errorf("square grid center has %d neighbours, want 4", got)
	}
	hex := mustDefaults(t, KindHexGrid)
	if got := countLinks(hex.Cells[4]); got != 6 {
		t.Errorf("hex grid center has %d neighbours, want 6", got)
	}
	mal := mustDefaults(t, KindMalculmiusOne)
	if got := countLinks(mal.Cells[0]); got != 10 {
		t.Errorf("malculmius core has %d neighbours, want 10", got)
	}
	tri := mustDefaults(t, KindTriangleGrid)
	full := 0
	for _, c := range tri.Cells {
		if countLinks(c) == 3 {
			full++
		}
	}
	if full == 0 {
		t.Error("triangle grid has no interior triangle")
	}
}

func TestSilhouette(t *testing.T) {
	sq := mustDefaults(t, KindSquareGrid)
	loops := sq.Boundary()
	if len(loops) != 1 {
		t.Fatalf("square grid: got %d boundary loops, want 1", len(loops))
	}
	sil := sq.Silhouette()
	if len(sil) != 12 {
		t.Errorf("square grid silhouette has %d vertices, want 12", len(sil))
	}
	if a := sil.SignedArea(); math.Abs(a-3600) > 1e-9 {
		t.Errorf("square grid silhouette area %v, want 3600", a)
	}
	mal := mustDefaults(t, KindMalculmiusOne)
	if got := len(mal.Silhouette()); got != 10 {
		t.Errorf("malculmius silhouette has %d vertices, want 10", got)
	}
	bb := sq.Bounds()
	if bb.Min.X != -30 || bb.Max.Y != 30 {
		t.Errorf("square grid bounds %+v not centered", bb)
	}
}

func TestBuildErrors(t *testing.T) {
	for _, test := range []struct {
		spec Spec
		want error
	}{
		{Spec{Kind: Kind(42)}, ErrUnknownKind},
		{Spec{Kind: KindSquare}, ErrDegenerate},
		{Spec{Kind: KindSquare, Square: &Square{}}, ErrDegenerate},
		{Spec{Kind: KindHexGrid, Grid: &Grid{Size: 10}}, ErrDegenerate},
		{Spec{Kind: KindCylinder, Cylinder: &Cylinder{Radius0: 10, Segments: 2}}, ErrDegenerate},
		{Spec{Kind: KindCylinder, Cylinder: &Cylinder{Segments: 5}}, ErrDegenerate},
		{Spec{Kind: KindMalculmiusOne, MalculmiusOne: &MalculmiusOne{CircleRadius: 4, CircleDivisions: 5, AngleSplit: 0.5, InnerRadius: 5}}, ErrDegenerate},
	} {
		_, err := Build(test.spec)
		if !errors.Is(err, test.want) {
			t.Errorf("%v: got error %v, want %v", test.spec.Kind, err, test.want)
		}
	}
	if _, err := Defaults(Kind(-1)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Defaults(-1): got %v", err)
	}
}

func TestMiddleRadiusClamped(t *testing.T) {
	m := MalculmiusOne{CircleRadius: 35, InnerRadius: 5, OffsetA: 20, OffsetB: -20}
	if got := m.MiddleRadius(true); got != 32 {
		t.Errorf("division station radius %v, want 32", got)
	}
	if got := m.MiddleRadius(false); got != 8 {
		t.Errorf("split station radius %v, want 8", got)
	}
}

func TestParseKind(t *testing.T) {
	for k := KindSquare; k <= KindMalculmiusOne; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("Dodecahedron"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("got %v, want ErrUnknownKind", err)
	}
}
