package d3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxInclude(t *testing.T) {
	b := EmptyBox()
	for _, v := range []r3.Vec{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 2, Z: 0}, {X: 0, Y: 0, Z: 5}} {
		b = b.Include(v)
	}
	if !EqualWithin(b.Min, r3.Vec{X: -1, Y: -2, Z: 0}, 0) || !EqualWithin(b.Max, r3.Vec{X: 1, Y: 2, Z: 5}, 0) {
		t.Fatalf("got box %v", b)
	}
	if c := b.Center(); !EqualWithin(c, r3.Vec{Z: 2.5}, 1e-12) {
		t.Errorf("center got %v", c)
	}
	if !b.Contains(r3.Vec{X: 1, Y: 2, Z: 5}) {
		t.Error("box should contain its corner")
	}
	if b.Contains(r3.Vec{Z: 5.1}) {
		t.Error("box should not contain a point above it")
	}
}

func TestQuantize(t *testing.T) {
	const tol = 1e-6
	a := Quantize(r3.Vec{X: 1, Y: 2, Z: 3}, tol)
	if a != Quantize(r3.Vec{X: 1 + tol/10, Y: 2, Z: 3 - tol/10}, tol) {
		t.Error("nearby points did not share a key")
	}
	if Max(r3.Vec{X: 1, Y: 4, Z: 2}) != 4 {
		t.Error("Max")
	}
}

func TestWeldAcrossLatticeBoundary(t *testing.T) {
	w := Weld{Tol: 1e-3}
	// Both points are within Tol of each other but round to different keys.
	a := w.Add(r3.Vec{X: 0.4999e-3, Y: 1, Z: 2})
	b := w.Add(r3.Vec{X: 0.5001e-3, Y: 1, Z: 2})
	if a != b {
		t.Errorf("points 2e-7 apart got indices %d and %d", a, b)
	}
	if Quantize(w.Points[a], w.Tol) == Quantize(r3.Vec{X: 0.5001e-3, Y: 1, Z: 2}, w.Tol) {
		t.Fatal("test points share a lattice key")
	}
	if c := w.Add(r3.Vec{X: 2e-3, Y: 1, Z: 2}); c == a {
		t.Error("point 1.5e-3 away merged")
	}
	// The nearest candidate wins.
	near := w.Add(r3.Vec{X: 1.9e-3, Y: 1, Z: 2})
	if near != 1 || len(w.Points) != 2 {
		t.Errorf("got index %d with %d points", near, len(w.Points))
	}
}
