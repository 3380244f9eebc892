package footprint

import (
	"fmt"
	"math"

	"github.com/JonasWard/para-slim-shady/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

func square(s Square) (*Footprint, error) {
	if !(s.Size > 0) {
		return nil, fmt.Errorf("%w: square size %v", ErrDegenerate, s.Size)
	}
	h := s.Size / 2
	b := newBuilder()
	b.addCell(d2.Set{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}})
	return b.finish()
}

func checkGrid(g Grid) error {
	nx, ny := g.counts()
	switch {
	case !(g.Size > 0):
		return fmt.Errorf("%w: grid size %v", ErrDegenerate, g.Size)
	case nx < 1 || ny < 1:
		return fmt.Errorf("%w: grid counts %dx%d", ErrDegenerate, nx, ny)
	}
	return nil
}

// squareGrid lays out nx by ny squares centered on the origin.
func squareGrid(g Grid) (*Footprint, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}
	nx, ny := g.counts()
	s := g.Size
	x0, y0 := -float64(nx)*s/2, -float64(ny)*s/2
	b := newBuilder()
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			x, y := x0+float64(i)*s, y0+float64(j)*s
			b.addCell(d2.Set{{X: x, Y: y}, {X: x + s, Y: y}, {X: x + s, Y: y + s}, {X: x, Y: y + s}})
		}
	}
	return b.finish()
}

// triangleGrid lays out equilateral triangles on a sheared lattice, two per
// lattice rhombus, centered on the origin.
func triangleGrid(g Grid) (*Footprint, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}
	nx, ny := g.counts()
	s := g.Size
	h := s * math.Sqrt(3) / 2
	at := func(i, j int) r2.Vec {
		return r2.Vec{X: float64(i)*s + float64(j)*s/2, Y: float64(j) * h}
	}
	var cells []d2.Set
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			cells = append(cells,
				d2.Set{at(i, j), at(i+1, j), at(i, j+1)},
				d2.Set{at(i+1, j), at(i+1, j+1), at(i, j+1)},
			)
		}
	}
	return centered(cells)
}

// hexGrid lays out pointy-top hexagons of width Size in offset rows.
func hexGrid(g Grid) (*Footprint, error) {
	if err := checkGrid(g); err != nil {
		return nil, err
	}
	nx, ny := g.counts()
	w := g.Size
	r := w / math.Sqrt(3)
	var cells []d2.Set
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			c := r2.Vec{X: float64(i) * w, Y: float64(j) * 1.5 * r}
			if j%2 == 1 {
				c.X += w / 2
			}
			hex := make(d2.Set, 6)
			for k := range hex {
				hex[k] = r2.Add(c, d2.PolarToXY(r, math.Pi/6+float64(k)*math.Pi/3))
			}
			cells = append(cells, hex)
		}
	}
	return centered(cells)
}

// centered builds a footprint from cells translated so their bounding box is
// centered on the origin.
func centered(cells []d2.Set) (*Footprint, error) {
	bb := d2.EmptyBox()
	for _, c := range cells {
		for _, v := range c {
			bb = bb.Include(v)
		}
	}
	off := bb.Center()
	b := newBuilder()
	for _, c := range cells {
		moved := make(d2.Set, len(c))
		for i, v := range c {
			moved[i] = r2.Sub(v, off)
		}
		b.addCell(moved)
	}
	return b.finish()
}
