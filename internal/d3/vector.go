package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector helpers. gonum's r3 package covers the algebra, these cover the
// element-wise and tolerance comparisons it leaves out.

func Elem(side float64) r3.Vec {
	return r3.Vec{X: side, Y: side, Z: side}
}

func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

func Max(a r3.Vec) float64 {
	return math.Max(a.Z, math.Max(a.X, a.Y))
}

// FromR2 lifts a planar point to elevation z.
func FromR2(v r2.Vec, z float64) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: z}
}

// Key is a position snapped to an integer lattice of spacing tol. Points
// closer than tol share a key or have neighbouring keys.
type Key [3]int64

// Quantize returns the lattice key of v for tolerance tol.
func Quantize(v r3.Vec, tol float64) Key {
	if tol <= 0 {
		panic("quantize tolerance must be positive")
	}
	return Key{
		int64(math.Round(v.X / tol)),
		int64(math.Round(v.Y / tol)),
		int64(math.Round(v.Z / tol)),
	}
}

// Weld hands out point indices, reusing the index of the nearest earlier
// point within Tol.
type Weld struct {
	Tol    float64
	Points []r3.Vec
	cells  map[Key][]int
}

// Add returns the index of p, appending it to Points if no earlier point
// lies within Tol.
func (w *Weld) Add(p r3.Vec) int {
	if w.cells == nil {
		w.cells = make(map[Key][]int)
	}
	k := Quantize(p, w.Tol)
	best, bestDist := -1, w.Tol
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, i := range w.cells[Key{k[0] + dx, k[1] + dy, k[2] + dz}] {
					if d := r3.Norm(r3.Sub(w.Points[i], p)); d <= bestDist {
						best, bestDist = i, d
					}
				}
			}
		}
	}
	if best >= 0 {
		return best
	}
	i := len(w.Points)
	w.Points = append(w.Points, p)
	w.cells[k] = append(w.cells[k], i)
	return i
}
