package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// R2 helpers shared by the footprint and field packages.

func Elem(side float64) r2.Vec {
	return r2.Vec{X: side, Y: side}
}

func EqualWithin(a, b r2.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r2.Vec) r2.Vec {
	return r2.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// Lerp interpolates linearly from a to b, t = [0,1].
func Lerp(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}

// Set is an ordered collection of 2d points, usually a polygon loop.
type Set []r2.Vec

// PolarToXY converts polar to cartesian coordinates.
func PolarToXY(r, theta float64) r2.Vec {
	return r2.Vec{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// Key is a position snapped to an integer lattice of spacing tol. Points
// closer than tol share a key or have neighbouring keys.
type Key [2]int64

// Quantize returns the lattice key of v for tolerance tol.
func Quantize(v r2.Vec, tol float64) Key {
	if tol <= 0 {
		panic("quantize tolerance must be positive")
	}
	return Key{int64(math.Round(v.X / tol)), int64(math.Round(v.Y / tol))}
}

// Weld hands out point indices, reusing the index of the nearest earlier
// point within Tol.
type Weld struct {
	Tol    float64
	Points []r2.Vec
	cells  map[Key][]int
}

// Add returns the index of p, appending it to Points if no earlier point
// lies within Tol.
func (w *Weld) Add(p r2.Vec) int {
	if w.cells == nil {
		w.cells = make(map[Key][]int)
	}
	k := Quantize(p, w.Tol)
	best, bestDist := -1, w.Tol
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, i := range w.cells[Key{k[0] + dx, k[1] + dy}] {
				if d := r2.Norm(r2.Sub(w.Points[i], p)); d <= bestDist {
					best, bestDist = i, d
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
