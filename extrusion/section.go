package extrusion

import (
	"math"
	"slices"

	"github.com/JonasWard/para-slim-shady/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Section is the solid an open voxel keeps: its insets and a width profile.
// Profile points run from Y = 0 to Y = 1; X is the fraction of the inset cell
// kept at height fraction Y. An empty profile keeps the whole inset cell.
type Section struct {
	Insets  Insets
	Profile []r2.Vec
}

// Section returns the cross-section of s with n segments per arch curve.
// Widths are read from the unit Outline. Nested profiles sum the widths of
// their divisions and leave out the outer arch.
func (s Spec) Section(n int) (Section, error) {
	ins, err := s.Insets()
	if err != nil {
		return Section{}, err
	}
	loops, err := Outline(s, 1, 1, n)
	if err != nil {
		return Section{}, err
	}
	if s.Kind == KindNested {
		loops = loops[1:]
	}
	ys := []float64{0}
	for _, loop := range loops {
		for _, p := range loop {
			ys = append(ys, p.Y)
		}
	}
	slices.Sort(ys)
	top := ys[len(ys)-1]
	profile := make([]r2.Vec, 0, len(ys))
	for i, y := range ys {
		if i > 0 && y-ys[i-1] < 1e-9*top {
			continue
		}
		var w float64
		for _, loop := range loops {
			w += chord(loop, y)
		}
		profile = append(profile, r2.Vec{X: w, Y: y / top})
	}
	return Section{Insets: ins, Profile: profile}, nil
}

// chord returns the width of convex loop at height y.
func chord(loop d2.Set, y float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, a := range loop {
		b := loop[(i+1)%len(loop)]
		if y < math.Min(a.Y, b.Y) || y > math.Max(a.Y, b.Y) {
			continue
		}
		xs := []float64{a.X, b.X}
		if a.Y != b.Y {
			x := a.X + (y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			xs = []float64{x, x}
		}
		lo, hi = math.Min(lo, math.Min(xs[0], xs[1])), math.Max(hi, math.Max(xs[0], xs[1]))
	}
	if hi < lo {
		return 0
	}
	return hi - lo
}
