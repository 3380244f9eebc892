package d2

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// SignedArea returns the shoelace area of a closed polygon.
// Counter-clockwise loops have positive area.
func (a Set) SignedArea() float64 {
	var sum float64
	for i := range a {
		p, q := a[i], a[(i+1)%len(a)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Centroid returns the area centroid of a simple polygon. Degenerate polygons
// fall back to the vertex average.
func (a Set) Centroid() r2.Vec {
	area := a.SignedArea()
	if len(a) < 3 || area == 0 {
		var sum r2.Vec
		for _, v := range a {
			sum = r2.Add(sum, v)
		}
		return r2.Scale(1/float64(len(a)), sum)
	}
	var c r2.Vec
	for i := range a {
		p, q := a[i], a[(i+1)%len(a)]
		cross := p.X*q.Y - q.X*p.Y
		c = r2.Add(c, r2.Scale(cross, r2.Add(p, q)))
	}
	return r2.Scale(1/(6*area), c)
}

// ShrinkTowards moves every vertex a fraction t of the way towards c.
func (a Set) ShrinkTowards(c r2.Vec, t float64) Set {
	out := make(Set, len(a))
	for i, v := range a {
		out[i] = Lerp(v, c, t)
	}
	return out
}

// Reverse returns the polygon with its winding flipped.
func (a Set) Reverse() Set {
	out := make(Set, len(a))
	for i, v := range a {
		out[len(a)-1-i] = v
	}
	return out
}
