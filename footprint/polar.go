package footprint

import (
	"fmt"
	"math"

	"github.com/JonasWard/para-slim-shady/internal/d2"
)

// ring returns n points at radius r for the given station angles.
func ring(r float64, angles []float64) d2.Set {
	pts := make(d2.Set, len(angles))
	for i, a := range angles {
		pts[i] = d2.PolarToXY(r, a)
	}
	return pts
}

// addBand adds one quad per station between two rings of equal length.
func (b *builder) addBand(inner, outer d2.Set) {
	n := len(inner)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		b.addCell(d2.Set{inner[i], outer[i], outer[j], inner[j]})
	}
}

// Polygon returns the ring of Segments points at radius r.
func (c Cylinder) Polygon(r float64) d2.Set {
	angles := make([]float64, c.Segments)
	for i := range angles {
		angles[i] = 2 * math.Pi * float64(i) / float64(c.Segments)
	}
	return ring(r, angles)
}

func cylinder(c Cylinder) (*Footprint, error) {
	if c.Segments < 3 {
		return nil, fmt.Errorf("%w: cylinder needs at least 3 segments, got %d", ErrDegenerate, c.Segments)
	}
	radii := c.Radii()
	if len(radii) == 0 {
		return nil, fmt.Errorf("%w: cylinder has no positive ring width", ErrDegenerate)
	}
	b := newBuilder()
	prev := c.Polygon(radii[0])
	b.addCell(prev)
	for _, r := range radii[1:] {
		next := c.Polygon(r)
		b.addBand(prev, next)
		prev = next
	}
	return b.finish()
}

// MiddleRadius returns the radius of the middle ring at a division (a true)
// or split station, kept strictly between the inner and outer rings.
func (m MalculmiusOne) MiddleRadius(a bool) float64 {
	off := m.OffsetB
	if a {
		off = m.OffsetA
	}
	span := m.CircleRadius - m.InnerRadius
	lo, hi := m.InnerRadius+0.1*span, m.CircleRadius-0.1*span
	return math.Max(lo, math.Min(hi, (m.InnerRadius+m.CircleRadius)/2+off))
}

func malculmiusOne(m MalculmiusOne) (*Footprint, error) {
	switch {
	case m.CircleDivisions < 2:
		return nil, fmt.Errorf("%w: malculmius needs at least 2 divisions, got %d", ErrDegenerate, m.CircleDivisions)
	case !(m.InnerRadius > 0) || !(m.CircleRadius > m.InnerRadius):
		return nil, fmt.Errorf("%w: malculmius radii inner %v outer %v", ErrDegenerate, m.InnerRadius, m.CircleRadius)
	case !(m.AngleSplit > 0 && m.AngleSplit < 1):
		return nil, fmt.Errorf("%w: malculmius angle split %v outside (0,1)", ErrDegenerate, m.AngleSplit)
	}
	inner, middle, outer := m.Rings()
	b := newBuilder()
	b.addCell(inner)
	b.addBand(inner, middle)
	b.addBand(middle, outer)
	return b.finish()
}

// Rings returns the inner, middle and outer rings, each with one point per
// division and split station.
func (m MalculmiusOne) Rings() (inner, middle, outer d2.Set) {
	n := m.CircleDivisions
	sector := 2 * math.Pi / float64(n)
	angles := make([]float64, 0, 2*n)
	for k := 0; k < n; k++ {
		a := sector * float64(k)
		angles = append(angles, a, a+m.AngleSplit*sector)
	}
	middle = make(d2.Set, len(angles))
	for i, a := range angles {
		middle[i] = d2.PolarToXY(m.MiddleRadius(i%2 == 0), a)
	}
	return ring(m.InnerRadius, angles), middle, ring(m.CircleRadius, angles)
}
