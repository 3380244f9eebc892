package extrusion

import (
	"fmt"
	"math"

	"github.com/JonasWard/para-slim-shady/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Outline returns the opening of s inside a w by h wall, as counter-clockwise
// loops with the wall's bottom center at the origin. Arches use n segments
// per curve. Nested profiles return the outer arch followed by one loop per
// division.
func Outline(s Spec, w, h float64, n int) ([]d2.Set, error) {
	if !(w > 0 && h > 0) || n < 1 {
		return nil, fmt.Errorf("extrusion outline %vx%v with %d segments", w, h, n)
	}
	switch s.Kind {
	case KindSquare:
		return []d2.Set{{{X: -w / 2}, {X: w / 2}, {X: w / 2, Y: h}, {X: -w / 2, Y: h}}}, nil
	case KindArc:
		return []d2.Set{opening(segmentArch(w, s.RadiusTop*w/2, n), w, h)}, nil
	case KindEllipse:
		return []d2.Set{opening(ellipseArch(w, s.RadiusTop*w, n), w, h)}, nil
	case KindGothic:
		return []d2.Set{opening(pointedArch(w, s.Pointedness, n), w, h)}, nil
	case KindNested:
		loops := []d2.Set{opening(pointedArch(w, s.Pointedness, n), w, h)}
		count := s.DivisionCount + 1
		res := n * max(s.DivisionResolution, 1)
		dw := w / float64(count)
		// Divisions stand on the bottom and stop below the outer spring line.
		dh := h - w/2*math.Sqrt(1+2*s.Pointedness)
		if dh <= 0 {
			dh = h / 2
		}
		for i := 0; i < count; i++ {
			div := opening(pointedArch(dw*0.8, s.DivisionPointedness, res), dw*0.8, dh)
			cx := -w/2 + dw*(float64(i)+0.5)
			for j := range div {
				div[j].X += cx
			}
			loops = append(loops, div)
		}
		return loops, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, s.Kind)
}

// opening stands an arch on two vertical jambs so its apex touches h. Arches
// taller than h are squashed to fit.
func opening(arch d2.Set, w, h float64) d2.Set {
	rise := 0.0
	for _, p := range arch {
		rise = math.Max(rise, p.Y)
	}
	spring := h - rise
	if spring <= 0 {
		scale := h / rise
		for i := range arch {
			arch[i].Y *= scale
		}
		spring = 0
	}
	poly := d2.Set{{X: -w / 2}, {X: w / 2}}
	if spring > 0 {
		poly = append(poly, r2.Vec{X: w / 2, Y: spring})
	}
	for _, p := range arch[1 : len(arch)-1] {
		poly = append(poly, r2.Vec{X: p.X, Y: p.Y + spring})
	}
	if spring > 0 {
		poly = append(poly, r2.Vec{X: -w / 2, Y: spring})
	}
	return poly
}

// segmentArch is a circular segment over chord w with the given rise,
// running from (w/2, 0) to (-w/2, 0).
func segmentArch(w, rise float64, n int) d2.Set {
	rise = math.Min(math.Max(rise, 1e-3*w), w/2)
	radius := (w*w/4 + rise*rise) / (2 * rise)
	cy := rise - radius
	a0 := math.Atan2(-cy, w/2)
	arch := make(d2.Set, n+1)
	for i := range arch {
		t := a0 + (math.Pi-2*a0)*float64(i)/float64(n)
		arch[i] = r2.Vec{X: radius * math.Cos(t), Y: cy + radius*math.Sin(t)}
	}
	arch[0], arch[n] = r2.Vec{X: w / 2}, r2.Vec{X: -w / 2}
	return arch
}

// ellipseArch is half an ellipse with horizontal semi-axis w/2.
func ellipseArch(w, rise float64, n int) d2.Set {
	arch := make(d2.Set, n+1)
	for i := range arch {
		t := math.Pi * float64(i) / float64(n)
		arch[i] = r2.Vec{X: w / 2 * math.Cos(t), Y: rise * math.Sin(t)}
	}
	arch[0], arch[n] = r2.Vec{X: w / 2}, r2.Vec{X: -w / 2}
	return arch
}

// pointedArch is two circular arcs meeting at an apex over x = 0. Pointedness
// 0 gives a semicircle and 1 an equilateral arch. The result has 2n+1 points.
func pointedArch(w, p float64, n int) d2.Set {
	p = math.Min(math.Max(p, 0), 1)
	d := p * w / 2
	radius := w/2 + d
	apex := math.Acos(d / radius)
	arch := make(d2.Set, 0, 2*n+1)
	for i := 0; i <= n; i++ {
		t := apex * float64(i) / float64(n)
		arch = append(arch, r2.Vec{X: -d + radius*math.Cos(t), Y: radius * math.Sin(t)})
	}
	for i := n - 1; i >= 0; i-- {
		q := arch[i]
		arch = append(arch, r2.Vec{X: -q.X, Y: q.Y})
	}
	return arch
}
