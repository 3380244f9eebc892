package render

import (
	"errors"

	"github.com/JonasWard/para-slim-shady/internal/d2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveProfilePlot plots story elevations against story index and saves the
// image at path. The format follows the path extension.
func SaveProfilePlot(path string, elevations []float64) error {
	if len(elevations) == 0 {
		return errors.New("no elevations to plot")
	}
	p := plot.New()
	p.Title.Text = "Story profile"
	p.X.Label.Text = "story"
	p.Y.Label.Text = "elevation"
	pts := make(plotter.XYs, len(elevations))
	for i, z := range elevations {
		pts[i].X = float64(i)
		pts[i].Y = z
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(line, points, plotter.NewGrid())
	return p.Save(4*vg.Inch, 4*vg.Inch, path)
}

// SaveOutlinePlot plots closed 2D loops, such as an extrusion opening or a
// footprint silhouette, with equal axis scales.
func SaveOutlinePlot(path, title string, loops []d2.Set) error {
	if len(loops) == 0 {
		return errors.New("no loops to plot")
	}
	p := plot.New()
	p.Title.Text = title
	bb := d2.EmptyBox()
	for _, loop := range loops {
		if len(loop) == 0 {
			continue
		}
		pts := make(plotter.XYs, 0, len(loop)+1)
		for _, v := range loop {
			pts = append(pts, plotter.XY{X: v.X, Y: v.Y})
			bb = bb.Include(v)
		}
		pts = append(pts, pts[0])
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		p.Add(line)
	}
	// Square the data ranges so the outline is not distorted.
	size := bb.Size()
	side := max(size.X, size.Y) / 2
	c := bb.Center()
	p.X.Min, p.X.Max = c.X-side, c.X+side
	p.Y.Min, p.Y.Max = c.Y-side, c.Y+side
	return p.Save(4*vg.Inch, 4*vg.Inch, path)
}
