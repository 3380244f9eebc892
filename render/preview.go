package render

import (
	"errors"
	"math"

	"github.com/JonasWard/para-slim-shady/internal/d3"
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera of a preview. Positions are given in the
// bi-unit cube the geometry is fitted into.
type View struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
	// output size in pixels
	Width, Height int
	// draw triangle edges instead of filled triangles
	Wireframe bool
}

// DefaultView looks at the origin from the (3,3,3) corner, z up.
func DefaultView() View {
	return View{
		Up:     r3.Vec{Z: 1},
		Eye:    d3.Elem(3),
		Near:   1,
		Far:    10,
		Width:  960,
		Height: 720,
	}
}

const previewSupersample = 2

// SavePreview renders triangles and segments into a PNG at path.
func SavePreview(path string, model []Triangle3, segs []Segment3, view View) error {
	if len(model) == 0 && len(segs) == 0 {
		return errEmptyModel
	}
	if view.Width <= 0 || view.Height <= 0 {
		return errors.New("preview size must be positive")
	}
	fit := fitBiUnit(model, segs)
	tris := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		tris[i] = fauxgl.NewTriangleForPoints(fit(t.V[0]), fit(t.V[1]), fit(t.V[2]))
	}
	lines := make([]*fauxgl.Line, len(segs))
	for i, s := range segs {
		lines[i] = fauxgl.NewLineForPoints(fit(s[0]), fit(s[1]))
	}

	var (
		width, height = view.Width * previewSupersample, view.Height * previewSupersample
		eye           = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center        = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up            = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light         = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color         = fauxgl.HexColor("#468966")
	)
	const fovy = 30 // vertical field of view in degrees
	context := fauxgl.NewContext(width, height)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	if len(tris) > 0 {
		shader := fauxgl.NewPhongShader(matrix, light, eye)
		shader.ObjectColor = color
		context.Shader = shader
		context.Wireframe = view.Wireframe
		context.DrawMesh(fauxgl.NewTriangleMesh(tris))
	}
	if len(lines) > 0 {
		context.Shader = fauxgl.NewSolidColorShader(matrix, fauxgl.HexColor("#B64926"))
		context.LineWidth = previewSupersample
		context.DrawLines(lines)
	}
	// downsample image for antialiasing
	image := resize.Resize(uint(view.Width), uint(view.Height), context.Image(), resize.Bilinear)
	return fauxgl.SavePNG(path, image)
}

// fitBiUnit returns a mapping of the geometry's bounding box into the cube
// [-1,1]³, keeping proportions.
func fitBiUnit(model []Triangle3, segs []Segment3) func(r3.Vec) fauxgl.Vector {
	bb := d3.EmptyBox()
	for _, t := range model {
		bb = bb.Include(t.V[0]).Include(t.V[1]).Include(t.V[2])
	}
	for _, s := range segs {
		bb = bb.Include(s[0]).Include(s[1])
	}
	c := bb.Center()
	scale := 2 / math.Max(d3.Max(bb.Size()), 1e-12)
	return func(p r3.Vec) fauxgl.Vector {
		q := r3.Scale(scale, r3.Sub(p, c))
		return fauxgl.V(q.X, q.Y, q.Z)
	}
}
