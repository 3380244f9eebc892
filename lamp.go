// Package lamp generates parametric lamp geometry. A lamp is a stack of
// stories over a planar footprint; every footprint cell in every story is a
// voxel that is absent, open or massive. Build turns a parameter set into
// one of several geometric outputs of that voxel complex.
package lamp

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/JonasWard/para-slim-shady/extrusion"
	"github.com/JonasWard/para-slim-shady/footprint"
	"github.com/JonasWard/para-slim-shady/profile"
	"github.com/JonasWard/para-slim-shady/voxel"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrUnknownRenderMethod is returned for render method tokens Build does
	// not know.
	ErrUnknownRenderMethod = errors.New("unknown render method")
	// ErrInvalidBase is returned for a base with no height or a negative
	// inner radius.
	ErrInvalidBase = errors.New("invalid lamp base")
)

// RenderMethod selects the output of Build.
type RenderMethod string

const (
	// Normal assembles a solid mesh voxel by voxel.
	Normal RenderMethod = "Normal"
	// Wireframe is Normal flagged for drawing edges only.
	Wireframe RenderMethod = "Wireframe"
	// Enclosure extracts the boundary surface as a half-edge mesh.
	Enclosure RenderMethod = "Enclosure"
	// HalfEdgesEnclosure returns every half-edge of the enclosure as a segment.
	HalfEdgesEnclosure RenderMethod = "HalfEdgesEnclosure"
	// Neighbourmap returns the voxel adjacency graph without classifying.
	Neighbourmap RenderMethod = "Neighbourmap"
)

// RenderMethods lists every method in declaration order.
var RenderMethods = []RenderMethod{Normal, Wireframe, Enclosure, HalfEdgesEnclosure, Neighbourmap}

// ParseRenderMethod returns the method named s, ignoring case. The empty
// string selects Normal.
func ParseRenderMethod(s string) (RenderMethod, error) {
	if s == "" {
		return Normal, nil
	}
	for _, m := range RenderMethods {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRenderMethod, s)
}

func (m *RenderMethod) UnmarshalText(b []byte) (err error) {
	*m, err = ParseRenderMethod(string(b))
	return err
}

// Parameters fully describe a lamp. A nil PostProcessing leaves positions
// untouched and a nil PreProcessing leaves the footprint in place. A nil
// Base stands the first story on the ground. Field overrides the footprint's
// default classification field.
type Parameters struct {
	Footprint      footprint.Spec
	Extrusion      extrusion.Spec
	Heights        profile.HeightGenerator
	PreProcessing  *profile.PreProcessing
	PostProcessing *profile.PostProcessing
	Base           *Base
	Field          voxel.Field
}

// Base is a solid plinth story under the lamp. It fills the footprint
// silhouette except for a hole of SideInnerRadius around the axis.
type Base struct {
	SideHeight      float64 `yaml:"sideHeight"`
	SideInnerRadius float64 `yaml:"sideInnerRadius"`
}

func (b Base) validate() error {
	if !(b.SideHeight > 0) || math.IsInf(b.SideHeight, 0) || !(b.SideInnerRadius >= 0) {
		return fmt.Errorf("%w: height %v, inner radius %v", ErrInvalidBase, b.SideHeight, b.SideInnerRadius)
	}
	return nil
}

// raise lifts elevations onto the base and repeats the lowest level
// deformation, if any, for the ground.
func (b Base) raise(elevations []float64, levels []func(r2.Vec) r2.Vec) ([]float64, []func(r2.Vec) r2.Vec) {
	raised := make([]float64, 1, len(elevations)+1)
	for _, z := range elevations {
		raised = append(raised, z+b.SideHeight)
	}
	if levels != nil {
		levels = append(levels[:1:1], levels...)
	}
	return raised, levels
}
