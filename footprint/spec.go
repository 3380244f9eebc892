package footprint

import (
	"fmt"
	"strings"
)

// Kind enumerates the footprint categories.
type Kind int

const (
	KindSquare Kind = iota
	KindSquareGrid
	KindTriangleGrid
	KindHexGrid
	KindCylinder
	KindMalculmiusOne
)

var kindNames = [...]string{
	KindSquare:        "Square",
	KindSquareGrid:    "SquareGrid",
	KindTriangleGrid:  "TriangleGrid",
	KindHexGrid:       "HexGrid",
	KindCylinder:      "Cylinder",
	KindMalculmiusOne: "MalculmiusOne",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind named s, ignoring case.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k *Kind) UnmarshalText(b []byte) (err error) {
	*k, err = ParseKind(string(b))
	return err
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Square is a single square cell of side Size.
type Square struct {
	Size float64 `yaml:"size"`
}

// Grid parameterizes the square, triangle and hex grids. Size is the cell
// width, YCount of zero means YCount equals XCount. ShellThickness is the
// number of cell layers along the outline that are built massive. The buffers
// are distances kept empty around the center and inside the outline.
type Grid struct {
	Size           float64 `yaml:"size"`
	XCount         int     `yaml:"xCount"`
	YCount         int     `yaml:"yCount"`
	ShellThickness int     `yaml:"shellThickness"`
	BufferInside   float64 `yaml:"bufferInside"`
	BufferOutside  float64 `yaml:"bufferOutside"`
}

func (g Grid) counts() (nx, ny int) {
	nx, ny = g.XCount, g.YCount
	if ny == 0 {
		ny = nx
	}
	return nx, ny
}

// Cylinder is a set of concentric rings of Segments quads. Ring widths are
// given from the inside out; rings of zero width are skipped.
type Cylinder struct {
	BufferInside  float64 `yaml:"bufferInside"`
	Radius0       float64 `yaml:"radius0"`
	Radius1       float64 `yaml:"radius1"`
	Radius2       float64 `yaml:"radius2"`
	BufferOutside float64 `yaml:"bufferOutside"`
	Segments      int     `yaml:"segments"`
}

// Radii returns the strictly increasing ring radii.
func (c Cylinder) Radii() []float64 {
	var radii []float64
	r := 0.0
	for _, w := range []float64{c.BufferInside, c.Radius0, c.Radius1, c.Radius2, c.BufferOutside} {
		r += w
		if w > 0 {
			radii = append(radii, r)
		}
	}
	return radii
}

// MalculmiusOne is a polar subdivision with CircleDivisions sectors, each
// split at AngleSplit. The middle ring is pushed out by OffsetA on division
// stations and by OffsetB on split stations.
type MalculmiusOne struct {
	CircleRadius    float64 `yaml:"circleRadius"`
	CircleDivisions int     `yaml:"circleDivisions"`
	AngleSplit      float64 `yaml:"angleSplit"`
	OffsetA         float64 `yaml:"offsetA"`
	OffsetB         float64 `yaml:"offsetB"`
	InnerRadius     float64 `yaml:"innerRadius"`
}

// Spec selects a footprint kind. Only the record matching Kind is read; the
// grid kinds share Grid.
type Spec struct {
	Kind          Kind
	Square        *Square
	Grid          *Grid
	Cylinder      *Cylinder
	MalculmiusOne *MalculmiusOne
}

// Defaults returns a Spec for k populated with the stock parameters.
func Defaults(k Kind) (Spec, error) {
	s := Spec{Kind: k}
	switch k {
	case KindSquare:
		s.Square = &Square{Size: 50}
	case KindSquareGrid, KindTriangleGrid, KindHexGrid:
		s.Grid = &Grid{Size: 20, XCount: 3, BufferInside: 2, BufferOutside: 2}
	case KindCylinder:
		s.Cylinder = &Cylinder{BufferInside: 2, Radius0: 12, Radius1: 12, Radius2: 12, BufferOutside: 2, Segments: 5}
	case KindMalculmiusOne:
		s.MalculmiusOne = &MalculmiusOne{CircleRadius: 35, CircleDivisions: 5, AngleSplit: 0.5, InnerRadius: 5}
	default:
		return Spec{}, fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
	return s, nil
}

// Build generates the footprint described by s.
func Build(s Spec) (*Footprint, error) {
	switch s.Kind {
	case KindSquare:
		if s.Square == nil {
			return nil, missing(s.Kind)
		}
		return square(*s.Square)
	case KindSquareGrid:
		if s.Grid == nil {
			return nil, missing(s.Kind)
		}
		return squareGrid(*s.Grid)
	case KindTriangleGrid:
		if s.Grid == nil {
			return nil, missing(s.Kind)
		}
		return triangleGrid(*s.Grid)
	case KindHexGrid:
		if s.Grid == nil {
			return nil, missing(s.Kind)
		}
		return hexGrid(*s.Grid)
	case KindCylinder:
		if s.Cylinder == nil {
			return nil, missing(s.Kind)
		}
		return cylinder(*s.Cylinder)
	case KindMalculmiusOne:
		if s.MalculmiusOne == nil {
			return nil, missing(s.Kind)
		}
		return malculmiusOne(*s.MalculmiusOne)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, s.Kind)
}

func missing(k Kind) error {
	return fmt.Errorf("%w: %v spec has no parameters", ErrDegenerate, k)
}
