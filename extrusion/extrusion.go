// Package extrusion describes the cross-section of the openings cut into
// each voxel wall and the insets that shrink a voxel into its solid.
package extrusion

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownKind is returned for an extrusion category with no profile.
	ErrUnknownKind = errors.New("unknown extrusion kind")
	// ErrInvalidInset is returned for insets outside [0, 0.5).
	ErrInvalidInset = errors.New("extrusion inset out of range")
)

// Kind enumerates the extrusion categories.
type Kind int

const (
	KindSquare Kind = iota
	KindArc
	KindEllipse
	KindGothic
	KindNested
)

var kindNames = [...]string{
	KindSquare:  "Square",
	KindArc:     "Arc",
	KindEllipse: "Ellipse",
	KindGothic:  "Gothic",
	KindNested:  "Nested",
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

// Insets are fractions: Top and Bottom of the story height, Sides of the
// distance from a cell's edge to its centroid.
type Insets struct {
	Top    float64 `yaml:"insetTop"`
	Bottom float64 `yaml:"insetBottom"`
	Sides  float64 `yaml:"insetSides"`
}

// Spec is an extrusion profile. Fields not used by Kind are ignored:
// RadiusTop applies to every arch, Pointedness to Gothic and Nested, and the
// Division fields to Nested only.
type Spec struct {
	Kind  Kind   `yaml:"kind"`
	Inset Insets `yaml:",inline"`

	RadiusTop           float64 `yaml:"radiusTop"`
	Pointedness         float64 `yaml:"pointedness"`
	DivisionPointedness float64 `yaml:"divisionPointedness"`
	DivisionCount       int     `yaml:"divisionCount"`
	DivisionResolution  int     `yaml:"divisionResolution"`
}

// Defaults returns the stock profile for k.
func Defaults(k Kind) (Spec, error) {
	s := Spec{Kind: k, Inset: Insets{Top: 0.25, Bottom: 0.25, Sides: 0.25}}
	switch k {
	case KindSquare:
	case KindArc, KindEllipse:
		s.RadiusTop = 0.35
	case KindGothic:
		s.RadiusTop = 0.35
		s.Pointedness = 0.25
	case KindNested:
		s.RadiusTop = 0.35
		s.Pointedness = 1
		s.DivisionPointedness = 1
		s.DivisionCount = 1
		s.DivisionResolution = 1
	default:
		return Spec{}, fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
	return s, nil
}

// Insets validates the spec's insets and returns them.
func (s Spec) Insets() (Insets, error) {
	if s.Kind < KindSquare || s.Kind > KindNested {
		return Insets{}, fmt.Errorf("%w: %v", ErrUnknownKind, s.Kind)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{{"top", s.Inset.Top}, {"bottom", s.Inset.Bottom}, {"sides", s.Inset.Sides}} {
		if !(v.val >= 0 && v.val < 0.5) {
			return Insets{}, fmt.Errorf("%w: %s inset %v", ErrInvalidInset, v.name, v.val)
		}
	}
	return s.Inset, nil
}
