package profile

import (
	"fmt"
	"math"
)

// GeneratorKind discriminates absolute from relative height generators.
type GeneratorKind int

const (
	// Absolute generators stack stories of a given base height.
	Absolute GeneratorKind = iota
	// Relative generators are rescaled to hit a total height.
	Relative
)

func (k GeneratorKind) String() string {
	switch k {
	case Absolute:
		return "Absolute"
	case Relative:
		return "Relative"
	}
	return fmt.Sprintf("GeneratorKind(%d)", int(k))
}

// ParseGeneratorKind parses the textual form returned by GeneratorKind.String.
func ParseGeneratorKind(s string) (GeneratorKind, error) {
	switch s {
	case "Absolute":
		return Absolute, nil
	case "Relative":
		return Relative, nil
	}
	return 0, fmt.Errorf("unknown height generator kind %q", s)
}

func (k *GeneratorKind) UnmarshalText(b []byte) (err error) {
	*k, err = ParseGeneratorKind(string(b))
	return err
}

func (k GeneratorKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// HeightGenerator is the recipe for story elevations. BaseHeight is read for
// Absolute generators, TotalHeight for Relative ones.
type HeightGenerator struct {
	Kind        GeneratorKind `yaml:"kind"`
	StoryCount  int           `yaml:"storyCount"`
	BaseHeight  float64       `yaml:"baseHeight,omitempty"`
	TotalHeight float64       `yaml:"totalHeight,omitempty"`
	Method      Method        `yaml:"method"`
}

// NewAbsolute returns an absolute height generator.
func NewAbsolute(storyCount int, baseHeight float64, m Method) HeightGenerator {
	return HeightGenerator{Kind: Absolute, StoryCount: storyCount, BaseHeight: baseHeight, Method: m}
}

// NewRelative returns a relative height generator.
func NewRelative(storyCount int, totalHeight float64, m Method) HeightGenerator {
	return HeightGenerator{Kind: Relative, StoryCount: storyCount, TotalHeight: totalHeight, Method: m}
}

// Heights returns StoryCount+1 cumulative elevations starting at 0.
//
// A zero story count yields [0]. A relative generator whose unscaled stack
// sums to zero cannot be rescaled and returns ErrDegenerate.
func Heights(g HeightGenerator) ([]float64, error) {
	if g.StoryCount < 0 {
		return nil, fmt.Errorf("%w: story count %d", ErrDegenerate, g.StoryCount)
	}
	var base float64
	switch g.Kind {
	case Absolute:
		base = g.BaseHeight
	case Relative:
		base = 1
	default:
		return nil, fmt.Errorf("unknown height generator kind %v", g.Kind)
	}
	stories, err := storyHeights(g.Method, g.StoryCount, base)
	if err != nil {
		return nil, err
	}
	elevations := make([]float64, 1, len(stories)+1)
	var z float64
	for _, h := range stories {
		z += h
		elevations = append(elevations, z)
	}
	if g.Kind == Absolute || g.StoryCount == 0 {
		return elevations, nil
	}
	if z == 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return nil, fmt.Errorf("%w: cannot rescale unscaled height %g to %g", ErrDegenerate, z, g.TotalHeight)
	}
	scale := g.TotalHeight / z
	for i := range elevations {
		elevations[i] *= scale
	}
	// Pin the top so it is exact regardless of rounding in the product.
	elevations[len(elevations)-1] = g.TotalHeight
	return elevations, nil
}

func storyHeights(m Method, n int, base float64) ([]float64, error) {
	heights := make([]float64, n)
	switch m.Kind {
	case None:
		for i := range heights {
			heights[i] = base
		}
	case Incremental:
		f := incrementalFunc(m)
		for i := range heights {
			heights[i] = f(float64(i)) + base
		}
	case Sin:
		f := sinFunc(m)
		for i := range heights {
			heights[i] = f(float64(i)) * base
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, m.Kind)
	}
	return heights, nil
}
