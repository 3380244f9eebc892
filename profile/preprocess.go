package profile

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// PreProcessing deforms each elevation level of the footprint before voxels
// are built. Twist rotates a level about the Z axis by degrees and Warp
// scales it along X. An absolute method is sampled at elevation·0.001, any
// other at the level's fraction of the stack.
type PreProcessing struct {
	Twist         Method `yaml:"twist"`
	TwistAbsolute bool   `yaml:"twistAbsolute,omitempty"`
	Warp          Method `yaml:"warp"`
	WarpAbsolute  bool   `yaml:"warpAbsolute,omitempty"`
}

// IsZero reports whether p leaves every level in place.
func (p PreProcessing) IsZero() bool {
	return p.Twist.Kind == None && p.Warp.Kind == None
}

// Levels returns one plan transform per elevation. The lowest level is never
// rotated. A warp that is not positive and finite returns ErrDegenerate.
func (p PreProcessing) Levels(elevations []float64) ([]func(r2.Vec) r2.Vec, error) {
	twist, err := Func(p.Twist, 0)
	if err != nil {
		return nil, err
	}
	warp, err := Func(p.Warp, 1)
	if err != nil {
		return nil, err
	}
	n := len(elevations)
	param := func(absolute bool, j int) float64 {
		switch {
		case absolute:
			return elevations[j] * zScale
		case n < 2:
			return 0
		}
		return float64(j) / float64(n-1)
	}
	fns := make([]func(r2.Vec) r2.Vec, n)
	var theta0 float64
	for j := range elevations {
		theta := twist(param(p.TwistAbsolute, j)) * math.Pi / 180
		if j == 0 {
			theta0 = theta
		}
		k := warp(param(p.WarpAbsolute, j))
		if !(k > 0) || math.IsInf(k, 0) {
			return nil, fmt.Errorf("%w: warp %v at level %d", ErrDegenerate, k, j)
		}
		sin, cos := math.Sincos(theta - theta0)
		fns[j] = func(v r2.Vec) r2.Vec {
			x := v.X * k
			return r2.Vec{X: x*cos - v.Y*sin, Y: x*sin + v.Y*cos}
		}
	}
	return fns, nil
}
