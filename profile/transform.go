package profile

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// zScale converts elevations into the angle parameter fed to twist and skew
// methods.
const zScale = 0.001

// V3 is a plain 3-tuple for callers that do not use r3.Vec.
type V3 [3]float64

// TwistAndSkew rotates v about the Z axis by twist(z·0.001) radians and scales
// its distance to the axis by 0.5 + 0.5·skew(z·0.001). Z is unchanged.
func TwistAndSkew(v r3.Vec, twist, skew MethodFunc) r3.Vec {
	x, y := twistAndSkew(v.X, v.Y, v.Z, twist, skew)
	return r3.Vec{X: x, Y: y, Z: v.Z}
}

// TwistAndSkewV3 is TwistAndSkew for V3.
func TwistAndSkewV3(v V3, twist, skew MethodFunc) V3 {
	x, y := twistAndSkew(v[0], v[1], v[2], twist, skew)
	return V3{x, y, v[2]}
}

func twistAndSkew(x, y, z float64, twist, skew MethodFunc) (float64, float64) {
	angle := twist(z * zScale)
	k := 0.5 + 0.5*skew(z*zScale)
	sin, cos := math.Sincos(angle)
	cos *= k
	sin *= k
	return x*cos - y*sin, x*sin + y*cos
}

// PostProcessing holds the twist and skew recipes applied to finished vertices.
type PostProcessing struct {
	Twist Method `yaml:"twist"`
	Skew  Method `yaml:"skew"`
}

// Transform returns the vertex transform for p. A None twist does not rotate
// and a None skew does not scale.
func (p PostProcessing) Transform() (func(r3.Vec) r3.Vec, error) {
	twist, err := Func(p.Twist, 0)
	if err != nil {
		return nil, err
	}
	skew, err := Func(p.Skew, 1)
	if err != nil {
		return nil, err
	}
	return func(v r3.Vec) r3.Vec {
		return TwistAndSkew(v, twist, skew)
	}, nil
}
