package profile

import (
	"errors"
	"fmt"
	"math"
)

// MethodKind is the closed set of processing method categories.
type MethodKind int

const (
	None MethodKind = iota
	Incremental
	Sin
)

var (
	// ErrUnknownMethod is returned when a processing method category has no
	// matching implementation.
	ErrUnknownMethod = errors.New("unknown processing method")
	// ErrDegenerate is returned for inputs that produce no usable elevations.
	ErrDegenerate = errors.New("degenerate height profile")
)

func (k MethodKind) String() string {
	switch k {
	case None:
		return "None"
	case Incremental:
		return "Incremental"
	case Sin:
		return "Sin"
	}
	return fmt.Sprintf("MethodKind(%d)", int(k))
}

// ParseMethodKind parses the textual form returned by MethodKind.String.
func ParseMethodKind(s string) (MethodKind, error) {
	switch s {
	case "None":
		return None, nil
	case "Incremental", "IncrementalMethod":
		return Incremental, nil
	case "Sin":
		return Sin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MethodKind) UnmarshalText(b []byte) error {
	kind, err := ParseMethodKind(string(b))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k MethodKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Method is a processing method. Kind selects which of the remaining fields
// are meaningful:
//  Incremental: Angle, Total (Total == 0 means absent)
//  Sin:         Min, Max, Period, PhaseShift (degrees)
type Method struct {
	Kind       MethodKind `yaml:"kind"`
	Angle      float64    `yaml:"angle,omitempty"`
	Total      float64    `yaml:"total,omitempty"`
	Min        float64    `yaml:"min,omitempty"`
	Max        float64    `yaml:"max,omitempty"`
	Period     float64    `yaml:"period,omitempty"`
	PhaseShift float64    `yaml:"phaseShift,omitempty"`
}

// NoneMethod returns the constant method.
func NoneMethod() Method { return Method{Kind: None} }

// IncrementalMethod returns a linearly growing method. Pass total = 0 to omit it.
func IncrementalMethod(angle, total float64) Method {
	return Method{Kind: Incremental, Angle: angle, Total: total}
}

// SinMethod returns a sinusoidal method oscillating between min and max.
func SinMethod(min, max, period, phaseShift float64) Method {
	return Method{Kind: Sin, Min: min, Max: max, Period: period, PhaseShift: phaseShift}
}

// MethodFunc maps an angle-like parameter to a scalar.
type MethodFunc func(angle float64) float64

// Constant returns a MethodFunc that ignores its argument.
func Constant(v float64) MethodFunc {
	return func(float64) float64 { return v }
}

// Func returns the MethodFunc for m. None methods evaluate to none, which lets
// callers pick the neutral element of whatever they drive (0 for a twist
// angle, 1 for a scale).
func Func(m Method, none float64) (MethodFunc, error) {
	switch m.Kind {
	case None:
		return Constant(none), nil
	case Incremental:
		return incrementalFunc(m), nil
	case Sin:
		return sinFunc(m), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, m.Kind)
}

func incrementalFunc(m Method) MethodFunc {
	if m.Total != 0 {
		k := m.Angle * m.Total
		return func(angle float64) float64 { return 1 + angle*k }
	}
	return func(angle float64) float64 { return 1 + angle*m.Angle }
}

func sinFunc(m Method) MethodFunc {
	phase := m.PhaseShift * math.Pi / 180
	return func(angle float64) float64 {
		return m.Min + (m.Max-m.Min)*(0.5+0.5*math.Sin(m.Period*angle+phase))
	}
}
