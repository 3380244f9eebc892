package profile

import (
	"math"
	"testing"

	"github.com/JonasWard/para-slim-shady/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestTwistAndSkewIdentity(t *testing.T) {
	twist, skew := Constant(0), Constant(1)
	for _, v := range []r3.Vec{{}, {X: 1, Y: 2, Z: 3}, {X: -40, Y: 12.5, Z: 150}} {
		got := TwistAndSkew(v, twist, skew)
		if !d3.EqualWithin(got, v, 1e-12) {
			t.Errorf("identity transform moved %v to %v", v, got)
		}
		gotV3 := TwistAndSkewV3(V3{v.X, v.Y, v.Z}, twist, skew)
		if gotV3 != (V3{got.X, got.Y, got.Z}) {
			t.Errorf("V3 and r3 variants disagree: %v vs %v", gotV3, got)
		}
	}
}

func TestTwistAndSkew(t *testing.T) {
	got := TwistAndSkew(r3.Vec{X: 2, Z: 7}, Constant(math.Pi/2), Constant(1))
	if !d3.EqualWithin(got, r3.Vec{Y: 2, Z: 7}, 1e-12) {
		t.Errorf("quarter turn got %v", got)
	}
	got = TwistAndSkew(r3.Vec{X: 2, Y: 2, Z: 7}, Constant(0), Constant(0))
	if !d3.EqualWithin(got, r3.Vec{X: 1, Y: 1, Z: 7}, 1e-12) {
		t.Errorf("half skew got %v", got)
	}
	// The method is sampled at z·0.001.
	var sampled float64
	TwistAndSkew(r3.Vec{Z: 250}, func(a float64) float64 { sampled = a; return 0 }, Constant(1))
	if math.Abs(sampled-0.25) > 1e-15 {
		t.Errorf("twist sampled at %g, want 0.25", sampled)
	}
}

func TestPostProcessingNoneIsIdentity(t *testing.T) {
	xf, err := PostProcessing{Twist: NoneMethod(), Skew: NoneMethod()}.Transform()
	if err != nil {
		t.Fatal(err)
	}
	v := r3.Vec{X: 3, Y: -4, Z: 90}
	if got := xf(v); !d3.EqualWithin(got, v, 1e-12) {
		t.Errorf("got %v, want %v", got, v)
	}
	_, err = PostProcessing{Twist: Method{Kind: 9}, Skew: NoneMethod()}.Transform()
	if err == nil {
		t.Error("expected error for unknown twist method")
	}
}

func TestMethodFuncs(t *testing.T) {
	inc, _ := Func(IncrementalMethod(2, 0), 0)
	if got := inc(3); got != 7 {
		t.Errorf("incremental got %g, want 7", got)
	}
	incTotal, _ := Func(IncrementalMethod(2, 10), 0)
	if got := incTotal(3); got != 61 {
		t.Errorf("incremental with total got %g, want 61", got)
	}
	sin, _ := Func(SinMethod(1, 3, 1, 0), 0)
	if got := sin(0); math.Abs(got-2) > 1e-12 {
		t.Errorf("sin at zero got %g, want 2", got)
	}
}
